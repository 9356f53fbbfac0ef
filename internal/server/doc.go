// Package server implements the MCP (Model Context Protocol) server for camera frame analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the vision engine
// through the MCP protocol, so a language model can ask what a camera sees
// and receive only facts the detectors reported.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - vision_detect: Full detection result for a frame
//   - vision_describe: Grounded one-sentence description and its instruction
//   - vision_scene: Lighting label and mean brightness
//   - vision_capabilities: Enabled capabilities
//
// Every detection call is tagged with a fresh frame_id that also appears in
// the server log.
//
// # Frame Caching
//
// Decoded frames are cached by path in a bounded cache; the oldest entry is
// evicted first. Pass "reload": true to decode a path again, for example when
// a camera overwrites the same file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A frame that decodes but whose detectors fail is not an error: the result
// lists the failed stages under diagnostics.
package server
