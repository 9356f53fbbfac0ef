package server

import (
	"fmt"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/ironsheep/vision-mcp/internal/describe"
	"github.com/ironsheep/vision-mcp/internal/detection"
	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "vision_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments jsoniter.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithField("tool", params.Name).WithError(err).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args jsoniter.RawMessage) (interface{}, error) {
	switch name {
	case "vision_detect":
		return s.handleVisionDetect(args)
	case "vision_describe":
		return s.handleVisionDescribe(args)
	case "vision_scene":
		return s.handleVisionScene(args)
	case "vision_capabilities":
		return s.handleVisionCapabilities()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type frameArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

// loadFrame decodes the frame named by the tool arguments.
func (s *Server) loadFrame(args jsoniter.RawMessage) (*imaging.Frame, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	return s.cache.Load(a.Path)
}

// DetectResponse is the vision_detect result.
type DetectResponse struct {
	FrameID string `json:"frame_id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	*detection.Result
}

func (s *Server) handleVisionDetect(args jsoniter.RawMessage) (interface{}, error) {
	frame, err := s.loadFrame(args)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &DetectResponse{
		FrameID: id,
		Width:   frame.Width(),
		Height:  frame.Height(),
		Result:  s.engine.DetectFrame(id, frame),
	}, nil
}

// DescribeResponse is the vision_describe result.
type DescribeResponse struct {
	FrameID     string `json:"frame_id"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
}

func (s *Server) handleVisionDescribe(args jsoniter.RawMessage) (interface{}, error) {
	frame, err := s.loadFrame(args)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	desc := describe.Describe(s.engine.DetectFrame(id, frame))
	return &DescribeResponse{
		FrameID:     id,
		Description: desc,
		Instruction: describe.Instruction(desc),
	}, nil
}

// SceneResponse is the vision_scene result.
type SceneResponse struct {
	Scene      string  `json:"scene"`
	Brightness float64 `json:"brightness"`
}

func (s *Server) handleVisionScene(args jsoniter.RawMessage) (interface{}, error) {
	frame, err := s.loadFrame(args)
	if err != nil {
		return nil, err
	}
	scene, brightness, err := detection.ClassifyScene(frame.Gray())
	if err != nil {
		return nil, err
	}
	return &SceneResponse{Scene: scene, Brightness: brightness}, nil
}

// CapabilitiesResponse is the vision_capabilities result.
type CapabilitiesResponse struct {
	Capabilities []string `json:"capabilities"`
	DeepDetector bool     `json:"deep_detector"`
}

func (s *Server) handleVisionCapabilities() (interface{}, error) {
	return &CapabilitiesResponse{
		Capabilities: s.engine.Capabilities(),
		DeepDetector: s.engine.DeepDetectorAvailable(),
	}, nil
}
