package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// frameSchema is the input schema shared by the per-frame tools.
func frameSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Absolute path to the camera frame (PNG, JPEG, GIF or WebP)",
			},
			"reload": map[string]interface{}{
				"type":        "boolean",
				"description": "Decode the file again even if it is cached. Use when a camera overwrites the same path. Default false",
				"default":     false,
			},
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "vision_detect",
			Description: "Run every detector on a camera frame and return faces (with heuristic gender, age range, hair color and hair tone), people, objects, text regions, scene label and brightness. Stages that fail are listed under diagnostics.",
			InputSchema: frameSchema(),
		},
		{
			Name:        "vision_describe",
			Description: "Describe a camera frame in one grounded sentence prefixed \"VISION: \", plus the instruction that forbids adding anything the detectors did not report.",
			InputSchema: frameSchema(),
		},
		{
			Name:        "vision_scene",
			Description: "Classify the lighting of a camera frame (very dark, dim indoor, normal indoor, very bright) and return its mean brightness.",
			InputSchema: frameSchema(),
		},
		{
			Name:        "vision_capabilities",
			Description: "List the enabled vision capabilities and whether the deep object detector is loaded.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
