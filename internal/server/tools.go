package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the file",
}

func channelsProperty(which string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
		"minItems":    3,
		"maxItems":    3,
		"description": which + " bound per channel in the order of the colour space (H,S,V or B,G,R). Defaults to the configured range.",
	}
}

var spaceProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"hsv", "bgr"},
	"description": "Colour space of the bounds. HSV uses the 8-bit scale: H 0-179, S and V 0-255.",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Signal review
		{
			Name:        "signal_load",
			Description: "Load a two-column time/amplitude sample file. Returns the series summary and the initial slider state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "signal_threshold",
			Description: "Compute the baseline (most frequent amplitude), the noise ceiling max - (max - baseline) * ratio, and every sample strictly above it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"ratio": map[string]interface{}{
						"type":        "number",
						"description": "Signal ratio in (0, 1]. 1 puts the ceiling at the baseline. Defaults to the configured ratio.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "signal_window",
			Description: "Return the visible time range [anchor - zoom/2, anchor + zoom/2].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"anchor": map[string]interface{}{
						"type":        "number",
						"description": "Centre of the window",
					},
					"zoom": map[string]interface{}{
						"type":        "number",
						"description": "Window width, must be > 0",
					},
				},
				"required": []string{"anchor", "zoom"},
			},
		},
		{
			Name:        "signal_render",
			Description: "Render a plot frame of a series as base64 PNG. Omitted sliders keep their initial values; out-of-range values are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"anchor": map[string]interface{}{
						"type":        "number",
						"description": "Time anchor within the series time range",
					},
					"zoom": map[string]interface{}{
						"type":        "number",
						"description": "Visible time span, from the configured minimum to the last sample time",
					},
					"ratio": map[string]interface{}{
						"type":        "number",
						"description": "Signal ratio in [0.01, 1]",
					},
					"view": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"original", "signals", "labeled"},
						"description": "original: trace only; signals: bars at signal points; labeled: trace, baseline, ceiling and markers",
					},
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Label each visible signal with its (time, amplitude)",
					},
					"ceiling": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the dashed noise ceiling in the labeled view (default: true)",
					},
					"markers": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw star markers on signals in the labeled view (default: true)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Frame width in pixels (default: configured)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Frame height in pixels (default: configured)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Image colour filtering
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_color_mask",
			Description: "Select the pixels whose channels fall inside inclusive bounds. Returns the pixel count and the mask or filtered image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty,
					"space": spaceProperty,
					"lower": channelsProperty("Lower"),
					"upper": channelsProperty("Upper"),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"mask", "result"},
						"description": "mask: white where selected; result: source pixels where selected, black elsewhere (default: mask)",
					},
				},
				"required": []string{"path"},
			},
		},

		// ROI capture
		{
			Name:        "roi_event",
			Description: "Forward a pointer event to the ROI capture of an image. press starts a rectangle, move updates the preview, release commits it, finish ends the capture.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"event": map[string]interface{}{
						"type": "string",
						"enum": []string{"press", "move", "release", "finish"},
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Pointer X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Pointer Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "event"},
			},
		},
		{
			Name:        "roi_preview",
			Description: "Render the current ROI capture over the image: committed ROIs in green, the rectangle being drawn in black, and a crosshair at the pointer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "roi_reset",
			Description: "Discard the ROI capture of an image and start over.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "roi_signal",
			Description: "Highlight in-range colours inside ROIs. Returns the matching pixel count, connected regions and the highlighted image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"rois": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x1": map[string]interface{}{"type": "integer"},
								"y1": map[string]interface{}{"type": "integer"},
								"x2": map[string]interface{}{"type": "integer"},
								"y2": map[string]interface{}{"type": "integer"},
							},
						},
						"description": "Rectangles by opposite corners. Defaults to the ROIs captured with roi_event.",
					},
					"space": spaceProperty,
					"lower": channelsProperty("Lower"),
					"upper": channelsProperty("Upper"),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Highlight colour in hex (default: configured, yellow)",
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest region reported, in pixels (default: 1)",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to save the highlighted image; the extension picks the format",
					},
				},
				"required": []string{"path"},
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
