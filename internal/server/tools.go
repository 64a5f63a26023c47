package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageArgSchemas returns the path/base64 property pair for one image
// argument. Every image input accepts either a file path (cached across
// calls) or inline base64 data.
func imageArgSchemas(field, what string) map[string]interface{} {
	return map[string]interface{}{
		field + "_path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the " + what + " (PNG, JPEG, or GIF)",
		},
		field + "_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded " + what + ", as an alternative to " + field + "_path",
		},
	}
}

var radiusSchema = map[string]interface{}{
	"type":        "integer",
	"description": "Feather radius in pixels; 0 keeps the selection edge hard. Default 0",
	"default":     0,
}

var styleSchema = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"box", "gaussian"},
	"description": "Feather kernel. 'box' matches the transmit/composite semantics exactly; 'gaussian' gives a smoother falloff. Default 'box'",
	"default":     "box",
}

var toleranceSchema = map[string]interface{}{
	"type":        "integer",
	"description": "Maximum per-channel delta (0-255) allowed outside the selection before a pixel counts as a boundary violation. Default 10",
	"default":     10,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, transparency, and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Edit Pipeline
		{
			Name:        "mask_feather",
			Description: "Blur a hard-edged selection mask into a soft-edged blend mask and return it as base64 PNG. Reports whether the selection is entirely empty.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					imageArgSchemas("mask", "selection mask"),
					map[string]interface{}{
						"radius": radiusSchema,
						"style":  styleSchema,
					},
				),
			},
		},
		{
			Name:        "edit_cut_hole",
			Description: "Produce the transmit image for the external generator: the base image with alpha cut out under the feathered selection. RGB is untouched; alpha falls off with the mask so the generator sees blend confidence at the boundary.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					imageArgSchemas("base", "base image"),
					imageArgSchemas("mask", "selection mask"),
					map[string]interface{}{
						"radius": radiusSchema,
						"style":  styleSchema,
					},
				),
			},
		},
		{
			Name:        "edit_composite",
			Description: "Blend a generator-produced fill image back onto the base image through the feathered selection and return the final image. Pixels outside the selection are guaranteed bit-identical to the base no matter what the fill contains; the result includes an advisory boundary report. A differently sized fill is resampled to match unless resize_fill is false.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					imageArgSchemas("base", "base image"),
					imageArgSchemas("fill", "generated fill image"),
					imageArgSchemas("mask", "selection mask"),
					map[string]interface{}{
						"radius":    radiusSchema,
						"style":     styleSchema,
						"tolerance": toleranceSchema,
						"resize_fill": map[string]interface{}{
							"type":        "boolean",
							"description": "Resample the fill to the base dimensions when they differ. When false, mismatched dimensions are an error. Default true",
							"default":     true,
						},
					},
				),
			},
		},
		{
			Name:        "edit_check_boundary",
			Description: "Report how much the fill image differs from the base image outside the feathered selection, without compositing. Advisory only: edit_composite enforces containment regardless. Base and fill must share dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					imageArgSchemas("base", "base image"),
					imageArgSchemas("fill", "generated fill image"),
					imageArgSchemas("mask", "selection mask"),
					map[string]interface{}{
						"radius":    radiusSchema,
						"style":     styleSchema,
						"tolerance": toleranceSchema,
					},
				),
			},
		},
	}
}

// merge combines property maps into one. Later maps win on key collisions.
func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
