package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file, or a key created by pixel_clone",
	}
}

func coordinateProperty(axis string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": axis + " coordinate (0-based)",
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description + "; (x1,y1) inclusive, (x2,y2) exclusive",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "pixel_load",
			Description: "Load an image file and report its dimensions, file format and native pixel format. Only 8, 24 and 32 bpp images support pixel access.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixel_get",
			Description: "Read the color of one pixel. Returns hex, RGB, RGBA and HSL. 8 bpp images read as gray, 8 and 24 bpp images read as opaque.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    coordinateProperty("X"),
					"y":    coordinateProperty("Y"),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "pixel_get_multi",
			Description: "Read the colors of several pixels under one lock, in input order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "pixel_compare_regions",
			Description: "Compare two regions of an image pixel by pixel. Regions of different sizes are compared over their common top-left overlap.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"region1": regionProperty("First region"),
					"region2": regionProperty("Second region"),
				},
				"required": []string{"path", "region1", "region2"},
			},
		},
		{
			Name:        "pixel_set",
			Description: "Write the color of one pixel in the cached image and return the stored value. 24 bpp images drop alpha; 8 bpp images store only the blue channel as gray.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    coordinateProperty("X"),
					"y":    coordinateProperty("Y"),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Color as #RGB, #RRGGBB or #RRGGBBAA",
					},
				},
				"required": []string{"path", "x", "y", "color"},
			},
		},
		{
			Name:        "pixel_invert",
			Description: "Invert the RGB channels of every pixel of the cached image, keeping alpha.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixel_dominant_colors",
			Description: "Find the most common colors of an image or region. Components are quantized to multiples of 16.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return. Default 5",
						"default":     5,
					},
					"region": regionProperty("Optional region to analyze"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixel_clone",
			Description: "Copy the cached image into a new 32 bpp image stored under dest. Later edits to either image do not affect the other.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"dest": map[string]interface{}{
						"type":        "string",
						"description": "Key for the cloned image",
					},
				},
				"required": []string{"path", "dest"},
			},
		},
		{
			Name:        "pixel_crop",
			Description: "Copy a region of the cached image into a new 32 bpp image stored under dest. Give either region or quadrant.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"dest": map[string]interface{}{
						"type":        "string",
						"description": "Key for the cropped image",
					},
					"region": regionProperty("Region to copy"),
					"quadrant": map[string]interface{}{
						"type":        "string",
						"description": "Named region to copy",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
					},
				},
				"required": []string{"path", "dest"},
			},
		},
		{
			Name:        "pixel_save",
			Description: "Encode the cached image, including pixel edits, to a file. The format follows the output extension (png, jpg, gif, bmp, tif).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the file to write",
					},
				},
				"required": []string{"path", "output"},
			},
		},
	}
}
