package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"mask_feather",
		"edit_cut_hole",
		"edit_composite",
		"edit_check_boundary",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema missing 'properties' map")
			}
			if len(props) == 0 {
				t.Error("InputSchema has no properties")
			}
		})
	}
}

func TestToolDefinitions_ImageArgumentsHaveAlternates(t *testing.T) {
	// Every pipeline tool accepts each image either by path or inline.
	tools := GetToolDefinitions()
	pairs := map[string][]string{
		"mask_feather":        {"mask"},
		"edit_cut_hole":       {"base", "mask"},
		"edit_composite":      {"base", "fill", "mask"},
		"edit_check_boundary": {"base", "fill", "mask"},
	}

	for _, tool := range tools {
		fields, ok := pairs[tool.Name]
		if !ok {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, field := range fields {
			if _, ok := props[field+"_path"]; !ok {
				t.Errorf("%s: missing %s_path", tool.Name, field)
			}
			if _, ok := props[field+"_base64"]; !ok {
				t.Errorf("%s: missing %s_base64", tool.Name, field)
			}
		}
	}
}

func TestToolDefinitions_MarshalToJSON(t *testing.T) {
	tools := GetToolDefinitions()

	data, err := json.Marshal(tools)
	if err != nil {
		t.Fatalf("Failed to marshal tool definitions: %v", err)
	}
	if len(data) == 0 {
		t.Error("marshaled tool definitions are empty")
	}
}
