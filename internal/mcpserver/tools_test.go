package mcpserver

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != 4 {
		t.Errorf("Expected 4 tools, got %d", len(tools))
	}

	toolMap := make(map[string]bool)
	for _, tool := range tools {
		toolMap[tool.Name] = true

		if !strings.HasPrefix(tool.Name, ToolPrefix) {
			t.Errorf("Tool %s doesn't have prefix %s", tool.Name, ToolPrefix)
		}
		if tool.Description == "" {
			t.Errorf("Tool %s has no description", tool.Name)
		}

		var schema map[string]interface{}
		if err := json.Unmarshal(tool.InputSchema, &schema); err != nil {
			t.Errorf("Tool %s has invalid JSON schema: %v", tool.Name, err)
			continue
		}
		if schemaType, ok := schema["type"].(string); !ok || schemaType != "object" {
			t.Errorf("Tool %s schema should have type: object", tool.Name)
		}
	}

	for _, expected := range []string{
		"dementia_normalize",
		"dementia_parse_header",
		"dementia_scan_show",
		"dementia_lookup",
	} {
		if !toolMap[expected] {
			t.Errorf("Missing expected tool: %s", expected)
		}
	}
}

func TestRequiredFields(t *testing.T) {
	tests := map[string][]string{
		"dementia_parse_header": {"line"},
		"dementia_lookup":       {"catalog", "title"},
	}

	for _, tool := range GetToolDefinitions() {
		want, ok := tests[tool.Name]
		if !ok {
			continue
		}
		var schema struct {
			Required []string `json:"required"`
		}
		if err := json.Unmarshal(tool.InputSchema, &schema); err != nil {
			t.Fatalf("%s: %v", tool.Name, err)
		}
		if strings.Join(schema.Required, ",") != strings.Join(want, ",") {
			t.Errorf("%s: required = %v, want %v", tool.Name, schema.Required, want)
		}
	}
}
