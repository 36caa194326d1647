package schools

import (
	"strings"
	"testing"
)

func TestBuildPromptMentionsAddressAndCount(t *testing.T) {
	prompt := BuildPrompt("500 Center St, Springfield", 12)

	if !strings.Contains(prompt, "500 Center St, Springfield") {
		t.Error("prompt does not mention the address")
	}
	if !strings.Contains(prompt, "at least 12") {
		t.Error("prompt does not carry the target count")
	}
}

func TestBuildPromptDefaultsCount(t *testing.T) {
	for _, count := range []int{0, -5} {
		prompt := BuildPrompt("1 Main St", count)
		if !strings.Contains(prompt, "at least 40") {
			t.Errorf("BuildPrompt(count=%d) should fall back to the default target count", count)
		}
	}
}

func TestBuildPromptEnumeratesFields(t *testing.T) {
	prompt := BuildPrompt("1 Main St", 40)

	required := []string{`"name"`, `"address"`, `"type"`, `"studentCount"`}
	optional := []string{`"phoneNumber"`, `"principalName"`, `"assistantName"`, `"managerEmail"`, `"assistantEmail"`}

	for _, field := range append(required, optional...) {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt does not enumerate field %s", field)
		}
	}
}

func TestResponseSchemaIsArrayOfObjects(t *testing.T) {
	schema := ResponseSchema()

	if schema.Type != "array" {
		t.Errorf("schema type = %q, want array", schema.Type)
	}
	if schema.Items == nil {
		t.Fatal("schema has no items definition")
	}
	if schema.Items.Type != "object" {
		t.Errorf("items type = %q, want object", schema.Items.Type)
	}
	if schema.Items.Properties == nil {
		t.Fatal("item schema has no properties")
	}
	for _, field := range []string{"name", "address", "type", "studentCount"} {
		if _, ok := schema.Items.Properties.Get(field); !ok {
			t.Errorf("item schema missing property %q", field)
		}
	}
}
