package prompts

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Templates failed validation: %v", err)
	}
}

func TestRender_SubstitutesVariables(t *testing.T) {
	out, err := Render(Coordinator, map[string]string{
		"question": "capital of France",
		"context":  "Paris is the capital of France.",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out, "User question: capital of France") {
		t.Errorf("Rendered prompt missing question: %q", out)
	}
	if !strings.Contains(out, "Search context: Paris is the capital of France.") {
		t.Errorf("Rendered prompt missing context: %q", out)
	}
	for _, label := range []string{"QWEN", "GPT", "BOTH", "QWEN_THEN_GPT"} {
		if !strings.Contains(out, label) {
			t.Errorf("Coordinator prompt should enumerate label %q", label)
		}
	}
}

func TestRender_MissingVariable(t *testing.T) {
	_, err := Render(Combiner, map[string]string{
		"question": "q",
		"context":  "c",
		// qwen_response and gpt_response deliberately absent
	})
	if err == nil {
		t.Fatal("Expected an error for missing required variables")
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	if _, err := Render("nonsense", map[string]string{}); err == nil {
		t.Fatal("Expected an error for an unknown template id")
	}
}

func TestRequired(t *testing.T) {
	required := Required(Combiner)
	want := map[string]bool{"question": true, "context": true, "qwen_response": true, "gpt_response": true}
	if len(required) != len(want) {
		t.Fatalf("Expected %d required variables, got %v", len(want), required)
	}
	for _, name := range required {
		if !want[name] {
			t.Errorf("Unexpected required variable %q", name)
		}
	}
}
