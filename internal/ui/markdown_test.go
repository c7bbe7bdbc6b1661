package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_ReturnsStyledOutput(t *testing.T) {
	input := "# Leg day\n\nKeep the **knees** out.\n"
	out := RenderMarkdown(input, 0)
	if out == "" {
		t.Fatal("RenderMarkdown returned empty string")
	}
	if !strings.Contains(out, "knees") {
		t.Errorf("rendered output lost content: %q", out)
	}
}

func TestPlanNotes(t *testing.T) {
	if got := PlanNotes("   ", true); got != "" {
		t.Errorf("blank description should render empty, got %q", got)
	}

	got := PlanNotes("warm up\n- 5 min jog", false)
	want := "  warm up\n  - 5 min jog"
	if got != want {
		t.Errorf("PlanNotes plain = %q, want %q", got, want)
	}

	styled := PlanNotes("Slow *eccentric*", true)
	if !strings.Contains(styled, "eccentric") {
		t.Errorf("styled notes lost content: %q", styled)
	}
}

func TestIsStdoutTTY_ReturnsBool(t *testing.T) {
	// Under go test stdout is usually a pipe; just make sure it does not panic.
	_ = IsStdoutTTY()
}
