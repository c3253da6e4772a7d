package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	ui := console{w: &buf}

	ui.success("Rendered %s", "svg")
	ui.failure("boom")
	ui.warn("%d authors have no links", 2)
	ui.info("Serving")
	ui.detail("Eco")
	ui.file("out.svg")
	ui.keyValue("Authors", 3)
	ui.nextStep("Explore interactively", "touchstone explore")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"✓ Rendered svg",
		"✗ boom",
		"! 2 authors have no links",
		"› Serving",
		"  Eco",
		"  → out.svg",
		"Authors",
		"Explore interactively: touchstone explore",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], w)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		cached bool
		want   string
	}{
		{false, "3 authors · 1 links · fresh"},
		{true, "3 authors · 1 links · cached"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		console{w: &buf}.renderSummary(3, 1, tt.cached)
		if got := strings.TrimSpace(buf.String()); got != tt.want {
			t.Errorf("renderSummary(cached=%v) = %q, want %q", tt.cached, got, tt.want)
		}
	}
}
