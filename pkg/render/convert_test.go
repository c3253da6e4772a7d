package render

import (
	"context"
	"strings"
	"testing"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); !terrors.Is(err, terrors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG: "image/svg+xml",
		FormatPNG: "image/png",
		FormatPDF: "application/pdf",
		FormatDOT: "text/vnd.graphviz; charset=utf-8",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRasterToolMissing(t *testing.T) {
	old := RasterTool
	RasterTool = "touchstone-no-such-converter"
	t.Cleanup(func() { RasterTool = old })

	_, err := ToPNG(context.Background(), []byte("<svg/>"), 2)
	if !terrors.Is(err, terrors.ErrCodeInternal) {
		t.Fatalf("ToPNG error = %v, want INTERNAL_ERROR", err)
	}
	if !strings.Contains(terrors.UserMessage(err), "librsvg") {
		t.Errorf("message %q should name the package to install", terrors.UserMessage(err))
	}
}
