package render

import (
	"bytes"
	"context"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

// Output formats understood by the renderers.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatDOT, FormatPNG, FormatPDF}

var contentTypes = map[string]string{
	FormatSVG: "image/svg+xml",
	FormatPNG: "image/png",
	FormatPDF: "application/pdf",
	FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

// ValidateFormat rejects formats outside [Formats].
func ValidateFormat(format string) error {
	if slices.Contains(Formats, format) {
		return nil
	}
	return terrors.New(terrors.ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// ContentType returns the MIME type served for format. Unknown formats are
// served as DOT text.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return contentTypes[FormatDOT]
}

// RasterTool is the converter binary used for PNG and PDF output.
var RasterTool = "rsvg-convert"

// ToPDF converts SVG to PDF with [RasterTool].
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rasterize(ctx, svg, FormatPDF)
}

// ToPNG converts SVG to PNG with [RasterTool]; scale 2 doubles the
// resolution. Non-positive scales render at 1x.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rasterize(ctx, svg, FormatPNG, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rasterize(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(RasterTool)
	if err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInternal, err,
			"%s output needs %s (brew install librsvg, or apt install librsvg2-bin)", format, RasterTool)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, terrors.Wrap(terrors.ErrCodeInternal, err, "%s: %s", RasterTool, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
