package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/touchstone/pkg/view"
)

var layouts = map[Engine]graphviz.Layout{
	EngineNeato: graphviz.NEATO,
	EngineFDP:   graphviz.FDP,
	EngineSFDP:  graphviz.SFDP,
	EngineCirco: graphviz.CIRCO,
}

// RenderSVG lays out a DOT graph with engine and renders it to SVG.
// The returned SVG has a viewBox anchored at the origin, ready for
// [ApplyViewport].
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	layout, ok := layouts[engine]
	if !ok {
		if _, err := ParseEngine(string(engine)); err != nil {
			return nil, err
		}
		layout = graphviz.NEATO
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// canvas is the drawing area Graphviz reports in the root viewBox.
type canvas struct {
	x, y, w, h float64
}

func readCanvas(svg []byte) (canvas, bool) {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return canvas{}, false
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(string(m[i+1]), 64)
		if err != nil {
			return canvas{}, false
		}
		v[i] = f
	}
	c := canvas{x: v[0], y: v[1], w: v[2], h: v[3]}
	return c, c.w > 0 && c.h > 0
}

// rootTag returns an <svg> open tag showing the region (x, y, vw, vh) of
// the drawing on a c.w by c.h canvas.
func (c canvas) rootTag(x, y, vw, vh float64) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`,
		x, y, vw, vh, c.w, c.h)
}

// retag swaps the first <svg> open tag in svg for tag.
func retag(svg []byte, tag string) []byte {
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	var b bytes.Buffer
	b.Grow(len(svg) - (loc[1] - loc[0]) + len(tag))
	b.Write(svg[:loc[0]])
	b.WriteString(tag)
	b.Write(svg[loc[1]:])
	return b.Bytes()
}

// normalizeViewBox moves the Graphviz viewBox to the origin and drops the
// point units from width and height.
func normalizeViewBox(svg []byte) []byte {
	c, ok := readCanvas(svg)
	if !ok {
		return svg
	}
	return retag(svg, c.rootTag(0, 0, c.w, c.h))
}

// ApplyViewport rewrites the SVG viewBox so the drawing appears panned and
// zoomed by vp on a canvas of the drawing's own size. SVG without a viewBox
// is returned unchanged.
func ApplyViewport(svg []byte, vp view.Viewport) []byte {
	c, ok := readCanvas(svg)
	if !ok {
		return svg
	}
	x, y, vw, vh := vp.ViewBox(c.w, c.h)
	return retag(svg, c.rootTag(c.x+x, c.y+y, vw, vh))
}
