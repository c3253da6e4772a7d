package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/touchstone/pkg/cache"
	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/view"
)

func authors() graph.Graph {
	four := 4.0
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "A", Group: "1", Touchstone: "alpha"},
			{ID: "B", Group: "1"},
			{ID: "C", Group: "2"},
		},
		Links: []graph.Link{{Source: "A", Target: "B", Value: &four}},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(authors(), highlight.Effects{}, Options{})

	for _, want := range []string{
		"graph G {",
		`"A" [id="node-A", class="node"`,
		`"A" -- "B"`,
		`tooltip="alpha"`,
		`xlabel="C"`,
		"penwidth=2.000",
		"len=0.972",
		`fillcolor="#1f77b4ff"`,
		`fillcolor="#ff7f0eff"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "dimmed") || strings.Contains(dot, "selected") {
		t.Error("zero effects should not dim or select anything")
	}
}

func TestToDOT_Effects(t *testing.T) {
	g := authors()
	c := highlight.New(g, nil)
	eff := c.Click("C")

	dot := ToDOT(g, eff, Options{})

	if !strings.Contains(dot, `class="node dimmed"`) {
		t.Error("A and B should be dimmed")
	}
	if !strings.Contains(dot, `class="node selected"`) {
		t.Error("C should carry the selected class")
	}
	if !strings.Contains(dot, `class="link dimmed"`) {
		t.Error("A-B link should be dimmed")
	}
	if !strings.Contains(dot, `color="#000000", penwidth=3`) {
		t.Error("selected node should be outlined")
	}
	if !strings.Contains(dot, `fillcolor="#1f77b426"`) {
		t.Error("dimmed node fill should be faded")
	}
}

func TestToDOT_Options(t *testing.T) {
	opts := Options{
		LinkDistance: 144,
		NodeRadius:   36,
		HideLabels:   true,
		Pins:         map[string]graph.Point{"B": {X: 10, Y: 20}},
		Palette:      graph.NewPalette([]string{"#000000"}),
	}
	dot := ToDOT(authors(), highlight.Effects{}, opts)

	for _, want := range []string{"len=2.000", "width=1.000", `pos="10,-20!"`, "pin=true", `fillcolor="#000000ff"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if strings.Contains(dot, "xlabel") {
		t.Error("HideLabels should drop xlabels")
	}
}

func TestToDOT_InitialPosition(t *testing.T) {
	g := authors()
	g.Nodes[0].Pos = &graph.Point{X: 5, Y: 6}
	dot := ToDOT(g, highlight.Effects{}, Options{})
	if !strings.Contains(dot, `pos="5,-6"`) {
		t.Error("initial position hint missing")
	}
	if strings.Contains(dot, `pos="5,-6!"`) {
		t.Error("initial position should not pin")
	}
}

func TestParseEngine(t *testing.T) {
	for _, e := range Engines {
		got, err := ParseEngine(string(e))
		if err != nil || got != e {
			t.Errorf("ParseEngine(%q) = %q, %v", e, got, err)
		}
	}
	if got, _ := ParseEngine(""); got != EngineNeato {
		t.Errorf("default engine = %q", got)
	}
	if _, err := ParseEngine("twopi"); !terrors.Is(err, terrors.ErrCodeInvalidEngine) {
		t.Errorf("ParseEngine(twopi) = %v", err)
	}
}

func TestApplyViewport(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>` + "\n" + `<svg width="200pt" height="100pt" viewBox="0.00 0.00 200.00 100.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)

	out := ApplyViewport(svg, view.Viewport{X: -100, Y: -50, K: 2})
	if !bytes.Contains(out, []byte(`viewBox="50.00 25.00 100.00 50.00"`)) {
		t.Errorf("viewBox not rewritten: %s", out)
	}
	if !bytes.Contains(out, []byte(`width="200" height="100"`)) {
		t.Errorf("canvas size should be kept: %s", out)
	}
	if !bytes.HasPrefix(out, []byte(`<?xml`)) || !bytes.HasSuffix(out, []byte(`<g/></svg>`)) {
		t.Errorf("content outside the svg tag changed: %s", out)
	}

	same := ApplyViewport(svg, view.Identity())
	if !bytes.Contains(same, []byte(`viewBox="0.00 0.00 200.00 100.00"`)) {
		t.Errorf("identity viewport changed the viewBox: %s", same)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := ApplyViewport(plain, view.Identity()); !bytes.Equal(got, plain) {
		t.Error("svg without viewBox should be untouched")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"></svg>`)
	out := normalizeViewBox(svg)
	if !bytes.Contains(out, []byte(`viewBox="0.00 0.00 10.00 20.00" width="10" height="20"`)) {
		t.Errorf("normalizeViewBox = %s", out)
	}
}

func TestRendererDOTAndValidation(t *testing.T) {
	var logs bytes.Buffer
	r := NewRenderer(cache.NewNullCache(), 0, log.New(&logs))
	ctx := context.Background()

	data, hit, err := r.Render(ctx, Request{Graph: authors(), Format: "dot"})
	if err != nil || hit {
		t.Fatalf("Render(dot) = hit %v, err %v", hit, err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("DOT output = %q", data)
	}

	if _, _, err := r.Render(ctx, Request{Graph: authors(), Format: "gif"}); !terrors.Is(err, terrors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}
	if _, _, err := r.Render(ctx, Request{Graph: authors(), Engine: "twopi"}); !terrors.Is(err, terrors.ErrCodeInvalidEngine) {
		t.Errorf("bad engine error = %v", err)
	}
}

func TestRendererCacheHit(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	req := Request{Graph: authors(), Engine: EngineNeato, Format: "svg"}
	dot := ToDOT(req.Graph, req.Effects, req.Options)
	key := cache.ArtifactKey(dot, cache.ArtifactKeyOpts{Engine: "neato", Format: "svg"})
	if err := fc.Set(ctx, key, []byte("<svg>cached</svg>"), 0); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(fc, 0, nil)
	data, hit, err := r.Render(ctx, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !hit || string(data) != "<svg>cached</svg>" {
		t.Errorf("expected cached artifact, got hit=%v data=%q", hit, data)
	}
}
