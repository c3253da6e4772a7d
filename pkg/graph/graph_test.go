package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

const authorsJSON = `{
  "nodes": [
    {"id": "Borges", "group": 1, "touchstone": "I have always imagined that Paradise will be a kind of library."},
    {"id": "Calvino", "group": "italian"},
    {"id": "Eco", "group": 1.5}
  ],
  "links": [
    {"source": "Borges", "target": "Calvino", "value": 4},
    {"source": "Calvino", "target": "Eco"}
  ]
}`

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantLinks int
		wantErr   bool
		check     func(t *testing.T, g Graph)
	}{
		{
			name:      "Authors",
			input:     authorsJSON,
			wantNodes: 3,
			wantLinks: 2,
			check: func(t *testing.T, g Graph) {
				if g.Nodes[0].Group != "1" {
					t.Errorf("numeric group = %q, want 1", g.Nodes[0].Group)
				}
				if g.Nodes[1].Group != "italian" {
					t.Errorf("string group = %q, want italian", g.Nodes[1].Group)
				}
				if g.Nodes[2].Group != "1.5" {
					t.Errorf("float group = %q, want 1.5", g.Nodes[2].Group)
				}
				if !strings.HasPrefix(g.Nodes[0].Touchstone, "I have always") {
					t.Errorf("touchstone = %q", g.Nodes[0].Touchstone)
				}
				if g.Links[0].Weight() != 4 {
					t.Errorf("weight = %v, want 4", g.Links[0].Weight())
				}
				if g.Links[1].Weight() != 1 {
					t.Errorf("default weight = %v, want 1", g.Links[1].Weight())
				}
			},
		},
		{
			name:      "Empty",
			input:     `{"nodes": [], "links": []}`,
			wantNodes: 0,
			wantLinks: 0,
		},
		{
			name:    "Malformed",
			input:   `{"nodes": [`,
			wantErr: true,
		},
		{
			name:    "BadGroup",
			input:   `{"nodes": [{"id": "a", "group": true}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadJSON(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !terrors.Is(err, terrors.ErrCodeInvalidGraph) {
					t.Errorf("error code = %v, want %v", terrors.GetCode(err), terrors.ErrCodeInvalidGraph)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if got := len(g.Nodes); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := len(g.Links); got != tt.wantLinks {
				t.Errorf("links = %d, want %d", got, tt.wantLinks)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "authors.json")
	if err := os.WriteFile(path, []byte(authorsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !terrors.Is(err, terrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(authorsJSON))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if back.Nodes[1].Group != "italian" || back.Links[0].Weight() != 4 {
		t.Errorf("round trip lost data: %+v", back)
	}
	if back.Links[1].Value != nil {
		t.Error("absent value should stay absent")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Graph
		wantErr []string
	}{
		{
			name: "Consistent",
			g: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Links: []Link{{Source: "a", Target: "b"}},
			},
		},
		{
			name: "UnknownEndpoints",
			g: Graph{
				Nodes: []Node{{ID: "a"}},
				Links: []Link{{Source: "a", Target: "z"}, {Source: "y", Target: "a"}},
			},
			wantErr: []string{`link 0: unknown target "z"`, `link 1: unknown source "y"`},
		},
		{
			name:    "DuplicateAndEmpty",
			g:       Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}, {ID: ""}}},
			wantErr: []string{`node 1: duplicate id "a"`, "node 2: empty id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.g)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %q", err, want)
				}
			}
			if !terrors.Is(err, terrors.ErrCodeInvalidGraph) {
				t.Error("joined error should carry INVALID_GRAPH")
			}
		})
	}
}

func TestLinkHelpers(t *testing.T) {
	nine := 9.0
	zero := 0.0
	l := Link{Source: "a", Target: "b", Value: &nine}
	if l.StrokeWidth() != 3 {
		t.Errorf("StrokeWidth = %v, want 3", l.StrokeWidth())
	}
	if !l.Touches("a") || !l.Touches("b") || l.Touches("c") {
		t.Error("Touches mismatch")
	}
	if w := (Link{Value: &zero}).StrokeWidth(); w != 0.5 {
		t.Errorf("zero weight stroke = %v, want 0.5", w)
	}
}

func TestPalette(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Group: "x"}, {ID: "b", Group: "y"}, {ID: "c", Group: "x"}}}
	p := PaletteFor(g, nil)

	if got := p.Color("y"); got != Category10[1] {
		t.Errorf("Color(y) = %s, want %s", got, Category10[1])
	}
	if got := p.Color("x"); got != Category10[0] {
		t.Errorf("Color(x) = %s, want %s", got, Category10[0])
	}

	small := NewPalette([]string{"red", "blue"})
	small.Color("1")
	small.Color("2")
	if got := small.Color("3"); got != "red" {
		t.Errorf("palette should cycle, got %s", got)
	}
}

func TestGroupsAndNodeMap(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Group: "2"}, {ID: "b", Group: "1"}, {ID: "c", Group: "2"}}}
	groups := g.Groups()
	if len(groups) != 2 || groups[0] != "2" || groups[1] != "1" {
		t.Errorf("Groups() = %v, want [2 1]", groups)
	}
	if _, ok := g.NodeMap()["c"]; !ok {
		t.Error("NodeMap missing c")
	}
}

func TestExampleDocument(t *testing.T) {
	g, err := ReadFile(filepath.Join("..", "..", "examples", "authors.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(g); err != nil {
		t.Errorf("bundled example is invalid: %v", err)
	}
	if len(g.Groups()) != 4 {
		t.Errorf("groups = %v, want 4", g.Groups())
	}
}
