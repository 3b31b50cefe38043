package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/texbox/pkg/tex/atom"
)

// AtomDOT returns the atom tree of a as a Graphviz digraph, one node per
// atom labelled with atom.Label. Placeholders are drawn red.
func AtomDOT(a atom.Atom) string {
	var buf bytes.Buffer
	buf.WriteString("digraph atoms {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("\n")

	n := 0
	var visit func(a atom.Atom) int
	visit = func(a atom.Atom) int {
		id := n
		n++
		attrs := fmt.Sprintf("label=%q", atom.Label(a))
		if _, ok := a.(*atom.Placeholder); ok {
			attrs += ", fillcolor=\"#ffdddd\", color=red"
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, attrs)
		if c, ok := a.(atom.Composite); ok {
			for _, child := range c.Children() {
				cid := visit(child)
				fmt.Fprintf(&buf, "  n%d -> n%d;\n", id, cid)
			}
		}
		return id
	}
	if a != nil {
		visit(a)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// AtomSVG lays out a DOT graph from AtomDOT with Graphviz and returns SVG.
func AtomSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
