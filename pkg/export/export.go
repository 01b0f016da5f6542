// Package export serializes learned DAG structures for visualization.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/structmc/structmc/pkg/dag"
)

// ToDOT converts a structure to Graphviz DOT format. names labels the
// nodes; a nil or short slice falls back to X<i> for the missing entries.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(n int, edges []dag.Edge, names []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white];\n")
	buf.WriteString("\n")

	for v := 0; v < n; v++ {
		fmt.Fprintf(&buf, "  %q;\n", nodeLabel(v, names))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeLabel(e.From, names), nodeLabel(e.To, names))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(v int, names []string) string {
	if v < len(names) && names[v] != "" {
		return names[v]
	}
	return fmt.Sprintf("X%d", v)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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
