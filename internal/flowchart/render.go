package flowchart

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LayoutTool is the capability probe result for the external Graphviz
// layout tool. Absence is a normal condition, not an error.
type LayoutTool struct {
	Available bool
	Path      string
}

// ProbeLayoutTool resolves the Graphviz `dot` binary on PATH. Intended
// to be consumed once per request.
func ProbeLayoutTool() LayoutTool {
	path, err := exec.LookPath("dot")
	if err != nil {
		slog.Debug("graphviz not found, raster flowcharts disabled", "err", err)
		return LayoutTool{}
	}
	return LayoutTool{Available: true, Path: path}
}

type nodeStyle struct {
	shape string
	fill  string
}

// Fixed kind→shape mapping shared by both output modes.
var nodeStyles = map[NodeKind]nodeStyle{
	KindStart:    {"ellipse", "#BBDEFB"},
	KindEnd:      {"ellipse", "#BBDEFB"},
	KindProcess:  {"box", "#F5F5F5"},
	KindDecision: {"diamond", "#FFF9C4"},
	KindIO:       {"parallelogram", "#E8F5E9"},
}

// DOT builds the Graphviz description of the node chain: one styled
// node per DiagramNode with sequential ids n0..nk and one edge per
// consecutive pair. Returns "" when there is nothing to draw (only
// start and end).
func DOT(nodes []Node) string {
	if len(nodes) <= 2 {
		return ""
	}

	var b strings.Builder
	b.WriteString("digraph flowchart {\n")
	b.WriteString("\trankdir=TB;\n")
	b.WriteString("\tfontname=\"Arial\";\n\tfontsize=12;\n")
	b.WriteString("\tnode [fontname=\"Arial\", fontsize=10];\n")

	for i, node := range nodes {
		style, ok := nodeStyles[node.Kind]
		if !ok {
			style = nodeStyle{"box", "#F5F5F5"}
		}
		fmt.Fprintf(&b, "\tn%d [label=%q, shape=%s, style=filled, fillcolor=%q];\n",
			i, node.Label, style.shape, style.fill)
	}
	for i := 0; i < len(nodes)-1; i++ {
		fmt.Fprintf(&b, "\tn%d -> n%d;\n", i, i+1)
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderPNG lays the node chain out as a PNG via the external tool and
// returns the written file path. Returns "" — no artifact — when the
// tool is unavailable, there is nothing to draw, or layout fails for
// any reason. outputPath may be empty; a temporary file is used then.
func RenderPNG(nodes []Node, outputPath string, tool LayoutTool) string {
	if !tool.Available {
		return ""
	}

	dot := DOT(nodes)
	if dot == "" {
		return ""
	}

	if outputPath == "" {
		dir, err := os.MkdirTemp("", "labgen-flowchart-")
		if err != nil {
			slog.Debug("flowchart temp dir failed", "err", err)
			return ""
		}
		outputPath = filepath.Join(dir, "flowchart.png")
	}

	cmd := exec.Command(tool.Path, "-Tpng", "-o", outputPath)
	cmd.Stdin = strings.NewReader(dot)
	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Debug("graphviz layout failed", "err", err, "output", string(out))
		return ""
	}
	if _, err := os.Stat(outputPath); err != nil {
		slog.Debug("graphviz produced no output file", "path", outputPath)
		return ""
	}
	return outputPath
}
