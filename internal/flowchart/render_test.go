package flowchart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNodes() []Node {
	return []Node{
		{Kind: KindStart, Label: "Start"},
		{Kind: KindIO, Label: "Input data"},
		{Kind: KindDecision, Label: "n > 0"},
		{Kind: KindProcess, Label: "n = n - 1"},
		{Kind: KindEnd, Label: "End"},
	}
}

func TestDOT_EmptyWhenNothingToDraw(t *testing.T) {
	assert.Empty(t, DOT(nil))
	assert.Empty(t, DOT([]Node{{Kind: KindStart, Label: "Start"}, {Kind: KindEnd, Label: "End"}}))
}

func TestDOT_Content(t *testing.T) {
	dot := DOT(sampleNodes())

	assert.True(t, strings.HasPrefix(dot, "digraph flowchart {"))
	assert.Contains(t, dot, "rankdir=TB")
	assert.Contains(t, dot, `n0 [label="Start", shape=ellipse`)
	assert.Contains(t, dot, `n2 [label="n > 0", shape=diamond`)
	assert.Contains(t, dot, `n1 [label="Input data", shape=parallelogram`)
	assert.Contains(t, dot, "n0 -> n1;")
	assert.Contains(t, dot, "n3 -> n4;")
	assert.NotContains(t, dot, "n4 -> ")
}

func TestRenderPNG_ToolUnavailable(t *testing.T) {
	path := RenderPNG(sampleNodes(), filepath.Join(t.TempDir(), "out.png"), LayoutTool{})
	assert.Empty(t, path)
}

func TestRenderPNG_NothingToDraw(t *testing.T) {
	tool := ProbeLayoutTool()
	if !tool.Available {
		t.Skip("graphviz dot not installed")
	}

	nodes := []Node{{Kind: KindStart, Label: "Start"}, {Kind: KindEnd, Label: "End"}}
	assert.Empty(t, RenderPNG(nodes, filepath.Join(t.TempDir(), "out.png"), tool))
}

func TestRenderPNG_WritesFile(t *testing.T) {
	tool := ProbeLayoutTool()
	if !tool.Available {
		t.Skip("graphviz dot not installed")
	}

	outputPath := filepath.Join(t.TempDir(), "charts", "out.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(outputPath), 0o755))

	path := RenderPNG(sampleNodes(), outputPath, tool)
	require.Equal(t, outputPath, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
