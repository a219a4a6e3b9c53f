package flowchart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mermaid renders the node chain as Mermaid flowchart text: a header
// line, one declaration per node in the shared shape vocabulary and one
// arrow per consecutive pair. Pure string construction, needs no
// external tool, and is byte-stable for identical input. Returns ""
// when there is nothing to draw.
func Mermaid(nodes []Node) string {
	if len(nodes) <= 2 {
		return ""
	}

	var b strings.Builder
	b.WriteString("flowchart TD\n")

	for i, node := range nodes {
		label := strings.ReplaceAll(node.Label, `"`, "'")
		switch node.Kind {
		case KindStart, KindEnd:
			fmt.Fprintf(&b, "    n%d([\"%s\"])\n", i, label)
		case KindDecision:
			fmt.Fprintf(&b, "    n%d{\"%s\"}\n", i, label)
		case KindIO:
			fmt.Fprintf(&b, "    n%d[/\"%s\"/]\n", i, label)
		default:
			fmt.Fprintf(&b, "    n%d[\"%s\"]\n", i, label)
		}
	}
	for i := 0; i < len(nodes)-1; i++ {
		fmt.Fprintf(&b, "    n%d --> n%d\n", i, i+1)
	}

	return b.String()
}

// SaveMermaid writes the diagram text to path, creating parent
// directories as needed. Empty diagram text is the "no artifact" case:
// nothing is written and "" is returned without error.
func SaveMermaid(diagram, path string) (string, error) {
	if diagram == "" {
		return "", nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create diagram directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(diagram), 0o644); err != nil {
		return "", fmt.Errorf("write diagram %s: %w", path, err)
	}
	return path, nil
}
