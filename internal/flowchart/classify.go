// Package flowchart turns source text into a simplified flowchart: an
// ordered node chain classified line by line, rendered either as a PNG
// via the external Graphviz tool or as portable Mermaid text.
//
// The classifier is intentionally flat: conditionals and loops become
// sequential decision nodes with no branch fan-out and no loop-back
// edges. That shape is a teaching aid and is kept as-is; it must not be
// upgraded into a real control-flow graph.
package flowchart

import (
	"regexp"
	"strings"

	"github.com/codelab-tools/labgen/internal/analysis"
)

// NodeKind classifies one flowchart node.
type NodeKind string

const (
	KindStart    NodeKind = "start"
	KindEnd      NodeKind = "end"
	KindProcess  NodeKind = "process"
	KindDecision NodeKind = "decision"
	KindIO       NodeKind = "io"
)

// Node is one classified unit of program structure.
type Node struct {
	Kind  NodeKind
	Label string
}

// ruleSet is the per-language line classification table. Rules apply in
// a fixed priority: skip, io, conditional, loop, assignment. The first
// rule that matches a line decides its outcome.
type ruleSet struct {
	skipExact    map[string]bool // trimmed, lower-cased line equals
	skipPrefixes []string        // trimmed, lower-cased line starts with
	skipPattern  *regexp.Regexp  // optional extra skip rule

	inputKeywords  []string // substring, lower-cased
	outputKeywords []string

	condPrefixes []string // lower-cased line starts with
	condLabel    *regexp.Regexp

	loopPrefixes []string
	loopLabels   []*regexp.Regexp // tried in order

	assign func(line string) bool
}

var ruleSets = map[analysis.Language]*ruleSet{
	analysis.Pascal: {
		skipExact:      map[string]bool{"program": true, "begin": true, "end.": true, "end;": true, "var": true, "uses": true},
		skipPrefixes:   []string{"//", "program ", "var", "uses "},
		inputKeywords:  []string{"readln", "read("},
		outputKeywords: []string{"writeln", "write("},
		condPrefixes:   []string{"if "},
		condLabel:      regexp.MustCompile(`(?i)if\s+(.+?)\s+then`),
		loopPrefixes:   []string{"for ", "while ", "repeat"},
		loopLabels: []*regexp.Regexp{
			regexp.MustCompile(`(?i)for\s+(.+?)\s+do`),
			regexp.MustCompile(`(?i)while\s+(.+?)\s+do`),
		},
		assign: func(line string) bool { return strings.Contains(line, ":=") },
	},
	analysis.Python: {
		skipExact:      map[string]bool{},
		skipPrefixes:   []string{"#", "import ", "from ", "def "},
		inputKeywords:  []string{"input("},
		outputKeywords: []string{"print("},
		condPrefixes:   []string{"if ", "elif "},
		condLabel:      regexp.MustCompile(`(?:el)?if\s+(.+?):`),
		loopPrefixes:   []string{"for ", "while "},
		loopLabels: []*regexp.Regexp{
			regexp.MustCompile(`(?:for|while)\s+(.+?):`),
		},
		assign: func(line string) bool { return strings.Contains(line, "=") },
	},
	analysis.CPP: {
		skipExact:      map[string]bool{"{": true, "}": true, "};": true},
		skipPrefixes:   []string{"//", "#include", "using namespace"},
		skipPattern:    regexp.MustCompile(`^int\s+main\s*\(`),
		inputKeywords:  []string{"cin", "scanf"},
		outputKeywords: []string{"cout", "printf"},
		condPrefixes:   []string{"if ", "if("},
		condLabel:      regexp.MustCompile(`if\s*\((.+?)\)`),
		loopPrefixes:   []string{"for ", "for(", "while ", "while(", "do "},
		loopLabels: []*regexp.Regexp{
			regexp.MustCompile(`(?:for|while)\s*\((.+?)\)`),
		},
		assign: func(line string) bool { return strings.Contains(line, "=") },
	},
}

// ParseStructure classifies the source into the flattened node chain.
// The result always starts with one start node and ends with one end
// node; interior nodes follow source line order. Lines matching no rule
// are dropped silently.
func ParseStructure(code string, lang analysis.Language) []Node {
	nodes := []Node{{Kind: KindStart, Label: "Start"}}

	rules := ruleSets[lang]
	if rules == nil {
		return append(nodes, Node{Kind: KindEnd, Label: "End"})
	}

	for _, line := range strings.Split(strings.TrimSpace(code), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if node, ok := rules.classify(stripped); ok {
			nodes = append(nodes, node)
		}
	}

	return append(nodes, Node{Kind: KindEnd, Label: "End"})
}

func (r *ruleSet) classify(line string) (Node, bool) {
	lower := strings.ToLower(line)

	if r.skipExact[lower] || r.skipLine(lower) {
		return Node{}, false
	}

	if in, out := containsAny(lower, r.inputKeywords), containsAny(lower, r.outputKeywords); in || out {
		label := "Output data"
		if in {
			label = "Input data"
		}
		return Node{Kind: KindIO, Label: label}, true
	}

	if hasAnyPrefix(lower, r.condPrefixes) {
		label := line
		if m := r.condLabel.FindStringSubmatch(line); m != nil {
			label = m[1]
		}
		return Node{Kind: KindDecision, Label: label}, true
	}

	if hasAnyPrefix(lower, r.loopPrefixes) {
		label := line
		for _, pattern := range r.loopLabels {
			if m := pattern.FindStringSubmatch(line); m != nil {
				label = m[1]
				break
			}
		}
		return Node{Kind: KindDecision, Label: "Loop: " + label}, true
	}

	if r.assign(line) {
		return Node{Kind: KindProcess, Label: strings.TrimRight(line, ";")}, true
	}

	return Node{}, false
}

func (r *ruleSet) skipLine(lower string) bool {
	if hasAnyPrefix(lower, r.skipPrefixes) {
		return true
	}
	return r.skipPattern != nil && r.skipPattern.MatchString(lower)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
