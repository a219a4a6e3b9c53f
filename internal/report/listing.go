package report

import (
	"log/slog"

	"baliance.com/gooxml/color"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/codelab-tools/labgen/internal/analysis"
)

// lexerNames maps languages to chroma lexer names, tried in order.
var lexerNames = map[analysis.Language][]string{
	analysis.Pascal: {"ObjectPascal", "Delphi"},
	analysis.Python: {"Python"},
	analysis.CPP:    {"C++"},
}

func lexerFor(lang analysis.Language) chroma.Lexer {
	for _, name := range lexerNames[lang] {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	slog.Debug("no lexer for language, using fallback", "language", lang)
	return lexers.Fallback
}

// runStyle is the rendering style of one listing run.
type runStyle struct {
	color color.Color
	bold  bool
}

// Fixed token-category color table: keywords blue and bold, comments
// green, strings and other literals dark red, numbers dark green,
// function names maroon, everything else black.
func styleFor(t chroma.TokenType) runStyle {
	switch {
	case t == chroma.NameFunction:
		return runStyle{color: color.RGB(0x80, 0x00, 0x00)}
	case t.InCategory(chroma.Keyword):
		return runStyle{color: color.RGB(0x00, 0x00, 0xFF), bold: true}
	case t.InCategory(chroma.Comment):
		return runStyle{color: color.RGB(0x00, 0x80, 0x00)}
	case t.InSubCategory(chroma.LiteralNumber):
		return runStyle{color: color.RGB(0x09, 0x86, 0x58)}
	case t.InCategory(chroma.Literal):
		return runStyle{color: color.RGB(0xA3, 0x15, 0x15)}
	default:
		return runStyle{color: color.Black}
	}
}

// listingRun is one styled slice of the source text, in original order
// with whitespace preserved verbatim.
type listingRun struct {
	text  string
	style runStyle
}

// tokenizeListing lexes the source into styled runs. On lexer failure
// the whole source becomes a single unstyled run — the listing is never
// dropped from the report.
func tokenizeListing(code string, lang analysis.Language) []listingRun {
	iterator, err := lexerFor(lang).Tokenise(nil, code)
	if err != nil {
		slog.Debug("tokenise failed, emitting plain listing", "language", lang, "err", err)
		return []listingRun{{text: code, style: runStyle{color: color.Black}}}
	}

	var runs []listingRun
	for token := iterator(); token != chroma.EOF; token = iterator() {
		if token.Value == "" {
			continue
		}
		runs = append(runs, listingRun{text: token.Value, style: styleFor(token.Type)})
	}
	return runs
}
