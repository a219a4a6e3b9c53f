package report

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-tools/labgen/internal/analysis"
)

func TestLexerFor_KnownLanguages(t *testing.T) {
	for _, lang := range []analysis.Language{analysis.Pascal, analysis.Python, analysis.CPP} {
		lexer := lexerFor(lang)
		require.NotNil(t, lexer, string(lang))
		assert.NotEqual(t, lexers.Fallback, lexer, string(lang))
	}
}

func TestLexerFor_UnknownLanguageFallsBack(t *testing.T) {
	assert.Equal(t, lexers.Fallback, lexerFor(analysis.Language("basic")))
}

func TestStyleFor(t *testing.T) {
	assert.True(t, styleFor(chroma.Keyword).bold)
	assert.False(t, styleFor(chroma.Comment).bold)
	assert.False(t, styleFor(chroma.Text).bold)
	assert.NotEqual(t, styleFor(chroma.Text).color, styleFor(chroma.LiteralString).color)
	assert.NotEqual(t, styleFor(chroma.LiteralString).color, styleFor(chroma.LiteralNumberInteger).color)
}

func TestTokenizeListing_PreservesSource(t *testing.T) {
	code := "n = int(input())\nprint(n * 2)\n"
	runs := tokenizeListing(code, analysis.Python)
	require.NotEmpty(t, runs)

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.text)
	}
	assert.Equal(t, code, b.String())
}

func TestTokenizeListing_StylesKeywords(t *testing.T) {
	runs := tokenizeListing("if x > 0:\n    pass\n", analysis.Python)

	var foundBold bool
	for _, r := range runs {
		if r.style.bold {
			foundBold = true
			break
		}
	}
	assert.True(t, foundBold, "expected at least one keyword run")
}

func TestTokenizeListing_NoEmptyRuns(t *testing.T) {
	for _, r := range tokenizeListing("writeln('hi');", analysis.Pascal) {
		assert.NotEmpty(t, r.text)
	}
}
