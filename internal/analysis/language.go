// Package analysis inspects student source files: it detects the
// programming language from the file extension, extracts comments,
// guesses the purpose of the program and tags algorithmic concepts
// by keyword. All of it is deliberately heuristic — regex over text,
// no parsing.
package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Language identifies one of the supported source languages.
type Language string

const (
	Pascal Language = "pascal"
	Python Language = "python"
	CPP    Language = "cpp"
)

// languageExtensions maps lower-cased file extensions to languages.
var languageExtensions = map[string]Language{
	".pas": Pascal,
	".py":  Python,
	".cpp": CPP,
	".cc":  CPP,
	".cxx": CPP,
	".c":   CPP,
}

// displayNames maps internal language tags to human-readable names.
var displayNames = map[Language]string{
	Pascal: "Pascal",
	Python: "Python",
	CPP:    "C++",
}

// UnsupportedLanguageError reports a source file whose extension is not
// in the supported set. It aborts the whole request (no document is
// attempted for an unrecognized file).
type UnsupportedLanguageError struct {
	Path string
	Ext  string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported source format %q for %s (supported: %s)",
		e.Ext, e.Path, strings.Join(SupportedExtensions(), ", "))
}

// DetectLanguage maps a file path to a language by its extension.
// The extension comparison is case-insensitive; nothing else about the
// path is inspected.
func DetectLanguage(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := languageExtensions[ext]
	if !ok {
		return "", &UnsupportedLanguageError{Path: path, Ext: ext}
	}
	return lang, nil
}

// DisplayName returns the human-readable name of the language.
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

// SupportedExtensions lists every recognized extension, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(languageExtensions))
	for ext := range languageExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
