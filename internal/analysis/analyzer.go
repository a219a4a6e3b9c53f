package analysis

import (
	"fmt"
	"os"
	"path/filepath"
)

// Result is the full analysis of one source file. It is created once
// by AnalyzeFile and not mutated afterwards.
type Result struct {
	Language        Language
	LanguageDisplay string
	Comments        []string
	Algorithms      []string
	Purpose         string
	Code            string
	Filename        string
	TaskLabel       string
}

// AnalyzeFile runs the complete analysis pipeline on one source file:
// language detection, comment extraction, algorithm tagging and the
// purpose heuristic. Returns *UnsupportedLanguageError when the
// extension is not recognized.
func AnalyzeFile(path string) (*Result, error) {
	lang, err := DetectLanguage(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	code := string(data)

	return &Result{
		Language:        lang,
		LanguageDisplay: lang.DisplayName(),
		Comments:        ExtractComments(code, lang),
		Algorithms:      DetectAlgorithms(code),
		Purpose:         ExtractPurpose(code, lang, path),
		Code:            code,
		Filename:        filepath.Base(path),
	}, nil
}
