package analysis

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// commentPatterns holds the comment syntaxes per language. Every
// pattern captures the comment body in group 1. Groups are applied in
// declaration order against the whole source, so a later group's
// earlier-occurring comment follows an earlier group's later match.
var commentPatterns = map[Language][]*regexp.Regexp{
	Pascal: {
		regexp.MustCompile(`\{([^}]*)\}`),
		regexp.MustCompile(`(?s)\(\*(.*?)\*\)`),
		regexp.MustCompile(`(?m)//(.*)$`),
	},
	Python: {
		regexp.MustCompile(`(?m)#(.*)$`),
		regexp.MustCompile(`(?s)"""(.*?)"""`),
		regexp.MustCompile(`(?s)'''(.*?)'''`),
	},
	CPP: {
		regexp.MustCompile(`(?m)//(.*)$`),
		regexp.MustCompile(`(?s)/\*(.*?)\*/`),
	},
}

// purposeKeywords mark a comment as likely describing the goal of the
// lab work. Matched case-insensitively as substrings. Russian entries
// are kept alongside English ones since the tool targets coursework in
// both.
var purposeKeywords = []string{
	"цель", "задание", "задача", "лабораторная",
	"purpose", "task", "lab", "objective",
}

// ExtractComments collects all comments of the language's syntaxes from
// the source text. Bodies are trimmed and empty comments dropped.
func ExtractComments(code string, lang Language) []string {
	var comments []string
	for _, pattern := range commentPatterns[lang] {
		for _, match := range pattern.FindAllStringSubmatch(code, -1) {
			if c := strings.TrimSpace(match[1]); c != "" {
				comments = append(comments, c)
			}
		}
	}
	return comments
}

// ExtractPurpose picks a purpose string for the program: the first
// comment containing a purpose keyword, else the first comment, else a
// synthesized sentence built from the file's base name.
func ExtractPurpose(code string, lang Language, path string) string {
	comments := ExtractComments(code, lang)

	for _, comment := range comments {
		lower := strings.ToLower(comment)
		for _, keyword := range purposeKeywords {
			if strings.Contains(lower, keyword) {
				return comment
			}
		}
	}

	if len(comments) > 0 {
		return comments[0]
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("Running program '%s'", base)
}
