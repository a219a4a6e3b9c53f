package analysis

import "strings"

// algorithmCategories is the fixed category→keywords table. Declaration
// order is the output order. The first matching keyword settles a
// category; every category is checked independently.
var algorithmCategories = []struct {
	Name     string
	Keywords []string
}{
	{"sorting", []string{"sort", "bubble", "quick", "merge", "insertion", "selection"}},
	{"search", []string{"search", "find", "binary", "linear"}},
	{"recursion", []string{"recursive", "recursion", "factorial", "fibonacci"}},
	{"loops", []string{"for", "while", "repeat", "loop"}},
	{"arrays", []string{"array", "list", "vector", "arr"}},
	{"strings", []string{"string", "str", "char", "text"}},
	{"files", []string{"file", "open", "read", "write", "close"}},
	{"math", []string{"math", "sqrt", "pow", "abs", "sin", "cos"}},
}

// DetectAlgorithms tags the source text with algorithmic concept
// categories by case-folded substring matching.
func DetectAlgorithms(code string) []string {
	lower := strings.ToLower(code)
	var detected []string

	for _, category := range algorithmCategories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, keyword) {
				detected = append(detected, category.Name)
				break
			}
		}
	}

	return detected
}
