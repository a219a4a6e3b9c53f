// Package profile stores named report-formatting profiles. A built-in
// default is the base; named profiles live one JSON file per name and
// are shallow-merged over a fresh copy of the default on every load —
// loading never mutates shared state.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Margins are page margins in centimeters.
type Margins struct {
	TopCm    float64 `json:"top_cm"`
	BottomCm float64 `json:"bottom_cm"`
	LeftCm   float64 `json:"left_cm"`
	RightCm  float64 `json:"right_cm"`
}

// TitlePage holds the institution fields printed on the title page.
type TitlePage struct {
	University string `json:"university"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	Discipline string `json:"discipline"`
	WorkType   string `json:"work_type"`
}

// Profile is a named bundle of document-formatting preferences.
type Profile struct {
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	FontName     string    `json:"font_name"`
	FontSize     int       `json:"font_size"`
	CodeFontName string    `json:"code_font_name"`
	CodeFontSize int       `json:"code_font_size"`
	Margins      Margins   `json:"margins"`
	Sections     []string  `json:"sections"`
	TitlePage    TitlePage `json:"title_page"`
	LineSpacing  float64   `json:"line_spacing"`
	PageNumbers  bool      `json:"page_numbers"`
}

// Default returns a fresh copy of the built-in profile. Callers may
// mutate the result freely.
func Default() Profile {
	return Profile{
		Name:         "default",
		DisplayName:  "Standard",
		FontName:     "Times New Roman",
		FontSize:     14,
		CodeFontName: "Courier New",
		CodeFontSize: 10,
		Margins: Margins{
			TopCm:    2.0,
			BottomCm: 2.0,
			LeftCm:   3.0,
			RightCm:  1.5,
		},
		Sections: []string{
			"title_page",
			"purpose",
			"flowchart",
			"listing",
			"test_results",
			"conclusion",
		},
		TitlePage: TitlePage{
			University: "University",
			Faculty:    "Faculty",
			Department: "Department",
			Discipline: "Programming",
			WorkType:   "Laboratory work",
		},
		LineSpacing: 1.5,
		PageNumbers: true,
	}
}

// Store manages profile backing files in one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created
// lazily on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load resolves a profile by name. "default" and unknown names yield
// the built-in default; an existing backing file is shallow-merged over
// it at the top level (a nested object in the file replaces the default
// nested object wholesale).
func (s *Store) Load(name string) (Profile, error) {
	def := Default()
	if name == "default" {
		return def, nil
	}

	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read profile %s: %w", name, err)
	}

	var overrides map[string]json.RawMessage
	if err := json.Unmarshal(data, &overrides); err != nil {
		return def, fmt.Errorf("parse profile %s: %w", name, err)
	}
	return merge(def, overrides)
}

// merge applies top-level overrides to a copy of the defaults by
// round-tripping through JSON, so the merge semantics match the on-disk
// format exactly.
func merge(def Profile, overrides map[string]json.RawMessage) (Profile, error) {
	base, err := json.Marshal(def)
	if err != nil {
		return def, fmt.Errorf("marshal default profile: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return def, fmt.Errorf("decode default profile: %w", err)
	}
	for key, value := range overrides {
		fields[key] = value
	}
	mergedJSON, err := json.Marshal(fields)
	if err != nil {
		return def, fmt.Errorf("merge profile: %w", err)
	}
	var merged Profile
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return def, fmt.Errorf("decode merged profile: %w", err)
	}
	return merged, nil
}

// Save writes the profile to its backing file, overwriting
// unconditionally.
func (s *Store) Save(name string, p Profile) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write profile %s: %w", name, err)
	}
	return nil
}

// Delete removes the named profile's backing file. Deleting "default"
// is refused. Reports whether a deletion occurred.
func (s *Store) Delete(name string) (bool, error) {
	if name == "default" {
		return false, nil
	}
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete profile %s: %w", name, err)
	}
	return true, nil
}

// List returns every known profile name, "default" first, each once.
func (s *Store) List() ([]string, error) {
	names := []string{"default"}

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	seen := map[string]bool{"default": true}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}
