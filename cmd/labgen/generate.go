package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/codelab-tools/labgen/internal/analysis"
	"github.com/codelab-tools/labgen/internal/executor"
	"github.com/codelab-tools/labgen/internal/flowchart"
	"github.com/codelab-tools/labgen/internal/profile"
	"github.com/codelab-tools/labgen/internal/report"
)

// testSeparator splits a test-data file into individual test inputs.
var testSeparator = regexp.MustCompile(`(?m)^---\s*$`)

func generateCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: labgen generate <source-file>")
	}
	sourcePath := c.Args().First()
	if _, err := os.Stat(sourcePath); err != nil {
		return fmt.Errorf("source file not found: %s", sourcePath)
	}

	fmt.Printf("Analyzing %s...\n", sourcePath)
	primary, err := analysis.AnalyzeFile(sourcePath)
	if err != nil {
		return err
	}
	fmt.Printf("  Language: %s\n", primary.LanguageDisplay)
	fmt.Printf("  Purpose: %s\n", primary.Purpose)
	if len(primary.Algorithms) > 0 {
		fmt.Printf("  Algorithms: %s\n", strings.Join(primary.Algorithms, ", "))
	}

	extras, err := analyzeExtraTasks(c.StringSlice("task"))
	if err != nil {
		return err
	}

	inputs, err := loadTestData(c)
	if err != nil {
		return err
	}

	var runReport *executor.RunReport
	if len(inputs) > 0 {
		fmt.Printf("Running tests (%d)...\n", len(inputs))
		runReport, err = executor.RunTests(c.Context, sourcePath, primary.Language, inputs)
		if err != nil {
			return err
		}
		if runReport.Compiled {
			for _, r := range runReport.Results {
				status := "ok"
				if r.ReturnCode != 0 || r.Err != "" {
					status = "failed"
				}
				fmt.Printf("  Test %d: %s\n", r.TestNumber, status)
			}
		} else {
			fmt.Printf("  Compilation error: %s\n", runReport.CompileError)
		}
	} else {
		fmt.Println("No test data supplied; the test section will say so.")
	}

	outputPath := c.String("output")
	if outputPath == "" {
		outputPath = report.DefaultOutputPath(primary.Filename)
	}

	fmt.Println("Generating flowcharts...")
	tool := flowchart.ProbeLayoutTool()

	diagramPath := renderDiagrams(primary, outputPath, 0, tool)
	tasks := make([]report.Task, 0, len(extras))
	for i, res := range extras {
		tasks = append(tasks, report.Task{
			Analysis:    res,
			DiagramPath: renderDiagrams(res, outputPath, i+1, tool),
		})
	}
	if diagramPath == "" {
		fmt.Println("  No raster flowchart (Graphviz missing or nothing to draw)")
	}

	store := profile.NewStore(c.String("profiles-dir"))
	prof, err := store.Load(c.String("profile"))
	if err != nil {
		return err
	}

	fmt.Println("Generating report...")
	written, err := report.Generate(report.Options{
		Analysis:    primary,
		TestReport:  runReport,
		DiagramPath: diagramPath,
		Student: report.StudentInfo{
			Name:    c.String("name"),
			Group:   c.String("group"),
			Variant: c.String("variant"),
		},
		Profile:        prof,
		ExtraTasks:     tasks,
		TitleOverrides: parseKeyValues(c.StringSlice("title")),
		OutputPath:     outputPath,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Report saved: %s\n", written)
	return nil
}

// renderDiagrams produces the best-effort raster diagram and the
// durable Mermaid sidecar for one analyzed file. taskIndex 0 is the
// primary file; extra tasks get a _task<N> suffix starting at 2.
func renderDiagrams(res *analysis.Result, reportPath string, taskIndex int, tool flowchart.LayoutTool) string {
	nodes := flowchart.ParseStructure(res.Code, res.Language)

	if path, err := flowchart.SaveMermaid(flowchart.Mermaid(nodes), sidecarPath(reportPath, taskIndex)); err != nil {
		fmt.Printf("  Could not save diagram text for %s: %v\n", res.Filename, err)
	} else if path != "" {
		fmt.Printf("  Diagram text: %s\n", path)
	}

	return flowchart.RenderPNG(nodes, "", tool)
}

func sidecarPath(reportPath string, taskIndex int) string {
	base := strings.TrimSuffix(reportPath, filepath.Ext(reportPath))
	if taskIndex > 0 {
		base += fmt.Sprintf("_task%d", taskIndex+1)
	}
	return base + "_flowchart.mmd"
}

// analyzeExtraTasks analyzes additional task files given as "path" or
// "path=label". An unsupported or missing file aborts the request, same
// as the primary.
func analyzeExtraTasks(specs []string) ([]*analysis.Result, error) {
	var results []*analysis.Result
	for _, spec := range specs {
		path, label, _ := strings.Cut(spec, "=")
		res, err := analysis.AnalyzeFile(path)
		if err != nil {
			return nil, err
		}
		res.TaskLabel = label
		results = append(results, res)
	}
	return results, nil
}

// loadTestData merges --test-data values with the inputs parsed from
// --test-file ('---' line separated), in that order.
func loadTestData(c *cli.Context) ([]string, error) {
	inputs := append([]string{}, c.StringSlice("test-data")...)

	if testFile := c.String("test-file"); testFile != "" {
		content, err := os.ReadFile(testFile)
		if err != nil {
			return nil, fmt.Errorf("read test file: %w", err)
		}
		for _, part := range testSeparator.Split(string(content), -1) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				inputs = append(inputs, trimmed)
			}
		}
	}

	return inputs, nil
}

func parseKeyValues(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if key, value, ok := strings.Cut(pair, "="); ok {
			values[key] = value
		}
	}
	return values
}
