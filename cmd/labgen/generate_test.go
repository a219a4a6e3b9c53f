package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "reports/report_lab1_flowchart.mmd", sidecarPath("reports/report_lab1.docx", 0))
	assert.Equal(t, "reports/report_lab1_task2_flowchart.mmd", sidecarPath("reports/report_lab1.docx", 1))
	assert.Equal(t, "reports/report_lab1_task3_flowchart.mmd", sidecarPath("reports/report_lab1.docx", 2))
}

func TestParseKeyValues(t *testing.T) {
	assert.Nil(t, parseKeyValues(nil))

	values := parseKeyValues([]string{"university=STU", "discipline=Algorithms", "malformed"})
	assert.Equal(t, map[string]string{"university": "STU", "discipline": "Algorithms"}, values)
}

func TestAnalyzeExtraTasks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab2.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))

	results, err := analyzeExtraTasks([]string{path + "=Task 2"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Task 2", results[0].TaskLabel)
	assert.Equal(t, "lab2.py", results[0].Filename)
}

func TestAnalyzeExtraTasks_MissingFileAborts(t *testing.T) {
	_, err := analyzeExtraTasks([]string{filepath.Join(t.TempDir(), "absent.py")})
	assert.Error(t, err)
}

// runWithFlags drives a throwaway command so the helpers under test see
// a real flag-parsed context.
func runWithFlags(t *testing.T, flags []cli.Flag, args []string, action cli.ActionFunc) {
	t.Helper()
	app := &cli.App{
		Commands: []*cli.Command{{Name: "probe", Flags: flags, Action: action}},
	}
	require.NoError(t, app.Run(append([]string{"labgen", "probe"}, args...)))
}

func TestLoadTestData_FlagsOnly(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringSliceFlag{Name: "test-data"},
		&cli.StringFlag{Name: "test-file"},
	}
	runWithFlags(t, flags, []string{"--test-data", "5", "--test-data", "10"}, func(c *cli.Context) error {
		inputs, err := loadTestData(c)
		require.NoError(t, err)
		assert.Equal(t, []string{"5", "10"}, inputs)
		return nil
	})
}

func TestLoadTestData_FileSeparators(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "tests.txt")
	content := "5\n7\n---\n10\n---\n\n---\n3 4\n"
	require.NoError(t, os.WriteFile(testFile, []byte(content), 0o644))

	flags := []cli.Flag{
		&cli.StringSliceFlag{Name: "test-data"},
		&cli.StringFlag{Name: "test-file"},
	}
	runWithFlags(t, flags, []string{"--test-data", "1", "--test-file", testFile}, func(c *cli.Context) error {
		inputs, err := loadTestData(c)
		require.NoError(t, err)
		// Flag inputs first, then the file inputs; blank chunks dropped.
		assert.Equal(t, []string{"1", "5\n7", "10", "3 4"}, inputs)
		return nil
	})
}

func TestLoadTestData_MissingFile(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringSliceFlag{Name: "test-data"},
		&cli.StringFlag{Name: "test-file"},
	}
	app := &cli.App{
		Commands: []*cli.Command{{Name: "probe", Flags: flags, Action: func(c *cli.Context) error {
			_, err := loadTestData(c)
			return err
		}}},
	}
	err := app.Run([]string{"labgen", "probe", "--test-file", filepath.Join(t.TempDir(), "absent.txt")})
	assert.ErrorContains(t, err, "read test file")
}
