package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-tools/labgen/internal/analysis"
)

func TestFindToolchain_UnknownLanguage(t *testing.T) {
	tool := FindToolchain(analysis.Language("basic"))
	assert.False(t, tool.Available)
	assert.Empty(t, tool.Path)
}

func TestRunTests_MissingSource(t *testing.T) {
	_, err := RunTests(context.Background(), filepath.Join(t.TempDir(), "absent.py"), analysis.Python, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "read source")
}

func TestRunTests_Python(t *testing.T) {
	if !FindToolchain(analysis.Python).Available {
		t.Skip("python interpreter not installed")
	}

	source := filepath.Join(t.TempDir(), "double.py")
	require.NoError(t, os.WriteFile(source, []byte("n = int(input())\nprint(n * 2)\n"), 0o644))

	report, err := RunTests(context.Background(), source, analysis.Python, []string{"5\n", "10\n"})
	require.NoError(t, err)
	require.True(t, report.Compiled)
	require.Len(t, report.Results, 2)

	first, second := report.Results[0], report.Results[1]
	assert.Equal(t, 1, first.TestNumber)
	assert.Equal(t, "5\n", first.Input)
	assert.Contains(t, first.Stdout, "10")
	assert.Equal(t, 0, first.ReturnCode)
	assert.Empty(t, first.Err)

	assert.Equal(t, 2, second.TestNumber)
	assert.Contains(t, second.Stdout, "20")
	assert.Equal(t, 0, second.ReturnCode)
}

func TestRunTests_PythonRuntimeErrorIsData(t *testing.T) {
	if !FindToolchain(analysis.Python).Available {
		t.Skip("python interpreter not installed")
	}

	source := filepath.Join(t.TempDir(), "crash.py")
	require.NoError(t, os.WriteFile(source, []byte("raise SystemExit(3)\n"), 0o644))

	report, err := RunTests(context.Background(), source, analysis.Python, []string{"", ""})
	require.NoError(t, err)
	require.True(t, report.Compiled)
	require.Len(t, report.Results, 2)

	// One failing run never aborts its siblings.
	for _, result := range report.Results {
		assert.Equal(t, 3, result.ReturnCode)
	}
}

func TestRunTests_NoInputs(t *testing.T) {
	if !FindToolchain(analysis.Python).Available {
		t.Skip("python interpreter not installed")
	}

	source := filepath.Join(t.TempDir(), "noop.py")
	require.NoError(t, os.WriteFile(source, []byte("pass\n"), 0o644))

	report, err := RunTests(context.Background(), source, analysis.Python, nil)
	require.NoError(t, err)
	assert.True(t, report.Compiled)
	assert.Empty(t, report.Results)
}

func TestRunTests_CompilerMissing(t *testing.T) {
	if FindToolchain(analysis.Pascal).Available {
		t.Skip("pascal compiler installed, missing-compiler path not reachable")
	}

	source := filepath.Join(t.TempDir(), "lab1.pas")
	require.NoError(t, os.WriteFile(source, []byte("begin end."), 0o644))

	report, err := RunTests(context.Background(), source, analysis.Pascal, []string{"1\n"})
	require.NoError(t, err)
	assert.False(t, report.Compiled)
	assert.Contains(t, report.CompileError, "compiler for pascal not found")
	assert.Empty(t, report.Results)
}

func TestRunTests_SourceFileUntouched(t *testing.T) {
	if !FindToolchain(analysis.Python).Available {
		t.Skip("python interpreter not installed")
	}

	source := filepath.Join(t.TempDir(), "keep.py")
	code := []byte("print('ok')\n")
	require.NoError(t, os.WriteFile(source, code, 0o644))

	_, err := RunTests(context.Background(), source, analysis.Python, []string{""})
	require.NoError(t, err)

	after, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, code, after)
}
