// Package executor compiles student programs (where the language needs
// it) and runs them against batches of test inputs, capturing output
// per run under a wall-clock timeout. Compilation always happens on a
// disposable temporary copy so the original file is never touched and
// concurrent requests cannot collide on a shared artifact path.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/codelab-tools/labgen/internal/analysis"
)

// DefaultTimeout bounds each compiler invocation and each test run.
const DefaultTimeout = 30 * time.Second

// toolchainCandidates lists compiler/interpreter program names per
// language, in resolution order.
var toolchainCandidates = map[analysis.Language][]string{
	analysis.Pascal: {"pabcnetc", "fpc"},
	analysis.Python: {"python3", "python"},
	analysis.CPP:    {"g++", "gcc"},
}

// Toolchain is the capability probe result for a language's compiler
// or interpreter.
type Toolchain struct {
	Available bool
	Path      string
}

// FindToolchain resolves the first available candidate binary for the
// language.
func FindToolchain(lang analysis.Language) Toolchain {
	for _, name := range toolchainCandidates[lang] {
		if path, err := exec.LookPath(name); err == nil {
			return Toolchain{Available: true, Path: path}
		}
	}
	slog.Debug("no toolchain found", "language", lang)
	return Toolchain{}
}

// RunResult is the outcome of one test run. A failed run is data, not
// an error: timeouts and launch failures produce ReturnCode -1 with an
// explanatory message and never abort sibling tests.
type RunResult struct {
	TestNumber int
	Input      string
	Stdout     string
	Stderr     string
	ReturnCode int
	Err        string
}

// RunReport is the outcome of compiling and running one program against
// a batch of inputs. Compiled == false implies Results is empty.
type RunReport struct {
	Compiled     bool
	CompileError string
	Results      []RunResult
}

// RunTests copies the source into a private temporary directory,
// compiles it if the language requires compilation, and runs the
// program once per input string, in order. Test cases are fully
// isolated: no run affects any other. The returned error covers only
// infrastructure failures (temp dir, copy); compile and run failures
// are reported inside the RunReport.
func RunTests(ctx context.Context, sourcePath string, lang analysis.Language, inputs []string) (*RunReport, error) {
	tmpDir, err := os.MkdirTemp("", "labgen-build-")
	if err != nil {
		return nil, fmt.Errorf("create build directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpSource := filepath.Join(tmpDir, "program"+filepath.Ext(sourcePath))
	code, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", sourcePath, err)
	}
	if err := os.WriteFile(tmpSource, code, 0o644); err != nil {
		return nil, fmt.Errorf("copy source to build directory: %w", err)
	}

	executable, compileErr := compile(ctx, tmpSource, lang)
	if compileErr != "" {
		return &RunReport{Compiled: false, CompileError: compileErr}, nil
	}

	report := &RunReport{Compiled: true}
	for i, input := range inputs {
		result := runOnce(ctx, executable, lang, input, DefaultTimeout)
		result.TestNumber = i + 1
		result.Input = input
		report.Results = append(report.Results, result)
	}
	return report, nil
}

// compile produces an executable path for the source, or an error
// message. The interpreted language skips compilation entirely and uses
// the source itself as the executable.
func compile(ctx context.Context, sourcePath string, lang analysis.Language) (string, string) {
	if lang == analysis.Python {
		return sourcePath, ""
	}

	tool := FindToolchain(lang)
	if !tool.Available {
		return "", fmt.Sprintf("compiler for %s not found", lang)
	}

	outputPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	args := []string{sourcePath}
	if lang == analysis.CPP {
		args = append(args, "-o", outputPath)
	}

	cctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(cctx, tool.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return "", "compilation timed out"
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", msg
	}

	// fpc and g++ both leave the binary next to the source, extension
	// stripped; verify it actually appeared.
	if _, err := os.Stat(outputPath); err != nil {
		return "", "executable not found after compilation"
	}
	return outputPath, ""
}

// runOnce executes the program with the input fed on stdin. Platform
// failures (timeout, missing binary, permission) are mapped to
// ReturnCode -1 plus a message instead of propagating.
func runOnce(ctx context.Context, executable string, lang analysis.Language, input string, timeout time.Duration) RunResult {
	argv := []string{executable}
	if lang == analysis.Python {
		interpreter := FindToolchain(analysis.Python)
		if !interpreter.Available {
			return RunResult{ReturnCode: -1, Err: "interpreter for python not found"}
		}
		argv = []string{interpreter.Path, executable}
	}

	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(rctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}

	switch {
	case errors.Is(rctx.Err(), context.DeadlineExceeded):
		return RunResult{ReturnCode: -1, Err: fmt.Sprintf("execution timed out (%s)", timeout)}
	case err == nil:
		return result
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ReturnCode = exitErr.ExitCode()
			return result
		}
		result.ReturnCode = -1
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
			result.Err = fmt.Sprintf("cannot run: %s", executable)
		case errors.Is(err, fs.ErrPermission):
			result.Err = fmt.Sprintf("permission denied: %s", executable)
		default:
			result.Err = err.Error()
		}
		return result
	}
}
