// Package sandbox confirms a candidate file is loadable by importing it in
// an isolated, time-bounded child process. It stages the file under a
// canonical module name in a private temporary directory, synthesizes a
// minimal unittest script, and runs test discovery with a hard wall-clock
// timeout. A failing or timed-out run is a reportable outcome, not an
// error; only staging problems are errors.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// moduleName decouples execution identity from the candidate's
	// original, possibly non-identifier filename.
	moduleName   = "target_module"
	testFileName = "test_basic.py"

	// TimeoutExitCode is the sentinel recorded when the run is killed at
	// the deadline, mirroring the shell's timeout convention.
	TimeoutExitCode = 124

	// DefaultTimeout bounds the child's wall-clock lifetime.
	DefaultTimeout = 20 * time.Second

	// DefaultTailBytes caps how much captured stdout/stderr is kept.
	DefaultTailBytes = 20000
)

// Variant records which startup mode produced the returned result.
type Variant string

const (
	// VariantIsolated runs the interpreter with -I: no user site packages,
	// no environment variables, no current-directory imports.
	VariantIsolated Variant = "isolated"
	// VariantSystem runs without -I so environment-provided libraries
	// resolve.
	VariantSystem Variant = "system"
)

// RunResult is the terminal outcome of one sandbox run.
type RunResult struct {
	Succeeded bool     `json:"ok"`
	ExitCode  int      `json:"returncode"`
	Stdout    string   `json:"stdout"`
	Stderr    string   `json:"stderr"`
	Seconds   float64  `json:"seconds"`
	TimedOut  bool     `json:"timed_out"`
	Variant   Variant  `json:"variant"`
	Command   []string `json:"command"`
}

// Runner stages and executes the smoke test.
type Runner struct {
	timeout   time.Duration
	tailBytes int
	python    string
}

// Option is a functional option for configuring Runner.
type Option func(*Runner)

// WithTimeout sets the hard wall-clock budget for one attempt.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithTailBytes sets how many trailing bytes of captured output are kept.
func WithTailBytes(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.tailBytes = n
		}
	}
}

// WithInterpreter sets the Python interpreter executable.
func WithInterpreter(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.python = path
		}
	}
}

// New creates a sandbox runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		timeout:   DefaultTimeout,
		tailBytes: DefaultTailBytes,
		python:    defaultInterpreter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultInterpreter() string {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return "python3"
}

// Run stages the file at path and executes the smoke test. The first
// attempt uses the isolated startup mode; if that attempt fails because a
// needed module could not be located, exactly one retry runs without
// isolation. The staging directory is removed on every exit path.
func (r *Runner) Run(ctx context.Context, path string) (*RunResult, error) {
	dir, err := os.MkdirTemp("", "pyvet-sandbox-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := copyFile(path, filepath.Join(dir, moduleName+".py")); err != nil {
		return nil, fmt.Errorf("failed to stage candidate file: %w", err)
	}
	script := smokeTestScript(moduleName)
	if err := os.WriteFile(filepath.Join(dir, testFileName), []byte(script), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write smoke test: %w", err)
	}

	first, err := r.runOnce(ctx, dir, VariantIsolated)
	if err != nil {
		return nil, err
	}
	if !ShouldRetryWithoutIsolation(first) {
		first.truncate(r.tailBytes)
		return first, nil
	}

	// The candidate may legitimately depend on environment-provided
	// libraries the isolated mode excludes. One retry, never more.
	second, err := r.runOnce(ctx, dir, VariantSystem)
	if err != nil {
		return nil, err
	}
	second.truncate(r.tailBytes)
	return second, nil
}

// ShouldRetryWithoutIsolation reports whether a failed isolated attempt
// should be retried in system mode. Only a module-not-found signature
// qualifies; assertion failures, crashes, and timeouts are terminal.
func ShouldRetryWithoutIsolation(res *RunResult) bool {
	if res == nil || res.Succeeded || res.Variant != VariantIsolated {
		return false
	}
	return strings.Contains(res.Stderr+res.Stdout, "ModuleNotFoundError")
}

// runOnce launches one test-discovery invocation rooted at dir.
func (r *Runner) runOnce(ctx context.Context, dir string, variant Variant) (*RunResult, error) {
	args := []string{"-m", "unittest", "discover", "-v"}
	if variant == VariantIsolated {
		args = append([]string{"-I"}, args...)
	}

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, r.python, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// The child gets its own process group so deadline expiry kills the
	// whole tree, not just the interpreter.
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return terminateProcessTree(cmd)
	}

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	timedOut := errors.Is(cctx.Err(), context.DeadlineExceeded)

	res := &RunResult{
		Succeeded: runErr == nil && !timedOut,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Seconds:   math.Round(elapsed.Seconds()*1000) / 1000,
		TimedOut:  timedOut,
		Variant:   variant,
		Command:   append([]string{r.python}, args...),
	}

	switch {
	case timedOut:
		res.ExitCode = TimeoutExitCode
		if res.Stderr == "" {
			res.Stderr = "Process timed out."
		}
	case runErr == nil:
		res.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// The interpreter never started; nothing to report on.
			return nil, fmt.Errorf("failed to run %s: %w", r.python, runErr)
		}
	}

	return res, nil
}

// truncate keeps only the bounded tail of captured output.
func (res *RunResult) truncate(tailBytes int) {
	res.Stdout = tail(res.Stdout, tailBytes)
	res.Stderr = tail(res.Stderr, tailBytes)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// smokeTestScript synthesizes the minimal unittest module: the staged file
// must import and expose at least one publicly-named symbol.
func smokeTestScript(module string) string {
	return fmt.Sprintf(`# Auto-generated basic tests
import unittest
import importlib

class BasicTests(unittest.TestCase):
    def test_import(self):
        m = importlib.import_module(%q)
        self.assertIsNotNone(m)

    def test_has_public_names(self):
        m = importlib.import_module(%q)
        public = [n for n in dir(m) if not n.startswith("_")]
        self.assertGreaterEqual(len(public), 1)

if __name__ == "__main__":
    unittest.main(verbosity=2)
`, module, module)
}
