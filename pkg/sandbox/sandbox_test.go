package sandbox

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSmokeTestScript(t *testing.T) {
	script := smokeTestScript("target_module")

	for _, want := range []string{
		"import unittest",
		"import importlib",
		`importlib.import_module("target_module")`,
		"def test_import",
		"def test_has_public_names",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestShouldRetryWithoutIsolation(t *testing.T) {
	cases := []struct {
		name string
		res  *RunResult
		want bool
	}{
		{
			name: "nil result",
			res:  nil,
			want: false,
		},
		{
			name: "missing module in stderr",
			res: &RunResult{
				Variant: VariantIsolated,
				Stderr:  "ModuleNotFoundError: No module named 'requests'",
			},
			want: true,
		},
		{
			name: "missing module in stdout",
			res: &RunResult{
				Variant: VariantIsolated,
				Stdout:  "ERROR: ModuleNotFoundError: No module named 'numpy'",
			},
			want: true,
		},
		{
			name: "succeeded run never retries",
			res: &RunResult{
				Succeeded: true,
				Variant:   VariantIsolated,
				Stderr:    "ModuleNotFoundError",
			},
			want: false,
		},
		{
			name: "system variant never retries",
			res: &RunResult{
				Variant: VariantSystem,
				Stderr:  "ModuleNotFoundError: No module named 'requests'",
			},
			want: false,
		},
		{
			name: "assertion failure is terminal",
			res: &RunResult{
				Variant: VariantIsolated,
				Stderr:  "AssertionError: 1 != 2",
			},
			want: false,
		},
		{
			name: "timeout is terminal",
			res: &RunResult{
				Variant:  VariantIsolated,
				TimedOut: true,
				ExitCode: TimeoutExitCode,
				Stderr:   "Process timed out.",
			},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldRetryWithoutIsolation(tc.res); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTruncateKeepsTail(t *testing.T) {
	res := &RunResult{
		Stdout: strings.Repeat("a", 50) + "END",
		Stderr: "short",
	}
	res.truncate(10)

	if res.Stdout != "aaaaaaaEND" {
		t.Errorf("stdout = %q, want last 10 bytes", res.Stdout)
	}
	if res.Stderr != "short" {
		t.Errorf("stderr = %q, should be untouched below the cap", res.Stderr)
	}
}

func TestOptions(t *testing.T) {
	r := New(
		WithTimeout(5*time.Second),
		WithTailBytes(100),
		WithInterpreter("/usr/bin/python3.12"),
	)
	if r.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", r.timeout)
	}
	if r.tailBytes != 100 {
		t.Errorf("tailBytes = %d, want 100", r.tailBytes)
	}
	if r.python != "/usr/bin/python3.12" {
		t.Errorf("python = %q", r.python)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	r := New(WithTimeout(-1), WithTailBytes(0), WithInterpreter(""))
	if r.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want default", r.timeout)
	}
	if r.tailBytes != DefaultTailBytes {
		t.Errorf("tailBytes = %d, want default", r.tailBytes)
	}
	if r.python == "" {
		t.Error("python should fall back to a default")
	}
}

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidate.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ImportableModule(t *testing.T) {
	requirePython(t)

	path := writeTemp(t, "def greet(name):\n    return 'hello ' + name\n")
	res, err := New().Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Succeeded {
		t.Errorf("expected success, stderr: %s", res.Stderr)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	if res.Variant != VariantIsolated {
		t.Errorf("variant = %s, want isolated", res.Variant)
	}
	if res.Seconds <= 0 {
		t.Errorf("seconds = %v, want > 0", res.Seconds)
	}
}

func TestRun_ImportError(t *testing.T) {
	requirePython(t)

	path := writeTemp(t, "raise RuntimeError('boom')\n")
	res, err := New().Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Succeeded {
		t.Error("expected failure for a module that raises at import")
	}
	if res.ExitCode == 0 {
		t.Error("exit code should be nonzero")
	}
}

func TestRun_Timeout(t *testing.T) {
	requirePython(t)

	path := writeTemp(t, "import time\ntime.sleep(60)\nvalue = 1\n")
	res, err := New(WithTimeout(2 * time.Second)).Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.TimedOut {
		t.Error("expected TimedOut")
	}
	if res.ExitCode != TimeoutExitCode {
		t.Errorf("exit code = %d, want %d", res.ExitCode, TimeoutExitCode)
	}
	if res.Succeeded {
		t.Error("a timed-out run cannot succeed")
	}
}

func TestRun_MissingFile(t *testing.T) {
	requirePython(t)

	_, err := New().Run(context.Background(), filepath.Join(t.TempDir(), "absent.py"))
	if err == nil {
		t.Fatal("expected staging error for a missing file")
	}
}
