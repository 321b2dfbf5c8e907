package risk

import (
	"testing"

	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

func scan(content string) Report {
	s := New()
	defer s.Close()
	return s.Analyze(pyfile.FromBytes("x.py", []byte(content)))
}

func TestAnalyze_Clean(t *testing.T) {
	rep := scan("def add(a, b):\n    return a + b\n")
	if len(rep.Flags) != 0 {
		t.Errorf("clean source produced flags: %+v", rep.Flags)
	}
}

func TestAnalyze_SingleHit(t *testing.T) {
	rep := scan("import os\nos.system('ls')\n")
	if len(rep.Flags) != 1 {
		t.Fatalf("flags = %d, want 1", len(rep.Flags))
	}
	if rep.Flags[0].Pattern != "os.system" {
		t.Errorf("pattern = %q, want os.system", rep.Flags[0].Pattern)
	}
}

func TestAnalyze_OneHitPerPattern(t *testing.T) {
	rep := scan("eval('1')\neval('2')\neval('3')\n")
	if len(rep.Flags) != 1 {
		t.Errorf("repeated occurrences should yield one hit, got %d", len(rep.Flags))
	}
}

func TestAnalyze_MultiplePatterns(t *testing.T) {
	src := "from os import *\nimport pickle\neval(x)\nexec(y)\npickle.loads(data)\n"
	rep := scan(src)
	if len(rep.Flags) != 4 {
		t.Fatalf("flags = %d, want 4: %+v", len(rep.Flags), rep.Flags)
	}

	// Order follows the fixed pattern table.
	want := []string{"eval(", "exec(", "pickle.loads", "import *"}
	for i, f := range rep.Flags {
		if f.Pattern != want[i] {
			t.Errorf("flag[%d] = %q, want %q", i, f.Pattern, want[i])
		}
	}
}

func TestAnalyze_SubprocessPopen(t *testing.T) {
	rep := scan("import subprocess\np = subprocess.Popen(['ls'])\n")
	if len(rep.Flags) != 1 || rep.Flags[0].Pattern != "subprocess.Popen" {
		t.Errorf("flags = %+v, want single subprocess.Popen hit", rep.Flags)
	}
}
