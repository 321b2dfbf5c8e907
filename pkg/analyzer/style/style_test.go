package style

import (
	"strings"
	"testing"

	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

func scan(t *testing.T, content string) Report {
	t.Helper()
	s := New()
	defer s.Close()
	return s.Analyze(pyfile.FromBytes("x.py", []byte(content)))
}

func TestAnalyze_Clean(t *testing.T) {
	rep := scan(t, "x = 1\ny = 2\n")

	if rep.Counts.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2", rep.Counts.TotalLines)
	}
	if rep.Counts.LongLines != 0 || rep.Counts.TrailingWhitespaceLines != 0 || rep.Counts.TabLines != 0 {
		t.Errorf("clean file produced counts: %+v", rep.Counts)
	}
	if rep.Counts.MixedIndentation {
		t.Error("clean file flagged mixed indentation")
	}
	if len(rep.Issues) != 0 {
		t.Errorf("clean file produced %d issues", len(rep.Issues))
	}
}

func TestAnalyze_LongLines(t *testing.T) {
	long := "x = '" + strings.Repeat("a", 120) + "'"
	content := strings.Repeat(long+"\n", 15)

	rep := scan(t, content)
	if rep.Counts.LongLines != 15 {
		t.Errorf("LongLines = %d, want 15", rep.Counts.LongLines)
	}
	if rep.Issues[0].Kind != IssueLongLine {
		t.Errorf("issue kind = %s, want %s", rep.Issues[0].Kind, IssueLongLine)
	}
	if rep.Issues[0].Line != 1 {
		t.Errorf("issue line = %d, want 1", rep.Issues[0].Line)
	}
}

func TestAnalyze_ExactBoundaryNotLong(t *testing.T) {
	rep := scan(t, strings.Repeat("a", MaxLineLength)+"\n")
	if rep.Counts.LongLines != 0 {
		t.Errorf("line of exactly %d chars flagged as long", MaxLineLength)
	}
}

func TestAnalyze_TrailingWhitespace(t *testing.T) {
	rep := scan(t, "x = 1  \ny = 2\t\nz = 3\n")
	if rep.Counts.TrailingWhitespaceLines != 2 {
		t.Errorf("TrailingWhitespaceLines = %d, want 2", rep.Counts.TrailingWhitespaceLines)
	}
}

func TestAnalyze_TabLinesCounterOnly(t *testing.T) {
	rep := scan(t, "x = 1\t# tab inside\n")
	if rep.Counts.TabLines != 1 {
		t.Errorf("TabLines = %d, want 1", rep.Counts.TabLines)
	}
	// Tab lines get a counter but no issue entry.
	for _, issue := range rep.Issues {
		if issue.Kind != IssueTrailingWhitespace {
			t.Errorf("unexpected issue %+v", issue)
		}
	}
}

func TestAnalyze_MixedIndentation(t *testing.T) {
	rep := scan(t, "def f():\n\tx = 1\n    y = 2\n")
	if !rep.Counts.MixedIndentation {
		t.Fatal("mixed indentation not detected")
	}

	found := false
	for _, issue := range rep.Issues {
		if issue.Kind == IssueMixedIndentation {
			found = true
			if issue.Line != 0 {
				t.Errorf("mixed indentation issue should be whole-file, got line %d", issue.Line)
			}
		}
	}
	if !found {
		t.Error("no MixedIndentation issue emitted")
	}
}

func TestAnalyze_TabsOnlyNotMixed(t *testing.T) {
	rep := scan(t, "def f():\n\tx = 1\n\ty = 2\n")
	if rep.Counts.MixedIndentation {
		t.Error("tab-only indentation flagged as mixed")
	}
}

func TestAnalyze_IssueCap(t *testing.T) {
	long := strings.Repeat("a", 150)
	content := strings.Repeat(long+"\n", 250)

	rep := scan(t, content)
	if len(rep.Issues) != 200 {
		t.Errorf("issues = %d, want capped at 200", len(rep.Issues))
	}
	if rep.Counts.LongLines != 250 {
		t.Errorf("LongLines counter = %d, want uncapped 250", rep.Counts.LongLines)
	}
}
