// Package verdict folds every analysis signal into one deterministic score,
// a qualitative level, and ordered explanatory notes. Deductions are
// additive and applied in a fixed order, so identical inputs always yield
// the identical verdict.
package verdict

import (
	"fmt"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer/risk"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/structure"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/style"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/syntax"
	"github.com/abdulrahman-code/pyvet/pkg/sandbox"
)

// Level is the qualitative band a score falls into.
type Level string

const (
	LevelExcellent Level = "Excellent"
	LevelGood      Level = "Good"
	LevelFair      Level = "Fair"
	LevelPoor      Level = "Poor"
)

// Verdict is the final trust/quality judgement.
type Verdict struct {
	Score int      `json:"score"`
	Level Level    `json:"level"`
	Notes []string `json:"notes"`
}

// Inputs carries the signals the verdict derives from. Structure is
// ignored unless it ran; Sandbox is nil when no run happened.
type Inputs struct {
	Syntax    syntax.Result
	Style     style.Report
	Risk      risk.Report
	Structure *structure.Report
	Sandbox   *sandbox.RunResult
}

// Evaluate scores the inputs starting from 100. Each deduction is clamped
// individually and appends its note; the final score clamps to [0,100].
func Evaluate(in Inputs) Verdict {
	score := 100
	notes := make([]string, 0)

	if !in.Syntax.OK {
		score -= 80
		notes = append(notes, "Syntax error: the file does not compile.")
	}

	if in.Style.Counts.MixedIndentation {
		score -= 10
		notes = append(notes, "Mixed indentation (tabs + spaces).")
	}

	if ll := in.Style.Counts.LongLines; ll > 0 {
		score -= minInt(10, ll/10+1)
		notes = append(notes, fmt.Sprintf("%d long lines (> 100 chars).", ll))
	}

	if hits := len(in.Risk.Flags); hits > 0 {
		score -= minInt(25, 5*hits)
		notes = append(notes, fmt.Sprintf("Risky patterns detected: %d hit(s).", hits))
	}

	if in.Structure != nil && in.Structure.OK {
		ds := in.Structure.DocNaming
		if !ds.ModuleHasDocstring {
			score -= 5
			notes = append(notes, "Missing module docstring.")
		}
		if mfd := ds.MissingFunctionDocstrings; mfd > 0 {
			score -= minInt(10, mfd)
			notes = append(notes, fmt.Sprintf("%d function(s) missing docstrings.", mfd))
		}
		if ni := len(ds.NamingIssues); ni > 0 {
			score -= minInt(10, ni)
			notes = append(notes, fmt.Sprintf("Naming convention issues: %d item(s).", ni))
		}
	}

	if in.Sandbox != nil {
		if !in.Sandbox.Succeeded {
			score -= 30
			notes = append(notes, "Unit test failed (or crashed).")
		}
		if in.Sandbox.TimedOut {
			score -= 20
			notes = append(notes, "Unit test timed out.")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if len(notes) == 0 {
		notes = append(notes, "No major issues detected.")
	}

	return Verdict{Score: score, Level: LevelFor(score), Notes: notes}
}

// LevelFor maps a score to its band.
func LevelFor(score int) Level {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 75:
		return LevelGood
	case score >= 55:
		return LevelFair
	default:
		return LevelPoor
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
