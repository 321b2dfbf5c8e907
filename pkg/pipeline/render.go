package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/abdulrahman-code/pyvet/internal/output"
	"github.com/abdulrahman-code/pyvet/pkg/verdict"
)

// Ensure Report satisfies the formatter contract.
var _ output.Renderable = (*Report)(nil)

// RenderData returns the report for JSON serialization.
func (r *Report) RenderData() any {
	return r
}

// RenderText writes the human-readable report.
func (r *Report) RenderText(w io.Writer, colored bool) error {
	bold := func(format string, a ...any) {
		if colored {
			color.New(color.Bold).Fprintf(w, format, a...)
		} else {
			fmt.Fprintf(w, format, a...)
		}
	}

	bold("File: %s (xxh64:%s)\n\n", r.File.Path, r.File.Digest)

	bold("Verdict\n")
	fmt.Fprintln(w, "=======")
	scoreLine := fmt.Sprintf("Score: %d/100 (%s)", r.Verdict.Score, r.Verdict.Level)
	if colored {
		levelColor(r.Verdict.Level).Fprintln(w, scoreLine)
	} else {
		fmt.Fprintln(w, scoreLine)
	}
	for _, note := range r.Verdict.Notes {
		fmt.Fprintf(w, "  - %s\n", note)
	}
	fmt.Fprintln(w)

	if r.Syntax.OK {
		fmt.Fprintln(w, "Syntax: OK")
	} else if e := r.Syntax.Error; e != nil {
		fmt.Fprintf(w, "Syntax: %s at line %d, column %d: %s\n", e.Kind, e.Line, e.Column, e.Message)
		if e.LineText != "" {
			fmt.Fprintf(w, "    %s\n", e.LineText)
		}
	}
	fmt.Fprintln(w)

	c := r.Style.Counts
	bold("Style\n")
	fmt.Fprintf(w, "  Lines: %d  Long (>100): %d  Trailing whitespace: %d  Tab lines: %d  Mixed indentation: %v\n\n",
		c.TotalLines, c.LongLines, c.TrailingWhitespaceLines, c.TabLines, c.MixedIndentation)

	bold("Risky patterns\n")
	if len(r.Risk.Flags) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, f := range r.Risk.Flags {
		fmt.Fprintf(w, "  - %s: %s\n", f.Pattern, f.Detail)
	}
	fmt.Fprintln(w)

	bold("Comments\n")
	fmt.Fprintf(w, "  %d comment(s) over %d line(s), density %.4f\n",
		r.Comments.CommentLines, r.Comments.TotalLines, r.Comments.Density)
	for _, s := range r.Comments.SampleComments {
		fmt.Fprintf(w, "  # %s\n", s)
	}
	fmt.Fprintln(w)

	if !r.Structure.OK {
		fmt.Fprintf(w, "Structure analysis: %s\n\n", r.Structure.Reason)
	} else {
		if len(r.Structure.ComplexityTop) > 0 {
			if err := r.complexityTable().RenderText(w, colored); err != nil {
				return err
			}
		}
		r.renderDocNaming(w, bold)
	}

	if r.Sandbox != nil {
		bold("Unit test\n")
		status := "PASS"
		if !r.Sandbox.Succeeded {
			status = "FAIL"
		}
		fmt.Fprintf(w, "  %s (%s mode, exit %d, %.3fs", status, r.Sandbox.Variant, r.Sandbox.ExitCode, r.Sandbox.Seconds)
		if r.Sandbox.TimedOut {
			fmt.Fprint(w, ", timed out")
		}
		fmt.Fprintln(w, ")")
		fmt.Fprintf(w, "  Command: %s\n", strings.Join(r.Sandbox.Command, " "))
		if !r.Sandbox.Succeeded && r.Sandbox.Stderr != "" {
			fmt.Fprintln(w, "  Stderr tail:")
			for _, line := range lastLines(r.Sandbox.Stderr, 10) {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}

	return nil
}

func (r *Report) renderDocNaming(w io.Writer, bold func(string, ...any)) {
	dn := r.Structure.DocNaming

	bold("Documentation\n")
	if dn.ModuleHasDocstring {
		fmt.Fprintf(w, "  Module docstring: present (%d chars)\n", dn.ModuleDocstringLength)
	} else {
		fmt.Fprintln(w, "  Module docstring: missing")
	}
	fmt.Fprintf(w, "  Functions missing docstrings: %d of %d\n", dn.MissingFunctionDocstrings, len(dn.Functions))
	fmt.Fprintf(w, "  Classes missing docstrings: %d of %d\n", dn.MissingClassDocstrings, len(dn.Classes))
	for _, issue := range dn.NamingIssues {
		fmt.Fprintf(w, "  - %s: %s (line %d)\n", issue.Kind, issue.Name, issue.Line)
	}
	fmt.Fprintln(w)
}

// RenderMarkdown writes the report as markdown.
func (r *Report) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "# Analysis: %s\n\n", r.File.Path)
	fmt.Fprintf(w, "**Score: %d/100 (%s)**\n\n", r.Verdict.Score, r.Verdict.Level)
	for _, note := range r.Verdict.Notes {
		fmt.Fprintf(w, "- %s\n", note)
	}
	fmt.Fprintln(w)

	if r.Syntax.OK {
		fmt.Fprintln(w, "Syntax: OK")
	} else if e := r.Syntax.Error; e != nil {
		fmt.Fprintf(w, "Syntax: %s at line %d, column %d: %s\n", e.Kind, e.Line, e.Column, e.Message)
	}
	fmt.Fprintln(w)

	c := r.Style.Counts
	fmt.Fprintln(w, "## Style")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Lines: %d\n- Long lines (>100): %d\n- Trailing whitespace lines: %d\n- Tab lines: %d\n- Mixed indentation: %v\n\n",
		c.TotalLines, c.LongLines, c.TrailingWhitespaceLines, c.TabLines, c.MixedIndentation)

	fmt.Fprintln(w, "## Risky patterns")
	fmt.Fprintln(w)
	if len(r.Risk.Flags) == 0 {
		fmt.Fprintln(w, "None.")
	}
	for _, f := range r.Risk.Flags {
		fmt.Fprintf(w, "- `%s`: %s\n", f.Pattern, f.Detail)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "## Comments\n\n%d comment(s) over %d line(s), density %.4f\n\n",
		r.Comments.CommentLines, r.Comments.TotalLines, r.Comments.Density)

	if r.Structure.OK && len(r.Structure.ComplexityTop) > 0 {
		if err := r.complexityTable().RenderMarkdown(w); err != nil {
			return err
		}
	}

	if r.Sandbox != nil {
		status := "PASS"
		if !r.Sandbox.Succeeded {
			status = "FAIL"
		}
		fmt.Fprintf(w, "## Unit test\n\n%s (%s mode, exit %d, %.3fs)\n\n",
			status, r.Sandbox.Variant, r.Sandbox.ExitCode, r.Sandbox.Seconds)
	}

	return nil
}

func (r *Report) complexityTable() *output.Table {
	rows := make([][]string, 0, len(r.Structure.ComplexityTop))
	for _, fn := range r.Structure.ComplexityTop {
		rows = append(rows, []string{
			fn.Name,
			strconv.FormatUint(uint64(fn.Line), 10),
			strconv.Itoa(fn.Complexity),
		})
	}
	return output.NewTable("Most complex functions", []string{"Function", "Line", "Complexity"}, rows, r.Structure.ComplexityTop)
}

func levelColor(l verdict.Level) *color.Color {
	switch l {
	case verdict.LevelExcellent, verdict.LevelGood:
		return color.New(color.FgGreen)
	case verdict.LevelFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func lastLines(s string, n int) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
