// Package style scans a document line by line for structural issues: long
// lines, trailing whitespace, tab characters, and file-scoped mixed
// indentation.
package style

import (
	"fmt"
	"strings"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer"
	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

// MaxLineLength is the length beyond which a line is flagged as long.
const MaxLineLength = 100

// maxIssues caps the emitted issue list; counters are not capped.
const maxIssues = 200

// Ensure Scanner implements analyzer.DocumentAnalyzer.
var _ analyzer.DocumentAnalyzer[Report] = (*Scanner)(nil)

// IssueKind identifies the kind of a style issue.
type IssueKind string

const (
	IssueLongLine           IssueKind = "LongLine"
	IssueTrailingWhitespace IssueKind = "TrailingWhitespace"
	IssueMixedIndentation   IssueKind = "MixedIndentation"
)

// Issue is one style finding. Line is 0 for whole-file issues.
type Issue struct {
	Line   int       `json:"line,omitempty"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// Counts holds the per-file counters.
type Counts struct {
	TotalLines              int  `json:"total_lines"`
	LongLines               int  `json:"long_lines_gt_100"`
	TrailingWhitespaceLines int  `json:"trailing_whitespace_lines"`
	TabLines                int  `json:"tab_char_lines"`
	MixedIndentation        bool `json:"mixed_indentation"`
}

// Report is the result of a style scan.
type Report struct {
	Counts Counts  `json:"counts"`
	Issues []Issue `json:"issues"`
}

// Scanner performs a single forward pass over the document's lines.
type Scanner struct{}

// New creates a style scanner.
func New() *Scanner {
	return &Scanner{}
}

// Analyze scans every physical line once. Mixed indentation is a property
// of the whole file: it is set when any line's indentation starts with a
// tab and any other line's starts with a space.
func (s *Scanner) Analyze(doc *pyfile.Document) Report {
	lines := doc.Lines()
	rep := Report{
		Counts: Counts{TotalLines: len(lines)},
		Issues: make([]Issue, 0),
	}

	hasTabIndent := false
	hasSpaceIndent := false

	for i, line := range lines {
		if len(line) > MaxLineLength {
			rep.Counts.LongLines++
			rep.addIssue(Issue{
				Line:   i + 1,
				Kind:   IssueLongLine,
				Detail: fmt.Sprintf("Length=%d > %d", len(line), MaxLineLength),
			})
		}
		if line != strings.TrimRight(line, " \t") {
			rep.Counts.TrailingWhitespaceLines++
			rep.addIssue(Issue{
				Line:   i + 1,
				Kind:   IssueTrailingWhitespace,
				Detail: "Trailing spaces/tabs",
			})
		}
		if strings.ContainsRune(line, '\t') {
			rep.Counts.TabLines++
		}
		if strings.HasPrefix(line, "\t") {
			hasTabIndent = true
		}
		if strings.HasPrefix(line, " ") {
			hasSpaceIndent = true
		}
	}

	if hasTabIndent && hasSpaceIndent {
		rep.Counts.MixedIndentation = true
		rep.addIssue(Issue{
			Kind:   IssueMixedIndentation,
			Detail: "Both tabs and spaces used for indentation",
		})
	}

	return rep
}

// Close implements analyzer.DocumentAnalyzer; the scanner holds no resources.
func (s *Scanner) Close() {}

func (r *Report) addIssue(issue Issue) {
	if len(r.Issues) < maxIssues {
		r.Issues = append(r.Issues, issue)
	}
}
