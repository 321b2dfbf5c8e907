// Package risk flags occurrences of a small fixed vocabulary of risky
// constructs. Hits are advisory substring matches, not semantic analysis:
// one hit per pattern key regardless of how often it occurs.
package risk

import (
	"strings"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer"
	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

// Ensure Scanner implements analyzer.DocumentAnalyzer.
var _ analyzer.DocumentAnalyzer[Report] = (*Scanner)(nil)

// Flag records one matched pattern.
type Flag struct {
	Pattern string `json:"pattern"`
	Detail  string `json:"detail"`
}

// Report lists every pattern present in the document.
type Report struct {
	Flags []Flag `json:"flags"`
}

// Scanner tests the document against the fixed pattern table.
type Scanner struct {
	patterns []Flag
}

// defaultPatterns is the fixed detection vocabulary. Order here fixes the
// order of reported flags.
func defaultPatterns() []Flag {
	return []Flag{
		{Pattern: "eval(", Detail: "Use of eval()"},
		{Pattern: "exec(", Detail: "Use of exec()"},
		{Pattern: "os.system", Detail: "Shell execution via os.system"},
		{Pattern: "subprocess.Popen", Detail: "Process spawning via subprocess.Popen"},
		{Pattern: "pickle.loads", Detail: "Unsafe deserialization risk (pickle.loads)"},
		{Pattern: "import *", Detail: "Wildcard import reduces clarity"},
	}
}

// New creates a risk pattern scanner.
func New() *Scanner {
	return &Scanner{patterns: defaultPatterns()}
}

// Analyze reports each pattern contained anywhere in the document.
func (s *Scanner) Analyze(doc *pyfile.Document) Report {
	rep := Report{Flags: make([]Flag, 0)}
	for _, p := range s.patterns {
		if strings.Contains(doc.Content, p.Pattern) {
			rep.Flags = append(rep.Flags, p)
		}
	}
	return rep
}

// Close implements analyzer.DocumentAnalyzer; the scanner holds no resources.
func (s *Scanner) Close() {}
