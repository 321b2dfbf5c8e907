// Package comments measures comment density from lexical comment tokens.
// Tokenization trouble degrades to a zero-comment report; it never aborts
// the pipeline.
package comments

import (
	"math"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer"
	"github.com/abdulrahman-code/pyvet/pkg/parser"
	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

// sampleSize is how many comments are kept verbatim for display.
const sampleSize = 8

// Ensure Analyzer implements analyzer.DocumentAnalyzer.
var _ analyzer.DocumentAnalyzer[Report] = (*Analyzer)(nil)

// Report summarizes the document's comments.
type Report struct {
	CommentLines   int      `json:"comment_lines"`
	TotalLines     int      `json:"total_lines"`
	Density        float64  `json:"comment_density"`
	SampleComments []string `json:"sample_comments"`
}

// Analyzer extracts comment tokens and computes their density.
type Analyzer struct {
	parser *parser.Parser
}

// New creates a comment density analyzer.
func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Analyze collects every comment token, trimmed of its leading marker.
// Density is comments over physical lines (at least 1), rounded to 4
// decimal places.
func (a *Analyzer) Analyze(doc *pyfile.Document) Report {
	var comments []string

	res, err := a.parser.Parse([]byte(doc.Content), doc.Path)
	if err == nil {
		root := res.Tree.RootNode()
		parser.WalkTyped(root, res.Source, func(n *sitter.Node, nodeType string, src []byte) bool {
			if nodeType == "comment" {
				text := parser.GetNodeText(n, src)
				comments = append(comments, strings.TrimSpace(strings.TrimLeft(text, "#")))
			}
			return true
		})
	}

	totalLines := doc.LineCount()
	if totalLines < 1 {
		totalLines = 1
	}
	density := float64(len(comments)) / float64(totalLines)

	sample := comments
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	if sample == nil {
		sample = []string{}
	}

	return Report{
		CommentLines:   len(comments),
		TotalLines:     totalLines,
		Density:        math.Round(density*10000) / 10000,
		SampleComments: sample,
	}
}

// Close releases parser resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}
