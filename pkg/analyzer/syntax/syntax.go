// Package syntax validates that a document is grammatically well-formed
// Python without evaluating it. Its result gates every AST-dependent stage.
package syntax

import (
	"strings"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer"
	"github.com/abdulrahman-code/pyvet/pkg/parser"
	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

// Ensure Validator implements analyzer.DocumentAnalyzer.
var _ analyzer.DocumentAnalyzer[Result] = (*Validator)(nil)

// Error describes where and why parsing failed.
type Error struct {
	Kind     string `json:"kind"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
	LineText string `json:"line_text"`
	Message  string `json:"message"`
}

// Result is the terminal outcome of syntax validation.
type Result struct {
	OK    bool   `json:"ok"`
	Error *Error `json:"error,omitempty"`
}

// Validator parses a document and reports success or a structured failure.
type Validator struct {
	parser *parser.Parser
}

// New creates a syntax validator.
func New() *Validator {
	return &Validator{parser: parser.New()}
}

// Analyze parses the document. Parse failures of any kind, including
// tokenizer-level anomalies, are downgraded to a Result; nothing escapes
// this boundary.
func (v *Validator) Analyze(doc *pyfile.Document) Result {
	res, err := v.parser.Parse([]byte(doc.Content), doc.Path)
	if err != nil {
		return Result{OK: false, Error: &Error{
			Kind:    "ParseFailure",
			Message: err.Error(),
		}}
	}

	node := parser.FirstErrorNode(res.Tree.RootNode())
	if node == nil {
		return Result{OK: true}
	}

	line := node.StartPoint().Row + 1
	col := node.StartPoint().Column
	msg := "invalid syntax"
	if node.IsMissing() {
		msg = "expected " + node.Type()
	}

	return Result{OK: false, Error: &Error{
		Kind:     "SyntaxError",
		Line:     line,
		Column:   col,
		LineText: strings.TrimRight(doc.Line(int(line)), "\r\n"),
		Message:  msg,
	}}
}

// Close releases parser resources.
func (v *Validator) Close() {
	v.parser.Close()
}
