// Package structure walks the parse tree to compute per-function structural
// complexity, docstring coverage, and naming-convention conformance. It runs
// only on syntactically valid documents.
//
// The complexity score counts branch constructs over a function's entire
// subtree, so control flow inside nested functions is also credited to the
// enclosing function. This is a deliberate structural count, not strict
// per-function cyclomatic scoping.
package structure

import (
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer"
	"github.com/abdulrahman-code/pyvet/pkg/parser"
	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

// topN is how many of the highest-complexity functions are surfaced.
const topN = 5

var (
	snakeCaseRe  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	pascalCaseRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// decisionTypes are the node kinds that add one point of complexity each.
// elif clauses count separately because each one is an extra branch.
var decisionTypes = map[string]bool{
	"if_statement":    true,
	"elif_clause":     true,
	"for_statement":   true,
	"while_statement": true,
	"with_statement":  true,
	"try_statement":   true,
	"except_clause":   true,
	"match_statement": true,
}

// Ensure Analyzer implements analyzer.DocumentAnalyzer.
var _ analyzer.DocumentAnalyzer[Report] = (*Analyzer)(nil)

// FunctionComplexity is the structural complexity of one function or
// method definition.
type FunctionComplexity struct {
	Name       string `json:"name"`
	Line       uint32 `json:"line"`
	Complexity int    `json:"complexity"`
}

// MemberInfo records docstring presence for one top-level member.
type MemberInfo struct {
	Name         string `json:"name"`
	Line         uint32 `json:"line"`
	HasDocstring bool   `json:"has_docstring"`
}

// NamingKind identifies the kind of a naming violation.
type NamingKind string

const (
	FunctionNotSnakeCase NamingKind = "FunctionNameNotSnakeCase"
	ClassNotPascalCase   NamingKind = "ClassNameNotPascalCase"
)

// NamingIssue is one naming-convention violation.
type NamingIssue struct {
	Kind NamingKind `json:"kind"`
	Name string     `json:"name"`
	Line uint32     `json:"line"`
}

// DocNaming covers module, function, and class documentation plus naming
// conformance. Only top-level members are inspected.
type DocNaming struct {
	ModuleHasDocstring        bool         `json:"module_has_docstring"`
	ModuleDocstringLength     int          `json:"module_docstring_length"`
	Functions                 []MemberInfo `json:"functions"`
	Classes                   []MemberInfo `json:"classes"`
	MissingFunctionDocstrings int          `json:"missing_function_docstrings"`
	MissingClassDocstrings    int          `json:"missing_class_docstrings"`
	NamingIssues              []NamingIssue `json:"naming_issues"`
}

// Report is the result of the structural walk. OK is false when the walk
// could not run; Reason says why.
type Report struct {
	OK             bool                 `json:"ok"`
	Reason         string               `json:"reason,omitempty"`
	DocNaming      DocNaming            `json:"docstrings_naming"`
	ComplexityTop  []FunctionComplexity `json:"complexity_top5"`
	ComplexityAll  []FunctionComplexity `json:"complexity_all"`
}

// Analyzer walks the parse tree of a valid document.
type Analyzer struct {
	parser *parser.Parser
}

// New creates a structure analyzer.
func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Analyze computes complexity per function definition and docstring and
// naming facts for top-level members. Functions are ranked by descending
// complexity; ties keep discovery order.
func (a *Analyzer) Analyze(doc *pyfile.Document) Report {
	res, err := a.parser.Parse([]byte(doc.Content), doc.Path)
	if err != nil {
		return Report{OK: false, Reason: err.Error()}
	}

	root := res.Tree.RootNode()
	if root.HasError() {
		return Report{OK: false, Reason: "Skipped due to syntax error."}
	}

	all := collectComplexities(root, res.Source)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Complexity > all[j].Complexity
	})

	top := all
	if len(top) > topN {
		top = top[:topN]
	}

	return Report{
		OK:            true,
		DocNaming:     inspectTopLevel(root, res.Source),
		ComplexityTop: top,
		ComplexityAll: all,
	}
}

// Close releases parser resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// collectComplexities finds every function definition in pre-order and
// scores each one over its full subtree.
func collectComplexities(root *sitter.Node, source []byte) []FunctionComplexity {
	entries := make([]FunctionComplexity, 0)

	parser.WalkTyped(root, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if nodeType == "function_definition" {
			entries = append(entries, FunctionComplexity{
				Name:       parser.DefinitionName(n, src),
				Line:       n.StartPoint().Row + 1,
				Complexity: complexityOf(n, src),
			})
		}
		return true
	})

	return entries
}

// complexityOf scores one function: 1 plus one per decision construct in
// the subtree, plus one per boolean operator. Chained boolean expressions
// parse into one operator node per combination, which yields n-1 points
// for an n-operand chain.
func complexityOf(fn *sitter.Node, source []byte) int {
	score := 1
	parser.WalkTyped(fn, source, func(n *sitter.Node, nodeType string, _ []byte) bool {
		if decisionTypes[nodeType] || nodeType == "boolean_operator" {
			score++
		}
		return true
	})
	return score
}

// inspectTopLevel records docstring presence and naming conformance for
// the module and its direct function and class members. Decorated
// definitions are unwrapped first.
func inspectTopLevel(root *sitter.Node, source []byte) DocNaming {
	dn := DocNaming{
		Functions:    make([]MemberInfo, 0),
		Classes:      make([]MemberInfo, 0),
		NamingIssues: make([]NamingIssue, 0),
	}

	if docstring, ok := parser.Docstring(root, source); ok {
		dn.ModuleHasDocstring = true
		dn.ModuleDocstringLength = len(docstring)
	}

	for i := range int(root.NamedChildCount()) {
		node := parser.Unwrap(root.NamedChild(i))

		switch node.Type() {
		case "function_definition":
			name := parser.DefinitionName(node, source)
			line := node.StartPoint().Row + 1
			_, hasDoc := parser.Docstring(node, source)
			dn.Functions = append(dn.Functions, MemberInfo{Name: name, Line: line, HasDocstring: hasDoc})
			if !hasDoc {
				dn.MissingFunctionDocstrings++
			}
			// Private and dunder names are exempt from the snake check.
			if !strings.HasPrefix(name, "_") && !snakeCaseRe.MatchString(name) {
				dn.NamingIssues = append(dn.NamingIssues, NamingIssue{
					Kind: FunctionNotSnakeCase,
					Name: name,
					Line: line,
				})
			}

		case "class_definition":
			name := parser.DefinitionName(node, source)
			line := node.StartPoint().Row + 1
			_, hasDoc := parser.Docstring(node, source)
			dn.Classes = append(dn.Classes, MemberInfo{Name: name, Line: line, HasDocstring: hasDoc})
			if !hasDoc {
				dn.MissingClassDocstrings++
			}
			if !strings.HasPrefix(name, "_") && !pascalCaseRe.MatchString(name) {
				dn.NamingIssues = append(dn.NamingIssues, NamingIssue{
					Kind: ClassNotPascalCase,
					Name: name,
					Line: line,
				})
			}
		}
	}

	return dn
}
