// Package parser wraps the tree-sitter Python front-end used by every
// AST-dependent analyzer. Parsing never executes the candidate source.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser configured for Python.
type Parser struct {
	parser *sitter.Parser
}

// Result contains the parsed tree and the source it was built from.
type Result struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// New creates a new Python parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses Python source. The returned tree is always non-nil on
// success; grammatical errors are represented inside the tree as ERROR
// and missing nodes, not as a Go error.
func (p *Parser) Parse(source []byte, path string) (*Result, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	return &Result{Tree: tree, Source: source, Path: path}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeVisitor is a function that visits AST nodes. Returning false stops
// descent into the node's children.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// TypedNodeVisitor visits AST nodes with pre-cached node type to avoid CGO overhead.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// Walk traverses the AST calling visitor for each node.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// WalkTyped traverses the AST with cached node types to reduce CGO overhead.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	if !visitor(node, nodeType, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// FirstErrorNode returns the first ERROR or missing node in pre-order, or
// nil when the tree parsed cleanly.
func FirstErrorNode(root *sitter.Node) *sitter.Node {
	if root == nil || !root.HasError() {
		return nil
	}

	var found *sitter.Node
	Walk(root, nil, func(node *sitter.Node, _ []byte) bool {
		if found != nil {
			return false
		}
		if node.IsError() || node.IsMissing() {
			found = node
			return false
		}
		// Only subtrees containing an error are worth descending into.
		return node.HasError()
	})
	return found
}

// Unwrap resolves a decorated_definition to the definition it wraps.
// Decorators are transparent for docstring and naming purposes.
func Unwrap(node *sitter.Node) *sitter.Node {
	if node == nil || node.Type() != "decorated_definition" {
		return node
	}
	if def := node.ChildByFieldName("definition"); def != nil {
		return def
	}
	return node
}

// DefinitionName returns the name of a function_definition or
// class_definition node.
func DefinitionName(node *sitter.Node, source []byte) string {
	return GetNodeText(node.ChildByFieldName("name"), source)
}

// Docstring returns the docstring of a module, function_definition or
// class_definition node, and whether one is present. The docstring is the
// first statement of the body when that statement is a plain string
// expression; quotes are stripped.
func Docstring(node *sitter.Node, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	body := node
	if node.Type() != "module" {
		body = node.ChildByFieldName("body")
		if body == nil {
			return "", false
		}
	}

	var first *sitter.Node
	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		first = child
		break
	}
	if first == nil || first.Type() != "expression_statement" {
		return "", false
	}
	if first.NamedChildCount() != 1 || first.NamedChild(0).Type() != "string" {
		return "", false
	}

	return stripQuotes(GetNodeText(first.NamedChild(0), source)), true
}

// stripQuotes removes string prefixes and quote delimiters from a Python
// string literal.
func stripQuotes(s string) string {
	// Skip prefix characters (r, b, u, f in any case).
	i := 0
	for i < len(s) && s[i] != '"' && s[i] != '\'' {
		i++
	}
	s = s[i:]

	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && s[:len(q)] == q && s[len(s)-len(q):] == q {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
