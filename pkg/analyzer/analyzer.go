// Package analyzer defines the interface shared by the static analysis
// stages. Each analyzer is a pure computation over one document: no shared
// state, no side effects, safe to run concurrently with the others.
package analyzer

import "github.com/abdulrahman-code/pyvet/pkg/pyfile"

// DocumentAnalyzer is implemented by every static analysis stage.
type DocumentAnalyzer[T any] interface {
	// Analyze inspects the document and returns a fresh report. Analysis
	// anomalies degrade into report fields rather than errors.
	Analyze(doc *pyfile.Document) T

	// Close releases any resources held by the analyzer.
	Close()
}
