// Package pipeline composes the analysis stages into one run: load, syntax
// validation, the independent static scans, the optional sandbox run, and
// the verdict. Data flows strictly forward; every run operates on its own
// document and returns a fresh report.
package pipeline

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/abdulrahman-code/pyvet/pkg/analyzer/comments"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/risk"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/structure"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/style"
	"github.com/abdulrahman-code/pyvet/pkg/analyzer/syntax"
	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
	"github.com/abdulrahman-code/pyvet/pkg/sandbox"
	"github.com/abdulrahman-code/pyvet/pkg/verdict"
)

// Report is the full structured output of one pipeline run. Sandbox is
// present if and only if syntax was valid and the sandbox stage was
// enabled.
type Report struct {
	File      *pyfile.Document   `json:"file"`
	Syntax    syntax.Result      `json:"syntax"`
	Style     style.Report       `json:"style"`
	Risk      risk.Report        `json:"risky_patterns"`
	Comments  comments.Report    `json:"comments"`
	Structure structure.Report   `json:"ast"`
	Sandbox   *sandbox.RunResult `json:"unit_test,omitempty"`
	Verdict   verdict.Verdict    `json:"verdict"`
}

// Pipeline runs the three-stage analysis. Zero value is not usable; use New.
type Pipeline struct {
	runner     *sandbox.Runner
	runSandbox bool
}

// Option is a functional option for configuring Pipeline.
type Option func(*Pipeline)

// WithRunner sets the sandbox runner used for the execution stage.
func WithRunner(r *sandbox.Runner) Option {
	return func(p *Pipeline) {
		p.runner = r
	}
}

// WithoutSandbox disables the execution stage; the verdict then derives
// from static signals only.
func WithoutSandbox() Option {
	return func(p *Pipeline) {
		p.runSandbox = false
	}
}

// New creates a pipeline with a default sandbox runner.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		runner:     sandbox.New(),
		runSandbox: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run analyzes the file at path. A returned error means no report could be
// produced (unreadable input, staging failure); every analysis anomaly
// short of that degrades into report fields and score deductions.
func (p *Pipeline) Run(ctx context.Context, path string) (*Report, error) {
	doc, err := pyfile.Load(path)
	if err != nil {
		return nil, err
	}
	return p.RunDocument(ctx, doc)
}

// RunDocument analyzes an already-loaded document.
func (p *Pipeline) RunDocument(ctx context.Context, doc *pyfile.Document) (*Report, error) {
	rep := &Report{File: doc}

	validator := syntax.New()
	rep.Syntax = validator.Analyze(doc)
	validator.Close()

	// The remaining static scans are independent pure computations; run
	// them concurrently. Structure is gated on syntax validity.
	var wg conc.WaitGroup
	wg.Go(func() {
		scanner := style.New()
		defer scanner.Close()
		rep.Style = scanner.Analyze(doc)
	})
	wg.Go(func() {
		scanner := risk.New()
		defer scanner.Close()
		rep.Risk = scanner.Analyze(doc)
	})
	wg.Go(func() {
		a := comments.New()
		defer a.Close()
		rep.Comments = a.Analyze(doc)
	})
	wg.Go(func() {
		if !rep.Syntax.OK {
			rep.Structure = structure.Report{OK: false, Reason: "Skipped due to syntax error."}
			return
		}
		a := structure.New()
		defer a.Close()
		rep.Structure = a.Analyze(doc)
	})
	wg.Wait()

	// At most one sandbox run per invocation; the retry inside the runner
	// is strictly sequential.
	if p.runSandbox && rep.Syntax.OK {
		run, err := p.runner.Run(ctx, doc.Path)
		if err != nil {
			return nil, err
		}
		rep.Sandbox = run
	}

	rep.Verdict = verdict.Evaluate(verdict.Inputs{
		Syntax:    rep.Syntax,
		Style:     rep.Style,
		Risk:      rep.Risk,
		Structure: &rep.Structure,
		Sandbox:   rep.Sandbox,
	})

	return rep, nil
}
