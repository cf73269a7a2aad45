// Package pipeline sequences the compilation stages over one shared
// context.
package pipeline

import (
	"github.com/pynative/pynative/internal/ast"
	"github.com/pynative/pynative/internal/config"
	"github.com/pynative/pynative/internal/context"
)

// Rewrite is one applied expression rewrite, kept for reporting.
type Rewrite struct {
	NodeKind string
	Tag      string
	Desc     string
}

// Context is the state threaded through the pipeline stages.
type Context struct {
	Global *context.Global
	Module *context.ModuleContext

	// Roots are the expression roots to optimize; stages replace entries
	// with their rewritten forms.
	Roots []ast.Expression

	Options config.Options

	// Applied collects every rewrite for the report and verbose output.
	Applied []Rewrite

	// Errors collects stage failures. Stages keep running so one run
	// reports everything it can.
	Errors []error
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
