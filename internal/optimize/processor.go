package optimize

import (
	"github.com/pynative/pynative/internal/pipeline"
)

// Processor implements pipeline.Processor: it drives every expression root
// to its rewrite fixpoint and records the applied rewrites on the context.
type Processor struct {
	trace *Trace
}

func NewProcessor() *Processor {
	return &Processor{trace: NewTrace()}
}

// Trace exposes the trace collection of the last run.
func (p *Processor) Trace() *Trace { return p.trace }

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	observer := ObserverFunc(func(nodeKind, tag, desc string) {
		ctx.Applied = append(ctx.Applied, pipeline.Rewrite{
			NodeKind: nodeKind,
			Tag:      tag,
			Desc:     desc,
		})
	})

	driver := NewDriver(p.trace, ctx.Options.RewriteBudget(), observer)

	for i, root := range ctx.Roots {
		result, _, err := driver.Optimize(root)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		ctx.Roots[i] = result
	}

	return ctx
}
