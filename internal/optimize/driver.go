package optimize

import (
	"fmt"

	"github.com/pynative/pynative/internal/ast"
)

// Observer is notified of every applied rewrite.
type Observer interface {
	OnRewrite(nodeKind, tag, desc string)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(nodeKind, tag, desc string)

func (f ObserverFunc) OnRewrite(nodeKind, tag, desc string) { f(nodeKind, tag, desc) }

// Driver re-invokes computeExpression on a node (or its replacement) until
// a call returns the node unchanged, establishing the fixpoint. The node
// contract forbids non-terminating rewrite chains; detecting one anyway is
// this driver's job.
type Driver struct {
	trace     *Trace
	maxPasses int
	observer  Observer
}

func NewDriver(trace *Trace, maxPasses int, observer Observer) *Driver {
	return &Driver{trace: trace, maxPasses: maxPasses, observer: observer}
}

func (d *Driver) Trace() *Trace { return d.trace }

// Optimize rewrites one expression to its fixpoint. It returns the final
// node and the number of rewrites applied.
func (d *Driver) Optimize(root ast.Expression) (ast.Expression, int, error) {
	node := root
	rewrites := 0

	for pass := 0; pass < d.maxPasses; pass++ {
		rewritable, ok := node.(ast.Rewritable)
		if !ok {
			return node, rewrites, nil
		}

		before := node.Kind()
		change := rewritable.ComputeExpression(d.trace)
		if !change.Changed() {
			return node, rewrites, nil
		}

		rewrites++
		if d.observer != nil {
			d.observer.OnRewrite(before, change.Tag, change.Desc)
		}
		node = change.Node
	}

	return node, rewrites, fmt.Errorf(
		"expression %s did not reach a rewrite fixpoint after %d passes",
		root.Kind(), d.maxPasses)
}
