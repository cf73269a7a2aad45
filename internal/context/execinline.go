package context

import "github.com/pynative/pynative/internal/ident"

// ExecInlineContext is a transparent proxy for an inlined exec block. It
// introduces no scope of its own: variable resolution and the namespace
// predicates delegate entirely to the parent. It exists to satisfy the
// structural requirement that every program construct has a context.
type ExecInlineContext struct {
	childScope
}

func NewExecInlineContext(parent Context) *ExecInlineContext {
	return &ExecInlineContext{childScope: childScope{parent: parent}}
}

func (e *ExecInlineContext) Flavor() Flavor { return FlavorExecInline }

func (e *ExecInlineContext) ResolveLocal(name string) ident.Handle {
	return e.parent.ResolveLocal(name)
}

func (e *ExecInlineContext) ResolveClosure(name string) ident.Handle {
	return e.parent.ResolveClosure(name)
}

func (e *ExecInlineContext) ResolveTemp(name string) ident.Handle {
	return e.parent.ResolveTemp(name)
}

func (e *ExecInlineContext) HasLocalVariable(name string) bool {
	return e.parent.HasLocalVariable(name)
}

func (e *ExecInlineContext) HasClosureVariable(name string) bool {
	return e.parent.HasClosureVariable(name)
}

func (e *ExecInlineContext) CanHaveLocals() bool { return e.parent.CanHaveLocals() }
func (e *ExecInlineContext) HasLocalsDict() bool { return e.parent.HasLocalsDict() }

func (e *ExecInlineContext) FrameHandle() ident.Handle { return e.parent.FrameHandle() }
func (e *ExecInlineContext) HasFrameGuard() bool       { return e.parent.HasFrameGuard() }

func (e *ExecInlineContext) NeedsFrameExceptionKeeper() bool {
	return e.parent.NeedsFrameExceptionKeeper()
}

func (e *ExecInlineContext) VariablesViaContext() bool {
	return e.parent.VariablesViaContext()
}

func (e *ExecInlineContext) CodeName() string      { return e.parent.CodeName() }
func (e *ExecInlineContext) TracebackName() string { return e.parent.TracebackName() }
