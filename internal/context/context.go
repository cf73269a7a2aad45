// Package context holds the per-scope code generation state. One context
// exists per lexical scope of the compiled program, mirroring its nesting
// exactly; each resolves variable access into concrete handles for its
// scope flavor and forwards scope-agnostic requests up the parent chain.
package context

import (
	"github.com/pynative/pynative/internal/ident"
	"github.com/pynative/pynative/internal/pyvalue"
)

// Context is the common contract of every scope flavor. Contexts are built
// strictly parent-before-child, are read-only after construction except for
// their label counters, and live for the whole compilation.
type Context interface {
	Flavor() Flavor
	Parent() Context

	ResolveLocal(name string) ident.Handle
	ResolveClosure(name string) ident.Handle
	ResolveTemp(name string) ident.Handle

	HasLocalVariable(name string) bool
	HasClosureVariable(name string) bool
	CanHaveLocals() bool
	HasLocalsDict() bool

	InternConstant(v pyvalue.Value) ident.Handle
	AddEvalOrderUse(n int)

	FrameHandle() ident.Handle
	HasFrameGuard() bool
	NeedsFrameExceptionKeeper() bool
	// VariablesViaContext reports whether the scope's variables live in a
	// heap state object instead of the native stack frame.
	VariablesViaContext() bool

	AllocateForLoopNumber() int
	AllocateWhileLoopNumber() int
	AllocateTryNumber() int
	AllocateWithNumber() int

	RegisterFunctionCode(codeName, declaration, body string)
	RegisterComprehensionCode(codeName, declaration, body string)
	RegisterClassCode(codeName, declaration, body string)

	CodeName() string
	ModuleCodeName() string
	ModuleName() string
	TracebackName() string
	TracebackFilename() string
}

// CodeEntry is one registered code fragment, keyed by its unique code name.
type CodeEntry struct {
	Name        string
	Declaration string
	Body        string
}

// scopeCounters mints labels unique within one scope. They only ever
// increase for the context's lifetime.
type scopeCounters struct {
	forLoopCount   int
	whileLoopCount int
	tryCount       int
	withCount      int
}

func (c *scopeCounters) AllocateForLoopNumber() int {
	c.forLoopCount++
	return c.forLoopCount
}

func (c *scopeCounters) AllocateWhileLoopNumber() int {
	c.whileLoopCount++
	return c.whileLoopCount
}

func (c *scopeCounters) AllocateTryNumber() int {
	c.tryCount++
	return c.tryCount
}

func (c *scopeCounters) AllocateWithNumber() int {
	c.withCount++
	return c.withCount
}

// childScope is the shared composition base of every context below the
// module: it owns the parent reference and forwards the scope-agnostic
// requests upward. Explicit forwarding, no virtual dispatch chain.
type childScope struct {
	scopeCounters
	parent Context
}

func (c *childScope) Parent() Context { return c.parent }

func (c *childScope) InternConstant(v pyvalue.Value) ident.Handle {
	return c.parent.InternConstant(v)
}

func (c *childScope) AddEvalOrderUse(n int) {
	c.parent.AddEvalOrderUse(n)
}

func (c *childScope) RegisterFunctionCode(codeName, declaration, body string) {
	c.parent.RegisterFunctionCode(codeName, declaration, body)
}

func (c *childScope) RegisterComprehensionCode(codeName, declaration, body string) {
	c.parent.RegisterComprehensionCode(codeName, declaration, body)
}

func (c *childScope) RegisterClassCode(codeName, declaration, body string) {
	c.parent.RegisterClassCode(codeName, declaration, body)
}

func (c *childScope) ModuleCodeName() string { return c.parent.ModuleCodeName() }
func (c *childScope) ModuleName() string     { return c.parent.ModuleName() }

func (c *childScope) TracebackFilename() string { return c.parent.TracebackFilename() }

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
