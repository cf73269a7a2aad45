package context

import (
	"github.com/pynative/pynative/internal/constpool"
	"github.com/pynative/pynative/internal/ident"
	"github.com/pynative/pynative/internal/pyvalue"
)

// Global is the root of every context tree. It is not itself a lexical
// scope: it owns the constant pool and the eval-order usage set, the only
// shared mutable state of a compilation. One Global exists per compilation,
// created explicitly and threaded to the module context, never a hidden
// singleton.
type Global struct {
	scopeCounters
	pool *constpool.Pool
}

func NewGlobal() *Global {
	return &Global{pool: constpool.NewPool()}
}

// Pool exposes the constant pool for the emission stage.
func (g *Global) Pool() *constpool.Pool { return g.pool }

func (g *Global) Flavor() Flavor  { return FlavorGlobal }
func (g *Global) Parent() Context { return nil }

func (g *Global) InternConstant(v pyvalue.Value) ident.Handle {
	return g.pool.Intern(v)
}

func (g *Global) AddEvalOrderUse(n int) {
	g.pool.AddEvalOrderUse(n)
}

// The global context has no variables, no frame and no code of its own.

func (g *Global) ResolveLocal(name string) ident.Handle   { return ident.Handle{} }
func (g *Global) ResolveClosure(name string) ident.Handle { return ident.Handle{} }
func (g *Global) ResolveTemp(name string) ident.Handle    { return ident.ForTemp(name, "") }

func (g *Global) HasLocalVariable(name string) bool   { return false }
func (g *Global) HasClosureVariable(name string) bool { return false }
func (g *Global) CanHaveLocals() bool                 { return false }
func (g *Global) HasLocalsDict() bool                 { return false }

func (g *Global) FrameHandle() ident.Handle       { return ident.Handle{} }
func (g *Global) HasFrameGuard() bool             { return false }
func (g *Global) NeedsFrameExceptionKeeper() bool { return false }
func (g *Global) VariablesViaContext() bool       { return false }

func (g *Global) RegisterFunctionCode(codeName, declaration, body string) {
	panic("global context cannot register function code: " + codeName)
}

func (g *Global) RegisterComprehensionCode(codeName, declaration, body string) {
	panic("global context cannot register comprehension code: " + codeName)
}

func (g *Global) RegisterClassCode(codeName, declaration, body string) {
	panic("global context cannot register class code: " + codeName)
}

func (g *Global) CodeName() string          { return "" }
func (g *Global) ModuleCodeName() string    { return "" }
func (g *Global) ModuleName() string        { return "" }
func (g *Global) TracebackName() string     { return "" }
func (g *Global) TracebackFilename() string { return "" }
