package context

import "github.com/pynative/pynative/internal/ident"

// ClassContext is the scope of a class body. It behaves like an on-stack
// function scope whose local set is the class variable set; closures reach
// the enclosing scope's cells directly, without an indirection object.
type ClassContext struct {
	childScope

	name     string
	codeName string

	localsDict           bool
	needsExceptionKeeper bool

	classVarNames map[string]bool
	closureNames  map[string]bool
}

func NewClassContext(parent Context, name, codeName string,
	classVarNames, closureNames []string, localsDict, needsExceptionKeeper bool) *ClassContext {

	return &ClassContext{
		childScope:           childScope{parent: parent},
		name:                 name,
		codeName:             codeName,
		localsDict:           localsDict,
		needsExceptionKeeper: needsExceptionKeeper,
		classVarNames:        nameSet(classVarNames),
		closureNames:         nameSet(closureNames),
	}
}

func (c *ClassContext) Flavor() Flavor { return FlavorClass }

func (c *ClassContext) ResolveLocal(name string) ident.Handle {
	return ident.ForLocal(name, false)
}

func (c *ClassContext) ResolveClosure(name string) ident.Handle {
	return ident.ForClosure(name, "")
}

func (c *ClassContext) ResolveTemp(name string) ident.Handle {
	return ident.ForTemp(name, "")
}

func (c *ClassContext) HasLocalVariable(name string) bool   { return c.classVarNames[name] }
func (c *ClassContext) HasClosureVariable(name string) bool { return c.closureNames[name] }
func (c *ClassContext) CanHaveLocals() bool                 { return flavorCapabilities[FlavorClass].canHaveLocals }
func (c *ClassContext) HasLocalsDict() bool                 { return c.localsDict }

func (c *ClassContext) FrameHandle() ident.Handle {
	return ident.New("frame_guard.getFrame()", 1)
}

func (c *ClassContext) HasFrameGuard() bool             { return flavorCapabilities[FlavorClass].hasFrameGuard }
func (c *ClassContext) NeedsFrameExceptionKeeper() bool { return c.needsExceptionKeeper }
func (c *ClassContext) VariablesViaContext() bool       { return flavorCapabilities[FlavorClass].variablesViaContext }

func (c *ClassContext) CodeName() string      { return c.codeName }
func (c *ClassContext) TracebackName() string { return c.name }
