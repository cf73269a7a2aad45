package context

import (
	"github.com/pynative/pynative/internal/ident"
	"github.com/pynative/pynative/internal/pyvalue"
)

// FunctionContext is the scope of an ordinary or generator function. The
// generator case differs in one fundamental way: its activation record is a
// heap state object, so every variable — locals, closures and temporaries
// alike — is reached through that object rather than the native stack.
type FunctionContext struct {
	childScope

	name     string
	codeName string

	generator            bool
	localsDict           bool
	needsExceptionKeeper bool

	// Frozen at construction, before any resolution query.
	localNames   map[string]bool
	closureNames map[string]bool
}

func NewFunctionContext(parent Context, name, codeName string, generator bool,
	localNames, closureNames []string, localsDict, needsExceptionKeeper bool) *FunctionContext {

	f := &FunctionContext{
		childScope:           childScope{parent: parent},
		name:                 name,
		codeName:             codeName,
		generator:            generator,
		localsDict:           localsDict,
		needsExceptionKeeper: needsExceptionKeeper,
		localNames:           nameSet(localNames),
		closureNames:         nameSet(closureNames),
	}

	// The local names are needed as constants by the generated code.
	for _, name := range localNames {
		f.InternConstant(pyvalue.Str{Value: name})
	}

	return f
}

func (f *FunctionContext) Flavor() Flavor {
	if f.generator {
		return FlavorGenerator
	}
	return FlavorFunction
}

func (f *FunctionContext) IsGenerator() bool { return f.generator }

func (f *FunctionContext) ResolveLocal(name string) ident.Handle {
	return ident.ForLocal(name, f.generator)
}

func (f *FunctionContext) ResolveClosure(name string) ident.Handle {
	if f.generator {
		return ident.ForClosure(name, "_python_context->common_context->")
	}
	return ident.ForClosure(name, "_python_context->")
}

func (f *FunctionContext) ResolveTemp(name string) ident.Handle {
	if f.generator {
		return ident.ForTemp(name, "_python_context->")
	}
	return ident.ForTemp(name, "")
}

func (f *FunctionContext) HasLocalVariable(name string) bool   { return f.localNames[name] }
func (f *FunctionContext) HasClosureVariable(name string) bool { return f.closureNames[name] }
func (f *FunctionContext) CanHaveLocals() bool                 { return flavorCapabilities[f.Flavor()].canHaveLocals }
func (f *FunctionContext) HasLocalsDict() bool                 { return f.localsDict }

// FrameHandle: a generator's frame is embedded in its state object and
// persists across suspensions; it owns no guard. A plain function gets a
// guard-scoped frame.
func (f *FunctionContext) FrameHandle() ident.Handle {
	if f.generator {
		return ident.New("generator->m_frame", 0)
	}
	return ident.New("frame_guard.getFrame()", 1)
}

func (f *FunctionContext) HasFrameGuard() bool {
	return flavorCapabilities[f.Flavor()].hasFrameGuard
}

func (f *FunctionContext) NeedsFrameExceptionKeeper() bool { return f.needsExceptionKeeper }

func (f *FunctionContext) VariablesViaContext() bool {
	return flavorCapabilities[f.Flavor()].variablesViaContext
}

func (f *FunctionContext) CodeName() string      { return f.codeName }
func (f *FunctionContext) TracebackName() string { return f.name }
