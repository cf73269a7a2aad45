package context

import "github.com/pynative/pynative/internal/ident"

// ComprehensionContext is the scope of a list, set or dict comprehension.
// A comprehension runs to completion inside its parent's activation, so it
// needs no indirection object — but it is not permitted true locals either:
// everything it touches is a closure-style cell or inherited.
type ComprehensionContext struct {
	childScope

	flavor   Flavor
	name     string
	codeName string

	closureNames map[string]bool
}

func NewComprehensionContext(parent Context, flavor Flavor, name, codeName string,
	closureNames []string) *ComprehensionContext {

	switch flavor {
	case FlavorListComprehension, FlavorSetComprehension, FlavorDictComprehension:
	default:
		panic("not a comprehension flavor: " + flavor.String())
	}

	return &ComprehensionContext{
		childScope:   childScope{parent: parent},
		flavor:       flavor,
		name:         name,
		codeName:     codeName,
		closureNames: nameSet(closureNames),
	}
}

func (c *ComprehensionContext) Flavor() Flavor { return c.flavor }

func (c *ComprehensionContext) ResolveClosure(name string) ident.Handle {
	return ident.ForClosure(name, "")
}

// ResolveLocal: a comprehension has no true locals; local access is closure
// access.
func (c *ComprehensionContext) ResolveLocal(name string) ident.Handle {
	return c.ResolveClosure(name)
}

func (c *ComprehensionContext) ResolveTemp(name string) ident.Handle {
	return ident.ForTemp(name, "")
}

func (c *ComprehensionContext) HasLocalVariable(name string) bool   { return false }
func (c *ComprehensionContext) HasClosureVariable(name string) bool { return c.closureNames[name] }
func (c *ComprehensionContext) CanHaveLocals() bool                 { return flavorCapabilities[c.flavor].canHaveLocals }
func (c *ComprehensionContext) HasLocalsDict() bool                 { return false }

// Each comprehension runs inside its own guarded block, for traceback
// accuracy.
func (c *ComprehensionContext) FrameHandle() ident.Handle {
	return ident.New("frame_guard.getFrame()", 1)
}

func (c *ComprehensionContext) HasFrameGuard() bool             { return flavorCapabilities[c.flavor].hasFrameGuard }
func (c *ComprehensionContext) NeedsFrameExceptionKeeper() bool { return false }
func (c *ComprehensionContext) VariablesViaContext() bool       { return flavorCapabilities[c.flavor].variablesViaContext }

func (c *ComprehensionContext) CodeName() string      { return c.codeName }
func (c *ComprehensionContext) TracebackName() string { return c.name }

// GeneratorExpressionContext is the scope of a generator expression. It is
// resumable, so its variables need the heap state object — yet it owns no
// frame guard: it participates inside the frame of the surrounding
// generator, entered once per resumption rather than once per construction.
type GeneratorExpressionContext struct {
	childScope

	name     string
	codeName string

	closureNames map[string]bool
}

func NewGeneratorExpressionContext(parent Context, name, codeName string,
	closureNames []string) *GeneratorExpressionContext {

	return &GeneratorExpressionContext{
		childScope:   childScope{parent: parent},
		name:         name,
		codeName:     codeName,
		closureNames: nameSet(closureNames),
	}
}

func (g *GeneratorExpressionContext) Flavor() Flavor { return FlavorGeneratorExpression }

func (g *GeneratorExpressionContext) ResolveLocal(name string) ident.Handle {
	return ident.ForLocal(name, true)
}

func (g *GeneratorExpressionContext) ResolveClosure(name string) ident.Handle {
	return ident.ForClosure(name, "_python_context->")
}

func (g *GeneratorExpressionContext) ResolveTemp(name string) ident.Handle {
	return ident.ForTemp(name, "_python_context->")
}

func (g *GeneratorExpressionContext) HasLocalVariable(name string) bool   { return false }
func (g *GeneratorExpressionContext) HasClosureVariable(name string) bool { return g.closureNames[name] }
func (g *GeneratorExpressionContext) CanHaveLocals() bool                 { return false }
func (g *GeneratorExpressionContext) HasLocalsDict() bool                 { return false }

// No frame of its own.
func (g *GeneratorExpressionContext) FrameHandle() ident.Handle { return ident.Handle{} }

func (g *GeneratorExpressionContext) HasFrameGuard() bool {
	return flavorCapabilities[FlavorGeneratorExpression].hasFrameGuard
}
func (g *GeneratorExpressionContext) NeedsFrameExceptionKeeper() bool { return false }
func (g *GeneratorExpressionContext) VariablesViaContext() bool {
	return flavorCapabilities[FlavorGeneratorExpression].variablesViaContext
}

func (g *GeneratorExpressionContext) CodeName() string      { return g.codeName }
func (g *GeneratorExpressionContext) TracebackName() string { return g.name }
