package context

// Flavor identifies the kind of lexical scope a context stands for. A
// context's capabilities are fixed by its flavor at construction and never
// change afterwards.
type Flavor int

const (
	FlavorGlobal Flavor = iota
	FlavorModule
	FlavorFunction
	FlavorGenerator
	FlavorClass
	FlavorListComprehension
	FlavorSetComprehension
	FlavorDictComprehension
	FlavorGeneratorExpression
	FlavorExecInline
)

var flavorNames = map[Flavor]string{
	FlavorGlobal:              "global",
	FlavorModule:              "module",
	FlavorFunction:            "function",
	FlavorGenerator:           "generator",
	FlavorClass:               "class",
	FlavorListComprehension:   "list_comprehension",
	FlavorSetComprehension:    "set_comprehension",
	FlavorDictComprehension:   "dict_comprehension",
	FlavorGeneratorExpression: "generator_expression",
	FlavorExecInline:          "exec_inline",
}

func (f Flavor) String() string {
	if name, ok := flavorNames[f]; ok {
		return name
	}
	return "unknown"
}

// capability is the fixed per-flavor behavior set. Scopes realized as
// on-stack activation records reference their variables directly; scopes
// realized as heap state objects (the resumable ones) reach everything
// through that object, because their native stack frame does not survive a
// suspension.
type capability struct {
	canHaveLocals bool
	hasFrameGuard bool
	// variablesViaContext: locals, closures and temporaries are reached
	// through the scope's heap state object.
	variablesViaContext bool
}

var flavorCapabilities = map[Flavor]capability{
	FlavorGlobal:              {},
	FlavorModule:              {hasFrameGuard: true},
	FlavorFunction:            {canHaveLocals: true, hasFrameGuard: true},
	FlavorGenerator:           {canHaveLocals: true, variablesViaContext: true},
	FlavorClass:               {canHaveLocals: true, hasFrameGuard: true},
	FlavorListComprehension:   {hasFrameGuard: true},
	FlavorSetComprehension:    {hasFrameGuard: true},
	FlavorDictComprehension:   {hasFrameGuard: true},
	FlavorGeneratorExpression: {variablesViaContext: true},
	// Exec-inline delegates everything to its parent; the zero capability
	// set here is never consulted.
	FlavorExecInline: {},
}
