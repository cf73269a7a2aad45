package context

import (
	"strings"
	"testing"

	"github.com/pynative/pynative/internal/pyvalue"
)

func newTestModule() (*Global, *ModuleContext) {
	global := NewGlobal()
	module := NewModuleContext(global, "testmod", "module_testmod", "testmod.py")
	return global, module
}

func TestParentChainTerminatesAtGlobal(t *testing.T) {
	global, module := newTestModule()

	function := NewFunctionContext(module, "f", "function_1_f", false, []string{"a"}, nil, false, false)
	comp := NewComprehensionContext(function, FlavorListComprehension, "<listcomp>", "listcomp_1", []string{"a"})
	exec := NewExecInlineContext(comp)

	var c Context = exec
	steps := 0
	for c.Parent() != nil {
		c = c.Parent()
		steps++
		if steps > 10 {
			t.Fatal("parent chain does not terminate")
		}
	}

	if c != Context(global) {
		t.Errorf("chain terminated at %s, want global", c.Flavor())
	}
	if steps != 4 {
		t.Errorf("chain length = %d, want 4", steps)
	}
}

func TestOrdinaryFunctionResolvesDirect(t *testing.T) {
	_, module := newTestModule()
	function := NewFunctionContext(module, "f", "function_1_f", false, []string{"x"}, []string{"c"}, false, false)

	if function.Flavor() != FlavorFunction {
		t.Fatalf("flavor = %s", function.Flavor())
	}
	if function.VariablesViaContext() {
		t.Error("ordinary function must not need an indirection object")
	}

	local := function.ResolveLocal("x")
	if strings.Contains(local.Ref, "_python_context->") {
		t.Errorf("local resolved through context: %q", local.Ref)
	}

	closure := function.ResolveClosure("c")
	if !strings.HasPrefix(closure.Ref, "_python_context->python_closure_") {
		t.Errorf("closure ref = %q", closure.Ref)
	}
	if closure.Indirection != 1 {
		t.Errorf("closure indirection = %d, want 1", closure.Indirection)
	}

	temp := function.ResolveTemp("t")
	if strings.Contains(temp.Ref, "_python_context->") {
		t.Errorf("temp resolved through context: %q", temp.Ref)
	}

	if !function.HasFrameGuard() {
		t.Error("ordinary function owns a frame guard")
	}
	if frame := function.FrameHandle(); frame.Ref != "frame_guard.getFrame()" || frame.Indirection != 1 {
		t.Errorf("frame = %+v", frame)
	}
}

func TestGeneratorResolvesViaState(t *testing.T) {
	_, module := newTestModule()
	gen := NewFunctionContext(module, "g", "function_2_g", true, []string{"x"}, []string{"c"}, false, false)

	if gen.Flavor() != FlavorGenerator {
		t.Fatalf("flavor = %s", gen.Flavor())
	}
	if !gen.VariablesViaContext() {
		t.Error("generator needs the indirection object")
	}

	// Locals, closures and temporaries all go through the state object.
	if ref := gen.ResolveLocal("x").Ref; !strings.HasPrefix(ref, "_python_context->") {
		t.Errorf("generator local = %q", ref)
	}
	if ref := gen.ResolveClosure("c").Ref; !strings.HasPrefix(ref, "_python_context->common_context->") {
		t.Errorf("generator closure = %q", ref)
	}
	if ref := gen.ResolveTemp("t").Ref; !strings.HasPrefix(ref, "_python_context->") {
		t.Errorf("generator temp = %q", ref)
	}

	if gen.HasFrameGuard() {
		t.Error("generator frame is owned by the state, not a guard")
	}
	if frame := gen.FrameHandle(); frame.Ref != "generator->m_frame" || frame.Indirection != 0 {
		t.Errorf("generator frame = %+v", frame)
	}
}

func TestExecInlineDelegation(t *testing.T) {
	_, module := newTestModule()
	function := NewFunctionContext(module, "f", "function_1_f", false, []string{"x"}, []string{"c"}, true, false)
	exec := NewExecInlineContext(function)

	if exec.ResolveLocal("x") != function.ResolveLocal("x") {
		t.Error("exec-inline local differs from parent")
	}
	if exec.ResolveClosure("c") != function.ResolveClosure("c") {
		t.Error("exec-inline closure differs from parent")
	}
	if exec.CanHaveLocals() != function.CanHaveLocals() {
		t.Error("exec-inline locals capability differs from parent")
	}
	if exec.HasLocalsDict() != function.HasLocalsDict() {
		t.Error("exec-inline locals dict predicate differs from parent")
	}
	if exec.FrameHandle() != function.FrameHandle() {
		t.Error("exec-inline frame differs from parent")
	}
}

func TestComprehensionHasNoTrueLocals(t *testing.T) {
	_, module := newTestModule()
	function := NewFunctionContext(module, "f", "function_1_f", false, nil, nil, false, false)

	for _, flavor := range []Flavor{FlavorListComprehension, FlavorSetComprehension, FlavorDictComprehension} {
		comp := NewComprehensionContext(function, flavor, "<comp>", "comp_"+flavor.String(), []string{"i"})

		if comp.CanHaveLocals() {
			t.Errorf("%s: comprehension must not have true locals", flavor)
		}
		if comp.ResolveLocal("i") != comp.ResolveClosure("i") {
			t.Errorf("%s: local access is not closure access", flavor)
		}
		if !comp.HasFrameGuard() {
			t.Errorf("%s: comprehension runs inside its own guarded block", flavor)
		}
		if comp.VariablesViaContext() {
			t.Errorf("%s: comprehension needs no indirection object", flavor)
		}
	}
}

func TestGeneratorExpression(t *testing.T) {
	_, module := newTestModule()
	genexpr := NewGeneratorExpressionContext(module, "<genexpr>", "genexpr_1", []string{"i"})

	if genexpr.HasFrameGuard() {
		t.Error("generator expression has no frame guard of its own")
	}
	if !genexpr.FrameHandle().IsZero() {
		t.Error("generator expression has no frame handle")
	}
	if !genexpr.VariablesViaContext() {
		t.Error("generator expression is resumable, variables go through the state")
	}
	if ref := genexpr.ResolveClosure("i").Ref; !strings.HasPrefix(ref, "_python_context->") {
		t.Errorf("genexpr closure = %q", ref)
	}
	if ref := genexpr.ResolveTemp("t").Ref; !strings.HasPrefix(ref, "_python_context->") {
		t.Errorf("genexpr temp = %q", ref)
	}
}

func TestCountersMonotonic(t *testing.T) {
	_, module := newTestModule()

	if n := module.AllocateForLoopNumber(); n != 1 {
		t.Errorf("first for-loop number = %d", n)
	}
	if n := module.AllocateForLoopNumber(); n != 2 {
		t.Errorf("second for-loop number = %d", n)
	}
	// Counters are independent per kind.
	if n := module.AllocateTryNumber(); n != 1 {
		t.Errorf("first try number = %d", n)
	}
	if n := module.AllocateWithNumber(); n != 1 {
		t.Errorf("first with number = %d", n)
	}
	if n := module.AllocateWhileLoopNumber(); n != 1 {
		t.Errorf("first while number = %d", n)
	}
}

func TestCodeRegistrationForwardsToModule(t *testing.T) {
	_, module := newTestModule()
	function := NewFunctionContext(module, "f", "function_1_f", false, nil, nil, false, false)

	function.RegisterFunctionCode("function_1_f", "decl", "body")
	function.RegisterComprehensionCode("listcomp_1", "cdecl", "cbody")
	function.RegisterClassCode("class_1_C", "kdecl", "kbody")

	codes := module.FunctionCodes()
	if len(codes) != 1 || codes[0].Name != "function_1_f" || codes[0].Declaration != "decl" {
		t.Errorf("function codes = %+v", codes)
	}
	if len(module.ComprehensionCodes()) != 1 {
		t.Error("comprehension code not registered at module")
	}
	if len(module.ClassCodes()) != 1 {
		t.Error("class code not registered at module")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	_, module := newTestModule()
	module.RegisterFunctionCode("function_1_f", "decl", "body")

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	module.RegisterFunctionCode("function_1_f", "decl2", "body2")
}

func TestCodesSortedByName(t *testing.T) {
	_, module := newTestModule()
	module.RegisterFunctionCode("function_2_b", "", "")
	module.RegisterFunctionCode("function_1_a", "", "")
	module.RegisterFunctionCode("function_3_c", "", "")

	codes := module.FunctionCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1].Name > codes[i].Name {
			t.Fatalf("codes not sorted: %q before %q", codes[i-1].Name, codes[i].Name)
		}
	}
}

func TestFunctionInternsItsLocalNames(t *testing.T) {
	global, module := newTestModule()
	NewFunctionContext(module, "f", "function_1_f", false, []string{"somelocal"}, nil, false, false)

	h := global.Pool().Intern(pyvalue.Str{Value: "somelocal"})
	found := false
	for _, entry := range global.Pool().Constants() {
		if entry.Name == h.Ref {
			found = true
		}
	}
	if !found {
		t.Error("local variable name was not interned at construction")
	}
}

func TestModuleHasNoVariables(t *testing.T) {
	_, module := newTestModule()

	if module.CanHaveLocals() {
		t.Error("module cannot have locals")
	}
	if module.HasLocalVariable("x") || module.HasClosureVariable("x") {
		t.Error("module reported a variable")
	}
	if module.TracebackName() != "<module>" {
		t.Errorf("traceback name = %q", module.TracebackName())
	}
	if module.TracebackFilename() != "testmod.py" {
		t.Errorf("traceback filename = %q", module.TracebackFilename())
	}

	module.AddGlobalVariableNameUsage("b")
	module.AddGlobalVariableNameUsage("a")
	names := module.GlobalVariableNames()
	if len(names) != 2 || names[0] != "a" {
		t.Errorf("global names = %v", names)
	}
}

func TestModuleLocalResolutionPanics(t *testing.T) {
	_, module := newTestModule()

	defer func() {
		if recover() == nil {
			t.Error("resolving a local at module scope did not panic")
		}
	}()
	module.ResolveLocal("x")
}

func TestModuleClosureResolutionPanics(t *testing.T) {
	_, module := newTestModule()

	defer func() {
		if recover() == nil {
			t.Error("resolving a closure at module scope did not panic")
		}
	}()
	module.ResolveClosure("x")
}

func TestTracebackFilenameReachesNestedScopes(t *testing.T) {
	_, module := newTestModule()
	function := NewFunctionContext(module, "f", "function_1_f", false, nil, nil, false, false)
	comp := NewComprehensionContext(function, FlavorSetComprehension, "<setcomp>", "setcomp_1", nil)

	if comp.TracebackFilename() != "testmod.py" {
		t.Errorf("nested traceback filename = %q", comp.TracebackFilename())
	}
	if comp.TracebackName() != "<setcomp>" {
		t.Errorf("comprehension traceback name = %q", comp.TracebackName())
	}
}
