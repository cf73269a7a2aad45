package context

import (
	"fmt"
	"sort"

	"github.com/pynative/pynative/internal/ident"
	"github.com/pynative/pynative/internal/pyvalue"
)

// ModuleContext is the scope of one compiled module. It is the sink of all
// code registration in its tree and the funnel through which children reach
// the constant pool.
type ModuleContext struct {
	scopeCounters

	global *Global

	name     string
	codeName string
	filename string

	functionCodes      map[string]CodeEntry
	comprehensionCodes map[string]CodeEntry
	classCodes         map[string]CodeEntry

	globalVarNames map[string]bool
}

func NewModuleContext(global *Global, name, codeName, filename string) *ModuleContext {
	return &ModuleContext{
		global:             global,
		name:               name,
		codeName:           codeName,
		filename:           filename,
		functionCodes:      make(map[string]CodeEntry),
		comprehensionCodes: make(map[string]CodeEntry),
		classCodes:         make(map[string]CodeEntry),
		globalVarNames:     make(map[string]bool),
	}
}

func (m *ModuleContext) Flavor() Flavor  { return FlavorModule }
func (m *ModuleContext) Parent() Context { return m.global }

func (m *ModuleContext) InternConstant(v pyvalue.Value) ident.Handle {
	return m.global.InternConstant(v)
}

func (m *ModuleContext) AddEvalOrderUse(n int) {
	m.global.AddEvalOrderUse(n)
}

// Modules have no locals and no closures; their variables are globals. A
// resolution request here means a variable was misclassified upstream.

func (m *ModuleContext) ResolveLocal(name string) ident.Handle {
	panic("module context has no local variables: " + name)
}

func (m *ModuleContext) ResolveClosure(name string) ident.Handle {
	panic("module context has no closure variables: " + name)
}

func (m *ModuleContext) ResolveTemp(name string) ident.Handle { return ident.ForTemp(name, "") }

func (m *ModuleContext) HasLocalVariable(name string) bool   { return false }
func (m *ModuleContext) HasClosureVariable(name string) bool { return false }
func (m *ModuleContext) CanHaveLocals() bool                 { return false }
func (m *ModuleContext) HasLocalsDict() bool                 { return false }

func (m *ModuleContext) FrameHandle() ident.Handle {
	return ident.New("frame_guard.getFrame()", 1)
}

func (m *ModuleContext) HasFrameGuard() bool             { return true }
func (m *ModuleContext) NeedsFrameExceptionKeeper() bool { return false }
func (m *ModuleContext) VariablesViaContext() bool       { return false }

// AddGlobalVariableNameUsage records that generated code references a
// module-level variable by name.
func (m *ModuleContext) AddGlobalVariableNameUsage(name string) {
	m.globalVarNames[name] = true
}

// GlobalVariableNames returns the referenced names in sorted order.
func (m *ModuleContext) GlobalVariableNames() []string {
	result := make([]string, 0, len(m.globalVarNames))
	for name := range m.globalVarNames {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (m *ModuleContext) RegisterFunctionCode(codeName, declaration, body string) {
	registerCode(m.functionCodes, "function", codeName, declaration, body)
}

func (m *ModuleContext) RegisterComprehensionCode(codeName, declaration, body string) {
	registerCode(m.comprehensionCodes, "comprehension", codeName, declaration, body)
}

func (m *ModuleContext) RegisterClassCode(codeName, declaration, body string) {
	registerCode(m.classCodes, "class", codeName, declaration, body)
}

// registerCode asserts code-name uniqueness. A duplicate means two program
// constructs were assigned colliding identities upstream, which must never
// be tolerated silently.
func registerCode(codes map[string]CodeEntry, kind, codeName, declaration, body string) {
	if _, ok := codes[codeName]; ok {
		panic(fmt.Sprintf("duplicate %s code name %q", kind, codeName))
	}
	codes[codeName] = CodeEntry{Name: codeName, Declaration: declaration, Body: body}
}

func (m *ModuleContext) FunctionCodes() []CodeEntry {
	return sortedCodes(m.functionCodes)
}

func (m *ModuleContext) ComprehensionCodes() []CodeEntry {
	return sortedCodes(m.comprehensionCodes)
}

func (m *ModuleContext) ClassCodes() []CodeEntry {
	return sortedCodes(m.classCodes)
}

// sortedCodes returns registrations sorted by code name, so emission order
// is a function of content, not traversal order.
func sortedCodes(codes map[string]CodeEntry) []CodeEntry {
	result := make([]CodeEntry, 0, len(codes))
	for _, entry := range codes {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (m *ModuleContext) CodeName() string       { return m.codeName }
func (m *ModuleContext) ModuleCodeName() string { return m.codeName }
func (m *ModuleContext) ModuleName() string     { return m.name }

func (m *ModuleContext) TracebackName() string     { return "<module>" }
func (m *ModuleContext) TracebackFilename() string { return m.filename }
