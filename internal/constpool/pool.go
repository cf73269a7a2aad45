// Package constpool interns every literal constant used anywhere in a
// compiled program and assigns each a canonical symbolic handle.
package constpool

import (
	"sort"

	"github.com/pynative/pynative/internal/config"
	"github.com/pynative/pynative/internal/ident"
	"github.com/pynative/pynative/internal/pyvalue"
)

// Entry is one interned constant: its pool key and the handle name chosen
// for it.
type Entry struct {
	Type  pyvalue.ValueType
	Key   string
	Value pyvalue.Value
	Name  string
}

// Pool is the process-wide constant table of one compilation. It grows
// append-only and is discarded when the compilation ends. There is exactly
// one writer: the global context funnels every mutation.
type Pool struct {
	names   map[poolKey]string
	entries map[poolKey]Entry

	evalOrdersUsed map[int]bool
}

type poolKey struct {
	valueType pyvalue.ValueType
	value     string
}

// NewPool creates the pool and pre-registers the constants every compiled
// program needs, so they are available before first use.
func NewPool() *Pool {
	p := &Pool{
		names:          make(map[poolKey]string),
		entries:        make(map[poolKey]Entry),
		evalOrdersUsed: make(map[int]bool),
	}

	// Basic values the generated code uses all the time.
	p.Intern(pyvalue.Tuple{})
	p.Intern(pyvalue.Dict{})
	p.Intern(pyvalue.Str{Value: ""})
	p.Intern(pyvalue.Bool{Value: true})
	p.Intern(pyvalue.Bool{Value: false})
	p.Intern(pyvalue.Int{Value: 0})
	p.Intern(pyvalue.Bytes{})

	for _, name := range config.MetadataNames {
		p.Intern(pyvalue.Str{Value: name})
	}
	p.Intern(pyvalue.Str{Value: config.InspectModuleName})
	for _, name := range config.HelperBuiltinNames {
		p.Intern(pyvalue.Str{Value: name})
	}
	for _, name := range config.PrintArgumentNames {
		p.Intern(pyvalue.Str{Value: name})
	}
	for _, name := range config.CompileHelperMethodNames {
		p.Intern(pyvalue.Str{Value: name})
	}

	for n := config.MinEvalOrder; n <= config.MaxEvalOrder; n++ {
		p.evalOrdersUsed[n] = true
	}

	return p
}

// Intern returns the canonical handle of a constant, inserting it on first
// sight. The four universal singletons bypass the table: the target runtime
// already exposes them, they need no storage. Interning never fails.
func (p *Pool) Intern(v pyvalue.Value) ident.Handle {
	switch t := v.(type) {
	case pyvalue.None:
		return ident.New("Py_None", 0)
	case pyvalue.Ellipsis:
		return ident.New("Py_Ellipsis", 0)
	case pyvalue.Bool:
		if t.Value {
			return ident.New("Py_True", 0)
		}
		return ident.New("Py_False", 0)
	}

	key := poolKey{valueType: v.Type(), value: v.Key()}
	if name, ok := p.names[key]; ok {
		return ident.ForConstant(name)
	}

	name := "_python_" + ident.NamifyConstant(v)
	p.names[key] = name
	p.entries[key] = Entry{
		Type:  v.Type(),
		Key:   v.Key(),
		Value: v,
		Name:  name,
	}
	return ident.ForConstant(name)
}

// Constants returns all interned constants sorted by handle name, the order
// the emission stage declares them in.
func (p *Pool) Constants() []Entry {
	result := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// AddEvalOrderUse records that an argument-evaluation-order template is
// needed somewhere in the program.
func (p *Pool) AddEvalOrderUse(n int) {
	p.evalOrdersUsed[n] = true
}

// EvalOrdersUsed returns the used templates in ascending order.
func (p *Pool) EvalOrdersUsed() []int {
	result := make([]int, 0, len(p.evalOrdersUsed))
	for n := range p.evalOrdersUsed {
		result = append(result, n)
	}
	sort.Ints(result)
	return result
}
