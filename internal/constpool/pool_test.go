package constpool

import (
	"sort"
	"testing"

	"github.com/pynative/pynative/internal/pyvalue"
)

func TestInternIdempotent(t *testing.T) {
	pool := NewPool()

	first := pool.Intern(pyvalue.Str{Value: "payload"})
	second := pool.Intern(pyvalue.Str{Value: "payload"})

	if first != second {
		t.Errorf("equal values got different handles: %+v vs %+v", first, second)
	}

	// Equal (type, key) built from distinct instances is still one entry.
	a := pool.Intern(pyvalue.Tuple{Elements: []pyvalue.Value{pyvalue.Int{Value: 1}}})
	b := pool.Intern(pyvalue.Tuple{Elements: []pyvalue.Value{pyvalue.Int{Value: 1}}})
	if a != b {
		t.Errorf("equal tuples got different handles: %+v vs %+v", a, b)
	}
}

func TestSingletonBypass(t *testing.T) {
	pool := NewPool()
	before := len(pool.Constants())

	tests := []struct {
		v    pyvalue.Value
		want string
	}{
		{pyvalue.None{}, "Py_None"},
		{pyvalue.Bool{Value: true}, "Py_True"},
		{pyvalue.Bool{Value: false}, "Py_False"},
		{pyvalue.Ellipsis{}, "Py_Ellipsis"},
	}

	for _, tt := range tests {
		h := pool.Intern(tt.v)
		if h.Ref != tt.want || h.Indirection != 0 {
			t.Errorf("Intern(%s) = %+v, want ref %s", tt.v.Repr(), h, tt.want)
		}
	}

	if after := len(pool.Constants()); after != before {
		t.Errorf("singletons grew the pool: %d -> %d", before, after)
	}
}

func TestTypeDistinguishesKeys(t *testing.T) {
	pool := NewPool()

	intHandle := pool.Intern(pyvalue.Int{Value: 1})
	floatHandle := pool.Intern(pyvalue.Float{Value: 1})

	if intHandle == floatHandle {
		t.Error("int 1 and float 1.0 must not share a handle")
	}
}

func TestPreRegisteredConstants(t *testing.T) {
	pool := NewPool()

	// The always-needed constants are present without further interning.
	names := make(map[string]bool)
	for _, entry := range pool.Constants() {
		names[entry.Name] = true
	}

	for _, entry := range []pyvalue.Value{
		pyvalue.Tuple{},
		pyvalue.Str{Value: ""},
		pyvalue.Int{Value: 0},
		pyvalue.Str{Value: "__doc__"},
		pyvalue.Str{Value: "print"},
	} {
		h := pool.Intern(entry)
		if !names[h.Ref] {
			t.Errorf("expected %s pre-registered, handle %q not in pool", entry.Repr(), h.Ref)
		}
	}
}

func TestConstantsSorted(t *testing.T) {
	pool := NewPool()
	pool.Intern(pyvalue.Str{Value: "zzz"})
	pool.Intern(pyvalue.Str{Value: "aaa"})

	entries := pool.Constants()
	if !sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	}) {
		t.Error("Constants() not sorted by handle name")
	}
}

func TestEvalOrders(t *testing.T) {
	pool := NewPool()

	got := pool.EvalOrdersUsed()
	want := []int{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("seeded eval orders = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seeded eval orders = %v, want %v", got, want)
		}
	}

	pool.AddEvalOrderUse(7)
	pool.AddEvalOrderUse(7)
	got = pool.EvalOrdersUsed()
	if got[len(got)-1] != 7 || len(got) != 5 {
		t.Errorf("after AddEvalOrderUse(7): %v", got)
	}
}
