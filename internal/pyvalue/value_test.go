package pyvalue

import "testing"

func TestReprs(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"none", None{}, "None"},
		{"true", Bool{Value: true}, "True"},
		{"false", Bool{Value: false}, "False"},
		{"int", Int{Value: 42}, "42"},
		{"negative int", Int{Value: -7}, "-7"},
		{"float integral", Float{Value: 1}, "1.0"},
		{"float fraction", Float{Value: 2.5}, "2.5"},
		{"complex imag only", Complex{Imag: 2}, "2.0j"},
		{"complex both", Complex{Real: 1, Imag: -2}, "(1.0-2.0j)"},
		{"str", Str{Value: "abc"}, "'abc'"},
		{"str escaped", Str{Value: "a'b\n"}, `'a\'b\n'`},
		{"bytes", Bytes{Value: []byte("xy")}, "b'xy'"},
		{"empty tuple", Tuple{}, "()"},
		{"one tuple", Tuple{Elements: []Value{Int{Value: 1}}}, "(1,)"},
		{"tuple", Tuple{Elements: []Value{Int{Value: 1}, Int{Value: 2}}}, "(1, 2)"},
		{"list", List{Elements: []Value{Str{Value: "a"}}}, "['a']"},
		{"empty set", Set{}, "set()"},
		{"empty frozenset", FrozenSet{}, "frozenset()"},
		{"dict", Dict{Entries: []DictEntry{{Key: Str{Value: "k"}, Value: Int{Value: 1}}}}, "{'k': 1}"},
		{"range", Range{Start: 0, Stop: 10, Step: 1}, "range(0, 10)"},
		{"range with step", Range{Start: 0, Stop: 10, Step: 2}, "range(0, 10, 2)"},
		{"ellipsis", Ellipsis{}, "Ellipsis"},
	}

	for _, tt := range tests {
		if got := tt.v.Repr(); got != tt.want {
			t.Errorf("%s: Repr() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTruth(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"none", None{}, false},
		{"zero", Int{Value: 0}, false},
		{"nonzero", Int{Value: 3}, true},
		{"empty str", Str{}, false},
		{"str", Str{Value: "x"}, true},
		{"empty list", List{}, false},
		{"list", List{Elements: []Value{None{}}}, true},
		{"empty range", Range{Start: 5, Stop: 5, Step: 1}, false},
		{"range", Range{Start: 0, Stop: 1, Step: 1}, true},
		{"ellipsis", Ellipsis{}, true},
	}

	for _, tt := range tests {
		if got := tt.v.Truth(); got != tt.want {
			t.Errorf("%s: Truth() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRangeLen(t *testing.T) {
	tests := []struct {
		r    Range
		want int64
	}{
		{Range{Start: 0, Stop: 10, Step: 1}, 10},
		{Range{Start: 0, Stop: 10, Step: 3}, 4},
		{Range{Start: 10, Stop: 0, Step: -1}, 10},
		{Range{Start: 10, Stop: 0, Step: -3}, 4},
		{Range{Start: 5, Stop: 5, Step: 1}, 0},
		{Range{Start: 0, Stop: 10, Step: -1}, 0},
	}

	for _, tt := range tests {
		if got := tt.r.Len(); got != tt.want {
			t.Errorf("%s: Len() = %d, want %d", tt.r.Repr(), got, tt.want)
		}
	}

	elements := (Range{Start: 1, Stop: 7, Step: 2}).Elements()
	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elements))
	}
	if elements[2].(Int).Value != 5 {
		t.Errorf("last element = %s, want 5", elements[2].Repr())
	}
}

func TestSetNormalization(t *testing.T) {
	a := NewSet([]Value{Int{Value: 2}, Int{Value: 1}, Int{Value: 2}})
	b := NewSet([]Value{Int{Value: 1}, Int{Value: 2}})

	if a.Key() != b.Key() {
		t.Errorf("equal sets have different keys: %q vs %q", a.Key(), b.Key())
	}
	if len(a.Elements) != 2 {
		t.Errorf("duplicate not dropped: %d elements", len(a.Elements))
	}
}

func TestDictKeyOrderInsensitive(t *testing.T) {
	a := Dict{Entries: []DictEntry{
		{Key: Str{Value: "x"}, Value: Int{Value: 1}},
		{Key: Str{Value: "y"}, Value: Int{Value: 2}},
	}}
	b := Dict{Entries: []DictEntry{
		{Key: Str{Value: "y"}, Value: Int{Value: 2}},
		{Key: Str{Value: "x"}, Value: Int{Value: 1}},
	}}

	if a.Key() != b.Key() {
		t.Errorf("equal dicts have different keys: %q vs %q", a.Key(), b.Key())
	}
}

func TestHashable(t *testing.T) {
	if Hashable(List{}) {
		t.Error("list should not be hashable")
	}
	if Hashable(Tuple{Elements: []Value{List{}}}) {
		t.Error("tuple containing a list should not be hashable")
	}
	if !Hashable(Tuple{Elements: []Value{Int{Value: 1}, Str{Value: "a"}}}) {
		t.Error("tuple of scalars should be hashable")
	}
	if !Hashable(Str{Value: "x"}) {
		t.Error("str should be hashable")
	}
}
