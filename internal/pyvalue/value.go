package pyvalue

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type ValueType string

const (
	NONE_VALUE      = "NONE"
	ELLIPSIS_VALUE  = "ELLIPSIS"
	BOOL_VALUE      = "BOOL"
	INT_VALUE       = "INT"
	FLOAT_VALUE     = "FLOAT"
	COMPLEX_VALUE   = "COMPLEX"
	STR_VALUE       = "STR"
	BYTES_VALUE     = "BYTES"
	BYTEARRAY_VALUE = "BYTEARRAY"
	TUPLE_VALUE     = "TUPLE"
	LIST_VALUE      = "LIST"
	SET_VALUE       = "SET"
	FROZENSET_VALUE = "FROZENSET"
	DICT_VALUE      = "DICT"
	RANGE_VALUE     = "RANGE"
)

// Value is a compile-time-known constant of the source language. Values are
// immutable once built. Two values with equal (Type, Key) pairs are
// interchangeable everywhere, regardless of how they were constructed.
type Value interface {
	Type() ValueType
	// Repr returns the source-language printable form, used for
	// deterministic constant naming.
	Repr() string
	// Key returns a normalized deep-equality key. Defined for every value,
	// including containers whose native equality is identity-based.
	Key() string
	// Truth reports the value's truth value. Constants always know it.
	Truth() bool
}

type None struct{}

func (n None) Type() ValueType { return NONE_VALUE }
func (n None) Repr() string    { return "None" }
func (n None) Key() string     { return "None" }
func (n None) Truth() bool     { return false }

type Ellipsis struct{}

func (e Ellipsis) Type() ValueType { return ELLIPSIS_VALUE }
func (e Ellipsis) Repr() string    { return "Ellipsis" }
func (e Ellipsis) Key() string     { return "Ellipsis" }
func (e Ellipsis) Truth() bool     { return true }

type Bool struct {
	Value bool
}

func (b Bool) Type() ValueType { return BOOL_VALUE }
func (b Bool) Repr() string {
	if b.Value {
		return "True"
	}
	return "False"
}
func (b Bool) Key() string { return b.Repr() }
func (b Bool) Truth() bool { return b.Value }

type Int struct {
	Value int64
}

func (i Int) Type() ValueType { return INT_VALUE }
func (i Int) Repr() string    { return strconv.FormatInt(i.Value, 10) }
func (i Int) Key() string     { return i.Repr() }
func (i Int) Truth() bool     { return i.Value != 0 }

type Float struct {
	Value float64
}

func (f Float) Type() ValueType { return FLOAT_VALUE }
func (f Float) Repr() string    { return formatFloat(f.Value) }
func (f Float) Key() string     { return f.Repr() }
func (f Float) Truth() bool     { return f.Value != 0 }

// formatFloat renders a float the way the reference interpreter's repr does:
// shortest round-trip form, with ".0" kept on integral values.
func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type Complex struct {
	Real float64
	Imag float64
}

func (c Complex) Type() ValueType { return COMPLEX_VALUE }
func (c Complex) Repr() string {
	if c.Real == 0 {
		return formatFloat(c.Imag) + "j"
	}
	sign := "+"
	imag := c.Imag
	if imag < 0 {
		sign = "-"
		imag = -imag
	}
	return "(" + formatFloat(c.Real) + sign + formatFloat(imag) + "j)"
}
func (c Complex) Key() string { return c.Repr() }
func (c Complex) Truth() bool { return c.Real != 0 || c.Imag != 0 }

type Str struct {
	Value string
}

func (s Str) Type() ValueType { return STR_VALUE }
func (s Str) Repr() string    { return quoteString(s.Value) }
func (s Str) Key() string     { return s.Value }
func (s Str) Truth() bool     { return len(s.Value) > 0 }

type Bytes struct {
	Value []byte
}

func (b Bytes) Type() ValueType { return BYTES_VALUE }
func (b Bytes) Repr() string    { return "b" + quoteString(string(b.Value)) }
func (b Bytes) Key() string     { return string(b.Value) }
func (b Bytes) Truth() bool     { return len(b.Value) > 0 }

// Bytearray is the mutable bytes variant. It is still a legitimate constant
// template: generated code copies it on each evaluation.
type Bytearray struct {
	Value []byte
}

func (b Bytearray) Type() ValueType { return BYTEARRAY_VALUE }
func (b Bytearray) Repr() string    { return "bytearray(b" + quoteString(string(b.Value)) + ")" }
func (b Bytearray) Key() string     { return string(b.Value) }
func (b Bytearray) Truth() bool     { return len(b.Value) > 0 }

type Tuple struct {
	Elements []Value
}

func (t Tuple) Type() ValueType { return TUPLE_VALUE }
func (t Tuple) Repr() string {
	if len(t.Elements) == 1 {
		return "(" + t.Elements[0].Repr() + ",)"
	}
	return "(" + joinReprs(t.Elements) + ")"
}
func (t Tuple) Key() string { return "(" + joinKeys(t.Elements) + ")" }
func (t Tuple) Truth() bool { return len(t.Elements) > 0 }

type List struct {
	Elements []Value
}

func (l List) Type() ValueType { return LIST_VALUE }
func (l List) Repr() string    { return "[" + joinReprs(l.Elements) + "]" }
func (l List) Key() string     { return "[" + joinKeys(l.Elements) + "]" }
func (l List) Truth() bool     { return len(l.Elements) > 0 }

type Set struct {
	// Elements are kept sorted by (Type, Key) so that equal sets always
	// produce identical keys and reprs.
	Elements []Value
}

// NewSet normalizes the element order and drops duplicates.
func NewSet(elements []Value) Set {
	return Set{Elements: normalizeElements(elements)}
}

func (s Set) Type() ValueType { return SET_VALUE }
func (s Set) Repr() string {
	if len(s.Elements) == 0 {
		return "set()"
	}
	return "{" + joinReprs(s.Elements) + "}"
}
func (s Set) Key() string { return "{" + joinKeys(s.Elements) + "}" }
func (s Set) Truth() bool { return len(s.Elements) > 0 }

type FrozenSet struct {
	Elements []Value
}

func NewFrozenSet(elements []Value) FrozenSet {
	return FrozenSet{Elements: normalizeElements(elements)}
}

func (s FrozenSet) Type() ValueType { return FROZENSET_VALUE }
func (s FrozenSet) Repr() string {
	if len(s.Elements) == 0 {
		return "frozenset()"
	}
	return "frozenset({" + joinReprs(s.Elements) + "})"
}
func (s FrozenSet) Key() string { return "frozenset({" + joinKeys(s.Elements) + "})" }
func (s FrozenSet) Truth() bool { return len(s.Elements) > 0 }

type DictEntry struct {
	Key   Value
	Value Value
}

type Dict struct {
	Entries []DictEntry
}

func (d Dict) Type() ValueType { return DICT_VALUE }
func (d Dict) Repr() string {
	parts := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		parts = append(parts, e.Key.Repr()+": "+e.Value.Repr())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Key sorts entries so that dicts built in different insertion orders still
// compare equal, matching the source language's dict equality.
func (d Dict) Key() string {
	parts := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		parts = append(parts, string(e.Key.Type())+":"+e.Key.Key()+"="+string(e.Value.Type())+":"+e.Value.Key())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d Dict) Truth() bool { return len(d.Entries) > 0 }

// Range is a compile-time range(start, stop, step) reference. Step must not
// be zero; the front end rejects that before constants are built.
type Range struct {
	Start int64
	Stop  int64
	Step  int64
}

func (r Range) Type() ValueType { return RANGE_VALUE }
func (r Range) Repr() string {
	if r.Step != 1 {
		return fmt.Sprintf("range(%d, %d, %d)", r.Start, r.Stop, r.Step)
	}
	return fmt.Sprintf("range(%d, %d)", r.Start, r.Stop)
}
func (r Range) Key() string { return r.Repr() }
func (r Range) Truth() bool { return r.Len() > 0 }

// Len returns the number of elements the range produces.
func (r Range) Len() int64 {
	if r.Step > 0 {
		if r.Stop <= r.Start {
			return 0
		}
		return (r.Stop - r.Start + r.Step - 1) / r.Step
	}
	if r.Step < 0 {
		if r.Stop >= r.Start {
			return 0
		}
		return (r.Start - r.Stop - r.Step - 1) / -r.Step
	}
	return 0
}

// Elements expands the range into Int values.
func (r Range) Elements() []Value {
	result := make([]Value, 0, r.Len())
	if r.Step > 0 {
		for v := r.Start; v < r.Stop; v += r.Step {
			result = append(result, Int{Value: v})
		}
	} else if r.Step < 0 {
		for v := r.Start; v > r.Stop; v += r.Step {
			result = append(result, Int{Value: v})
		}
	}
	return result
}

// Hashable reports whether the value may be a set element or dict key.
func Hashable(v Value) bool {
	switch t := v.(type) {
	case List, Set, Dict, Bytearray:
		return false
	case Tuple:
		for _, e := range t.Elements {
			if !Hashable(e) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func normalizeElements(elements []Value) []Value {
	seen := make(map[string]bool, len(elements))
	result := make([]Value, 0, len(elements))
	for _, e := range elements {
		k := string(e.Type()) + ":" + e.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		ti, tj := result[i].Type(), result[j].Type()
		if ti != tj {
			return ti < tj
		}
		return result[i].Key() < result[j].Key()
	})
	return result
}

func joinReprs(elements []Value) string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = e.Repr()
	}
	return strings.Join(parts, ", ")
}

func joinKeys(elements []Value) string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = string(e.Type()) + ":" + e.Key()
	}
	return strings.Join(parts, ", ")
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\'':
			b.WriteString(`\'`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
