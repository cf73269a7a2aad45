package ast

import (
	"github.com/pynative/pynative/internal/config"
	"github.com/pynative/pynative/internal/pyvalue"
)

// Builtin-constructor expression nodes. Each binds to exactly one builtin
// spec and the named children of the constructor's arguments. The node owns
// none of the fold policy: it assembles the correctly-ordered, correctly-
// elided argument sequence, honors the escape/exception bookkeeping, and
// defers to its spec.

const (
	KindBuiltinTuple      = "EXPRESSION_BUILTIN_TUPLE"
	KindBuiltinList       = "EXPRESSION_BUILTIN_LIST"
	KindBuiltinSet        = "EXPRESSION_BUILTIN_SET"
	KindBuiltinFrozenset  = "EXPRESSION_BUILTIN_FROZENSET"
	KindBuiltinFloat      = "EXPRESSION_BUILTIN_FLOAT"
	KindBuiltinBool       = "EXPRESSION_BUILTIN_BOOL"
	KindBuiltinStr        = "EXPRESSION_BUILTIN_STR"
	KindBuiltinBytes      = "EXPRESSION_BUILTIN_BYTES"
	KindBuiltinBytearray1 = "EXPRESSION_BUILTIN_BYTEARRAY1"
	KindBuiltinBytearray3 = "EXPRESSION_BUILTIN_BYTEARRAY3"
	KindBuiltinComplex    = "EXPRESSION_BUILTIN_COMPLEX"
)

// BuiltinContainer covers the unary container constructors: tuple, list,
// set and frozenset. One tagged struct instead of four types; the kind tag
// and result shape are fixed per constructor.
type BuiltinContainer struct {
	exprBase
	kind  string
	shape Shape
	value Expression // nil when called without argument
	spec  BuiltinSpec
}

func NewBuiltinTuple(value Expression, spec BuiltinSpec) *BuiltinContainer {
	return &BuiltinContainer{kind: KindBuiltinTuple, shape: ShapeTuple, value: value, spec: spec}
}

func NewBuiltinList(value Expression, spec BuiltinSpec) *BuiltinContainer {
	return &BuiltinContainer{kind: KindBuiltinList, shape: ShapeList, value: value, spec: spec}
}

func NewBuiltinSet(value Expression, spec BuiltinSpec) *BuiltinContainer {
	return &BuiltinContainer{kind: KindBuiltinSet, shape: ShapeSet, value: value, spec: spec}
}

func NewBuiltinFrozenset(value Expression, spec BuiltinSpec) *BuiltinContainer {
	return &BuiltinContainer{kind: KindBuiltinFrozenset, shape: ShapeFrozenset, value: value, spec: spec}
}

func (b *BuiltinContainer) Kind() string     { return b.kind }
func (b *BuiltinContainer) TypeShape() Shape { return b.shape }

func (b *BuiltinContainer) Children() []Child {
	if b.value == nil {
		return nil
	}
	return []Child{{Name: "value", Expr: b.value}}
}

func (b *BuiltinContainer) Value() Expression { return b.value }

func (b *BuiltinContainer) ComputeExpression(trace TraceCollection) Change {
	if b.value == nil {
		return b.spec.ComputeBuiltinSpec(trace, b, nil)
	}

	// A known-length range argument above the fold threshold is refused:
	// folding it would synthesize an oversized constant.
	if rangeRef, ok := b.value.(*RangeRef); ok {
		if rangeRef.IterationLength() > config.MaxRangeFoldSize {
			return NoChange(b)
		}
		return b.spec.ComputeBuiltinSpec(trace, b, []Expression{rangeRef})
	}

	return b.spec.ComputeBuiltinSpec(trace, b, []Expression{b.value})
}

// BuiltinFloat is the float constructor.
type BuiltinFloat struct {
	exprBase
	value Expression
	spec  BuiltinSpec
}

func NewBuiltinFloat(value Expression, spec BuiltinSpec) *BuiltinFloat {
	return &BuiltinFloat{value: value, spec: spec}
}

func (b *BuiltinFloat) Kind() string     { return KindBuiltinFloat }
func (b *BuiltinFloat) TypeShape() Shape { return ShapeFloat }

func (b *BuiltinFloat) Children() []Child {
	if b.value == nil {
		return nil
	}
	return []Child{{Name: "value", Expr: b.value}}
}

func (b *BuiltinFloat) Value() Expression { return b.value }

func (b *BuiltinFloat) ComputeExpression(trace TraceCollection) Change {
	return b.spec.ComputeBuiltinSpec(trace, b, givenValues(b.value))
}

// BuiltinBool is the bool constructor. Truth testing is common and cheap to
// predict, so a known truth value short-circuits ahead of the generic spec
// path; the evaluation of the discarded argument is preserved.
type BuiltinBool struct {
	exprBase
	value Expression
	spec  BuiltinSpec
}

func NewBuiltinBool(value Expression, spec BuiltinSpec) *BuiltinBool {
	return &BuiltinBool{value: value, spec: spec}
}

func (b *BuiltinBool) Kind() string     { return KindBuiltinBool }
func (b *BuiltinBool) TypeShape() Shape { return ShapeBool }

func (b *BuiltinBool) Children() []Child {
	if b.value == nil {
		return nil
	}
	return []Child{{Name: "value", Expr: b.value}}
}

func (b *BuiltinBool) Value() Expression { return b.value }

func (b *BuiltinBool) ComputeExpression(trace TraceCollection) Change {
	if b.value != nil {
		if truth, ok := b.value.TruthValue(); ok {
			result := WrapWithSideEffects(
				NewConstantRef(pyvalue.Bool{Value: truth}),
				b.value,
			)
			return Change{
				Node: result,
				Tag:  TagNewConstant,
				Desc: "Predicted truth value of built-in bool argument",
			}
		}
	}

	return b.spec.ComputeBuiltinSpec(trace, b, givenValues(b.value))
}

// BuiltinText covers the text/bytes constructors with their optional
// encoding and errors arguments: str and bytes. Codec errors and __str__
// style hooks may run arbitrary code, so before the spec is consulted every
// remaining argument escapes and a control-flow escape is recorded.
type BuiltinText struct {
	exprBase
	kind  string
	shape Shape

	value    Expression
	encoding Expression
	errors   Expression

	spec BuiltinSpec
}

func NewBuiltinStr(value, encoding, errors Expression, spec BuiltinSpec) *BuiltinText {
	return &BuiltinText{
		kind: KindBuiltinStr, shape: ShapeStr,
		value: value, encoding: encoding, errors: errors, spec: spec,
	}
}

func NewBuiltinBytes(value, encoding, errors Expression, spec BuiltinSpec) *BuiltinText {
	return &BuiltinText{
		kind: KindBuiltinBytes, shape: ShapeBytes,
		value: value, encoding: encoding, errors: errors, spec: spec,
	}
}

func (b *BuiltinText) Kind() string     { return b.kind }
func (b *BuiltinText) TypeShape() Shape { return b.shape }

func (b *BuiltinText) Children() []Child {
	return namedChildren(
		Child{Name: "value", Expr: b.value},
		Child{Name: "encoding", Expr: b.encoding},
		Child{Name: "errors", Expr: b.errors},
	)
}

func (b *BuiltinText) Value() Expression    { return b.value }
func (b *BuiltinText) Encoding() Expression { return b.encoding }
func (b *BuiltinText) Errors() Expression   { return b.errors }

func (b *BuiltinText) ComputeExpression(trace TraceCollection) Change {
	args := elideTrailingNone([]Expression{b.value, b.encoding, b.errors})

	for _, arg := range args {
		// The value of that node escapes and could change its contents.
		trace.RemoveKnowledge(arg)
	}

	// Any code could be run, note that.
	trace.OnControlFlowEscape(b)

	return b.spec.ComputeBuiltinSpec(trace, b, args)
}

// BuiltinBytearray1 is the unary bytearray constructor.
type BuiltinBytearray1 struct {
	exprBase
	value Expression
	spec  BuiltinSpec
}

func NewBuiltinBytearray1(value Expression, spec BuiltinSpec) *BuiltinBytearray1 {
	return &BuiltinBytearray1{value: value, spec: spec}
}

func (b *BuiltinBytearray1) Kind() string     { return KindBuiltinBytearray1 }
func (b *BuiltinBytearray1) TypeShape() Shape { return ShapeBytearray }

func (b *BuiltinBytearray1) Children() []Child {
	if b.value == nil {
		return nil
	}
	return []Child{{Name: "value", Expr: b.value}}
}

func (b *BuiltinBytearray1) Value() Expression { return b.value }

func (b *BuiltinBytearray1) ComputeExpression(trace TraceCollection) Change {
	return b.spec.ComputeBuiltinSpec(trace, b, givenValues(b.value))
}

// BuiltinBytearray3 is the bytearray(string, encoding, errors) form. Codec
// decoding is never folded at compile time: the node always reports a
// possible exception and stays unchanged.
type BuiltinBytearray3 struct {
	exprBase
	str      Expression
	encoding Expression
	errors   Expression
	spec     BuiltinSpec
}

func NewBuiltinBytearray3(str, encoding, errors Expression, spec BuiltinSpec) *BuiltinBytearray3 {
	return &BuiltinBytearray3{str: str, encoding: encoding, errors: errors, spec: spec}
}

func (b *BuiltinBytearray3) Kind() string     { return KindBuiltinBytearray3 }
func (b *BuiltinBytearray3) TypeShape() Shape { return ShapeBytearray }

func (b *BuiltinBytearray3) Children() []Child {
	return namedChildren(
		Child{Name: "string", Expr: b.str},
		Child{Name: "encoding", Expr: b.encoding},
		Child{Name: "errors", Expr: b.errors},
	)
}

func (b *BuiltinBytearray3) StringArg() Expression { return b.str }
func (b *BuiltinBytearray3) Encoding() Expression  { return b.encoding }
func (b *BuiltinBytearray3) Errors() Expression    { return b.errors }

func (b *BuiltinBytearray3) ComputeExpression(trace TraceCollection) Change {
	trace.OnExceptionRaiseExit("BaseException")

	return NoChange(b)
}

// BuiltinComplex is the complex constructor.
type BuiltinComplex struct {
	exprBase
	real Expression
	imag Expression
	spec BuiltinSpec
}

func NewBuiltinComplex(real, imag Expression, spec BuiltinSpec) *BuiltinComplex {
	return &BuiltinComplex{real: real, imag: imag, spec: spec}
}

func (b *BuiltinComplex) Kind() string     { return KindBuiltinComplex }
func (b *BuiltinComplex) TypeShape() Shape { return ShapeComplex }

func (b *BuiltinComplex) Children() []Child {
	return namedChildren(
		Child{Name: "real", Expr: b.real},
		Child{Name: "imag", Expr: b.imag},
	)
}

func (b *BuiltinComplex) Real() Expression { return b.real }
func (b *BuiltinComplex) Imag() Expression { return b.imag }

func (b *BuiltinComplex) ComputeExpression(trace TraceCollection) Change {
	return b.spec.ComputeBuiltinSpec(trace, b, elideTrailingNone([]Expression{b.real, b.imag}))
}

func givenValues(value Expression) []Expression {
	if value == nil {
		return nil
	}
	return []Expression{value}
}

func namedChildren(children ...Child) []Child {
	result := make([]Child, 0, len(children))
	for _, child := range children {
		if child.Expr != nil {
			result = append(result, child)
		}
	}
	return result
}

// elideTrailingNone drops nil children and trailing none-valued optional
// children, reproducing default-argument elision: a caller that omitted
// encoding/errors consults the spec as if the parameters did not exist.
func elideTrailingNone(args []Expression) []Expression {
	end := len(args)
	for end > 0 && isAbsent(args[end-1]) {
		end--
	}
	result := make([]Expression, 0, end)
	for _, arg := range args[:end] {
		result = append(result, arg)
	}
	return result
}

func isAbsent(arg Expression) bool {
	if arg == nil {
		return true
	}
	if v, ok := arg.ConstantValue(); ok {
		return v.Type() == pyvalue.NONE_VALUE
	}
	return false
}
