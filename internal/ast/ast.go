// Package ast models the expression tree the optimizer rewrites. Nodes are
// immutable once built: an optimization never mutates a node in place, it
// produces a replacement and lets the driver substitute it.
package ast

import "github.com/pynative/pynative/internal/pyvalue"

// Shape is the static result shape a node advertises, used by later passes
// for specialized code selection. Querying it is pure.
type Shape string

const (
	ShapeUnknown   Shape = ""
	ShapeBool      Shape = "bool"
	ShapeInt       Shape = "int"
	ShapeFloat     Shape = "float"
	ShapeComplex   Shape = "complex"
	ShapeStr       Shape = "str"
	ShapeBytes     Shape = "bytes"
	ShapeBytearray Shape = "bytearray"
	ShapeTuple     Shape = "tuple"
	ShapeList      Shape = "list"
	ShapeSet       Shape = "set"
	ShapeFrozenset Shape = "frozenset"
	ShapeDict      Shape = "dict"
	ShapeNone      Shape = "none"
	ShapeRange     Shape = "range"
)

// Child is a named child expression. Children are identified by fixed
// names, not positions, and are fixed at construction.
type Child struct {
	Name string
	Expr Expression
}

// Expression is the base interface of every expression node.
type Expression interface {
	Kind() string
	Children() []Child

	// IsConstant reports whether the node is a resolved compile-time value.
	IsConstant() bool
	// ConstantValue returns the resolved value when IsConstant.
	ConstantValue() (pyvalue.Value, bool)
	// TruthValue returns the statically known truth value, ok=false when
	// it cannot be predicted.
	TruthValue() (truth bool, ok bool)

	TypeShape() Shape
	MayHaveSideEffects() bool
}

// Change tags understood by the rewrite driver.
const (
	TagNewConstant   = "new_constant"
	TagNewExpression = "new_expression"
)

// Change is the result of one computeExpression call: the node itself
// (empty Tag, the fixpoint signal) or a replacement with a machine tag and
// a human-readable justification.
type Change struct {
	Node Expression
	Tag  string
	Desc string
}

// NoChange is the canonical fixpoint result.
func NoChange(node Expression) Change {
	return Change{Node: node}
}

func (c Change) Changed() bool { return c.Tag != "" }

// TraceCollection is the abstract-interpretation state threaded through
// every optimization call. Nodes query and update it but never own it, and
// the recording operations never fail.
type TraceCollection interface {
	// RemoveKnowledge invalidates prior facts about an expression whose
	// value may have changed or escaped.
	RemoveKnowledge(expr Expression)
	// OnControlFlowEscape records that arbitrary code may have run.
	OnControlFlowEscape(node Expression)
	// OnExceptionRaiseExit records that an exception of at least this
	// class may propagate from this point.
	OnExceptionRaiseExit(exceptionName string)
}

// BuiltinSpec is the external policy object of one builtin constructor:
// arity, parameter names, and the fold decision. Nodes hold a reference to
// their spec, they never own the policy.
type BuiltinSpec interface {
	Name() string
	ComputeBuiltinSpec(trace TraceCollection, node Expression, given []Expression) Change
}

// Rewritable is implemented by nodes the driver can re-invoke until a call
// returns the node unchanged.
type Rewritable interface {
	Expression
	ComputeExpression(trace TraceCollection) Change
}

// exprBase supplies the conservative defaults nodes override as needed.
type exprBase struct{}

func (exprBase) IsConstant() bool                     { return false }
func (exprBase) ConstantValue() (pyvalue.Value, bool) { return nil, false }
func (exprBase) TruthValue() (bool, bool)             { return false, false }
func (exprBase) TypeShape() Shape                     { return ShapeUnknown }
func (exprBase) MayHaveSideEffects() bool             { return true }

func shapeOfValue(v pyvalue.Value) Shape {
	switch v.Type() {
	case pyvalue.BOOL_VALUE:
		return ShapeBool
	case pyvalue.INT_VALUE:
		return ShapeInt
	case pyvalue.FLOAT_VALUE:
		return ShapeFloat
	case pyvalue.COMPLEX_VALUE:
		return ShapeComplex
	case pyvalue.STR_VALUE:
		return ShapeStr
	case pyvalue.BYTES_VALUE:
		return ShapeBytes
	case pyvalue.BYTEARRAY_VALUE:
		return ShapeBytearray
	case pyvalue.TUPLE_VALUE:
		return ShapeTuple
	case pyvalue.LIST_VALUE:
		return ShapeList
	case pyvalue.SET_VALUE:
		return ShapeSet
	case pyvalue.FROZENSET_VALUE:
		return ShapeFrozenset
	case pyvalue.DICT_VALUE:
		return ShapeDict
	case pyvalue.NONE_VALUE:
		return ShapeNone
	case pyvalue.RANGE_VALUE:
		return ShapeRange
	default:
		return ShapeUnknown
	}
}
