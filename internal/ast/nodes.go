package ast

import (
	"strconv"

	"github.com/pynative/pynative/internal/pyvalue"
)

const (
	KindConstantRef = "EXPRESSION_CONSTANT_REF"
	KindRangeRef    = "EXPRESSION_RANGE_REF"
	KindSideEffects = "EXPRESSION_SIDE_EFFECTS"
	KindOpaqueCall  = "EXPRESSION_OPAQUE_CALL"
)

// ConstantRef references a resolved compile-time constant.
type ConstantRef struct {
	exprBase
	value pyvalue.Value
}

func NewConstantRef(v pyvalue.Value) *ConstantRef {
	return &ConstantRef{value: v}
}

func (c *ConstantRef) Kind() string      { return KindConstantRef }
func (c *ConstantRef) Children() []Child { return nil }

func (c *ConstantRef) IsConstant() bool                     { return true }
func (c *ConstantRef) ConstantValue() (pyvalue.Value, bool) { return c.value, true }
func (c *ConstantRef) TruthValue() (bool, bool)             { return c.value.Truth(), true }
func (c *ConstantRef) TypeShape() Shape                     { return shapeOfValue(c.value) }
func (c *ConstantRef) MayHaveSideEffects() bool             { return false }

func (c *ConstantRef) ComputeExpression(trace TraceCollection) Change {
	return NoChange(c)
}

// RangeRef references a compile-time-known range. It is kept distinct from
// ConstantRef so container folds can weigh the expansion size before
// committing to a constant.
type RangeRef struct {
	exprBase
	rng pyvalue.Range
}

func NewRangeRef(start, stop, step int64) *RangeRef {
	return &RangeRef{rng: pyvalue.Range{Start: start, Stop: stop, Step: step}}
}

func (r *RangeRef) Kind() string      { return KindRangeRef }
func (r *RangeRef) Children() []Child { return nil }

func (r *RangeRef) Value() pyvalue.Range { return r.rng }

// IterationLength is the number of elements the range would expand to.
func (r *RangeRef) IterationLength() int64 { return r.rng.Len() }

func (r *RangeRef) IsConstant() bool                     { return true }
func (r *RangeRef) ConstantValue() (pyvalue.Value, bool) { return r.rng, true }
func (r *RangeRef) TruthValue() (bool, bool)             { return r.rng.Truth(), true }
func (r *RangeRef) TypeShape() Shape                     { return ShapeRange }
func (r *RangeRef) MayHaveSideEffects() bool             { return false }

func (r *RangeRef) ComputeExpression(trace TraceCollection) Change {
	return NoChange(r)
}

// SideEffects evaluates its effect expressions for their side effects only,
// discards their results, and yields the final expression's value. It is
// how a fold preserves the evaluation of an argument it no longer needs.
type SideEffects struct {
	exprBase
	effects []Expression
	expr    Expression
}

func (s *SideEffects) Kind() string { return KindSideEffects }

func (s *SideEffects) Children() []Child {
	children := make([]Child, 0, len(s.effects)+1)
	for i, effect := range s.effects {
		children = append(children, Child{Name: "side_effect_" + strconv.Itoa(i), Expr: effect})
	}
	children = append(children, Child{Name: "expression", Expr: s.expr})
	return children
}

func (s *SideEffects) Effects() []Expression { return s.effects }
func (s *SideEffects) Expr() Expression      { return s.expr }

func (s *SideEffects) ConstantValue() (pyvalue.Value, bool) { return s.expr.ConstantValue() }
func (s *SideEffects) TruthValue() (bool, bool)             { return s.expr.TruthValue() }
func (s *SideEffects) TypeShape() Shape                     { return s.expr.TypeShape() }
func (s *SideEffects) MayHaveSideEffects() bool             { return true }

func (s *SideEffects) ComputeExpression(trace TraceCollection) Change {
	return NoChange(s)
}

// WrapWithSideEffects builds the replacement for old with new, keeping any
// side effects of evaluating old. Effect-free old nodes vanish entirely.
func WrapWithSideEffects(newNode Expression, oldNode Expression) Expression {
	effects := extractSideEffects(oldNode)
	if len(effects) == 0 {
		return newNode
	}
	if inner, ok := newNode.(*SideEffects); ok {
		return &SideEffects{
			effects: append(effects, inner.effects...),
			expr:    inner.expr,
		}
	}
	return &SideEffects{effects: effects, expr: newNode}
}

func extractSideEffects(node Expression) []Expression {
	if node == nil || !node.MayHaveSideEffects() {
		return nil
	}
	if wrapped, ok := node.(*SideEffects); ok {
		result := make([]Expression, 0, len(wrapped.effects)+1)
		for _, effect := range wrapped.effects {
			result = append(result, extractSideEffects(effect)...)
		}
		result = append(result, extractSideEffects(wrapped.expr)...)
		return result
	}
	return []Expression{node}
}

// OpaqueCall stands for an expression the optimizer knows nothing about: it
// may run arbitrary code and yield anything. The front end produces richer
// node kinds; this one exists for tests and as the conservative default.
type OpaqueCall struct {
	exprBase
	name string
}

func NewOpaqueCall(name string) *OpaqueCall {
	return &OpaqueCall{name: name}
}

func (o *OpaqueCall) Kind() string      { return KindOpaqueCall }
func (o *OpaqueCall) Children() []Child { return nil }
func (o *OpaqueCall) Name() string      { return o.name }
