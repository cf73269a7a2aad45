package ast

import (
	"testing"

	"github.com/pynative/pynative/internal/pyvalue"
)

func TestConstantRef(t *testing.T) {
	node := NewConstantRef(pyvalue.Int{Value: 5})

	if !node.IsConstant() {
		t.Error("constant ref must be constant")
	}
	if truth, ok := node.TruthValue(); !ok || !truth {
		t.Errorf("TruthValue() = %v, %v", truth, ok)
	}
	if node.TypeShape() != ShapeInt {
		t.Errorf("shape = %q", node.TypeShape())
	}
	if node.MayHaveSideEffects() {
		t.Error("constants have no side effects")
	}
	if len(node.Children()) != 0 {
		t.Error("constants have no children")
	}
}

func TestRangeRefLength(t *testing.T) {
	node := NewRangeRef(0, 500, 2)
	if node.IterationLength() != 250 {
		t.Errorf("IterationLength() = %d", node.IterationLength())
	}
	if node.TypeShape() != ShapeRange {
		t.Errorf("shape = %q", node.TypeShape())
	}
}

func TestWrapWithSideEffectsDropsEffectFree(t *testing.T) {
	replacement := NewConstantRef(pyvalue.Bool{Value: true})
	old := NewConstantRef(pyvalue.List{})

	wrapped := WrapWithSideEffects(replacement, old)
	if wrapped != Expression(replacement) {
		t.Error("effect-free argument should vanish entirely")
	}
}

func TestWrapWithSideEffectsKeepsEffects(t *testing.T) {
	call := NewOpaqueCall("f")
	replacement := NewConstantRef(pyvalue.Bool{Value: false})

	wrapped := WrapWithSideEffects(replacement, call)
	se, ok := wrapped.(*SideEffects)
	if !ok {
		t.Fatalf("expected side-effects wrapper, got %T", wrapped)
	}
	if len(se.Effects()) != 1 || se.Effects()[0] != Expression(call) {
		t.Errorf("effects = %+v", se.Effects())
	}
	if se.Expr() != Expression(replacement) {
		t.Error("final expression lost")
	}

	// The wrapper forwards value queries to the final expression.
	if truth, ok := se.TruthValue(); !ok || truth {
		t.Errorf("wrapper TruthValue() = %v, %v", truth, ok)
	}
	if se.TypeShape() != ShapeBool {
		t.Errorf("wrapper shape = %q", se.TypeShape())
	}
}

func TestWrapWithSideEffectsFlattensNesting(t *testing.T) {
	inner := WrapWithSideEffects(NewConstantRef(pyvalue.Int{Value: 1}), NewOpaqueCall("g"))
	outer := WrapWithSideEffects(NewConstantRef(pyvalue.Int{Value: 2}), inner)

	se, ok := outer.(*SideEffects)
	if !ok {
		t.Fatalf("expected side-effects wrapper, got %T", outer)
	}
	if len(se.Effects()) != 1 {
		t.Fatalf("effects = %d, want the one real call", len(se.Effects()))
	}
	if se.Effects()[0].Kind() != KindOpaqueCall {
		t.Errorf("kept effect kind = %q", se.Effects()[0].Kind())
	}
}

func TestElideTrailingNone(t *testing.T) {
	value := NewConstantRef(pyvalue.Str{Value: "x"})
	noneArg := NewConstantRef(pyvalue.None{})

	args := elideTrailingNone([]Expression{value, noneArg, nil})
	if len(args) != 1 || args[0] != Expression(value) {
		t.Errorf("elided args = %+v", args)
	}

	// A none in the middle stays: only trailing optionals are elided.
	args = elideTrailingNone([]Expression{value, noneArg, value})
	if len(args) != 3 {
		t.Errorf("middle none was elided: %d args", len(args))
	}
}
