package ident

import "strings"

// Handle is a symbolic reference to a value or variable: the textual
// reference expression in the generated code plus an indirection level.
// Indirection 0 means the reference is usable directly; each level above
// that requires one dereference before use.
type Handle struct {
	Ref         string
	Indirection int
}

func New(ref string, indirection int) Handle {
	return Handle{Ref: ref, Indirection: indirection}
}

// Code returns the reference expression with the dereferences applied, the
// form most consumers splice into generated code.
func (h Handle) Code() string {
	if h.Indirection == 0 {
		return h.Ref
	}
	return strings.Repeat("*", h.Indirection) + "(" + h.Ref + ")"
}

// IsZero reports whether the handle was never assigned. Only scopes without
// a frame of their own hand these out, and only for the frame slot.
func (h Handle) IsZero() bool {
	return h.Ref == ""
}

// ForConstant returns the handle of an interned constant.
func ForConstant(name string) Handle {
	return Handle{Ref: name, Indirection: 0}
}

// ForLocal returns the handle of a local variable. Resumable scopes keep
// their locals in a heap state object and reach them through it.
func ForLocal(name string, fromContext bool) Handle {
	if fromContext {
		return Handle{Ref: "_python_context->python_var_" + name, Indirection: 0}
	}
	return Handle{Ref: "_python_var_" + name, Indirection: 0}
}

// ForClosure returns the handle of a closure variable. Closure variables
// live in cells, hence one level of indirection; prefix selects how the
// cell itself is reached (directly, or through the scope's state object).
func ForClosure(name string, prefix string) Handle {
	return Handle{Ref: prefix + "python_closure_" + name, Indirection: 1}
}

// ForTemp returns the handle of a temporary.
func ForTemp(name string, prefix string) Handle {
	return Handle{Ref: prefix + "python_tmp_" + name, Indirection: 0}
}
