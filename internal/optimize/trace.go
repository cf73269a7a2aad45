// Package optimize implements the expression-rewrite machinery: the trace
// collection nodes report into, the builtin constructor specs, and the
// fixpoint driver.
package optimize

import "github.com/pynative/pynative/internal/ast"

// Event types recorded by the trace collection.
const (
	EventRemoveKnowledge   = "remove_knowledge"
	EventControlFlowEscape = "control_flow_escape"
	EventExceptionRaise    = "exception_raise"
)

// Event is one recorded abstract-interpretation fact.
type Event struct {
	Type string
	// Kind of the expression involved, empty for exception events.
	NodeKind string
	// Exception class name for exception events.
	Exception string
}

// Trace is the recording trace collection. Recording is append-only and
// never fails; the driver inspects it between passes.
type Trace struct {
	events []Event

	// known facts per expression, invalidated by RemoveKnowledge
	invalidated map[ast.Expression]bool
}

func NewTrace() *Trace {
	return &Trace{invalidated: make(map[ast.Expression]bool)}
}

func (t *Trace) RemoveKnowledge(expr ast.Expression) {
	if expr == nil {
		return
	}
	t.invalidated[expr] = true
	t.events = append(t.events, Event{Type: EventRemoveKnowledge, NodeKind: expr.Kind()})
}

func (t *Trace) OnControlFlowEscape(node ast.Expression) {
	kind := ""
	if node != nil {
		kind = node.Kind()
	}
	t.events = append(t.events, Event{Type: EventControlFlowEscape, NodeKind: kind})
}

func (t *Trace) OnExceptionRaiseExit(exceptionName string) {
	t.events = append(t.events, Event{Type: EventExceptionRaise, Exception: exceptionName})
}

// Events returns the recorded events in order.
func (t *Trace) Events() []Event { return t.events }

// KnowledgeRemoved reports whether facts about expr were invalidated.
func (t *Trace) KnowledgeRemoved(expr ast.Expression) bool {
	return t.invalidated[expr]
}

// CountEvents returns how many events of one type were recorded.
func (t *Trace) CountEvents(eventType string) int {
	n := 0
	for _, e := range t.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}
