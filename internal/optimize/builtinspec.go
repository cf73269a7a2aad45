package optimize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pynative/pynative/internal/ast"
	"github.com/pynative/pynative/internal/config"
	"github.com/pynative/pynative/internal/pyvalue"
)

// errNoFold makes a fold function refuse without implying a runtime
// exception: the call stays as it is and the decision defers to run time.
var errNoFold = errors.New("no fold")

// raiseError is a fold failure that the real call would raise at run time.
type raiseError struct {
	exception string
	message   string
}

func (e *raiseError) Error() string {
	return e.exception + ": " + e.message
}

func raisesf(exception, format string, args ...interface{}) error {
	return &raiseError{exception: exception, message: fmt.Sprintf(format, args...)}
}

// foldFunc simulates one builtin constructor over known constant values.
type foldFunc func(values []pyvalue.Value) (pyvalue.Value, error)

// ParameterSpec is the declarative policy of one builtin constructor:
// arity, parameter names, and the fold simulation. Nodes only ever see it
// through the ast.BuiltinSpec interface.
type ParameterSpec struct {
	name       string
	paramNames []string
	fold       foldFunc
}

func (s *ParameterSpec) Name() string { return s.name }

// ComputeBuiltinSpec decides the fold. Unsupported or partially-unknown
// argument combinations are not errors: they yield no change and the
// decision defers to run time.
func (s *ParameterSpec) ComputeBuiltinSpec(trace ast.TraceCollection, node ast.Expression, given []ast.Expression) ast.Change {
	if len(given) > len(s.paramNames) {
		trace.OnExceptionRaiseExit("TypeError")
		return ast.NoChange(node)
	}

	values := make([]pyvalue.Value, len(given))
	for i, arg := range given {
		// An absent positional argument before a present one, as in a call
		// giving only the encoding. The shape is valid but not foldable.
		if arg == nil {
			return ast.NoChange(node)
		}
		value, ok := arg.ConstantValue()
		if !ok {
			return ast.NoChange(node)
		}
		values[i] = value
	}

	result, err := s.fold(values)
	if err != nil {
		var raise *raiseError
		if errors.As(err, &raise) {
			trace.OnExceptionRaiseExit(raise.exception)
		}
		return ast.NoChange(node)
	}

	return ast.Change{
		Node: ast.NewConstantRef(result),
		Tag:  ast.TagNewConstant,
		Desc: fmt.Sprintf("Replaced call to built-in '%s' with constant result", s.name),
	}
}

// The one spec value per builtin constructor kind.
var (
	TupleSpec     = &ParameterSpec{name: "tuple", paramNames: []string{"sequence"}, fold: foldTuple}
	ListSpec      = &ParameterSpec{name: "list", paramNames: []string{"sequence"}, fold: foldList}
	SetSpec       = &ParameterSpec{name: "set", paramNames: []string{"iterable"}, fold: foldSet}
	FrozensetSpec = &ParameterSpec{name: "frozenset", paramNames: []string{"iterable"}, fold: foldFrozenset}
	FloatSpec     = &ParameterSpec{name: "float", paramNames: []string{"x"}, fold: foldFloat}
	BoolSpec      = &ParameterSpec{name: "bool", paramNames: []string{"x"}, fold: foldBool}
	StrSpec       = &ParameterSpec{name: "str", paramNames: []string{"object", "encoding", "errors"}, fold: foldStr}
	BytesSpec     = &ParameterSpec{name: "bytes", paramNames: []string{"source", "encoding", "errors"}, fold: foldBytes}
	BytearraySpec = &ParameterSpec{name: "bytearray", paramNames: []string{"source", "encoding", "errors"}, fold: foldBytearray}
	ComplexSpec   = &ParameterSpec{name: "complex", paramNames: []string{"real", "imag"}, fold: foldComplex}
)

// iterElements expands a constant iterable into its element sequence.
func iterElements(v pyvalue.Value) ([]pyvalue.Value, error) {
	switch t := v.(type) {
	case pyvalue.Str:
		elements := make([]pyvalue.Value, 0, len(t.Value))
		for _, r := range t.Value {
			elements = append(elements, pyvalue.Str{Value: string(r)})
		}
		return elements, nil
	case pyvalue.Bytes:
		elements := make([]pyvalue.Value, 0, len(t.Value))
		for _, b := range t.Value {
			elements = append(elements, pyvalue.Int{Value: int64(b)})
		}
		return elements, nil
	case pyvalue.Tuple:
		return t.Elements, nil
	case pyvalue.List:
		return t.Elements, nil
	case pyvalue.Set:
		return t.Elements, nil
	case pyvalue.FrozenSet:
		return t.Elements, nil
	case pyvalue.Dict:
		keys := make([]pyvalue.Value, 0, len(t.Entries))
		for _, entry := range t.Entries {
			keys = append(keys, entry.Key)
		}
		return keys, nil
	case pyvalue.Range:
		if t.Len() > config.MaxRangeFoldSize {
			return nil, errNoFold
		}
		return t.Elements(), nil
	default:
		return nil, raisesf("TypeError", "'%s' object is not iterable", strings.ToLower(string(v.Type())))
	}
}

func foldTuple(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) == 0 {
		return pyvalue.Tuple{}, nil
	}
	elements, err := iterElements(values[0])
	if err != nil {
		return nil, err
	}
	return pyvalue.Tuple{Elements: elements}, nil
}

func foldList(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) == 0 {
		return pyvalue.List{}, nil
	}
	elements, err := iterElements(values[0])
	if err != nil {
		return nil, err
	}
	return pyvalue.List{Elements: elements}, nil
}

func foldSet(values []pyvalue.Value) (pyvalue.Value, error) {
	elements, err := foldSetElements(values)
	if err != nil {
		return nil, err
	}
	return pyvalue.NewSet(elements), nil
}

func foldFrozenset(values []pyvalue.Value) (pyvalue.Value, error) {
	elements, err := foldSetElements(values)
	if err != nil {
		return nil, err
	}
	return pyvalue.NewFrozenSet(elements), nil
}

func foldSetElements(values []pyvalue.Value) ([]pyvalue.Value, error) {
	if len(values) == 0 {
		return nil, nil
	}
	elements, err := iterElements(values[0])
	if err != nil {
		return nil, err
	}
	for _, element := range elements {
		if !pyvalue.Hashable(element) {
			return nil, raisesf("TypeError", "unhashable type: '%s'", strings.ToLower(string(element.Type())))
		}
	}
	return elements, nil
}

func foldFloat(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) == 0 {
		return pyvalue.Float{Value: 0}, nil
	}
	switch t := values[0].(type) {
	case pyvalue.Float:
		return t, nil
	case pyvalue.Int:
		return pyvalue.Float{Value: float64(t.Value)}, nil
	case pyvalue.Bool:
		if t.Value {
			return pyvalue.Float{Value: 1}, nil
		}
		return pyvalue.Float{Value: 0}, nil
	case pyvalue.Str:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
		if err != nil {
			return nil, raisesf("ValueError", "could not convert string to float: %s", t.Repr())
		}
		return pyvalue.Float{Value: parsed}, nil
	default:
		return nil, raisesf("TypeError", "float() argument must be a string or a number")
	}
}

func foldBool(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) == 0 {
		return pyvalue.Bool{Value: false}, nil
	}
	// Constants always know their truth value. This path is normally
	// preempted by the node's truth-value short-circuit.
	return pyvalue.Bool{Value: values[0].Truth()}, nil
}

func foldStr(values []pyvalue.Value) (pyvalue.Value, error) {
	// With encoding or errors present codec behavior is opaque; never fold.
	if len(values) > 1 {
		return nil, errNoFold
	}
	if len(values) == 0 {
		return pyvalue.Str{Value: ""}, nil
	}
	switch t := values[0].(type) {
	case pyvalue.Str:
		return t, nil
	case pyvalue.None, pyvalue.Bool, pyvalue.Int, pyvalue.Float, pyvalue.Tuple, pyvalue.List, pyvalue.Dict:
		return pyvalue.Str{Value: values[0].Repr()}, nil
	default:
		// Reprs we are not certain to reproduce exactly stay unfolded.
		return nil, errNoFold
	}
}

func foldBytes(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) > 1 {
		return nil, errNoFold
	}
	if len(values) == 0 {
		return pyvalue.Bytes{}, nil
	}
	data, err := bytesFromSource(values[0])
	if err != nil {
		return nil, err
	}
	return pyvalue.Bytes{Value: data}, nil
}

func foldBytearray(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) > 1 {
		return nil, errNoFold
	}
	if len(values) == 0 {
		return pyvalue.Bytearray{}, nil
	}
	data, err := bytesFromSource(values[0])
	if err != nil {
		return nil, err
	}
	return pyvalue.Bytearray{Value: data}, nil
}

func bytesFromSource(source pyvalue.Value) ([]byte, error) {
	switch t := source.(type) {
	case pyvalue.Bytes:
		return t.Value, nil
	case pyvalue.Bytearray:
		return t.Value, nil
	case pyvalue.Int:
		if t.Value < 0 {
			return nil, raisesf("ValueError", "negative count")
		}
		if t.Value > config.MaxRangeFoldSize {
			return nil, errNoFold
		}
		return make([]byte, t.Value), nil
	case pyvalue.Str:
		return nil, raisesf("TypeError", "string argument without an encoding")
	case pyvalue.Tuple, pyvalue.List, pyvalue.Range:
		elements, err := iterElements(t)
		if err != nil {
			return nil, err
		}
		data := make([]byte, 0, len(elements))
		for _, element := range elements {
			intElement, ok := element.(pyvalue.Int)
			if !ok {
				return nil, raisesf("TypeError", "an integer is required")
			}
			if intElement.Value < 0 || intElement.Value > 255 {
				return nil, raisesf("ValueError", "bytes must be in range(0, 256)")
			}
			data = append(data, byte(intElement.Value))
		}
		return data, nil
	default:
		return nil, raisesf("TypeError", "cannot convert '%s' object to bytes", strings.ToLower(string(source.Type())))
	}
}

func foldComplex(values []pyvalue.Value) (pyvalue.Value, error) {
	if len(values) == 0 {
		return pyvalue.Complex{}, nil
	}

	if len(values) == 1 {
		if c, ok := values[0].(pyvalue.Complex); ok {
			return c, nil
		}
		real, ok := asReal(values[0])
		if !ok {
			return nil, errNoFold
		}
		return pyvalue.Complex{Real: real}, nil
	}

	real, okReal := asReal(values[0])
	imag, okImag := asReal(values[1])
	if !okReal || !okImag {
		return nil, errNoFold
	}
	return pyvalue.Complex{Real: real, Imag: imag}, nil
}

func asReal(v pyvalue.Value) (float64, bool) {
	switch t := v.(type) {
	case pyvalue.Int:
		return float64(t.Value), true
	case pyvalue.Float:
		return t.Value, true
	case pyvalue.Bool:
		if t.Value {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
