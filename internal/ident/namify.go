package ident

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/pynative/pynative/internal/pyvalue"
)

// maxPlainNameLength bounds how much of a constant's printable form ends up
// in its symbol name before we switch to a digest.
const maxPlainNameLength = 40

var typeNamePrefix = map[pyvalue.ValueType]string{
	pyvalue.BOOL_VALUE:      "bool",
	pyvalue.INT_VALUE:       "int",
	pyvalue.FLOAT_VALUE:     "float",
	pyvalue.COMPLEX_VALUE:   "complex",
	pyvalue.STR_VALUE:       "str",
	pyvalue.BYTES_VALUE:     "bytes",
	pyvalue.BYTEARRAY_VALUE: "bytearray",
	pyvalue.TUPLE_VALUE:     "tuple",
	pyvalue.LIST_VALUE:      "list",
	pyvalue.SET_VALUE:       "set",
	pyvalue.FROZENSET_VALUE: "frozenset",
	pyvalue.DICT_VALUE:      "dict",
	pyvalue.RANGE_VALUE:     "range",
	pyvalue.NONE_VALUE:      "none",
	pyvalue.ELLIPSIS_VALUE:  "ellipsis",
}

// NamifyConstant derives a deterministic, collision-free symbol name from a
// constant value. Reproducible builds depend on this being a pure function
// of the value: same value, same name, in every compilation.
func NamifyConstant(v pyvalue.Value) string {
	prefix, ok := typeNamePrefix[v.Type()]
	if !ok {
		prefix = "const"
	}

	// Plain string contents name themselves; for everything else the
	// printable form decides.
	if s, ok := v.(pyvalue.Str); ok {
		if isPlainName(s.Value) && len(s.Value) <= maxPlainNameLength {
			return prefix + "_" + s.Value
		}
	}

	repr := v.Repr()
	if isPlainName(repr) && len(repr) <= maxPlainNameLength {
		return prefix + "_" + repr
	}

	sanitized := sanitizeName(repr)
	if len(sanitized) > maxPlainNameLength {
		sanitized = sanitized[:maxPlainNameLength]
	}
	// The sanitized form alone is lossy ("a_b" and "a b" collapse), so the
	// digest of the exact key carries the uniqueness.
	digest := sha1.Sum([]byte(string(v.Type()) + ":" + v.Key()))
	return prefix + "_" + sanitized + "_" + hex.EncodeToString(digest[:4])
}

func isPlainName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func sanitizeName(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			b.WriteByte(c)
			lastUnderscore = false
			continue
		}
		if c == '-' {
			b.WriteString("neg")
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
