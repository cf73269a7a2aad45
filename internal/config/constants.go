package config

// MaxRangeFoldSize is the largest range-like argument a container
// constructor fold may expand at compile time. Above this, folding would
// trade a cheap runtime loop for an oversized constant.
const MaxRangeFoldSize = 256

// MaxRewritePasses bounds the fixpoint iteration per expression. A chain
// longer than this means a rewrite is oscillating, which is a bug.
const MaxRewritePasses = 50

// Metadata attribute names the generated support code references. They are
// interned before first use so emission never has to special-case them.
var MetadataNames = []string{
	"__module__",
	"__class__",
	"__dict__",
	"__doc__",
	"__file__",
	"__enter__",
	"__exit__",
	"__builtins__",
	"__cached__",
}

// Patched module name.
const InspectModuleName = "inspect"

// Builtin function names used by helper code.
var HelperBuiltinNames = []string{
	"compile",
	"range",
	"open",
	"print",
	"__import__",
}

// Argument names the print helper needs.
var PrintArgumentNames = []string{
	"end",
	"file",
}

// Method names the compile-code helper looks up.
var CompileHelperMethodNames = []string{
	"read",
	"strip",
}

// Eval-order templates exist for the 2..5 argument code paths.
const (
	MinEvalOrder = 2
	MaxEvalOrder = 5
)
