// Package cli is the thin driver around the compiler pipeline. The front
// end that builds real program trees lives elsewhere; this entry point
// wires options, the pipeline and the report together, and ships a
// selfcheck program exercising the rewrite machinery end to end.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pynative/pynative/internal/ast"
	"github.com/pynative/pynative/internal/config"
	"github.com/pynative/pynative/internal/context"
	"github.com/pynative/pynative/internal/optimize"
	"github.com/pynative/pynative/internal/pipeline"
	"github.com/pynative/pynative/internal/pyvalue"
	"github.com/pynative/pynative/internal/report"
)

func Entry(args []string) int {
	fs := flag.NewFlagSet("pynative", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	optionsPath := fs.String("options", "", "path to a yaml options file")
	reportPath := fs.String("report", "", "write a sqlite compilation report to this path")
	verbose := fs.Bool("verbose", false, "print every applied rewrite")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := config.Options{}
	if *optionsPath != "" {
		loaded, err := config.LoadOptions(*optionsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		opts = loaded
	}
	if *reportPath != "" {
		opts.Report = *reportPath
	}
	if *verbose {
		opts.Verbose = true
	}

	switch fs.Arg(0) {
	case "", "selfcheck":
		return runSelfCheck(opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", fs.Arg(0))
		fmt.Fprintln(os.Stderr, "usage: pynative [-options file] [-report file] [-verbose] [selfcheck]")
		return 2
	}
}

// runSelfCheck compiles a small built-in program tree and reports what the
// optimizer did with it.
func runSelfCheck(opts config.Options) int {
	global := context.NewGlobal()
	module := context.NewModuleContext(global, "__main__", "module___main__", "<selfcheck>")

	function := context.NewFunctionContext(
		module, "demo", "function_1_demo", false,
		[]string{"x", "y"}, nil, false, false,
	)
	module.RegisterFunctionCode(
		function.CodeName(),
		"static PyObject *impl_function_1_demo(PyObject **python_pars);",
		"// generated separately by the emission stage",
	)

	roots := []ast.Expression{
		// folds: small known range
		ast.NewBuiltinTuple(ast.NewRangeRef(1, 11, 1), optimize.TupleSpec),
		// refuses: oversized range
		ast.NewBuiltinList(ast.NewRangeRef(0, 10000, 1), optimize.ListSpec),
		// folds with predicted truth value
		ast.NewBuiltinBool(ast.NewConstantRef(pyvalue.Str{Value: ""}), optimize.BoolSpec),
		// never folds: codec behavior is opaque
		ast.NewBuiltinStr(
			ast.NewConstantRef(pyvalue.Bytes{Value: []byte("data")}),
			ast.NewConstantRef(pyvalue.Str{Value: "utf-8"}),
			nil,
			optimize.StrSpec,
		),
		// folds: numeric conversion
		ast.NewBuiltinFloat(ast.NewConstantRef(pyvalue.Str{Value: "2.5"}), optimize.FloatSpec),
	}

	ctx := &pipeline.Context{
		Global:  global,
		Module:  module,
		Roots:   roots,
		Options: opts,
	}

	p := pipeline.New(optimize.NewProcessor())
	ctx = p.Run(ctx)

	for _, err := range ctx.Errors {
		fmt.Fprintln(os.Stderr, "error:", err)
	}

	printSummary(ctx, opts)

	if opts.Report != "" {
		if err := writeReport(opts.Report, ctx); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
	}

	if len(ctx.Errors) > 0 {
		return 1
	}
	return 0
}

func printSummary(ctx *pipeline.Context, opts config.Options) {
	useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	fmt.Printf("applied %d rewrites over %d expressions\n", len(ctx.Applied), len(ctx.Roots))

	if opts.Verbose {
		for _, rewrite := range ctx.Applied {
			line := fmt.Sprintf("  %-34s %-15s %s", rewrite.NodeKind, rewrite.Tag, rewrite.Desc)
			if useColor {
				fmt.Println("\x1b[32m" + line + "\x1b[0m")
			} else {
				fmt.Println(line)
			}
		}
		fmt.Printf("constant pool holds %d entries\n", len(ctx.Global.Pool().Constants()))
	}
}

func writeReport(path string, ctx *pipeline.Context) error {
	store, err := report.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Write(ctx); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}
