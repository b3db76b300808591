// Command glox is a tree-walking interpreter for the Lox language. Run it
// with a script path to execute a file, or with no arguments to start an
// interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/loxlang/glox/internal/lox"
)

const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitUsageError   = 1
)

var verbose bool

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
	}
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05",
		LogFormat:       "[%lvl%] %time% %msg%\n",
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func runFile(path string, log *logrus.Logger) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open file at '%s'.\n", path)
		return exitUsageError
	}

	in := lox.NewInterpreter(log)
	switch run(in, string(source), log, false) {
	case runResultCompileError:
		return exitCompileError
	case runResultRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

type runResult int

const (
	runResultOK runResult = iota
	runResultCompileError
	runResultRuntimeError
)

// run scans, parses, resolves and interprets a single chunk of source
// against the given (possibly reused) interpreter, printing diagnostics the
// way the front-end always has: compile errors to stderr as they're found,
// a single runtime error (with its line) when the interpreter aborts. When
// echo is true (the REPL) and the chunk is a single bare expression, its
// value is printed instead of being silently discarded.
func run(in *lox.Interpreter, source string, log *logrus.Logger, echo bool) runResult {
	scanner := lox.NewScanner(source)
	tokens, err := scanner.ScanTokens()
	if err != nil {
		printDiagnostic(err)
		return runResultCompileError
	}

	parser := lox.NewParser(tokens)
	statements, err := parser.Parse()
	if err != nil {
		printDiagnostic(err)
		return runResultCompileError
	}

	in.ResetLocals()
	resolver := lox.NewResolver(in)
	if err := resolver.Resolve(statements); err != nil {
		printDiagnostic(err)
		return runResultCompileError
	}

	if echo && len(statements) == 1 {
		if exprStmt, ok := statements[0].(*lox.ExpressionStmt); ok {
			value, err := in.EvaluateForREPL(exprStmt.Expression)
			if err != nil {
				printDiagnostic(err)
				return runResultRuntimeError
			}
			resultColor.Fprintln(color.Output, value)
			return runResultOK
		}
	}

	log.WithField("statements", len(statements)).Debug("interpreting")
	if err := in.Interpret(statements); err != nil {
		printDiagnostic(err)
		return runResultRuntimeError
	}
	return runResultOK
}

// printDiagnostic prints a compile-time or runtime diagnostic in red. A
// *multierror.Error (the scanner/parser/resolver's aggregate type) is
// unrolled so each underlying diagnostic prints on its own line in the
// exact "[line N] Error <where>: <message>" form, rather than as
// go-multierror's own "N error(s) occurred:" wrapper text.
func printDiagnostic(err error) {
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			errorColor.Fprintln(os.Stderr, e)
		}
		return
	}
	errorColor.Fprintln(os.Stderr, err)
}
