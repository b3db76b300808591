package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/loxlang/glox/internal/lox"
	"github.com/loxlang/glox/internal/replutil"
)

var (
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.FgYellow)
)

const banner = "glox - a Lox interpreter. Type 'exit' to leave."

// runREPL starts an interactive session. Input is buffered across lines
// until replutil.IsComplete judges it a finished statement or block, then
// the buffer is scanned/parsed/resolved/interpreted against a single
// long-lived Interpreter so top-level declarations persist across inputs.
// Compile errors never abort the session; only EOF (Ctrl+D), another
// readline error, or the `exit` command does.
func runREPL(log *logrus.Logger) int {
	rl, err := readline.New(promptColor.Sprint("glox> "))
	if err != nil {
		errorColor.Fprintln(color.Output, err)
		return exitUsageError
	}
	defer rl.Close()

	promptColor.Fprintln(color.Output, banner)

	in := lox.NewInterpreter(log)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C: discard whatever's buffered and start fresh,
				// the session itself keeps going.
				buffer.Reset()
				rl.SetPrompt(promptColor.Sprint("glox> "))
				continue
			}
			// io.EOF (Ctrl+D) or any other readline error ends the session.
			break
		}

		if buffer.Len() == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		buffer.WriteString(line)
		buffer.WriteByte('\n')

		if !replutil.IsComplete(buffer.String()) {
			rl.SetPrompt(promptColor.Sprint("...> "))
			continue
		}

		rl.SetPrompt(promptColor.Sprint("glox> "))
		source := buffer.String()
		buffer.Reset()

		// compile/runtime errors are already printed by run(); the REPL
		// just keeps going regardless of the result.
		run(in, source, log, true)
	}

	return exitOK
}
