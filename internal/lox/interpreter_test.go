package lox

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram scans, parses, resolves and interprets source against a fresh
// Interpreter, returning everything `print` wrote.
func runProgram(t *testing.T, source string) (string, error) {
	t.Helper()

	tokens, err := NewScanner(source).ScanTokens()
	require.NoError(t, err)
	stmts, err := NewParser(tokens).Parse()
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	in := NewInterpreter(log)

	var out strings.Builder
	in.Print = func(s string) { out.WriteString(s) }

	require.NoError(t, NewResolver(in).Resolve(stmts))
	err = in.Interpret(stmts)
	return out.String(), err
}

func TestInterpreter_Arithmetic(t *testing.T) {
	out, err := runProgram(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpreter_StringConcatenation(t *testing.T) {
	out, err := runProgram(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpreter_MixedPlusOperandsIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `print "foo" + 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestInterpreter_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `print 1 / 0;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Division by zero.")
}

func TestInterpreter_TruthinessAndEquality(t *testing.T) {
	out, err := runProgram(t, `
		print nil == nil;
		print 1 == 1;
		print 1 == "1";
		print !nil;
		print !0;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\ntrue\nfalse\ntrue\nfalse\n", out)
}

func TestInterpreter_VariableScopingAndShadowing(t *testing.T) {
	out, err := runProgram(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
		print a;
	`)
	require.NoError(t, err)
	assert.Equal(t, "local\nglobal\n", out)
}

func TestInterpreter_ClosureCapturesByReference(t *testing.T) {
	out, err := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				print count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestInterpreter_FunctionReturnValue(t *testing.T) {
	out, err := runProgram(t, `
		fun add(a, b) { return a + b; }
		print add(2, 3);
	`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestInterpreter_BreakExitsLoop(t *testing.T) {
	out, err := runProgram(t, `
		var i = 0;
		while (true) {
			if (i >= 3) break;
			print i;
			i = i + 1;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreter_ContinueStillRunsForIncrement(t *testing.T) {
	out, err := runProgram(t, `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 1 or i == 3) continue;
			print i;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n2\n4\n", out)
}

func TestInterpreter_ClassesFieldsAndMethods(t *testing.T) {
	out, err := runProgram(t, `
		class Counter {
			init(start) {
				this.value = start;
			}
			increment() {
				this.value = this.value + 1;
				return this.value;
			}
		}
		var c = Counter(10);
		print c.increment();
		print c.increment();
	`)
	require.NoError(t, err)
	assert.Equal(t, "11\n12\n", out)
}

func TestInterpreter_InheritanceAndSuper(t *testing.T) {
	out, err := runProgram(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "Woof";
			}
		}
		Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, "...\nWoof\n", out)
}

func TestInterpreter_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		var x = 1;
		x();
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestInterpreter_WrongArityIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		fun f(a, b) {}
		f(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestInterpreter_UndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		class Foo {}
		var f = Foo();
		print f.bar;
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined property 'bar'.")
}

func TestInterpreter_ClockIsSeeded(t *testing.T) {
	out, err := runProgram(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
