package lox

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, source string) (*Interpreter, error) {
	t.Helper()
	tokens, err := NewScanner(source).ScanTokens()
	require.NoError(t, err)
	stmts, err := NewParser(tokens).Parse()
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	in := NewInterpreter(log)
	return in, NewResolver(in).Resolve(stmts)
}

func TestResolver_ReturnAtTopLevelIsError(t *testing.T) {
	_, err := resolve(t, "return 1;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestResolver_ReturnValueInInitializerIsError(t *testing.T) {
	_, err := resolve(t, `
		class Foo {
			init() { return 1; }
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestResolver_ThisOutsideClassIsError(t *testing.T) {
	_, err := resolve(t, "print this;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestResolver_SuperWithoutSuperclassIsError(t *testing.T) {
	_, err := resolve(t, `
		class Foo {
			bar() { super.bar(); }
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'super' in a class with no superclass.")
}

func TestResolver_ClassInheritingFromItselfIsError(t *testing.T) {
	_, err := resolve(t, "class Foo < Foo {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

func TestResolver_SelfReferenceInInitializerIsError(t *testing.T) {
	_, err := resolve(t, "{ var a = a; }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot read local variable in its own initializer.")
}

func TestResolver_RedeclarationInLocalScopeIsError(t *testing.T) {
	_, err := resolve(t, "{ var a = 1; var a = 2; }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Variable with this name already declared in this scope.")
}

func TestResolver_ValidProgramResolvesCleanly(t *testing.T) {
	_, err := resolve(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() { super.speak(); print "Woof"; }
		}
		var d = Dog();
		d.speak();
	`)
	require.NoError(t, err)
}
