package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) []Stmt {
	t.Helper()
	tokens, err := NewScanner(source).ScanTokens()
	require.NoError(t, err)
	stmts, err := NewParser(tokens).Parse()
	require.NoError(t, err)
	return stmts
}

func TestParser_ExpressionPrecedence(t *testing.T) {
	stmts := parseSource(t, "1 + 2 * 3;")
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok)

	printer := &ASTPrinter{}
	assert.Equal(t, "(+ 1 (* 2 3))", printer.Print(exprStmt.Expression))
}

func TestParser_AssignmentIsRightAssociative(t *testing.T) {
	stmts := parseSource(t, "var a; var b; a = b = 3;")
	require.Len(t, stmts, 3)

	exprStmt := stmts[2].(*ExpressionStmt)
	assign, ok := exprStmt.Expression.(*AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name.Lexeme)

	inner, ok := assign.Value.(*AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name.Lexeme)
}

func TestParser_InvalidAssignmentTargetIsReported(t *testing.T) {
	tokens, err := NewScanner("1 = 2;").ScanTokens()
	require.NoError(t, err)
	_, err = NewParser(tokens).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestParser_ForDesugarsIntoWhileWithIncrement(t *testing.T) {
	stmts := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)

	_, isVar := block.Statements[0].(*VarStmt)
	assert.True(t, isVar)

	while, ok := block.Statements[1].(*WhileStmt)
	require.True(t, ok)
	assert.NotNil(t, while.Condition)
	assert.NotNil(t, while.Increment)
}

func TestParser_BreakOutsideLoopIsReported(t *testing.T) {
	tokens, err := NewScanner("break;").ScanTokens()
	require.NoError(t, err)
	_, err = NewParser(tokens).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'break' outside of a loop.")
}

func TestParser_ContinueInsideWhileIsAccepted(t *testing.T) {
	stmts := parseSource(t, "while (true) { continue; }")
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*WhileStmt)
	assert.True(t, ok)
}

func TestParser_ClassDeclarationWithSuperclassAndMethods(t *testing.T) {
	stmts := parseSource(t, `
		class Base {
			greet() { print "hi"; }
		}
		class Derived < Base {
			init() {}
		}
	`)
	require.Len(t, stmts, 2)

	derived, ok := stmts[1].(*ClassStmt)
	require.True(t, ok)
	require.NotNil(t, derived.Superclass)
	assert.Equal(t, "Base", derived.Superclass.Name.Lexeme)
	require.Len(t, derived.Methods, 1)
	assert.Equal(t, "init", derived.Methods[0].Name.Lexeme)
}

func TestParser_TooManyArgumentsIsReported(t *testing.T) {
	source := "foo("
	for i := 0; i < 256; i++ {
		if i > 0 {
			source += ", "
		}
		source += "1"
	}
	source += ");"

	tokens, err := NewScanner(source).ScanTokens()
	require.NoError(t, err)
	_, err = NewParser(tokens).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 arguments.")
}
