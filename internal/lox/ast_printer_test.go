package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestASTPrinter_CanonicalSExpression checks that each parsed expression
// prints as the expected fully-parenthesized S-expression. The printed form
// is compared as a string; it is not parsed again.
func TestASTPrinter_CanonicalSExpression(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3;", "(* (group (+ 1 2)) 3)"},
		{`"a" == "b";`, `(== "a" "b")`},
		{"-1;", "(- 1)"},
		{"!true;", "(! true)"},
		{"a = 1;", "(= a 1)"},
	}

	printer := &ASTPrinter{}
	for _, c := range cases {
		tokens, err := NewScanner(c.source).ScanTokens()
		require.NoError(t, err)
		stmts, err := NewParser(tokens).Parse()
		require.NoError(t, err)
		require.Len(t, stmts, 1)

		exprStmt, ok := stmts[0].(*ExpressionStmt)
		require.True(t, ok)
		assert.Equal(t, c.want, printer.Print(exprStmt.Expression))
	}
}
