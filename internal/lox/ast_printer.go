package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// ASTPrinter renders an expression tree as a canonical, fully-parenthesized
// S-expression. The output is deterministic, so two parses of the same
// source print identically and trees can be compared by their printed
// form. The package has no parser for the S-expression form itself.
type ASTPrinter struct{}

// Print renders a single expression.
func (a *ASTPrinter) Print(e Expr) string {
	s, _ := e.Accept(a)
	return s.(string)
}

func (a *ASTPrinter) parenthesize(name string, exprs ...Expr) (any, error) {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		s, _ := e.Accept(a)
		b.WriteString(s.(string))
	}
	b.WriteByte(')')
	return b.String(), nil
}

func (a *ASTPrinter) VisitAssignExpr(e *AssignExpr) (any, error) {
	return a.parenthesize("= "+e.Name.Lexeme, e.Value)
}

func (a *ASTPrinter) VisitBinaryExpr(e *BinaryExpr) (any, error) {
	return a.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (a *ASTPrinter) VisitCallExpr(e *CallExpr) (any, error) {
	return a.parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
}

func (a *ASTPrinter) VisitGetExpr(e *GetExpr) (any, error) {
	return a.parenthesize("get "+e.Name.Lexeme, e.Object)
}

func (a *ASTPrinter) VisitGroupingExpr(e *GroupingExpr) (any, error) {
	return a.parenthesize("group", e.Expression)
}

func (a *ASTPrinter) VisitLiteralExpr(e *LiteralExpr) (any, error) {
	if e.Value == nil {
		return "nil", nil
	}
	switch v := e.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return fmt.Sprintf("%q", v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (a *ASTPrinter) VisitLogicalExpr(e *LogicalExpr) (any, error) {
	return a.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (a *ASTPrinter) VisitSetExpr(e *SetExpr) (any, error) {
	return a.parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
}

func (a *ASTPrinter) VisitSuperExpr(e *SuperExpr) (any, error) {
	return fmt.Sprintf("(super.%s)", e.Method.Lexeme), nil
}

func (a *ASTPrinter) VisitThisExpr(e *ThisExpr) (any, error) {
	return "this", nil
}

func (a *ASTPrinter) VisitUnaryExpr(e *UnaryExpr) (any, error) {
	return a.parenthesize(e.Operator.Lexeme, e.Right)
}

func (a *ASTPrinter) VisitVariableExpr(e *VariableExpr) (any, error) {
	return e.Name.Lexeme, nil
}
