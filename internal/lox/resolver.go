package lox

import "github.com/hashicorp/go-multierror"

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeInitializer
	functionTypeMethod
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

// scope maps a name declared in some lexical block to whether it has
// finished being defined: false means "declared but its initializer is
// still being resolved" (reading it is an error), true means ready to use.
type scope map[string]bool

// Resolver is a single static pass over the AST that computes, for every
// variable-use expression, how many enclosing environments separate it from
// the scope that defines it. It writes that distance into the Interpreter's
// locals side-table and reports a fixed set of static errors (illegal
// return/this/super, self-reference in an initializer, redeclaration).
type Resolver struct {
	interpreter *Interpreter

	scopes []scope

	currentFunction functionType
	currentClass    classType

	errs *multierror.Error
}

// NewResolver returns a Resolver that will record binding depths into in's
// locals side-table.
func NewResolver(in *Interpreter) *Resolver {
	return &Resolver{interpreter: in}
}

// Resolve walks every statement and returns an aggregate of every static
// error found. A non-nil error is a compile-time error: the caller must not
// invoke the interpreter.
func (r *Resolver) Resolve(statements []Stmt) error {
	r.resolveStmts(statements)
	return r.errs.ErrorOrNil()
}

func (r *Resolver) resolveStmts(statements []Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	_ = stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr Expr) {
	_, _ = expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		r.reportError(name, "Variable with this name already declared in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interpreter.resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
	// not found in any scope: treated as global, left out of locals
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) reportError(tok Token, message string) {
	r.errs = multierror.Append(r.errs, newTokenDiagnostic(tok, message))
}

// --- StmtVisitor ---

func (r *Resolver) VisitBlockStmt(stmt *BlockStmt) error {
	r.beginScope()
	r.resolveStmts(stmt.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitBreakStmt(stmt *BreakStmt) error    { return nil }
func (r *Resolver) VisitContinueStmt(stmt *ContinueStmt) error { return nil }

func (r *Resolver) VisitClassStmt(stmt *ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.reportError(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classTypeSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		kind := functionTypeMethod
		if method.Name.Lexeme == "init" {
			kind = functionTypeInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) VisitExpressionStmt(stmt *ExpressionStmt) error {
	r.resolveExpr(stmt.Expression)
	return nil
}

func (r *Resolver) VisitFunctionStmt(stmt *FunctionStmt) error {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, functionTypeFunction)
	return nil
}

func (r *Resolver) VisitIfStmt(stmt *IfStmt) error {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(stmt *PrintStmt) error {
	r.resolveExpr(stmt.Expression)
	return nil
}

func (r *Resolver) VisitReturnStmt(stmt *ReturnStmt) error {
	if r.currentFunction == functionTypeNone {
		r.reportError(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Value != nil {
		if r.currentFunction == functionTypeInitializer {
			r.reportError(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Value)
	}
	return nil
}

func (r *Resolver) VisitVarStmt(stmt *VarStmt) error {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}
	r.define(stmt.Name)
	return nil
}

func (r *Resolver) VisitWhileStmt(stmt *WhileStmt) error {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Body)
	if stmt.Increment != nil {
		r.resolveExpr(stmt.Increment)
	}
	return nil
}

// --- ExprVisitor ---

func (r *Resolver) VisitAssignExpr(expr *AssignExpr) (any, error) {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *BinaryExpr) (any, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *CallExpr) (any, error) {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *GetExpr) (any, error) {
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *GroupingExpr) (any, error) {
	r.resolveExpr(expr.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(expr *LiteralExpr) (any, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *LogicalExpr) (any, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(expr *SetExpr) (any, error) {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *SuperExpr) (any, error) {
	switch r.currentClass {
	case classTypeNone:
		r.reportError(expr.Keyword, "Can't use 'super' outside of a class.")
	case classTypeClass:
		r.reportError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(expr *ThisExpr) (any, error) {
	if r.currentClass == classTypeNone {
		r.reportError(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *UnaryExpr) (any, error) {
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitVariableExpr(expr *VariableExpr) (any, error) {
	if len(r.scopes) != 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
			r.reportError(expr.Name, "Cannot read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}
