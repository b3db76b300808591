package lox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Interpreter walks a resolved AST and evaluates it directly, with no
// intermediate bytecode. One Interpreter is created per process and reused
// across every REPL input, so that top-level `var` declarations and
// function/class definitions persist between lines exactly like a real
// session.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int

	log *logrus.Logger

	// Print is where `print` writes (standard output by default); tests
	// swap it out. The stdout builder is not written to.
	stdout strings.Builder
	Print  func(string)
}

// NewInterpreter returns an Interpreter with a fresh globals scope seeded
// with the native clock() function.
func NewInterpreter(log *logrus.Logger) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", newClockFn())

	in := &Interpreter{
		globals: globals,
		locals:  make(map[Expr]int),
		log:     log,
	}
	in.environment = in.globals
	in.Print = func(s string) { fmt.Print(s) }
	return in
}

// resolve records, for a variable-use expression, how many environments out
// from the current one its binding lives. Called by the Resolver, consulted
// by lookupVariable/VisitAssignExpr.
func (in *Interpreter) resolve(expr Expr, depth int) {
	in.locals[expr] = depth
}

// ResetLocals clears the resolver side-table. The REPL calls this before
// resolving each new line of input, since line N+1's AST nodes are entirely
// new pointers and line N's entries would otherwise accumulate forever.
func (in *Interpreter) ResetLocals() {
	in.locals = make(map[Expr]int)
}

// Interpret executes a fully parsed and resolved program. A *RuntimeError
// returned here means the caller should report it and exit 70; it never
// returns a *diagnosticError (those are compile-time and are never reached
// if the resolver already failed).
func (in *Interpreter) Interpret(statements []Stmt) error {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt Stmt) error {
	return stmt.Accept(in)
}

func (in *Interpreter) evaluate(expr Expr) (any, error) {
	return expr.Accept(in)
}

// EvaluateForREPL evaluates a single expression and stringifies its result
// the same way `print` would. It exists for the REPL, which echoes the
// value of a bare expression typed at the prompt instead of silently
// discarding it the way ExpressionStmt normally does.
func (in *Interpreter) EvaluateForREPL(expr Expr) (string, error) {
	value, err := in.evaluate(expr)
	if err != nil {
		return "", err
	}
	return stringify(value), nil
}

// executeBlock runs statements in a fresh child of env, always restoring the
// interpreter's previous environment on the way out - including when a
// break/continue/return signal or a runtime error is unwinding through it.
func (in *Interpreter) executeBlock(statements []Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- StmtVisitor ---

func (in *Interpreter) VisitBlockStmt(stmt *BlockStmt) error {
	return in.executeBlock(stmt.Statements, NewEnvironment(in.environment))
}

func (in *Interpreter) VisitBreakStmt(stmt *BreakStmt) error {
	return errBreak
}

func (in *Interpreter) VisitContinueStmt(stmt *ContinueStmt) error {
	return errContinue
}

func (in *Interpreter) VisitClassStmt(stmt *ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		v, err := in.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.environment.Define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		in.environment = NewEnvironment(in.environment)
		in.environment.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, method := range stmt.Methods {
		fn := NewFunction(method, in.environment, method.Name.Lexeme == "init")
		methods[method.Name.Lexeme] = fn
	}

	class := NewClass(stmt.Name.Lexeme, superclass, methods)

	if stmt.Superclass != nil {
		in.environment = in.environment.enclosing
	}

	return in.environment.Assign(stmt.Name, class)
}

func (in *Interpreter) VisitExpressionStmt(stmt *ExpressionStmt) error {
	_, err := in.evaluate(stmt.Expression)
	return err
}

func (in *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) error {
	fn := NewFunction(stmt, in.environment, false)
	in.environment.Define(stmt.Name.Lexeme, fn)
	return nil
}

func (in *Interpreter) VisitIfStmt(stmt *IfStmt) error {
	cond, err := in.evaluate(stmt.Condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return in.execute(stmt.ThenBranch)
	}
	if stmt.ElseBranch != nil {
		return in.execute(stmt.ElseBranch)
	}
	return nil
}

func (in *Interpreter) VisitPrintStmt(stmt *PrintStmt) error {
	value, err := in.evaluate(stmt.Expression)
	if err != nil {
		return err
	}
	in.Print(stringify(value) + "\n")
	return nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ReturnStmt) error {
	var value any
	if stmt.Value != nil {
		v, err := in.evaluate(stmt.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return returnSignal{value: value}
}

func (in *Interpreter) VisitVarStmt(stmt *VarStmt) error {
	var value any
	if stmt.Initializer != nil {
		v, err := in.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	in.environment.Define(stmt.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) VisitWhileStmt(stmt *WhileStmt) error {
	for {
		cond, err := in.evaluate(stmt.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}

		err = in.execute(stmt.Body)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				// fall through to increment below
			default:
				return err
			}
		}

		if stmt.Increment != nil {
			if _, err := in.evaluate(stmt.Increment); err != nil {
				return err
			}
		}
	}
}

// --- ExprVisitor ---

func (in *Interpreter) VisitAssignExpr(expr *AssignExpr) (any, error) {
	value, err := in.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[expr]; ok {
		in.environment.AssignAt(distance, expr.Name, value)
	} else if err := in.globals.Assign(expr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (any, error) {
	left, err := in.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Greater:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case GreaterEqual:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case Less:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case LessEqual:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case BangEqual:
		return !isEqual(left, right), nil
	case EqualEqual:
		return isEqual(left, right), nil
	case Minus:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case Slash:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, newRuntimeError(expr.Operator, "Division by zero.")
		}
		return l / r, nil
	case Star:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case Plus:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(expr.Operator, "Operands must be two numbers or two strings.")
	}

	return nil, newRuntimeError(expr.Operator, "Unknown operator.")
}

func (in *Interpreter) VisitCallExpr(expr *CallExpr) (any, error) {
	callee, err := in.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(expr.Args))
	for _, a := range expr.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call functions and classes.")
	}

	if len(args) != callable.Arity() {
		return nil, newRuntimeError(expr.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	in.log.WithField("callee", callable.String()).Debug("calling")
	return callable.Call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *GetExpr) (any, error) {
	object, err := in.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}
	if instance, ok := object.(*Instance); ok {
		return instance.Get(expr.Name)
	}
	return nil, newRuntimeError(expr.Name, "Only instances have properties.")
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (any, error) {
	return in.evaluate(expr.Expression)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (any, error) {
	return expr.Value, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *LogicalExpr) (any, error) {
	left, err := in.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(expr.Right)
}

func (in *Interpreter) VisitSetExpr(expr *SetExpr) (any, error) {
	object, err := in.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have fields.")
	}
	value, err := in.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name, value)
	return value, nil
}

func (in *Interpreter) VisitSuperExpr(expr *SuperExpr) (any, error) {
	distance := in.locals[expr]
	superclass := in.environment.GetAt(distance, "super").(*Class)
	object := in.environment.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(expr.Method, "Undefined property '"+expr.Method.Lexeme+"'.")
	}
	return method.Bind(object), nil
}

func (in *Interpreter) VisitThisExpr(expr *ThisExpr) (any, error) {
	return in.lookUpVariable(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (any, error) {
	right, err := in.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(expr.Operator, "Operand must be a number.")
		}
		return -n, nil
	case Bang:
		return !isTruthy(right), nil
	}
	return nil, newRuntimeError(expr.Operator, "Unknown operator.")
}

func (in *Interpreter) VisitVariableExpr(expr *VariableExpr) (any, error) {
	return in.lookUpVariable(expr.Name, expr)
}

func (in *Interpreter) lookUpVariable(name Token, expr Expr) (any, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

// --- value helpers ---

func numberOperands(op Token, left, right any) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

// isTruthy follows Ruby's rule: everything is truthy except nil and false.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual is structural for the value types the language actually carries
// (numbers, strings, booleans, nil) and by-identity for callables and
// instances, since Lox never defines value equality for objects.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a runtime value the way `print` and the REPL display it.
func stringify(v any) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return s
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
