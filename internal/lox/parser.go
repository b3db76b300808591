package lox

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

const maxArgs = 255

// Parser is a recursive-descent parser with panic-mode error recovery: a
// failed production throws the internal parseError sentinel, which is
// caught at the declaration boundary and recovered from via synchronize, so
// a single run can report every syntax error in the source instead of just
// the first one.
type Parser struct {
	tokens    []Token
	current   int
	loopDepth int
	errs      *multierror.Error
}

// NewParser returns a Parser over the given token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream and returns the resulting statement
// list together with an aggregate of every parse error encountered. Even on
// error the returned slice reflects every declaration that *did* parse; the
// caller must still check the error and skip resolution/evaluation if it is
// non-nil.
func (p *Parser) Parse() ([]Stmt, error) {
	var statements []Stmt
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errs.ErrorOrNil()
}

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(Class):
		return p.classDeclaration()
	case p.match(Fun):
		return p.function("function")
	case p.match(Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() Stmt {
	name := p.consume(Identifier, "Expect class name.")

	var superclass *VariableExpr
	if p.match(Less) {
		p.consume(Identifier, "Expect superclass name.")
		superclass = &VariableExpr{Name: p.previous()}
	}

	p.consume(LeftBrace, "Expect '{' before class body.")
	var methods []*FunctionStmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(RightBrace, "Expect '}' after class body.")

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(Identifier, fmt.Sprintf("Expect %s name.", kind))
	p.consume(LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind))
	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportAtCurrent(fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(Identifier, "Expect parameter name."))
			if !p.match(Comma) {
				break
			}
		}
	}
	p.consume(RightParen, "Expect ')' after parameters.")
	p.consume(LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind))
	// a function body is outside any loop that encloses the declaration
	enclosingLoopDepth := p.loopDepth
	p.loopDepth = 0
	body := p.block()
	p.loopDepth = enclosingLoopDepth
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() Stmt {
	name := p.consume(Identifier, "Expect variable name.")
	var initializer Expr
	if p.match(Equal) {
		initializer = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after variable declaration.")
	return &VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(Print):
		return p.printStatement()
	case p.match(Return):
		return p.returnStatement()
	case p.match(LeftBrace):
		return &BlockStmt{Statements: p.block()}
	case p.match(If):
		return p.ifStatement()
	case p.match(While):
		return p.whileStatement()
	case p.match(For):
		return p.forStatement()
	case p.match(Break):
		return p.breakStatement()
	case p.match(Continue):
		return p.continueStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() Stmt {
	value := p.expression()
	p.consume(Semicolon, "Expect ';' after value.")
	return &PrintStmt{Expression: value}
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(Semicolon) {
		value = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after return value.")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStatement() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.reportAtPrevious("Can't use 'break' outside of a loop.")
	}
	p.consume(Semicolon, "Expect ';' after 'break'.")
	return &BreakStmt{Keyword: keyword}
}

func (p *Parser) continueStatement() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.reportAtPrevious("Can't use 'continue' outside of a loop.")
	}
	p.consume(Semicolon, "Expect ';' after 'continue'.")
	return &ContinueStmt{Keyword: keyword}
}

func (p *Parser) block() []Stmt {
	var statements []Stmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(RightBrace, "Expect '}' after block.")
	return statements
}

func (p *Parser) ifStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(Else) {
		elseBranch = p.statement()
	}
	return &IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(RightParen, "Expect ')' after condition.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return &WhileStmt{Condition: condition, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` into a WhileStmt whose
// Increment field the interpreter runs on every iteration, preserving
// `continue` semantics (see WhileStmt's doc comment).
func (p *Parser) forStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'for'.")

	var initializer Stmt
	switch {
	case p.match(Semicolon):
		initializer = nil
	case p.match(Var):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(Semicolon) {
		condition = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(RightParen) {
		increment = p.expression()
	}
	p.consume(RightParen, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if condition == nil {
		condition = &LiteralExpr{Value: true}
	}
	loop := Stmt(&WhileStmt{Condition: condition, Body: body, Increment: increment})

	if initializer != nil {
		loop = &BlockStmt{Statements: []Stmt{initializer, loop}}
	}
	return loop
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(Semicolon, "Expect ';' after expression.")
	return &ExpressionStmt{Expression: expr}
}

func (p *Parser) expression() Expr {
	return p.assignment()
}

func (p *Parser) assignment() Expr {
	expr := p.logicOr()

	if p.match(Equal) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{Name: e.Name, Value: value}
		case *GetExpr:
			return &SetExpr{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.reportAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) logicOr() Expr {
	expr := p.logicAnd()
	for p.match(Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() Expr {
	expr := p.equality()
	for p.match(And) {
		op := p.previous()
		right := p.equality()
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(BangEqual, EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(Minus, Plus) {
		op := p.previous()
		right := p.factor()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(Slash, Star) {
		op := p.previous()
		right := p.unary()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(Bang, Minus) {
		op := p.previous()
		right := p.unary()
		return &UnaryExpr{Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(LeftParen):
			expr = p.finishCall(expr)
		case p.match(Dot):
			name := p.consume(Identifier, "Expect property name after '.'.")
			expr = &GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(RightParen) {
		for {
			if len(args) >= maxArgs {
				p.reportAtCurrent(fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(Comma) {
				break
			}
		}
	}
	paren := p.consume(RightParen, "Expect ')' after arguments.")
	return &CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(False):
		return &LiteralExpr{Value: false}
	case p.match(True):
		return &LiteralExpr{Value: true}
	case p.match(Nil):
		return &LiteralExpr{Value: nil}
	case p.match(Number, String):
		return &LiteralExpr{Value: p.previous().Literal}
	case p.match(Super):
		keyword := p.previous()
		p.consume(Dot, "Expect '.' after 'super'.")
		method := p.consume(Identifier, "Expect superclass method name.")
		return &SuperExpr{Keyword: keyword, Method: method}
	case p.match(This):
		return &ThisExpr{Keyword: p.previous()}
	case p.match(Identifier):
		return &VariableExpr{Name: p.previous()}
	case p.match(LeftParen):
		expr := p.expression()
		p.consume(RightParen, "Expect ')' after expression.")
		return &GroupingExpr{Expression: expr}
	}

	panic(p.newError(p.peek(), "Expect expression."))
}

// --- token stream primitives ---

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t TokenType, message string) Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.newError(p.peek(), message))
}

// newError reports a diagnostic and returns the sentinel to panic with. It
// never stops parsing itself; the caller decides whether to unwind.
func (p *Parser) newError(tok Token, message string) parseError {
	p.errs = multierror.Append(p.errs, newTokenDiagnostic(tok, message))
	return parseError{}
}

// reportAt, reportAtCurrent and reportAtPrevious record a diagnostic without
// throwing: used for recoverable errors (too many params/args, break/continue
// outside a loop, invalid assignment target) where parsing should continue.
func (p *Parser) reportAt(tok Token, message string) {
	p.errs = multierror.Append(p.errs, newTokenDiagnostic(tok, message))
}

func (p *Parser) reportAtCurrent(message string) {
	p.reportAt(p.peek(), message)
}

func (p *Parser) reportAtPrevious(message string) {
	p.reportAt(p.previous(), message)
}

// synchronize discards tokens until it reaches a probable statement
// boundary, so a single parse error doesn't cascade into a wall of
// follow-on errors.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		switch p.peek().Type {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}
		p.advance()
	}
}
