// Package parser implements a recursive-descent parser: expression
// precedence climbs through assignment, logic_or, logic_and,
// equality, comparison, term, factor, unary, call, primary; statements
// are parsed by one method per kind; parse errors accumulate with
// panic-mode synchronization rather than stopping at the first one.
package parser

import (
	"github.com/jdpolicano/lox/internal/ast"
	"github.com/jdpolicano/lox/internal/token"
)

var assignmentOps = map[token.Type]bool{
	token.Equal:      true,
	token.PlusEqual:  true,
	token.MinusEqual: true,
	token.StarEqual:  true,
	token.SlashEqual: true,
}

// maxArgs is the threshold past which a call site gets a non-fatal
// warning: 255 or more arguments.
const maxArgs = 255

// Parser turns a token sequence into a list of statements, or a list
// of accumulated parse errors.
type Parser struct {
	tokens   []token.Token
	current  int
	isInLoop bool
	warnings []string
}

// New creates a Parser over a complete token sequence (as produced by
// lexer.ScanTokens, ending in Eof).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Warnings returns the non-fatal warnings collected during parsing
// (currently: call sites with 255 or more arguments).
func (p *Parser) Warnings() []string {
	return p.warnings
}

// Parse parses the entire token stream, returning either the full
// statement list or every accumulated parse error — never both.
func Parse(tokens []token.Token) ([]ast.Stmt, []error) {
	p := New(tokens)
	return p.ParseProgram()
}

// ParseProgram is the entry point: program := declaration* EOF.
func (p *Parser) ParseProgram() ([]ast.Stmt, []error) {
	var stmts []ast.Stmt
	var errs []error

	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			errs = append(errs, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return stmts, nil
}

// declaration := varDecl | funDecl | statement
func (p *Parser) declaration() (ast.Stmt, error) {
	if p.matchType(token.Var) {
		return p.varDeclaration()
	}
	if p.matchType(token.Fun) {
		return p.functionDeclaration("function")
	}
	return p.statement()
}

// varDecl := "var" IDENT ("=" expression)? ";"
func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.expect(token.Identifier, "expected a variable name")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.matchType(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name, Init: init}, nil
}

// funDecl := "fun" IDENT "(" params? ")" block
func (p *Parser) functionDeclaration(kind string) (ast.Stmt, error) {
	name, err := p.expect(token.Identifier, "expected a "+kind+" name")
	if err != nil {
		return nil, err
	}

	params, err := p.paramList(kind)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LeftBrace, "expected '{' before "+kind+" body"); err != nil {
		return nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, err
	}

	return &ast.Function{Name: name, Params: params, Body: body}, nil
}

// params := IDENT ("," IDENT)*
func (p *Parser) paramList(kind string) ([]token.Token, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after "+kind+" name"); err != nil {
		return nil, err
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			param, err := p.expect(token.Identifier, "expected a parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.matchType(token.Comma) {
				break
			}
		}
	}

	if _, err := p.expect(token.RightParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

// statement := printStmt | block | ifStmt | whileStmt | forStmt
//            | breakStmt | returnStmt | exprStmt
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.matchType(token.Print):
		return p.printStatement()
	case p.matchType(token.LeftBrace):
		stmts, err := p.blockStatements()
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: stmts}, nil
	case p.matchType(token.If):
		return p.ifStatement()
	case p.check(token.While):
		return p.loopStatement()
	case p.check(token.For):
		return p.loopStatement()
	case p.check(token.Break):
		return p.breakStatement()
	case p.check(token.Return):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &ast.Print{Expr: expr}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.Expression{Expr: expr}, nil
}

// block := "{" declaration* "}"
func (p *Parser) blockStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RightBrace, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ifStmt := "if" "(" expression ")" statement ("else" statement)?
func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.matchType(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Cond: cond, Then: then, Else: elseBranch}, nil
}

// loopStatement dispatches to while/for, setting isInLoop for the
// duration of the body so `break` is legal inside it — saving and
// restoring the previous value (rather than toggling) so a nested
// loop doesn't disable `break` legality for an outer one.
func (p *Parser) loopStatement() (ast.Stmt, error) {
	wasInLoop := p.isInLoop
	p.isInLoop = true
	defer func() { p.isInLoop = wasInLoop }()

	if p.matchType(token.For) {
		return p.forStatement()
	}
	p.advance() // consume "while"
	return p.whileStatement()
}

// whileStmt := "while" "(" expression ")" statement
func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

// forStmt := "for" "(" (varDecl | exprStmt | ";")
//                     expression? ";"
//                     expression? ")" statement
//
// De-sugared into:
//
//	Block [ init?, While { cond: cond-or-true, body: Block [ body, inc? ] } ]
//
// with the increment appended into an existing Block body rather than
// wrapping it in a fresh one. Without an initializer the While is
// returned bare (no outer Block), and without an increment the body is
// left as written.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch {
	case p.matchType(token.Semicolon):
		init = nil
	case p.matchType(token.Var):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RightParen, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return desugarForLoop(init, cond, increment, body), nil
}

func desugarForLoop(init ast.Stmt, cond ast.Expr, increment ast.Expr, body ast.Stmt) ast.Stmt {
	if increment != nil {
		incStmt := &ast.Expression{Expr: increment}
		if block, ok := body.(*ast.Block); ok {
			block.Stmts = append(block.Stmts, incStmt)
		} else {
			body = &ast.Block{Stmts: []ast.Stmt{body, incStmt}}
		}
	}

	if cond == nil {
		cond = &ast.Literal{Value: token.Synthetic(token.True, token.BooleanLiteral(true))}
	}

	loop := ast.Stmt(&ast.While{Cond: cond, Body: body})

	if init == nil {
		return loop
	}
	return &ast.Block{Stmts: []ast.Stmt{init, loop}}
}

// breakStmt := "break" ";"
func (p *Parser) breakStatement() (ast.Stmt, error) {
	keyword := p.advance()
	if !p.isInLoop {
		return nil, &Error{
			Kind:   UnexpectedToken,
			Msg:    "\"break\" can only occur inside a loop",
			Lexeme: keyword.LexemeOrEmpty(),
			Coord:  keyword.Coord,
		}
	}
	if _, err := p.expect(token.Semicolon, "expected ';' after 'break'"); err != nil {
		return nil, err
	}
	return &ast.Break{Keyword: keyword}, nil
}

// returnStmt := "return" expression? ";"
func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.advance()

	var value ast.Expr
	if !p.check(token.Semicolon) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = v
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ast.Return{Keyword: keyword, Value: value}, nil
}

// expression := assignment
func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment := logic_or ( ("="|"+="|"-="|"*="|"/=") assignment )?
//
// Compound operators are de-sugared here: `x op= e` becomes
// `Assign{x, Binary{Variable{x}, op, e}}` with a synthetic op token.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if op, ok := p.peekAssignmentOp(); ok {
		opTok := p.advance()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		variable, ok := expr.(*ast.Variable)
		if !ok {
			return nil, &Error{
				Kind:   InvalidAssignmentTarget,
				Lexeme: opTok.LexemeOrEmpty(),
				Coord:  opTok.Coord,
			}
		}

		if op == token.Equal {
			return &ast.Assign{Name: variable.Name, Value: value}, nil
		}
		return desugarCompoundAssign(variable.Name, op, value)
	}

	return expr, nil
}

func (p *Parser) peekAssignmentOp() (token.Type, bool) {
	tok, ok := p.peek()
	if !ok || !assignmentOps[tok.Type] {
		return 0, false
	}
	return tok.Type, true
}

func desugarCompoundAssign(name token.Token, op token.Type, value ast.Expr) (ast.Expr, error) {
	var binOp token.Type
	switch op {
	case token.PlusEqual:
		binOp = token.Plus
	case token.MinusEqual:
		binOp = token.Minus
	case token.StarEqual:
		binOp = token.Star
	case token.SlashEqual:
		binOp = token.Slash
	default:
		return nil, &Error{Kind: InvalidAssignmentTarget, Lexeme: name.LexemeOrEmpty(), Coord: name.Coord}
	}

	return &ast.Assign{
		Name: name,
		Value: &ast.Binary{
			Left:  &ast.Variable{Name: name},
			Op:    token.Synthetic(binOp, token.NilLiteral),
			Right: value,
		},
	}, nil
}

// logic_or := logic_and ("or" logic_and)*
func (p *Parser) logicOr() (ast.Expr, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.Or) {
		op := p.advance()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// logic_and := equality ("and" equality)*
func (p *Parser) logicAnd() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.check(token.And) {
		op := p.advance()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// equality := comparison (("!="|"==") comparison)*
func (p *Parser) equality() (ast.Expr, error) {
	return p.leftAssocBinary(p.comparison, token.BangEqual, token.EqualEqual)
}

// comparison := term (("<"|"<="|">"|">=") term)*
func (p *Parser) comparison() (ast.Expr, error) {
	return p.leftAssocBinary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

// term := factor (("+"|"-") factor)*
func (p *Parser) term() (ast.Expr, error) {
	return p.leftAssocBinary(p.factor, token.Minus, token.Plus)
}

// factor := unary (("*"|"/") unary)*
func (p *Parser) factor() (ast.Expr, error) {
	return p.leftAssocBinary(p.unary, token.Star, token.Slash)
}

func (p *Parser) leftAssocBinary(operand func() (ast.Expr, error), types ...token.Type) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.checkAny(types...) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// unary := ("!"|"-") unary | call
func (p *Parser) unary() (ast.Expr, error) {
	if p.checkAny(token.Bang, token.Minus) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Right: right}, nil
	}
	return p.call()
}

// call := primary ("(" args? ")")*
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.matchType(token.LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// args := expression ("," expression)*
func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.matchType(token.Comma) {
				break
			}
		}
	}

	if len(args) >= maxArgs {
		p.warnings = append(p.warnings, "call site has 255 or more arguments")
	}

	paren, err := p.expect(token.RightParen, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}

	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

// primary := NUMBER|STRING|true|false|nil|IDENT
//          | "(" expression ")"
//          | "fun" "(" params? ")" block
func (p *Parser) primary() (ast.Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfFile, Msg: "while parsing an expression"}
	}

	switch tok.Type {
	case token.Number, token.String, token.True, token.False, token.Nil:
		p.advance()
		return &ast.Literal{Value: tok}, nil
	case token.Identifier:
		p.advance()
		return &ast.Variable{Name: tok}, nil
	case token.LeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expr: expr}, nil
	case token.Fun:
		p.advance()
		return p.functionExpression()
	default:
		return nil, &Error{
			Kind:   UnexpectedToken,
			Msg:    "while parsing an expression",
			Lexeme: tok.LexemeOrEmpty(),
			Coord:  tok.Coord,
		}
	}
}

// the anonymous-function branch of primary: "fun" "(" params? ")" block
func (p *Parser) functionExpression() (ast.Expr, error) {
	params, err := p.paramList("function")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftBrace, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpr{Params: params, Body: body}, nil
}

// synchronize discards tokens until it reaches a ';' or the next
// declaration-starting keyword, so parsing can resume and collect
// further errors.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		tok := p.advance()
		if tok.Type == token.Semicolon {
			return
		}
		if next, ok := p.peek(); ok {
			switch next.Type {
			case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
				return
			}
		}
	}
}

// --- token stream helpers ---

func (p *Parser) peek() (token.Token, bool) {
	if p.current >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.current], true
}

func (p *Parser) isAtEnd() bool {
	tok, ok := p.peek()
	return !ok || tok.Type == token.Eof
}

func (p *Parser) advance() token.Token {
	tok, ok := p.peek()
	if !ok {
		return token.Token{Type: token.Eof}
	}
	p.current++
	return tok
}

func (p *Parser) check(typ token.Type) bool {
	tok, ok := p.peek()
	return ok && tok.Type == typ
}

func (p *Parser) checkAny(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *Parser) matchType(typ token.Type) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(typ token.Type, msg string) (token.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return token.Token{}, &Error{Kind: UnexpectedEndOfFile, Msg: msg}
	}
	if tok.Type != typ {
		return token.Token{}, &Error{
			Kind:     TokenAssertionFailure,
			Msg:      msg,
			Expected: typ,
			Found:    tok.Type,
			Coord:    tok.Coord,
		}
	}
	p.advance()
	return tok, nil
}
