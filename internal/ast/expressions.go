package ast

import "github.com/jdpolicano/lox/internal/token"

// Binary is a left op right expression: arithmetic, comparison, or equality.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Literal wraps the scanner's literal token directly as a value expression.
type Literal struct {
	Value token.Token
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Expr Expr
}

// Call is a function-call expression: callee(args...).
type Call struct {
	Callee Expr
	Paren  token.Token // the closing ")", used to locate call-site errors
	Args   []Expr
}

// Unary is a prefix operator expression: -x or !x.
type Unary struct {
	Op    token.Token
	Right Expr
}

// Variable is a bare identifier reference.
type Variable struct {
	Name token.Token
}

// Assign is a variable assignment expression; compound-assignment
// operators are de-sugared into this form by the parser.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Logical is `and`/`or`, which short-circuit and so cannot be a Binary.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// FunctionExpr is an anonymous function expression: fun(params) { body }.
type FunctionExpr struct {
	Params []token.Token
	Body   []Stmt
}

func (*Binary) exprNode()       {}
func (*Literal) exprNode()      {}
func (*Grouping) exprNode()     {}
func (*Call) exprNode()         {}
func (*Unary) exprNode()        {}
func (*Variable) exprNode()     {}
func (*Assign) exprNode()       {}
func (*Logical) exprNode()      {}
func (*FunctionExpr) exprNode() {}
