// Package ast defines the Expr and Stmt node families, modeled as Go
// interfaces with marker methods rather than a visitor.Accept
// dispatch — the evaluator type-switches over these interfaces
// directly.
package ast

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}
