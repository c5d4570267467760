package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/jdpolicano/lox/internal/ast"
	"github.com/jdpolicano/lox/internal/token"
)

// Interpreter walks a statement list, evaluating it for its side
// effects (print, variable mutation). It holds two environment
// pointers — globals (where native functions like clock live) and
// environment (the currently active scope) — threaded through
// evaluation as execution enters and leaves nested scopes.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	out         io.Writer
}

// New builds an Interpreter with a fresh global scope seeded with the
// native clock() function, printing to stdout.
func New() *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", NewClock())
	return &Interpreter{globals: globals, environment: globals, out: os.Stdout}
}

// SetOutput redirects where `print` writes, for tests that capture output.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.out = w
}

// Interpret executes a full program's statement list in the global
// scope. Any `break` or `return` that escapes all the way to the top
// level is simply discarded rather than reported as an error.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	_, err := in.executeBlock(stmts, in.globals)
	return err
}

// executeBlock runs stmts in scope, returning as soon as one yields
// an exit signal (break or return) or an error — subsequent
// statements in the block never run, matching ordinary control flow.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, scope *Environment) (Value, error) {
	previous := in.environment
	in.environment = scope
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		result, err := in.execute(stmt)
		if err != nil {
			return nil, err
		}
		if _, ok := asExit(result); ok {
			return result, nil
		}
	}
	return Nil, nil
}

func (in *Interpreter) execute(stmt ast.Stmt) (Value, error) {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := in.eval(s.Expr)
		return Nil, err

	case *ast.Print:
		v, err := in.eval(s.Expr)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(in.out, v.String())
		return Nil, nil

	case *ast.Var:
		var v Value = Nil
		if s.Init != nil {
			var err error
			v, err = in.eval(s.Init)
			if err != nil {
				return nil, err
			}
		}
		in.environment.Define(s.Name.LexemeOrEmpty(), v)
		return Nil, nil

	case *ast.Block:
		return in.executeBlock(s.Stmts, NewEnvironment(in.environment))

	case *ast.If:
		cond, err := in.eval(s.Cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return Nil, nil

	case *ast.While:
		return in.executeWhile(s)

	case *ast.Break:
		return exitSignal{kind: exitBreak, value: Nil}, nil

	case *ast.Function:
		fn := NewFunction(s.Name.LexemeOrEmpty(), paramNames(s.Params), s.Body, in.environment)
		in.environment.Define(s.Name.LexemeOrEmpty(), fn)
		return Nil, nil

	case *ast.Return:
		var v Value = Nil
		if s.Value != nil {
			var err error
			v, err = in.eval(s.Value)
			if err != nil {
				return nil, err
			}
		}
		return exitSignal{kind: exitReturn, value: v}, nil

	default:
		return nil, fmt.Errorf("interp: unhandled statement %T", stmt)
	}
}

// executeWhile checks the loop body's result for an exitSignal before
// ever testing its truthiness: a `break` is absorbed here (the loop
// simply ends), but a `return` keeps its exitSignal shape and
// propagates to the enclosing function call rather than being
// collapsed by a truthiness check.
func (in *Interpreter) executeWhile(s *ast.While) (Value, error) {
	for {
		cond, err := in.eval(s.Cond)
		if err != nil {
			return nil, err
		}
		if !IsTruthy(cond) {
			return Nil, nil
		}

		result, err := in.execute(s.Body)
		if err != nil {
			return nil, err
		}

		if exit, ok := asExit(result); ok {
			if exit.kind == exitBreak {
				return Nil, nil
			}
			return result, nil // exitReturn: propagate unchanged
		}
	}
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.LexemeOrEmpty()
	}
	return names
}

func (in *Interpreter) eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value.Literal), nil

	case *ast.Grouping:
		return in.eval(e.Expr)

	case *ast.Variable:
		name := e.Name.LexemeOrEmpty()
		v, ok := in.environment.Get(name)
		if !ok {
			return nil, &RuntimeError{Kind: UndefinedVariable, Name: name, Coord: e.Name.Coord}
		}
		return v, nil

	case *ast.Assign:
		v, err := in.eval(e.Value)
		if err != nil {
			return nil, err
		}
		name := e.Name.LexemeOrEmpty()
		if !in.environment.Assign(name, v) {
			return nil, &RuntimeError{Kind: UndefinedVariable, Name: name, Coord: e.Name.Coord}
		}
		return v, nil

	case *ast.Logical:
		left, err := in.eval(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op.Type == token.Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else {
			if !IsTruthy(left) {
				return left, nil
			}
		}
		return in.eval(e.Right)

	case *ast.Unary:
		right, err := in.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return in.evalUnary(e.Op, right)

	case *ast.Binary:
		left, err := in.eval(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return in.evalBinary(e.Op, left, right)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.FunctionExpr:
		return NewFunction("", paramNames(e.Params), e.Body, in.environment), nil

	default:
		return nil, fmt.Errorf("interp: unhandled expression %T", expr)
	}
}

func literalValue(lit token.Literal) Value {
	switch lit.Kind {
	case token.LiteralNumber:
		return Number(lit.Num)
	case token.LiteralString:
		return String(lit.Str)
	case token.LiteralBoolean:
		return Boolean(lit.Bool)
	default:
		return Nil
	}
}

func (in *Interpreter) evalUnary(op token.Token, right Value) (Value, error) {
	switch op.Type {
	case token.Minus:
		n, ok := right.(Number)
		if !ok {
			return nil, &RuntimeError{Kind: InvalidUnaryOp, Msg: "-", Coord: op.Coord}
		}
		return -n, nil
	case token.Bang:
		return Boolean(!IsTruthy(right)), nil
	default:
		return nil, &RuntimeError{Kind: InvalidUnaryOp, Msg: op.Type.String(), Coord: op.Coord}
	}
}

func (in *Interpreter) evalBinary(op token.Token, left, right Value) (Value, error) {
	switch op.Type {
	case token.Plus:
		if _, ok := left.(String); ok {
			return String(left.String() + right.String()), nil
		}
		if _, ok := right.(String); ok {
			return String(left.String() + right.String()), nil
		}
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		return nil, &RuntimeError{Kind: InvalidMathOp, Msg: "+", Coord: op.Coord}

	case token.Minus, token.Star, token.Slash:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, &RuntimeError{Kind: InvalidMathOp, Msg: op.Type.String(), Coord: op.Coord}
		}
		switch op.Type {
		case token.Minus:
			return ln - rn, nil
		case token.Star:
			return ln * rn, nil
		default:
			return ln / rn, nil
		}

	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, &RuntimeError{Kind: InvalidComparisonOp, Msg: op.Type.String(), Coord: op.Coord}
		}
		switch op.Type {
		case token.Greater:
			return Boolean(ln > rn), nil
		case token.GreaterEqual:
			return Boolean(ln >= rn), nil
		case token.Less:
			return Boolean(ln < rn), nil
		default:
			return Boolean(ln <= rn), nil
		}

	case token.EqualEqual:
		return Boolean(ValuesEqual(left, right)), nil
	case token.BangEqual:
		return Boolean(!ValuesEqual(left, right)), nil

	default:
		return nil, &RuntimeError{Kind: InvalidMathOp, Msg: op.Type.String(), Coord: op.Coord}
	}
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Kind: Uncallable, Coord: e.Paren.Coord}
	}
	return fn.Call(in, args)
}
