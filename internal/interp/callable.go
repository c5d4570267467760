package interp

import (
	"github.com/jdpolicano/lox/internal/ast"
)

// Callable is anything `(...)` can invoke: user-defined functions and
// native functions alike.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or anonymous function
// expression, closing over the environment active at the point it
// was declared. It uses the exit-signal return convention this
// package uses instead of a host exception.
type Function struct {
	name    string // empty for anonymous function expressions
	params  []string
	body    []ast.Stmt
	closure *Environment
}

// NewFunction builds a Function value from a declaration's pieces.
func NewFunction(name string, params []string, body []ast.Stmt, closure *Environment) *Function {
	return &Function{name: name, params: params, body: body, closure: closure}
}

func (f *Function) Type() string { return "function" }

// String renders the way every callable prints: functions carry no
// user-visible representation beyond their identity.
func (f *Function) String() string { return "[__object__]" }

func (f *Function) Arity() int { return len(f.params) }

// Call binds args to the function's parameters in a fresh scope
// parented by the closure (not the caller's scope — lexical, not
// dynamic, binding), executes the body, and unwraps a `return` exit
// signal at this boundary. A body that falls off the end without
// hitting `return` yields Nil.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	scope := NewEnvironment(f.closure)
	for i, param := range f.params {
		if i < len(args) {
			scope.Define(param, args[i])
		} else {
			scope.Define(param, Nil)
		}
	}

	result, err := in.executeBlock(f.body, scope)
	if err != nil {
		return nil, err
	}

	if exit, ok := asExit(result); ok && exit.kind == exitReturn {
		return exit.value, nil
	}
	return Nil, nil
}

// clockFn is the single native function: it returns the number of
// seconds since the Unix epoch as a Number.
type clockFn struct {
	now func() float64
}

func (clockFn) Type() string   { return "function" }
func (clockFn) String() string { return "[__object__]" }
func (clockFn) Arity() int     { return 0 }

func (c clockFn) Call(_ *Interpreter, _ []Value) (Value, error) {
	return Number(c.now()), nil
}
