package lox

// Function wraps a FunctionStmt AST node together with the environment in
// which it was declared, so the function body can see variables from its
// defining scope even after that scope has otherwise gone out of lexical
// reach (a proper closure).
type Function struct {
	declaration   *FunctionStmt
	closure       *Environment
	isInitializer bool
}

// NewFunction returns a closure over declaration, rooted at closure.
// isInitializer marks a class's init method: its Call returns `this`
// regardless of what the body returns (including a bare `return;`).
func NewFunction(declaration *FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Bind produces a new Function identical to f but closed over an
// environment that additionally defines `this` as instance, used when a
// method is looked up off a specific instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

func (f *Function) Call(in *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
