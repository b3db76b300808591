package lox

// Class is a runtime class object: a name, an optional superclass and a
// flat method table. Classes are themselves Callable — calling one
// constructs an Instance and, if an `init` method exists, runs it.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass returns a class named name with the given method table,
// inheriting from superclass (nil for a root class).
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name in this class's own method table, then walks the
// superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return "<class " + c.Name + ">" }

// Instance is a live object: a back-reference to its class plus a mutable
// field table. Fields shadow methods of the same name.
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance returns a fresh, field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

// Get reads a property: first the instance's own fields, then a method
// bound to this instance. An unknown name is a runtime error.
func (i *Instance) Get(name Token) (any, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if method := i.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '"+name.Lexeme+"'.")
}

// Set unconditionally writes a field, creating it if it doesn't exist.
func (i *Instance) Set(name Token, value any) {
	i.fields[name.Lexeme] = value
}

func (i *Instance) String() string { return "<instance of " + i.class.Name + ">" }
