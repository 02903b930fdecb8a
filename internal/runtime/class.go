package runtime

// Class is a callable class value: name, its own method map, and an
// optional superclass link.
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

func NewClass(name string, methods map[string]*Function, superclass *Class) *Class {
	return &Class{Name: name, Methods: methods, Superclass: superclass}
}

func (*Class) Type() string { return "class" }
func (*Class) Truthy() bool { return true }

// String is just the class's own name — unlike Function, a Class has no
// bracketed wrapper.
func (c *Class) String() string { return c.Name }

// FindMethod looks in this class's own method map, then recurses into the
// superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init`, declared on this class or inherited from a
// superclass, or 0 if there is none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, then binds and invokes `init` if the
// class declares or inherits one.
func (c *Class) Call(interp Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		bound := init.Bind(instance)
		if _, err := bound.Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
