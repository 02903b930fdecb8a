package interp

import (
	"fmt"
	"math"

	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/lexer"
	"github.com/cwbudde/quill/internal/runtime"
)

func (e *Evaluator) eval(expr ast.Expression) (runtime.Value, error) {
	switch ex := expr.(type) {
	case *ast.Literal:
		return literalValue(ex.Value), nil
	case *ast.ArrayLit:
		return e.evalArrayLit(ex)
	case *ast.Variable:
		return e.evalVariable(ex)
	case *ast.Grouping:
		return e.eval(ex.Expr)
	case *ast.Unary:
		return e.evalUnary(ex)
	case *ast.Binary:
		return e.evalBinary(ex)
	case *ast.Logical:
		return e.evalLogical(ex)
	case *ast.Assign:
		return e.evalAssign(ex)
	case *ast.Call:
		return e.evalCall(ex)
	case *ast.Get:
		return e.evalGet(ex)
	case *ast.Set:
		return e.evalSet(ex)
	case *ast.GetIndexed:
		return e.evalGetIndexed(ex)
	case *ast.SetIndexed:
		return e.evalSetIndexed(ex)
	case *ast.This:
		return e.evalThis(ex)
	case *ast.Super:
		return e.evalSuper(ex)
	}
	return runtime.Nil{}, nil
}

func literalValue(v any) runtime.Value {
	switch val := v.(type) {
	case float64:
		return runtime.Number(val)
	case string:
		return runtime.String(val)
	case bool:
		return runtime.Bool(val)
	default:
		return runtime.Nil{}
	}
}

func (e *Evaluator) evalArrayLit(a *ast.ArrayLit) (runtime.Value, error) {
	elems := make([]runtime.Value, len(a.Elements))
	for i, el := range a.Elements {
		v, err := e.eval(el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return runtime.NewArray(elems), nil
}

// evalVariable looks the name up at its resolved depth, or in globals if
// the resolver left it unresolved.
func (e *Evaluator) evalVariable(v *ast.Variable) (runtime.Value, error) {
	if depth, ok := e.locals[v]; ok {
		if val, ok := e.env.Ancestor(depth).Get(v.Name.Lexeme); ok {
			return val, nil
		}
	} else if val, ok := e.globals.Get(v.Name.Lexeme); ok {
		return val, nil
	}
	return nil, e.runtimeErr(v.Name, fmt.Sprintf("Undefined variable '%s'.", v.Name.Lexeme))
}

func (e *Evaluator) evalUnary(u *ast.Unary) (runtime.Value, error) {
	right, err := e.eval(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Op.Type {
	case lexer.Bang:
		return runtime.Bool(!right.Truthy()), nil
	case lexer.Minus:
		n, ok := right.(runtime.Number)
		if !ok {
			return nil, e.runtimeErr(u.Op, "Operand must be a number.")
		}
		return -n, nil
	}
	return runtime.Nil{}, nil
}

func (e *Evaluator) evalLogical(l *ast.Logical) (runtime.Value, error) {
	left, err := e.eval(l.Left)
	if err != nil {
		return nil, err
	}
	switch l.Op.Type {
	case lexer.Or, lexer.PipePipe:
		if left.Truthy() {
			return runtime.Bool(true), nil
		}
	case lexer.And, lexer.AmpAmp:
		if !left.Truthy() {
			return runtime.Bool(false), nil
		}
	}
	right, err := e.eval(l.Right)
	if err != nil {
		return nil, err
	}
	return runtime.Bool(right.Truthy()), nil
}

func (e *Evaluator) evalBinary(b *ast.Binary) (runtime.Value, error) {
	left, err := e.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op.Type {
	case lexer.Plus:
		return e.evalPlus(b.Op, left, right)
	case lexer.Minus:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case lexer.Star:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case lexer.Slash:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, e.runtimeErr(b.Op, "Division by zero.")
		}
		return ln / rn, nil
	case lexer.Percent:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Number(math.Mod(float64(ln), float64(rn))), nil
	case lexer.Greater:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln > rn), nil
	case lexer.GreaterEqual:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln >= rn), nil
	case lexer.Less:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln < rn), nil
	case lexer.LessEqual:
		ln, rn, err := e.bothNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln <= rn), nil
	case lexer.EqualEqual:
		return runtime.Bool(valuesEqual(left, right)), nil
	case lexer.BangEqual:
		return runtime.Bool(!valuesEqual(left, right)), nil
	}
	return runtime.Nil{}, nil
}

func (e *Evaluator) evalPlus(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	if ln, ok := left.(runtime.Number); ok {
		if rn, ok := right.(runtime.Number); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(runtime.String); ok {
		if rs, ok := right.(runtime.String); ok {
			return ls + rs, nil
		}
	}
	if la, ok := left.(*runtime.Array); ok {
		if ra, ok := right.(*runtime.Array); ok {
			merged := make([]runtime.Value, 0, len(la.Elements)+len(ra.Elements))
			merged = append(merged, la.Elements...)
			merged = append(merged, ra.Elements...)
			return runtime.NewArray(merged), nil
		}
	}
	return nil, e.runtimeErr(op, "Operands must both be numbers, strings or arrays.")
}

func (e *Evaluator) bothNumbers(op lexer.Token, left, right runtime.Value) (runtime.Number, runtime.Number, error) {
	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if !lok || !rok {
		return 0, 0, e.runtimeErr(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

// valuesEqual compares Number/String/Bool by value, Nil equals only Nil,
// and everything else (Array/Callable/Instance, all represented by
// pointer types) by reference identity.
func valuesEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.Nil:
		_, ok := b.(runtime.Nil)
		return ok
	case runtime.Number:
		bv, ok := b.(runtime.Number)
		return ok && av == bv
	case runtime.String:
		bv, ok := b.(runtime.String)
		return ok && av == bv
	case runtime.Bool:
		bv, ok := b.(runtime.Bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// evalAssign mirrors variable lookup: a name the resolver recorded a depth
// for (0 included) is assigned in the scope at that depth, and an
// unresolved name is assigned in globals.
func (e *Evaluator) evalAssign(a *ast.Assign) (runtime.Value, error) {
	value, err := e.eval(a.Value)
	if err != nil {
		return nil, err
	}

	if depth, ok := e.locals[a]; ok {
		if e.env.Ancestor(depth).Assign(a.Name.Lexeme, value) {
			return value, nil
		}
	} else if e.globals.Assign(a.Name.Lexeme, value) {
		return value, nil
	}
	return nil, e.runtimeErr(a.Name, fmt.Sprintf("Undefined variable '%s'.", a.Name.Lexeme))
}

func (e *Evaluator) evalCall(c *ast.Call) (runtime.Value, error) {
	callee, err := e.eval(c.Callee)
	if err != nil {
		return nil, err
	}
	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, e.runtimeErr(c.Paren, "Can only call functions and classes.")
	}

	args := make([]runtime.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if len(args) != callable.Arity() {
		return nil, e.runtimeErr(c.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	if err := e.calls.Push(calleeLabel(callee)); err != nil {
		return nil, e.runtimeErr(c.Paren, err.Error())
	}
	defer e.calls.Pop()

	// A callee's body starts with no loops in scope from its own
	// perspective, even if the call site is itself inside a loop —
	// break/continue must not cross a function-call boundary.
	savedLoopDepth := e.loopDepth
	e.loopDepth = 0
	defer func() { e.loopDepth = savedLoopDepth }()

	result, err := callable.Call(e, args)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func calleeLabel(v runtime.Value) string {
	switch t := v.(type) {
	case *runtime.Function:
		return t.Decl.Name.Lexeme
	case *runtime.Class:
		return t.Name
	default:
		return "?"
	}
}

func (e *Evaluator) evalGet(g *ast.Get) (runtime.Value, error) {
	obj, err := e.eval(g.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, e.runtimeErr(g.Name, "Only instances have properties.")
	}
	v, ok := inst.Get(g.Name.Lexeme)
	if !ok {
		return nil, e.runtimeErr(g.Name, fmt.Sprintf("Undefined property '%s'.", g.Name.Lexeme))
	}
	return v, nil
}

func (e *Evaluator) evalSet(s *ast.Set) (runtime.Value, error) {
	obj, err := e.eval(s.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, e.runtimeErr(s.Name, "Only instances have fields.")
	}
	v, err := e.eval(s.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(s.Name.Lexeme, v)
	return v, nil
}

// indexOf validates and converts an Index expression's Value: it must be
// a non-negative integer Number.
func (e *Evaluator) indexOf(tok lexer.Token, idxVal runtime.Value) (int, error) {
	n, ok := idxVal.(runtime.Number)
	if !ok || float64(n) != math.Trunc(float64(n)) || n < 0 {
		return 0, e.runtimeErr(tok, "Index must be a non-negative integer.")
	}
	return int(n), nil
}

func (e *Evaluator) evalGetIndexed(g *ast.GetIndexed) (runtime.Value, error) {
	obj, err := e.eval(g.Object)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.eval(g.Index)
	if err != nil {
		return nil, err
	}
	idx, err := e.indexOf(g.Bracket, idxVal)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *runtime.Array:
		if idx >= len(o.Elements) {
			return nil, e.runtimeErr(g.Bracket, "Index out of bounds.")
		}
		return o.Elements[idx], nil
	case runtime.String:
		if idx >= len(o) {
			return nil, e.runtimeErr(g.Bracket, "Index out of bounds.")
		}
		return runtime.String(o[idx]), nil
	default:
		return nil, e.runtimeErr(g.Bracket, "Only arrays and strings can be indexed.")
	}
}

func (e *Evaluator) evalSetIndexed(s *ast.SetIndexed) (runtime.Value, error) {
	obj, err := e.eval(s.Object)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.eval(s.Index)
	if err != nil {
		return nil, err
	}
	idx, err := e.indexOf(s.Bracket, idxVal)
	if err != nil {
		return nil, err
	}
	val, err := e.eval(s.Value)
	if err != nil {
		return nil, err
	}

	arr, ok := obj.(*runtime.Array)
	if !ok {
		return nil, e.runtimeErr(s.Bracket, "Only arrays can be indexed.")
	}
	if idx >= len(arr.Elements) {
		return nil, e.runtimeErr(s.Bracket, "Index out of bounds.")
	}
	arr.Elements[idx] = val
	return val, nil
}

func (e *Evaluator) evalThis(t *ast.This) (runtime.Value, error) {
	if depth, ok := e.locals[t]; ok {
		if val, ok := e.env.Ancestor(depth).Get("this"); ok {
			return val, nil
		}
	}
	return nil, e.runtimeErr(t.Keyword, "Cannot use 'this' outside of a class.")
}

// evalSuper fetches `super` at its resolved depth,
// `this` at depth-1 (the scope `super` and `this` were pushed into are
// adjacent, per execClass/resolveClass), and dispatch to the superclass's
// method bound to `this`.
func (e *Evaluator) evalSuper(s *ast.Super) (runtime.Value, error) {
	depth, ok := e.locals[s]
	if !ok {
		return nil, e.runtimeErr(s.Keyword, "Cannot use 'super' outside of a class.")
	}

	superVal, ok := e.env.Ancestor(depth).Get("super")
	if !ok {
		return nil, e.runtimeErr(s.Keyword, "Cannot use 'super' outside of a class.")
	}
	superclass := superVal.(*runtime.Class)

	thisVal, _ := e.env.Ancestor(depth - 1).Get("this")
	instance, _ := thisVal.(*runtime.Instance)

	method, ok := superclass.FindMethod(s.Method.Lexeme)
	if !ok {
		return nil, e.runtimeErr(s.Method, fmt.Sprintf("Undefined property '%s'.", s.Method.Lexeme))
	}
	return method.Bind(instance), nil
}
