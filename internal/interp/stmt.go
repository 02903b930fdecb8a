package interp

import (
	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/runtime"
)

// exec runs one statement, returning a value (meaningful only for a
// `return`), a control-flow signal for the innermost loop/function to
// react to, and any runtime error.
func (e *Evaluator) exec(stmt ast.Statement) (runtime.Value, runtime.ControlFlowKind, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := e.eval(s.Expr)
		return nil, runtime.FlowNone, err

	case *ast.PrintStmt:
		v, err := e.eval(s.Expr)
		if err != nil {
			return nil, runtime.FlowNone, err
		}
		e.reporter.Print(v.String())
		return nil, runtime.FlowNone, nil

	case *ast.VarStmt:
		var val runtime.Value = runtime.Nil{}
		if s.Init != nil {
			v, err := e.eval(s.Init)
			if err != nil {
				return nil, runtime.FlowNone, err
			}
			val = v
		}
		e.env.Define(s.Name.Lexeme, val)
		return nil, runtime.FlowNone, nil

	case *ast.BlockStmt:
		return e.ExecuteBlock(s.Statements, runtime.NewChildEnvironment(e.env))

	case *ast.IfStmt:
		cond, err := e.eval(s.Cond)
		if err != nil {
			return nil, runtime.FlowNone, err
		}
		if cond.Truthy() {
			return e.exec(s.Then)
		}
		if s.Else != nil {
			return e.exec(s.Else)
		}
		return nil, runtime.FlowNone, nil

	case *ast.WhileStmt:
		return e.execWhile(s)

	case *ast.FunctionStmt:
		fn := runtime.NewFunction(s, e.env, false)
		e.env.Define(s.Name.Lexeme, fn)
		return nil, runtime.FlowNone, nil

	case *ast.ReturnStmt:
		var val runtime.Value = runtime.Nil{}
		if s.Value != nil {
			v, err := e.eval(s.Value)
			if err != nil {
				return nil, runtime.FlowNone, err
			}
			val = v
		}
		return val, runtime.FlowReturn, nil

	case *ast.ClassStmt:
		return nil, runtime.FlowNone, e.execClass(s)

	case *ast.BreakStmt:
		if e.loopDepth == 0 {
			return nil, runtime.FlowNone, e.runtimeErr(s.Keyword, "Cannot break outside of a loop.")
		}
		return nil, runtime.FlowBreak, nil

	case *ast.ContinueStmt:
		if e.loopDepth == 0 {
			return nil, runtime.FlowNone, e.runtimeErr(s.Keyword, "Cannot continue outside of a loop.")
		}
		return nil, runtime.FlowContinue, nil
	}
	return nil, runtime.FlowNone, nil
}

// execWhile runs the loop. s.Post (a `for` loop's increment clause, nil for
// a plain `while`) executes after every iteration of Body that doesn't
// `break` or `return` — including one that hit `continue` — since it is a
// sibling of Body, not a statement inside it.
func (e *Evaluator) execWhile(s *ast.WhileStmt) (runtime.Value, runtime.ControlFlowKind, error) {
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	for {
		cond, err := e.eval(s.Cond)
		if err != nil {
			return nil, runtime.FlowNone, err
		}
		if !cond.Truthy() {
			return nil, runtime.FlowNone, nil
		}

		val, kind, err := e.exec(s.Body)
		if err != nil {
			return nil, runtime.FlowNone, err
		}
		switch kind {
		case runtime.FlowBreak:
			return nil, runtime.FlowNone, nil
		case runtime.FlowReturn:
			return val, kind, nil
		case runtime.FlowContinue, runtime.FlowNone:
			// fall through to Post below, then the next iteration
		}

		if s.Post != nil {
			if _, err := e.eval(s.Post); err != nil {
				return nil, runtime.FlowNone, err
			}
		}
	}
}

// execClass builds the class value: if a superclass is present, its
// Value is pushed into a fresh environment containing `super` before any
// method closures are built, so every method's closure sees `super` at a
// stable depth.
func (e *Evaluator) execClass(s *ast.ClassStmt) error {
	var superclass *runtime.Class
	if s.Superclass != nil {
		v, err := e.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*runtime.Class)
		if !ok {
			return e.runtimeErr(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	methodEnv := e.env
	if superclass != nil {
		methodEnv = runtime.NewChildEnvironment(e.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = runtime.NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := runtime.NewClass(s.Name.Lexeme, methods, superclass)
	e.env.Define(s.Name.Lexeme, class)
	return nil
}
