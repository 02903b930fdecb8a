package runtime

import (
	"testing"

	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/lexer"
)

func TestTruthiness(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"Bool true", Bool(true), true},
		{"Bool false", Bool(false), false},
		{"Nil", Nil{}, false},
		{"Number zero", Number(0), false},
		{"Number nonzero", Number(1), true},
		{"empty Array", NewArray(nil), false},
		{"nonempty Array", NewArray([]Value{Number(1)}), true},
		{"String", String(""), true},
	}
	for _, tc := range cases {
		if got := tc.v.Truthy(); got != tc.want {
			t.Errorf("%s: Truthy() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNumberPrintsShortestRoundTrip(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{Number(3), "3"},
		{Number(3.5), "3.5"},
		{Number(-2), "-2"},
		{Number(0), "0"},
	}
	for _, tc := range cases {
		if got := tc.n.String(); got != tc.want {
			t.Errorf("Number(%v).String() = %q, want %q", float64(tc.n), got, tc.want)
		}
	}
}

func TestArrayIsSharedByReference(t *testing.T) {
	a := NewArray([]Value{Number(1), Number(2)})
	b := a
	b.Elements[0] = Number(99)
	if a.Elements[0] != Number(99) {
		t.Fatal("Array aliasing must be visible through both references")
	}
}

func TestInstanceGetFallsBackToBoundMethod(t *testing.T) {
	decl := &ast.FunctionStmt{Name: lexer.Token{Lexeme: "greet"}}
	fn := NewFunction(decl, NewEnvironment(), false)
	class := NewClass("A", map[string]*Function{"greet": fn}, nil)
	inst := NewInstance(class)

	v, ok := inst.Get("greet")
	if !ok {
		t.Fatal("expected Get to fall back to the class method")
	}
	bound, ok := v.(*Function)
	if !ok {
		t.Fatalf("got %T, want *Function", v)
	}
	this, ok := bound.Closure.Get("this")
	if !ok || this != Value(inst) {
		t.Errorf("bound method's closure should bind this to the instance")
	}
}

func TestClassFindMethodRecursesIntoSuperclass(t *testing.T) {
	parentDecl := &ast.FunctionStmt{Name: lexer.Token{Lexeme: "speak"}}
	parentFn := NewFunction(parentDecl, NewEnvironment(), false)
	base := NewClass("Base", map[string]*Function{"speak": parentFn}, nil)
	derived := NewClass("Derived", map[string]*Function{}, base)

	if _, ok := derived.FindMethod("missing"); ok {
		t.Fatal("FindMethod should miss on an undeclared method")
	}
	if m, ok := derived.FindMethod("speak"); !ok || m != parentFn {
		t.Fatal("FindMethod should recurse into the superclass")
	}
}
