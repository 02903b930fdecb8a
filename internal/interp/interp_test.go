package interp

import (
	"testing"

	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/lexer"
	"github.com/cwbudde/quill/internal/parser"
	"github.com/cwbudde/quill/internal/resolver"
)

// run lexes, parses, resolves and evaluates src, failing the test if any
// phase before evaluation reports an error.
func run(t *testing.T, src string) *diag.Reporter {
	t.Helper()
	tokens := lexer.New(src).Tokenize()
	reporter := diag.New()
	prog := parser.New(tokens, reporter).Parse()
	if reporter.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", reporter.Diagnostics())
	}
	locals := resolver.New(reporter).Resolve(prog)
	if reporter.HasErrors() {
		t.Fatalf("unexpected resolver errors: %v", reporter.Diagnostics())
	}
	New(reporter, locals).Run(prog)
	return reporter
}

func assertOutput(t *testing.T, src string, want []string) {
	t.Helper()
	reporter := run(t, src)
	if reporter.HasErrors() {
		t.Fatalf("unexpected runtime errors: %v", reporter.Diagnostics())
	}
	got := reporter.Output()
	if len(got) != len(want) {
		t.Fatalf("got output %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArithmeticPrint(t *testing.T) {
	assertOutput(t, `print 1 + 2;`, []string{"3"})
}

func TestBlockScopingShadowsOuter(t *testing.T) {
	assertOutput(t, `let x = 10; { let x = 20; print x; } print x;`, []string{"20", "10"})
}

func TestClosuresCaptureDistinctState(t *testing.T) {
	src := `fun mk(){ let n=0; fun inc(){ n=n+1; return n; } return inc; } let f=mk(); print f(); print f(); print f();`
	assertOutput(t, src, []string{"1", "2", "3"})
}

func TestTwoClosuresFromSameFactoryAreIndependent(t *testing.T) {
	src := `fun mk(){ let n=0; fun inc(){ n=n+1; return n; } return inc; } let f=mk(); let g=mk(); print f(); print f(); print g();`
	assertOutput(t, src, []string{"1", "2", "1"})
}

func TestSuperDispatchesToAncestorMethod(t *testing.T) {
	src := `class A{ speak(){print "A";} } class B inherits A{ speak(){ super.speak(); print "B"; } } B().speak();`
	assertOutput(t, src, []string{"A", "B"})
}

func TestThisIsTheReceiver(t *testing.T) {
	src := `class Counter { init() { this.n = 0; } inc() { this.n = this.n + 1; return this.n; } } let c = Counter(); print c.inc(); print c.inc();`
	assertOutput(t, src, []string{"1", "2"})
}

func TestArrayConcatenationAndIndexing(t *testing.T) {
	assertOutput(t, `let a=[1,2]; let b=[3,4]; print (a+b)[2];`, []string{"3"})
}

func TestArraysAreSharedByReference(t *testing.T) {
	src := `let a = [1, 2]; let b = a; b[0] = 99; print a[0];`
	assertOutput(t, src, []string{"99"})
}

func TestShortCircuitOrSkipsRightOperand(t *testing.T) {
	src := `fun boom() { print "evaluated"; return true; } print true or boom();`
	assertOutput(t, src, []string{"true"})
}

func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	src := `fun boom() { print "evaluated"; return true; } print false and boom();`
	assertOutput(t, src, []string{"false"})
}

func TestLogicalOperatorsCollapseToBool(t *testing.T) {
	// Short-circuit returns a Bool, not the original left operand.
	assertOutput(t, `print 5 or 10;`, []string{"true"})
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	reporter := run(t, `print 10/0;`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Division by zero." {
		t.Errorf("got message %q", d.Message)
	}
	if d.Phase != diag.Runtime {
		t.Errorf("got phase %s, want Runtime", d.Phase)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	reporter := run(t, `print nope;`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Undefined variable 'nope'." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestIndexOutOfBoundsIsRuntimeError(t *testing.T) {
	reporter := run(t, `let a = [1]; print a[5];`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Index out of bounds." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestNegativeIndexIsRuntimeError(t *testing.T) {
	reporter := run(t, `let a = [1]; print a[-1];`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Index must be a non-negative integer." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestStringIndexingReturnsOneCharString(t *testing.T) {
	assertOutput(t, `print "hello"[1];`, []string{"e"})
}

func TestStringIndexSetIsRejected(t *testing.T) {
	reporter := run(t, `"hi"[0] = "x";`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Only arrays can be indexed." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	reporter := run(t, `let x = 1; x();`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Can only call functions and classes." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	reporter := run(t, `fun f(a, b) { return a; } f(1);`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Expected 2 arguments but got 1." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	reporter := run(t, `class A { } print A().missing;`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Undefined property 'missing'." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestSetAlwaysShadowsMethod(t *testing.T) {
	src := `class A { greet() { return "hi"; } } let a = A(); a.greet = 42; print a.greet;`
	assertOutput(t, src, []string{"42"})
}

func TestNumberPrintsWithoutTrailingZeros(t *testing.T) {
	assertOutput(t, `print 3.0; print 3.5;`, []string{"3", "3.5"})
}

func TestArrayPrintsRecursively(t *testing.T) {
	assertOutput(t, `print [1, "a", true, nil];`, []string{`[1, a, true, nil]`})
}

func TestInstancePrintsClassName(t *testing.T) {
	assertOutput(t, `class Dog { } print Dog();`, []string{"<instanceof Dog>"})
}

func TestBreakExitsInnermostLoop(t *testing.T) {
	src := `let i = 0; while (true) { if (i == 3) break; print i; i = i + 1; }`
	assertOutput(t, src, []string{"0", "1", "2"})
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	src := `for (let i = 0; i < 4; i = i + 1) { if (i == 2) continue; print i; }`
	assertOutput(t, src, []string{"0", "1", "3"})
}

func TestContinueStillRunsForLoopIncrement(t *testing.T) {
	// Regression: the `for` loop's increment must not be skipped along with
	// the rest of the body when `continue` fires, or this loop never
	// terminates.
	src := `let seen = []; for (let i = 0; i < 5; i = i + 1) { if (i == 1) continue; seen = seen + [i]; } print seen;`
	assertOutput(t, src, []string{"[0, 2, 3, 4]"})
}

func TestBreakOutsideLoopIsRuntimeError(t *testing.T) {
	reporter := run(t, `break;`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Cannot break outside of a loop." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestContinueOutsideLoopIsRuntimeError(t *testing.T) {
	reporter := run(t, `continue;`)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Cannot continue outside of a loop." {
		t.Errorf("got message %q", d.Message)
	}
}

func TestBreakDoesNotLeakAcrossFunctionCallBoundary(t *testing.T) {
	src := `fun f() { break; } while (true) { f(); }`
	reporter := run(t, src)
	if !reporter.HasErrors() {
		t.Fatal("expected a runtime error")
	}
	d, _ := reporter.First()
	if d.Message != "Cannot break outside of a loop." {
		t.Errorf("got message %q, want break-outside-loop error from inside f(), not a leaked loop exit", d.Message)
	}
}

func TestClassInstantiationCallsInit(t *testing.T) {
	src := `class Point { init(x, y) { this.x = x; this.y = y; } } let p = Point(1, 2); print p.x; print p.y;`
	assertOutput(t, src, []string{"1", "2"})
}

func TestModuloIsMathematicalModulo(t *testing.T) {
	assertOutput(t, `print 7 % 3;`, []string{"1"})
}
