package interval

import (
	"testing"

	"github.com/Grandlook/Halide-l0/pkg/ir"
)

func Test_Engine_Const(t *testing.T) {
	checkOf(t, ir.NewConst(7), nil, 7, 7)
}

func Test_Engine_Var(t *testing.T) {
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	//
	checkOf(t, ir.NewVar("x"), scope, 0, 9)
}

func Test_Engine_Unresolved(t *testing.T) {
	engine := NewEngine(nil)
	//
	_, err := engine.Of(ir.NewVar("q"), nil)
	//
	if uv, ok := err.(*UnresolvedVariableError); !ok {
		t.Errorf("expected unresolved variable error, got %v", err)
	} else if uv.Name != "q" {
		t.Errorf("expected error to name \"q\", got \"%s\"", uv.Name)
	}
}

func Test_Engine_Arith(t *testing.T) {
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	// (x * 2) + 1 over x in [0, 9] gives [1, 19]
	e := &ir.Add{A: &ir.Mul{A: ir.NewVar("x"), B: ir.NewConst(2)}, B: ir.NewConst(1)}
	//
	checkOf(t, e, scope, 1, 19)
}

func Test_Engine_Shadowing(t *testing.T) {
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	scope = scope.Bind("x", NewInterval64(5, 6))
	//
	checkOf(t, ir.NewVar("x"), scope, 5, 6)
}

func Test_Engine_Select(t *testing.T) {
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	// The predicate never narrows: both arms contribute.
	e := &ir.Select{
		Cond:  &ir.LT{A: ir.NewVar("x"), B: ir.NewConst(5)},
		True:  ir.NewConst(-1),
		False: &ir.Add{A: ir.NewVar("x"), B: ir.NewConst(10)},
	}
	//
	checkOf(t, e, scope, -1, 19)
}

func Test_Engine_Let(t *testing.T) {
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	// let y = x + 1 in y * 2 gives [2, 20]
	e := &ir.Let{
		Name:  "y",
		Value: &ir.Add{A: ir.NewVar("x"), B: ir.NewConst(1)},
		Body:  &ir.Mul{A: ir.NewVar("y"), B: ir.NewConst(2)},
	}
	//
	checkOf(t, e, scope, 2, 20)
}

func Test_Engine_Comparison(t *testing.T) {
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	//
	checkOf(t, &ir.LE{A: ir.NewVar("x"), B: ir.NewConst(5)}, scope, 0, 1)
}

func Test_Engine_Call_Unknown(t *testing.T) {
	engine := NewEngine(nil)
	//
	iv, err := engine.Of(&ir.Call{Name: "f", Args: []ir.Expr{ir.NewConst(0)}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// No call ranger, hence no information.
	if iv.HasMin() || iv.HasMax() {
		t.Errorf("expected unbounded, got %s", iv)
	}
}

func Test_Engine_Call_Ranged(t *testing.T) {
	engine := NewEngine(rangerFunc(func(name string, args []Interval) Interval {
		// Value of f is twice its (sole) argument.
		return args[0].Mul(Point(ir.NewConst(2)))
	}))
	//
	var scope *Scope
	scope = scope.Bind("x", NewInterval64(0, 9))
	//
	iv, err := engine.Of(&ir.Call{Name: "f", Args: []ir.Expr{ir.NewVar("x")}}, scope)
	if err != nil {
		t.Fatal(err)
	}
	//
	assertConstInterval(t, iv, 0, 18)
}

func Test_Engine_Call_BadArg(t *testing.T) {
	engine := NewEngine(nil)
	// An unresolved variable inside a call argument still surfaces.
	_, err := engine.Of(&ir.Call{Name: "f", Args: []ir.Expr{ir.NewVar("q")}}, nil)
	//
	if _, ok := err.(*UnresolvedVariableError); !ok {
		t.Errorf("expected unresolved variable error, got %v", err)
	}
}

// ===================================================================
// Test helpers
// ===================================================================

type rangerFunc func(string, []Interval) Interval

func (f rangerFunc) CallRange(name string, args []Interval) Interval {
	return f(name, args)
}

func checkOf(t *testing.T, e ir.Expr, scope *Scope, lo int64, hi int64) {
	engine := NewEngine(nil)
	//
	iv, err := engine.Of(e, scope)
	if err != nil {
		t.Fatal(err)
	}
	//
	assertConstInterval(t, iv, lo, hi)
}
