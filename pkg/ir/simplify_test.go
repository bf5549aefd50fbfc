package ir

import "testing"

func Test_Fold_01(t *testing.T) {
	checkFold(t, &Add{A: NewConst(1), B: NewConst(2)}, NewConst(3))
}

func Test_Fold_02(t *testing.T) {
	// Folding propagates outward.
	e := &Mul{A: &Add{A: NewConst(1), B: NewConst(2)}, B: NewConst(4)}
	checkFold(t, e, NewConst(12))
}

func Test_Fold_03(t *testing.T) {
	checkFold(t, &Add{A: NewVar("x"), B: NewConst(0)}, NewVar("x"))
	checkFold(t, &Sub{A: NewVar("x"), B: NewConst(0)}, NewVar("x"))
}

func Test_Fold_04(t *testing.T) {
	checkFold(t, &Mul{A: NewVar("x"), B: NewConst(1)}, NewVar("x"))
	checkFold(t, &Mul{A: NewVar("x"), B: NewConst(0)}, NewConst(0))
}

func Test_Fold_05(t *testing.T) {
	checkFold(t, &Min{A: NewConst(3), B: NewConst(7)}, NewConst(3))
	checkFold(t, &Max{A: NewConst(3), B: NewConst(7)}, NewConst(7))
}

func Test_Fold_06(t *testing.T) {
	// min/max of syntactically identical operands collapses.
	x := NewVar("x")
	checkFold(t, &Min{A: x, B: NewVar("x")}, x)
	checkFold(t, &Max{A: x, B: NewVar("x")}, x)
}

func Test_Fold_07(t *testing.T) {
	// Division rounds towards negative infinity.
	checkFold(t, &Div{A: NewConst(-7), B: NewConst(2)}, NewConst(-4))
	checkFold(t, &Div{A: NewConst(7), B: NewConst(2)}, NewConst(3))
}

func Test_Fold_08(t *testing.T) {
	// Division by a constant zero does not fold.
	e := &Div{A: NewConst(1), B: NewConst(0)}
	//
	if folded := Fold(e); folded != e {
		t.Errorf("expected %s untouched, got %s", e, folded)
	}
}

func Test_Fold_09(t *testing.T) {
	// A select whose arms agree collapses to either arm.
	e := &Select{Cond: &LT{A: NewVar("x"), B: NewConst(0)}, True: NewVar("y"), False: NewVar("y")}
	checkFold(t, e, NewVar("y"))
}

func Test_Fold_10(t *testing.T) {
	// Untouched subtrees are shared, not rebuilt.
	e := &Add{A: NewVar("x"), B: NewVar("y")}
	//
	if Fold(e) != Expr(e) {
		t.Errorf("expected %s to be returned as-is", e)
	}
}

func Test_Fold_11(t *testing.T) {
	// Folding reaches inside call arguments and lets.
	e := &Call{Name: "f", Args: []Expr{&Add{A: NewConst(1), B: NewConst(1)}}}
	checkFold(t, e, &Call{Name: "f", Args: []Expr{NewConst(2)}})
	//
	l := &Let{Name: "y", Value: &Add{A: NewConst(2), B: NewConst(3)}, Body: NewVar("y")}
	checkFold(t, l, &Let{Name: "y", Value: NewConst(5), Body: NewVar("y")})
}

func Test_Equal_01(t *testing.T) {
	a := &Add{A: NewVar("x"), B: NewConst(1)}
	b := &Add{A: NewVar("x"), B: NewConst(1)}
	//
	if !Equal(a, b) {
		t.Errorf("expected %s == %s", a, b)
	}
}

func Test_Equal_02(t *testing.T) {
	// Semantic equality is not syntactic equality.
	a := &Add{A: NewVar("x"), B: NewConst(1)}
	b := &Add{A: NewConst(1), B: NewVar("x")}
	//
	if Equal(a, b) {
		t.Errorf("expected %s != %s", a, b)
	}
}

func Test_Equal_03(t *testing.T) {
	a := &Call{Name: "f", Args: []Expr{NewVar("x")}}
	b := &Call{Name: "f", Args: []Expr{NewVar("x"), NewVar("y")}}
	//
	if Equal(a, b) {
		t.Errorf("expected %s != %s", a, b)
	}
}

func Test_RewriteStmt_01(t *testing.T) {
	// An identity rewrite returns the very same tree.
	tree := &Realize{
		Name:   "f",
		Bounds: []Range{{NewVar("f.min.0"), NewVar("f.extent.0")}},
		Body:   &Produce{Name: "f", Body: &Provide{Name: "f", Args: []Expr{NewVar("x")}, Value: NewConst(0)}},
	}
	//
	rewritten := RewriteStmt(tree, func(s Stmt) Stmt { return s })
	//
	if rewritten != Stmt(tree) {
		t.Errorf("expected identical tree back")
	}
}

func Test_RewriteStmt_02(t *testing.T) {
	// Wrapping one node leaves its siblings shared.
	produce := &Produce{Name: "g", Body: &Evaluate{Value: NewConst(0)}}
	realize := &Realize{Name: "f", Body: &Evaluate{Value: NewConst(1)}}
	tree := &Block{Stmts: []Stmt{produce, realize}}
	//
	rewritten := RewriteStmt(tree, func(s Stmt) Stmt {
		if r, ok := s.(*Realize); ok && r.Name == "f" {
			return &LetStmt{Name: "f.min.0", Value: NewConst(0), Body: r}
		}
		//
		return s
	})
	//
	block, ok := rewritten.(*Block)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("expected a two-statement block, got %s", rewritten)
	}
	// Untouched sibling is shared.
	if block.Stmts[0] != Stmt(produce) {
		t.Errorf("expected untouched produce to be shared")
	}
	// Wrapped node sits under the new let.
	if let, ok := block.Stmts[1].(*LetStmt); !ok {
		t.Errorf("expected a let around the realize, got %s", block.Stmts[1])
	} else if let.Body != Stmt(realize) {
		t.Errorf("expected the realize itself under the let")
	}
}

func checkFold(t *testing.T, e Expr, expected Expr) {
	if folded := Fold(e); !Equal(folded, expected) {
		t.Errorf("folding %s gave %s, expected %s", e, folded, expected)
	}
}
