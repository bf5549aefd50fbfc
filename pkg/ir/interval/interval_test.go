package interval

import (
	"testing"

	"github.com/Grandlook/Halide-l0/pkg/ir"
)

const ADD = 0
const SUB = 1
const MUL = 2
const DIV = 3
const MIN = 4
const MAX = 5
const UNION = 6

func Test_Interval_01a(t *testing.T) {
	checkBinOp(t, ADD, 1, 3, 4, 5)
}
func Test_Interval_01b(t *testing.T) {
	checkBinOp(t, ADD, -1, 3, 4, 5)
}
func Test_Interval_01c(t *testing.T) {
	checkBinOp(t, ADD, -3, -1, -5, -4)
}
func Test_Interval_02a(t *testing.T) {
	checkBinOp(t, SUB, 1, 3, 4, 5)
}
func Test_Interval_02b(t *testing.T) {
	checkBinOp(t, SUB, -1, 3, -4, 5)
}
func Test_Interval_02c(t *testing.T) {
	checkBinOp(t, SUB, -3, -1, -5, -4)
}
func Test_Interval_03a(t *testing.T) {
	checkBinOp(t, MUL, 1, 3, 4, 5)
}
func Test_Interval_03b(t *testing.T) {
	checkBinOp(t, MUL, -1, 3, 4, 5)
}
func Test_Interval_03c(t *testing.T) {
	checkBinOp(t, MUL, -3, -1, -5, 4)
}
func Test_Interval_03d(t *testing.T) {
	checkBinOp(t, MUL, -3, -1, -5, -4)
}
func Test_Interval_04a(t *testing.T) {
	checkBinOp(t, DIV, 1, 9, 2, 3)
}
func Test_Interval_04b(t *testing.T) {
	checkBinOp(t, DIV, -9, 9, 2, 3)
}
func Test_Interval_04c(t *testing.T) {
	checkBinOp(t, DIV, -9, 9, -3, -2)
}
func Test_Interval_04d(t *testing.T) {
	// Divisor spans zero, hence unbounded.
	checkBinOp(t, DIV, 1, 9, -1, 1)
}
func Test_Interval_05a(t *testing.T) {
	checkBinOp(t, MIN, 1, 3, 2, 5)
}
func Test_Interval_05b(t *testing.T) {
	checkBinOp(t, MIN, -3, 1, -1, 5)
}
func Test_Interval_06a(t *testing.T) {
	checkBinOp(t, MAX, 1, 3, 2, 5)
}
func Test_Interval_06b(t *testing.T) {
	checkBinOp(t, MAX, -3, 1, -1, 5)
}
func Test_Interval_07a(t *testing.T) {
	checkBinOp(t, UNION, 0, 9, 1, 10)
}
func Test_Interval_07b(t *testing.T) {
	checkBinOp(t, UNION, -5, -1, 3, 7)
}

func Test_Interval_Unbounded_01(t *testing.T) {
	// Adding anything to an unbounded interval stays unbounded.
	sum := Everything().Add(NewInterval64(1, 2))
	//
	if sum.HasMin() || sum.HasMax() {
		t.Errorf("expected unbounded, got %s", sum)
	}
}

func Test_Interval_Unbounded_02(t *testing.T) {
	// Subtraction flips which side of the second operand feeds the result.
	lhs := NewInterval64(0, 10)
	rhs := Span(NewInterval64(0, 0), Everything())
	diff := lhs.Sub(rhs)
	//
	if diff.HasMin() {
		t.Errorf("expected lower end unbounded, got %s", diff)
	} else if !diff.HasMax() {
		t.Errorf("expected upper end bounded, got %s", diff)
	}
}

func Test_Interval_Unbounded_03(t *testing.T) {
	// Multiplying two symbolic intervals has no statically-known signs.
	x, y := ir.NewVar("x"), ir.NewVar("y")
	product := NewInterval(x, y).Mul(NewInterval64(2, 3))
	//
	if product.HasMin() || product.HasMax() {
		t.Errorf("expected unbounded, got %s", product)
	}
}

func Test_Interval_Symbolic_01(t *testing.T) {
	// Scaling a symbolic interval by a constant point is exact.
	x := ir.NewVar("x")
	scaled := NewInterval(x, &ir.Add{A: x, B: ir.NewConst(1)}).Mul(Point(ir.NewConst(2)))
	//
	assertSameExpr(t, scaled.MinValue(), &ir.Mul{A: x, B: ir.NewConst(2)})
	assertSameExpr(t, scaled.MaxValue(), &ir.Mul{A: &ir.Add{A: x, B: ir.NewConst(1)}, B: ir.NewConst(2)})
}

func Test_Interval_Symbolic_02(t *testing.T) {
	// Scaling by a negative constant swaps the ends.
	x := ir.NewVar("x")
	scaled := NewInterval(x, &ir.Add{A: x, B: ir.NewConst(1)}).Mul(Point(ir.NewConst(-1)))
	//
	assertSameExpr(t, scaled.MinValue(), &ir.Mul{A: &ir.Add{A: x, B: ir.NewConst(1)}, B: ir.NewConst(-1)})
	assertSameExpr(t, scaled.MaxValue(), &ir.Mul{A: x, B: ir.NewConst(-1)})
}

func Test_Interval_Symbolic_03(t *testing.T) {
	// Unions over symbolic endpoints build min/max expressions.
	x := ir.NewVar("x")
	union := NewInterval(x, x).Union(NewInterval64(0, 10))
	//
	assertSameExpr(t, union.MinValue(), &ir.Min{A: x, B: ir.NewConst(0)})
	assertSameExpr(t, union.MaxValue(), &ir.Max{A: x, B: ir.NewConst(10)})
}

func Test_Interval_Extent_01(t *testing.T) {
	assertSameExpr(t, NewInterval64(3, 12).Extent(), ir.NewConst(10))
}

func Test_Interval_Within_01(t *testing.T) {
	checkWithin(t, NewInterval64(1, 3), NewInterval64(0, 5), true, true)
}
func Test_Interval_Within_02(t *testing.T) {
	checkWithin(t, NewInterval64(-1, 3), NewInterval64(0, 5), false, true)
}
func Test_Interval_Within_03(t *testing.T) {
	checkWithin(t, NewInterval64(0, 5), Everything(), true, true)
}
func Test_Interval_Within_04(t *testing.T) {
	checkWithin(t, Everything(), NewInterval64(0, 5), false, true)
}
func Test_Interval_Within_05(t *testing.T) {
	// Identical symbolic endpoints are decidable by syntactic equality.
	x := ir.NewVar("x")
	checkWithin(t, NewInterval(x, x), NewInterval(x, x), true, true)
}
func Test_Interval_Within_06(t *testing.T) {
	// Distinct symbolic endpoints are undecidable.
	iv := NewInterval(ir.NewVar("x"), ir.NewVar("x"))
	_, decidable := iv.Within(NewInterval64(0, 5))
	//
	if decidable {
		t.Errorf("expected undecidable containment")
	}
}

func Test_Box_Union_01(t *testing.T) {
	a := NewBox(NewInterval64(0, 9), NewInterval64(0, 4))
	b := NewBox(NewInterval64(5, 14), NewInterval64(-2, 2))
	u := a.Union(b)
	//
	assertConstInterval(t, u[0], 0, 14)
	assertConstInterval(t, u[1], -2, 4)
}

func Test_Box_Union_02(t *testing.T) {
	// The nil box is the identity.
	var empty Box
	//
	b := NewBox(NewInterval64(1, 2))
	//
	if u := empty.Union(b); len(u) != 1 {
		t.Errorf("expected 1 dimension, got %d", len(u))
	}
	//
	if u := b.Union(empty); len(u) != 1 {
		t.Errorf("expected 1 dimension, got %d", len(u))
	}
}

func Test_Box_Union_03(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on dimensionality mismatch")
		}
	}()
	//
	NewBox(NewInterval64(0, 1)).Union(NewBox(NewInterval64(0, 1), NewInterval64(0, 1)))
}

// ===================================================================
// Test helpers
// ===================================================================

// checkBinOp applies the given operation to the two (constant) operand
// intervals and checks, by brute force over every operand pair, that the
// result is a sound enclosure.
func checkBinOp(t *testing.T, op uint, a0, a1, b0, b1 int64) {
	lhs, rhs := NewInterval64(a0, a1), NewInterval64(b0, b1)
	result := applyBinOp(op, lhs, rhs)
	//
	for x := a0; x <= a1; x++ {
		for y := b0; y <= b1; y++ {
			for _, v := range evalBinOp(op, x, y) {
				if !containsConst(result, v) {
					t.Errorf("%s op %d of (%d, %d) produced %d, outside %s",
						lhs, op, x, y, v, result)
				}
			}
		}
	}
}

func applyBinOp(op uint, a Interval, b Interval) Interval {
	switch op {
	case ADD:
		return a.Add(b)
	case SUB:
		return a.Sub(b)
	case MUL:
		return a.Mul(b)
	case DIV:
		return a.Div(b)
	case MIN:
		return a.Min(b)
	case MAX:
		return a.Max(b)
	case UNION:
		return a.Union(b)
	default:
		panic("unknown operation")
	}
}

func evalBinOp(op uint, x int64, y int64) []int64 {
	switch op {
	case ADD:
		return []int64{x + y}
	case SUB:
		return []int64{x - y}
	case MUL:
		return []int64{x * y}
	case DIV:
		if y == 0 {
			return nil
		}
		//
		return []int64{divFloor(x, y)}
	case MIN:
		return []int64{min(x, y)}
	case MAX:
		return []int64{max(x, y)}
	case UNION:
		return []int64{x, y}
	default:
		panic("unknown operation")
	}
}

func containsConst(iv Interval, v int64) bool {
	if iv.HasMin() {
		if c, ok := iv.MinValue().(*ir.Const); !ok || c.Value > v {
			return false
		}
	}
	//
	if iv.HasMax() {
		if c, ok := iv.MaxValue().(*ir.Const); !ok || c.Value < v {
			return false
		}
	}
	//
	return true
}

func checkWithin(t *testing.T, p Interval, q Interval, within bool, decidable bool) {
	gotWithin, gotDecidable := p.Within(q)
	//
	if gotDecidable != decidable || (decidable && gotWithin != within) {
		t.Errorf("%s within %s: got (%v, %v), expected (%v, %v)",
			p, q, gotWithin, gotDecidable, within, decidable)
	}
}

func assertSameExpr(t *testing.T, got ir.Expr, expected ir.Expr) {
	if !ir.Equal(got, expected) {
		t.Errorf("got %s, expected %s", got, expected)
	}
}

func assertConstInterval(t *testing.T, iv Interval, lo int64, hi int64) {
	if !containsConst(iv, lo) || !containsConst(iv, hi) || !iv.IsBounded() {
		t.Errorf("got %s, expected [%d, %d]", iv, lo, hi)
	}
	//
	if c, ok := iv.MinValue().(*ir.Const); !ok || c.Value != lo {
		t.Errorf("got min %s, expected %d", iv.MinValue(), lo)
	}
	//
	if c, ok := iv.MaxValue().(*ir.Const); !ok || c.Value != hi {
		t.Errorf("got max %s, expected %d", iv.MaxValue(), hi)
	}
}
