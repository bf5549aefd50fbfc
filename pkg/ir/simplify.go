// Copyright Grandlook Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

// Simplifier canonicalises expressions.  The full algebraic simplifier is an
// external collaborator of this module; passes here only rely on the
// constant-folding subset provided by Fold, but accept any implementation.
type Simplifier interface {
	// Simplify returns an expression equivalent to e, ideally smaller.
	Simplify(e Expr) Expr
}

// Folder is the default Simplifier.  It folds constant subexpressions down to
// literals and applies a handful of identities (x+0, x*1, min(x,x), etc), but
// performs no algebraic rewriting beyond that.
type Folder struct{}

// Simplify implementation for the Simplifier interface.
func (Folder) Simplify(e Expr) Expr { return Fold(e) }

// Fold collapses constant subexpressions of e down to literals, propagating
// throughout so that e.g. "((1 + 2) * x)" becomes "(3 * x)".  Division by a
// constant zero is left as-is.
func Fold(e Expr) Expr {
	switch t := e.(type) {
	case *Const, *Var:
		return e
	case *Add:
		a, b := Fold(t.A), Fold(t.B)
		if ca, cb, ok := constPair(a, b); ok {
			return NewConst(ca + cb)
		} else if isZero(a) {
			return b
		} else if isZero(b) {
			return a
		}
		//
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &Add{a, b} })
	case *Sub:
		a, b := Fold(t.A), Fold(t.B)
		if ca, cb, ok := constPair(a, b); ok {
			return NewConst(ca - cb)
		} else if isZero(b) {
			return a
		}
		//
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &Sub{a, b} })
	case *Mul:
		a, b := Fold(t.A), Fold(t.B)
		if ca, cb, ok := constPair(a, b); ok {
			return NewConst(ca * cb)
		} else if isOne(a) {
			return b
		} else if isOne(b) {
			return a
		} else if isZero(a) || isZero(b) {
			return NewConst(0)
		}
		//
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &Mul{a, b} })
	case *Div:
		a, b := Fold(t.A), Fold(t.B)
		if ca, cb, ok := constPair(a, b); ok && cb != 0 {
			return NewConst(divFloor(ca, cb))
		} else if isOne(b) {
			return a
		}
		//
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &Div{a, b} })
	case *Min:
		a, b := Fold(t.A), Fold(t.B)
		if ca, cb, ok := constPair(a, b); ok {
			return NewConst(min(ca, cb))
		} else if Equal(a, b) {
			return a
		}
		//
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &Min{a, b} })
	case *Max:
		a, b := Fold(t.A), Fold(t.B)
		if ca, cb, ok := constPair(a, b); ok {
			return NewConst(max(ca, cb))
		} else if Equal(a, b) {
			return a
		}
		//
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &Max{a, b} })
	case *LT:
		a, b := Fold(t.A), Fold(t.B)
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &LT{a, b} })
	case *LE:
		a, b := Fold(t.A), Fold(t.B)
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &LE{a, b} })
	case *GT:
		a, b := Fold(t.A), Fold(t.B)
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &GT{a, b} })
	case *GE:
		a, b := Fold(t.A), Fold(t.B)
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &GE{a, b} })
	case *EQ:
		a, b := Fold(t.A), Fold(t.B)
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &EQ{a, b} })
	case *NE:
		a, b := Fold(t.A), Fold(t.B)
		return rebuild2(e, t.A, t.B, a, b, func() Expr { return &NE{a, b} })
	case *Select:
		cond, tt, ff := Fold(t.Cond), Fold(t.True), Fold(t.False)
		if Equal(tt, ff) {
			return tt
		} else if cond == t.Cond && tt == t.True && ff == t.False {
			return e
		}
		//
		return &Select{cond, tt, ff}
	case *Call:
		args, changed := foldExprs(t.Args)
		if !changed {
			return e
		}
		//
		return &Call{t.Name, args}
	case *Let:
		value, body := Fold(t.Value), Fold(t.Body)
		if value == t.Value && body == t.Body {
			return e
		}
		//
		return &Let{t.Name, value, body}
	default:
		panic("unknown expression")
	}
}

// rebuild2 preserves structural sharing for binary nodes whose children were
// left untouched by folding.
func rebuild2(orig Expr, oldA, oldB, newA, newB Expr, mk func() Expr) Expr {
	if oldA == newA && oldB == newB {
		return orig
	}
	//
	return mk()
}

func foldExprs(es []Expr) ([]Expr, bool) {
	var (
		folded  = make([]Expr, len(es))
		changed = false
	)
	//
	for i, e := range es {
		folded[i] = Fold(e)
		changed = changed || folded[i] != e
	}
	//
	return folded, changed
}

func constPair(a Expr, b Expr) (int64, int64, bool) {
	ca, aok := a.(*Const)
	cb, bok := b.(*Const)
	//
	if aok && bok {
		return ca.Value, cb.Value, true
	}
	//
	return 0, 0, false
}

func isZero(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.Value == 0
}

func isOne(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.Value == 1
}

// divFloor implements Euclidean-style division rounding towards negative
// infinity, matching the semantics loop bounds are expressed in.
func divFloor(a int64, b int64) int64 {
	q := a / b
	//
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	//
	return q
}
