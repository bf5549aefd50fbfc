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

// Package interval provides symbolic interval arithmetic over expression
// trees, along with the multi-dimensional boxes built from such intervals.
// Every operation produces a sound (though not necessarily tight) enclosure of
// its result, and unboundedness is an ordinary representable outcome rather
// than an error.
package interval

import (
	"fmt"

	"github.com/Grandlook/Halide-l0/pkg/ir"
)

// Interval represents the symbolic range [min, max] of a scalar quantity.
// Either end may be unbounded, which is recorded explicitly rather than
// encoded as a sentinel expression, so that arithmetic must propagate
// boundedness deliberately.  The zero value is the interval unbounded on both
// ends.
type Interval struct {
	min, max       ir.Expr
	hasMin, hasMax bool
}

// Everything returns the interval which is unbounded on both ends.
func Everything() Interval {
	return Interval{}
}

// NewInterval creates a bounded interval over the given symbolic endpoints.
func NewInterval(min ir.Expr, max ir.Expr) Interval {
	if min == nil || max == nil {
		panic("interval endpoint missing")
	}
	//
	return Interval{ir.Fold(min), ir.Fold(max), true, true}
}

// NewInterval64 creates a bounded interval over constant endpoints.
func NewInterval64(min int64, max int64) Interval {
	if min > max {
		panic("invalid interval")
	}
	//
	return NewInterval(ir.NewConst(min), ir.NewConst(max))
}

// Point creates the interval containing exactly the given expression.
func Point(e ir.Expr) Interval {
	return NewInterval(e, e)
}

// Span returns the interval running from the lower end of lo to the upper end
// of hi.  It is how the range of a loop variable over [min, min+extent-1] is
// assembled from the enclosures of its two endpoint expressions.
func Span(lo Interval, hi Interval) Interval {
	var r Interval
	//
	if lo.hasMin {
		r.setMin(lo.min)
	}
	//
	if hi.hasMax {
		r.setMax(hi.max)
	}
	//
	return r
}

// HasMin determines whether this interval is bounded below.
func (p Interval) HasMin() bool { return p.hasMin }

// HasMax determines whether this interval is bounded above.
func (p Interval) HasMax() bool { return p.hasMax }

// IsBounded determines whether this interval is bounded on both ends.
func (p Interval) IsBounded() bool { return p.hasMin && p.hasMax }

// MinValue returns the lower endpoint.  Note this will panic if the interval
// is unbounded below.
func (p Interval) MinValue() ir.Expr {
	if !p.hasMin {
		panic("interval unbounded below")
	}
	//
	return p.min
}

// MaxValue returns the upper endpoint.  Note this will panic if the interval
// is unbounded above.
func (p Interval) MaxValue() ir.Expr {
	if !p.hasMax {
		panic("interval unbounded above")
	}
	//
	return p.max
}

// Extent returns the number of points covered by this interval as the
// expression "max - min + 1".  Note this will panic if the interval is
// unbounded on either end.
func (p Interval) Extent() ir.Expr {
	return ir.Fold(&ir.Add{A: &ir.Sub{A: p.MaxValue(), B: p.MinValue()}, B: ir.NewConst(1)})
}

// Add returns the enclosure of a+b for a in p, b in q.  Each end is bounded
// only when both operands are bounded on that end.
func (p Interval) Add(q Interval) Interval {
	var r Interval
	//
	if p.hasMin && q.hasMin {
		r.setMin(&ir.Add{A: p.min, B: q.min})
	}
	//
	if p.hasMax && q.hasMax {
		r.setMax(&ir.Add{A: p.max, B: q.max})
	}
	//
	return r
}

// Sub returns the enclosure of a-b for a in p, b in q.  Subtraction flips
// which side of q feeds which side of the result.
func (p Interval) Sub(q Interval) Interval {
	var r Interval
	//
	if p.hasMin && q.hasMax {
		r.setMin(&ir.Sub{A: p.min, B: q.max})
	}
	//
	if p.hasMax && q.hasMin {
		r.setMax(&ir.Sub{A: p.max, B: q.min})
	}
	//
	return r
}

// Mul returns the enclosure of a*b for a in p, b in q.  When either operand is
// a single constant, the other is scaled (flipping ends for a negative
// factor).  When all four endpoints are constants the four products are
// compared directly.  Otherwise the sign of the operands is statically
// ambiguous and the result is unbounded on both ends.
func (p Interval) Mul(q Interval) Interval {
	if c, ok := q.constPoint(); ok {
		return p.scale(c)
	} else if c, ok := p.constPoint(); ok {
		return q.scale(c)
	}
	//
	pa, pb, pok := p.constEndpoints()
	qa, qb, qok := q.constEndpoints()
	//
	if pok && qok {
		products := []int64{pa * qa, pa * qb, pb * qa, pb * qb}
		lo, hi := products[0], products[0]
		//
		for _, v := range products[1:] {
			lo, hi = min(lo, v), max(hi, v)
		}
		//
		return NewInterval64(lo, hi)
	}
	// Sign ambiguous
	return Everything()
}

// Div returns the enclosure of a/b for a in p, b in q.  The result is
// unbounded whenever the divisor can contain zero or has a statically
// ambiguous sign.
func (p Interval) Div(q Interval) Interval {
	if c, ok := q.constPoint(); ok && c != 0 {
		return p.divScale(c)
	}
	//
	pa, pb, pok := p.constEndpoints()
	qa, qb, qok := q.constEndpoints()
	// Divisor must exclude zero
	if pok && qok && (qa > 0 || qb < 0) {
		quotients := []int64{divFloor(pa, qa), divFloor(pa, qb), divFloor(pb, qa), divFloor(pb, qb)}
		lo, hi := quotients[0], quotients[0]
		//
		for _, v := range quotients[1:] {
			lo, hi = min(lo, v), max(hi, v)
		}
		//
		return NewInterval64(lo, hi)
	}
	//
	return Everything()
}

// Min returns the enclosure of min(a,b) for a in p, b in q, computed
// endpoint-wise.  Each end is bounded only when both operands are bounded on
// that end.
func (p Interval) Min(q Interval) Interval {
	var r Interval
	//
	if p.hasMin && q.hasMin {
		r.setMin(&ir.Min{A: p.min, B: q.min})
	}
	//
	if p.hasMax && q.hasMax {
		r.setMax(&ir.Min{A: p.max, B: q.max})
	}
	//
	return r
}

// Max returns the enclosure of max(a,b) for a in p, b in q, computed
// endpoint-wise.
func (p Interval) Max(q Interval) Interval {
	var r Interval
	//
	if p.hasMin && q.hasMin {
		r.setMin(&ir.Max{A: p.min, B: q.min})
	}
	//
	if p.hasMax && q.hasMax {
		r.setMax(&ir.Max{A: p.max, B: q.max})
	}
	//
	return r
}

// Union returns the enclosure of both p and q.
func (p Interval) Union(q Interval) Interval {
	var r Interval
	//
	if p.hasMin && q.hasMin {
		r.setMin(&ir.Min{A: p.min, B: q.min})
	}
	//
	if p.hasMax && q.hasMax {
		r.setMax(&ir.Max{A: p.max, B: q.max})
	}
	//
	return r
}

// Within determines whether p is contained in q, insofar as that is decidable
// by constant comparison and syntactic equality.  The second result reports
// decidability; callers requiring a definite answer must arrange for constant
// endpoints.
func (p Interval) Within(q Interval) (within bool, decidable bool) {
	lo, lok := true, true
	hi, hok := true, true
	// Lower side: q.min <= p.min required unless q is unbounded below.
	if q.hasMin {
		if !p.hasMin {
			lo = false
		} else {
			lo, lok = exprLE(q.min, p.min)
		}
	}
	// Upper side: p.max <= q.max required unless q is unbounded above.
	if q.hasMax {
		if !p.hasMax {
			hi = false
		} else {
			hi, hok = exprLE(p.max, q.max)
		}
	}
	//
	return lo && hi, lok && hok
}

func (p Interval) String() string {
	lo, hi := "-inf", "+inf"
	//
	if p.hasMin {
		lo = p.min.String()
	}
	//
	if p.hasMax {
		hi = p.max.String()
	}
	//
	return fmt.Sprintf("[%s, %s]", lo, hi)
}

func (p *Interval) setMin(e ir.Expr) {
	p.min, p.hasMin = ir.Fold(e), true
}

func (p *Interval) setMax(e ir.Expr) {
	p.max, p.hasMax = ir.Fold(e), true
}

// constPoint extracts the constant value of a single-point interval.
func (p Interval) constPoint() (int64, bool) {
	a, b, ok := p.constEndpoints()
	//
	if ok && a == b {
		return a, true
	}
	//
	return 0, false
}

// constEndpoints extracts both endpoints when bounded and constant.
func (p Interval) constEndpoints() (int64, int64, bool) {
	if !p.IsBounded() {
		return 0, 0, false
	}
	//
	a, aok := p.min.(*ir.Const)
	b, bok := p.max.(*ir.Const)
	//
	if aok && bok {
		return a.Value, b.Value, true
	}
	//
	return 0, 0, false
}

// scale multiplies both endpoints by a known constant, swapping ends when the
// constant is negative.
func (p Interval) scale(c int64) Interval {
	var r Interval
	//
	switch {
	case c >= 0:
		if p.hasMin {
			r.setMin(&ir.Mul{A: p.min, B: ir.NewConst(c)})
		}
		//
		if p.hasMax {
			r.setMax(&ir.Mul{A: p.max, B: ir.NewConst(c)})
		}
	default:
		if p.hasMax {
			r.setMin(&ir.Mul{A: p.max, B: ir.NewConst(c)})
		}
		//
		if p.hasMin {
			r.setMax(&ir.Mul{A: p.min, B: ir.NewConst(c)})
		}
	}
	//
	return r
}

// divScale divides both endpoints by a known non-zero constant, swapping ends
// when the constant is negative.
func (p Interval) divScale(c int64) Interval {
	var r Interval
	//
	switch {
	case c > 0:
		if p.hasMin {
			r.setMin(&ir.Div{A: p.min, B: ir.NewConst(c)})
		}
		//
		if p.hasMax {
			r.setMax(&ir.Div{A: p.max, B: ir.NewConst(c)})
		}
	default:
		if p.hasMax {
			r.setMin(&ir.Div{A: p.max, B: ir.NewConst(c)})
		}
		//
		if p.hasMin {
			r.setMax(&ir.Div{A: p.min, B: ir.NewConst(c)})
		}
	}
	//
	return r
}

// exprLE decides "a <= b" for two symbolic endpoints, insofar as constant
// comparison or syntactic equality permits.
func exprLE(a ir.Expr, b ir.Expr) (holds bool, decidable bool) {
	ca, aok := a.(*ir.Const)
	cb, bok := b.(*ir.Const)
	//
	if aok && bok {
		return ca.Value <= cb.Value, true
	} else if ir.Equal(a, b) {
		return true, true
	}
	//
	return false, false
}

// divFloor rounds towards negative infinity, matching expression folding.
func divFloor(a int64, b int64) int64 {
	q := a / b
	//
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	//
	return q
}
