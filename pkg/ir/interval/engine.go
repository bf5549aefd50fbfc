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
package interval

import (
	"fmt"

	"github.com/Grandlook/Halide-l0/pkg/ir"
)

// CallRanger resolves the value range of a point access into another stage,
// given the intervals of its index arguments.  It is how the engine learns
// about the pipeline without this package depending on stage metadata; an
// implementation which has no information simply returns Everything.
type CallRanger interface {
	CallRange(name string, args []Interval) Interval
}

// UnresolvedVariableError indicates an expression referenced a variable with
// no known interval in any enclosing scope.
type UnresolvedVariableError struct {
	Name string
}

func (p *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("unresolved variable \"%s\"", p.Name)
}

// Engine computes sound symbolic enclosures for whole expressions.  It is
// total over the tree's node kinds: every expression either yields an
// interval (possibly unbounded) or fails with an UnresolvedVariableError.
type Engine struct {
	simplifier ir.Simplifier
	calls      CallRanger
}

// NewEngine constructs an engine resolving call value ranges through the
// given ranger (which may be nil) and canonicalising through the default
// constant folder.
func NewEngine(calls CallRanger) *Engine {
	return &Engine{ir.Folder{}, calls}
}

// Of computes the interval enclosing every value e can take, with each free
// variable resolved to its interval from the given scope.
func (p *Engine) Of(e ir.Expr, scope *Scope) (Interval, error) {
	switch t := e.(type) {
	case *ir.Const:
		return Point(t), nil
	case *ir.Var:
		if iv, ok := scope.Lookup(t.Name); ok {
			return iv, nil
		}
		//
		return Interval{}, &UnresolvedVariableError{t.Name}
	case *ir.Add:
		return p.binary(t.A, t.B, scope, Interval.Add)
	case *ir.Sub:
		return p.binary(t.A, t.B, scope, Interval.Sub)
	case *ir.Mul:
		return p.binary(t.A, t.B, scope, Interval.Mul)
	case *ir.Div:
		return p.binary(t.A, t.B, scope, Interval.Div)
	case *ir.Min:
		return p.binary(t.A, t.B, scope, Interval.Min)
	case *ir.Max:
		return p.binary(t.A, t.B, scope, Interval.Max)
	case *ir.LT:
		return p.boolean(t.A, t.B, scope)
	case *ir.LE:
		return p.boolean(t.A, t.B, scope)
	case *ir.GT:
		return p.boolean(t.A, t.B, scope)
	case *ir.GE:
		return p.boolean(t.A, t.B, scope)
	case *ir.EQ:
		return p.boolean(t.A, t.B, scope)
	case *ir.NE:
		return p.boolean(t.A, t.B, scope)
	case *ir.Select:
		// The predicate never narrows either arm, but is still traversed so
		// that a malformed condition surfaces as an error.
		if _, err := p.Of(t.Cond, scope); err != nil {
			return Interval{}, err
		}
		//
		return p.binary(t.True, t.False, scope, Interval.Union)
	case *ir.Call:
		args := make([]Interval, len(t.Args))
		//
		for i, arg := range t.Args {
			iv, err := p.Of(arg, scope)
			if err != nil {
				return Interval{}, err
			}
			//
			args[i] = iv
		}
		//
		if p.calls == nil {
			return Everything(), nil
		}
		// Done
		return p.calls.CallRange(t.Name, args), nil
	case *ir.Let:
		value, err := p.Of(t.Value, scope)
		if err != nil {
			return Interval{}, err
		}
		// Done
		return p.Of(t.Body, scope.Bind(t.Name, value))
	default:
		panic(fmt.Sprintf("unknown expression %s", e))
	}
}

// binary bounds both operands and combines them with the given interval
// operation.
func (p *Engine) binary(a ir.Expr, b ir.Expr, scope *Scope,
	op func(Interval, Interval) Interval) (Interval, error) {
	//
	ia, err := p.Of(a, scope)
	if err != nil {
		return Interval{}, err
	}
	//
	ib, err := p.Of(b, scope)
	if err != nil {
		return Interval{}, err
	}
	// Done
	return p.canon(op(ia, ib)), nil
}

// canon runs both endpoints through the configured simplifier.
func (p *Engine) canon(iv Interval) Interval {
	if iv.hasMin {
		iv.min = p.simplifier.Simplify(iv.min)
	}
	//
	if iv.hasMax {
		iv.max = p.simplifier.Simplify(iv.max)
	}
	//
	return iv
}

// boolean bounds a comparison, whose value is one of {0, 1}.  Both operands
// are still traversed so unresolved variables are reported.
func (p *Engine) boolean(a ir.Expr, b ir.Expr, scope *Scope) (Interval, error) {
	if _, err := p.Of(a, scope); err != nil {
		return Interval{}, err
	} else if _, err := p.Of(b, scope); err != nil {
		return Interval{}, err
	}
	//
	return NewInterval64(0, 1), nil
}
