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

import (
	"fmt"
	"strings"
)

// Const represents an integer literal.
type Const struct{ Value int64 }

// Var represents a reference to a named scalar, such as a loop variable, a
// let-bound value, or a bound binding injected by a lowering pass.
type Var struct{ Name string }

// Add represents the sum of two expressions.
type Add struct{ A, B Expr }

// Sub represents the difference of two expressions.
type Sub struct{ A, B Expr }

// Mul represents the product of two expressions.
type Mul struct{ A, B Expr }

// Div represents the (integer) quotient of two expressions.
type Div struct{ A, B Expr }

// Min represents the lesser of two expressions.
type Min struct{ A, B Expr }

// Max represents the greater of two expressions.
type Max struct{ A, B Expr }

// LT represents a strict less-than comparison.
type LT struct{ A, B Expr }

// LE represents a less-than-or-equal comparison.
type LE struct{ A, B Expr }

// GT represents a strict greater-than comparison.
type GT struct{ A, B Expr }

// GE represents a greater-than-or-equal comparison.
type GE struct{ A, B Expr }

// EQ represents an equality comparison.
type EQ struct{ A, B Expr }

// NE represents a disequality comparison.
type NE struct{ A, B Expr }

// Select represents a conditional choice between two expressions.  Both arms
// are unconditionally part of the value range of the node.
type Select struct{ Cond, True, False Expr }

// Call represents a point access into another pipeline stage, with one index
// argument per dimension of the callee.
type Call struct {
	Name string
	Args []Expr
}

// Let binds a name to a value within the body expression.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

// NewConst constructs an integer literal.
func NewConst(value int64) *Const {
	return &Const{value}
}

// NewVar constructs a reference to a named scalar.
func NewVar(name string) *Var {
	return &Var{name}
}

func (p *Const) exprNode()  {}
func (p *Var) exprNode()    {}
func (p *Add) exprNode()    {}
func (p *Sub) exprNode()    {}
func (p *Mul) exprNode()    {}
func (p *Div) exprNode()    {}
func (p *Min) exprNode()    {}
func (p *Max) exprNode()    {}
func (p *LT) exprNode()     {}
func (p *LE) exprNode()     {}
func (p *GT) exprNode()     {}
func (p *GE) exprNode()     {}
func (p *EQ) exprNode()     {}
func (p *NE) exprNode()     {}
func (p *Select) exprNode() {}
func (p *Call) exprNode()   {}
func (p *Let) exprNode()    {}

func (p *Const) String() string { return fmt.Sprintf("%d", p.Value) }
func (p *Var) String() string   { return p.Name }
func (p *Add) String() string   { return fmt.Sprintf("(%s + %s)", p.A, p.B) }
func (p *Sub) String() string   { return fmt.Sprintf("(%s - %s)", p.A, p.B) }
func (p *Mul) String() string   { return fmt.Sprintf("(%s * %s)", p.A, p.B) }
func (p *Div) String() string   { return fmt.Sprintf("(%s / %s)", p.A, p.B) }
func (p *Min) String() string   { return fmt.Sprintf("min(%s, %s)", p.A, p.B) }
func (p *Max) String() string   { return fmt.Sprintf("max(%s, %s)", p.A, p.B) }
func (p *LT) String() string    { return fmt.Sprintf("(%s < %s)", p.A, p.B) }
func (p *LE) String() string    { return fmt.Sprintf("(%s <= %s)", p.A, p.B) }
func (p *GT) String() string    { return fmt.Sprintf("(%s > %s)", p.A, p.B) }
func (p *GE) String() string    { return fmt.Sprintf("(%s >= %s)", p.A, p.B) }
func (p *EQ) String() string    { return fmt.Sprintf("(%s == %s)", p.A, p.B) }
func (p *NE) String() string    { return fmt.Sprintf("(%s != %s)", p.A, p.B) }

func (p *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", p.Cond, p.True, p.False)
}

func (p *Call) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	//
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(args, ", "))
}

func (p *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", p.Name, p.Value, p.Body)
}
