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

import "fmt"

// Equal determines whether two expressions are syntactically identical.
// Semantically equal but structurally different expressions (e.g. "(x + 1)"
// versus "(1 + x)") are not considered equal.
func Equal(a Expr, b Expr) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return false
	}
	//
	switch ae := a.(type) {
	case *Const:
		be, ok := b.(*Const)
		return ok && ae.Value == be.Value
	case *Var:
		be, ok := b.(*Var)
		return ok && ae.Name == be.Name
	case *Add:
		be, ok := b.(*Add)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *Sub:
		be, ok := b.(*Sub)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *Mul:
		be, ok := b.(*Mul)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *Div:
		be, ok := b.(*Div)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *Min:
		be, ok := b.(*Min)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *Max:
		be, ok := b.(*Max)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *LT:
		be, ok := b.(*LT)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *LE:
		be, ok := b.(*LE)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *GT:
		be, ok := b.(*GT)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *GE:
		be, ok := b.(*GE)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *EQ:
		be, ok := b.(*EQ)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *NE:
		be, ok := b.(*NE)
		return ok && Equal(ae.A, be.A) && Equal(ae.B, be.B)
	case *Select:
		be, ok := b.(*Select)
		return ok && Equal(ae.Cond, be.Cond) && Equal(ae.True, be.True) && Equal(ae.False, be.False)
	case *Call:
		be, ok := b.(*Call)
		return ok && ae.Name == be.Name && equalExprs(ae.Args, be.Args)
	case *Let:
		be, ok := b.(*Let)
		return ok && ae.Name == be.Name && Equal(ae.Value, be.Value) && Equal(ae.Body, be.Body)
	default:
		panic(fmt.Sprintf("unknown expression %s", a))
	}
}

func equalExprs(as []Expr, bs []Expr) bool {
	if len(as) != len(bs) {
		return false
	}
	//
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	// Done
	return true
}
