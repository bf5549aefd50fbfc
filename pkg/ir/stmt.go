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

// Range describes one dimension of a realization as a (min, extent) pair.  In
// a partially-lowered tree both components are typically placeholder variables
// (e.g. "f.min.0") which bounds inference later defines via let bindings.
type Range struct {
	Min    Expr
	Extent Expr
}

// LetStmt binds a name to a scalar value within the body statement.  Bound
// bindings injected by bounds inference are LetStmt nodes.
type LetStmt struct {
	Name  string
	Value Expr
	Body  Stmt
}

// For represents a serial loop over [Min, Min+Extent-1].
type For struct {
	Name   string
	Min    Expr
	Extent Expr
	Body   Stmt
}

// Block represents a sequence of statements executed in order.
type Block struct{ Stmts []Stmt }

// Realize marks the scope within which storage for a stage exists.  Every
// produce and consume of that stage sits inside its realize node.
type Realize struct {
	Name   string
	Bounds []Range
	Body   Stmt
}

// Produce marks the scope in which a stage's values are computed.
type Produce struct {
	Name string
	Body Stmt
}

// Provide represents a store of a value into a stage at the given coordinates.
type Provide struct {
	Name  string
	Args  []Expr
	Value Expr
}

// Evaluate represents an expression evaluated for effect only.
type Evaluate struct{ Value Expr }

func (p *LetStmt) stmtNode()  {}
func (p *For) stmtNode()      {}
func (p *Block) stmtNode()    {}
func (p *Realize) stmtNode()  {}
func (p *Produce) stmtNode()  {}
func (p *Provide) stmtNode()  {}
func (p *Evaluate) stmtNode() {}

func (p *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s { %s }", p.Name, p.Value, p.Body)
}

func (p *For) String() string {
	return fmt.Sprintf("for %s in [%s, %s) { %s }", p.Name, p.Min, p.Extent, p.Body)
}

func (p *Block) String() string {
	stmts := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		stmts[i] = s.String()
	}
	//
	return strings.Join(stmts, "; ")
}

func (p *Realize) String() string {
	bounds := make([]string, len(p.Bounds))
	for i, b := range p.Bounds {
		bounds[i] = fmt.Sprintf("[%s, %s)", b.Min, b.Extent)
	}
	//
	return fmt.Sprintf("realize %s(%s) { %s }", p.Name, strings.Join(bounds, ", "), p.Body)
}

func (p *Produce) String() string {
	return fmt.Sprintf("produce %s { %s }", p.Name, p.Body)
}

func (p *Provide) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	//
	return fmt.Sprintf("%s(%s) = %s", p.Name, strings.Join(args, ", "), p.Value)
}

func (p *Evaluate) String() string {
	return fmt.Sprintf("evaluate %s", p.Value)
}
