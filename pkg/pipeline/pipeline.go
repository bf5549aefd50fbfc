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

// Package pipeline describes the stages of a pipeline as the bounds inference
// pass sees them: read-only metadata built by the front end and the schedule
// resolver.  Nothing in this package is mutated during lowering.
package pipeline

import (
	"fmt"

	"github.com/Grandlook/Halide-l0/pkg/ir"
)

// ReductionVar is one dimension of an update definition's reduction domain,
// ranging over [Min, Min+Extent-1].
type ReductionVar struct {
	Name   string
	Min    ir.Expr
	Extent ir.Expr
}

// Definition is a single stage of a function: stage 0 is the pure definition,
// stages >= 1 are successive updates.  A pure definition stores Value at every
// point of the function's domain; an update stores Value at the coordinates
// given by Args, which may themselves contain calls (including calls back into
// the function being updated).
type Definition struct {
	// Left-hand-side coordinate expressions.  Nil for the pure definition,
	// whose coordinates are implicitly the function's dimension variables.
	Args []ir.Expr
	// Right-hand-side value expression.
	Value ir.Expr
	// Reduction domain, empty for the pure definition.
	RDom []ReductionVar
}

// LoopLevel identifies a position in a loop nest at which a function is
// computed or stored.  The zero value means "at the root of the pipeline".
type LoopLevel struct {
	Func string
	Var  string
}

// IsRoot determines whether this level is the pipeline root.
func (p LoopLevel) IsRoot() bool {
	return p.Func == ""
}

// Schedule is the placement metadata of a function: where it is computed and
// stored, which fusion group it belongs to (empty for none), and whether it
// has been granted unbounded storage (in which case inference tolerates an
// unbounded required region instead of rejecting it).
type Schedule struct {
	ComputeAt      LoopLevel
	StoreAt        LoopLevel
	FusedGroup     string
	AllowUnbounded bool
}

// Func is one function of the pipeline, with all of its stages.
type Func struct {
	// Name uniquely identifies the function within the environment.
	Name string
	// Dims names the pure loop variables, one per dimension; its length is
	// the function's dimensionality.
	Dims []string
	// Stages holds the pure definition followed by any updates.
	Stages []Definition
	// Sched is the function's schedule placement.
	Sched Schedule
}

// Dimensions returns the dimensionality of this function.
func (p *Func) Dimensions() int {
	return len(p.Dims)
}

// Pure returns the pure (stage 0) definition.
func (p *Func) Pure() *Definition {
	if len(p.Stages) == 0 {
		panic(fmt.Sprintf("function %s has no pure definition", p.Name))
	}
	//
	return &p.Stages[0]
}

// Updates returns the update definitions (stages >= 1), which may be empty.
func (p *Func) Updates() []Definition {
	return p.Stages[1:]
}
