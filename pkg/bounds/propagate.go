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
package bounds

import (
	"fmt"

	"github.com/Grandlook/Halide-l0/pkg/ir"
	"github.com/Grandlook/Halide-l0/pkg/ir/interval"
	"github.com/Grandlook/Halide-l0/pkg/pipeline"
	log "github.com/sirupsen/logrus"
)

// propagator computes, for one consumer at a time, the region of every
// producer its definitions touch.  It also serves as the engine's call
// ranger, deriving the value range of a call from the callee's pure
// definition.
type propagator struct {
	env    pipeline.Environment
	engine *interval.Engine
	// Guards against a call value range depending on itself, which would
	// otherwise recurse forever; such calls are simply unbounded.
	visiting map[string]bool
}

func newPropagator(env pipeline.Environment) *propagator {
	p := &propagator{env: env, visiting: make(map[string]bool)}
	p.engine = interval.NewEngine(p)
	//
	return p
}

// CallRange implementation for the interval.CallRanger interface.  The value
// range of a call is that of the callee's pure definition over the argument
// intervals.  Functions with updates, unknown functions and self-referential
// chains are all conservatively unbounded.
func (p *propagator) CallRange(name string, args []interval.Interval) interval.Interval {
	fn, ok := p.env.Lookup(name)
	//
	if !ok || len(fn.Stages) != 1 || fn.Pure().Value == nil || p.visiting[name] {
		// Input images and multi-stage functions have no derivable value
		// range.
		return interval.Everything()
	} else if len(args) != fn.Dimensions() {
		panic(fmt.Sprintf("call to %s has %d arguments, expected %d", name, len(args), fn.Dimensions()))
	}
	//
	var scope *interval.Scope
	//
	for i, dim := range fn.Dims {
		scope = scope.Bind(dim, args[i])
	}
	//
	p.visiting[name] = true
	iv, err := p.engine.Of(fn.Pure().Value, scope)
	delete(p.visiting, name)
	// An unresolvable value is not an error here, merely unknowable.
	if err != nil {
		return interval.Everything()
	}
	// Done
	return iv
}

// required computes the box of arguments passed to every producer referenced
// from the consumer's definitions, where the consumer's own dimensions range
// over the given box.  Call sites are enumerated across every stage of the
// consumer, including update stages, and unioned per producer.  Calls from a
// function back into itself are excluded here; those are folded into the
// function's own region by selfGrow before its bounds are fixed.
func (p *propagator) required(consumer *pipeline.Func, box interval.Box) (map[string]interval.Box, error) {
	regions := make(map[string]interval.Box)
	//
	for si := range consumer.Stages {
		if err := p.stageRegions(consumer, si, box, regions); err != nil {
			return nil, err
		}
	}
	//
	delete(regions, consumer.Name)
	// Done
	return regions, nil
}

// selfGrow widens a function's box by its own update stages' access pattern:
// the coordinates each update writes to, and any region it reads back from
// the function itself.  Reduction updates can access already-computed output,
// so the pure stage must cover both every external consumer and the
// reduction's own footprint.
func (p *propagator) selfGrow(fn *pipeline.Func, box interval.Box) (interval.Box, error) {
	regions := make(map[string]interval.Box)
	//
	for si := 1; si < len(fn.Stages); si++ {
		stage := &fn.Stages[si]
		//
		if err := p.stageRegions(fn, si, box, regions); err != nil {
			return nil, err
		}
		// Write footprint: the left-hand-side coordinates themselves.
		scope, err := p.stageScope(fn, stage, box)
		if err != nil {
			return nil, p.siteError(fn.Name, si, err)
		}
		//
		if len(stage.Args) != fn.Dimensions() {
			panic(fmt.Sprintf("update %d of %s has %d coordinates, expected %d",
				si, fn.Name, len(stage.Args), fn.Dimensions()))
		}
		//
		written := make(interval.Box, len(stage.Args))
		//
		for d, arg := range stage.Args {
			iv, err := p.engine.Of(arg, scope)
			if err != nil {
				return nil, p.siteError(fn.Name, si, err)
			}
			//
			written[d] = iv
		}
		//
		log.Debugf("%s (stage %d) writes %s", fn.Name, si, written)
		box = box.Union(written)
	}
	//
	if selfBox, ok := regions[fn.Name]; ok {
		log.Debugf("%s reads itself over %s", fn.Name, selfBox)
		box = box.Union(selfBox)
	}
	// Done
	return box, nil
}

// stageRegions accumulates the regions touched by one stage of a consumer
// into the given map.  Every call site in the stage's coordinate and value
// expressions contributes, including calls nested inside other calls'
// arguments and calls under let bindings.
func (p *propagator) stageRegions(consumer *pipeline.Func, si int, box interval.Box,
	regions map[string]interval.Box) error {
	//
	stage := &consumer.Stages[si]
	//
	scope, err := p.stageScope(consumer, stage, box)
	if err != nil {
		return p.siteError(consumer.Name, si, err)
	}
	//
	for _, arg := range stage.Args {
		if err := p.exprRegions(arg, scope, regions); err != nil {
			return p.siteError(consumer.Name, si, err)
		}
	}
	//
	if stage.Value != nil {
		if err := p.exprRegions(stage.Value, scope, regions); err != nil {
			return p.siteError(consumer.Name, si, err)
		}
	}
	// Done
	return nil
}

// stageScope builds the symbolic environment of one stage of a consumer: the
// pure dimension variables range over the consumer's box, and any reduction
// variables over their declared [min, min+extent-1] domains.
func (p *propagator) stageScope(consumer *pipeline.Func, stage *pipeline.Definition,
	box interval.Box) (*interval.Scope, error) {
	//
	if len(box) != consumer.Dimensions() {
		panic(fmt.Sprintf("box for %s has %d dimensions, expected %d",
			consumer.Name, len(box), consumer.Dimensions()))
	}
	//
	var scope *interval.Scope
	//
	for i, dim := range consumer.Dims {
		scope = scope.Bind(dim, box[i])
	}
	// Reduction variables may reference the pure variables, as well as any
	// reduction variable declared before them.
	for _, rv := range stage.RDom {
		last := &ir.Sub{A: &ir.Add{A: rv.Min, B: rv.Extent}, B: ir.NewConst(1)}
		//
		lo, err := p.engine.Of(rv.Min, scope)
		if err != nil {
			return nil, err
		}
		//
		hi, err := p.engine.Of(last, scope)
		if err != nil {
			return nil, err
		}
		//
		scope = scope.Bind(rv.Name, interval.Span(lo, hi))
	}
	// Done
	return scope, nil
}

// exprRegions walks an expression, unioning into regions the box of arguments
// passed at every call site to a pipeline stage.  The scope is extended as
// let bindings are crossed, so nested call arguments always resolve.
func (p *propagator) exprRegions(e ir.Expr, scope *interval.Scope,
	regions map[string]interval.Box) error {
	//
	switch t := e.(type) {
	case *ir.Const, *ir.Var:
		// leaves
	case *ir.Add:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.Sub:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.Mul:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.Div:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.Min:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.Max:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.LT:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.LE:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.GT:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.GE:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.EQ:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.NE:
		return p.exprRegions2(t.A, t.B, scope, regions)
	case *ir.Select:
		if err := p.exprRegions(t.Cond, scope, regions); err != nil {
			return err
		}
		//
		return p.exprRegions2(t.True, t.False, scope, regions)
	case *ir.Call:
		// Nested calls inside the arguments contribute their own regions.
		for _, arg := range t.Args {
			if err := p.exprRegions(arg, scope, regions); err != nil {
				return err
			}
		}
		// Only calls to pipeline stages have a region to track; anything else
		// (e.g. an external primitive) has no realization.
		if fn, ok := p.env.Lookup(t.Name); ok {
			box, err := p.callBox(t, fn, scope)
			if err != nil {
				return err
			}
			//
			log.Debugf("call %s touches %s", t, box)
			regions[t.Name] = regions[t.Name].Union(box)
		}
	case *ir.Let:
		if err := p.exprRegions(t.Value, scope, regions); err != nil {
			return err
		}
		//
		iv, err := p.engine.Of(t.Value, scope)
		if err != nil {
			return err
		}
		//
		return p.exprRegions(t.Body, scope.Bind(t.Name, iv), regions)
	default:
		panic(fmt.Sprintf("unknown expression %s", e))
	}
	// Done
	return nil
}

func (p *propagator) exprRegions2(a ir.Expr, b ir.Expr, scope *interval.Scope,
	regions map[string]interval.Box) error {
	//
	if err := p.exprRegions(a, scope, regions); err != nil {
		return err
	}
	//
	return p.exprRegions(b, scope, regions)
}

// callBox bounds each argument of a call dimension-wise.
func (p *propagator) callBox(call *ir.Call, fn *pipeline.Func, scope *interval.Scope) (interval.Box, error) {
	if len(call.Args) != fn.Dimensions() {
		panic(fmt.Sprintf("call to %s has %d arguments, expected %d",
			call.Name, len(call.Args), fn.Dimensions()))
	}
	//
	box := make(interval.Box, len(call.Args))
	//
	for d, arg := range call.Args {
		iv, err := p.engine.Of(arg, scope)
		if err != nil {
			return nil, err
		}
		//
		box[d] = iv
	}
	// Done
	return box, nil
}

// siteError converts engine failures into compile errors carrying the
// consumer and stage they arose in.
func (p *propagator) siteError(consumer string, stage int, err error) error {
	if uv, ok := err.(*interval.UnresolvedVariableError); ok {
		return &InferenceError{UnresolvedVariable, consumer, stage, uv.Error()}
	}
	//
	return err
}
