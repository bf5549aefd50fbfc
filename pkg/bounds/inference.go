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

// Package bounds implements the bounds inference lowering pass.  Given a
// partially-lowered tree whose realize nodes carry symbolic placeholder
// bounds, it determines the exact region each stage must produce so that
// every consumer's accesses are satisfied, and injects let bindings defining
// those bounds.  The pass is a pure tree-to-tree transform: it never mutates
// its inputs, and it either returns a fully-bound tree or fails with the
// first compile error encountered.
package bounds

import (
	"fmt"
	"sort"

	"github.com/Grandlook/Halide-l0/pkg/ir"
	"github.com/Grandlook/Halide-l0/pkg/ir/interval"
	"github.com/Grandlook/Halide-l0/pkg/pipeline"
	log "github.com/sirupsen/logrus"
)

// MinName returns the name of the bound binding fixing the minimum of the
// given dimension of a stage.  Partially-lowered trees reference these names
// as placeholders in their realize bounds.
func MinName(fn string, dim int) string {
	return fmt.Sprintf("%s.min.%d", fn, dim)
}

// ExtentName returns the name of the bound binding fixing the extent of the
// given dimension of a stage.
func ExtentName(fn string, dim int) string {
	return fmt.Sprintf("%s.extent.%d", fn, dim)
}

// Infer runs bounds inference over a partially-lowered tree.  The outputs are
// the stages whose results leave the pipeline; the realization order is a
// total order over stage names consistent with the dependency DAG and with
// fusion-group contiguity; funcBounds supplies externally-declared regions,
// which every output must have.  The target is carried for downstream passes
// and does not affect inference.
func Infer(stmt ir.Stmt, outputs []string, order []string, fusedGroups [][]string,
	env pipeline.Environment, funcBounds pipeline.FuncBounds, target pipeline.Target) (ir.Stmt, error) {
	//
	stmt, _, err := InferWithReport(stmt, outputs, order, fusedGroups, env, funcBounds, target)
	//
	return stmt, err
}

// InferWithReport behaves as Infer, additionally reporting the region settled
// on for every realized stage.
func InferWithReport(stmt ir.Stmt, outputs []string, order []string, fusedGroups [][]string,
	env pipeline.Environment, funcBounds pipeline.FuncBounds,
	target pipeline.Target) (ir.Stmt, *Report, error) {
	//
	log.Debugf("bounds inference over %d stages (target %s/%s)", len(order), target.OS, target.Arch)
	//
	inf := &inferer{
		prop:      newPropagator(env),
		env:       env,
		overrides: funcBounds,
		status:    make(map[string]stageStatus),
		boxes:     make(map[string]interval.Box),
		outputs:   make(map[string]bool),
	}
	//
	for _, out := range outputs {
		inf.outputs[out] = true
	}
	//
	groups := groupRealizations(order, fusedGroups)
	// Outputs come last in realization order; walking the groups backward
	// therefore reaches every consumer before any of its producers, so each
	// stage's required region is complete by the time it is visited.
	for k := len(groups) - 1; k >= 0; k-- {
		var err error
		//
		if stmt, err = inf.processGroup(stmt, groups[k]); err != nil {
			return nil, nil, err
		}
	}
	// Done
	return stmt, inf.report(groups), nil
}

// stageStatus tracks each stage through the pass: regions are accumulated
// from consumers first, then the stage's bindings are injected exactly once.
type stageStatus uint8

const (
	unvisited stageStatus = iota
	regionAccumulated
	injected
)

// inferer is the per-invocation state of one pass: the in-progress region
// accumulator and the status machine.  It never escapes an Infer call.
type inferer struct {
	prop      *propagator
	env       pipeline.Environment
	overrides pipeline.FuncBounds
	status    map[string]stageStatus
	boxes     map[string]interval.Box
	outputs   map[string]bool
}

// processGroup finalizes the regions of every member of one fused group (or
// of a single unfused stage), injects their bindings, and then accumulates
// the regions the members require of their own producers.
func (p *inferer) processGroup(stmt ir.Stmt, members []string) (ir.Stmt, error) {
	var (
		finalized = make([]interval.Box, len(members))
		active    = make([]bool, len(members))
	)
	// Finalize each member's own region.
	for idx, m := range members {
		fn, ok := p.env.Lookup(m)
		if !ok {
			return nil, &InferenceError{Kind: UnknownFunction, Func: m}
		}
		//
		box, err := p.finalize(fn)
		if err != nil {
			return nil, err
		} else if box == nil {
			// Never consumed and not an output, hence never realized.
			log.Debugf("%s has no consumers, skipping", m)
			p.status[m] = injected
			//
			continue
		}
		//
		finalized[idx], active[idx] = box, true
	}
	// Union across the group: one shared loop nest cannot have
	// per-member-differing bounds.
	if len(members) > 1 {
		if err := unifyGroup(members, finalized, active); err != nil {
			return nil, err
		}
	}
	// Inject bindings, fixing each member's bounds.
	for idx, m := range members {
		if !active[idx] {
			continue
		}
		//
		log.Debugf("inferred region for %s: %s", m, finalized[idx])
		//
		p.boxes[m] = finalized[idx]
		stmt = injectBounds(stmt, m, finalized[idx])
		p.status[m] = injected
	}
	// Now treat each member as a consumer, accumulating the regions its own
	// definitions demand of its producers.
	for idx, m := range members {
		if !active[idx] {
			continue
		}
		//
		fn, _ := p.env.Lookup(m)
		//
		required, err := p.prop.required(fn, finalized[idx])
		if err != nil {
			return nil, err
		}
		//
		for _, callee := range sortedKeys(required) {
			if p.status[callee] == injected {
				panic(fmt.Sprintf("realization order places %s before its consumer %s", callee, m))
			}
			//
			p.boxes[callee] = p.boxes[callee].Union(required[callee])
			p.status[callee] = regionAccumulated
		}
	}
	// Done
	return stmt, nil
}

// finalize settles the region of one stage: externally-declared bounds take
// precedence over anything accumulated from consumers, outputs must have
// them, and reduction self-reads widen the result.  A nil box (with nil
// error) means the stage is never realized.
func (p *inferer) finalize(fn *pipeline.Func) (interval.Box, error) {
	var box interval.Box
	//
	if declared, ok := p.overrides.Lookup(fn.Name, 0); ok {
		box = declared
	} else if p.outputs[fn.Name] {
		return nil, &InferenceError{Kind: MissingOutputBound, Func: fn.Name}
	} else if box = p.boxes[fn.Name]; box == nil {
		return nil, nil
	}
	//
	if len(box) != fn.Dimensions() {
		panic(fmt.Sprintf("box for %s has %d dimensions, expected %d",
			fn.Name, len(box), fn.Dimensions()))
	}
	// Fold in regions the stage's own updates read back from it.
	box, err := p.prop.selfGrow(fn, box)
	if err != nil {
		return nil, err
	}
	// Reject unbounded regions, unless unbounded storage was granted.
	for d, iv := range box {
		if !iv.IsBounded() && !fn.Sched.AllowUnbounded {
			detail := fmt.Sprintf("required region is unbounded in dimension %d", d)
			return nil, &InferenceError{UnboundedRegion, fn.Name, 0, detail}
		}
	}
	// Done
	return box, nil
}

// unifyGroup replaces every active member's box with the dimension-wise union
// across the group.  Members of a fused group must agree on dimensionality,
// since they share a single loop nest.
func unifyGroup(members []string, finalized []interval.Box, active []bool) error {
	var shared interval.Box
	//
	for idx, m := range members {
		if !active[idx] {
			continue
		}
		//
		if shared != nil && len(shared) != len(finalized[idx]) {
			detail := fmt.Sprintf("%s has %d dimensions where other members have %d",
				m, len(finalized[idx]), len(shared))
			//
			return &InferenceError{Kind: InconsistentFusion, Func: m, Detail: detail}
		}
		//
		shared = shared.Union(finalized[idx])
	}
	//
	for idx := range finalized {
		if active[idx] {
			finalized[idx] = shared
		}
	}
	// Done
	return nil
}

// injectBounds wraps the innermost scope dominating every use of a stage with
// the let bindings defining its bounds.  That scope is the stage's realize
// node, which by construction encloses every produce and consume of the
// stage; outputs have no realize node, so their bindings wrap the root.
func injectBounds(stmt ir.Stmt, name string, box interval.Box) ir.Stmt {
	found := false
	//
	stmt = ir.RewriteStmt(stmt, func(s ir.Stmt) ir.Stmt {
		if r, ok := s.(*ir.Realize); ok && r.Name == name {
			found = true
			return wrapBindings(r, name, box)
		}
		//
		return s
	})
	//
	if !found {
		stmt = wrapBindings(stmt, name, box)
	}
	// Done
	return stmt
}

// wrapBindings introduces one (min, extent) binding pair per dimension around
// the given statement.  Dimensions left unbounded (permitted only for stages
// granted unbounded storage) receive no bindings.
func wrapBindings(body ir.Stmt, name string, box interval.Box) ir.Stmt {
	for d := len(box) - 1; d >= 0; d-- {
		iv := box[d]
		//
		if !iv.IsBounded() {
			continue
		}
		//
		body = &ir.LetStmt{
			Name:  MinName(name, d),
			Value: iv.MinValue(),
			Body: &ir.LetStmt{
				Name:  ExtentName(name, d),
				Value: iv.Extent(),
				Body:  body,
			},
		}
	}
	// Done
	return body
}

// groupRealizations partitions the realization order into maximal runs of
// stages sharing a fusion group; unfused stages form singleton runs.  Fusion
// groups are contiguous in any valid realization order.
func groupRealizations(order []string, fusedGroups [][]string) [][]string {
	groupOf := make(map[string]int)
	//
	for g, members := range fusedGroups {
		for _, m := range members {
			groupOf[m] = g
		}
	}
	//
	var groups [][]string
	//
	for i := 0; i < len(order); {
		g, fused := groupOf[order[i]]
		j := i + 1
		//
		for fused && j < len(order) {
			if h, ok := groupOf[order[j]]; !ok || h != g {
				break
			}
			//
			j++
		}
		//
		groups = append(groups, order[i:j])
		i = j
	}
	// Done
	return groups
}

func sortedKeys(m map[string]interval.Box) []string {
	keys := make([]string, 0, len(m))
	//
	for k := range m {
		keys = append(keys, k)
	}
	//
	sort.Strings(keys)
	// Done
	return keys
}
