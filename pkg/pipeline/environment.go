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
package pipeline

import "github.com/Grandlook/Halide-l0/pkg/ir/interval"

// Environment maps function names to their full definitions.  It is the
// read-only lookup table threaded through every lowering pass.
type Environment map[string]*Func

// Lookup resolves a function by name.
func (p Environment) Lookup(name string) (*Func, bool) {
	fn, ok := p[name]
	return fn, ok
}

// StageKey identifies one stage of one function: stage 0 is the pure
// definition, stages >= 1 the successive updates.
type StageKey struct {
	Func  string
	Stage int
}

// FuncBounds holds externally-supplied region overrides, keyed by stage.
// When present for a stage, the override takes precedence over anything
// inference would compute; this is also how the pipeline's outputs are
// seeded, since nothing downstream constrains them.
type FuncBounds map[StageKey]interval.Box

// Lookup resolves the override for a given stage, if any.
func (p FuncBounds) Lookup(name string, stage int) (interval.Box, bool) {
	box, ok := p[StageKey{name, stage}]
	return box, ok
}

// Target describes the machine being compiled for.  Bounds inference carries
// it through untouched; only downstream passes consult it.
type Target struct {
	OS       string
	Arch     string
	Features []string
}
