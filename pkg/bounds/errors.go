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

import "fmt"

// ErrorKind classifies the ways bounds inference can reject a pipeline.
// Internal inconsistencies (e.g. a box union over mismatched dimensionality)
// are not errors of this kind; those panic, since they indicate a bug in the
// lowering pipeline rather than anything the user wrote.
type ErrorKind uint8

const (
	// MissingOutputBound indicates an output stage without an
	// externally-supplied bound, leaving inference nothing to seed from.
	MissingOutputBound ErrorKind = iota
	// UnresolvedVariable indicates a call-site argument referencing a
	// variable with no known interval in any enclosing scope.
	UnresolvedVariable
	// UnboundedRegion indicates a stage whose required region could not be
	// bounded on some dimension, and which was not scheduled with unbounded
	// storage.
	UnboundedRegion
	// InconsistentFusion indicates fused-group members whose dimensionality
	// disagrees, so no shared loop nest can cover them.
	InconsistentFusion
	// UnknownFunction indicates a realization-order entry missing from the
	// environment.
	UnknownFunction
)

// InferenceError is a compile error produced by bounds inference.  The pass
// fails with the first such error encountered; no partially-bound tree is
// ever returned alongside one.
type InferenceError struct {
	Kind   ErrorKind
	Func   string
	Stage  int
	Detail string
}

func (p *InferenceError) Error() string {
	switch p.Kind {
	case MissingOutputBound:
		return fmt.Sprintf("output \"%s\" has no explicit bounds", p.Func)
	case UnresolvedVariable:
		return fmt.Sprintf("in \"%s\" (stage %d): %s", p.Func, p.Stage, p.Detail)
	case UnboundedRegion:
		return fmt.Sprintf("compiler could not infer bounds for \"%s\": %s", p.Func, p.Detail)
	case InconsistentFusion:
		return fmt.Sprintf("fused group containing \"%s\" is inconsistent: %s", p.Func, p.Detail)
	case UnknownFunction:
		return fmt.Sprintf("realization order names unknown function \"%s\"", p.Func)
	default:
		return fmt.Sprintf("bounds inference failed for \"%s\": %s", p.Func, p.Detail)
	}
}
