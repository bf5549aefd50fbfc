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

import "strings"

// Box is an ordered sequence of intervals, one per dimension of a stage.  The
// nil box acts as the identity when folding boxes from zero or more call
// sites together.
type Box []Interval

// NewBox constructs a box from the given intervals, in dimension order.
func NewBox(dims ...Interval) Box {
	return Box(dims)
}

// Union merges two boxes dimension-wise.  A dimensionality mismatch between
// two non-empty boxes indicates a bug in the caller, hence the panic.  There
// is deliberately no intersection: regions only ever widen.
func (p Box) Union(q Box) Box {
	if p == nil {
		return q
	} else if q == nil {
		return p
	} else if len(p) != len(q) {
		panic("dimensionality mismatch in box union")
	}
	//
	r := make(Box, len(p))
	//
	for i := range p {
		r[i] = p[i].Union(q[i])
	}
	// Done
	return r
}

// IsBounded determines whether every dimension is bounded on both ends.
func (p Box) IsBounded() bool {
	for _, dim := range p {
		if !dim.IsBounded() {
			return false
		}
	}
	//
	return true
}

func (p Box) String() string {
	dims := make([]string, len(p))
	//
	for i, dim := range p {
		dims[i] = dim.String()
	}
	//
	return "{" + strings.Join(dims, " x ") + "}"
}
