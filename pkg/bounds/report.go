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
	"github.com/Grandlook/Halide-l0/pkg/ir/interval"
)

// RegionDim is one dimension of an inferred region, rendered symbolically.
type RegionDim struct {
	Min    string `json:"min"`
	Extent string `json:"extent"`
}

// Region is the inferred region of one realized stage.
type Region struct {
	Func string      `json:"func"`
	Dims []RegionDim `json:"dims"`
}

// Report summarises the outcome of one inference run: the region settled on
// for every realized stage, in realization order.
type Report struct {
	Regions []Region `json:"regions"`
	// Boxes holds the raw per-stage regions, for programmatic consumers such
	// as the containment checker.
	Boxes map[string]interval.Box `json:"-"`
}

// report assembles the final report, listing stages in realization order.
func (p *inferer) report(groups [][]string) *Report {
	r := &Report{Boxes: p.boxes}
	//
	for _, members := range groups {
		for _, m := range members {
			box, ok := p.boxes[m]
			if !ok {
				continue
			}
			//
			dims := make([]RegionDim, len(box))
			//
			for d, iv := range box {
				if iv.IsBounded() {
					dims[d] = RegionDim{iv.MinValue().String(), iv.Extent().String()}
				} else {
					dims[d] = RegionDim{iv.String(), "unbounded"}
				}
			}
			//
			r.Regions = append(r.Regions, Region{m, dims})
		}
	}
	// Done
	return r
}
