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
	"github.com/Grandlook/Halide-l0/pkg/pipeline"
	"github.com/pkg/errors"
)

// CheckContainment re-derives, for every stage whose region was inferred, the
// regions its call sites touch, and verifies each lies within the producer's
// settled region.  Only dimensions decidable by constant comparison or
// syntactic equality are checked; a symbolic dimension that cannot be decided
// is not a violation.
func CheckContainment(env pipeline.Environment, boxes map[string]interval.Box) error {
	prop := newPropagator(env)
	//
	for _, consumer := range sortedKeys(boxes) {
		fn, ok := env.Lookup(consumer)
		if !ok {
			continue
		}
		//
		required, err := prop.required(fn, boxes[consumer])
		if err != nil {
			return errors.Wrapf(err, "re-deriving regions of \"%s\"", consumer)
		}
		//
		for _, producer := range sortedKeys(required) {
			box, ok := boxes[producer]
			if !ok {
				continue
			}
			//
			for d, iv := range required[producer] {
				within, decidable := iv.Within(box[d])
				//
				if decidable && !within {
					return errors.Errorf(
						"\"%s\" accesses \"%s\" over %s in dimension %d, outside its region %s",
						consumer, producer, iv, d, box[d])
				}
			}
		}
	}
	// Done
	return nil
}
