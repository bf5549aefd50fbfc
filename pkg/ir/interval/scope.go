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

// Scope maps variable names to their known intervals.  Scopes nest by linking
// to their parent, so extending a scope never mutates it; this mirrors the
// structural sharing of the trees being analysed.  The nil scope is the empty
// scope.
type Scope struct {
	parent *Scope
	name   string
	value  Interval
}

// Bind returns a scope extending this one with the given binding.  Inner
// bindings shadow outer ones of the same name.
func (s *Scope) Bind(name string, value Interval) *Scope {
	return &Scope{s, name, value}
}

// Lookup resolves a variable to its interval, searching innermost-first.
func (s *Scope) Lookup(name string) (Interval, bool) {
	for ; s != nil; s = s.parent {
		if s.name == name {
			return s.value, true
		}
	}
	//
	return Interval{}, false
}
