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

// RewriteStmt rebuilds a statement tree bottom-up, applying fn to every
// statement node after its children have been rewritten.  Subtrees which fn
// leaves untouched are returned as-is, so the input and output trees share
// unchanged nodes.  Expressions are never rewritten; passes which only add
// scoping (such as bounds inference) have no need to touch them.
func RewriteStmt(s Stmt, fn func(Stmt) Stmt) Stmt {
	switch t := s.(type) {
	case *LetStmt:
		body := RewriteStmt(t.Body, fn)
		if body != t.Body {
			s = &LetStmt{t.Name, t.Value, body}
		}
	case *For:
		body := RewriteStmt(t.Body, fn)
		if body != t.Body {
			s = &For{t.Name, t.Min, t.Extent, body}
		}
	case *Block:
		var (
			stmts   = make([]Stmt, len(t.Stmts))
			changed = false
		)
		//
		for i, child := range t.Stmts {
			stmts[i] = RewriteStmt(child, fn)
			changed = changed || stmts[i] != child
		}
		//
		if changed {
			s = &Block{stmts}
		}
	case *Realize:
		body := RewriteStmt(t.Body, fn)
		if body != t.Body {
			s = &Realize{t.Name, t.Bounds, body}
		}
	case *Produce:
		body := RewriteStmt(t.Body, fn)
		if body != t.Body {
			s = &Produce{t.Name, body}
		}
	case *Provide, *Evaluate:
		// leaves
	default:
		panic("unknown statement")
	}
	// Apply node transformation
	return fn(s)
}
