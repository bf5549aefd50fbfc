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

// Package ir defines the partially-lowered program tree on which the bounds
// inference pass operates.  The tree is a closed variant set: expressions
// covering arithmetic, comparisons, calls and scoped lets; statements covering
// loops, blocks, realizations and stores.  Nodes are immutable after
// construction and are shared structurally between trees, hence a pass
// producing a "new" tree reuses every subtree it did not change.
package ir

// Node is anything which can appear in the program tree.
type Node interface {
	// String returns a compact, human-readable rendering of this node,
	// suitable for error messages and debug logging.
	String() string
}

// Expr represents an expression node.  The set of implementations is closed;
// passes dispatch over it with an exhaustive type switch and panic on anything
// unknown, since that indicates a malformed tree rather than user error.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.  As with Expr, the implementation set is
// closed.
type Stmt interface {
	Node
	stmtNode()
}
