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
package cmd

import (
	"github.com/Grandlook/Halide-l0/pkg/bounds"
	"github.com/Grandlook/Halide-l0/pkg/ir"
	"github.com/Grandlook/Halide-l0/pkg/ir/interval"
	"github.com/Grandlook/Halide-l0/pkg/pipeline"
)

// Demo bundles the complete inputs of one built-in pipeline, as the lowering
// pipeline would normally hand them to bounds inference.
type Demo struct {
	Name        string
	Description string
	Stmt        ir.Stmt
	Outputs     []string
	Order       []string
	FusedGroups [][]string
	Env         pipeline.Environment
	Bounds      pipeline.FuncBounds
}

// Demos returns every built-in pipeline, in a fixed order.
func Demos() []Demo {
	return []Demo{demoTwoTap(), demoBlur(), demoHistogram(), demoFused()}
}

// demoTwoTap consumes a producer at two offset sites, so the producer's
// region is the union of both.
func demoTwoTap() Demo {
	x := ir.NewVar("x")
	//
	env := pipeline.Environment{
		"f": &pipeline.Func{
			Name:   "f",
			Dims:   []string{"x"},
			Stages: []pipeline.Definition{{Value: &ir.Mul{A: x, B: ir.NewConst(2)}}},
		},
		"g": &pipeline.Func{
			Name: "g",
			Dims: []string{"x"},
			Stages: []pipeline.Definition{{
				Value: &ir.Add{
					A: &ir.Call{Name: "f", Args: []ir.Expr{x}},
					B: &ir.Call{Name: "f", Args: []ir.Expr{&ir.Add{A: x, B: ir.NewConst(1)}}},
				},
			}},
		},
	}
	//
	order := []string{"f", "g"}
	//
	return Demo{
		Name:        "two-tap",
		Description: "g(x) = f(x) + f(x+1), so f must cover one extra point",
		Stmt:        demoStmt(env, order, set("g")),
		Outputs:     []string{"g"},
		Order:       order,
		Env:         env,
		Bounds: pipeline.FuncBounds{
			{Func: "g", Stage: 0}: interval.NewBox(interval.NewInterval64(0, 9)),
		},
	}
}

// demoBlur is a 3-tap horizontal blur over a 2-D input image.
func demoBlur() Demo {
	x, y := ir.NewVar("x"), ir.NewVar("y")
	//
	tap := func(dx int64) ir.Expr {
		return &ir.Call{Name: "in", Args: []ir.Expr{&ir.Add{A: x, B: ir.NewConst(dx)}, y}}
	}
	//
	env := pipeline.Environment{
		"in": &pipeline.Func{
			Name:   "in",
			Dims:   []string{"x", "y"},
			Stages: []pipeline.Definition{{}},
		},
		"blur": &pipeline.Func{
			Name: "blur",
			Dims: []string{"x", "y"},
			Stages: []pipeline.Definition{{
				Value: &ir.Div{
					A: &ir.Add{A: &ir.Add{A: tap(-1), B: tap(0)}, B: tap(1)},
					B: ir.NewConst(3),
				},
			}},
		},
	}
	//
	order := []string{"in", "blur"}
	//
	return Demo{
		Name:        "blur",
		Description: "blur(x,y) averages in(x-1..x+1, y), widening the input footprint",
		Stmt:        demoStmt(env, order, set("blur")),
		Outputs:     []string{"blur"},
		Order:       order,
		Env:         env,
		Bounds: pipeline.FuncBounds{
			{Func: "blur", Stage: 0}: interval.NewBox(
				interval.NewInterval64(0, 99), interval.NewInterval64(0, 49)),
		},
	}
}

// demoHistogram is a reduction: hist is zero-initialised, bumped at f(r) for
// r in [0, 999], and read back over [0, 255].
func demoHistogram() Demo {
	x, r := ir.NewVar("x"), ir.NewVar("r")
	fr := &ir.Call{Name: "f", Args: []ir.Expr{r}}
	//
	env := pipeline.Environment{
		"f": &pipeline.Func{
			Name:   "f",
			Dims:   []string{"x"},
			Stages: []pipeline.Definition{{Value: &ir.Div{A: x, B: ir.NewConst(4)}}},
		},
		"hist": &pipeline.Func{
			Name: "hist",
			Dims: []string{"x"},
			Stages: []pipeline.Definition{
				{Value: ir.NewConst(0)},
				{
					Args:  []ir.Expr{fr},
					Value: &ir.Add{A: &ir.Call{Name: "hist", Args: []ir.Expr{fr}}, B: ir.NewConst(1)},
					RDom:  []pipeline.ReductionVar{{Name: "r", Min: ir.NewConst(0), Extent: ir.NewConst(1000)}},
				},
			},
		},
		"g": &pipeline.Func{
			Name:   "g",
			Dims:   []string{"x"},
			Stages: []pipeline.Definition{{Value: &ir.Call{Name: "hist", Args: []ir.Expr{x}}}},
		},
	}
	//
	order := []string{"f", "hist", "g"}
	//
	return Demo{
		Name:        "histogram",
		Description: "hist(f(r)) += 1 over r in [0,999], consumed over [0,255]",
		Stmt:        demoStmt(env, order, set("g")),
		Outputs:     []string{"g"},
		Order:       order,
		Env:         env,
		Bounds: pipeline.FuncBounds{
			{Func: "g", Stage: 0}: interval.NewBox(interval.NewInterval64(0, 255)),
		},
	}
}

// demoFused fuses two stages into one loop nest, so both receive the union of
// their individually-required bounds.
func demoFused() Demo {
	x := ir.NewVar("x")
	//
	env := pipeline.Environment{
		"a": &pipeline.Func{
			Name:   "a",
			Dims:   []string{"x"},
			Stages: []pipeline.Definition{{Value: x}},
			Sched:  pipeline.Schedule{FusedGroup: "ab"},
		},
		"b": &pipeline.Func{
			Name:   "b",
			Dims:   []string{"x"},
			Stages: []pipeline.Definition{{Value: &ir.Mul{A: x, B: ir.NewConst(3)}}},
			Sched:  pipeline.Schedule{FusedGroup: "ab"},
		},
		"out": &pipeline.Func{
			Name: "out",
			Dims: []string{"x"},
			Stages: []pipeline.Definition{{
				Value: &ir.Add{
					A: &ir.Call{Name: "a", Args: []ir.Expr{x}},
					B: &ir.Call{Name: "b", Args: []ir.Expr{&ir.Add{A: x, B: ir.NewConst(10)}}},
				},
			}},
		},
	}
	//
	order := []string{"a", "b", "out"}
	//
	return Demo{
		Name:        "fused",
		Description: "a and b share a loop nest; both cover the union of their needs",
		Stmt:        demoStmt(env, order, set("out")),
		Outputs:     []string{"out"},
		Order:       order,
		FusedGroups: [][]string{{"a", "b"}},
		Env:         env,
		Bounds: pipeline.FuncBounds{
			{Func: "out", Stage: 0}: interval.NewBox(interval.NewInterval64(0, 9)),
		},
	}
}

// demoStmt assembles the partially-lowered tree of a demo: one produce block
// per stage in realization order, wrapped in realize nodes (with placeholder
// bounds) for everything that is not an output.
func demoStmt(env pipeline.Environment, order []string, outputs map[string]bool) ir.Stmt {
	produces := make([]ir.Stmt, 0, len(order))
	//
	for _, name := range order {
		fn := env[name]
		//
		var value ir.Expr = ir.NewConst(0)
		if fn.Pure().Value != nil {
			value = fn.Pure().Value
		}
		//
		coords := make([]ir.Expr, len(fn.Dims))
		for i, dim := range fn.Dims {
			coords[i] = ir.NewVar(dim)
		}
		//
		produces = append(produces, &ir.Produce{
			Name: name,
			Body: &ir.Provide{Name: name, Args: coords, Value: value},
		})
	}
	//
	var body ir.Stmt = &ir.Block{Stmts: produces}
	//
	for i := len(order) - 1; i >= 0; i-- {
		if name := order[i]; !outputs[name] {
			body = &ir.Realize{
				Name:   name,
				Bounds: placeholderBounds(name, env[name].Dimensions()),
				Body:   body,
			}
		}
	}
	// Done
	return body
}

// placeholderBounds builds realize bounds referencing the bindings that
// bounds inference will inject.
func placeholderBounds(name string, dims int) []ir.Range {
	ranges := make([]ir.Range, dims)
	//
	for d := 0; d < dims; d++ {
		ranges[d] = ir.Range{
			Min:    ir.NewVar(bounds.MinName(name, d)),
			Extent: ir.NewVar(bounds.ExtentName(name, d)),
		}
	}
	// Done
	return ranges
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool)
	//
	for _, n := range names {
		m[n] = true
	}
	//
	return m
}
