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
	"fmt"
	"os"

	"github.com/Grandlook/Halide-l0/pkg/bounds"
	"github.com/Grandlook/Halide-l0/pkg/pipeline"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var inferCmd = &cobra.Command{
	Use:   "infer [flags] [pipeline]",
	Short: "run bounds inference over a built-in pipeline.",
	Long: `Run the bounds inference pass over one of the built-in demonstration
	 pipelines (or all of them), reporting the region inferred for every stage.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		demos := selectDemos(args)
		asJSON := GetFlag(cmd, "json")
		check := GetFlag(cmd, "check")
		//
		for _, demo := range demos {
			runDemo(demo, asJSON, check)
		}
	},
}

func selectDemos(args []string) []Demo {
	demos := Demos()
	//
	if len(args) == 0 {
		return demos
	}
	//
	var selected []Demo
	//
	for _, name := range args {
		found := false
		//
		for _, demo := range demos {
			if demo.Name == name {
				selected = append(selected, demo)
				found = true
			}
		}
		//
		if !found {
			fmt.Printf("unknown pipeline \"%s\"\n", name)
			os.Exit(2)
		}
	}
	// Done
	return selected
}

func runDemo(demo Demo, asJSON bool, check bool) {
	_, report, err := bounds.InferWithReport(demo.Stmt, demo.Outputs, demo.Order,
		demo.FusedGroups, demo.Env, demo.Bounds, pipeline.Target{})
	//
	if err != nil {
		fmt.Println(errors.Wrapf(err, "pipeline \"%s\"", demo.Name))
		os.Exit(1)
	}
	//
	if check {
		if err := bounds.CheckContainment(demo.Env, report.Boxes); err != nil {
			fmt.Println(errors.Wrapf(err, "pipeline \"%s\"", demo.Name))
			os.Exit(1)
		}
	}
	//
	if asJSON {
		bytes, err := json.Marshal(report)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		fmt.Println(string(bytes))
		//
		return
	}
	//
	fmt.Printf("%s: %s\n", demo.Name, demo.Description)
	//
	for _, region := range report.Regions {
		fmt.Printf("  %s:", region.Func)
		//
		for _, dim := range region.Dims {
			fmt.Printf(" [min=%s, extent=%s]", dim.Min, dim.Extent)
		}
		//
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferCmd.Flags().Bool("json", false, "emit the report as JSON")
	inferCmd.Flags().Bool("check", false, "verify containment of every call site post-injection")
}
