// Copyright Consensys Software Inc.
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

	"github.com/consensys/go-airgen/pkg/asm/compiler"
	"github.com/consensys/go-airgen/pkg/object"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/consensys/go-airgen/pkg/util/field/bls12_377"
	"github.com/consensys/go-airgen/pkg/util/field/goldilocks"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [flags] manifest_file",
	Short: "compile a single machine into PIL constraints.",
	Long: `Compile a single machine of a manifest into a set of PIL constraints.  By
	default the main machine is compiled, and the result is a standalone
	file with its own namespace and degree.`,
	Run: func(cmd *cobra.Command, args []string) {
		runFieldAgnosticCmd(cmd, args, compileCmds)
	},
}

// Available instances
var compileCmds = []FieldAgnosticCmd{
	{field.GOLDILOCKS, runCompileCmd[goldilocks.Element]},
	{field.BLS12_377, runCompileCmd[bls12_377.Element]},
}

func runCompileCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	//
	var (
		project    = loadProject[F](args[0])
		standalone = !GetFlag(cmd, "embedded")
		output     = GetString(cmd, "output")
		location   = project.Main
	)
	//
	if name := GetString(cmd, "machine"); name != "" {
		location = object.ParseLocation(name)
	}
	//
	machine := project.Machine(location)
	if machine == nil {
		fmt.Printf("unknown machine %s\n", location)
		os.Exit(2)
	}
	// Apply degree override (if applicable)
	if cmd.Flags().Changed("degree") {
		machine.Degree = util.Some(GetUint(cmd, "degree"))
	} else if standalone && machine.Degree.IsEmpty() {
		machine.Degree = util.Some(object.DEFAULT_DEGREE)
	}
	//
	log.Debugf("compiling machine %s (degree %s)", location, machine.Degree)
	//
	obj, err := compiler.NewCompiler[F]().Standalone(standalone).Compile(machine)
	if err != nil {
		reportErrors(err)
	}
	//
	writePilFile(&pil.File[F]{Statements: obj.Pil}, output)
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "specify output file.")
	compileCmd.Flags().String("machine", "", "location of the machine to compile (defaults to main).")
	compileCmd.Flags().Uint64("degree", object.DEFAULT_DEGREE, "override the degree of the compiled machine.")
	compileCmd.Flags().Bool("embedded", false, "omit the namespace declaration, as when compiling for linking.")
}
