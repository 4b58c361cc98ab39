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
	"github.com/consensys/go-airgen/pkg/linker"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/consensys/go-airgen/pkg/util/field/bls12_377"
	"github.com/consensys/go-airgen/pkg/util/field/goldilocks"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link [flags] manifest_file",
	Short: "compile and link every machine of a manifest.",
	Long: `Compile every machine instance described by a manifest, and then link them
	into a single PIL file.  All machines must share the degree of the main
	machine.`,
	Run: func(cmd *cobra.Command, args []string) {
		runFieldAgnosticCmd(cmd, args, linkCmds)
	},
}

// Available instances
var linkCmds = []FieldAgnosticCmd{
	{field.GOLDILOCKS, runLinkCmd[goldilocks.Element]},
	{field.BLS12_377, runLinkCmd[bls12_377.Element]},
}

func runLinkCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	//
	var (
		project = loadProject[F](args[0])
		output  = GetString(cmd, "output")
	)
	// Compile all machines for linking
	graph, err := project.Compile(compiler.NewCompiler[F]())
	if err != nil {
		reportErrors(err)
	}
	//
	log.Debugf("linking %d machine(s)", len(graph.Objects))
	//
	file, errs := linker.Link(graph)
	if len(errs) > 0 {
		reportErrors(errs...)
	}
	//
	writePilFile(file, output)
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().StringP("output", "o", "", "specify output file.")
}
