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
	"runtime/debug"
	"strings"

	"github.com/consensys/go-airgen/pkg/util/field"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "airgen",
	Short: "A constraint compiler for register machines.",
	Long: `A compiler which turns register machines, described in a manifest, into
	polynomial constraints and links multiple machines into a single system.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Printf("airgen %s\n", version())
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Determine the version of this executable, depending on how it was built.
func version() string {
	if Version != "" {
		// Built via "make"
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		return info.Main.Version
	}
	// Unknown, perhaps "go run"
	return "(unknown version)"
}

// FieldAgnosticCmd binds a command, instantiated for a given field, to the
// configuration of that field.
type FieldAgnosticCmd struct {
	Field    field.Config
	Function func(*cobra.Command, []string)
}

// Dispatch a command to its instance for the field selected on the command
// line.  This exits with status 2 if the field is unknown, or not supported by
// the command.
func runFieldAgnosticCmd(cmd *cobra.Command, args []string, cmds []FieldAgnosticCmd) {
	var (
		fieldName = GetString(cmd, "field")
		config    = field.GetConfig(fieldName)
		supported []string
	)
	//
	for _, c := range cmds {
		if config != nil && c.Field == *config {
			log.Debugf("using field %s (%d bits)", config.Name, config.BitWidth)
			c.Function(cmd, args)
			//
			return
		}
		//
		supported = append(supported, c.Field.Name)
	}
	//
	fmt.Printf("field \"%s\" unsupported for command '%s' (expected one of %s)\n", fieldName, cmd.Name(),
		strings.Join(supported, ", "))
	os.Exit(2)
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("field", field.GOLDILOCKS.Name, "prime field to use throughout")
}
