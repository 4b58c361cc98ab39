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

	"github.com/consensys/go-airgen/pkg/manifest"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/consensys/go-airgen/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Load a manifest file, exiting with status 2 if it cannot be read or
// translated.
func loadProject[F field.Element[F]](filename string) *manifest.Project[F] {
	project, err := manifest.LoadFile[F](filename)
	//
	if err != nil {
		fmt.Println(termio.NewPrinter().Error(err))
		os.Exit(2)
	}
	//
	return project
}

// Write a generated PIL file either to stdout, or to the given output file.
func writePilFile[F field.Element[F]](file *pil.File[F], output string) {
	if output == "" {
		fmt.Print(file.String())
		return
	}
	//
	if err := os.WriteFile(output, []byte(file.String()), 0644); err != nil {
		fmt.Println(termio.NewPrinter().Error(err))
		os.Exit(2)
	}
	//
	log.Debugf("wrote %d statement(s) to %s", len(file.Statements), output)
}

// Report one or more compilation failures, and exit with status 1.
func reportErrors(errs ...error) {
	var printer = termio.NewPrinter()
	//
	for _, err := range errs {
		fmt.Println(printer.Error(err))
	}
	//
	os.Exit(1)
}
