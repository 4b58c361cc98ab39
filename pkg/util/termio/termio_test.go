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
package termio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "\033[1;31m", BoldAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[32m", NewAnsiEscape().FgColour(TERM_GREEN).Build())
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
}

func Test_Printer_01(t *testing.T) {
	var (
		plain  = &Printer{false}
		colour = &Printer{true}
		err    = errors.New("Machine foo should have degree 1024, found 8")
	)
	//
	assert.Equal(t, "error: Machine foo should have degree 1024, found 8", plain.Error(err))
	assert.Equal(t, "warning: careful", plain.Warning("careful"))
	assert.Equal(t, "\033[1;31merror\033[0m: Machine foo should have degree 1024, found 8", colour.Error(err))
}
