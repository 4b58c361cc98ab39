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
	"os"

	"golang.org/x/term"
)

// Printer writes diagnostics to stdout, using colour only when stdout is a
// terminal.
type Printer struct {
	colour bool
}

// NewPrinter constructs a printer for stdout.
func NewPrinter() *Printer {
	return &Printer{term.IsTerminal(int(os.Stdout.Fd()))}
}

// Highlight returns the given text in bold with a given foreground colour,
// provided colour is enabled.
func (p *Printer) Highlight(text string, col uint) string {
	if !p.colour {
		return text
	}
	//
	escape := BoldAnsiEscape().FgColour(col).Build()
	reset := ResetAnsiEscape().Build()
	//
	return escape + text + reset
}

// Error formats an error message, prefixed with a highlighted "error".
func (p *Printer) Error(err error) string {
	return p.Highlight("error", TERM_RED) + ": " + err.Error()
}

// Warning formats a warning message, prefixed with a highlighted "warning".
func (p *Printer) Warning(msg string) string {
	return p.Highlight("warning", TERM_YELLOW) + ": " + msg
}
