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
package object

import (
	"slices"
	"strings"
)

// Location identifies a machine instance within a graph of machines, such as
// "main" or "main.sub".  A location is an immutable value and, in particular,
// can be used as a map key.
type Location struct {
	// Segments joined by the separator.  This is the empty string for the
	// root location.
	path string
}

// SEPARATOR separates the segments of a location.
const SEPARATOR = "."

// NewLocation constructs a location from the given segments, outermost first.
func NewLocation(segments ...string) Location {
	return Location{strings.Join(segments, SEPARATOR)}
}

// ParseLocation constructs a location from its string representation.
func ParseLocation(path string) Location {
	return Location{path}
}

// MainLocation returns the location of the main machine.
func MainLocation() Location {
	return NewLocation("main")
}

// Segments returns the segments of this location, outermost first.
func (p Location) Segments() []string {
	if p.path == "" {
		return nil
	}
	//
	return strings.Split(p.path, SEPARATOR)
}

// Cmp compares two locations segment by segment, giving a total order which
// places parents before their children.
func (p Location) Cmp(other Location) int {
	return slices.Compare(p.Segments(), other.Segments())
}

func (p Location) String() string {
	return p.path
}
