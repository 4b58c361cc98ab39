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
package linker

import (
	"fmt"

	"github.com/consensys/go-airgen/pkg/object"
)

// DegreeMismatchError reports a machine whose declared degree disagrees with
// the degree of the main machine.
type DegreeMismatchError struct {
	// Location of the offending machine
	Location object.Location
	// Degree required of all machines
	Expected uint64
	// Degree declared by the machine
	Found uint64
}

// Error implements the error interface.
func (e *DegreeMismatchError) Error() string {
	return fmt.Sprintf("Machine %s should have degree %d, found %d", e.Location, e.Expected, e.Found)
}
