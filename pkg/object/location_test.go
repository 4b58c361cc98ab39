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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Location_01(t *testing.T) {
	var loc = NewLocation("main", "sub")
	//
	assert.Equal(t, "main.sub", loc.String())
	assert.Equal(t, []string{"main", "sub"}, loc.Segments())
	assert.Equal(t, loc, ParseLocation("main.sub"))
}

func Test_Location_02(t *testing.T) {
	var root = ParseLocation("")
	//
	assert.Empty(t, root.Segments())
	assert.Equal(t, []string{"main"}, MainLocation().Segments())
	assert.Equal(t, -1, root.Cmp(MainLocation()))
}

func Test_Location_03(t *testing.T) {
	var locs = map[Location]int{MainLocation(): 1, NewLocation("main", "sub"): 2}
	//
	assert.Equal(t, 2, locs[ParseLocation("main.sub")])
	assert.Equal(t, -1, MainLocation().Cmp(NewLocation("main", "sub")))
	assert.Equal(t, -1, NewLocation("foo").Cmp(MainLocation()))
	assert.Equal(t, 1, NewLocation("zoo").Cmp(NewLocation("main", "sub")))
	assert.Equal(t, 0, MainLocation().Cmp(ParseLocation("main")))
}
