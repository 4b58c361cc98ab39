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

	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/consensys/go-airgen/pkg/util/field/goldilocks"
	"github.com/stretchr/testify/assert"
)

type F = goldilocks.Element

func Test_Graph_01(t *testing.T) {
	var graph = NewGraph[F](Machine{Location: MainLocation()})
	//
	graph.Objects[NewLocation("main", "sub")] = Object[F]{}
	graph.Objects[NewLocation("foo")] = Object[F]{}
	graph.Objects[MainLocation()] = Object[F]{}
	//
	assert.Equal(t, []Location{NewLocation("foo"), MainLocation(), NewLocation("main", "sub")}, graph.Locations())
}

func Test_Graph_02(t *testing.T) {
	var (
		main  = Operation[F]{Name: "main", Id: util.Some(field.Uint64[F](2))}
		other = Operation[F]{Name: "other"}
		graph = NewGraph(Machine{Location: MainLocation()}, other, main)
	)
	//
	op, ok := graph.EntryPoint("main")
	assert.True(t, ok)
	assert.Equal(t, "main<2>([]) -> ([])", op.String())
	//
	_, ok = graph.EntryPoint("missing")
	assert.False(t, ok)
}

func Test_Object_01(t *testing.T) {
	var obj = Object[F]{HasPC: true}.WithDegree(util.Some[uint64](8))
	//
	assert.Equal(t, uint64(8), obj.Degree.Unwrap())
	assert.True(t, obj.HasPC)
	assert.Equal(t, []string{"x", "y", "z"}, OperationParams{[]string{"x", "y"}, []string{"z"}}.All())
}
