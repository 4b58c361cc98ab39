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
package pil

import (
	"testing"

	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/consensys/go-airgen/pkg/util/field/goldilocks"
	"github.com/stretchr/testify/assert"
)

type F = goldilocks.Element

func Test_Expression_01(t *testing.T) {
	var (
		one  = Uint64[F](1)
		expr = Mul[F](Sub[F](one, Next("first_step")), Add[F](Direct("pc"), one))
	)
	//
	assert.Equal(t, "((1 - first_step') * (pc + 1))", expr.String())
}

func Test_Expression_02(t *testing.T) {
	var expr Expression[F] = Indexed("main.sub", "sel", 2)
	//
	assert.Equal(t, "main.sub.sel[2]", expr.String())
	assert.Equal(t, "-2", Const(field.Int64[F](-2)).String())
	assert.Equal(t, "-x", Neg[F](Direct("x")).String())
}

func Test_Expression_03(t *testing.T) {
	var match = &Match[F]{Direct("pc"), []MatchArm[F]{
		{Uint64[F](2), &Tuple[F]{[]Expression[F]{&String{"input"}, Uint64[F](1)}}},
		{nil, Uint64[F](0)},
	}}
	//
	assert.Equal(t, `match pc { 2 => ("input", 1), _ => 0, }`, match.String())
}

func Test_Statement_01(t *testing.T) {
	var (
		update = Identity[F](Sub[F](Next("A"), Direct("X")))
		zero   = Identity[F](Mul[F](Direct("first_step"), Direct("A")))
	)
	//
	assert.Equal(t, "A' = X;", update.String())
	assert.Equal(t, "(first_step * A) = 0;", zero.String())
	assert.Equal(t, "namespace main(1024);", (&Namespace{"main", 1024}).String())
}

func Test_Statement_02(t *testing.T) {
	var (
		lhs    = SelectedExpressions[F]{Direct("instr_add"), []Expression[F]{Direct("A"), Direct("B")}}
		rhs    = SelectedExpressions[F]{nil, []Expression[F]{Direct("x"), Direct("y")}}
		lookup = &PlookupIdentity[F]{lhs, rhs}
		perm   = &PermutationIdentity[F]{lhs, rhs}
	)
	//
	assert.Equal(t, "instr_add { A, B } in { x, y };", lookup.String())
	assert.Equal(t, "instr_add { A, B } is { x, y };", perm.String())
}

func Test_Array_01(t *testing.T) {
	var values = []F{field.Uint64[F](0), field.Uint64[F](1), field.Uint64[F](2)}
	//
	arr := PadWithLast(values...)
	assert.Equal(t, "[0, 1, 2] + [2]*", arr.String())
	assert.Equal(t, "[0]*", PadWithLast[F]().String())
	assert.Equal(t, "pol constant first_step = [1] + [0]*;", FirstStep[F]("first_step").String())
}

func Test_Substitute_01(t *testing.T) {
	var (
		mapping = map[string]string{"amount": "instr_inc_param_amount"}
		expr    = Sub[F](Next("fp"), Add[F](Direct("fp"), Direct("amount")))
		other   = Namespaced("sub", "amount")
	)
	//
	assert.Equal(t, "(fp' - (fp + instr_inc_param_amount))", Substitute[F](expr, mapping).String())
	assert.Equal(t, "sub.amount", Substitute[F](other, mapping).String())
}
