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
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
)

// Direct constructs a reference to a local column on the current row.
func Direct(name string) *Reference {
	return &Reference{Name: name}
}

// Next constructs a reference to a local column on the next row.
func Next(name string) *Reference {
	return &Reference{Name: name, Next: true}
}

// Namespaced constructs a reference to a column in a given namespace.
func Namespaced(namespace string, name string) *Reference {
	return &Reference{Namespace: namespace, Name: name}
}

// Indexed constructs a reference to an element of a namespaced column array.
func Indexed(namespace string, name string, index uint64) *Reference {
	return &Reference{Namespace: namespace, Name: name, Index: util.Some(index)}
}

// Const constructs a constant expression from a field element.
func Const[F field.Element[F]](value F) *Number[F] {
	return &Number[F]{value}
}

// Uint64 constructs a constant expression from a uint64.
func Uint64[F field.Element[F]](value uint64) *Number[F] {
	return &Number[F]{field.Uint64[F](value)}
}

// Add constructs the sum of two expressions.
func Add[F field.Element[F]](lhs Expression[F], rhs Expression[F]) Expression[F] {
	return &BinaryOp[F]{lhs, ADD, rhs}
}

// Sub constructs the difference of two expressions.
func Sub[F field.Element[F]](lhs Expression[F], rhs Expression[F]) Expression[F] {
	return &BinaryOp[F]{lhs, SUB, rhs}
}

// Mul constructs the product of two expressions.
func Mul[F field.Element[F]](lhs Expression[F], rhs Expression[F]) Expression[F] {
	return &BinaryOp[F]{lhs, MUL, rhs}
}

// Neg constructs the negation of an expression.
func Neg[F field.Element[F]](expr Expression[F]) Expression[F] {
	return &UnaryOp[F]{MINUS, expr}
}

// Sum folds a non-empty list of expressions into a left-associated sum.
func Sum[F field.Element[F]](exprs ...Expression[F]) Expression[F] {
	var sum = exprs[0]
	//
	for _, e := range exprs[1:] {
		sum = Add[F](sum, e)
	}
	//
	return sum
}

// Identity constructs the polynomial identity "expr = 0".
func Identity[F field.Element[F]](expr Expression[F]) *PolynomialIdentity[F] {
	return &PolynomialIdentity[F]{expr}
}

// Witness constructs the declaration of a witness column without a query.
func Witness[F field.Element[F]](name string) *CommitDeclaration[F] {
	return &CommitDeclaration[F]{Name: name}
}

// FirstStep constructs a fixed column which is 1 on the first row, and 0
// everywhere else.
func FirstStep[F field.Element[F]](name string) *ConstantDefinition[F] {
	return &ConstantDefinition[F]{name, PadWithZeroes(field.One[F]())}
}
