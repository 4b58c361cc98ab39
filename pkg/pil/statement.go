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
	"fmt"
	"strings"

	"github.com/consensys/go-airgen/pkg/util/field"
)

// Statement represents a top-level item in a constraint file.  As for
// expressions, statements form a closed sum type.
type Statement[F field.Element[F]] interface {
	fmt.Stringer
	isStatement()
}

// SelectedExpressions represents a tuple of expressions guarded by an optional
// selector.  Only rows where the selector holds participate in the enclosing
// lookup or permutation.
type SelectedExpressions[F field.Element[F]] struct {
	// Selector expression, or nil if every row is selected.
	Selector    Expression[F]
	Expressions []Expression[F]
}

func (p SelectedExpressions[F]) String() string {
	var tuple = fmt.Sprintf("{ %s }", joinExpressions(p.Expressions))
	//
	if p.Selector != nil {
		return fmt.Sprintf("%s %s", p.Selector, tuple)
	}
	//
	return tuple
}

// Namespace opens a new namespace of a given degree.  All statements up to the
// next namespace belong to it.
type Namespace struct {
	Name   string
	Degree uint64
}

// PolynomialIdentity asserts that an expression evaluates to zero on every
// row.
type PolynomialIdentity[F field.Element[F]] struct {
	Expr Expression[F]
}

// PlookupIdentity asserts that every selected row of the left-hand side occurs
// as some selected row of the right-hand side.
type PlookupIdentity[F field.Element[F]] struct {
	Left  SelectedExpressions[F]
	Right SelectedExpressions[F]
}

// PermutationIdentity asserts that the selected rows of the left-hand side are
// a permutation of the selected rows of the right-hand side.
type PermutationIdentity[F field.Element[F]] struct {
	Left  SelectedExpressions[F]
	Right SelectedExpressions[F]
}

// CommitDeclaration declares a witness column, optionally with a query used
// by witness generation to compute its value.
type CommitDeclaration[F field.Element[F]] struct {
	Name string
	// Query used to compute this column, or nil if none.
	Query *Query[F]
}

// Query is a function of the row index which yields the value of a witness
// column.
type Query[F field.Element[F]] struct {
	Params []string
	Body   Expression[F]
}

// ConstantDefinition declares a fixed column whose values are fully
// determined at compile time.
type ConstantDefinition[F field.Element[F]] struct {
	Name   string
	Values Array[F]
}

func (*Namespace) isStatement()              {}
func (*PolynomialIdentity[F]) isStatement()  {}
func (*PlookupIdentity[F]) isStatement()     {}
func (*PermutationIdentity[F]) isStatement() {}
func (*CommitDeclaration[F]) isStatement()   {}
func (*ConstantDefinition[F]) isStatement()  {}

func (p *Namespace) String() string {
	return fmt.Sprintf("namespace %s(%d);", p.Name, p.Degree)
}

func (p *PolynomialIdentity[F]) String() string {
	if e, ok := p.Expr.(*BinaryOp[F]); ok && e.Op == SUB {
		return fmt.Sprintf("%s = %s;", e.Left, e.Right)
	}
	//
	return fmt.Sprintf("%s = 0;", p.Expr)
}

func (p *PlookupIdentity[F]) String() string {
	return fmt.Sprintf("%s in %s;", p.Left, p.Right)
}

func (p *PermutationIdentity[F]) String() string {
	return fmt.Sprintf("%s is %s;", p.Left, p.Right)
}

func (p *CommitDeclaration[F]) String() string {
	if p.Query != nil {
		return fmt.Sprintf("pol commit %s(%s) query %s;", p.Name, strings.Join(p.Query.Params, ", "), p.Query.Body)
	}
	//
	return fmt.Sprintf("pol commit %s;", p.Name)
}

func (p *ConstantDefinition[F]) String() string {
	return fmt.Sprintf("pol constant %s = %s;", p.Name, p.Values.String())
}

// ============================================================================
// Arrays
// ============================================================================

// Array describes the contents of a fixed column as an explicit prefix
// followed by a block which is repeated until the column is full.
type Array[F field.Element[F]] struct {
	Values   []F
	Repeated []F
}

// PadWithZeroes constructs an array holding the given values, followed by
// zeroes.
func PadWithZeroes[F field.Element[F]](values ...F) Array[F] {
	return Array[F]{values, []F{field.Zero[F]()}}
}

// PadWithLast constructs an array holding the given values, followed by the
// last value repeated indefinitely.  An empty array is padded with zero.
func PadWithLast[F field.Element[F]](values ...F) Array[F] {
	if len(values) == 0 {
		return Array[F]{nil, []F{field.Zero[F]()}}
	}
	//
	return Array[F]{values, []F{values[len(values)-1]}}
}

func (p Array[F]) String() string {
	var repeated = fmt.Sprintf("[%s]*", joinValues(p.Repeated))
	//
	if len(p.Values) == 0 {
		return repeated
	}
	//
	return fmt.Sprintf("[%s] + %s", joinValues(p.Values), repeated)
}

func joinValues[F field.Element[F]](values []F) string {
	var items = make([]string, len(values))
	//
	for i, v := range values {
		items[i] = field.Signed(v).String()
	}
	//
	return strings.Join(items, ", ")
}

// ============================================================================
// Files
// ============================================================================

// File is an ordered sequence of statements.
type File[F field.Element[F]] struct {
	Statements []Statement[F]
}

// Find returns the first statement matching the given predicate, or nil.
func (p *File[F]) Find(predicate func(Statement[F]) bool) Statement[F] {
	for _, s := range p.Statements {
		if predicate(s) {
			return s
		}
	}
	//
	return nil
}

// Constant returns the definition of the named fixed column, or nil if no such
// column is defined.
func (p *File[F]) Constant(name string) *ConstantDefinition[F] {
	s := p.Find(func(s Statement[F]) bool {
		c, ok := s.(*ConstantDefinition[F])
		return ok && c.Name == name
	})
	//
	if s == nil {
		return nil
	}
	//
	return s.(*ConstantDefinition[F])
}

func (p *File[F]) String() string {
	var builder strings.Builder
	//
	for _, s := range p.Statements {
		builder.WriteString(s.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
