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

	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
)

// Expression represents an arbitrary expression over the columns of a
// constraint system.  Expressions form a closed sum type: every variant is
// declared in this file, and consumers are expected to switch exhaustively
// over them.
type Expression[F field.Element[F]] interface {
	fmt.Stringer
	isExpression()
}

// BinaryOperator identifies the operation of a binary expression.
type BinaryOperator uint8

const (
	// ADD represents addition x + y
	ADD BinaryOperator = iota
	// SUB represents subtraction x - y
	SUB
	// MUL represents multiplication x * y
	MUL
	// DIV represents division x / y
	DIV
	// MOD represents the remainder x % y
	MOD
	// POW represents exponentiation x ** y
	POW
	// BIT_AND represents bitwise conjunction x & y
	BIT_AND
	// BIT_OR represents bitwise disjunction x | y
	BIT_OR
	// BIT_XOR represents bitwise exclusive-or x ^ y
	BIT_XOR
	// SHL represents a left shift x << y
	SHL
	// SHR represents a right shift x >> y
	SHR
)

var binaryOperatorSymbols = []string{"+", "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>"}

func (op BinaryOperator) String() string {
	return binaryOperatorSymbols[op]
}

// UnaryOperator identifies the operation of a unary expression.
type UnaryOperator uint8

// MINUS represents negation -x
const MINUS UnaryOperator = 0

func (op UnaryOperator) String() string {
	return "-"
}

// Number represents a constant field element.
type Number[F field.Element[F]] struct {
	Value F
}

// Reference represents a reference to a column, optionally qualified by the
// namespace it lives in, indexed into a column array, or shifted onto the next
// row.
type Reference struct {
	// Namespace of the column, or empty if the column is local.
	Namespace string
	// Name of the column.
	Name string
	// Index into a column array (if applicable).
	Index util.Option[uint64]
	// Next signals a reference to the next row (i.e. x').
	Next bool
}

// IsDirect checks whether this is a plain reference to a local column on the
// current row.
func (p *Reference) IsDirect() bool {
	return p.Namespace == "" && p.Index.IsEmpty() && !p.Next
}

// String represents a string literal, as used (for example) within query
// expressions.
type String struct {
	Value string
}

// BinaryOp represents the application of a binary operator.
type BinaryOp[F field.Element[F]] struct {
	Left  Expression[F]
	Op    BinaryOperator
	Right Expression[F]
}

// UnaryOp represents the application of a unary operator.
type UnaryOp[F field.Element[F]] struct {
	Op   UnaryOperator
	Expr Expression[F]
}

// FreeInput represents a value which is not determined by the constraints, but
// is instead supplied externally (e.g. by the prover) by evaluating the given
// query expression.
type FreeInput[F field.Element[F]] struct {
	Expr Expression[F]
}

// Call represents a call to some (external) function.
type Call[F field.Element[F]] struct {
	Function string
	Args     []Expression[F]
}

// Tuple represents a tuple of expressions.
type Tuple[F field.Element[F]] struct {
	Items []Expression[F]
}

// MatchArm is a single arm of a match expression.  A nil pattern represents the
// catch-all arm.
type MatchArm[F field.Element[F]] struct {
	Pattern Expression[F]
	Value   Expression[F]
}

// Match dispatches on the value of a scrutinee.
type Match[F field.Element[F]] struct {
	Scrutinee Expression[F]
	Arms      []MatchArm[F]
}

func (*Number[F]) isExpression()    {}
func (*Reference) isExpression()    {}
func (*String) isExpression()       {}
func (*BinaryOp[F]) isExpression()  {}
func (*UnaryOp[F]) isExpression()   {}
func (*FreeInput[F]) isExpression() {}
func (*Call[F]) isExpression()      {}
func (*Tuple[F]) isExpression()     {}
func (*Match[F]) isExpression()     {}

// ============================================================================
// Formatting
// ============================================================================

func (e *Number[F]) String() string {
	return field.Signed(e.Value).String()
}

func (e *Reference) String() string {
	var builder strings.Builder
	//
	if e.Namespace != "" {
		builder.WriteString(e.Namespace)
		builder.WriteString(".")
	}
	//
	builder.WriteString(e.Name)
	//
	if e.Index.HasValue() {
		builder.WriteString(fmt.Sprintf("[%d]", e.Index.Unwrap()))
	}
	//
	if e.Next {
		builder.WriteString("'")
	}
	//
	return builder.String()
}

func (e *String) String() string {
	return fmt.Sprintf("%q", e.Value)
}

func (e *BinaryOp[F]) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

func (e *UnaryOp[F]) String() string {
	return fmt.Sprintf("%s%s", e.Op, e.Expr)
}

func (e *FreeInput[F]) String() string {
	return fmt.Sprintf("${ %s }", e.Expr)
}

func (e *Call[F]) String() string {
	return fmt.Sprintf("%s(%s)", e.Function, joinExpressions(e.Args))
}

func (e *Tuple[F]) String() string {
	return fmt.Sprintf("(%s)", joinExpressions(e.Items))
}

func (e *Match[F]) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("match %s {", e.Scrutinee))
	//
	for _, arm := range e.Arms {
		if arm.Pattern == nil {
			builder.WriteString(fmt.Sprintf(" _ => %s,", arm.Value))
		} else {
			builder.WriteString(fmt.Sprintf(" %s => %s,", arm.Pattern, arm.Value))
		}
	}
	//
	builder.WriteString(" }")
	//
	return builder.String()
}

func joinExpressions[F field.Element[F]](exprs []Expression[F]) string {
	var items = make([]string, len(exprs))
	//
	for i, e := range exprs {
		items[i] = e.String()
	}
	//
	return strings.Join(items, ", ")
}
