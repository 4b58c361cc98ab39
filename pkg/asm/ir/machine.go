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
package ir

import (
	"github.com/consensys/go-airgen/pkg/object"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
)

// Machine is the batched assembly representation of a single machine, as
// produced by the front end.  Statements of the program have already been
// grouped into batches which execute in lock step.
type Machine[F field.Element[F]] struct {
	// Location of this machine within the machine graph.
	Location object.Location
	// Declared degree, if any.
	Degree util.Option[uint64]
	// Latch column, if any.
	Latch util.Option[string]
	// Operation id column, if any.
	OperationId util.Option[string]
	// Call selector array, if any.
	CallSelectors util.Option[string]
	// Declarations in source order.  Order matters: a regular register only
	// receives write flags for assignment registers declared before it.
	Declarations []Declaration[F]
	// Program as a sequence of lock-step batches.
	Batches []Batch[F]
	// Operations offered by this machine.
	Operations []object.Operation[F]
	// Outgoing links of this machine.
	Links []object.Link[F]
}

// Descriptor returns the description of this machine as a call target.
func (p *Machine[F]) Descriptor() object.Machine {
	return object.Machine{
		Location:      p.Location,
		Latch:         p.Latch,
		CallSelectors: p.CallSelectors,
		OperationId:   p.OperationId,
	}
}

// Operation returns the operation of the given name, if it exists.
func (p *Machine[F]) Operation(name string) (object.Operation[F], bool) {
	for _, op := range p.Operations {
		if op.Name == name {
			return op, true
		}
	}
	//
	var empty object.Operation[F]
	//
	return empty, false
}

// ============================================================================
// Declarations
// ============================================================================

// Declaration represents a register, instruction or inline constraint
// declaration.
type Declaration[F field.Element[F]] interface {
	isDeclaration()
}

// RegisterFlag determines the kind of a register.
type RegisterFlag uint8

const (
	// REGULAR_REGISTER is an ordinary register which holds its value unless
	// written.
	REGULAR_REGISTER RegisterFlag = iota
	// PROGRAM_COUNTER is the register holding the current line of the program.
	PROGRAM_COUNTER
	// ASSIGNMENT_REGISTER is a register through which values are written into
	// regular registers.  Its value is determined afresh on every row.
	ASSIGNMENT_REGISTER
)

func (p RegisterFlag) String() string {
	switch p {
	case PROGRAM_COUNTER:
		return "pc"
	case ASSIGNMENT_REGISTER:
		return "assignment"
	default:
		return "regular"
	}
}

// RegisterDeclaration declares a register.
type RegisterDeclaration struct {
	Name string
	Flag RegisterFlag
}

// Param is a parameter of an instruction.  An untyped input parameter names
// the assignment register used to pass the argument.  Typed input parameters
// are literals, whose type is one of "label", "signed" or "unsigned".
type Param struct {
	Name string
	Type string
}

// InstructionParams holds the inputs and outputs of an instruction.
type InstructionParams struct {
	Inputs  []Param
	Outputs []Param
}

// InstructionDeclaration declares an instruction along with the effect it has
// on the machine.
type InstructionDeclaration[F field.Element[F]] struct {
	Name   string
	Params InstructionParams
	Body   []BodyElement[F]
}

// InlinePil is a block of raw constraints which is copied into the output.
type InlinePil[F field.Element[F]] struct {
	Statements []pil.Statement[F]
}

func (*RegisterDeclaration) isDeclaration()       {}
func (*InstructionDeclaration[F]) isDeclaration() {}
func (*InlinePil[F]) isDeclaration()              {}

// BodyElement is an element of an instruction's body.
type BodyElement[F field.Element[F]] interface {
	isBodyElement()
}

// BodyExpression is a polynomial identity "expr = 0" which must hold whenever
// the instruction is active.  An identity of the form "r' - e" updates
// register r instead.
type BodyExpression[F field.Element[F]] struct {
	Expr pil.Expression[F]
}

// BodyLookup is a lookup (or permutation) which must hold whenever the
// instruction is active.
type BodyLookup[F field.Element[F]] struct {
	Left        pil.SelectedExpressions[F]
	Right       pil.SelectedExpressions[F]
	Permutation bool
}

func (*BodyExpression[F]) isBodyElement() {}
func (*BodyLookup[F]) isBodyElement()     {}

// ============================================================================
// Statements
// ============================================================================

// Batch is a group of statements which execute together on a single row.
type Batch[F field.Element[F]] struct {
	Statements []Statement[F]
}

// NewBatch constructs a batch from the given statements.
func NewBatch[F field.Element[F]](statements ...Statement[F]) Batch[F] {
	return Batch[F]{statements}
}

// Statement represents a statement of the program.
type Statement[F field.Element[F]] interface {
	isStatement()
}

// Label marks the row on which it occurs.
type Label struct {
	Name string
}

// Assignment writes a value into zero or more registers via an assignment
// register, as in "A <=X= B + 1".  When the value is a call, this is the
// functional form of an instruction call, as in "A <=X= instr(B)".
type Assignment[F field.Element[F]] struct {
	Targets   []string
	AssignReg string
	Value     pil.Expression[F]
}

// InstructionCall invokes an instruction with some arguments.
type InstructionCall[F field.Element[F]] struct {
	Name string
	Args []pil.Expression[F]
}

func (*Label) isStatement()              {}
func (*Assignment[F]) isStatement()      {}
func (*InstructionCall[F]) isStatement() {}
