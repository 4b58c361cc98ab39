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
package compiler

import (
	"maps"
	"slices"

	"github.com/consensys/go-airgen/pkg/asm/ir"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
)

// FIRST_STEP is the fixed column which holds 1 on the first row, and 0 on all
// others.
const FIRST_STEP = "first_step"

// LINE is the fixed column holding the line number of each row of the program.
const LINE = "p_line"

// Context holds the state accumulated whilst compiling a single machine.  A
// context is owned by exactly one compilation, and is threaded through each of
// its steps: declarations, then code lines, then synthesis of register updates
// and, finally, materialisation of the program.
type Context[F field.Element[F]] struct {
	// Statements generated so far
	pil []pil.Statement[F]
	// Name of the program counter, if declared.
	pcName util.Option[string]
	// Registers declared so far
	registers map[string]*Register[F]
	// Instructions declared so far
	instructions map[string]*Instruction
	// Code lines of the program, in order.
	codeLines []CodeLine[F]
	// Pairs of columns used in the program lookup.
	lineLookup []columnPair
	// Names of fixed columns which hold the program.
	programConstantNames []string
}

// columnPair connects a witness column with the fixed column holding its
// value in the program.
type columnPair struct {
	witness string
	fixed   string
}

// NewContext constructs an empty compilation context.
func NewContext[F field.Element[F]]() *Context[F] {
	return &Context[F]{
		registers:    make(map[string]*Register[F]),
		instructions: make(map[string]*Instruction),
	}
}

// Statements returns the statements generated so far.
func (p *Context[F]) Statements() []pil.Statement[F] {
	return p.pil
}

// HasPC determines whether a program counter has been declared.
func (p *Context[F]) HasPC() bool {
	return p.pcName.HasValue()
}

func (p *Context[F]) emit(statements ...pil.Statement[F]) {
	p.pil = append(p.pil, statements...)
}

// Creates a pair of witness and fixed column, and matches them in the program
// lookup.
func (p *Context[F]) createWitnessFixedPair(name string) {
	var fixed = "p_" + name
	//
	p.emit(pil.Witness[F](name))
	p.lineLookup = append(p.lineLookup, columnPair{name, fixed})
	p.programConstantNames = append(p.programConstantNames, fixed)
}

// Returns the names of all assignment registers, in sorted order.
func (p *Context[F]) assignmentRegisters() []string {
	return p.registersMatching(func(r *Register[F]) bool { return r.IsAssignment() })
}

// Returns the names of all registers which are not assignment registers
// (including the program counter), in sorted order.
func (p *Context[F]) regularRegisters() []string {
	return p.registersMatching(func(r *Register[F]) bool { return !r.IsAssignment() })
}

func (p *Context[F]) registersMatching(predicate util.Predicate[*Register[F]]) []string {
	var names []string
	//
	for _, name := range slices.Sorted(maps.Keys(p.registers)) {
		if predicate(p.registers[name]) {
			names = append(names, name)
		}
	}
	//
	return names
}

func (p *Context[F]) isAssignmentRegister(name string) bool {
	reg, ok := p.registers[name]
	//
	return ok && reg.Flag == ir.ASSIGNMENT_REGISTER
}
