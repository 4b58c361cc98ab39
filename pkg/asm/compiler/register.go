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
	"fmt"

	"github.com/consensys/go-airgen/pkg/asm/ir"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// Register captures how the value of a given register evolves from one row to
// the next.
type Register[F field.Element[F]] struct {
	// Kind of this register
	Flag ir.RegisterFlag
	// Updates to this register, each guarded by a condition.  Conditions are
	// assumed to be mutually exclusive.
	ConditionedUpdates []ConditionedUpdate[F]
	// Value of this register on the next row when no condition holds, or nil.
	DefaultUpdate pil.Expression[F]
}

// ConditionedUpdate assigns a value to a register on the next row, whenever
// its condition holds.
type ConditionedUpdate[F field.Element[F]] struct {
	Condition pil.Expression[F]
	Value     pil.Expression[F]
}

// IsAssignment determines whether this is an assignment register.
func (p *Register[F]) IsAssignment() bool {
	return p.Flag == ir.ASSIGNMENT_REGISTER
}

// DeclareRegister declares a register of the given kind, allocating its
// witness column along with any constraints and columns it requires.
func (p *Context[F]) DeclareRegister(name string, flag ir.RegisterFlag) error {
	var reg = &Register[F]{Flag: flag}
	//
	if _, ok := p.registers[name]; ok {
		return structuralError("duplicate register %s", name)
	}
	//
	switch flag {
	case ir.PROGRAM_COUNTER:
		if p.pcName.HasValue() {
			return structuralError("multiple program counters declared (%s and %s)", p.pcName.Unwrap(), name)
		}
		//
		p.pcName = util.Some(name)
		p.lineLookup = append(p.lineLookup, columnPair{name, LINE})
		reg.DefaultUpdate = pil.Add[F](pil.Direct(name), pil.Uint64[F](1))
	case ir.ASSIGNMENT_REGISTER:
		// determined afresh on every row
	case ir.REGULAR_REGISTER:
		// Force the register to zero on the first row.
		p.emit(pil.Identity[F](pil.Mul[F](pil.Direct(FIRST_STEP), pil.Direct(name))))
		// Only assignment registers declared so far can write into this
		// register.
		for _, assignReg := range p.assignmentRegisters() {
			var writeFlag = fmt.Sprintf("reg_write_%s_%s", assignReg, name)
			//
			p.createWitnessFixedPair(writeFlag)
			reg.ConditionedUpdates = append(reg.ConditionedUpdates,
				ConditionedUpdate[F]{pil.Direct(writeFlag), pil.Direct(assignReg)})
		}
		// Otherwise, retain current value
		reg.DefaultUpdate = pil.Direct(name)
	default:
		return structuralError("unknown register kind for %s", name)
	}
	//
	log.Debugf("declared %s register %s", flag, name)
	//
	p.registers[name] = reg
	p.emit(pil.Witness[F](name))
	//
	return nil
}
