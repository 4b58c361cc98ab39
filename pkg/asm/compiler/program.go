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
	"maps"
	"slices"

	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// LabelTable maps each label of a program onto the row it marks.  A table is
// built once, after all code lines are known, and is not modified thereafter.
type LabelTable struct {
	rows map[string]uint64
}

// Row returns the row marked by a given label, if it exists.
func (p LabelTable) Row(label string) (uint64, bool) {
	row, ok := p.rows[label]
	return row, ok
}

// ResolveLabels constructs the label table for a sequence of code lines.
func ResolveLabels[F field.Element[F]](lines []CodeLine[F]) (LabelTable, error) {
	var rows = make(map[string]uint64)
	//
	for i, line := range lines {
		if line.Label.IsEmpty() {
			continue
		}
		//
		label := line.Label.Unwrap()
		//
		if _, ok := rows[label]; ok {
			return LabelTable{}, structuralError("Duplicate label: %s", label)
		}
		//
		rows[label] = uint64(i)
	}
	//
	return LabelTable{rows}, nil
}

// Allocates the columns of every assignment register X, and emits the
// constraint which determines its value:
//
//	X = read_X_r1 * r1 + ... + X_const + X_read_free * X_free_value
//
// Here, r1 ... are the non-assignment registers.  The free value column is
// queried from the free inputs of the program, keyed on the program counter.
func (p *Context[F]) createAssignmentConstraints() error {
	for _, name := range p.assignmentRegisters() {
		var (
			constant  = name + "_const"
			readFree  = name + "_read_free"
			freeValue = name + "_free_value"
			terms     []pil.Expression[F]
		)
		//
		for _, reg := range p.regularRegisters() {
			var read = fmt.Sprintf("read_%s_%s", name, reg)
			//
			p.createWitnessFixedPair(read)
			terms = append(terms, pil.Mul[F](pil.Direct(read), pil.Direct(reg)))
		}
		//
		p.createWitnessFixedPair(constant)
		p.createWitnessFixedPair(readFree)
		//
		query, err := p.freeValueQuery(name)
		if err != nil {
			return err
		}
		//
		p.emit(&pil.CommitDeclaration[F]{Name: freeValue, Query: query})
		//
		terms = append(terms, pil.Direct(constant), pil.Mul[F](pil.Direct(readFree), pil.Direct(freeValue)))
		p.emit(pil.Identity[F](pil.Sub[F](pil.Direct(name), pil.Sum(terms...))))
	}
	//
	return nil
}

// Constructs the query for the free value column of a given assignment
// register, which dispatches on the program counter to the free input used on
// the corresponding row.  This returns nil when no row has a free input.
func (p *Context[F]) freeValueQuery(reg string) (*pil.Query[F], error) {
	var arms []pil.MatchArm[F]
	//
	for i, line := range p.codeLines {
		var found pil.Expression[F]
		//
		for _, term := range line.Value[reg] {
			if c, ok := term.Component.(*FreeInputComponent[F]); !ok {
				continue
			} else if found != nil {
				// a second arm for the same row would never be selected
				return nil, structuralError("multiple free inputs for %s on row %d", reg, i)
			} else {
				found = c.Expr
			}
		}
		//
		if found != nil {
			arms = append(arms, pil.MatchArm[F]{Pattern: pil.Uint64[F](uint64(i)), Value: found})
		}
	}
	//
	if len(arms) == 0 {
		return nil, nil
	} else if p.pcName.IsEmpty() {
		return nil, structuralError("free inputs for %s require a program counter", reg)
	}
	//
	return &pil.Query[F]{
		Params: []string{"i"},
		Body:   &pil.Match[F]{Scrutinee: pil.Direct(p.pcName.Unwrap()), Arms: arms},
	}, nil
}

// Materialises the program as a set of fixed columns, one for each witness
// column allocated in the program lookup, along with the line column.  Every
// column holds exactly one value per code line.
func (p *Context[F]) translateCodeLines() error {
	var (
		n       = len(p.codeLines)
		program = make(map[string][]F)
		lines   = make([]F, n)
	)
	//
	labels, err := ResolveLabels(p.codeLines)
	if err != nil {
		return err
	}
	//
	for i := range lines {
		lines[i] = field.Uint64[F](uint64(i))
	}
	//
	for _, name := range p.programConstantNames {
		program[name] = make([]F, n)
	}
	//
	for i, line := range p.codeLines {
		if err := p.translateCodeLine(program, labels, i, line); err != nil {
			return err
		}
	}
	//
	log.Debugf("materialised program of %d line(s) across %d column(s)", n, len(program))
	//
	p.emit(&pil.ConstantDefinition[F]{Name: LINE, Values: pil.PadWithLast(lines...)})
	//
	for _, name := range slices.Sorted(maps.Keys(program)) {
		p.emit(&pil.ConstantDefinition[F]{Name: name, Values: pil.PadWithLast(program[name]...)})
	}
	//
	return nil
}

func (p *Context[F]) translateCodeLine(program map[string][]F, labels LabelTable, row int, line CodeLine[F]) error {
	var one = field.One[F]()
	// set a column to a given value on this row
	set := func(column string, value F) bool {
		if values, ok := program[column]; ok {
			values[row] = value
			return true
		}
		//
		return false
	}
	// accumulate a value into a given column on this row
	add := func(column string, value F) bool {
		if values, ok := program[column]; ok {
			values[row] = values[row].Add(value)
			return true
		}
		//
		return false
	}
	//
	for _, assignReg := range slices.Sorted(maps.Keys(line.WriteRegs)) {
		for _, reg := range line.WriteRegs[assignReg] {
			if !set(fmt.Sprintf("p_reg_write_%s_%s", assignReg, reg), one) {
				return referenceError("Register combination %s <= %s not found", reg, assignReg)
			}
		}
	}
	//
	for _, assignReg := range slices.Sorted(maps.Keys(line.Value)) {
		for _, term := range line.Value[assignReg] {
			var column string
			//
			switch c := term.Component.(type) {
			case *RegisterComponent:
				column = fmt.Sprintf("p_read_%s_%s", assignReg, c.Name)
			case *ConstantComponent:
				column = fmt.Sprintf("p_%s_const", assignReg)
			case *FreeInputComponent[F]:
				column = fmt.Sprintf("p_%s_read_free", assignReg)
			}
			//
			if !add(column, term.Coeff) {
				return referenceError("Register combination %s <= %s not found", assignReg, term.Component)
			}
		}
	}
	//
	for _, invocation := range line.Instructions {
		var (
			instr  = p.instructions[invocation.Name]
			params = instr.LiteralArgNames()
		)
		//
		set(fmt.Sprintf("p_instr_%s", invocation.Name), one)
		//
		for i, arg := range invocation.Args {
			var column = fmt.Sprintf("p_instr_%s_param_%s", invocation.Name, params[i])
			//
			switch a := arg.(type) {
			case *LabelRef:
				target, ok := labels.Row(a.Name)
				if !ok {
					return referenceError("Undefined label: %s", a.Name)
				}
				//
				set(column, field.Uint64[F](target))
			case *NumberArg[F]:
				set(column, a.Value)
			}
		}
		// Any register written on a row executing an instruction reads its
		// assignment register from the free value column, whether the write
		// comes from the instruction or from an assignment in the same batch.
		for _, assignReg := range slices.Sorted(maps.Keys(line.WriteRegs)) {
			if len(line.WriteRegs[assignReg]) > 0 {
				set(fmt.Sprintf("p_%s_read_free", assignReg), one)
			}
		}
	}
	//
	return nil
}
