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

// CodeLine describes a single row of the program, as determined by a batch of
// statements executing in lock step.
type CodeLine[F field.Element[F]] struct {
	// Label attached to this row, if any.
	Label util.Option[string]
	// Registers written on this row, keyed by the assignment register they are
	// written through.
	WriteRegs map[string][]string
	// Value of each assignment register on this row.
	Value map[string][]AffineTerm[F]
	// Instructions executed on this row.
	Instructions []Invocation[F]
}

// Invocation records the execution of an instruction, along with the values
// of its literal arguments.
type Invocation[F field.Element[F]] struct {
	Name string
	Args []LiteralArg
}

// LiteralArg is the value of a literal parameter, which is either a label or a
// number.
type LiteralArg interface {
	isLiteralArg()
}

// LabelRef refers to a label, whose row is only known once the program has
// been fully built.
type LabelRef struct {
	Name string
}

// NumberArg holds a numeric literal.
type NumberArg[F field.Element[F]] struct {
	Value F
}

func (*LabelRef) isLiteralArg()     {}
func (*NumberArg[F]) isLiteralArg() {}

func newCodeLine[F field.Element[F]]() CodeLine[F] {
	return CodeLine[F]{
		WriteRegs: make(map[string][]string),
		Value:     make(map[string][]AffineTerm[F]),
	}
}

// Merge combines another line into this one, as happens for two statements of
// the same batch.  Write targets and values accumulate, and at most one of the
// lines may carry a label.
func (p *CodeLine[F]) Merge(other CodeLine[F]) error {
	if other.Label.HasValue() {
		if p.Label.HasValue() {
			return structuralError("multiple labels in one batch (%s and %s)", p.Label.Unwrap(),
				other.Label.Unwrap())
		}
		//
		p.Label = other.Label
	}
	//
	for _, reg := range slices.Sorted(maps.Keys(other.WriteRegs)) {
		p.WriteRegs[reg] = append(p.WriteRegs[reg], other.WriteRegs[reg]...)
	}
	//
	for _, reg := range slices.Sorted(maps.Keys(other.Value)) {
		p.Value[reg] = append(p.Value[reg], other.Value[reg]...)
	}
	//
	p.Instructions = append(p.Instructions, other.Instructions...)
	//
	return nil
}

// AddBatch translates a batch of statements into a single code line, and
// appends it to the program.
func (p *Context[F]) AddBatch(batch ir.Batch[F]) error {
	var line = newCodeLine[F]()
	//
	for _, stmt := range batch.Statements {
		next, err := p.translateStatement(stmt)
		if err != nil {
			return err
		} else if err := line.Merge(next); err != nil {
			return err
		}
	}
	//
	p.codeLines = append(p.codeLines, line)
	//
	return nil
}

func (p *Context[F]) translateStatement(stmt ir.Statement[F]) (CodeLine[F], error) {
	var (
		line = newCodeLine[F]()
		err  error
	)
	//
	switch s := stmt.(type) {
	case *ir.Label:
		line.Label = util.Some(s.Name)
	case *ir.Assignment[F]:
		err = p.translateAssignment(&line, s)
	case *ir.InstructionCall[F]:
		err = p.translateInstruction(&line, s.Name, s.Args)
	default:
		err = structuralError("unknown statement")
	}
	//
	return line, err
}

func (p *Context[F]) translateAssignment(line *CodeLine[F], s *ir.Assignment[F]) error {
	if !p.isAssignmentRegister(s.AssignReg) {
		return referenceError("unknown assignment register %s", s.AssignReg)
	} else if call, ok := s.Value.(*pil.Call[F]); ok {
		return p.translateFunctionalCall(line, s, call)
	} else if len(s.Targets) > 1 {
		return structuralError("multiple targets in assignment via %s not supported", s.AssignReg)
	}
	//
	terms, err := ToAffine[F](s.Value)
	if err != nil {
		return err
	}
	//
	line.WriteRegs[s.AssignReg] = append(line.WriteRegs[s.AssignReg], s.Targets...)
	line.Value[s.AssignReg] = terms
	//
	return nil
}

// Handles an instruction call of the form "A <=X= instr(args)", which is
// treated as "instr(args, A)" provided the instruction has X as its only
// output.
func (p *Context[F]) translateFunctionalCall(line *CodeLine[F], s *ir.Assignment[F], call *pil.Call[F]) error {
	instr, ok := p.instructions[call.Function]
	//
	if !ok {
		return referenceError("instruction not found: %s", call.Function)
	} else if len(s.Targets) != 1 {
		return structuralError("instruction %s called with %d targets (expected 1)", call.Function,
			len(s.Targets))
	} else if len(instr.Outputs) != 1 || instr.Outputs[0] != s.AssignReg {
		return structuralError("instruction %s does not write through assignment register %s", call.Function,
			s.AssignReg)
	}
	//
	args := append(slices.Clone(call.Args), pil.Expression[F](pil.Direct(s.Targets[0])))
	//
	return p.translateInstruction(line, call.Function, args)
}

func (p *Context[F]) translateInstruction(line *CodeLine[F], name string, args []pil.Expression[F]) error {
	var invocation = Invocation[F]{Name: name}
	//
	instr, ok := p.instructions[name]
	if !ok {
		return referenceError("instruction not found: %s", name)
	} else if n := len(instr.Inputs) + len(instr.Outputs); n != len(args) {
		return structuralError("instruction %s expects %d argument(s), found %d", name, n, len(args))
	}
	//
	for i, input := range instr.Inputs {
		switch in := input.(type) {
		case *RegisterInput:
			terms, err := ToAffine[F](args[i])
			if err != nil {
				return err
			}
			//
			line.Value[in.Register] = append(line.Value[in.Register], terms...)
		case *LiteralInput:
			arg, err := translateLiteral[F](in, args[i])
			if err != nil {
				return err
			}
			//
			invocation.Args = append(invocation.Args, arg)
		}
	}
	//
	for i, reg := range instr.Outputs {
		ref, ok := args[len(instr.Inputs)+i].(*pil.Reference)
		if !ok || !ref.IsDirect() {
			return structuralError("output of instruction %s must be a register, found %s", name,
				args[len(instr.Inputs)+i])
		}
		//
		line.WriteRegs[reg] = append(line.WriteRegs[reg], ref.Name)
	}
	//
	line.Instructions = append(line.Instructions, invocation)
	//
	return nil
}

func translateLiteral[F field.Element[F]](param *LiteralInput, arg pil.Expression[F]) (LiteralArg, error) {
	switch param.Kind {
	case LABEL:
		if ref, ok := arg.(*pil.Reference); ok && ref.IsDirect() {
			return &LabelRef{ref.Name}, nil
		}
		//
		return nil, structuralError("expected label for parameter %s, found %s", param.Param, arg)
	case UNSIGNED:
		if n, ok := arg.(*pil.Number[F]); ok && field.IsInLowerHalf(n.Value) {
			return &NumberArg[F]{n.Value}, nil
		} else if n, ok := negatedNumber[F](arg); ok && n.IsZero() {
			return &NumberArg[F]{n}, nil
		} else if ok || isNumber[F](arg) {
			return nil, valueRangeError("Number passed to unsigned parameter is negative or too large: %s", arg)
		}
	case SIGNED:
		if n, ok := arg.(*pil.Number[F]); ok {
			return &NumberArg[F]{n.Value}, nil
		} else if n, ok := negatedNumber[F](arg); ok {
			return &NumberArg[F]{n.Neg()}, nil
		}
	}
	//
	return nil, structuralError("expected number for parameter %s, found %s", param.Param, arg)
}

// Matches an expression of the form "-n" for some number n.
func negatedNumber[F field.Element[F]](expr pil.Expression[F]) (F, bool) {
	if e, ok := expr.(*pil.UnaryOp[F]); ok && e.Op == pil.MINUS {
		if n, ok := e.Expr.(*pil.Number[F]); ok {
			return n.Value, true
		}
	}
	//
	return field.Zero[F](), false
}

func isNumber[F field.Element[F]](expr pil.Expression[F]) bool {
	_, ok := expr.(*pil.Number[F])
	return ok
}
