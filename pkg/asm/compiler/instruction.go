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
	"github.com/consensys/go-airgen/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// LiteralKind determines how a literal argument of an instruction is
// interpreted.
type LiteralKind uint8

const (
	// LABEL literals name a label, and are materialised as its row.
	LABEL LiteralKind = iota
	// SIGNED literals are arbitrary (possibly negated) numbers.
	SIGNED
	// UNSIGNED literals are non-negative numbers in the lower half of the
	// field.
	UNSIGNED
)

// Input is an input parameter of an instruction, which is either a register
// or a literal.
type Input interface {
	// Name of this parameter
	Name() string
}

// RegisterInput is an input passed through the assignment register of the
// same name.
type RegisterInput struct {
	Register string
}

// LiteralInput is an input whose value is fixed by the program.
type LiteralInput struct {
	Param string
	Kind  LiteralKind
}

// Name implementation for the Input interface.
func (p *RegisterInput) Name() string {
	return p.Register
}

// Name implementation for the Input interface.
func (p *LiteralInput) Name() string {
	return p.Param
}

// Instruction captures the signature of an instruction.
type Instruction struct {
	Inputs []Input
	// Assignment registers through which outputs are written.
	Outputs []string
}

// LiteralArgNames returns the names of all literal inputs, in order.
func (p *Instruction) LiteralArgNames() []string {
	var names []string
	//
	for _, input := range p.Inputs {
		if lit, ok := input.(*LiteralInput); ok {
			names = append(names, lit.Param)
		}
	}
	//
	return names
}

// DeclareInstruction declares an instruction, allocating its flag and literal
// parameter columns, and translating its body into constraints guarded by the
// flag.
func (p *Context[F]) DeclareInstruction(decl *ir.InstructionDeclaration[F]) error {
	var (
		flag          = fmt.Sprintf("instr_%s", decl.Name)
		instr         = &Instruction{}
		substitutions = make(map[string]string)
	)
	//
	if _, ok := p.instructions[decl.Name]; ok {
		return structuralError("duplicate instruction %s", decl.Name)
	}
	//
	p.createWitnessFixedPair(flag)
	//
	for _, param := range decl.Params.Inputs {
		input, err := p.classifyInput(decl.Name, param)
		if err != nil {
			return err
		}
		//
		instr.Inputs = append(instr.Inputs, input)
	}
	//
	for _, param := range decl.Params.Outputs {
		if param.Type != "" {
			return structuralError("output %s of instruction %s must be a register", param.Name, decl.Name)
		} else if !p.isAssignmentRegister(param.Name) {
			return referenceError("unknown assignment register %s in instruction %s", param.Name, decl.Name)
		}
		//
		instr.Outputs = append(instr.Outputs, param.Name)
	}
	// Allocate literal parameter columns
	for _, arg := range instr.LiteralArgNames() {
		var column = fmt.Sprintf("instr_%s_param_%s", decl.Name, arg)
		//
		p.createWitnessFixedPair(column)
		substitutions[arg] = column
	}
	//
	for _, element := range decl.Body {
		if err := p.translateBodyElement(flag, element, substitutions); err != nil {
			return err
		}
	}
	//
	log.Debugf("declared instruction %s with %d input(s) and %d output(s)", decl.Name, len(instr.Inputs),
		len(instr.Outputs))
	//
	p.instructions[decl.Name] = instr
	//
	return nil
}

func (p *Context[F]) classifyInput(instr string, param ir.Param) (Input, error) {
	switch param.Type {
	case "":
		if !p.isAssignmentRegister(param.Name) {
			return nil, referenceError("unknown assignment register %s in instruction %s", param.Name, instr)
		}
		//
		return &RegisterInput{param.Name}, nil
	case "label":
		return &LiteralInput{param.Name, LABEL}, nil
	case "signed":
		return &LiteralInput{param.Name, SIGNED}, nil
	case "unsigned":
		return &LiteralInput{param.Name, UNSIGNED}, nil
	default:
		return nil, structuralError("parameter type must be nothing, label, signed or unsigned, found %s",
			param.Type)
	}
}

func (p *Context[F]) translateBodyElement(flag string, element ir.BodyElement[F],
	substitutions map[string]string) error {
	//
	switch e := element.(type) {
	case *ir.BodyExpression[F]:
		expr := pil.Substitute[F](e.Expr, substitutions)
		//
		target, value, err := extractUpdate[F](expr)
		if err != nil {
			return err
		} else if target == "" {
			p.emit(pil.Identity[F](pil.Mul[F](pil.Direct(flag), expr)))
			return nil
		} else if reg, ok := p.registers[target]; ok {
			reg.ConditionedUpdates = append(reg.ConditionedUpdates, ConditionedUpdate[F]{pil.Direct(flag), value})
			return nil
		}
		//
		return referenceError("update of unknown register %s", target)
	case *ir.BodyLookup[F]:
		if e.Left.Selector != nil {
			return structuralError("selector on left-hand side of lookup not supported (%s)", e.Left)
		}
		//
		left := pil.SelectedExpressions[F]{
			Selector:    pil.Direct(flag),
			Expressions: pil.SubstituteAll(e.Left.Expressions, substitutions),
		}
		right := pil.SubstituteSelected(e.Right, substitutions)
		//
		if e.Permutation {
			p.emit(&pil.PermutationIdentity[F]{Left: left, Right: right})
		} else {
			p.emit(&pil.PlookupIdentity[F]{Left: left, Right: right})
		}
		//
		return nil
	default:
		return structuralError("unknown instruction body element")
	}
}

// Identifies an update of the form "r' - e", returning the register r and the
// value e.  Otherwise, the register returned is empty.
func extractUpdate[F field.Element[F]](expr pil.Expression[F]) (string, pil.Expression[F], error) {
	if e, ok := expr.(*pil.BinaryOp[F]); ok && e.Op == pil.SUB {
		if ref, ok := e.Left.(*pil.Reference); ok && ref.Next {
			if ref.Namespace != "" || ref.Index.HasValue() {
				return "", nil, structuralError("invalid register update %s", expr)
			}
			//
			return ref.Name, e.Right, nil
		}
	}
	//
	return "", expr, nil
}
