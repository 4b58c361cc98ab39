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
	"math/bits"

	"github.com/consensys/go-airgen/pkg/asm/ir"
	"github.com/consensys/go-airgen/pkg/object"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// ASSEMBLY_NAMESPACE is the namespace used when compiling a machine in
// standalone mode.
const ASSEMBLY_NAMESPACE = "Assembly"

// Compiler packages up everything needed to compile a machine in its batched
// assembly form down into a set of constraints.  Observe that compilation may
// fail if the machine is malformed in some way (e.g. an instruction is called
// with the wrong number of arguments).
type Compiler[F field.Element[F]] struct {
	// standalone determines whether the constraints are wrapped in their own
	// namespace, as required when a machine is not subsequently linked.
	standalone bool
}

// NewCompiler constructs a new compiler.
func NewCompiler[F field.Element[F]]() *Compiler[F] {
	return &Compiler[F]{false}
}

// Standalone configures whether compiled machines are wrapped in their own
// namespace.
func (p *Compiler[F]) Standalone(flag bool) *Compiler[F] {
	p.standalone = flag
	return p
}

// Compile a given machine into an object, ready for linking.
func (p *Compiler[F]) Compile(machine *ir.Machine[F]) (object.Object[F], error) {
	var ctx = NewContext[F]()
	//
	if err := p.compile(ctx, machine); err != nil {
		return object.Object[F]{}, err
	}
	//
	log.Debugf("compiled machine %s into %d statement(s)", machine.Location, len(ctx.Statements()))
	//
	return object.Object[F]{
		Degree:        machine.Degree,
		Pil:           ctx.Statements(),
		Links:         machine.Links,
		Latch:         machine.Latch,
		CallSelectors: machine.CallSelectors,
		HasPC:         ctx.HasPC(),
	}, nil
}

func (p *Compiler[F]) compile(ctx *Context[F], machine *ir.Machine[F]) error {
	if p.standalone {
		degree := machine.Degree.UnwrapOr(object.DEFAULT_DEGREE)
		//
		if bits.OnesCount64(degree) != 1 {
			return structuralError("machine degree must be a power of two, found %d", degree)
		}
		//
		ctx.emit(&pil.Namespace{Name: ASSEMBLY_NAMESPACE, Degree: degree})
	}
	//
	ctx.emit(pil.FirstStep[F](FIRST_STEP))
	//
	for _, decl := range machine.Declarations {
		if err := ctx.declare(decl); err != nil {
			return err
		}
	}
	//
	for _, batch := range machine.Batches {
		if err := ctx.AddBatch(batch); err != nil {
			return err
		}
	}
	//
	log.Debugf("machine %s has %d code line(s)", machine.Location, len(ctx.codeLines))
	//
	if err := ctx.createAssignmentConstraints(); err != nil {
		return err
	}
	//
	ctx.synthesiseUpdates()
	//
	if err := ctx.translateCodeLines(); err != nil {
		return err
	}
	//
	ctx.emitProgramLookup()
	//
	return nil
}

func (p *Context[F]) declare(decl ir.Declaration[F]) error {
	switch d := decl.(type) {
	case *ir.RegisterDeclaration:
		return p.DeclareRegister(d.Name, d.Flag)
	case *ir.InstructionDeclaration[F]:
		return p.DeclareInstruction(d)
	case *ir.InlinePil[F]:
		p.emit(d.Statements...)
		return nil
	default:
		return structuralError("unknown declaration")
	}
}

// Emits the lookup which ties the execution trace to the program.  Every row of
// the trace must match some line of the program.
func (p *Context[F]) emitProgramLookup() {
	var witnesses, fixed []pil.Expression[F]
	//
	if len(p.lineLookup) == 0 {
		return
	}
	//
	for _, pair := range p.lineLookup {
		witnesses = append(witnesses, pil.Direct(pair.witness))
		fixed = append(fixed, pil.Direct(pair.fixed))
	}
	//
	p.emit(&pil.PlookupIdentity[F]{
		Left:  pil.SelectedExpressions[F]{Expressions: witnesses},
		Right: pil.SelectedExpressions[F]{Expressions: fixed},
	})
}
