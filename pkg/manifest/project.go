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
package manifest

import (
	"fmt"
	"strings"

	"github.com/consensys/go-airgen/pkg/asm/compiler"
	"github.com/consensys/go-airgen/pkg/asm/ir"
	"github.com/consensys/go-airgen/pkg/object"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	log "github.com/sirupsen/logrus"
)

// Project is a set of machines in their batched assembly form, along with the
// main machine and the operations through which execution can begin.
type Project[F field.Element[F]] struct {
	// Location of the main machine.
	Main object.Location
	// Operations of the main machine through which execution can begin.
	EntryPoints []object.Operation[F]
	// Machines in the order they were declared.
	Machines []*ir.Machine[F]
}

// Load a project from a manifest held in a given source, reporting errors
// against the given filename.
func Load[F field.Element[F]](filename string, src []byte) (*Project[F], error) {
	manifest, err := parseManifest(filename, src)
	if err != nil {
		return nil, err
	}
	//
	return newProject[F](manifest)
}

// LoadFile loads a project from a manifest file.
func LoadFile[F field.Element[F]](filename string) (*Project[F], error) {
	manifest, err := parseManifestFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return newProject[F](manifest)
}

// Machine returns the machine at a given location, or nil if no such machine
// exists.
func (p *Project[F]) Machine(loc object.Location) *ir.Machine[F] {
	for _, m := range p.Machines {
		if m.Location == loc {
			return m
		}
	}
	//
	return nil
}

// Compile every machine in this project, producing a graph ready for linking.
func (p *Project[F]) Compile(c *compiler.Compiler[F]) (*object.Graph[F], error) {
	var main = p.Machine(p.Main)
	//
	if main == nil {
		return nil, fmt.Errorf("unknown main machine %s", p.Main)
	}
	//
	graph := object.NewGraph[F](main.Descriptor(), p.EntryPoints...)
	//
	for _, m := range p.Machines {
		obj, err := c.Compile(m)
		if err != nil {
			return nil, fmt.Errorf("machine %s: %w", m.Location, err)
		}
		//
		graph.Objects[m.Location] = obj
	}
	//
	return graph, nil
}

func newProject[F field.Element[F]](manifest *hclManifest) (*Project[F], error) {
	var (
		project = &Project[F]{Main: object.ParseLocation(manifest.Main)}
		byName  = make(map[object.Location]*hclMachine)
		diags   hcl.Diagnostics
	)
	//
	for _, op := range manifest.Operations {
		operation, err := translateOperation[F](op)
		if err != nil {
			return nil, err
		}
		//
		project.EntryPoints = append(project.EntryPoints, operation)
	}
	//
	for _, m := range manifest.Machines {
		loc := object.ParseLocation(m.Location)
		//
		if _, ok := byName[loc]; ok {
			return nil, fmt.Errorf("duplicate machine %s", loc)
		}
		//
		byName[loc] = m
	}
	//
	for _, m := range manifest.Machines {
		machine, ds := translateMachine[F](m, byName)
		//
		if diags = append(diags, ds...); !ds.HasErrors() {
			project.Machines = append(project.Machines, machine)
		}
	}
	//
	if diags.HasErrors() {
		return nil, diags
	}
	//
	log.Debugf("loaded %d machine(s) with main machine %s", len(project.Machines), project.Main)
	//
	return project, nil
}

func translateMachine[F field.Element[F]](m *hclMachine, machines map[object.Location]*hclMachine) (
	*ir.Machine[F], hcl.Diagnostics) {
	var (
		machine = &ir.Machine[F]{
			Location:      object.ParseLocation(m.Location),
			Degree:        optional(m.Degree),
			Latch:         optional(m.Latch),
			OperationId:   optional(m.OperationId),
			CallSelectors: optional(m.CallSelectors),
		}
		diags hcl.Diagnostics
	)
	//
	for _, r := range m.Registers {
		flag, err := registerFlag(r.Kind)
		if err != nil {
			return nil, diagnostic(srcRange(m.Location), fmt.Sprintf("register %s: %s", r.Name, err))
		}
		//
		machine.Declarations = append(machine.Declarations, &ir.RegisterDeclaration{Name: r.Name, Flag: flag})
	}
	//
	for _, i := range m.Instructions {
		decl, ds := translateInstruction[F](i)
		diags = append(diags, ds...)
		machine.Declarations = append(machine.Declarations, decl)
	}
	//
	if len(m.Pil) > 0 {
		inline := &ir.InlinePil[F]{}
		//
		for _, src := range m.Pil {
			expr, ds := ParseIdentity[F](src, srcRange(m.Location))
			diags = append(diags, ds...)
			inline.Statements = append(inline.Statements, pil.Identity[F](expr))
		}
		//
		machine.Declarations = append(machine.Declarations, inline)
	}
	//
	for _, op := range m.Operations {
		operation, err := translateOperation[F](op)
		if err != nil {
			return nil, diagnostic(srcRange(m.Location), err.Error())
		}
		//
		machine.Operations = append(machine.Operations, operation)
	}
	//
	for _, l := range m.Links {
		link, ds := translateLink[F](l, machines)
		diags = append(diags, ds...)
		machine.Links = append(machine.Links, link)
	}
	//
	for _, b := range m.Batches {
		batch, ds := translateBatch[F](b)
		diags = append(diags, ds...)
		machine.Batches = append(machine.Batches, batch)
	}
	//
	return machine, diags
}

func registerFlag(kind *string) (ir.RegisterFlag, error) {
	if kind == nil {
		return ir.REGULAR_REGISTER, nil
	}
	//
	switch *kind {
	case "pc":
		return ir.PROGRAM_COUNTER, nil
	case "assignment":
		return ir.ASSIGNMENT_REGISTER, nil
	case "regular":
		return ir.REGULAR_REGISTER, nil
	default:
		return 0, fmt.Errorf("unknown register kind %q", *kind)
	}
}

func translateInstruction[F field.Element[F]](i *hclInstruction) (*ir.InstructionDeclaration[F], hcl.Diagnostics) {
	var (
		decl = &ir.InstructionDeclaration[F]{
			Name: i.Name,
			Params: ir.InstructionParams{
				Inputs:  translateParams(i.Inputs),
				Outputs: translateParams(i.Outputs),
			},
		}
		diags hcl.Diagnostics
	)
	//
	for _, src := range i.Body {
		expr, ds := ParseIdentity[F](src, i.DeclRange)
		diags = append(diags, ds...)
		decl.Body = append(decl.Body, &ir.BodyExpression[F]{Expr: expr})
	}
	//
	for _, l := range i.Lookups {
		var lookup = &ir.BodyLookup[F]{Permutation: l.Permutation}
		//
		left, ldiags := ParseExpressions[F](l.Left, i.DeclRange)
		right, rdiags := ParseExpressions[F](l.Right, i.DeclRange)
		diags = append(append(diags, ldiags...), rdiags...)
		//
		lookup.Left.Expressions = left
		lookup.Right.Expressions = right
		//
		if l.RightSelector != nil {
			selector, ds := ParseExpression[F](*l.RightSelector, i.DeclRange)
			diags = append(diags, ds...)
			lookup.Right.Selector = selector
		}
		//
		decl.Body = append(decl.Body, lookup)
	}
	//
	return decl, diags
}

// Translates parameters of the form "name" or "name: type".
func translateParams(params []string) []ir.Param {
	var nparams = make([]ir.Param, len(params))
	//
	for i, param := range params {
		name, kind, _ := strings.Cut(param, ":")
		nparams[i] = ir.Param{Name: strings.TrimSpace(name), Type: strings.TrimSpace(kind)}
	}
	//
	return nparams
}

func translateOperation[F field.Element[F]](op *hclOperation) (object.Operation[F], error) {
	var operation = object.Operation[F]{
		Name:   op.Name,
		Params: object.OperationParams{Inputs: op.Inputs, Outputs: op.Outputs},
	}
	//
	if !op.Id.IsNull() {
		id, err := numberOf[F](op.Id)
		if err != nil {
			return operation, fmt.Errorf("operation %s: %w", op.Name, err)
		}
		//
		operation.Id = util.Some(id)
	}
	//
	return operation, nil
}

func translateLink[F field.Element[F]](l *hclLink, machines map[object.Location]*hclMachine) (object.Link[F],
	hcl.Diagnostics) {
	var (
		link  = object.Link[F]{IsPermutation: l.Permutation}
		rng   = srcRange(l.To)
		diags hcl.Diagnostics
		ds    hcl.Diagnostics
	)
	//
	callee, ok := machines[object.ParseLocation(l.To)]
	if !ok {
		return link, diagnostic(rng, fmt.Sprintf("unknown machine %s", l.To))
	}
	//
	link.To.Machine = object.Machine{
		Location:      object.ParseLocation(callee.Location),
		Latch:         optional(callee.Latch),
		CallSelectors: optional(callee.CallSelectors),
		OperationId:   optional(callee.OperationId),
	}
	link.To.SelectorIdx = optional(l.SelectorIndex)
	//
	op := findOperation(callee, l.Operation)
	if op == nil {
		return link, diagnostic(rng, fmt.Sprintf("unknown operation %s in machine %s", l.Operation, l.To))
	}
	//
	operation, err := translateOperation[F](op)
	if err != nil {
		return link, diagnostic(rng, err.Error())
	}
	//
	link.To.Operation = operation
	//
	link.From.LinkFlag, diags = ParseExpression[F](l.Flag, rng)
	//
	if l.InstrFlag != nil {
		link.From.InstrFlag, ds = ParseExpression[F](*l.InstrFlag, rng)
		diags = append(diags, ds...)
	}
	//
	link.From.Params.Inputs, ds = ParseExpressions[F](l.Inputs, rng)
	diags = append(diags, ds...)
	link.From.Params.Outputs, ds = ParseExpressions[F](l.Outputs, rng)
	diags = append(diags, ds...)
	//
	return link, diags
}

func findOperation(m *hclMachine, name string) *hclOperation {
	for _, op := range m.Operations {
		if op.Name == name {
			return op
		}
	}
	//
	return nil
}

func translateBatch[F field.Element[F]](b *hclBatch) (ir.Batch[F], hcl.Diagnostics) {
	var (
		batch ir.Batch[F]
		diags hcl.Diagnostics
	)
	//
	if b.Label != nil {
		batch.Statements = append(batch.Statements, &ir.Label{Name: *b.Label})
	}
	//
	for _, a := range b.Assigns {
		value, ds := ParseExpression[F](a.Value, b.DeclRange)
		diags = append(diags, ds...)
		batch.Statements = append(batch.Statements,
			&ir.Assignment[F]{Targets: a.Targets, AssignReg: a.Register, Value: value})
	}
	//
	for _, src := range b.Calls {
		call, ds := translateInstructionCall[F](src, b.DeclRange)
		diags = append(diags, ds...)
		batch.Statements = append(batch.Statements, call)
	}
	//
	return batch, diags
}

// Translates an instruction call "instr(args)", or "instr" for an instruction
// without arguments.
func translateInstructionCall[F field.Element[F]](src string, rng hcl.Range) (ir.Statement[F], hcl.Diagnostics) {
	expr, diags := parse(src, rng)
	if diags.HasErrors() {
		return nil, diags
	}
	//
	switch e := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) == 1 {
			return &ir.InstructionCall[F]{Name: e.Traversal.RootName()}, nil
		}
	case *hclsyntax.FunctionCallExpr:
		args, diags := translateAll[F](e.Args)
		if diags.HasErrors() {
			return nil, diags
		}
		//
		return &ir.InstructionCall[F]{Name: e.Name, Args: args}, nil
	}
	//
	return nil, unsupported(expr, "expected instruction call")
}

func optional[T any](val *T) util.Option[T] {
	if val == nil {
		return util.None[T]()
	}
	//
	return util.Some(*val)
}

// Range used for expressions which cannot be attributed to a specific block.
func srcRange(name string) hcl.Range {
	return hcl.Range{Filename: name, Start: hcl.InitialPos, End: hcl.InitialPos}
}
