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
package linker

import (
	"github.com/consensys/go-airgen/pkg/object"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// MAIN_OPERATION is the name of the entry point at which execution begins.
const MAIN_OPERATION = "main"

// FIRST_STEP is the fixed column, in the main machine, used to force
// execution to begin with the main operation.
const FIRST_STEP = "_linker_first_step"

// Link a graph of compiled machines together to produce a single constraint
// file (or one or more errors).  Linking is the process of placing each machine
// in its own namespace, and turning the calls between machines into lookups
// (or permutations) over the columns of the machines involved.  All machines
// must agree on a single degree: either that of the main machine or, failing
// that, the default degree.  Every machine whose degree disagrees is reported.
func Link[F field.Element[F]](graph *object.Graph[F]) (*pil.File[F], []error) {
	var (
		linker = NewLinker(graph)
		errors = linker.CheckDegrees()
	)
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return linker.Link(), nil
}

// Linker packages together the information required for linking a graph of
// machines.
type Linker[F field.Element[F]] struct {
	graph *object.Graph[F]
	// Degree of all namespaces
	degree uint64
	// Statements emitted so far
	statements []pil.Statement[F]
}

// NewLinker constructs a new linker for a given graph, whose degree is
// determined by the main machine.
func NewLinker[F field.Element[F]](graph *object.Graph[F]) *Linker[F] {
	var degree = object.DEFAULT_DEGREE
	//
	if main, ok := graph.Objects[graph.Main.Location]; ok {
		degree = main.Degree.UnwrapOr(degree)
	}
	//
	return &Linker[F]{graph, degree, nil}
}

// Degree returns the degree which all machines must have.
func (p *Linker[F]) Degree() uint64 {
	return p.degree
}

// CheckDegrees checks every machine in the graph against the required degree,
// returning an error for every machine which disagrees.
func (p *Linker[F]) CheckDegrees() []error {
	var errors []error
	//
	for _, loc := range p.graph.Locations() {
		obj := p.graph.Objects[loc]
		//
		if obj.Degree.HasValue() && obj.Degree.Unwrap() != p.degree {
			err := &DegreeMismatchError{loc, p.degree, obj.Degree.Unwrap()}
			log.Warn(err.Error())
			errors = append(errors, err)
		}
	}
	//
	return errors
}

// Link all machines in the graph, producing one namespace per machine.
func (p *Linker[F]) Link() *pil.File[F] {
	for _, loc := range p.graph.Locations() {
		obj := p.graph.Objects[loc]
		//
		log.Debugf("linking machine %s (%d link(s))", loc, len(obj.Links))
		//
		p.emit(&pil.Namespace{Name: loc.String(), Degree: p.degree})
		p.emit(obj.Pil...)
		//
		for _, link := range obj.Links {
			p.emit(linkIdentity(link))
		}
		//
		if loc == p.graph.Main.Location {
			p.forceMainOperation()
		}
	}
	//
	return &pil.File[F]{Statements: p.statements}
}

func (p *Linker[F]) emit(statements ...pil.Statement[F]) {
	p.statements = append(p.statements, statements...)
}

// Pins the operation id of the main machine, on the first row, to that of the
// main operation.
func (p *Linker[F]) forceMainOperation() {
	var operationId = p.graph.Main.OperationId
	//
	op, ok := p.graph.EntryPoint(MAIN_OPERATION)
	//
	if !ok || operationId.IsEmpty() || op.Id.IsEmpty() {
		return
	}
	//
	p.emit(pil.FirstStep[F](FIRST_STEP))
	p.emit(pil.Identity[F](pil.Mul[F](pil.Direct(FIRST_STEP),
		pil.Sub[F](pil.Direct(operationId.Unwrap()), pil.Const(op.Id.Unwrap())))))
}

// Translates a link into a lookup, or permutation, from the caller into the
// callee.
func linkIdentity[F field.Element[F]](link object.Link[F]) pil.Statement[F] {
	var (
		callee = link.To.Machine
		op     = link.To.Operation
		ns     = callee.Location.String()
		lhs    = pil.SelectedExpressions[F]{Selector: link.From.LinkFlag}
		rhs    pil.SelectedExpressions[F]
	)
	//
	if callee.OperationId.HasValue() && op.Id.HasValue() {
		lhs.Expressions = append(lhs.Expressions, pil.Const(op.Id.Unwrap()))
		rhs.Expressions = append(rhs.Expressions, pil.Namespaced(ns, callee.OperationId.Unwrap()))
	}
	//
	lhs.Expressions = append(lhs.Expressions, link.From.Params.All()...)
	//
	for _, param := range op.Params.All() {
		rhs.Expressions = append(rhs.Expressions, pil.Namespaced(ns, param))
	}
	//
	if callee.Latch.HasValue() {
		rhs.Selector = pil.Namespaced(ns, callee.Latch.Unwrap())
	}
	//
	if !link.IsPermutation {
		return &pil.PlookupIdentity[F]{Left: lhs, Right: rhs}
	}
	// Permutations into a specific call selector
	if link.To.SelectorIdx.HasValue() && callee.CallSelectors.HasValue() {
		selector := pil.Indexed(ns, callee.CallSelectors.Unwrap(), link.To.SelectorIdx.Unwrap())
		//
		if rhs.Selector != nil {
			rhs.Selector = pil.Mul[F](rhs.Selector, selector)
		} else {
			rhs.Selector = selector
		}
	}
	//
	return &pil.PermutationIdentity[F]{Left: lhs, Right: rhs}
}
