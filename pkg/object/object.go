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
package object

import (
	"fmt"
	"slices"

	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
)

// DEFAULT_DEGREE is the degree used for machines when none is given anywhere.
const DEFAULT_DEGREE uint64 = 1024

// Object is the result of compiling a single machine instance.  It holds the
// constraints of the machine itself, along with the (as yet unresolved) links
// to the machines it calls.
type Object[F field.Element[F]] struct {
	// Degree of the machine, if one was declared.
	Degree util.Option[uint64]
	// Identities and column declarations of this machine.
	Pil []pil.Statement[F]
	// Links from this machine to its callees.
	Links []Link[F]
	// Name of the latch column, if any.
	Latch util.Option[string]
	// Name of the call selector array, if any.
	CallSelectors util.Option[string]
	// Signals whether this machine has a program counter.
	HasPC bool
}

// WithDegree returns a copy of this object with the given degree (if any).
func (p Object[F]) WithDegree(degree util.Option[uint64]) Object[F] {
	p.Degree = degree
	return p
}

// Link represents a single call site from one machine into an operation of
// another.
type Link[F field.Element[F]] struct {
	// Source of the link, i.e. a flag and some arguments
	From LinkFrom[F]
	// Target of the link, i.e. an operation in some machine
	To LinkTo[F]
	// Signals a permutation link (rather than a lookup)
	IsPermutation bool
}

// LinkFrom describes the calling side of a link.
type LinkFrom[F field.Element[F]] struct {
	// Instruction flag, if this link originates from an instruction.
	InstrFlag pil.Expression[F]
	// Flag which activates the link.
	LinkFlag pil.Expression[F]
	// Arguments passed by the caller.
	Params CallableParams[F]
}

// CallableParams are the expressions passed into (and received from) a call.
type CallableParams[F field.Element[F]] struct {
	Inputs  []pil.Expression[F]
	Outputs []pil.Expression[F]
}

// All returns the inputs followed by the outputs.
func (p CallableParams[F]) All() []pil.Expression[F] {
	return slices.Concat(p.Inputs, p.Outputs)
}

// LinkTo describes the called side of a link.
type LinkTo[F field.Element[F]] struct {
	// Machine being called.
	Machine Machine
	// Operation being called.
	Operation Operation[F]
	// Index into the call selector array of the callee (permutations only).
	SelectorIdx util.Option[uint64]
}

// Machine describes a machine instance as a call target.
type Machine struct {
	// Location of this instance.
	Location Location
	// Name of its latch column, if any.
	Latch util.Option[string]
	// Name of its call selector array, if any.
	CallSelectors util.Option[string]
	// Name of the column holding the id of the active operation, if any.
	OperationId util.Option[string]
}

// Operation is a callable entry point of a machine.
type Operation[F field.Element[F]] struct {
	// Name of the operation.
	Name string
	// Value of the machine's operation id column which activates this
	// operation, if any.
	Id util.Option[F]
	// Declared parameters, named by the callee's columns.
	Params OperationParams
}

// OperationParams names the columns holding an operation's inputs and
// outputs.
type OperationParams struct {
	Inputs  []string
	Outputs []string
}

// All returns the inputs followed by the outputs.
func (p OperationParams) All() []string {
	return slices.Concat(p.Inputs, p.Outputs)
}

func (p Operation[F]) String() string {
	if p.Id.HasValue() {
		return fmt.Sprintf("%s<%s>(%v) -> (%v)", p.Name, p.Id.Unwrap().String(), p.Params.Inputs, p.Params.Outputs)
	}
	//
	return fmt.Sprintf("%s(%v) -> (%v)", p.Name, p.Params.Inputs, p.Params.Outputs)
}

// Graph is a set of compiled machine instances, along with the main machine
// and its entry points.
type Graph[F field.Element[F]] struct {
	// Main machine of the program.
	Main Machine
	// Operations of the main machine through which execution can begin.
	EntryPoints []Operation[F]
	// Compiled objects, keyed by location.
	Objects map[Location]Object[F]
}

// NewGraph constructs an empty graph for a given main machine.
func NewGraph[F field.Element[F]](main Machine, entryPoints ...Operation[F]) *Graph[F] {
	return &Graph[F]{main, entryPoints, make(map[Location]Object[F])}
}

// Locations returns the locations of all objects in this graph, in order.
func (p *Graph[F]) Locations() []Location {
	var locations = make([]Location, 0, len(p.Objects))
	//
	for loc := range p.Objects {
		locations = append(locations, loc)
	}
	//
	slices.SortFunc(locations, Location.Cmp)
	//
	return locations
}

// EntryPoint returns the entry point with the given name, if one exists.
func (p *Graph[F]) EntryPoint(name string) (Operation[F], bool) {
	for _, op := range p.EntryPoints {
		if op.Name == name {
			return op, true
		}
	}
	//
	var empty Operation[F]
	//
	return empty, false
}
