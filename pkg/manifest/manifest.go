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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclManifest represents the top-level structure of a manifest file for
// decoding.
type hclManifest struct {
	Main       string          `hcl:"main"`
	Operations []*hclOperation `hcl:"operation,block"`
	Machines   []*hclMachine   `hcl:"machine,block"`
}

// hclMachine represents a "machine" block, labelled by its location.
type hclMachine struct {
	Location      string            `hcl:"location,label"`
	Degree        *uint64           `hcl:"degree,optional"`
	Latch         *string           `hcl:"latch,optional"`
	OperationId   *string           `hcl:"operation_id,optional"`
	CallSelectors *string           `hcl:"call_selectors,optional"`
	Registers     []*hclRegister    `hcl:"register,block"`
	Instructions  []*hclInstruction `hcl:"instruction,block"`
	Pil           []string          `hcl:"pil,optional"`
	Operations    []*hclOperation   `hcl:"operation,block"`
	Links         []*hclLink        `hcl:"link,block"`
	Batches       []*hclBatch       `hcl:"batch,block"`
}

// hclRegister represents a "register" block.
type hclRegister struct {
	Name string  `hcl:"name,label"`
	Kind *string `hcl:"kind,optional"`
}

// hclInstruction represents an "instruction" block.
type hclInstruction struct {
	Name    string       `hcl:"name,label"`
	Inputs  []string     `hcl:"inputs,optional"`
	Outputs []string     `hcl:"outputs,optional"`
	Body    []string     `hcl:"body,optional"`
	Lookups []*hclLookup `hcl:"lookup,block"`
	// Range of the block, used for reporting errors in the body.
	DeclRange hcl.Range `hcl:",def_range"`
}

// hclLookup represents a "lookup" block within an instruction.
type hclLookup struct {
	Left          []string `hcl:"left"`
	RightSelector *string  `hcl:"right_selector,optional"`
	Right         []string `hcl:"right"`
	Permutation   bool     `hcl:"permutation,optional"`
}

// hclOperation represents an "operation" block, either at the top level (where
// it describes an entry point) or within a machine.
type hclOperation struct {
	Name    string    `hcl:"name,label"`
	Id      cty.Value `hcl:"id,optional"`
	Inputs  []string  `hcl:"inputs,optional"`
	Outputs []string  `hcl:"outputs,optional"`
}

// hclLink represents a "link" block, i.e. a call into another machine.
type hclLink struct {
	Flag          string   `hcl:"flag"`
	InstrFlag     *string  `hcl:"instr_flag,optional"`
	Inputs        []string `hcl:"inputs,optional"`
	Outputs       []string `hcl:"outputs,optional"`
	To            string   `hcl:"to"`
	Operation     string   `hcl:"operation"`
	Permutation   bool     `hcl:"permutation,optional"`
	SelectorIndex *uint64  `hcl:"selector_index,optional"`
}

// hclBatch represents a "batch" block, i.e. a group of statements executing on
// the same row.
type hclBatch struct {
	Label   *string      `hcl:"label,optional"`
	Assigns []*hclAssign `hcl:"assign,block"`
	Calls   []string     `hcl:"calls,optional"`
	// Range of the block, used for reporting errors in statements.
	DeclRange hcl.Range `hcl:",def_range"`
}

// hclAssign represents an "assign" block, labelled by the assignment register
// used.
type hclAssign struct {
	Register string   `hcl:"register,label"`
	Targets  []string `hcl:"targets,optional"`
	Value    string   `hcl:"value"`
}

func parseManifest(filename string, src []byte) (*hclManifest, error) {
	parser := hclparse.NewParser()
	//
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	//
	return decodeManifest(filename, file)
}

func parseManifestFile(filename string) (*hclManifest, error) {
	parser := hclparse.NewParser()
	//
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	//
	return decodeManifest(filename, file)
}

func decodeManifest(filename string, file *hcl.File) (*hclManifest, error) {
	var manifest hclManifest
	//
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	//
	return &manifest, nil
}
