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
	"math/big"
	"strings"
	"testing"

	"github.com/consensys/go-airgen/pkg/asm/ir"
	"github.com/consensys/go-airgen/pkg/object"
	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/consensys/go-airgen/pkg/util/field/goldilocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type F = goldilocks.Element

// ============================================================================
// Programs
// ============================================================================

func Test_Program_01(t *testing.T) {
	file := checkCompiles(t, fpMachine())
	//
	assert.Equal(t, "[0, 1, 2, 3, 4] + [4]*", constantOf(t, file, "p_line"))
	assert.Equal(t, "[0, 0, 1, 0, 0] + [0]*", constantOf(t, file, "p_instr_inc_fp"))
	assert.Equal(t, "[0, 0, 7, 0, 0] + [0]*", constantOf(t, file, "p_instr_inc_fp_param_amount"))
	assert.Equal(t, "[0, 0, 0, -2, 0] + [0]*", constantOf(t, file, "p_instr_adjust_fp_param_amount"))
	assert.Equal(t, "[0, 0, 0, 1, 0] + [0]*", constantOf(t, file, "p_instr_adjust_fp"))
	assert.Equal(t, "[1, 0, 0, 0, 0] + [0]*", constantOf(t, file, "p_instr__reset"))
	assert.Equal(t, "[0, 0, 0, 0, 1] + [1]*", constantOf(t, file, "p_instr__loop"))
}

func Test_Program_02(t *testing.T) {
	file := checkCompiles(t, fpMachine())
	// label resolves to its row
	assert.Equal(t, "[0, 0, 0, 3, 0] + [0]*", constantOf(t, file, "p_instr_adjust_fp_param_t"))
}

func Test_Program_03(t *testing.T) {
	file := checkCompiles(t, fpMachine())
	text := file.String()
	//
	assert.Contains(t, text, "pol constant first_step = [1] + [0]*;")
	assert.Contains(t, text, "(first_step * fp) = 0;")
	assert.Contains(t, text, "fp' = (((instr_inc_fp * (fp + instr_inc_fp_param_amount))"+
		" + (instr_adjust_fp * (fp + instr_adjust_fp_param_amount)))"+
		" + ((1 - (instr_inc_fp + instr_adjust_fp)) * fp));")
	assert.Contains(t, text, "pc' = ((1 - first_step') * ((instr_adjust_fp * instr_adjust_fp_param_t)"+
		" + ((1 - instr_adjust_fp) * (pc + 1))));")
	assert.Contains(t, text, "{ pc, instr__reset, instr__jump_to_operation, ")
	assert.Contains(t, text, "} in { p_line, p_instr__reset, p_instr__jump_to_operation, ")
}

func Test_Program_04(t *testing.T) {
	var machine = fpMachine()
	// drop all batches
	machine.Batches = nil
	file := checkCompiles(t, machine)
	//
	assert.Equal(t, "[0]*", constantOf(t, file, "p_line"))
	assert.Equal(t, "[0]*", constantOf(t, file, "p_instr_inc_fp"))
}

func Test_Program_05(t *testing.T) {
	// every program column has one value per line
	for _, machine := range []*ir.Machine[F]{fpMachine(), assignMachine(true)} {
		file := checkCompiles(t, machine)
		n := len(file.Constant(LINE).Values.Values)
		//
		for _, s := range file.Statements {
			if c, ok := s.(*pil.ConstantDefinition[F]); ok && c.Name != FIRST_STEP {
				assert.Len(t, c.Values.Values, n, c.Name)
			}
		}
	}
}

func Test_Program_06(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Batches = append(machine.Batches, ir.NewBatch[F](label("loop")))
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Program_07(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Batches[3] = ir.NewBatch[F](call("adjust_fp", neg(2), pil.Direct("nowhere")))
	checkFails(t, machine, REFERENCE_ERROR)
}

func Test_Program_08(t *testing.T) {
	var machine = fpMachine()
	// two labels in one batch
	machine.Batches[2] = ir.NewBatch[F](label("l1"), label("l2"))
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Program_09(t *testing.T) {
	file := checkCompiles(t, standalone(fpMachine(), 8))
	//
	assert.Equal(t, "namespace Assembly(8);", file.Statements[0].String())
	assert.Equal(t, "pol constant first_step = [1] + [0]*;", file.Statements[1].String())
}

func Test_Program_10(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Degree = util.Some[uint64](6)
	_, err := NewCompiler[F]().Standalone(true).Compile(machine)
	assert.True(t, IsKind(err, STRUCTURAL_ERROR))
	// degree is ignored unless standalone
	_, err = NewCompiler[F]().Compile(machine)
	assert.NoError(t, err)
}

func Test_Program_11(t *testing.T) {
	obj, err := NewCompiler[F]().Compile(fpMachine())
	require.NoError(t, err)
	//
	assert.True(t, obj.HasPC)
	assert.Equal(t, util.Some("latch"), obj.Latch)
	assert.True(t, obj.CallSelectors.IsEmpty())
}

// ============================================================================
// Instruction Calls
// ============================================================================

func Test_Call_01(t *testing.T) {
	var (
		half, _ = new(big.Int).SetString("9223372034707292160", 10)
		machine = fpMachine()
	)
	// Largest value in lower half
	machine.Batches[2] = ir.NewBatch[F](call("inc_fp", pil.Const(field.BigInt[F](half))))
	file := checkCompiles(t, machine)
	assert.Equal(t, "[0, 0, 9223372034707292160, 0, 0] + [0]*", constantOf(t, file, "p_instr_inc_fp_param_amount"))
}

func Test_Call_02(t *testing.T) {
	var (
		half, _ = new(big.Int).SetString("9223372034707292161", 10)
		machine = fpMachine()
	)
	// Smallest value outside lower half
	machine.Batches[2] = ir.NewBatch[F](call("inc_fp", pil.Const(field.BigInt[F](half))))
	checkFails(t, machine, VALUE_RANGE_ERROR)
}

func Test_Call_03(t *testing.T) {
	var machine = fpMachine()
	// Modulus minus one
	machine.Batches[2] = ir.NewBatch[F](call("inc_fp", pil.Const(field.Int64[F](-1))))
	_, err := NewCompiler[F]().Compile(machine)
	//
	assert.True(t, IsKind(err, VALUE_RANGE_ERROR))
	assert.EqualError(t, err, "Number passed to unsigned parameter is negative or too large: -1")
}

func Test_Call_04(t *testing.T) {
	var machine = fpMachine()
	// negated literal
	machine.Batches[2] = ir.NewBatch[F](call("inc_fp", neg(3)))
	checkFails(t, machine, VALUE_RANGE_ERROR)
	// negated zero is still zero
	machine.Batches[2] = ir.NewBatch[F](call("inc_fp", neg(0)))
	checkCompiles(t, machine)
}

func Test_Call_05(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Batches[2] = ir.NewBatch[F](call("inc_fp", num(1), num(2)))
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Call_06(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Batches[2] = ir.NewBatch[F](call("dec_fp", num(1)))
	checkFails(t, machine, REFERENCE_ERROR)
}

func Test_Call_07(t *testing.T) {
	var machine = fpMachine()
	// label must be a plain symbol
	machine.Batches[3] = ir.NewBatch[F](call("adjust_fp", num(1), num(3)))
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Call_08(t *testing.T) {
	var machine = assignMachine(true)
	// output must be a register
	machine.Batches = []ir.Batch[F]{ir.NewBatch[F](call("get", num(1)))}
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Call_09(t *testing.T) {
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", &pil.Call[F]{Function: "get"}, "A")),
		ir.NewBatch[F](call("get", pil.Direct("A"))),
		ir.NewBatch[F](assign("X", num(1), "A")),
	}
	file := checkCompiles(t, machine)
	// outputs force reading the free value
	assert.Equal(t, "[1, 1, 0] + [0]*", constantOf(t, file, "p_X_read_free"))
	assert.Equal(t, "[1, 1, 1] + [1]*", constantOf(t, file, "p_reg_write_X_A"))
	assert.Equal(t, "[1, 1, 0] + [0]*", constantOf(t, file, "p_instr_get"))
}

func Test_Call_10(t *testing.T) {
	var machine = assignMachine(true)
	// functional form requires the output to be the assignment register used
	machine.Batches = []ir.Batch[F]{ir.NewBatch[F](assign("Y", &pil.Call[F]{Function: "get"}, "A"))}
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Call_11(t *testing.T) {
	var machine = assignMachine(true)
	// any write on a row executing an instruction reads the free value
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("Y", num(1), "B"), call("put", num(2))),
		ir.NewBatch[F](assign("Y", num(1), "B")),
	}
	file := checkCompiles(t, machine)
	//
	assert.Equal(t, "[1, 0] + [0]*", constantOf(t, file, "p_Y_read_free"))
	assert.Equal(t, "[1, 1] + [1]*", constantOf(t, file, "p_Y_const"))
	assert.Equal(t, "[1, 1] + [1]*", constantOf(t, file, "p_reg_write_Y_B"))
	assert.Equal(t, "[0, 0] + [0]*", constantOf(t, file, "p_X_read_free"))
	assert.Equal(t, "[2, 0] + [0]*", constantOf(t, file, "p_X_const"))
}

// ============================================================================
// Assignments
// ============================================================================

func Test_Assign_01(t *testing.T) {
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", pil.Add[F](pil.Direct("A"), num(3)), "A")),
		ir.NewBatch[F](assign("X", pil.Sub[F](pil.Direct("A"), pil.Mul[F](num(2), pil.Direct("A"))), "A")),
		ir.NewBatch[F](assign("X", &pil.BinaryOp[F]{Left: num(2), Op: pil.POW, Right: num(3)}, "A")),
	}
	file := checkCompiles(t, machine)
	//
	assert.Equal(t, "[1, -1, 0] + [0]*", constantOf(t, file, "p_read_X_A"))
	assert.Equal(t, "[3, 0, 8] + [8]*", constantOf(t, file, "p_X_const"))
	assert.Equal(t, "[1, 1, 1] + [1]*", constantOf(t, file, "p_reg_write_X_A"))
	assert.Equal(t, "[0, 0, 0] + [0]*", constantOf(t, file, "p_reg_write_Y_A"))
}

func Test_Assign_02(t *testing.T) {
	var machine = assignMachine(true)
	// merged batches accumulate
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", pil.Direct("A"), "A"), assign("Y", pil.Direct("A"), "B")),
	}
	file := checkCompiles(t, machine)
	//
	assert.Equal(t, "[1] + [1]*", constantOf(t, file, "p_read_X_A"))
	assert.Equal(t, "[1] + [1]*", constantOf(t, file, "p_read_Y_A"))
	assert.Equal(t, "[1] + [1]*", constantOf(t, file, "p_reg_write_Y_B"))
}

func Test_Assign_03(t *testing.T) {
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", pil.Mul[F](pil.Direct("A"), pil.Direct("B")), "A")),
	}
	checkFails(t, machine, UNSUPPORTED_EXPRESSION_ERROR)
	//
	for _, op := range []pil.BinaryOperator{pil.DIV, pil.MOD, pil.BIT_AND, pil.BIT_OR, pil.BIT_XOR, pil.SHL, pil.SHR} {
		machine.Batches = []ir.Batch[F]{
			ir.NewBatch[F](assign("X", &pil.BinaryOp[F]{Left: num(4), Op: op, Right: num(2)}, "A")),
		}
		checkFails(t, machine, UNSUPPORTED_EXPRESSION_ERROR)
	}
}

func Test_Assign_04(t *testing.T) {
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", &pil.BinaryOp[F]{Left: num(2), Op: pil.POW, Right: pil.Direct("A")}, "A")),
	}
	checkFails(t, machine, UNSUPPORTED_EXPRESSION_ERROR)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", &pil.BinaryOp[F]{Left: num(2), Op: pil.POW, Right: num(1 << 33)}, "A")),
	}
	checkFails(t, machine, UNSUPPORTED_EXPRESSION_ERROR)
}

func Test_Assign_05(t *testing.T) {
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", pil.Direct("A"), "A", "B")),
	}
	checkFails(t, machine, STRUCTURAL_ERROR)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("A", pil.Direct("A"), "B")),
	}
	checkFails(t, machine, REFERENCE_ERROR)
}

func Test_Assign_06(t *testing.T) {
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", &pil.FreeInput[F]{Expr: &pil.String{Value: "input"}}, "A")),
		ir.NewBatch[F](assign("X", num(0), "A")),
	}
	file := checkCompiles(t, machine)
	text := file.String()
	//
	assert.Equal(t, "[1, 0] + [0]*", constantOf(t, file, "p_X_read_free"))
	assert.Contains(t, text, `pol commit X_free_value(i) query match pc { 0 => "input", };`)
	assert.Contains(t, text, "pol commit Y_free_value;")
	assert.Contains(t, text,
		"X = (((((read_X_A * A) + (read_X_B * B)) + (read_X_pc * pc)) + X_const) + (X_read_free * X_free_value));")
}

func Test_Assign_07(t *testing.T) {
	var (
		machine = assignMachine(true)
		first   = &pil.FreeInput[F]{Expr: &pil.String{Value: "a"}}
		second  = &pil.FreeInput[F]{Expr: &pil.String{Value: "b"}}
	)
	// at most one free input per assignment register and row
	machine.Batches = []ir.Batch[F]{
		ir.NewBatch[F](assign("X", pil.Add[F](first, second), "A")),
	}
	checkFails(t, machine, STRUCTURAL_ERROR)
}

// ============================================================================
// Declarations
// ============================================================================

func Test_Declare_01(t *testing.T) {
	// Assignment registers declared before regular registers can write them.
	var machine = assignMachine(true)
	//
	machine.Batches = []ir.Batch[F]{ir.NewBatch[F](assign("X", num(1), "A"))}
	file := checkCompiles(t, machine)
	assert.NotNil(t, file.Constant("p_reg_write_X_A"))
}

func Test_Declare_02(t *testing.T) {
	// Assignment registers declared after regular registers cannot write them.
	var machine = assignMachine(false)
	//
	machine.Batches = []ir.Batch[F]{ir.NewBatch[F](assign("X", num(1), "A"))}
	_, err := NewCompiler[F]().Compile(machine)
	//
	assert.True(t, IsKind(err, REFERENCE_ERROR))
	assert.EqualError(t, err, "Register combination A <= X not found")
	// but can still read them
	machine.Batches = []ir.Batch[F]{ir.NewBatch[F](call("put", pil.Direct("A")))}
	checkCompiles(t, machine)
}

func Test_Declare_03(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Declarations = append(machine.Declarations, reg("pc2", ir.PROGRAM_COUNTER))
	checkFails(t, machine, STRUCTURAL_ERROR)
	//
	machine = fpMachine()
	machine.Declarations = append(machine.Declarations, reg("fp", ir.REGULAR_REGISTER))
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Declare_04(t *testing.T) {
	var (
		machine = fpMachine()
		lookup  = &ir.BodyLookup[F]{
			Left: pil.SelectedExpressions[F]{Selector: pil.Direct("s"),
				Expressions: []pil.Expression[F]{pil.Direct("fp")}},
			Right: pil.SelectedExpressions[F]{Expressions: []pil.Expression[F]{pil.Direct("x")}},
		}
	)
	//
	machine.Declarations = append(machine.Declarations, instr("range", nil, nil, lookup))
	checkFails(t, machine, STRUCTURAL_ERROR)
}

func Test_Declare_05(t *testing.T) {
	var (
		machine = fpMachine()
		operand = []pil.Expression[F]{pil.Direct("v")}
		table   = []pil.Expression[F]{pil.Namespaced("main_byte", "BYTE")}
	)
	//
	machine.Declarations = append(machine.Declarations,
		instr("range", params("v: unsigned"), nil,
			&ir.BodyLookup[F]{Left: pil.SelectedExpressions[F]{Expressions: operand},
				Right: pil.SelectedExpressions[F]{Expressions: table}},
			&ir.BodyLookup[F]{Left: pil.SelectedExpressions[F]{Expressions: operand},
				Right: pil.SelectedExpressions[F]{Expressions: table}, Permutation: true},
			&ir.BodyExpression[F]{Expr: pil.Mul[F](pil.Direct("fp"), pil.Direct("v"))},
		),
		&ir.InlinePil[F]{Statements: []pil.Statement[F]{pil.Witness[F]("extra")}},
	)
	text := checkCompiles(t, machine).String()
	//
	assert.Contains(t, text, "instr_range { instr_range_param_v } in { main_byte.BYTE };")
	assert.Contains(t, text, "instr_range { instr_range_param_v } is { main_byte.BYTE };")
	assert.Contains(t, text, "(instr_range * (fp * instr_range_param_v)) = 0;")
	assert.Contains(t, text, "pol commit extra;")
}

func Test_Declare_06(t *testing.T) {
	var machine = fpMachine()
	//
	machine.Declarations = append(machine.Declarations, instr("bad", params("x: float"), nil))
	checkFails(t, machine, STRUCTURAL_ERROR)
	//
	machine = fpMachine()
	machine.Declarations = append(machine.Declarations, instr("bad", params("Z"), nil))
	checkFails(t, machine, REFERENCE_ERROR)
	//
	machine = assignMachine(true)
	machine.Declarations = append(machine.Declarations, instr("bad", nil, params("X: label")))
	checkFails(t, machine, STRUCTURAL_ERROR)
	// update of unknown register
	machine = fpMachine()
	machine.Declarations = append(machine.Declarations, instr("bad", nil, nil,
		&ir.BodyExpression[F]{Expr: pil.Sub[F](pil.Next("gp"), pil.Uint64[F](1))}))
	checkFails(t, machine, REFERENCE_ERROR)
}

// ============================================================================
// Updates
// ============================================================================

func Test_Update_01(t *testing.T) {
	var reg = &Register[F]{Flag: ir.REGULAR_REGISTER, DefaultUpdate: pil.Direct("A")}
	//
	assert.Equal(t, "A", reg.UpdateExpression().String())
	assert.Nil(t, (&Register[F]{Flag: ir.ASSIGNMENT_REGISTER}).UpdateExpression())
}

func Test_Update_02(t *testing.T) {
	var reg = &Register[F]{Flag: ir.REGULAR_REGISTER}
	//
	reg.ConditionedUpdates = []ConditionedUpdate[F]{
		{pil.Direct("f1"), pil.Direct("X")},
		{pil.Direct("f2"), pil.Direct("Y")},
	}
	assert.Equal(t, "((f1 * X) + (f2 * Y))", reg.UpdateExpression().String())
	//
	reg.DefaultUpdate = pil.Direct("A")
	assert.Equal(t, "(((f1 * X) + (f2 * Y)) + ((1 - (f1 + f2)) * A))", reg.UpdateExpression().String())
}

// ============================================================================
// Helpers
// ============================================================================

// Machine with a frame pointer, as follows:
//
//	inc_fp amount: unsigned { fp' = fp + amount }
//	adjust_fp amount: signed, t: label { fp' = fp + amount, pc' = t }
//
//	_reset; _jump_to_operation; inc_fp 7; loop: adjust_fp -2, loop; _loop
func fpMachine() *ir.Machine[F] {
	return &ir.Machine[F]{
		Location: object.MainLocation(),
		Latch:    util.Some("latch"),
		Declarations: []ir.Declaration[F]{
			reg("pc", ir.PROGRAM_COUNTER),
			reg("fp", ir.REGULAR_REGISTER),
			instr("_reset", nil, nil),
			instr("_jump_to_operation", nil, nil),
			instr("_loop", nil, nil),
			instr("inc_fp", params("amount: unsigned"), nil,
				update("fp", pil.Add[F](pil.Direct("fp"), pil.Direct("amount")))),
			instr("adjust_fp", params("amount: signed", "t: label"), nil,
				update("fp", pil.Add[F](pil.Direct("fp"), pil.Direct("amount"))),
				update("pc", pil.Direct("t"))),
		},
		Batches: []ir.Batch[F]{
			ir.NewBatch[F](call("_reset")),
			ir.NewBatch[F](call("_jump_to_operation")),
			ir.NewBatch[F](call("inc_fp", num(7))),
			ir.NewBatch[F](label("loop"), call("adjust_fp", neg(2), pil.Direct("loop"))),
			ir.NewBatch[F](call("_loop")),
		},
	}
}

// Machine with two assignment registers X and Y, and two regular registers A
// and B.  The assignment registers are declared first or last, as determined
// by the flag.
func assignMachine(assignFirst bool) *ir.Machine[F] {
	var (
		assign  = []ir.Declaration[F]{reg("X", ir.ASSIGNMENT_REGISTER), reg("Y", ir.ASSIGNMENT_REGISTER)}
		regular = []ir.Declaration[F]{reg("A", ir.REGULAR_REGISTER), reg("B", ir.REGULAR_REGISTER)}
		decls   = []ir.Declaration[F]{reg("pc", ir.PROGRAM_COUNTER)}
	)
	//
	if assignFirst {
		decls = append(append(decls, assign...), regular...)
	} else {
		decls = append(append(decls, regular...), assign...)
	}
	//
	decls = append(decls,
		instr("get", nil, params("X")),
		instr("put", params("X"), nil))
	//
	return &ir.Machine[F]{Location: object.MainLocation(), Declarations: decls}
}

func standalone(machine *ir.Machine[F], degree uint64) *ir.Machine[F] {
	machine.Degree = util.Some(degree)
	return machine
}

func checkCompiles(t *testing.T, machine *ir.Machine[F]) *pil.File[F] {
	t.Helper()
	//
	obj, err := NewCompiler[F]().Standalone(machine.Degree.HasValue()).Compile(machine)
	require.NoError(t, err)
	//
	return &pil.File[F]{Statements: obj.Pil}
}

func checkFails(t *testing.T, machine *ir.Machine[F], kind ErrorKind) {
	t.Helper()
	//
	_, err := NewCompiler[F]().Compile(machine)
	//
	if assert.Error(t, err) {
		assert.True(t, IsKind(err, kind), "expected %s, got %s (%s)", kind, err.(*Error).Kind, err)
	}
}

func constantOf(t *testing.T, file *pil.File[F], name string) string {
	t.Helper()
	//
	c := file.Constant(name)
	require.NotNil(t, c, "missing constant %s", name)
	//
	return c.Values.String()
}

func reg(name string, flag ir.RegisterFlag) ir.Declaration[F] {
	return &ir.RegisterDeclaration{Name: name, Flag: flag}
}

func instr(name string, inputs []ir.Param, outputs []ir.Param, body ...ir.BodyElement[F]) ir.Declaration[F] {
	return &ir.InstructionDeclaration[F]{
		Name:   name,
		Params: ir.InstructionParams{Inputs: inputs, Outputs: outputs},
		Body:   body,
	}
}

// Parses parameters of the form "name" or "name: type".
func params(decls ...string) []ir.Param {
	var ps []ir.Param
	//
	for _, decl := range decls {
		name, kind, _ := strings.Cut(decl, ":")
		ps = append(ps, ir.Param{Name: strings.TrimSpace(name), Type: strings.TrimSpace(kind)})
	}
	//
	return ps
}

func update(reg string, value pil.Expression[F]) ir.BodyElement[F] {
	return &ir.BodyExpression[F]{Expr: pil.Sub[F](pil.Next(reg), value)}
}

func label(name string) ir.Statement[F] {
	return &ir.Label{Name: name}
}

func call(name string, args ...pil.Expression[F]) ir.Statement[F] {
	return &ir.InstructionCall[F]{Name: name, Args: args}
}

func assign(assignReg string, value pil.Expression[F], targets ...string) ir.Statement[F] {
	return &ir.Assignment[F]{Targets: targets, AssignReg: assignReg, Value: value}
}

func num(value int64) pil.Expression[F] {
	return pil.Const(field.Int64[F](value))
}

func neg(value uint64) pil.Expression[F] {
	return pil.Neg[F](pil.Uint64[F](value))
}
