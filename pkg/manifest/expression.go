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

	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util"
	"github.com/consensys/go-airgen/pkg/util/field"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Functions with a dedicated translation.  Calls to any other function are
// translated as calls.
var binaryFunctions = map[string]pil.BinaryOperator{
	"pow":  pil.POW,
	"shl":  pil.SHL,
	"shr":  pil.SHR,
	"band": pil.BIT_AND,
	"bor":  pil.BIT_OR,
	"bxor": pil.BIT_XOR,
}

var binaryOperators = map[*hclsyntax.Operation]pil.BinaryOperator{
	hclsyntax.OpAdd:      pil.ADD,
	hclsyntax.OpSubtract: pil.SUB,
	hclsyntax.OpMultiply: pil.MUL,
	hclsyntax.OpDivide:   pil.DIV,
	hclsyntax.OpModulo:   pil.MOD,
}

// ParseExpression parses a string holding an expression in HCL syntax, and
// translates it into a constraint expression.
func ParseExpression[F field.Element[F]](src string, rng hcl.Range) (pil.Expression[F], hcl.Diagnostics) {
	expr, diags := parse(src, rng)
	if diags.HasErrors() {
		return nil, diags
	}
	//
	return translate[F](expr)
}

// ParseIdentity parses a string holding an identity "lhs == rhs", which is
// translated as "lhs - rhs".  Any other expression e is taken to mean "e == 0".
func ParseIdentity[F field.Element[F]](src string, rng hcl.Range) (pil.Expression[F], hcl.Diagnostics) {
	expr, diags := parse(src, rng)
	if diags.HasErrors() {
		return nil, diags
	}
	//
	if e, ok := expr.(*hclsyntax.BinaryOpExpr); ok && e.Op == hclsyntax.OpEqual {
		lhs, ldiags := translate[F](e.LHS)
		rhs, rdiags := translate[F](e.RHS)
		//
		if diags = append(ldiags, rdiags...); diags.HasErrors() {
			return nil, diags
		}
		//
		return pil.Sub[F](lhs, rhs), nil
	}
	//
	return translate[F](expr)
}

// ParseExpressions parses a list of expressions.
func ParseExpressions[F field.Element[F]](srcs []string, rng hcl.Range) ([]pil.Expression[F], hcl.Diagnostics) {
	var (
		exprs = make([]pil.Expression[F], len(srcs))
		diags hcl.Diagnostics
	)
	//
	for i, src := range srcs {
		var ds hcl.Diagnostics
		//
		exprs[i], ds = ParseExpression[F](src, rng)
		diags = append(diags, ds...)
	}
	//
	return exprs, diags
}

// Expressions are held in strings, hence positions are reported relative to
// the attribute holding them.
func parse(src string, rng hcl.Range) (hclsyntax.Expression, hcl.Diagnostics) {
	return hclsyntax.ParseExpression([]byte(src), rng.Filename, rng.Start)
}

func translate[F field.Element[F]](expr hclsyntax.Expression) (pil.Expression[F], hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return translateValue[F](e.Val, e.Range())
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return nil, unsupported(expr, "string templates are not supported")
		}
		//
		val, diags := e.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		//
		return &pil.String{Value: val.AsString()}, nil
	case *hclsyntax.ScopeTraversalExpr:
		return translateTraversal[F](e.Traversal, e.Range())
	case *hclsyntax.ParenthesesExpr:
		return translate[F](e.Expression)
	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return nil, unsupported(expr, "unsupported unary operator")
		}
		//
		arg, diags := translate[F](e.Val)
		if diags.HasErrors() {
			return nil, diags
		}
		//
		return pil.Neg[F](arg), nil
	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOperators[e.Op]
		if !ok {
			return nil, unsupported(expr, "unsupported binary operator")
		}
		//
		return translateBinary[F](e.LHS, op, e.RHS)
	case *hclsyntax.FunctionCallExpr:
		return translateCall[F](e)
	case *hclsyntax.TupleConsExpr:
		items, diags := translateAll[F](e.Exprs)
		if diags.HasErrors() {
			return nil, diags
		}
		//
		return &pil.Tuple[F]{Items: items}, nil
	default:
		return nil, unsupported(expr, "unsupported expression")
	}
}

func translateAll[F field.Element[F]](exprs []hclsyntax.Expression) ([]pil.Expression[F], hcl.Diagnostics) {
	var (
		items = make([]pil.Expression[F], len(exprs))
		diags hcl.Diagnostics
	)
	//
	for i, e := range exprs {
		var ds hcl.Diagnostics
		//
		items[i], ds = translate[F](e)
		diags = append(diags, ds...)
	}
	//
	return items, diags
}

func translateBinary[F field.Element[F]](lhs hclsyntax.Expression, op pil.BinaryOperator,
	rhs hclsyntax.Expression) (pil.Expression[F], hcl.Diagnostics) {
	//
	l, ldiags := translate[F](lhs)
	r, rdiags := translate[F](rhs)
	//
	if diags := append(ldiags, rdiags...); diags.HasErrors() {
		return nil, diags
	}
	//
	return &pil.BinaryOp[F]{Left: l, Op: op, Right: r}, nil
}

func translateCall[F field.Element[F]](e *hclsyntax.FunctionCallExpr) (pil.Expression[F], hcl.Diagnostics) {
	if op, ok := binaryFunctions[e.Name]; ok {
		if len(e.Args) != 2 {
			return nil, unsupported(e, fmt.Sprintf("%s expects two arguments", e.Name))
		}
		//
		return translateBinary[F](e.Args[0], op, e.Args[1])
	}
	//
	args, diags := translateAll[F](e.Args)
	if diags.HasErrors() {
		return nil, diags
	}
	//
	switch e.Name {
	case "next":
		if ref, ok := singleReference(args); ok && !ref.Next {
			return &pil.Reference{Namespace: ref.Namespace, Name: ref.Name, Index: ref.Index, Next: true}, nil
		}
		//
		return nil, unsupported(e, "next expects a single column")
	case "free":
		if len(args) != 1 {
			return nil, unsupported(e, "free expects a single query")
		}
		//
		return &pil.FreeInput[F]{Expr: args[0]}, nil
	default:
		return &pil.Call[F]{Function: e.Name, Args: args}, nil
	}
}

func singleReference[F field.Element[F]](args []pil.Expression[F]) (*pil.Reference, bool) {
	if len(args) != 1 {
		return nil, false
	}
	//
	ref, ok := args[0].(*pil.Reference)
	//
	return ref, ok
}

// Translates a traversal "a.b.c[i]" into a reference to column c in namespace
// "a.b", at index i.
func translateTraversal[F field.Element[F]](traversal hcl.Traversal, rng hcl.Range) (pil.Expression[F],
	hcl.Diagnostics) {
	var (
		segments []string
		index    = util.None[uint64]()
	)
	//
	for i, t := range traversal {
		switch t := t.(type) {
		case hcl.TraverseRoot:
			segments = append(segments, t.Name)
		case hcl.TraverseAttr:
			segments = append(segments, t.Name)
		case hcl.TraverseIndex:
			if n, ok := indexOf(t.Key); ok && i == len(traversal)-1 {
				index = util.Some(n)
				continue
			}
			//
			return nil, diagnostic(rng, "invalid column index")
		default:
			return nil, diagnostic(rng, "unsupported column reference")
		}
	}
	//
	last := len(segments) - 1
	//
	return &pil.Reference{
		Namespace: strings.Join(segments[:last], "."),
		Name:      segments[last],
		Index:     index,
	}, nil
}

func indexOf(key cty.Value) (uint64, bool) {
	if key.IsNull() || key.Type() != cty.Number {
		return 0, false
	}
	//
	n, acc := key.AsBigFloat().Uint64()
	//
	return n, acc == 0
}

func translateValue[F field.Element[F]](val cty.Value, rng hcl.Range) (pil.Expression[F], hcl.Diagnostics) {
	switch {
	case val.IsNull():
		return nil, diagnostic(rng, "null is not a valid expression")
	case val.Type() == cty.String:
		return &pil.String{Value: val.AsString()}, nil
	}
	//
	n, err := numberOf[F](val)
	if err != nil {
		return nil, diagnostic(rng, err.Error())
	}
	//
	return pil.Const(n), nil
}

// Converts a value into a field element, provided it is an integer.  Negative
// integers are mapped onto their additive inverse.
func numberOf[F field.Element[F]](val cty.Value) (F, error) {
	if val.Type() != cty.Number {
		return field.Zero[F](), fmt.Errorf("expected number, found %s", val.Type().FriendlyName())
	}
	//
	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return field.Zero[F](), fmt.Errorf("expected integer, found %s", bf.String())
	}
	//
	n, _ := bf.Int(nil)
	//
	return field.BigInt[F](n), nil
}

func unsupported(expr hclsyntax.Expression, msg string) hcl.Diagnostics {
	return diagnostic(expr.Range(), msg)
}

func diagnostic(rng hcl.Range, msg string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid expression",
		Detail:   msg,
		Subject:  rng.Ptr(),
	}}
}
