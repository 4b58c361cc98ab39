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
	"math"

	"github.com/consensys/go-airgen/pkg/pil"
	"github.com/consensys/go-airgen/pkg/util/field"
)

// AffineTerm is a single term "c * x" of an affine expression.
type AffineTerm[F field.Element[F]] struct {
	Coeff     F
	Component Component
}

// Component is the variable part of an affine term.  This is either a register,
// the constant one or a value supplied externally.
type Component interface {
	fmt.Stringer
	isComponent()
}

// RegisterComponent reads the value of a register.
type RegisterComponent struct {
	Name string
}

// ConstantComponent represents the constant 1.
type ConstantComponent struct{}

// FreeInputComponent represents a value supplied externally, as determined by
// evaluating a query expression.
type FreeInputComponent[F field.Element[F]] struct {
	Expr pil.Expression[F]
}

func (*RegisterComponent) isComponent()     {}
func (*ConstantComponent) isComponent()     {}
func (*FreeInputComponent[F]) isComponent() {}

func (c *RegisterComponent) String() string {
	return c.Name
}

func (c *ConstantComponent) String() string {
	return "1"
}

func (c *FreeInputComponent[F]) String() string {
	return fmt.Sprintf("${ %s }", c.Expr)
}

// ToAffine reduces an expression to an affine combination of registers,
// constants and free inputs.  Products are only permitted when one side is a
// constant, whilst exponents must be constant on both sides.
func ToAffine[F field.Element[F]](expr pil.Expression[F]) ([]AffineTerm[F], error) {
	switch e := expr.(type) {
	case *pil.Number[F]:
		return []AffineTerm[F]{{e.Value, &ConstantComponent{}}}, nil
	case *pil.Reference:
		if !e.IsDirect() {
			return nil, unsupportedError("unsupported register reference %s", e)
		}
		//
		return []AffineTerm[F]{{field.One[F](), &RegisterComponent{e.Name}}}, nil
	case *pil.FreeInput[F]:
		return []AffineTerm[F]{{field.One[F](), &FreeInputComponent[F]{e.Expr}}}, nil
	case *pil.UnaryOp[F]:
		terms, err := ToAffine[F](e.Expr)
		if err != nil {
			return nil, err
		}
		//
		return negateTerms(terms), nil
	case *pil.BinaryOp[F]:
		return binaryToAffine(e)
	default:
		return nil, unsupportedError("expression %s not supported in this context", expr)
	}
}

func binaryToAffine[F field.Element[F]](e *pil.BinaryOp[F]) ([]AffineTerm[F], error) {
	switch e.Op {
	case pil.ADD, pil.SUB, pil.MUL, pil.POW:
	default:
		return nil, unsupportedError("operator %s not supported in this context", e.Op)
	}
	//
	lhs, err := ToAffine[F](e.Left)
	if err != nil {
		return nil, err
	}
	//
	rhs, err := ToAffine[F](e.Right)
	if err != nil {
		return nil, err
	}
	//
	switch e.Op {
	case pil.ADD:
		return append(lhs, rhs...), nil
	case pil.SUB:
		return append(lhs, negateTerms(rhs)...), nil
	case pil.MUL:
		if c, ok := constantValue(lhs); ok {
			return scaleTerms(c, rhs), nil
		} else if c, ok := constantValue(rhs); ok {
			return scaleTerms(c, lhs), nil
		}
		//
		return nil, unsupportedError("multiplication of non-constants not supported (%s)", e)
	default:
		base, lok := constantValue(lhs)
		exp, rok := constantValue(rhs)
		//
		if !lok || !rok {
			return nil, unsupportedError("exponentiation of non-constants not supported (%s)", e)
		}
		//
		n, ok := field.ToUint64(exp)
		if !ok || n > math.MaxUint32 {
			return nil, unsupportedError("exponent too large (%s)", e)
		}
		//
		return []AffineTerm[F]{{field.Pow(base, n), &ConstantComponent{}}}, nil
	}
}

// Returns the value of an affine expression consisting solely of constant
// terms.
func constantValue[F field.Element[F]](terms []AffineTerm[F]) (F, bool) {
	var sum = field.Zero[F]()
	//
	if len(terms) == 0 {
		return sum, false
	}
	//
	for _, t := range terms {
		if _, ok := t.Component.(*ConstantComponent); !ok {
			return sum, false
		}
		//
		sum = sum.Add(t.Coeff)
	}
	//
	return sum, true
}

func negateTerms[F field.Element[F]](terms []AffineTerm[F]) []AffineTerm[F] {
	var nterms = make([]AffineTerm[F], len(terms))
	//
	for i, t := range terms {
		nterms[i] = AffineTerm[F]{t.Coeff.Neg(), t.Component}
	}
	//
	return nterms
}

func scaleTerms[F field.Element[F]](c F, terms []AffineTerm[F]) []AffineTerm[F] {
	var nterms = make([]AffineTerm[F], len(terms))
	//
	for i, t := range terms {
		nterms[i] = AffineTerm[F]{c.Mul(t.Coeff), t.Component}
	}
	//
	return nterms
}
