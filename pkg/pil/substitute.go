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
package pil

import (
	"fmt"

	"github.com/consensys/go-airgen/pkg/util/field"
)

// Substitute renames all column references in an expression according to a
// given mapping.  References to columns not in the mapping, and references
// qualified by a namespace, are left untouched.
func Substitute[F field.Element[F]](expr Expression[F], mapping map[string]string) Expression[F] {
	switch e := expr.(type) {
	case *Reference:
		if name, ok := mapping[e.Name]; ok && e.Namespace == "" {
			return &Reference{e.Namespace, name, e.Index, e.Next}
		}
		//
		return e
	case *Number[F], *String:
		return e
	case *BinaryOp[F]:
		return &BinaryOp[F]{Substitute[F](e.Left, mapping), e.Op, Substitute[F](e.Right, mapping)}
	case *UnaryOp[F]:
		return &UnaryOp[F]{e.Op, Substitute[F](e.Expr, mapping)}
	case *FreeInput[F]:
		// queries are evaluated outside the constraint system
		return e
	case *Call[F]:
		return &Call[F]{e.Function, SubstituteAll(e.Args, mapping)}
	case *Tuple[F]:
		return &Tuple[F]{SubstituteAll(e.Items, mapping)}
	case *Match[F]:
		var arms = make([]MatchArm[F], len(e.Arms))
		//
		for i, arm := range e.Arms {
			arms[i] = MatchArm[F]{arm.Pattern, Substitute[F](arm.Value, mapping)}
		}
		//
		return &Match[F]{Substitute[F](e.Scrutinee, mapping), arms}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%s)", expr))
	}
}

// SubstituteAll applies Substitute to every expression in a list.
func SubstituteAll[F field.Element[F]](exprs []Expression[F], mapping map[string]string) []Expression[F] {
	var nexprs = make([]Expression[F], len(exprs))
	//
	for i, e := range exprs {
		nexprs[i] = Substitute[F](e, mapping)
	}
	//
	return nexprs
}

// SubstituteSelected applies Substitute to both the selector and the
// expressions of a selected tuple.
func SubstituteSelected[F field.Element[F]](sel SelectedExpressions[F],
	mapping map[string]string) SelectedExpressions[F] {
	var selector Expression[F]
	//
	if sel.Selector != nil {
		selector = Substitute[F](sel.Selector, mapping)
	}
	//
	return SelectedExpressions[F]{selector, SubstituteAll(sel.Expressions, mapping)}
}
