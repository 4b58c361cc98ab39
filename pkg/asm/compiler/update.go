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
	"github.com/consensys/go-airgen/pkg/pil"
)

// UpdateExpression returns the value of this register on the next row,
// combining all conditioned updates with the default update.  This returns nil
// when the register is never updated.
func (p *Register[F]) UpdateExpression() pil.Expression[F] {
	var (
		updates    []pil.Expression[F]
		conditions []pil.Expression[F]
	)
	//
	if len(p.ConditionedUpdates) == 0 {
		return p.DefaultUpdate
	}
	//
	for _, u := range p.ConditionedUpdates {
		updates = append(updates, pil.Mul[F](u.Condition, u.Value))
		conditions = append(conditions, u.Condition)
	}
	//
	if p.DefaultUpdate == nil {
		return pil.Sum(updates...)
	}
	// default applies when no condition holds
	defaultCondition := pil.Sub[F](pil.Uint64[F](1), pil.Sum(conditions...))
	//
	return pil.Add[F](pil.Sum(updates...), pil.Mul[F](defaultCondition, p.DefaultUpdate))
}

// Emits the update constraint "r' = e" for every register r which is updated.
// The program counter is additionally forced to zero on the row following the
// first, regardless of which flags are active there.
func (p *Context[F]) synthesiseUpdates() {
	for _, name := range p.sortedRegisters() {
		var update = p.registers[name].UpdateExpression()
		//
		if update == nil {
			continue
		} else if p.pcName.HasValue() && p.pcName.Unwrap() == name {
			update = pil.Mul[F](pil.Sub[F](pil.Uint64[F](1), pil.Next(FIRST_STEP)), update)
		}
		//
		p.emit(pil.Identity[F](pil.Sub[F](pil.Next(name), update)))
	}
}

func (p *Context[F]) sortedRegisters() []string {
	return p.registersMatching(func(*Register[F]) bool { return true })
}
