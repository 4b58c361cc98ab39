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
package field

import (
	"fmt"
	"math/big"
)

// An Element of a prime-order field.  Elements are treated as opaque values by
// the compiler, which only ever needs the ring operations, a comparison and a
// way to move between elements and (big) integers.
type Element[Operand any] interface {
	fmt.Stringer
	// Add x+y
	Add(y Operand) Operand
	// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
	Cmp(y Operand) int
	// Check whether this value is zero (or not).
	IsZero() bool
	// Check whether this value is one (or not).
	IsOne() bool
	// Return the modulus for the field in question.
	Modulus() *big.Int
	// Compute x * y
	Mul(y Operand) Operand
	// Compute -x
	Neg() Operand
	// Compute x - y
	Sub(y Operand) Operand
	// SetUint64 returns an element holding the given value (reduced modulo the
	// field).
	SetUint64(val uint64) Operand
	// SetBigInt returns an element holding the given value (reduced modulo the
	// field).
	SetBigInt(val *big.Int) Operand
	// BigInt returns the canonical (i.e. non-negative) value of x.
	BigInt() *big.Int
	// Text returns the numerical value of x in the given base.
	Text(base int) string
}

// Zero constructs a field element representing 0
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One constructs a field element representing 1
func One[F Element[F]]() F {
	var element F
	//
	return element.SetUint64(1)
}

// Uint64 construct a field element from a given uint64
func Uint64[F Element[F]](val uint64) F {
	var element F
	//
	return element.SetUint64(val)
}

// Int64 construct a field element from a given int64, where negative values
// are mapped onto their additive inverse.
func Int64[F Element[F]](val int64) F {
	var element F
	//
	if val < 0 {
		return element.SetUint64(uint64(-val)).Neg()
	}
	//
	return element.SetUint64(uint64(val))
}

// BigInt construct a field element from a given big.Int.  Unlike the
// underlying SetBigInt, negative values are supported and are mapped onto their
// additive inverse.
func BigInt[F Element[F]](val *big.Int) F {
	var element F
	//
	if val.Sign() < 0 {
		var abs big.Int
		//
		return element.SetBigInt(abs.Neg(val)).Neg()
	}
	//
	return element.SetBigInt(val)
}

// IsInLowerHalf checks whether the canonical value of x lies in the lower half
// of the field, i.e. whether x <= (p-1)/2.  Values in the lower half are those
// which can be safely interpreted as non-negative integers.
func IsInLowerHalf[F Element[F]](x F) bool {
	return x.BigInt().Cmp(halfModulus(x)) <= 0
}

// Signed returns the integer value of x, where values in the upper half of the
// field are interpreted as negative numbers.  For example, p-2 becomes -2.
func Signed[F Element[F]](x F) *big.Int {
	var val = x.BigInt()
	//
	if val.Cmp(halfModulus(x)) > 0 {
		return val.Sub(val, x.Modulus())
	}
	//
	return val
}

// ToUint64 casts x into a uint64, provided its canonical value fits.
func ToUint64[F Element[F]](x F) (uint64, bool) {
	var val = x.BigInt()
	//
	if !val.IsUint64() {
		return 0, false
	}
	//
	return val.Uint64(), true
}

// Pow takes a given value to the power n.
func Pow[F Element[F]](val F, n uint64) F {
	if n == 0 {
		val = val.SetUint64(1)
	} else if n > 1 {
		m := n / 2
		// Check for odd case
		if n%2 == 1 {
			tmp := val
			val = Pow(val, m)
			val = val.Mul(val).Mul(tmp)
		} else {
			// Even case is easy
			val = Pow(val, m)
			val = val.Mul(val)
		}
	}
	//
	return val
}

func halfModulus[F Element[F]](x F) *big.Int {
	var half big.Int
	//
	half.Sub(x.Modulus(), big.NewInt(1))
	//
	return half.Rsh(&half, 1)
}
