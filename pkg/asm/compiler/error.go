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
	"errors"
	"fmt"
)

// ErrorKind classifies the errors which can arise during compilation.
type ErrorKind uint8

const (
	// STRUCTURAL_ERROR indicates a malformed machine, such as an instruction
	// body with a selector, a duplicate label or an instruction call with the
	// wrong number of arguments.
	STRUCTURAL_ERROR ErrorKind = iota
	// VALUE_RANGE_ERROR indicates a literal outside its permitted range.
	VALUE_RANGE_ERROR
	// UNSUPPORTED_EXPRESSION_ERROR indicates an expression which cannot be
	// reduced to an affine expression.
	UNSUPPORTED_EXPRESSION_ERROR
	// REFERENCE_ERROR indicates a reference to something which does not exist,
	// such as an unknown instruction or an undefined label.
	REFERENCE_ERROR
)

func (k ErrorKind) String() string {
	switch k {
	case STRUCTURAL_ERROR:
		return "structural error"
	case VALUE_RANGE_ERROR:
		return "value range error"
	case UNSUPPORTED_EXPRESSION_ERROR:
		return "unsupported expression"
	default:
		return "reference error"
	}
}

// Error is a structured error arising from compilation.  Any error aborts
// compilation of the enclosing machine.
type Error struct {
	// Kind of this error
	Kind ErrorKind
	// Error message being reported
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// IsKind checks whether a given error is a compilation error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	var cerr *Error
	//
	return errors.As(err, &cerr) && cerr.Kind == kind
}

func structuralError(format string, args ...any) *Error {
	return &Error{STRUCTURAL_ERROR, fmt.Sprintf(format, args...)}
}

func valueRangeError(format string, args ...any) *Error {
	return &Error{VALUE_RANGE_ERROR, fmt.Sprintf(format, args...)}
}

func unsupportedError(format string, args ...any) *Error {
	return &Error{UNSUPPORTED_EXPRESSION_ERROR, fmt.Sprintf(format, args...)}
}

func referenceError(format string, args ...any) *Error {
	return &Error{REFERENCE_ERROR, fmt.Sprintf(format, args...)}
}
