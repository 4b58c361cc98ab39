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
package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Option_01(t *testing.T) {
	var opt = Some[uint64](8)
	//
	assert.True(t, opt.HasValue())
	assert.Equal(t, uint64(8), opt.Unwrap())
	assert.Equal(t, uint64(8), opt.UnwrapOr(1024))
	assert.Equal(t, "Some(8)", opt.String())
}

func Test_Option_02(t *testing.T) {
	var opt = None[uint64]()
	//
	assert.True(t, opt.IsEmpty())
	assert.Equal(t, uint64(1024), opt.UnwrapOr(1024))
	assert.Equal(t, "None", opt.String())
	assert.Panics(t, func() { opt.Unwrap() })
}

func Test_Option_03(t *testing.T) {
	// options are comparable
	assert.Equal(t, Some("x"), Some("x"))
	assert.NotEqual(t, Some("x"), None[string]())
}
