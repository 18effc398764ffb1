// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package charref

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLongestWins(t *testing.T) {
	r := New()

	// "&notin" with no trailing ';': "notin;" requires ';' so it cannot
	// match bare; the longest bare-legal match is "not", leaving "in"
	// unconsumed.
	cps, consumed, ok := r.Match([]rune("notin"))
	require.True(t, ok)
	assert.Equal(t, 3, consumed)
	if diff := cmp.Diff([]rune{'¬'}, cps); diff != "" {
		t.Errorf("codepoints diff (-want +got):\n%s", diff)
	}
}

func TestMatchWithSemicolonPrefersFullName(t *testing.T) {
	r := New()
	cps, consumed, ok := r.Match([]rune("notin;"))
	require.True(t, ok)
	assert.Equal(t, 6, consumed)
	if diff := cmp.Diff([]rune{'∉'}, cps); diff != "" {
		t.Errorf("codepoints diff (-want +got):\n%s", diff)
	}
}

func TestMatchTwoCodepointPayload(t *testing.T) {
	r := New()
	cps, consumed, ok := r.Match([]rune("acE;"))
	require.True(t, ok)
	assert.Equal(t, 4, consumed)
	assert.Len(t, cps, 2)
}

func TestMatchNoMatch(t *testing.T) {
	r := New()
	_, _, ok := r.Match([]rune("zzz;"))
	assert.False(t, ok)
}

func TestMatchRequiresSemicolon(t *testing.T) {
	r := New()
	_, consumed, ok := r.Match([]rune("amp"))
	require.True(t, ok)
	assert.False(t, r.MatchRequiresSemicolon([]rune("amp"), consumed))

	_, consumed, ok = r.Match([]rune("amp;"))
	require.True(t, ok)
	assert.True(t, r.MatchRequiresSemicolon([]rune("amp;"), consumed))
}

func TestResolveNumericDecimal(t *testing.T) {
	r, ok := ResolveNumeric("65", false)
	require.True(t, ok)
	assert.Equal(t, 'A', r)
}

func TestResolveNumericHex(t *testing.T) {
	r, ok := ResolveNumeric("41", true)
	require.True(t, ok)
	assert.Equal(t, 'A', r)
}

func TestResolveNumericZeroIsReplacementChar(t *testing.T) {
	r, ok := ResolveNumeric("0", false)
	require.True(t, ok)
	assert.Equal(t, rune(0xFFFD), r)
}

func TestResolveNumericSurrogateIsReplacementChar(t *testing.T) {
	r, ok := ResolveNumeric("D800", true)
	require.True(t, ok)
	assert.Equal(t, rune(0xFFFD), r)
}

func TestResolveNumericOutOfRangeIsReplacementChar(t *testing.T) {
	r, ok := ResolveNumeric("110000", true)
	require.True(t, ok)
	assert.Equal(t, rune(0xFFFD), r)
}

func TestResolveNumericC1Remap(t *testing.T) {
	// 0x80 is the euro sign remap.
	r, ok := ResolveNumeric("80", true)
	require.True(t, ok)
	assert.Equal(t, '€', r)

	// 0x9F remaps to U+0178.
	r, ok = ResolveNumeric("9F", true)
	require.True(t, ok)
	assert.Equal(t, 'Ÿ', r)
}

func TestResolveNumericMalformed(t *testing.T) {
	_, ok := ResolveNumeric("", false)
	assert.False(t, ok)

	_, ok = ResolveNumeric("zz", false)
	assert.False(t, ok)
}
