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

// Package charref resolves HTML character references: named entities via a
// longest-match trie, and numeric decimal/hex references with the
// Windows-1252 "C1" remap and validity fixups.
package charref

import (
	"github.com/google/triemap"
)

// Resolver holds the named-entity trie. Its key set is fixed at compile
// time, so unlike a per-document name-interning table it never mutates
// after construction and one shared instance, built at package
// initialization, is safe to use across concurrent parses.
type Resolver struct {
	names triemap.RuneSliceMap
}

var shared = buildResolver()

// Shared returns the process-wide Resolver built from the named-entity
// table. Callers needing an isolated instance (e.g. tests asserting on a
// fresh trie) can use New instead.
func Shared() *Resolver { return shared }

// New builds a fresh Resolver from the named-entity table.
func New() *Resolver { return buildResolver() }

func buildResolver() *Resolver {
	r := &Resolver{}
	for name, e := range namedEntities {
		r.names.Put([]rune(name), e)
	}
	return r
}

// Match performs the longest-match named-entity lookup: given the
// characters immediately following '&' (not including '&' itself), it
// returns the resolved code points, how many input characters were
// consumed, and whether a match was found at all. The rewind count for the
// caller is len(consumed candidate run) - consumed.
//
// This walks decreasing-length prefixes of the input through the trie,
// which is O(length) Get calls bounded by maxEntityNameLen, not a linear
// scan of the entity table.
func (r *Resolver) Match(runes []rune) (codepoints []rune, consumed int, ok bool) {
	limit := len(runes)
	if limit > maxEntityNameLen {
		limit = maxEntityNameLen
	}
	for n := limit; n >= 1; n-- {
		// Get can report found for an interior trie node that carries no
		// entity of its own (e.g. "notin" on the way to "notin;").
		if v, found := r.names.Get(runes[:n]); found {
			if e, isEntity := v.(entity); isEntity {
				return e.codepoints, n, true
			}
		}
	}
	return nil, 0, false
}

// MatchRequiresSemicolon reports whether the longest match found by Match
// for this exact run requires a trailing ';' to be a legal reference
// outside of an attribute value's legacy-compatible tail. Most callers only
// need Match; this exists for the stricter round-trip check that rejects a
// bare legacy name where the context demands the terminating ';'.
func (r *Resolver) MatchRequiresSemicolon(runes []rune, consumed int) bool {
	if consumed == 0 || consumed > len(runes) {
		return false
	}
	v, ok := r.names.Get(runes[:consumed])
	if !ok {
		return false
	}
	e, isEntity := v.(entity)
	return isEntity && e.requireSemicolon
}
