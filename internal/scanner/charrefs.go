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

package scanner

import (
	"strings"

	"github.com/htmlunit-go/neko/internal/buffer"
	"github.com/htmlunit-go/neko/internal/charref"
	"github.com/htmlunit-go/neko/internal/pos"
)

// entityLookahead bounds how many characters ahead of '&' the scanner
// offers the trie for a named-entity longest-match attempt.
const entityLookahead = 40

// consumeCharRef is called with '&' as the next unread character. It
// consumes the full reference (named or numeric) and returns its resolved
// text, or the literal "&" if the reference is
// malformed -- in which case only the '&' itself is consumed, so whatever
// followed it (e.g. "#" with no digits) is re-offered to the caller as
// ordinary text on the next read.
func (s *Scanner) consumeCharRef() string {
	resolved, _ := s.consumeCharRefLiteral()
	return resolved
}

// consumeCharRefLiteral is consumeCharRef's literal-preserving counterpart,
// used where the caller also needs the exact source text consumed (an
// attribute's NonNormalizedValue).
func (s *Scanner) consumeCharRefLiteral() (resolved, literal string) {
	begin := s.here()
	s.buf.Read() // consume '&'

	if s.buf.Peek(0) == '#' {
		return s.consumeNumericRef(begin)
	}
	return s.consumeNamedRef(begin)
}

func (s *Scanner) consumeNamedRef(begin pos.Location) (resolved, literal string) {
	lookahead := make([]rune, 0, entityLookahead)
	for i := 0; i < entityLookahead; i++ {
		r := s.buf.Peek(i)
		if r == buffer.EOF {
			break
		}
		lookahead = append(lookahead, r)
	}
	cps, consumed, ok := s.charrefs.Match(lookahead)
	if !ok {
		s.warn(WarnMalformedCharRef, s.span(begin), "unresolvable character reference")
		return "&", "&"
	}
	for i := 0; i < consumed; i++ {
		s.buf.Read()
	}
	return string(cps), "&" + string(lookahead[:consumed])
}

func (s *Scanner) consumeNumericRef(begin pos.Location) (resolved, literal string) {
	mark := s.buf.Mark()
	s.buf.Read() // consume '#'

	hex := false
	if p := s.buf.Peek(0); p == 'x' || p == 'X' {
		hex = true
		s.buf.Read()
	}

	var digits strings.Builder
	for {
		p := s.buf.Peek(0)
		if !isDigitForBase(p, hex) {
			break
		}
		digits.WriteRune(p)
		s.buf.Read()
	}

	if digits.Len() == 0 {
		s.buf.ResetTo(mark)
		s.warn(WarnMalformedCharRef, s.span(begin), "numeric reference with no digits")
		return "&", "&"
	}

	r, ok := charref.ResolveNumeric(digits.String(), hex)
	if !ok {
		s.buf.ResetTo(mark)
		s.warn(WarnMalformedCharRef, s.span(begin), "malformed numeric reference")
		return "&", "&"
	}

	lit := "&#"
	if hex {
		lit += "x"
	}
	lit += digits.String()
	if s.buf.Peek(0) == ';' {
		s.buf.Read()
		lit += ";"
	}
	return string(r), lit
}

func isDigitForBase(r rune, hex bool) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
