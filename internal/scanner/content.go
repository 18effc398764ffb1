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
	"github.com/htmlunit-go/neko/internal/pos"
	"github.com/htmlunit-go/neko/internal/token"
)

// scanText reads a run of character data up to the next '<' or EOF,
// resolving character references as it goes. A '<' not followed by
// alpha/'!'/'?'/'/' is itself emitted as literal text rather than treated
// as the start of markup.
func (s *Scanner) scanText(begin pos.Location) token.Token {
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		switch {
		case r == buffer.EOF:
			if sb.Len() == 0 {
				s.eofEmitted = true
				return &token.EOF{Base: s.base(begin)}
			}
			return &token.Text{Base: s.base(begin), Data: sb.String()}
		case r == '<':
			if isTagOpener(s.buf.Peek(1)) {
				if sb.Len() == 0 {
					// No text accumulated: re-dispatch to markup scanning
					// directly rather than manufacturing an empty Text.
					return s.scanMarkup(begin)
				}
				return &token.Text{Base: s.base(begin), Data: sb.String()}
			}
			// Bogus '<': emit it as literal text and keep scanning.
			s.buf.Read()
			sb.WriteRune('<')
		case r == '&':
			sb.WriteString(s.consumeCharRef())
		default:
			s.buf.Read()
			sb.WriteRune(r)
		}
	}
}

// isTagOpener reports whether r following '<' (or '</') begins recognized
// markup: an ASCII letter starts a tag name, '!' starts a declaration, '?'
// starts a processing instruction, '/' starts an end tag.
func isTagOpener(r rune) bool {
	return isASCIILetter(r) || r == '!' || r == '?' || r == '/'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// scanMarkup dispatches on the character(s) following '<'.
func (s *Scanner) scanMarkup(begin pos.Location) token.Token {
	s.buf.Read() // consume '<'
	r := s.buf.Peek(0)
	switch {
	case isASCIILetter(r):
		return s.scanStartTag(begin)
	case r == '/':
		s.buf.Read()
		return s.scanEndTag(begin)
	case r == '!':
		s.buf.Read()
		return s.scanDecl(begin)
	case r == '?':
		s.buf.Read()
		return s.scanPI(begin)
	default:
		// Lone '<' not recognized as markup: literal text. We've already
		// consumed '<'; fold it back in.
		s.warn(WarnInvalidTagNameStart, s.span(begin), "stray '<'")
		rest := s.scanText(begin)
		if t, ok := rest.(*token.Text); ok {
			return &token.Text{Base: s.base(begin), Data: "<" + t.Data}
		}
		// rest is markup/EOF reached immediately after our stray '<':
		// queue it behind the literal "<" text token so it's still
		// returned, in order, on the following Next call.
		s.queue(rest)
		return &token.Text{Base: s.base(begin), Data: "<"}
	}
}
