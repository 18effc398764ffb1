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
	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/pos"
	"github.com/htmlunit-go/neko/internal/token"
)

// scanStartTag is entered with the tag name's first letter as the next
// unread rune ('<' already consumed). It reads the name, attributes, and an
// optional self-closing '/'.
func (s *Scanner) scanStartTag(begin pos.Location) token.Token {
	name := s.readName()
	qn := token.New(s.elemName(name))

	attrs := s.readAttrs()

	selfClosing := false
	s.skipSpace()
	if s.buf.Peek(0) == '/' {
		s.buf.Read()
		selfClosing = true
	}
	if s.buf.Peek(0) == '>' {
		s.buf.Read()
	}

	return &token.StartTag{
		Base:        s.base(begin),
		Name:        qn,
		Attrs:       attrs,
		SelfClosing: selfClosing,
	}
}

// elemName applies the element-name case policy. The match-source default
// additionally lower-cases names the element table recognizes, so "<DIV>"
// comes out as "div" while an unknown "<FooBar>" keeps its source casing.
func (s *Scanner) elemName(name string) string {
	if s.cfg.ElemNameCase == MatchSource {
		if lower := strings.ToLower(name); lower != name && elements.Lookup(lower) != nil {
			return lower
		}
		return name
	}
	return s.applyCase(s.cfg.ElemNameCase, name)
}

// scanEndTag is entered with '</' already consumed.
func (s *Scanner) scanEndTag(begin pos.Location) token.Token {
	name := s.readName()
	qn := token.New(s.elemName(name))

	// Lenient: skip anything up to '>' (e.g. stray attributes on an end
	// tag, which HTML5-style parsing tolerates and discards).
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF || r == '>' {
			break
		}
		s.buf.Read()
	}
	if s.buf.Peek(0) == '>' {
		s.buf.Read()
	}

	return &token.EndTag{Base: s.base(begin), Name: qn}
}

// readName consumes a tag or attribute name: letters, digits, and the name
// punctuation HTML/XML allow ('-', '_', '.', ':'), stopping at the first
// character that cannot continue a name.
func (s *Scanner) readName() string {
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		if !isNameChar(r, sb.Len() == 0) {
			break
		}
		s.buf.Read()
		sb.WriteRune(r)
	}
	return s.intern([]rune(sb.String()))
}

func isNameChar(r rune, first bool) bool {
	switch {
	case isASCIILetter(r):
		return true
	case r >= '0' && r <= '9':
		return !first
	case r == '-' || r == '_' || r == '.' || r == ':':
		return !first
	default:
		return false
	}
}

func (s *Scanner) skipSpace() {
	for isSpace(s.buf.Peek(0)) {
		s.buf.Read()
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

// readAttrs consumes a start tag's attribute list up to (but not including)
// the closing '/' or '>'. Duplicate attribute names are resolved by keeping
// the first occurrence.
func (s *Scanner) readAttrs() []token.Attr {
	var attrs []token.Attr
	seen := map[string]bool{}
	for {
		s.skipSpace()
		r := s.buf.Peek(0)
		if r == buffer.EOF || r == '>' {
			return attrs
		}
		if r == '/' {
			if s.buf.Peek(1) == '>' {
				return attrs
			}
			// Stray '/' that isn't part of '/>': skipped, attribute
			// scanning continues.
			s.buf.Read()
			continue
		}
		if !isNameChar(r, true) {
			// Illegal attribute-name start (e.g. stray '=' or quote):
			// skip the single offending character and keep scanning,
			// rather than looping forever.
			begin := s.here()
			s.buf.Read()
			s.warn(WarnIllegalAttributeName, s.span(begin), "unexpected character in attribute list")
			continue
		}

		name := s.readName()
		rawName := s.applyCase(s.cfg.AttrNameCase, name)

		s.skipSpace()
		var value, nonNormalized string
		if s.buf.Peek(0) == '=' {
			s.buf.Read()
			s.skipSpace()
			value, nonNormalized = s.readAttrValue()
		}

		if seen[strings.ToLower(rawName)] {
			continue
		}
		seen[strings.ToLower(rawName)] = true

		attrs = append(attrs, token.Attr{
			Name:               token.New(rawName),
			Value:              value,
			NonNormalizedValue: nonNormalized,
			Specified:          true,
		})
	}
}

// readAttrValue consumes a quoted or bare attribute value. It returns the
// character-reference-resolved value and the literal (non-normalized) source
// text.
func (s *Scanner) readAttrValue() (resolved, literal string) {
	quote := s.buf.Peek(0)
	if quote == '"' || quote == '\'' {
		s.buf.Read()
		var rb, lb strings.Builder
		for {
			r := s.buf.Peek(0)
			if r == buffer.EOF || r == quote {
				break
			}
			if r == '&' {
				resolvedRef, literalRef := s.consumeCharRefLiteral()
				rb.WriteString(resolvedRef)
				lb.WriteString(literalRef)
				continue
			}
			if r == '\r' || r == '\n' {
				s.readAttrNewline(&rb, &lb)
				continue
			}
			s.buf.Read()
			rb.WriteRune(r)
			lb.WriteRune(r)
		}
		if s.buf.Peek(0) == quote {
			s.buf.Read()
		}
		return rb.String(), lb.String()
	}

	// Bare (unquoted) value: runs until whitespace or '>'.
	var rb, lb strings.Builder
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF || r == '>' || isSpace(r) {
			break
		}
		if r == '&' {
			resolvedRef, literalRef := s.consumeCharRefLiteral()
			rb.WriteString(resolvedRef)
			lb.WriteString(literalRef)
			continue
		}
		s.buf.Read()
		rb.WriteRune(r)
		lb.WriteRune(r)
	}
	return rb.String(), lb.String()
}

// readAttrNewline consumes one CR, LF, or CRLF line break from an attribute
// value and writes a single '\n' to both builders: a newline embedded in
// an attribute value via CR, LF, or CRLF is preserved as a single '\n',
// regardless of which form it took on the wire.
func (s *Scanner) readAttrNewline(rb, lb *strings.Builder) {
	r := s.buf.Read()
	if r == '\r' && s.buf.Peek(0) == '\n' {
		s.buf.Read()
	}
	rb.WriteByte('\n')
	lb.WriteByte('\n')
}
