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

// scanPlaintext reads every remaining character as text, without any markup
// recognition at all -- plaintext never re-exits once entered.
func (s *Scanner) scanPlaintext(begin pos.Location) token.Token {
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF {
			break
		}
		s.buf.Read()
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		s.eofEmitted = true
		return &token.EOF{Base: s.base(begin)}
	}
	return &token.Text{Base: s.base(begin), Data: sb.String()}
}

// scanSpecialContent reads RawText, RCData, or Script content up to the
// matching end tag. RCData additionally resolves
// character references; Script additionally tracks the escape/double-escape
// sub-states so that "</script>"-like text inside a commented-out escape
// block does not prematurely end the element.
func (s *Scanner) scanSpecialContent(begin pos.Location) token.Token {
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF {
			s.exitSpecial()
			break
		}

		if s.special == specialScript && s.scriptStep(&sb) {
			continue
		}

		if r == '<' && s.matchesEndTag() {
			if sb.Len() == 0 {
				return s.readSpecialEndTag(begin)
			}
			end := s.readSpecialEndTag(begin)
			s.queue(end)
			return &token.Text{Base: s.base(begin), Data: sb.String()}
		}

		if r == '&' && s.special == specialRCData {
			sb.WriteString(s.consumeCharRef())
			continue
		}

		s.buf.Read()
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return s.Next()
	}
	return &token.Text{Base: s.base(begin), Data: sb.String()}
}

func (s *Scanner) exitSpecial() {
	s.special = specialNone
	s.specialEndName = ""
	s.scriptEsc = scriptNormal
}

// matchesEndTag reports whether the upcoming input is "</" followed by the
// special end element's name (case-insensitively) and a name-terminating
// character, without consuming anything.
func (s *Scanner) matchesEndTag() bool {
	if s.buf.Peek(0) != '<' || s.buf.Peek(1) != '/' {
		return false
	}
	name := []rune(s.specialEndName)
	for i, want := range name {
		p := s.buf.Peek(2 + i)
		if p != want && p != swapCase(want) {
			return false
		}
	}
	after := s.buf.Peek(2 + len(name))
	return after == '>' || isSpace(after) || after == '/' || after == buffer.EOF
}

// readSpecialEndTag consumes the end tag matched by matchesEndTag and
// restores normal content scanning.
func (s *Scanner) readSpecialEndTag(begin pos.Location) token.Token {
	s.exitSpecial()
	s.buf.Read() // '<'
	s.buf.Read() // '/'
	return s.scanEndTag(begin)
}

// scriptStep advances the script escape sub-state machine by at most one
// lookahead decision, writing any consumed literal into sb. It reports
// whether it consumed input, in which case the caller should re-loop.
func (s *Scanner) scriptStep(sb *strings.Builder) bool {
	switch s.scriptEsc {
	case scriptNormal:
		if s.lookaheadMatches("<!--") {
			s.consumeLiteral("<!--", sb)
			s.scriptEsc = scriptEscaped
			return true
		}
	case scriptEscaped:
		if s.lookaheadMatchesFold("<script") && isNameBoundary(s.buf.Peek(7)) {
			s.consumeLiteralRunes(7, sb)
			s.scriptEsc = scriptDoubleEscaped
			return true
		}
		if s.lookaheadMatches("-->") {
			s.consumeLiteral("-->", sb)
			s.scriptEsc = scriptNormal
			return true
		}
	case scriptDoubleEscaped:
		if s.lookaheadMatchesFold("</script") && isNameBoundary(s.buf.Peek(8)) {
			s.consumeLiteralRunes(8, sb)
			s.scriptEsc = scriptEscaped
			return true
		}
		if s.lookaheadMatches("-->") {
			s.consumeLiteral("-->", sb)
			s.scriptEsc = scriptNormal
			return true
		}
	}
	return false
}

func isNameBoundary(r rune) bool {
	return r == buffer.EOF || isSpace(r) || r == '>' || r == '/'
}

func (s *Scanner) consumeLiteral(lit string, sb *strings.Builder) {
	for range lit {
		sb.WriteRune(s.buf.Read())
	}
}

func (s *Scanner) consumeLiteralRunes(n int, sb *strings.Builder) {
	for i := 0; i < n; i++ {
		sb.WriteRune(s.buf.Read())
	}
}
