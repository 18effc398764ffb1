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

// scanDecl is entered with "<!" already consumed. It dispatches to comment,
// DOCTYPE, and (in foreign content) CDATA section parsing, falling back to
// a bogus comment for anything else.
func (s *Scanner) scanDecl(begin pos.Location) token.Token {
	if s.buf.Peek(0) == '-' && s.buf.Peek(1) == '-' {
		s.buf.Read()
		s.buf.Read()
		return s.scanComment(begin)
	}
	if s.cfg.Foreign && s.lookaheadMatches("[CDATA[") {
		for i := 0; i < len("[CDATA["); i++ {
			s.buf.Read()
		}
		return s.scanCData(begin)
	}
	if s.lookaheadMatchesFold("DOCTYPE") {
		for i := 0; i < len("DOCTYPE"); i++ {
			s.buf.Read()
		}
		return s.scanDoctype(begin)
	}
	return s.scanBogusComment(begin)
}

// lookaheadMatches reports whether the upcoming runes equal want exactly.
func (s *Scanner) lookaheadMatches(want string) bool {
	for i, r := range []rune(want) {
		if s.buf.Peek(i) != r {
			return false
		}
	}
	return true
}

// lookaheadMatchesFold is like lookaheadMatches but case-insensitive, for
// the DOCTYPE keyword which HTML accepts in any case.
func (s *Scanner) lookaheadMatchesFold(want string) bool {
	for i, r := range []rune(want) {
		p := s.buf.Peek(i)
		if p != r && p != swapCase(r) {
			return false
		}
	}
	return true
}

func swapCase(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// scanComment is entered with "<!--" already consumed. It reads up to the
// first "-->" (also tolerating the "--!>" quirk some lenient parsers and
// legacy content rely on).
func (s *Scanner) scanComment(begin pos.Location) token.Token {
	var sb strings.Builder
	for {
		if s.buf.Peek(0) == buffer.EOF {
			s.warn(WarnUnterminatedComment, s.span(begin), "comment not terminated before end of input")
			break
		}
		if s.buf.Peek(0) == '-' && s.buf.Peek(1) == '-' {
			if s.buf.Peek(2) == '>' {
				s.buf.Read()
				s.buf.Read()
				s.buf.Read()
				break
			}
			if s.buf.Peek(2) == '!' && s.buf.Peek(3) == '>' {
				s.buf.Read()
				s.buf.Read()
				s.buf.Read()
				s.buf.Read()
				break
			}
		}
		r := s.buf.Read()
		sb.WriteRune(r)
	}
	return &token.Comment{Base: s.base(begin), Text: sb.String()}
}

// scanBogusComment handles "<!" that didn't match a comment, DOCTYPE, or
// CDATA section: the remainder up to '>' is treated as comment text,
// matching the HTML5 "bogus comment state" lenient parsers converge on.
func (s *Scanner) scanBogusComment(begin pos.Location) token.Token {
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF || r == '>' {
			break
		}
		s.buf.Read()
		sb.WriteRune(r)
	}
	if s.buf.Peek(0) == '>' {
		s.buf.Read()
	}
	return &token.Comment{Base: s.base(begin), Text: sb.String()}
}

// scanCData is entered with "<![CDATA[" already consumed. Only reachable in
// foreign (SVG/MathML) content.
func (s *Scanner) scanCData(begin pos.Location) token.Token {
	var sb strings.Builder
	for {
		if s.buf.Peek(0) == buffer.EOF {
			s.warn(WarnUnterminatedCData, s.span(begin), "CDATA section not terminated before end of input")
			break
		}
		if s.buf.Peek(0) == ']' && s.buf.Peek(1) == ']' && s.buf.Peek(2) == '>' {
			s.buf.Read()
			s.buf.Read()
			s.buf.Read()
			break
		}
		r := s.buf.Read()
		sb.WriteRune(r)
	}
	return &token.CData{Base: s.base(begin), Text: sb.String()}
}

// scanDoctype is entered with "<!DOCTYPE" already consumed (case-folded).
// It recognizes the root element name and an optional PUBLIC or SYSTEM
// identifier clause, lenient about surrounding whitespace and case.
func (s *Scanner) scanDoctype(begin pos.Location) token.Token {
	s.skipSpace()
	root := s.readName()

	var publicID, systemID string
	s.skipSpace()
	if s.lookaheadMatchesFold("PUBLIC") {
		for i := 0; i < len("PUBLIC"); i++ {
			s.buf.Read()
		}
		s.skipSpace()
		publicID = s.readQuotedLiteral()
		s.skipSpace()
		systemID = s.readQuotedLiteral()
	} else if s.lookaheadMatchesFold("SYSTEM") {
		for i := 0; i < len("SYSTEM"); i++ {
			s.buf.Read()
		}
		s.skipSpace()
		systemID = s.readQuotedLiteral()
	}

	// Skip any remaining internal subset / junk up to '>'.
	depth := 0
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF {
			break
		}
		if r == '[' {
			depth++
		}
		if r == ']' && depth > 0 {
			depth--
		}
		if r == '>' && depth == 0 {
			break
		}
		s.buf.Read()
	}
	if s.buf.Peek(0) == '>' {
		s.buf.Read()
	}

	return &token.Doctype{
		Base:     s.base(begin),
		Root:     root,
		PublicID: publicID,
		SystemID: systemID,
	}
}

// readQuotedLiteral consumes a "..." or '...' literal and returns its
// contents, or "" if the next character isn't a quote.
func (s *Scanner) readQuotedLiteral() string {
	quote := s.buf.Peek(0)
	if quote != '"' && quote != '\'' {
		return ""
	}
	s.buf.Read()
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF || r == quote {
			break
		}
		s.buf.Read()
		sb.WriteRune(r)
	}
	if s.buf.Peek(0) == quote {
		s.buf.Read()
	}
	return sb.String()
}
