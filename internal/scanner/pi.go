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

// scanPI is entered with "<?" already consumed. It recognizes the "xml"
// target as an XMLDecl (version/encoding/standalone pseudo-attributes) and
// everything else as a generic processing instruction. A target beginning
// with a digit is invalid XML/HTML PI syntax, so it is demoted to a bogus
// comment instead.
func (s *Scanner) scanPI(begin pos.Location) token.Token {
	if r := s.buf.Peek(0); r >= '0' && r <= '9' {
		s.warn(WarnInvalidPITarget, s.span(begin), "processing instruction target cannot start with a digit")
		return s.scanBogusComment(begin)
	}

	target := s.readName()
	if strings.EqualFold(target, "xml") {
		return s.scanXMLDecl(begin)
	}

	s.skipSpace()
	var sb strings.Builder
	for {
		r := s.buf.Peek(0)
		if r == buffer.EOF {
			break
		}
		if r == '?' && s.buf.Peek(1) == '>' {
			s.buf.Read()
			s.buf.Read()
			break
		}
		// Lenient bare '>' termination: some producers omit the '?'.
		if r == '>' {
			s.buf.Read()
			break
		}
		s.buf.Read()
		sb.WriteRune(r)
	}
	return &token.PI{Base: s.base(begin), Target: target, Data: sb.String()}
}

// scanXMLDecl is entered with the "xml" target already consumed.
func (s *Scanner) scanXMLDecl(begin pos.Location) token.Token {
	decl := &token.XMLDecl{Base: s.base(begin)}
	for {
		s.skipSpace()
		r := s.buf.Peek(0)
		if r == buffer.EOF {
			break
		}
		if r == '?' && s.buf.Peek(1) == '>' {
			s.buf.Read()
			s.buf.Read()
			break
		}
		if r == '>' {
			s.buf.Read()
			break
		}
		if !isNameChar(r, true) {
			s.buf.Read()
			continue
		}
		name := s.readName()
		s.skipSpace()
		if s.buf.Peek(0) != '=' {
			continue
		}
		s.buf.Read()
		s.skipSpace()
		value := s.readQuotedLiteral()
		switch strings.ToLower(name) {
		case "version":
			decl.Version = value
		case "encoding":
			decl.Encoding = value
		case "standalone":
			decl.Standalone = value
		}
	}
	return decl
}
