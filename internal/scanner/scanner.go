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

// Package scanner implements a character-level, resumable tokenizer driven
// by a hierarchy of state machines (prolog, content, markup declarations,
// script/style special content, processing instructions, character
// references, DOCTYPE, CDATA).
package scanner

import (
	"strings"

	"github.com/google/triemap"

	"github.com/htmlunit-go/neko/internal/buffer"
	"github.com/htmlunit-go/neko/internal/charref"
	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/pos"
	"github.com/htmlunit-go/neko/internal/token"
)

// NameCase is the case-folding policy for element/attribute names.
type NameCase int

const (
	MatchSource NameCase = iota
	Upper
	Lower
)

// WarningKind mirrors the root package's WarningKind so the scanner does
// not need to import it (see internal/pos's rationale for the same split).
type WarningKind string

const (
	WarnMalformedCharRef     WarningKind = "malformed-character-reference"
	WarnUnterminatedComment  WarningKind = "unterminated-comment"
	WarnUnterminatedCData    WarningKind = "unterminated-cdata"
	WarnInvalidPITarget      WarningKind = "invalid-pi-target"
	WarnInvalidTagNameStart  WarningKind = "invalid-tag-name-start"
	WarnIllegalAttributeName WarningKind = "illegal-attribute-name"
	WarnEncodingSwitchLate   WarningKind = "encoding-switch-too-late"
)

// Warning is one recoverable tokenization warning.
type Warning struct {
	Kind WarningKind
	Span pos.Span
	Text string
}

// mode is the scanner's top-level state.
type mode int

const (
	modeContent mode = iota
	modePlaintext
)

// specialContent tags which raw/RCData/script element is currently being read,
// so the scanner knows which end tag terminates it.
type specialContent int

const (
	specialNone specialContent = iota
	specialRawText
	specialRCData
	specialScript
)

// scriptEscape tracks the three-layer script escape dance of Script mode:
// normal, escaped (inside a "<!--"-commented-out region), and
// double-escaped (inside a nested "<script>" within that region).
type scriptEscape int

const (
	scriptNormal scriptEscape = iota
	scriptEscaped
	scriptDoubleEscaped
)

// Config is the subset of the root package's Config the scanner needs,
// passed down from Parser so this package never imports the root package.
type Config struct {
	Augmentations bool
	ElemNameCase  NameCase
	AttrNameCase  NameCase
	ReportErrors  bool
	Foreign       bool // true while inside an SVG/MathML subtree: enables CDATA sections
}

// Scanner is the character-level tokenizer. It is driven purely by calls to
// Next; it never reaches back into the Tag Balancer.
type Scanner struct {
	buf    *buffer.Buffer
	cfg    Config
	onWarn func(Warning)

	mode           mode
	special        specialContent
	specialEndName string // lower-cased element name terminating special content
	scriptEsc      scriptEscape

	names    triemap.RuneSliceMap // interns repeated tag/attribute name strings
	charrefs *charref.Resolver

	pending []token.Token // queue drained before reading more input (see queue)

	seenAnyToken bool
	eofEmitted   bool
}

// New returns a Scanner reading from buf.
func New(buf *buffer.Buffer, cfg Config, onWarn func(Warning)) *Scanner {
	if onWarn == nil {
		onWarn = func(Warning) {}
	}
	return &Scanner{
		buf:      buf,
		cfg:      cfg,
		onWarn:   onWarn,
		charrefs: charref.Shared(),
	}
}

// SetForeign toggles foreign-content mode (inside svg/math), which enables
// CDATA section recognition. The Tag Balancer calls this as it tracks the
// element stack.
func (s *Scanner) SetForeign(v bool) { s.cfg.Foreign = v }

// EnterSpecial switches the scanner into RawText/RCData/Script content mode
// for the element just opened, per the element table's Content field. The
// Tag Balancer calls this immediately after emitting a StartTag token whose
// descriptor requests special content.
func (s *Scanner) EnterSpecial(elementName string, mode elements.ContentMode) {
	lower := strings.ToLower(elementName)
	switch mode {
	case elements.ContentRawText:
		s.special = specialRawText
		s.specialEndName = lower
	case elements.ContentRCData:
		s.special = specialRCData
		s.specialEndName = lower
	case elements.ContentScript:
		s.special = specialScript
		s.specialEndName = lower
		s.scriptEsc = scriptNormal
	case elements.ContentPlaintext:
		s.mode = modePlaintext
	}
}

// PushSource feeds additional characters to be scanned before the
// underlying input resumes (the "evaluate input source" hook).
func (s *Scanner) PushSource(chars []rune) { s.buf.PushSource(chars) }

func (s *Scanner) warn(kind WarningKind, span pos.Span, text string) {
	if s.cfg.ReportErrors {
		s.onWarn(Warning{Kind: kind, Span: span, Text: text})
	}
}

func (s *Scanner) here() pos.Location { return s.buf.Location() }

func (s *Scanner) span(begin pos.Location) pos.Span {
	if !s.cfg.Augmentations {
		return pos.Span{}
	}
	return pos.Span{Begin: begin, End: s.here()}
}

func (s *Scanner) base(begin pos.Location) token.Base {
	return token.Base{SpanValue: s.span(begin)}
}

// intern returns a possibly-shared string for name, using a trie-backed
// intern table to collapse repeated tag/attribute name strings within one
// parse down to a single allocation.
func (s *Scanner) intern(runes []rune) string {
	// Get can report found for an interior trie node that holds no string
	// (e.g. "th" after "thead" was interned).
	if v, ok := s.names.Get(runes); ok {
		if str, isString := v.(string); isString {
			return str
		}
	}
	str := string(runes)
	s.names.Put(runes, str)
	return str
}

func (s *Scanner) applyCase(nc NameCase, name string) string {
	switch nc {
	case Upper:
		return strings.ToUpper(name)
	case Lower:
		return strings.ToLower(name)
	default:
		return name
	}
}

// Next returns the next raw token. After an EOF token has been returned,
// every subsequent call returns an equivalent EOF token rather than
// panicking, so callers can poll without additional bookkeeping.
func (s *Scanner) Next() token.Token {
	if len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		return t
	}
	if s.eofEmitted {
		return &token.EOF{Base: s.base(s.here())}
	}

	begin := s.here()
	r := s.buf.Peek(0)
	if r == buffer.EOF {
		s.eofEmitted = true
		return &token.EOF{Base: s.base(begin)}
	}

	var tok token.Token
	switch {
	case s.mode == modePlaintext:
		tok = s.scanPlaintext(begin)
	case s.special != specialNone:
		tok = s.scanSpecialContent(begin)
	case r == '<':
		tok = s.scanMarkup(begin)
	default:
		tok = s.scanText(begin)
	}
	s.maybeSwitchEncoding(tok)
	return tok
}

// maybeSwitchEncoding implements the late encoding-resolution step: an
// `<?xml encoding="X"?>` declaration or a `<meta charset=X>` / `<meta
// http-equiv=Content-Type content="...charset=X">` tag seen within the
// prolog window triggers a decoder switch if X names a different encoding
// than the one currently in effect.
func (s *Scanner) maybeSwitchEncoding(tok token.Token) {
	label := ""
	switch t := tok.(type) {
	case *token.XMLDecl:
		label = t.Encoding
	case *token.StartTag:
		if strings.ToLower(t.Name.Local) == "meta" {
			label = metaCharsetLabel(t.Attrs)
		}
	}
	if label == "" || strings.EqualFold(label, s.buf.CurrentEncoding()) {
		return
	}
	if err := s.buf.SwitchEncoding(strings.ToLower(label)); err != nil {
		s.warn(WarnEncodingSwitchLate, tok.Span(), label)
	}
}

// metaCharsetLabel extracts the encoding label from a <meta> tag's
// "charset" attribute, or from its "content" attribute when paired with
// http-equiv="Content-Type".
func metaCharsetLabel(attrs []token.Attr) string {
	var httpEquivContentType bool
	var content, charset string
	for _, a := range attrs {
		switch strings.ToLower(a.Name.Local) {
		case "charset":
			charset = a.Value
		case "http-equiv":
			if strings.EqualFold(a.Value, "Content-Type") {
				httpEquivContentType = true
			}
		case "content":
			content = a.Value
		}
	}
	if charset != "" {
		return charset
	}
	if httpEquivContentType && content != "" {
		return charsetFromContentType(content)
	}
	return ""
}

// charsetFromContentType extracts the charset parameter out of a
// Content-Type-style string such as "text/html; charset=UTF-8".
func charsetFromContentType(content string) string {
	idx := strings.Index(strings.ToLower(content), "charset=")
	if idx < 0 {
		return ""
	}
	rest := content[idx+len("charset="):]
	rest = strings.Trim(rest, `"' `)
	if semi := strings.IndexByte(rest, ';'); semi >= 0 {
		rest = rest[:semi]
	}
	return strings.TrimSpace(rest)
}

// queue appends an already-scanned follow-up token (the end tag that closes
// special content, or the markup found after a stray '<') to be returned by
// the next Next call before any further input is consumed.
func (s *Scanner) queue(t token.Token) { s.pending = append(s.pending, t) }
