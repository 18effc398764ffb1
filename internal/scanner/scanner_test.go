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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/htmlunit-go/neko/internal/buffer"
	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/pos"
	"github.com/htmlunit-go/neko/internal/token"
)

func newTestScanner(t *testing.T, input string) *Scanner {
	t.Helper()
	buf, err := buffer.New(strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	return New(buf, Config{}, nil)
}

func drain(s *Scanner) []token.Token {
	var got []token.Token
	for {
		tok := s.Next()
		got = append(got, tok)
		if _, ok := tok.(*token.EOF); ok {
			return got
		}
	}
}

var tokenCmpOpts = cmp.Options{
	cmp.AllowUnexported(token.QName{}),
	cmp.Transformer("dropSpan", func(b token.Base) struct{} { return struct{}{} }),
}

func TestNamedEntityInText(t *testing.T) {
	s := newTestScanner(t, "a&amp;b")
	got := drain(s)
	want := []token.Token{
		&token.Text{Data: "a&b"},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}

func TestNumericEntity(t *testing.T) {
	s := newTestScanner(t, "&#65;&#x42;")
	got := drain(s)
	want := []token.Token{
		&token.Text{Data: "AB"},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}

func TestStartAndEndTag(t *testing.T) {
	s := newTestScanner(t, `<p class="x">hi</p>`)
	got := drain(s)
	want := []token.Token{
		&token.StartTag{
			Name:  token.New("p"),
			Attrs: []token.Attr{{Name: token.New("class"), Value: "x", NonNormalizedValue: "x", Specified: true}},
		},
		&token.Text{Data: "hi"},
		&token.EndTag{Name: token.New("p")},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}

func TestDuplicateAttributeKeepsFirst(t *testing.T) {
	s := newTestScanner(t, `<a href="first" href="second">`)
	tok := s.Next()
	st, ok := tok.(*token.StartTag)
	if !ok {
		t.Fatalf("got %T, want *token.StartTag", tok)
	}
	assert.Len(t, st.Attrs, 1)
	assert.Equal(t, "first", st.Attrs[0].Value)
}

func TestAttributeValuePreservesEntityLiteral(t *testing.T) {
	s := newTestScanner(t, `<a href="x&amp;y">`)
	tok := s.Next()
	st, ok := tok.(*token.StartTag)
	if !ok {
		t.Fatalf("got %T, want *token.StartTag", tok)
	}
	assert.Len(t, st.Attrs, 1)
	assert.Equal(t, "x&y", st.Attrs[0].Value)
	assert.Equal(t, "x&amp;y", st.Attrs[0].NonNormalizedValue)
}

func TestAttributeValueNormalizesEmbeddedNewlines(t *testing.T) {
	s := newTestScanner(t, "<a title=\"one\r\ntwo\rthree\nfour\">")
	tok := s.Next()
	st, ok := tok.(*token.StartTag)
	if !ok {
		t.Fatalf("got %T, want *token.StartTag", tok)
	}
	assert.Len(t, st.Attrs, 1)
	assert.Equal(t, "one\ntwo\nthree\nfour", st.Attrs[0].Value)
	assert.Equal(t, "one\ntwo\nthree\nfour", st.Attrs[0].NonNormalizedValue)
}

func TestSelfClosingVoidElement(t *testing.T) {
	s := newTestScanner(t, `<br/>`)
	got := drain(s)
	want := []token.Token{
		&token.StartTag{Name: token.New("br"), SelfClosing: true},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}

func TestCommentWithBangBangQuirk(t *testing.T) {
	s := newTestScanner(t, `<!-- hi --!>tail`)
	got := drain(s)
	want := []token.Token{
		&token.Comment{Text: " hi "},
		&token.Text{Data: "tail"},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}

func TestDoctypeWithPublicAndSystem(t *testing.T) {
	s := newTestScanner(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`)
	tok := s.Next()
	dt, ok := tok.(*token.Doctype)
	if !ok {
		t.Fatalf("got %T, want *token.Doctype", tok)
	}
	assert.Equal(t, "html", dt.Root)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", dt.PublicID)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", dt.SystemID)
}

func TestProcessingInstruction(t *testing.T) {
	s := newTestScanner(t, `<?xml-stylesheet href="a.xsl"?>`)
	tok := s.Next()
	pi, ok := tok.(*token.PI)
	if !ok {
		t.Fatalf("got %T, want *token.PI", tok)
	}
	assert.Equal(t, "xml-stylesheet", pi.Target)
	assert.Equal(t, `href="a.xsl"`, pi.Data)
}

func TestXMLDecl(t *testing.T) {
	s := newTestScanner(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	tok := s.Next()
	decl, ok := tok.(*token.XMLDecl)
	if !ok {
		t.Fatalf("got %T, want *token.XMLDecl", tok)
	}
	assert.Equal(t, "1.0", decl.Version)
	assert.Equal(t, "UTF-8", decl.Encoding)
	assert.Equal(t, "yes", decl.Standalone)
}

func TestScriptRawText(t *testing.T) {
	s := newTestScanner(t, "if (1<2) { alert('&amp;'); }</script>tail")
	s.EnterSpecial("script", elements.ContentScript)
	tok := s.Next()
	text, ok := tok.(*token.Text)
	if !ok {
		t.Fatalf("got %T, want *token.Text", tok)
	}
	// Inside script raw text, entities and '<' are NOT interpreted.
	assert.Equal(t, "if (1<2) { alert('&amp;'); }", text.Data)

	end := s.Next()
	et, ok := end.(*token.EndTag)
	if !ok {
		t.Fatalf("got %T, want *token.EndTag", end)
	}
	assert.Equal(t, "script", et.Name.Raw)

	rest := s.Next()
	rt, ok := rest.(*token.Text)
	if !ok {
		t.Fatalf("got %T, want *token.Text", rest)
	}
	assert.Equal(t, "tail", rt.Data)
}

func TestScriptEscapedDoesNotEndOnInnerScriptTag(t *testing.T) {
	s := newTestScanner(t, "<!--<script>-->-->")
	s.EnterSpecial("script", elements.ContentScript)
	tok := s.Next()
	text, ok := tok.(*token.Text)
	if !ok {
		t.Fatalf("got %T, want *token.Text", tok)
	}
	assert.Equal(t, "<!--<script>-->-->", text.Data)
}

func TestRCDataResolvesEntitiesNotTags(t *testing.T) {
	s := newTestScanner(t, "&amp;<b>not a tag</textarea>")
	s.EnterSpecial("textarea", elements.ContentRCData)
	tok := s.Next()
	text, ok := tok.(*token.Text)
	if !ok {
		t.Fatalf("got %T, want *token.Text", tok)
	}
	assert.Equal(t, "&<b>not a tag", text.Data)

	end := s.Next()
	et, ok := end.(*token.EndTag)
	if !ok {
		t.Fatalf("got %T, want *token.EndTag", end)
	}
	assert.Equal(t, "textarea", et.Name.Raw)
}

func TestPlaintextNeverExits(t *testing.T) {
	s := newTestScanner(t, "<b>ignored as markup")
	s.EnterSpecial("plaintext", elements.ContentPlaintext)
	tok := s.Next()
	text, ok := tok.(*token.Text)
	if !ok {
		t.Fatalf("got %T, want *token.Text", tok)
	}
	assert.Equal(t, "<b>ignored as markup", text.Data)
}

func TestEOFIsIdempotent(t *testing.T) {
	s := newTestScanner(t, "x")
	_ = s.Next()
	first := s.Next()
	second := s.Next()
	if diff := cmp.Diff(first, second, tokenCmpOpts); diff != "" {
		t.Error("repeated EOF diff (-first +second)\n", diff)
	}
}

func TestMetaCharsetSwitchesEncoding(t *testing.T) {
	s := newTestScanner(t, `<meta charset="utf-8">`)
	assert.Equal(t, "windows-1252", s.buf.CurrentEncoding())

	tok := s.Next()
	if _, ok := tok.(*token.StartTag); !ok {
		t.Fatalf("got %T, want *token.StartTag", tok)
	}
	assert.Equal(t, "utf-8", s.buf.CurrentEncoding())
}

func TestMetaHTTPEquivContentTypeSwitchesEncoding(t *testing.T) {
	s := newTestScanner(t, `<meta http-equiv="Content-Type" content="text/html; charset=UTF-8">`)
	_ = s.Next()
	assert.Equal(t, "utf-8", s.buf.CurrentEncoding())
}

func TestXMLDeclSwitchesEncoding(t *testing.T) {
	s := newTestScanner(t, `<?xml version="1.0" encoding="UTF-8"?>`)
	_ = s.Next()
	assert.Equal(t, "utf-8", s.buf.CurrentEncoding())
}

func TestSpanLocationsAdvanceWithAugmentations(t *testing.T) {
	buf, err := buffer.New(strings.NewReader("<a>x</a>"), "")
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	s := New(buf, Config{Augmentations: true}, nil)
	tok := s.Next()
	st := tok.(*token.StartTag)
	if st.Span().Begin == (pos.Location{}) && st.Span().End == (pos.Location{}) {
		t.Error("expected non-zero span when Augmentations is enabled")
	}
}

func TestRecognizedElementNameLowercasedBySourcePolicy(t *testing.T) {
	s := newTestScanner(t, `<DIV></DIV><FooBar>`)
	got := drain(s)
	want := []token.Token{
		&token.StartTag{Name: token.New("div")},
		&token.EndTag{Name: token.New("div")},
		&token.StartTag{Name: token.New("FooBar")},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}

func TestStraySlashInsideTagDoesNotEndAttributes(t *testing.T) {
	s := newTestScanner(t, `<a / href="x">`)
	tok := s.Next()
	st, ok := tok.(*token.StartTag)
	if !ok {
		t.Fatalf("got %T, want *token.StartTag", tok)
	}
	assert.False(t, st.SelfClosing)
	assert.Len(t, st.Attrs, 1)
	assert.Equal(t, "x", st.Attrs[0].Value)
}

func TestMetaCharsetSwitchDoesNotRescanConsumedInput(t *testing.T) {
	s := newTestScanner(t, `<meta charset="utf-8">tail`)
	got := drain(s)
	want := []token.Token{
		&token.StartTag{
			Name:  token.New("meta"),
			Attrs: []token.Attr{{Name: token.New("charset"), Value: "utf-8", NonNormalizedValue: "utf-8", Specified: true}},
		},
		&token.Text{Data: "tail"},
		&token.EOF{},
	}
	if diff := cmp.Diff(want, got, tokenCmpOpts); diff != "" {
		t.Error("Next diff (-want +got)\n", diff)
	}
}
