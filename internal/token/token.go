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

// Package token defines the raw token variant the Scanner emits and the
// Tag Balancer consumes. It lives under internal/ so both internal/scanner
// and internal/balancer can depend on it without creating an import cycle
// through the root package, which re-exports these types as its own
// public API.
package token

import "github.com/htmlunit-go/neko/internal/pos"

// QName is a (possibly namespaced) qualified name as it appeared on the
// wire, plus its resolved parts.
type QName struct {
	Raw          string
	Prefix       string
	Local        string
	NamespaceURI string
}

// New splits raw on the first ':' into prefix/local. A name with no ':' or
// with an empty prefix or local part has Prefix == "".
func New(raw string) QName {
	for i := 0; i < len(raw); i++ {
		if raw[i] == ':' {
			if i > 0 && i+1 < len(raw) {
				return QName{Raw: raw, Prefix: raw[:i], Local: raw[i+1:]}
			}
			break
		}
	}
	return QName{Raw: raw, Local: raw}
}

// Attr is a single attribute on a start tag.
type Attr struct {
	Name               QName
	Value              string
	NonNormalizedValue string
	Specified          bool
}

// Token is a raw event produced by the Scanner.
type Token interface {
	token()
	Span() pos.Span
	Synthesized() bool
}

// Base is embedded by every concrete Token to share location bookkeeping.
type Base struct {
	SpanValue   pos.Span
	IsSynthetic bool
}

func (b Base) Span() pos.Span   { return b.SpanValue }
func (b Base) Synthesized() bool { return b.IsSynthetic }

// StartTag is an opening tag: <foo attr="val"> or the self-closing <foo/>.
type StartTag struct {
	Base
	Name        QName
	Attrs       []Attr
	SelfClosing bool
}

func (*StartTag) token() {}

// EndTag is a closing tag: </foo>.
type EndTag struct {
	Base
	Name QName
}

func (*EndTag) token() {}

// Text is a run of character data.
type Text struct {
	Base
	Data string
}

func (*Text) token() {}

// Comment is the contents of <!-- ... --> (delimiters stripped).
type Comment struct {
	Base
	Text string
}

func (*Comment) token() {}

// CData is the contents of <![CDATA[ ... ]]> (delimiters stripped).
type CData struct {
	Base
	Text string
}

func (*CData) token() {}

// PI is a processing instruction <?target data?>.
type PI struct {
	Base
	Target string
	Data   string
}

func (*PI) token() {}

// Doctype is a <!DOCTYPE root [PUBLIC "pub" | SYSTEM] "sys"> declaration.
type Doctype struct {
	Base
	Root     string
	PublicID string
	SystemID string
}

func (*Doctype) token() {}

// XMLDecl is a <?xml version="..." encoding="..." standalone="..."?> prolog
// declaration.
type XMLDecl struct {
	Base
	Version    string
	Encoding   string
	Standalone string
}

func (*XMLDecl) token() {}

// EOF marks the end of the token stream.
type EOF struct {
	Base
}

func (*EOF) token() {}
