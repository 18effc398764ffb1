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

package neko

import "github.com/htmlunit-go/neko/internal/token"

// Token is a raw event produced by the Scanner, before the Tag Balancer has
// had a chance to balance it against the open-element stack.
//
//	StartTag:  <foo> or <foo/>
//	EndTag:    </foo>
//	Text:      any character data outside of markup
//	Comment:   <!-- ... -->
//	CData:     <![CDATA[ ... ]]>
//	PI:        <?target data?>
//	Doctype:   <!DOCTYPE ...>
//	XMLDecl:   <?xml version="1.0" encoding="..."?>
//	EOF:       end of input
type Token = token.Token

// StartTag is an opening tag: <foo attr="val"> or the self-closing <foo/>.
type StartTag = token.StartTag

// EndTag is a closing tag: </foo>.
type EndTag = token.EndTag

// Text is a run of character data.
type Text = token.Text

// Comment is the contents of <!-- ... --> (delimiters stripped).
type Comment = token.Comment

// CData is the contents of <![CDATA[ ... ]]> (delimiters stripped).
type CData = token.CData

// PI is a processing instruction <?target data?>.
type PI = token.PI

// Doctype is a <!DOCTYPE root [PUBLIC "pub" | SYSTEM] "sys"> declaration.
type Doctype = token.Doctype

// XMLDecl is a <?xml version="..." encoding="..." standalone="..."?> prolog
// declaration.
type XMLDecl = token.XMLDecl

// EOF marks the end of the token stream. No further tokens follow it.
type EOF = token.EOF
