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

package balancer

import (
	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/token"
)

// openElement is one entry on the open-element stack. key is the
// lower-cased element name used for table lookups and stack matching; name
// preserves whatever casing Config.ElemNameCase produced, for replay to the
// Sink.
type openElement struct {
	key  string
	name token.QName
	desc *elements.Descriptor // nil for unknown elements

	// ns is this element's resolved namespace URI, populated when
	// Config.Namespaces is on, or for the synthesized html/head/body when
	// Config.InsertNamespaces is on. prefixes holds any xmlns/xmlns:*
	// declarations carried by this element's own start tag, consulted by
	// descendants before falling back to an ancestor's.
	ns       string
	prefixes map[string]string
}

// elemStack is the Tag Balancer's open-element stack, bottom (document
// root) first.
type elemStack []openElement

func (s elemStack) top() (openElement, bool) {
	if len(s) == 0 {
		return openElement{}, false
	}
	return s[len(s)-1], true
}

// topKey returns the lower-cased name of the top of the stack, or "" if
// empty.
func (s elemStack) topKey() string {
	e, ok := s.top()
	if !ok {
		return ""
	}
	return e.key
}

// indexOf finds the nearest (topmost) open element with the given
// lower-cased name, or -1.
func (s elemStack) indexOf(lowerName string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].key == lowerName {
			return i
		}
	}
	return -1
}

// hasAncestor reports whether any open element has the given name.
func (s elemStack) hasAncestor(lowerName string) bool {
	return s.indexOf(lowerName) >= 0
}

// inheritedNS returns the namespace URI a new child should default to
// absent its own declaration: the innermost open element's own namespace,
// or "" at the document root.
func (s elemStack) inheritedNS() string {
	if e, ok := s.top(); ok {
		return e.ns
	}
	return ""
}

// lookupPrefix walks the stack innermost-first looking for a declared
// xmlns:prefix binding.
func (s elemStack) lookupPrefix(prefix string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if uri, ok := s[i].prefixes[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

// tableScopeLimiting names the "table-scope-limiting" elements: popping an
// end tag past one of these (when the end tag's own name isn't among
// them) is forbidden.
var tableScopeLimiting = map[string]bool{
	"table": true, "caption": true, "html": true,
}

// boundaryBetween reports whether closing the element at idx would require
// popping past a table-scope-limiting element that idx's own key does not
// name. Popping past a table-scope-limiting element is forbidden: the stray
// end tag is ignored instead.
func (s elemStack) boundaryBetween(idx int, key string) bool {
	if tableScopeLimiting[key] {
		return false
	}
	for i := len(s) - 1; i > idx; i-- {
		if tableScopeLimiting[s[i].key] {
			return true
		}
	}
	return false
}
