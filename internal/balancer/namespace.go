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
	"strings"

	"github.com/htmlunit-go/neko/internal/token"
)

// Namespace URIs the Tag Balancer resolves against when Config.Namespaces
// is enabled: unprefixed names resolve against an XHTML namespace, and
// declared prefixes are tracked per xmlns binding.
const (
	xhtmlNS = "http://www.w3.org/1999/xhtml"
	svgNS   = "http://www.w3.org/2000/svg"
	mathNS  = "http://www.w3.org/1998/Math/MathML"
)

// foreignNS returns the namespace a foreign-content root element (svg or
// math) switches its subtree to, or "" if key isn't one.
func foreignNS(key string) string {
	switch key {
	case "svg":
		return svgNS
	case "math":
		return mathNS
	default:
		return ""
	}
}

// declaredPrefixes extracts any "xmlns" (default namespace) or
// "xmlns:prefix" attributes carried by a start tag's own attribute list,
// for lookupPrefix to consult on descendants. Returns nil if none are
// present, so the common case allocates nothing.
func declaredPrefixes(attrs []token.Attr) map[string]string {
	var out map[string]string
	for _, a := range attrs {
		raw := a.Name.Raw
		switch {
		case raw == "xmlns":
			if out == nil {
				out = map[string]string{}
			}
			out[""] = a.Value
		case strings.HasPrefix(raw, "xmlns:"):
			if out == nil {
				out = map[string]string{}
			}
			out[raw[len("xmlns:"):]] = a.Value
		}
	}
	return out
}

// resolveNamespace computes the namespace URI for an element about to be
// pushed: prefixed names resolve against a declared xmlns:prefix binding --
// the element's own declarations (own) checked before the open-element
// stack's, so <x:a xmlns:x="..."> resolves against itself -- falling back
// to no URI if none was declared; unprefixed names default to whatever
// foreign-content namespace is currently open, or the XHTML namespace at
// the document root. Only called when Config.Namespaces is on.
func (b *Balancer) resolveNamespace(key string, name token.QName, own map[string]string) string {
	if uri := foreignNS(key); uri != "" {
		return uri
	}
	if name.Prefix != "" {
		if uri, ok := own[name.Prefix]; ok {
			return uri
		}
		if uri, ok := b.stack.lookupPrefix(name.Prefix); ok {
			return uri
		}
		return ""
	}
	if uri, ok := own[""]; ok {
		return uri
	}
	if inherited := b.stack.inheritedNS(); inherited != "" {
		return inherited
	}
	return xhtmlNS
}

// withNamespace returns a copy of name with NamespaceURI populated per
// Config.Namespaces/InsertNamespaces, and the declared-prefix map (if any)
// the pushed stack entry should remember for its descendants. synthetic is
// true for the Tag Balancer's own synthesized html/head/body elements,
// which the "insert-namespaces" option governs independently of general
// namespace resolution.
func (b *Balancer) withNamespace(key string, name token.QName, attrs []token.Attr, synthetic bool) (token.QName, string, map[string]string) {
	if synthetic {
		if !b.cfg.InsertNamespaces {
			return name, "", nil
		}
		name.NamespaceURI = xhtmlNS
		return name, xhtmlNS, nil
	}
	if !b.cfg.Namespaces {
		return name, "", nil
	}
	prefixes := declaredPrefixes(attrs)
	ns := b.resolveNamespace(key, name, prefixes)
	name.NamespaceURI = ns
	return name, ns, prefixes
}
