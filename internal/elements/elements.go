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

// Package elements holds the static, process-wide element-descriptor table:
// category flags, allowed-parent sets, closes-on-open sets, and special
// content mode, keyed by lower-case element name. The table is built once
// at package init and never mutated afterward, so it is safe to share
// across concurrent parses.
package elements

// Category is a bitset of element classifications used by the Tag Balancer
// to decide ancestor requirements and scoping.
type Category uint32

const (
	Block Category = 1 << iota
	Inline
	Container
	Empty
	Special
	TableScope
	ListItem
	Heading
	FormElement
	SelectOption
)

func (c Category) Has(f Category) bool { return c&f != 0 }

// ContentMode is the scanner sub-mode an element's body is read in.
type ContentMode int

const (
	ContentNone ContentMode = iota
	ContentRCData
	ContentRawText
	ContentScript
	ContentPlaintext
	ContentCData
)

// Descriptor is the static metadata for one element name.
type Descriptor struct {
	Name        string
	Category    Category
	Content     ContentMode
	// ClosesOnOpen lists element names that, if currently open, this
	// element implicitly closes at the moment it is itself opened (e.g.
	// opening "li" closes an open "li"; opening "div" closes an open
	// "p").
	ClosesOnOpen map[string]bool
	// Parents, when non-nil, is the set of element names this element is
	// allowed to be a direct child of. A nil set means ANY parent is
	// allowed (unknown elements and most inline containers).
	Parents map[string]bool
	// RequiredAncestors lists ancestor names (outermost first) that must
	// exist on the open-element stack before this element may be opened;
	// missing ones are synthesized. Example: "td" requires
	// ["table", "tr"].
	RequiredAncestors []string
	// AnyAncestor, when non-empty, is a set of alternative ancestor names
	// of which any single one satisfies the requirement (e.g. "li" is
	// satisfied by an open "ul", "ol", or "menu"). If none is open, the
	// first name in the list is synthesized as the immediate parent. It is
	// checked in addition to RequiredAncestors, not instead of it: "tr"
	// requires "table" and any one of "tbody"/"thead"/"tfoot".
	AnyAncestor []string
	// SynthesizeMissingParent is true when a missing required ancestor
	// should be synthesized (e.g. "tr" outside "tbody"); false means the
	// start tag is ignored instead when a required ancestor is missing.
	SynthesizeMissingParent bool
}

// table is immutable after init(); see doc comment.
var table map[string]*Descriptor

// Lookup returns the descriptor for name (case-sensitive; callers must
// lower-case first) or nil if name is unknown. Unknown names are treated by
// the Tag Balancer as inline containers with no implicit parent
// requirements.
func Lookup(name string) *Descriptor {
	return table[name]
}

func def(name string, cat Category, content ContentMode) *Descriptor {
	d := &Descriptor{Name: name, Category: cat, Content: content}
	table[name] = d
	return d
}

func closesOn(d *Descriptor, names ...string) *Descriptor {
	if d.ClosesOnOpen == nil {
		d.ClosesOnOpen = make(map[string]bool, len(names))
	}
	for _, n := range names {
		d.ClosesOnOpen[n] = true
	}
	return d
}

func parents(d *Descriptor, names ...string) *Descriptor {
	d.Parents = make(map[string]bool, len(names))
	for _, n := range names {
		d.Parents[n] = true
	}
	return d
}

func requires(d *Descriptor, synthesize bool, ancestors ...string) *Descriptor {
	d.RequiredAncestors = ancestors
	d.SynthesizeMissingParent = synthesize
	return d
}

// VoidElements have no content and are never pushed with a matching close;
// a scanner-level self-closing slash is accepted but not required.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether name never has element children and is implicitly
// self-closing.
func IsVoid(name string) bool { return voidElements[name] }

func init() {
	table = make(map[string]*Descriptor, 128)

	for name := range voidElements {
		def(name, Empty, ContentNone)
	}

	def("html", Container, ContentNone)
	def("head", Container, ContentNone)
	closesOn(def("body", Container, ContentNone))
	def("title", Container, ContentRCData)
	def("style", Special, ContentRawText)
	def("script", Special, ContentScript)
	def("textarea", Container, ContentRCData)
	def("xmp", Special, ContentRawText)
	def("iframe", Special, ContentRawText)
	def("noembed", Special, ContentRawText)
	def("noframes", Special, ContentRawText)
	def("noscript", Special, ContentRawText)
	def("plaintext", Special, ContentPlaintext)

	// Paragraph-like blocks close a previously open "p": a new block
	// element implicitly ends the current paragraph.
	blockNames := []string{
		"address", "article", "aside", "blockquote", "details", "div",
		"dl", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "main",
		"menu", "nav", "ol", "p", "pre", "section", "table", "ul",
	}
	for _, n := range blockNames {
		closesOn(def(n, Block, ContentNone), "p")
	}
	// "hr" is both a block (closes an open p) and a void element; the loop
	// above replaced the descriptor the voidElements loop created, so the
	// Empty flag has to be restored on the merged entry.
	table["hr"].Category |= Empty
	for _, n := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		table[n].Category |= Heading
	}
	for _, n := range []string{"form"} {
		table[n].Category |= FormElement
	}

	def("br", Empty|Inline, ContentNone)
	def("a", Inline, ContentNone)
	def("span", Inline, ContentNone)
	def("b", Inline, ContentNone)
	def("i", Inline, ContentNone)
	def("u", Inline, ContentNone)
	def("em", Inline, ContentNone)
	def("strong", Inline, ContentNone)
	def("small", Inline, ContentNone)
	def("code", Inline, ContentNone)

	// li closes a previously open li. Its valid parent is a choice of
	// "ul", "ol", or "menu", not a fixed chain, so it uses AnyAncestor
	// rather than RequiredAncestors.
	closesOn(def("li", ListItem, ContentNone), "li")
	table["li"].AnyAncestor = []string{"ul", "ol", "menu"}
	table["li"].SynthesizeMissingParent = true

	// dt/dd close each other.
	closesOn(def("dt", ListItem, ContentNone), "dt", "dd")
	closesOn(def("dd", ListItem, ContentNone), "dt", "dd")

	// option/optgroup close siblings.
	closesOn(def("option", SelectOption, ContentNone), "option")
	closesOn(def("optgroup", SelectOption, ContentNone), "option", "optgroup")
	def("select", Container, ContentNone)

	// Table scoping: table > (caption|colgroup|tbody|thead|tfoot) >
	// tr > (td|th). A tr requires a table-section ancestor; td/th require
	// tr. Missing ancestors are synthesized.
	// "table" was already def'd in the blockNames loop above (which also
	// set its closes-an-open-"p" entry); add the TableScope flag onto the
	// existing descriptor instead of replacing it, or that entry is lost.
	table["table"].Category |= TableScope
	for _, n := range []string{"caption", "colgroup"} {
		requires(parents(def(n, TableScope, ContentNone), "table"), true, "table")
	}
	for _, n := range []string{"tbody", "thead", "tfoot"} {
		closesOn(def(n, TableScope, ContentNone), "tbody", "thead", "tfoot", "caption", "colgroup")
		requires(parents(table[n], "table"), true, "table")
	}
	// tr's valid immediate parent is a choice among the table-section
	// elements (AnyAncestor), but "table" itself is always required too
	// (RequiredAncestors) regardless of which section is open -- the two
	// checks compose rather than substitute for one another (see
	// ensureAncestors in internal/balancer).
	closesOn(def("tr", TableScope, ContentNone), "tr")
	parents(table["tr"], "tbody", "thead", "tfoot")
	requires(table["tr"], true, "table")
	table["tr"].AnyAncestor = []string{"tbody", "thead", "tfoot"}
	for _, n := range []string{"td", "th"} {
		// td/th need "table" and "tr" open above them, but not any specific
		// table-section name -- a synthesized tbody would be wrong under an
		// already-open thead/tfoot.
		closesOn(def(n, TableScope, ContentNone), "td", "th")
		requires(parents(table[n], "tr"), true, "table", "tr")
	}
	def("col", Empty|TableScope, ContentNone)

	def("meta", Empty, ContentNone)
	def("link", Empty, ContentNone)
	def("base", Empty, ContentNone)

	def("svg", Container, ContentNone)
	def("math", Container, ContentNone)
}
