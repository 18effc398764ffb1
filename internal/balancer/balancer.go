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

	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/pos"
	"github.com/htmlunit-go/neko/internal/token"
)

// Config is the subset of the root package's Config the Tag Balancer needs.
type Config struct {
	Augmentations bool
	Fragment      bool
	// FragmentContext names the ancestor chain (outermost first) the
	// fragment is parsed as if already open. It never produces
	// StartElement/EndElement calls of its own; it only seeds the stack
	// used for implicit-parent and scoping decisions.
	FragmentContext []string
	// Namespaces enables the "namespaces" option: prefixed names resolve
	// against declared xmlns/xmlns:prefix bindings, and unprefixed names
	// default to the XHTML namespace (or whichever foreign-content
	// namespace, svg/math, is currently open).
	Namespaces bool
	// InsertNamespaces enables the "insert-namespaces" option: the Tag
	// Balancer's own synthesized "html"/"head"/"body" elements get the
	// XHTML namespace assigned, independent of Namespaces.
	InsertNamespaces bool
	// IgnoreOutsideContent enables the
	// "balance-tags/ignore-outside-content" option: a second <html> or
	// <body> is dropped as an ignored-start-element notification instead
	// of nesting as an ordinary element.
	IgnoreOutsideContent bool
}

// Balancer drives a Sink from a TokenSource, applying tag-balancing rules:
// ancestor synthesis, closes-on-open handling, ignored unmatched end tags,
// and table-scoped foster parenting of stray character data.
type Balancer struct {
	src      TokenSource
	scan     SpecialContentSetter
	sink     Sink
	listener Listener
	cfg      Config

	stack   elemStack
	foster  fosterStack
	started bool
	done    bool

	// contextDepth is how many stack entries were pre-seeded from
	// FragmentContext. closeRemaining never pops below this depth: those
	// entries represent ambient context, not real open tags, and produce
	// no EndElement calls of their own.
	contextDepth int

	// htmlOpened/headSeen/bodyOpened track implicit document-structure
	// synthesis: "<html>"/"<head>"/"<body>" are opened on demand, at most
	// once, the first time content needs them. In fragment mode nothing is
	// synthesized (the caller's FragmentContext already establishes ambient
	// structure); only real <html>/<head>/<body> start tags set them.
	htmlOpened, headSeen, bodyOpened bool

	// foreignDepth counts currently-open "svg"/"math" ancestors (nesting
	// allowed), toggling the scanner's foreign-content mode (CDATA section
	// recognition) on the 0->1 and 1->0 transitions.
	foreignDepth int
}

// New returns a Balancer reading tokens from src, switching the scanner's
// content mode via scan, and driving sink/listener.
func New(src TokenSource, scan SpecialContentSetter, sink Sink, listener Listener, cfg Config) *Balancer {
	if listener == nil {
		listener = NopListener{}
	}
	b := &Balancer{src: src, scan: scan, sink: sink, listener: listener, cfg: cfg}
	for _, name := range cfg.FragmentContext {
		key := strings.ToLower(name)
		qn := token.New(name)
		var ns string
		if cfg.Namespaces {
			ns = b.resolveNamespace(key, qn, nil)
			qn.NamespaceURI = ns
		}
		b.stack = append(b.stack, openElement{key: key, name: qn, desc: elements.Lookup(key), ns: ns})
		if isForeignRoot(key) {
			b.foreignDepth++
		}
	}
	b.contextDepth = len(b.stack)
	if b.foreignDepth > 0 {
		scan.SetForeign(true)
	}
	return b
}

// Run drains the token source to EOF, emitting Sink calls in document
// order, and closes out any still-open elements at end of input.
func (b *Balancer) Run() error {
	if err := b.emitStartDocument(); err != nil {
		return err
	}
	for {
		tok := b.src.Next()
		done, err := b.dispatch(tok)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	if err := b.closeRemaining(); err != nil {
		return err
	}
	return b.sink.EndDocument()
}

func (b *Balancer) emitStartDocument() error {
	if b.started {
		return nil
	}
	b.started = true
	return b.sink.StartDocument()
}

func (b *Balancer) dispatch(tok token.Token) (done bool, err error) {
	aug := b.aug(tok)
	switch t := tok.(type) {
	case *token.EOF:
		return true, nil
	case *token.StartTag:
		return false, b.handleStartTag(t, aug)
	case *token.EndTag:
		return false, b.handleEndTag(t, aug)
	case *token.Text:
		return false, b.handleText(t.Data, aug)
	case *token.Comment:
		return false, b.route(func() error { return b.sink.Comment(t.Text, aug) })
	case *token.CData:
		return false, b.handleCData(t, aug)
	case *token.PI:
		return false, b.route(func() error { return b.sink.ProcessingInstruction(t.Target, t.Data, aug) })
	case *token.Doctype:
		return false, b.sink.DoctypeDecl(t.Root, t.PublicID, t.SystemID, aug)
	case *token.XMLDecl:
		return false, b.sink.XMLDecl(t.Version, t.Encoding, t.Standalone, aug)
	default:
		return false, nil
	}
}

func (b *Balancer) aug(tok token.Token) pos.Augmentations {
	if !b.cfg.Augmentations {
		return pos.Augmentations{}
	}
	return pos.Augmentations{Span: tok.Span(), Synthesized: tok.Synthesized()}
}

// route sends a fostering-agnostic event (comment/PI/CData/element
// start-or-end) either straight to the Sink or into the active foster
// frame's buffered "inside" list, if a table is currently deferring its own
// StartElement.
func (b *Balancer) route(call func() error) error {
	if f := b.foster.top(); f != nil {
		f.recordInside(call)
		return nil
	}
	return call()
}

// routeFoster sends a misplaced table-scope text run to just before the
// innermost deferred table's own StartElement, instead of inside it.
func (b *Balancer) routeFoster(call func() error) error {
	if f := b.foster.top(); f != nil {
		f.recordFoster(call)
		return nil
	}
	return call()
}

func (b *Balancer) handleCData(t *token.CData, aug pos.Augmentations) error {
	return b.route(func() error {
		if err := b.sink.StartCData(aug); err != nil {
			return err
		}
		if err := b.sink.Characters(t.Text, aug); err != nil {
			return err
		}
		return b.sink.EndCData(aug)
	})
}

// isFosterPosition reports whether key names an element in which stray
// non-whitespace text must be foster-parented ahead of the table rather
// than inserted as a child (the standard HTML5 table-text rule).
func isFosterPosition(key string) bool {
	switch key {
	case "table", "tbody", "thead", "tfoot", "tr":
		return true
	default:
		return false
	}
}

func (b *Balancer) handleText(data string, aug pos.Augmentations) error {
	if strings.TrimSpace(data) != "" && !b.stack.hasAncestor("head") {
		if err := b.ensureDocumentStructure(""); err != nil {
			return err
		}
	}
	if b.foster.top() != nil && isFosterPosition(b.stack.topKey()) && strings.TrimSpace(data) != "" {
		return b.routeFoster(func() error { return b.sink.Characters(data, aug) })
	}
	return b.route(func() error { return b.sink.Characters(data, aug) })
}

// ensureDocumentStructure forces opening of html and body the first time
// content arrives outside of them in a non-fragment parse, generalized to
// cover any content (not just text) that arrives before the document root
// exists: the first time non-root content shows up, "html" is
// opened if missing, an empty "head" is synthesized if none was ever seen,
// and "body" is opened if missing. key is the lower-cased name of the
// element about to be opened, or "" for text/other non-element content;
// "html"/"head"/"body" themselves call this only for the structure above
// them, never to synthesize themselves.
func (b *Balancer) ensureDocumentStructure(key string) error {
	if b.cfg.Fragment {
		return nil
	}
	if !b.htmlOpened {
		if err := b.synthOpen("html"); err != nil {
			return err
		}
	}
	if !b.headSeen {
		if err := b.synthOpen("head"); err != nil {
			return err
		}
		if err := b.closeTopWith(pos.Augmentations{Synthesized: true}, true); err != nil {
			return err
		}
	}
	if key == "body" {
		return nil
	}
	if !b.bodyOpened {
		if err := b.synthOpen("body"); err != nil {
			return err
		}
	}
	return nil
}

// synthOpen pushes and emits a synthesized StartElement for one of the
// document-structure elements ("html"/"head"/"body"), updating the
// corresponding tracking flag.
func (b *Balancer) synthOpen(key string) error {
	name := b.push(key, token.New(key), elements.Lookup(key), nil, true)
	switch key {
	case "html":
		b.htmlOpened = true
	case "head":
		b.headSeen = true
	case "body":
		b.bodyOpened = true
	}
	b.listener.SynthesizedStartElement(name)
	aug := pos.Augmentations{Synthesized: true}
	return b.route(func() error { return b.sink.StartElement(name, nil, aug) })
}

// handleStartTag applies the element-opening rules: closes-on-open
// siblings, required-ancestor synthesis (or ignoring the tag outright when
// synthesis isn't allowed), table foster-frame entry, and special-content
// mode switching.
func (b *Balancer) handleStartTag(t *token.StartTag, aug pos.Augmentations) error {
	key := strings.ToLower(t.Name.Local)
	if key == "" {
		key = strings.ToLower(t.Name.Raw)
	}

	// A second root element (a repeated <html> or <body>) is ignored
	// rather than synthesized or pushed, gated by
	// Config.IgnoreOutsideContent. With the option off, a second
	// <html>/<body> falls through to ordinary element handling instead,
	// nesting rather than vanishing.
	switch key {
	case "html":
		if b.htmlOpened && b.cfg.IgnoreOutsideContent {
			b.listener.IgnoredStartElement(t.Name, t.Attrs)
			return nil
		}
	case "body":
		if b.bodyOpened && b.cfg.IgnoreOutsideContent {
			b.listener.IgnoredStartElement(t.Name, t.Attrs)
			return nil
		}
		if err := b.ensureDocumentStructure("body"); err != nil {
			return err
		}
	case "head":
		if b.headSeen {
			b.listener.IgnoredStartElement(t.Name, t.Attrs)
			return nil
		}
		if !b.cfg.Fragment && !b.htmlOpened {
			if err := b.synthOpen("html"); err != nil {
				return err
			}
		}
	default:
		// Content inside an explicitly open head stays there; the
		// head-then-body sequence is only forced once head scope ends.
		if !b.stack.hasAncestor("head") {
			if err := b.ensureDocumentStructure(key); err != nil {
				return err
			}
		}
	}

	desc := elements.Lookup(key)

	if desc != nil {
		if err := b.closeOnOpen(desc); err != nil {
			return err
		}
		if err := b.ensureAncestors(desc); err != nil {
			return err
		}
		if !b.parentAllowed(desc) {
			b.listener.IgnoredStartElement(t.Name, t.Attrs)
			return nil
		}
	}

	void := desc != nil && desc.Category.Has(elements.Empty)
	name := b.push(key, t.Name, desc, t.Attrs, false)
	switch key {
	case "html":
		b.htmlOpened = true
	case "head":
		b.headSeen = true
	case "body":
		b.bodyOpened = true
	}

	startCall := func() error { return b.sink.StartElement(name, t.Attrs, aug) }

	if desc != nil && key == "table" {
		b.foster.push(&fosterFrame{startCall: startCall})
	} else if err := b.route(startCall); err != nil {
		return err
	}

	if desc != nil && desc.Content != elements.ContentNone {
		b.scan.EnterSpecial(key, desc.Content)
	}

	if void || t.SelfClosing {
		// The source never wrote a matching end tag (void elements can't
		// have one; "/>" on a non-void element stands in for one), so the
		// close is synthesized either way.
		closeAug := pos.Augmentations{Span: aug.Span, Synthesized: true}
		return b.closeTopWith(closeAug, true)
	}
	return nil
}

// closeOnOpen pops any open elements the newly-opening descriptor
// implicitly closes, down to and including the nearest conflicting one. The
// walk never crosses a table-scope-limiting element or the fragment
// context boundary: a new "li" inside a table cell must not reach an "li"
// open outside the table.
func (b *Balancer) closeOnOpen(desc *elements.Descriptor) error {
	if len(desc.ClosesOnOpen) == 0 {
		return nil
	}
	idx := -1
	for i := len(b.stack) - 1; i >= b.contextDepth; i-- {
		e := b.stack[i]
		if desc.ClosesOnOpen[e.key] {
			idx = i
			break
		}
		if tableScopeLimiting[e.key] {
			return nil
		}
	}
	if idx < 0 {
		return nil
	}
	for len(b.stack) > idx {
		if err := b.closeTopWith(pos.Augmentations{Synthesized: true}, true); err != nil {
			return err
		}
	}
	return nil
}

// ensureAncestors synthesizes missing required-ancestor elements (e.g. a
// bare "tr" outside any "table"/"tbody"), or does nothing when the required
// chain is already present. RequiredAncestors (a fixed chain, e.g. "table")
// and AnyAncestor (a choice of equally-valid immediate parents, e.g. "tbody"
// vs. "thead" vs. "tfoot") are independent checks, not alternatives: "tr"
// needs both "table" present somewhere above it *and* one of the
// table-section elements as its immediate scope. Descriptors that don't
// allow synthesis are left to parentAllowed to reject instead.
func (b *Balancer) ensureAncestors(desc *elements.Descriptor) error {
	if !desc.SynthesizeMissingParent {
		return nil
	}
	for _, anc := range desc.RequiredAncestors {
		if b.stack.hasAncestor(anc) {
			continue
		}
		if err := b.synthAncestor(anc); err != nil {
			return err
		}
	}
	if len(desc.AnyAncestor) > 0 {
		for _, anc := range desc.AnyAncestor {
			if b.stack.hasAncestor(anc) {
				return nil
			}
		}
		return b.synthAncestor(desc.AnyAncestor[0])
	}
	return nil
}

// synthAncestor pushes and emits a synthesized StartElement for a single
// missing ancestor name, first resolving that ancestor's own ancestor
// requirements (e.g. synthesizing a bare "td" walks table -> tbody -> tr ->
// td, not just "tr" -> td, since tr itself requires a table-section
// ancestor).
func (b *Balancer) synthAncestor(anc string) error {
	ancDesc := elements.Lookup(anc)
	if ancDesc != nil {
		if err := b.ensureAncestors(ancDesc); err != nil {
			return err
		}
	}
	name := b.push(anc, token.New(anc), ancDesc, nil, false)
	b.listener.SynthesizedStartElement(name)
	synthAug := pos.Augmentations{Synthesized: true}
	return b.route(func() error { return b.sink.StartElement(name, nil, synthAug) })
}

// parentAllowed reports whether the current top-of-stack is an acceptable
// parent for desc. A required-ancestor element missing and not
// synthesizable (SynthesizeMissingParent == false) also fails here; see
// ensureAncestors for why RequiredAncestors and AnyAncestor are independent
// checks rather than alternatives.
func (b *Balancer) parentAllowed(desc *elements.Descriptor) bool {
	if !desc.SynthesizeMissingParent {
		for _, anc := range desc.RequiredAncestors {
			if !b.stack.hasAncestor(anc) {
				return false
			}
		}
		if len(desc.AnyAncestor) > 0 {
			ok := false
			for _, anc := range desc.AnyAncestor {
				if b.stack.hasAncestor(anc) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
	}
	if desc.Parents == nil {
		return true
	}
	return desc.Parents[b.stack.topKey()]
}

// push adds an element to the open-element stack and returns the QName
// downstream events should use: unchanged unless Config.Namespaces (or, for
// the synthetic html/head/body case, Config.InsertNamespaces) is on, in
// which case NamespaceURI is populated per namespace.go's resolution rules.
// attrs supplies any xmlns declarations on a real start tag (nil for
// synthesized elements, which carry none); synthetic marks the Tag
// Balancer's own html/head/body synthesis specifically, which the
// "insert-namespaces" option governs independently of Config.Namespaces.
func (b *Balancer) push(key string, name token.QName, desc *elements.Descriptor, attrs []token.Attr, synthetic bool) token.QName {
	name, ns, prefixes := b.withNamespace(key, name, attrs, synthetic)
	b.stack = append(b.stack, openElement{key: key, name: name, desc: desc, ns: ns, prefixes: prefixes})
	if isForeignRoot(key) {
		b.foreignDepth++
		if b.foreignDepth == 1 {
			b.scan.SetForeign(true)
		}
	}
	return name
}

// isForeignRoot reports whether key opens a foreign-content subtree (SVG or
// MathML), within which the scanner recognizes CDATA sections.
func isForeignRoot(key string) bool {
	return key == "svg" || key == "math"
}

// handleEndTag finds the nearest matching open element and pops everything
// down to and including it (synthesizing EndElement calls for intervening
// unmatched elements), or ignores the end tag entirely if no match is open.
func (b *Balancer) handleEndTag(t *token.EndTag, aug pos.Augmentations) error {
	key := strings.ToLower(t.Name.Local)
	if key == "" {
		key = strings.ToLower(t.Name.Raw)
	}
	idx := b.stack.indexOf(key)
	// A fragment-context entry is ambient structure, not a real open tag:
	// an end tag naming one is stray, same as a name that isn't open at
	// all.
	if idx < b.contextDepth || b.stack.boundaryBetween(idx, key) {
		b.listener.IgnoredEndElement(t.Name)
		return nil
	}
	for len(b.stack) > idx {
		real := len(b.stack) == idx+1
		var closingAug pos.Augmentations
		if real {
			closingAug = aug
		} else {
			closingAug = pos.Augmentations{Synthesized: true}
		}
		if err := b.closeTopWith(closingAug, !real); err != nil {
			return err
		}
	}
	return nil
}

// closeTopWith pops the current top-of-stack element and emits its
// EndElement, handling the table/foster-frame interaction.
func (b *Balancer) closeTopWith(aug pos.Augmentations, synth bool) error {
	top, ok := b.stack.top()
	if !ok {
		return nil
	}
	b.stack = b.stack[:len(b.stack)-1]
	if isForeignRoot(top.key) {
		b.foreignDepth--
		if b.foreignDepth == 0 {
			b.scan.SetForeign(false)
		}
	}
	if synth {
		b.listener.SynthesizedEndElement(top.name)
	}
	endCall := func() error { return b.sink.EndElement(top.name, aug) }
	if top.key == "table" {
		if f := b.foster.top(); f != nil {
			f.endCall = endCall
			return b.popFoster()
		}
	}
	return b.route(endCall)
}

// closeRemaining pops every still-open element at EOF, synthesizing their
// EndElement calls in innermost-first order, and flushes any outstanding
// foster frames.
func (b *Balancer) closeRemaining() error {
	for len(b.stack) > b.contextDepth {
		if err := b.closeTopWith(pos.Augmentations{Synthesized: true}, true); err != nil {
			return err
		}
	}
	return nil
}
