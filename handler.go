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

// Handler is the downstream event interface: the sequence of calls the Tag
// Balancer (or, with balancing disabled, the Scanner directly) makes into
// application code, in document order.
//
//	StartDocument -> XMLDecl? -> DoctypeDecl? ->
//	  (StartElement | EndElement | Characters | Comment |
//	   ProcessingInstruction | StartCData | EndCData)* -> EndDocument
//
// Every method has a default no-op implementation via DefaultFilter's embedding, so
// an application only overrides the events it cares about.
type Handler interface {
	StartDocument() error
	EndDocument() error
	XMLDecl(version, encoding, standalone string, aug Augmentations) error
	DoctypeDecl(root, publicID, systemID string, aug Augmentations) error
	StartElement(name QName, attrs []Attr, aug Augmentations) error
	EndElement(name QName, aug Augmentations) error
	Characters(data string, aug Augmentations) error
	Comment(text string, aug Augmentations) error
	ProcessingInstruction(target, data string, aug Augmentations) error
	StartCData(aug Augmentations) error
	EndCData(aug Augmentations) error
}

// BalancingListener receives the Tag Balancer's structural notifications:
// elements it ignored outright and elements it synthesized to keep the
// tree well-formed. Each call happens before the corresponding real event,
// if any, flows to the Handler. Implementations embed
// DefaultBalancingListener to pick up no-op defaults.
type BalancingListener interface {
	IgnoredStartElement(name QName, attrs []Attr)
	IgnoredEndElement(name QName)
	SynthesizedStartElement(name QName)
	SynthesizedEndElement(name QName)
}

// InputSourceEvaluator is an optional interface a Handler in the filter
// chain may implement. At the start of each Parse call it receives a push
// function; calling it from inside an event callback inserts characters to
// be scanned before the rest of the underlying input resumes
// (document.write-style). Multiple pushes nest LIFO. Pushed characters
// carry no source location of their own.
type InputSourceEvaluator interface {
	SetInputSource(push func(chars []rune))
}

// DefaultFilter is a pass-through Handler: every method is a no-op. An
// application embeds it and overrides only the events it needs.
type DefaultFilter struct{}

func (DefaultFilter) StartDocument() error                                      { return nil }
func (DefaultFilter) EndDocument() error                                        { return nil }
func (DefaultFilter) XMLDecl(string, string, string, Augmentations) error       { return nil }
func (DefaultFilter) DoctypeDecl(string, string, string, Augmentations) error   { return nil }
func (DefaultFilter) StartElement(QName, []Attr, Augmentations) error           { return nil }
func (DefaultFilter) EndElement(QName, Augmentations) error                    { return nil }
func (DefaultFilter) Characters(string, Augmentations) error                   { return nil }
func (DefaultFilter) Comment(string, Augmentations) error                      { return nil }
func (DefaultFilter) ProcessingInstruction(string, string, Augmentations) error { return nil }
func (DefaultFilter) StartCData(Augmentations) error                           { return nil }
func (DefaultFilter) EndCData(Augmentations) error                             { return nil }

// DefaultBalancingListener is the no-op BalancingListener default.
type DefaultBalancingListener struct{}

func (DefaultBalancingListener) IgnoredStartElement(QName, []Attr) {}
func (DefaultBalancingListener) IgnoredEndElement(QName)           {}
func (DefaultBalancingListener) SynthesizedStartElement(QName)     {}
func (DefaultBalancingListener) SynthesizedEndElement(QName)       {}

// applyDocPolicy wraps next with the include-comments and create-cdata-nodes
// switches for downstream DOM-construction collaborators. Both default true
// (DefaultConfig), so the common case is a pass-through wrapper.
func applyDocPolicy(next Handler, cfg Config) Handler {
	if cfg.IncludeComments && cfg.CreateCDataNodes {
		return next
	}
	return &docPolicyHandler{Handler: next, cfg: cfg}
}

// docPolicyHandler drops Comment events when Config.IncludeComments is off,
// and collapses CData sections to plain Characters (no StartCData/EndCData
// pair) when Config.CreateCDataNodes is off -- the text itself still reaches
// the Handler either way, only the "this was a CDATA node" distinction is
// lost.
type docPolicyHandler struct {
	Handler
	cfg Config
}

func (h *docPolicyHandler) Comment(text string, aug Augmentations) error {
	if !h.cfg.IncludeComments {
		return nil
	}
	return h.Handler.Comment(text, aug)
}

func (h *docPolicyHandler) StartCData(aug Augmentations) error {
	if !h.cfg.CreateCDataNodes {
		return nil
	}
	return h.Handler.StartCData(aug)
}

func (h *docPolicyHandler) EndCData(aug Augmentations) error {
	if !h.cfg.CreateCDataNodes {
		return nil
	}
	return h.Handler.EndCData(aug)
}

// chain is an ordered pipeline of Handlers: each call is forwarded to every
// filter in order, stopping at the first error. NewParser's variadic
// filters argument supplies the ordered list that Parser compiles into a
// chain.
type chain []Handler

var _ Handler = chain(nil)

func (c chain) StartDocument() error {
	for _, h := range c {
		if err := h.StartDocument(); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) EndDocument() error {
	for _, h := range c {
		if err := h.EndDocument(); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) XMLDecl(version, encoding, standalone string, aug Augmentations) error {
	for _, h := range c {
		if err := h.XMLDecl(version, encoding, standalone, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) DoctypeDecl(root, publicID, systemID string, aug Augmentations) error {
	for _, h := range c {
		if err := h.DoctypeDecl(root, publicID, systemID, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) StartElement(name QName, attrs []Attr, aug Augmentations) error {
	for _, h := range c {
		if err := h.StartElement(name, attrs, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) EndElement(name QName, aug Augmentations) error {
	for _, h := range c {
		if err := h.EndElement(name, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) Characters(data string, aug Augmentations) error {
	for _, h := range c {
		if err := h.Characters(data, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) Comment(text string, aug Augmentations) error {
	for _, h := range c {
		if err := h.Comment(text, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) ProcessingInstruction(target, data string, aug Augmentations) error {
	for _, h := range c {
		if err := h.ProcessingInstruction(target, data, aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) StartCData(aug Augmentations) error {
	for _, h := range c {
		if err := h.StartCData(aug); err != nil {
			return err
		}
	}
	return nil
}

func (c chain) EndCData(aug Augmentations) error {
	for _, h := range c {
		if err := h.EndCData(aug); err != nil {
			return err
		}
	}
	return nil
}
