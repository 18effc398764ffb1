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

// Package balancer implements a stack-based tree constructor that consumes
// the Scanner's raw token stream and emits well-formed StartElement/
// EndElement pairs, synthesizing or ignoring tags as the element table
// demands.
package balancer

import (
	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/pos"
	"github.com/htmlunit-go/neko/internal/token"
)

// Sink is the balanced-event interface the Tag Balancer drives. Its method
// set mirrors the root package's Handler interface exactly (QName/Attr/
// Augmentations are the same types via Go alias, so a neko.Handler value
// satisfies Sink with no adapter needed).
type Sink interface {
	StartDocument() error
	EndDocument() error
	XMLDecl(version, encoding, standalone string, aug pos.Augmentations) error
	DoctypeDecl(root, publicID, systemID string, aug pos.Augmentations) error
	StartElement(name token.QName, attrs []token.Attr, aug pos.Augmentations) error
	EndElement(name token.QName, aug pos.Augmentations) error
	Characters(data string, aug pos.Augmentations) error
	Comment(text string, aug pos.Augmentations) error
	ProcessingInstruction(target, data string, aug pos.Augmentations) error
	StartCData(aug pos.Augmentations) error
	EndCData(aug pos.Augmentations) error
}

// Listener mirrors the root package's BalancingListener.
type Listener interface {
	IgnoredStartElement(name token.QName, attrs []token.Attr)
	IgnoredEndElement(name token.QName)
	SynthesizedStartElement(name token.QName)
	SynthesizedEndElement(name token.QName)
}

// NopListener is the no-op Listener default, used when the caller supplies
// none.
type NopListener struct{}

func (NopListener) IgnoredStartElement(token.QName, []token.Attr) {}
func (NopListener) IgnoredEndElement(token.QName)                 {}
func (NopListener) SynthesizedStartElement(token.QName)           {}
func (NopListener) SynthesizedEndElement(token.QName)             {}

// TokenSource is what the Tag Balancer reads from: the Scanner, or anything
// shaped like it.
type TokenSource interface {
	Next() token.Token
}

// SpecialContentSetter lets the Tag Balancer tell the Scanner to switch
// content mode immediately after a special-content start tag is accepted,
// and to toggle foreign (SVG/MathML) content for CDATA recognition.
type SpecialContentSetter interface {
	EnterSpecial(elementName string, mode elements.ContentMode)
	SetForeign(v bool)
}
