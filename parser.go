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

import (
	"io"
	"strings"

	"github.com/htmlunit-go/neko/internal/balancer"
	"github.com/htmlunit-go/neko/internal/buffer"
	"github.com/htmlunit-go/neko/internal/elements"
	"github.com/htmlunit-go/neko/internal/scanner"
	"github.com/htmlunit-go/neko/internal/token"
)

// Parser ties the Input Buffer, Scanner, and (optionally) Tag Balancer into
// a single entry point: bytes in, Handler calls out. A Parser is built once
// via NewParser and reused across calls to Parse, one reader at a time.
type Parser struct {
	cfg      Config
	filters  []Handler
	listener BalancingListener
	lock     lockable
	warnings []Warning
}

// NewParser returns a Parser with the given configuration and an ordered
// Handler chain. cfg is copied; use Get on the returned Parser to
// inspect it, and Set before the first Parse call
// to change it (Set refuses changes once a parse is in progress).
func NewParser(cfg Config, filters ...Handler) *Parser {
	return &Parser{cfg: cfg, filters: filters}
}

// SetListener installs a BalancingListener to observe the Tag Balancer's
// ignored/synthesized element notifications. Passing nil clears it.
func (p *Parser) SetListener(l BalancingListener) { p.listener = l }

// Set forwards to the Parser's Config, honoring the parse-in-progress lock.
// The "filters" property lives on the Parser rather than the Config: it
// replaces the ordered Handler chain supplied to NewParser.
func (p *Parser) Set(name string, value any) error {
	if name == "filters" {
		if p.lock.locked {
			return newError(NotSupported, name, nil)
		}
		hs, ok := value.([]Handler)
		if !ok {
			return newError(IncompatibleValue, name, nil)
		}
		p.filters = hs
		return nil
	}
	return p.cfg.Set(&p.lock, name, value)
}

// Get forwards to the Parser's Config.
func (p *Parser) Get(name string) (any, error) {
	if name == "filters" {
		return p.filters, nil
	}
	return p.cfg.Get(name)
}

// Warnings returns the recoverable tokenization warnings collected during
// the most recent Parse call, when Config.ReportErrors is enabled. It is
// replaced, not accumulated, by each call to Parse.
func (p *Parser) Warnings() []Warning { return p.warnings }

// Parse reads r (optionally with an encoding hint, e.g. a Content-Type
// charset parameter) and drives handler with the resulting event stream:
// bytes -> Scanner -> Tag Balancer -> Handler. With Config.BalanceTags
// false, the Scanner's raw tokens are translated into Handler calls
// directly, without synthesis or ancestor enforcement.
func (p *Parser) Parse(r io.Reader, encodingHint string) error {
	p.lock.locked = true
	defer func() { p.lock.locked = false }()

	buf, err := buffer.New(r, encodingHint)
	if err != nil {
		return newError(IO, encodingHint, err)
	}

	handler := applyDocPolicy(Handler(chain(p.filters)), p.cfg)

	p.warnings = nil
	sc := scanner.New(buf, scanner.Config{
		Augmentations: p.cfg.Augmentations,
		ElemNameCase:  scanner.NameCase(p.cfg.ElemNameCase),
		AttrNameCase:  scanner.NameCase(p.cfg.AttrNameCase),
		ReportErrors:  p.cfg.ReportErrors,
	}, func(w scanner.Warning) {
		p.warnings = append(p.warnings, Warning{Kind: WarningKind(w.Kind), Span: w.Span, Text: w.Text})
	})

	for _, f := range p.filters {
		if ev, ok := f.(InputSourceEvaluator); ok {
			ev.SetInputSource(sc.PushSource)
		}
	}

	if p.cfg.BalanceTags {
		// handler and p.listener satisfy balancer.Sink/balancer.Listener
		// directly: QName/Attr/Augmentations are Go aliases of the exact
		// types those interfaces use, so no adapter is needed.
		bal := balancer.New(sc, sc, handler, p.listener, balancer.Config{
			Augmentations:        p.cfg.Augmentations,
			Fragment:             p.cfg.Fragment,
			FragmentContext:      p.cfg.FragmentContext,
			Namespaces:           p.cfg.Namespaces,
			InsertNamespaces:     p.cfg.InsertNamespaces,
			IgnoreOutsideContent: p.cfg.IgnoreOutsideContent,
		})
		return bal.Run()
	}
	return p.runUnbalanced(sc, handler)
}

// runUnbalanced drives handler directly from the raw Scanner token stream,
// with no ancestor synthesis, closes-on-open handling, or foster parenting:
// the Config.BalanceTags option, off.
func (p *Parser) runUnbalanced(sc *scanner.Scanner, handler Handler) error {
	if err := handler.StartDocument(); err != nil {
		return err
	}
	for {
		tok := sc.Next()
		if st, ok := tok.(*token.StartTag); ok {
			// Special-content recognition (script/style/textarea/...) is
			// lexical, not structural: the Scanner still needs it even
			// with tree construction disabled, or its raw text would be
			// mistakenly tokenized as markup.
			if desc := elements.Lookup(strings.ToLower(st.Name.Local)); desc != nil && desc.Content != elements.ContentNone {
				sc.EnterSpecial(strings.ToLower(st.Name.Local), desc.Content)
			}
		}
		done, err := dispatchRaw(tok, handler, p.cfg.Augmentations)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	return handler.EndDocument()
}
