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

// NameCase is the case-folding policy for element/attribute names: whether
// to preserve the source casing or force it to upper/lower case.
type NameCase int

const (
	// MatchSource preserves the name as it appeared on the wire, except
	// that element names the element table recognizes are lower-cased.
	MatchSource NameCase = iota
	Upper
	Lower
)

// Config holds every recognized parser property: augmentation/namespace/
// tag-balancing switches, fragment-parsing context, name-case policy, and
// the DOM-construction-collaborator toggles (comments, CDATA nodes). Fields
// are exported for direct construction; Set/Get exist for callers that
// address options by name (e.g. a SAX-style configuration bridge) and need
// the NotRecognized/NotSupported/IncompatibleValue error taxonomy instead of
// a compile error.
type Config struct {
	Augmentations        bool
	Namespaces           bool
	InsertNamespaces     bool
	BalanceTags          bool
	Fragment             bool
	FragmentContext      []string
	IgnoreOutsideContent bool
	ElemNameCase         NameCase
	AttrNameCase         NameCase
	ReportErrors         bool
	IncludeComments      bool
	CreateCDataNodes     bool
}

// DefaultConfig returns the default Config: tag balancing on, comments and
// CDATA nodes included, everything else off.
func DefaultConfig() Config {
	return Config{
		BalanceTags:      true,
		IncludeComments:  true,
		CreateCDataNodes: true,
	}
}

// propertyNames are the recognized Config.Set/Get keys.
const (
	propAugmentations    = "augmentations"
	propNamespaces       = "namespaces"
	propInsertNamespaces = "insert-namespaces"
	propBalanceTags      = "balance-tags"
	propFragment         = "balance-tags/document-fragment"
	propFragmentContext  = "balance-tags/fragment-context-stack"
	propIgnoreOutside    = "balance-tags/ignore-outside-content"
	propElemNameCase     = "names/elems"
	propAttrNameCase     = "names/attrs"
	propReportErrors     = "report-errors"
	propIncludeComments  = "include-comments"
	propCreateCDataNodes = "create-cdata-nodes"
)

// lockable guards against configuration changes once a parse is underway.
// The zero value (false) means unlocked; Parser holds this and flips it for
// the duration of each Parse call, rejecting property changes mid-parse.
type lockable struct {
	locked bool
}

// Set assigns a named property, returning a *Error with Kind NotRecognized,
// NotSupported, or IncompatibleValue on failure. It never panics: every
// configuration failure mode is a typed, returned value, not an exception.
func (c *Config) Set(lock *lockable, name string, value any) error {
	if lock != nil && lock.locked {
		return newError(NotSupported, name, nil)
	}
	switch name {
	case propAugmentations:
		return setBool(&c.Augmentations, name, value)
	case propNamespaces:
		return setBool(&c.Namespaces, name, value)
	case propInsertNamespaces:
		return setBool(&c.InsertNamespaces, name, value)
	case propBalanceTags:
		return setBool(&c.BalanceTags, name, value)
	case propFragment:
		return setBool(&c.Fragment, name, value)
	case propIgnoreOutside:
		return setBool(&c.IgnoreOutsideContent, name, value)
	case propReportErrors:
		return setBool(&c.ReportErrors, name, value)
	case propIncludeComments:
		return setBool(&c.IncludeComments, name, value)
	case propCreateCDataNodes:
		return setBool(&c.CreateCDataNodes, name, value)
	case propFragmentContext:
		seq, ok := value.([]string)
		if !ok {
			return newError(IncompatibleValue, name, nil)
		}
		c.FragmentContext = seq
		return nil
	case propElemNameCase:
		nc, err := toNameCase(name, value)
		if err != nil {
			return err
		}
		c.ElemNameCase = nc
		return nil
	case propAttrNameCase:
		nc, err := toNameCase(name, value)
		if err != nil {
			return err
		}
		c.AttrNameCase = nc
		return nil
	default:
		return newError(NotRecognized, name, nil)
	}
}

// Get reads a named property back. Kind is always NotRecognized on failure;
// Get never participates in the parse-in-progress lock.
func (c *Config) Get(name string) (any, error) {
	switch name {
	case propAugmentations:
		return c.Augmentations, nil
	case propNamespaces:
		return c.Namespaces, nil
	case propInsertNamespaces:
		return c.InsertNamespaces, nil
	case propBalanceTags:
		return c.BalanceTags, nil
	case propFragment:
		return c.Fragment, nil
	case propFragmentContext:
		return c.FragmentContext, nil
	case propIgnoreOutside:
		return c.IgnoreOutsideContent, nil
	case propElemNameCase:
		return c.ElemNameCase, nil
	case propAttrNameCase:
		return c.AttrNameCase, nil
	case propReportErrors:
		return c.ReportErrors, nil
	case propIncludeComments:
		return c.IncludeComments, nil
	case propCreateCDataNodes:
		return c.CreateCDataNodes, nil
	default:
		return nil, newError(NotRecognized, name, nil)
	}
}

func setBool(dst *bool, name string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return newError(IncompatibleValue, name, nil)
	}
	*dst = b
	return nil
}

func toNameCase(name string, value any) (NameCase, error) {
	s, ok := value.(string)
	if !ok {
		return 0, newError(IncompatibleValue, name, nil)
	}
	switch s {
	case "match-source":
		return MatchSource, nil
	case "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	default:
		return 0, newError(IncompatibleValue, name, nil)
	}
}
