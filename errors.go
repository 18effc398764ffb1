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

import "fmt"

// ErrKind classifies an Error. Recoverable tokenization/structural warnings
// never reach this type (they go out through the warning/listener channels
// instead); only configuration and resource errors do.
type ErrKind int

const (
	// NotRecognized is returned by Config.Set/Get for an unknown
	// feature/property name.
	NotRecognized ErrKind = iota
	// NotSupported is returned when a recognized property cannot be
	// changed mid-parse.
	NotSupported
	// IncompatibleValue is returned when a property's value has the wrong
	// shape (e.g. a non-bool for a boolean feature).
	IncompatibleValue
	// EncodingSwitchTooLate names the case of a <meta charset>/<?xml
	// encoding?> declaration observed after the input buffer's prolog
	// replay window has closed, with a new encoding that is not
	// ASCII-compatible with the current one. Parse does not return this
	// kind: the rejected switch is reported as a WarnEncodingSwitchLate
	// warning (when ReportErrors is on) and scanning continues in the
	// current encoding.
	EncodingSwitchTooLate
	// IO wraps an unrecoverable error from the underlying byte source.
	IO
)

func (k ErrKind) String() string {
	switch k {
	case NotRecognized:
		return "not-recognized"
	case NotSupported:
		return "not-supported"
	case IncompatibleValue:
		return "incompatible-value"
	case EncodingSwitchTooLate:
		return "encoding-switch-too-late"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the concrete error type for every configuration and resource
// failure the core surfaces: a small tagged value carrying the offending
// property name and, optionally, a wrapped cause; never panicked.
type Error struct {
	Kind    ErrKind
	Name    string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Name, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}

func (e *Error) Unwrap() error { return e.Wrapped }

func newError(kind ErrKind, name string, wrapped error) *Error {
	return &Error{Kind: kind, Name: name, Wrapped: wrapped}
}

// WarningKind enumerates the recoverable tokenization warnings reported
// through Config.ReportErrors. These never abort the token stream.
type WarningKind string

const (
	WarnMalformedCharRef     WarningKind = "malformed-character-reference"
	WarnUnterminatedComment  WarningKind = "unterminated-comment"
	WarnUnterminatedCData    WarningKind = "unterminated-cdata"
	WarnInvalidPITarget      WarningKind = "invalid-pi-target"
	WarnInvalidTagNameStart  WarningKind = "invalid-tag-name-start"
	WarnIllegalAttributeName WarningKind = "illegal-attribute-name"
	WarnEncodingSwitchLate   WarningKind = "encoding-switch-too-late"
)

// Warning is a single recoverable tokenization warning, delivered through
// the error-reporting channel (Config.ReportErrors) rather than returned.
type Warning struct {
	Kind WarningKind
	Span Span
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %d:%d: %s", w.Kind, w.Span.Begin.Line, w.Span.Begin.Column, w.Text)
}
