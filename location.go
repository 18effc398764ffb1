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

import "github.com/htmlunit-go/neko/internal/pos"

// Location is a position in the logical decoded character stream: a
// 1-based line and column, plus a 0-based running character offset. CR, LF,
// and CRLF all advance the line; CRLF counts as one line and one offset so
// a position computed while reading a CRLF-normalized document agrees with
// one computed while reading the same document with bare LF endings.
//
// Location is a type alias for internal/pos.Location so the scanner and
// balancer packages, which cannot import this root package, can produce
// values of the same type the public API exposes.
type Location = pos.Location

// Span is a half-open [Begin, End) range of Locations.
type Span = pos.Span

// Augmentations is metadata attached to an emitted event when the
// "augmentations" Config option is enabled: its source Span and whether the
// event was synthesized by the Tag Balancer rather than produced directly by
// a scanner token.
type Augmentations = pos.Augmentations
