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

import "github.com/htmlunit-go/neko/internal/token"

// QName is a (possibly namespaced) qualified name as it appeared on the
// wire, plus its resolved parts. The scanner fills Raw, Prefix, and Local by
// splitting on the first ':'; NamespaceURI is only populated when the
// "namespaces" Config option is enabled.
type QName = token.QName

// Attr is a single attribute on a start tag. Value has character references
// resolved; NonNormalizedValue preserves the literal source text. Specified
// is always true for the core scanner (it never manufactures default
// attribute values); it exists for DOM collaborators that do.
type Attr = token.Attr
