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

// Package neko is a lenient, standards-influenced HTML parser.
//
// It turns a byte or character stream of arbitrary real-world HTML --
// possibly malformed, missing tags, with overlapping or misnested elements
// -- into a well-formed stream of structural events: document start/end,
// element start/end, text, comments, CDATA, processing instructions, and
// DOCTYPE. It is built as a two-stage pipeline:
//
//	bytes -> Scanner (internal/scanner) -> Tag Balancer (internal/balancer) -> Handler
//
// The Scanner is a character-level, resumable tokenizer. The Tag Balancer is
// a tree-construction filter that turns the Scanner's raw tokens into a
// well-nested document by implicitly opening required ancestors, closing
// siblings with weaker nesting, and enforcing HTML's parent/child rules.
//
// Applications that only need raw tokens (no tree discipline) can disable
// balancing via Config and consume the Scanner's output directly.
package neko
