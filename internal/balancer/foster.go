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

// fosterFrame buffers one open "table" element's own StartElement/
// EndElement calls plus everything nested inside it, so that character data
// misplaced directly in table/tbody/thead/tfoot/tr scope can be relocated
// ahead of the table as its preceding sibling once the table's extent is
// known.
type fosterFrame struct {
	startCall func() error
	endCall   func() error

	fosterEvents []func() error // flushed immediately before startCall
	insideEvents []func() error // flushed immediately after startCall
}

func (f *fosterFrame) recordInside(call func() error) {
	f.insideEvents = append(f.insideEvents, call)
}

func (f *fosterFrame) recordFoster(call func() error) {
	f.fosterEvents = append(f.fosterEvents, call)
}

type fosterStack []*fosterFrame

func (s fosterStack) top() *fosterFrame {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

func (s *fosterStack) push(f *fosterFrame) { *s = append(*s, f) }

func (s *fosterStack) pop() *fosterFrame {
	f := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return f
}

// popFoster closes out the innermost foster frame, replaying its buffered
// calls -- foster text first, then the table's own start, then its
// contents, then its end -- into whatever target is active once the frame
// is gone (the real Sink, or a still-open outer table's own frame).
func (b *Balancer) popFoster() error {
	f := b.foster.pop()
	for _, call := range f.fosterEvents {
		if err := b.route(call); err != nil {
			return err
		}
	}
	if err := b.route(f.startCall); err != nil {
		return err
	}
	for _, call := range f.insideEvents {
		if err := b.route(call); err != nil {
			return err
		}
	}
	return b.route(f.endCall)
}
