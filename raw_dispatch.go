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

// dispatchRaw translates one raw Scanner token directly into a Handler
// call, for the Config.BalanceTags == false path: no ancestor synthesis,
// no closes-on-open handling, no foster parenting -- every start/end tag
// is forwarded exactly as scanned.
func dispatchRaw(tok Token, handler Handler, augmentations bool) (done bool, err error) {
	aug := Augmentations{}
	if augmentations {
		aug = Augmentations{Span: tok.Span(), Synthesized: tok.Synthesized()}
	}
	switch t := tok.(type) {
	case *token.EOF:
		return true, nil
	case *token.StartTag:
		return false, handler.StartElement(t.Name, t.Attrs, aug)
	case *token.EndTag:
		return false, handler.EndElement(t.Name, aug)
	case *token.Text:
		return false, handler.Characters(t.Data, aug)
	case *token.Comment:
		return false, handler.Comment(t.Text, aug)
	case *token.CData:
		if err := handler.StartCData(aug); err != nil {
			return false, err
		}
		if err := handler.Characters(t.Text, aug); err != nil {
			return false, err
		}
		return false, handler.EndCData(aug)
	case *token.PI:
		return false, handler.ProcessingInstruction(t.Target, t.Data, aug)
	case *token.Doctype:
		return false, handler.DoctypeDecl(t.Root, t.PublicID, t.SystemID, aug)
	case *token.XMLDecl:
		return false, handler.XMLDecl(t.Version, t.Encoding, t.Standalone, aug)
	default:
		return false, nil
	}
}
