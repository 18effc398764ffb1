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

// Package buffer implements a forward cursor of logical characters over a
// byte source, with look-ahead, mark/rewind, BOM detection, and
// encoding-switch replay.
package buffer

import (
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/htmlunit-go/neko/internal/pos"
)

// EOF is the sentinel rune peek/read return once the input (and any pushed
// sources) are exhausted.
const EOF = rune(-1)

// prologWindowBytes is the leading-byte window within which switchEncoding
// is permitted to trigger a full replay.
const prologWindowBytes = 1024

// BOMKind is the result of BOM detection.
type BOMKind int

const (
	BOMNone BOMKind = iota
	BOMUTF8
	BOMUTF16BE
	BOMUTF16LE
)

// ErrEncodingSwitchTooLate is returned by SwitchEncoding when the prolog
// window has closed and the requested encoding is not ASCII-compatible with
// the current one.
var ErrEncodingSwitchTooLate = errors.New("encoding-switch-too-late")

// pushedSource is one LIFO entry pushed via PushSource.
type pushedSource struct {
	runes []rune
	pos   int
}

// Buffer is the Scanner's sole view of the input: a fully-decoded rune
// slice (simpler than a true sliding window, and sufficient at the sizes
// this parser targets) plus the position/encoding bookkeeping the Scanner
// and Tag Balancer rely on.
type Buffer struct {
	raw []byte // original bytes, kept for replay on encoding switch

	runes []rune
	idx   int // index of the next rune to read

	loc pos.Location

	bom BOMKind

	currentEncoding string

	// pendingCRLF tracks whether the previous rune read was a '\r' whose
	// matching '\n' (if any) should not advance the line counter again.
	pendingCRLF bool

	pushed []pushedSource
}

// New decodes r fully and returns a Buffer positioned at the start of the
// decoded stream. hint, if non-empty, is the caller-supplied encoding name,
// used when no BOM identifies the encoding outright.
func New(r io.Reader, hint string) (*Buffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b := &Buffer{raw: raw, loc: pos.Start()}
	label, bom, body := resolveInitial(raw, hint)
	b.bom = bom
	if err := b.decode(label, body); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveInitial resolves the starting encoding in priority order: detected
// BOM, else caller hint, else Windows-1252 default. A BOM is unambiguous
// about the encoding actually in use, so it outranks the hint -- a UTF-8
// BOM with an "ascii" hint parses as UTF-8 with no late-switch error. It
// returns the encoding name to use, the detected BOM kind, and the byte
// slice with any BOM bytes stripped.
func resolveInitial(raw []byte, hint string) (name string, bom BOMKind, body []byte) {
	k, rest := stripBOM(raw)
	switch k {
	case BOMUTF8:
		return "utf-8", k, rest
	case BOMUTF16BE:
		return "utf-16be", k, rest
	case BOMUTF16LE:
		return "utf-16le", k, rest
	}
	if hint != "" {
		return hint, BOMNone, raw
	}
	return "windows-1252", BOMNone, raw
}

// stripBOM inspects up to three bytes and returns the detected kind plus
// the remaining bytes with any BOM consumed.
func stripBOM(raw []byte) (BOMKind, []byte) {
	switch {
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		return BOMUTF8, raw[3:]
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return BOMUTF16BE, raw[2:]
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return BOMUTF16LE, raw[2:]
	default:
		return BOMNone, raw
	}
}

// DetectedBOM reports the BOM kind found at construction time.
func (b *Buffer) DetectedBOM() BOMKind { return b.bom }

// CurrentEncoding returns the canonical name of the encoding currently
// decoding the input.
func (b *Buffer) CurrentEncoding() string { return b.currentEncoding }

func (b *Buffer) decode(name string, body []byte) error {
	enc, err := resolveEncoding(name)
	if err != nil {
		return err
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		// Decoder errors surface as U+FFFD substitutions, not hard
		// errors; x/text's decoders already do this internally for
		// recognized encodings, so a non-nil err here means the
		// transform itself could not run (e.g. an io failure), which
		// does propagate.
		return err
	}
	b.runes = []rune(string(decoded))
	b.idx = 0
	b.currentEncoding = enc.name
	return nil
}

// namedEncoding pairs a canonical name with its x/text codec, so the
// "replacement" label -- unknown/unsupported aliases map to a codec that
// replaces every byte with U+FFFD -- can share the same resolution path
// as every recognized label.
type namedEncoding struct {
	name string
	enc  encoding.Encoding
}

func (n namedEncoding) NewDecoder() *encodingDecoder {
	return &encodingDecoder{n.enc.NewDecoder()}
}

type encodingDecoder struct {
	*encoding.Decoder
}

func resolveEncoding(label string) (namedEncoding, error) {
	switch label {
	case "utf-16be":
		return namedEncoding{"utf-16be", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}, nil
	case "utf-16le":
		return namedEncoding{"utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}, nil
	case "replacement":
		return namedEncoding{"replacement", encoding.Replacement}, nil
	}
	e, err := htmlindex.Get(label)
	if err != nil || e == nil {
		// Unknown alias: fall back to the replacement codec rather than
		// failing the parse.
		return namedEncoding{"replacement", encoding.Replacement}, nil
	}
	canonical, err := htmlindex.Name(e)
	if err != nil {
		canonical = label
	}
	return namedEncoding{canonical, e}, nil
}

// Peek returns the character k positions ahead without advancing, or EOF if
// the input (including any pushed sources) ends before then.
func (b *Buffer) Peek(k int) rune {
	// Pushed sources are consumed before the underlying stream, LIFO.
	for i := len(b.pushed) - 1; i >= 0; i-- {
		p := &b.pushed[i]
		remaining := len(p.runes) - p.pos
		if k < remaining {
			return p.runes[p.pos+k]
		}
		k -= remaining
	}
	if b.idx+k >= len(b.runes) {
		return EOF
	}
	return b.runes[b.idx+k]
}

// Read advances one character, updating the location counters, and returns
// it (or EOF).
func (b *Buffer) Read() rune {
	for len(b.pushed) > 0 {
		top := &b.pushed[len(b.pushed)-1]
		if top.pos < len(top.runes) {
			r := top.runes[top.pos]
			top.pos++
			return r
		}
		b.pushed = b.pushed[:len(b.pushed)-1]
	}
	if b.idx >= len(b.runes) {
		return EOF
	}
	r := b.runes[b.idx]
	b.idx++
	b.advanceLocation(r)
	return r
}

// advanceLocation updates loc for rune r, collapsing CRLF into a single
// line/offset advance.
func (b *Buffer) advanceLocation(r rune) {
	if r == '\r' {
		// Look ahead: if the next rune (already consumed or not) is '\n',
		// the pair counts as one position. Since Read only sees one rune
		// at a time, we fold '\r' itself into a line advance and let a
		// following '\n' be absorbed as a zero-width continuation.
		b.loc = b.loc.Advance('\n')
		b.pendingCRLF = true
		return
	}
	if r == '\n' && b.pendingCRLF {
		b.pendingCRLF = false
		return
	}
	b.pendingCRLF = false
	b.loc = b.loc.Advance(r)
}

// Location returns the position of the next character to be read.
func (b *Buffer) Location() pos.Location { return b.loc }

// Mark is a cheap bookmark produced by Mark and consumed by ResetTo.
type Mark struct {
	idx         int
	loc         pos.Location
	pendingCRLF bool
	pushedState []pushedSource
}

// Mark returns a bookmark of the current position, for speculative scans
// (attribute names, entity references) that may need to rewind.
func (b *Buffer) Mark() Mark {
	snapshot := make([]pushedSource, len(b.pushed))
	copy(snapshot, b.pushed)
	return Mark{idx: b.idx, loc: b.loc, pendingCRLF: b.pendingCRLF, pushedState: snapshot}
}

// ResetTo rewinds the buffer to a previously taken Mark.
func (b *Buffer) ResetTo(m Mark) {
	b.idx = m.idx
	b.loc = m.loc
	b.pendingCRLF = m.pendingCRLF
	b.pushed = m.pushedState
}

// SwitchEncoding switches the decoder mid-stream: permitted only while
// still inside the leading prolog window, replaying the original bytes
// through a new decoder. The replay preserves the cursor: everything up to
// the declaration that triggered the switch is ASCII in any encoding this
// can fire for, so the re-decoded stream is advanced past the same number
// of characters and scanning resumes where it was -- already-emitted tokens
// are not produced a second time. If the window has closed and the new
// label is ASCII-compatible with the current encoding, no replay happens
// and the call succeeds as a no-op; otherwise it fails with
// ErrEncodingSwitchTooLate.
func (b *Buffer) SwitchEncoding(label string) error {
	consumedBytes := b.bytesConsumedApprox()
	if consumedBytes > prologWindowBytes {
		if asciiCompatible(label) && asciiCompatible(b.currentEncoding) {
			return nil
		}
		return ErrEncodingSwitchTooLate
	}
	consumed := b.idx
	loc := b.loc
	pending := b.pendingCRLF
	_, body := stripBOM(b.raw)
	if err := b.decode(label, body); err != nil {
		return err
	}
	if consumed > len(b.runes) {
		consumed = len(b.runes)
	}
	b.idx = consumed
	b.loc = loc
	b.pendingCRLF = pending
	return nil
}

// bytesConsumedApprox estimates how many original bytes correspond to the
// runes read so far, for the prolog-window check. ASCII/Latin1-family
// encodings are 1 byte/rune, which covers every encoding this parser's
// prolog scanning actually needs to gate (UTF-16 declarations appear after
// BOM detection already picked the right decoder).
func (b *Buffer) bytesConsumedApprox() int { return b.idx }

func asciiCompatible(name string) bool {
	switch name {
	case "", "windows-1252", "utf-8", "iso-8859-1", "us-ascii":
		return true
	default:
		return false
	}
}

// PushSource inserts a character stream to be consumed before returning to
// the underlying source. Multiple pushes nest LIFO.
func (b *Buffer) PushSource(chars []rune) {
	b.pushed = append(b.pushed, pushedSource{runes: chars})
}

