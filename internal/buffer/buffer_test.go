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

package buffer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPeekBasic(t *testing.T) {
	b, err := New(strings.NewReader("abc"), "utf-8")
	require.NoError(t, err)

	assert.Equal(t, 'a', b.Peek(0))
	assert.Equal(t, 'b', b.Peek(1))
	assert.Equal(t, 'c', b.Peek(2))
	assert.Equal(t, EOF, b.Peek(3))

	assert.Equal(t, 'a', b.Read())
	assert.Equal(t, 'b', b.Read())
	assert.Equal(t, 'c', b.Read())
	assert.Equal(t, EOF, b.Read())
}

func TestMarkResetTo(t *testing.T) {
	b, err := New(strings.NewReader("hello"), "utf-8")
	require.NoError(t, err)

	b.Read()
	b.Read()
	m := b.Mark()
	b.Read()
	b.Read()
	b.ResetTo(m)
	assert.Equal(t, 'l', b.Read())
}

func TestCRLFCountsAsOnePosition(t *testing.T) {
	b, err := New(strings.NewReader("a\r\nb"), "utf-8")
	require.NoError(t, err)

	b.Read() // 'a'
	loc := b.Location()
	assert.Equal(t, 1, loc.Line)

	b.Read() // '\r'
	b.Read() // '\n'
	loc = b.Location()
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 1, loc.Column)
}

func TestDetectBOMUTF8(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi")...)
	b, err := New(bytes.NewReader(raw), "")
	require.NoError(t, err)
	assert.Equal(t, BOMUTF8, b.DetectedBOM())
	assert.Equal(t, 'h', b.Read())
}

func TestDefaultEncodingIsWindows1252(t *testing.T) {
	b, err := New(strings.NewReader("plain"), "")
	require.NoError(t, err)
	assert.Equal(t, BOMNone, b.DetectedBOM())
	assert.Equal(t, "windows-1252", b.CurrentEncoding())
}

func TestPushSourceLIFO(t *testing.T) {
	b, err := New(strings.NewReader("Z"), "utf-8")
	require.NoError(t, err)

	b.PushSource([]rune("A"))
	b.PushSource([]rune("B"))

	assert.Equal(t, 'B', b.Read())
	assert.Equal(t, 'A', b.Read())
	assert.Equal(t, 'Z', b.Read())
}

func TestSwitchEncodingWithinPrologWindow(t *testing.T) {
	b, err := New(strings.NewReader("abc"), "us-ascii")
	require.NoError(t, err)
	err = b.SwitchEncoding("utf-8")
	assert.NoError(t, err)
	assert.Equal(t, 'a', b.Read())
}

func TestBOMOverridesEncodingHint(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<html>`)...)
	b, err := New(bytes.NewReader(raw), "us-ascii")
	require.NoError(t, err)
	assert.Equal(t, BOMUTF8, b.DetectedBOM())
	assert.Equal(t, "utf-8", b.CurrentEncoding())
}

func TestSwitchEncodingPreservesCursor(t *testing.T) {
	b, err := New(strings.NewReader("abcdef"), "windows-1252")
	require.NoError(t, err)
	b.Read()
	b.Read()
	require.NoError(t, b.SwitchEncoding("utf-8"))
	assert.Equal(t, 'c', b.Read())
	assert.Equal(t, "utf-8", b.CurrentEncoding())
}
