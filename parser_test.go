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

package neko_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htmlunit-go/neko"
)

type trace struct {
	neko.DefaultFilter
	events []string
}

func (t *trace) StartElement(name neko.QName, _ []neko.Attr, _ neko.Augmentations) error {
	t.events = append(t.events, "start:"+name.Raw)
	return nil
}

func (t *trace) EndElement(name neko.QName, _ neko.Augmentations) error {
	t.events = append(t.events, "end:"+name.Raw)
	return nil
}

func (t *trace) Characters(data string, _ neko.Augmentations) error {
	t.events = append(t.events, "text:"+data)
	return nil
}

func (t *trace) Comment(text string, _ neko.Augmentations) error {
	t.events = append(t.events, "comment:"+text)
	return nil
}

func (t *trace) StartCData(neko.Augmentations) error {
	t.events = append(t.events, "cdata-start")
	return nil
}

func (t *trace) EndCData(neko.Augmentations) error {
	t.events = append(t.events, "cdata-end")
	return nil
}

func TestParseBalancedByDefault(t *testing.T) {
	tr := &trace{}
	p := neko.NewParser(neko.DefaultConfig(), tr)
	require.NoError(t, p.Parse(strings.NewReader("<div><p>hi<p>there</div>"), ""))

	assert.Equal(t, []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:div", "start:p", "text:hi", "end:p",
		"start:p", "text:there", "end:p", "end:div",
		"end:body", "end:html",
	}, tr.events)
}

func TestParseUnbalancedPassesRawTags(t *testing.T) {
	tr := &trace{}
	cfg := neko.DefaultConfig()
	cfg.BalanceTags = false
	p := neko.NewParser(cfg, tr)
	require.NoError(t, p.Parse(strings.NewReader("<div><p>hi<p>there</div>"), ""))

	// Unbalanced mode forwards every tag exactly as scanned: the second
	// <p> is NOT synthesized-closed, and there is no trailing </p> for
	// either paragraph because the source never wrote one.
	assert.Equal(t, []string{
		"start:div", "start:p", "text:hi",
		"start:p", "text:there", "end:div",
	}, tr.events)
}

// blockingFilter pauses inside a Characters callback so the test can
// observe the parse-in-progress lock from another goroutine, then resumes
// once signaled.
type blockingFilter struct {
	neko.DefaultFilter
	entered chan struct{}
	resume  chan struct{}
}

func (f *blockingFilter) Characters(string, neko.Augmentations) error {
	close(f.entered)
	<-f.resume
	return nil
}

func TestConfigLockedDuringParse(t *testing.T) {
	cfg := neko.DefaultConfig()
	blocking := &blockingFilter{entered: make(chan struct{}), resume: make(chan struct{})}
	p := neko.NewParser(cfg, blocking)

	done := make(chan error, 1)
	go func() { done <- p.Parse(strings.NewReader("<p>hi</p>"), "") }()

	<-blocking.entered
	err := p.Set("report-errors", true)
	require.Error(t, err)
	var nerr *neko.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, neko.NotSupported, nerr.Kind)

	close(blocking.resume)
	require.NoError(t, <-done)

	// The lock releases once Parse returns.
	assert.NoError(t, p.Set("report-errors", true))
}

func TestSetRejectsUnknownProperty(t *testing.T) {
	cfg := neko.DefaultConfig()
	p := neko.NewParser(cfg, &trace{})
	err := p.Set("not-a-real-property", true)
	require.Error(t, err)
	var nerr *neko.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, neko.NotRecognized, nerr.Kind)
}

func TestIncludeCommentsOffDropsComments(t *testing.T) {
	tr := &trace{}
	cfg := neko.DefaultConfig()
	cfg.BalanceTags = false
	cfg.IncludeComments = false
	p := neko.NewParser(cfg, tr)
	require.NoError(t, p.Parse(strings.NewReader("<!--hi-->text"), ""))

	assert.Equal(t, []string{"text:text"}, tr.events)
}

func TestIncludeCommentsOnKeepsComments(t *testing.T) {
	tr := &trace{}
	cfg := neko.DefaultConfig()
	cfg.BalanceTags = false
	p := neko.NewParser(cfg, tr)
	require.NoError(t, p.Parse(strings.NewReader("<!--hi-->text"), ""))

	assert.Equal(t, []string{"comment:hi", "text:text"}, tr.events)
}

func TestCreateCDataNodesOffCollapsesToText(t *testing.T) {
	tr := &trace{}
	cfg := neko.DefaultConfig()
	cfg.CreateCDataNodes = false
	p := neko.NewParser(cfg, tr)
	require.NoError(t, p.Parse(strings.NewReader("<svg><![CDATA[abc]]></svg>"), ""))

	assert.NotContains(t, tr.events, "cdata-start")
	assert.NotContains(t, tr.events, "cdata-end")
	assert.Contains(t, tr.events, "text:abc")
}

func TestSetRejectsWrongValueType(t *testing.T) {
	cfg := neko.DefaultConfig()
	p := neko.NewParser(cfg, &trace{})
	err := p.Set("report-errors", "yes")
	require.Error(t, err)
	var nerr *neko.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, neko.IncompatibleValue, nerr.Kind)
}

func TestParseTwiceYieldsIdenticalEvents(t *testing.T) {
	const input = `<ul><li>a<li>b</ul>`
	first := &trace{}
	p := neko.NewParser(neko.DefaultConfig(), first)
	require.NoError(t, p.Parse(strings.NewReader(input), ""))

	second := &trace{}
	p2 := neko.NewParser(neko.DefaultConfig(), second)
	require.NoError(t, p2.Parse(strings.NewReader(input), ""))

	assert.Equal(t, first.events, second.events)
}

// writingFilter injects markup mid-parse through the evaluate-input-source
// hook the first time it sees a div open.
type writingFilter struct {
	trace
	push  func([]rune)
	wrote bool
}

func (f *writingFilter) SetInputSource(push func(chars []rune)) { f.push = push }

func (f *writingFilter) StartElement(name neko.QName, attrs []neko.Attr, aug neko.Augmentations) error {
	if name.Raw == "div" && !f.wrote {
		f.wrote = true
		f.push([]rune(`<i>x</i>`))
	}
	return f.trace.StartElement(name, attrs, aug)
}

func TestEvaluateInputSourceInjectsMarkup(t *testing.T) {
	f := &writingFilter{}
	p := neko.NewParser(neko.DefaultConfig(), f)
	require.NoError(t, p.Parse(strings.NewReader(`<div></div>`), ""))

	assert.Equal(t, []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:div", "start:i", "text:x", "end:i", "end:div",
		"end:body", "end:html",
	}, f.events)
}
