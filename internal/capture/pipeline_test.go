package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennent-g/websnap/internal/dom"
	"github.com/bennent-g/websnap/internal/history"
	"github.com/bennent-g/websnap/internal/route"
	"github.com/bennent-g/websnap/internal/strategy"
)

type captured struct {
	route   string
	element string
	value   string
	kind    history.Kind
}

// fakeSink records every append; err, when set, is returned from each call.
type fakeSink struct {
	appends []captured
	err     error
}

func (f *fakeSink) Append(_ context.Context, routePath, element, value string, kind history.Kind) (history.Record, error) {
	f.appends = append(f.appends, captured{routePath, element, value, kind})
	if f.err != nil {
		return history.Record{}, f.err
	}
	return history.Record{Element: element, Value: value, Kind: kind}, nil
}

func newTestPipeline(t *testing.T, markup string, sink Appender) (*Pipeline, *dom.Document) {
	t.Helper()
	root, err := dom.ParseString(markup)
	require.NoError(t, err)
	doc := dom.NewDocument(root)
	p := New(doc, strategy.ForLibrary("native"), route.Static("#/home"), sink, nil)
	return p, doc
}

func TestBind_BindsPresentControls(t *testing.T) {
	sink := &fakeSink{}
	p, _ := newTestPipeline(t, `
		<form>
			<input id="username" type="text">
			<input id="agree" type="checkbox" value="yes">
			<div id="not-a-control"></div>
		</form>`, sink)

	p.Bind()
	assert.Equal(t, 2, p.BoundControls())
}

func TestBind_IdempotentRescan(t *testing.T) {
	sink := &fakeSink{}
	p, doc := newTestPipeline(t, `<input id="username" type="text">`, sink)

	p.Bind()
	p.rescan()
	p.rescan()
	assert.Equal(t, 1, p.BoundControls())

	// A rebound control would fire its listener more than once per change.
	doc.Change(doc.Root().FindByID("username"), "alice")
	assert.Len(t, sink.appends, 1)
}

func TestBind_PicksUpInsertedControls(t *testing.T) {
	sink := &fakeSink{}
	p, doc := newTestPipeline(t, `<div id="container"></div>`, sink)

	p.Bind()
	assert.Equal(t, 0, p.BoundControls())

	email := dom.NewElement("input", map[string]string{"id": "email", "type": "text"})
	doc.AppendChild(doc.Root().FindByID("container"), email)

	// The structural observer rescans on mutation.
	assert.Equal(t, 1, p.BoundControls())

	doc.Change(email, "a@b.c")
	require.Len(t, sink.appends, 1)
	assert.Equal(t, "email", sink.appends[0].element)
}

func TestHandleChange_ForwardsFormRecord(t *testing.T) {
	sink := &fakeSink{}
	p, doc := newTestPipeline(t, `<input id="username" type="text">`, sink)
	p.Bind()

	doc.Change(doc.Root().FindByID("username"), "alice")

	require.Len(t, sink.appends, 1)
	got := sink.appends[0]
	assert.Equal(t, "#/home", got.route)
	assert.Equal(t, "username", got.element)
	assert.Equal(t, "alice", got.value)
	assert.Equal(t, history.KindForm, got.kind)
}

func TestHandleChange_SkipsUnidentifiableControl(t *testing.T) {
	sink := &fakeSink{}
	p, doc := newTestPipeline(t, `<input type="text">`, sink)
	p.Bind()

	doc.Change(doc.Root().FormControls()[0], "orphan")
	assert.Empty(t, sink.appends)
}

func TestHandleClick_ForwardsClickRecord(t *testing.T) {
	sink := &fakeSink{}
	p, doc := newTestPipeline(t, `<button id="submit-btn">Go</button>`, sink)
	p.Bind()

	doc.Click(doc.Root().FindByID("submit-btn"))

	require.Len(t, sink.appends, 1)
	got := sink.appends[0]
	assert.Equal(t, "submit-btn", got.element)
	assert.Equal(t, "true", got.value)
	assert.Equal(t, history.KindClick, got.kind)
}

func TestHandleClick_AnchorExcluded(t *testing.T) {
	sink := &fakeSink{}
	p, doc := newTestPipeline(t, `<a href="#/x" id="nav"><span id="inner">x</span></a>`, sink)
	p.Bind()

	doc.Click(doc.Root().FindByID("inner"))
	assert.Empty(t, sink.appends)
}

func TestCapture_SwallowsAppendErrors(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}
	p, doc := newTestPipeline(t, `<input id="username" type="text">`, sink)
	p.Bind()

	// Must not panic; the failure is logged and dropped.
	doc.Change(doc.Root().FindByID("username"), "alice")
	doc.Click(doc.Root().FindByID("username"))
	assert.Len(t, sink.appends, 2)
}
