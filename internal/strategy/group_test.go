package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennent-g/websnap/internal/dom"
)

func mustParse(t *testing.T, markup string) *dom.Element {
	t.Helper()
	body, err := dom.ParseString(markup)
	require.NoError(t, err)
	return body
}

func TestElementPlus_RadioResolvesToGroup(t *testing.T) {
	body := mustParse(t, `
		<div class="el-radio-group" id="color">
			<label><input id="r1" type="radio" value="red"></label>
			<label><input id="r2" type="radio" value="blue"></label>
		</div>`)
	strat := ForLibrary("elementplus")

	radio := body.FindByID("r1")
	assert.Equal(t, "color", strat.ElementID(radio))
}

func TestElementPlus_RadioWithoutGroupUsesOwnID(t *testing.T) {
	body := mustParse(t, `<input id="lone" type="radio" value="x">`)
	strat := ForLibrary("elementplus")

	assert.Equal(t, "lone", strat.ElementID(body.FindByID("lone")))
}

func TestElementPlus_RadioFallsBackToName(t *testing.T) {
	body := mustParse(t, `<input type="radio" name="shade" value="x">`)
	strat := ForLibrary("elementplus")

	assert.Equal(t, "shade", strat.ElementID(body.FormControls()[0]))
}

func TestElementPlus_CheckboxWithoutIDResolvesToGroup(t *testing.T) {
	body := mustParse(t, `
		<div class="el-checkbox-group" id="fruits">
			<input type="checkbox" value="apple">
			<input type="checkbox" value="pear">
		</div>`)
	strat := ForLibrary("elementplus")

	box := body.FindByID("fruits").Children()[0]
	assert.Equal(t, "fruits", strat.ElementID(box))
}

func TestElementPlus_CheckboxWithOwnIDKeepsIt(t *testing.T) {
	body := mustParse(t, `
		<div class="el-checkbox-group" id="fruits">
			<input id="apple" type="checkbox" value="apple">
		</div>`)
	strat := ForLibrary("elementplus")

	assert.Equal(t, "apple", strat.ElementID(body.FindByID("apple")))
}

func TestElementPlus_GroupValueJoinsCheckedBoxes(t *testing.T) {
	body := mustParse(t, `
		<div class="el-checkbox-group" id="fruits">
			<input type="checkbox" value="apple" checked>
			<input type="checkbox" value="pear">
			<input type="checkbox" value="plum" checked>
		</div>`)
	strat := ForLibrary("elementplus")

	box := body.FindByID("fruits").Children()[0]
	assert.Equal(t, "apple;plum", strat.Value(box))
}

func TestElementPlus_GroupValueEmptyWhenNoneChecked(t *testing.T) {
	body := mustParse(t, `
		<div class="el-checkbox-group" id="fruits">
			<input type="checkbox" value="apple">
		</div>`)
	strat := ForLibrary("elementplus")

	box := body.FindByID("fruits").Children()[0]
	assert.Equal(t, "", strat.Value(box))
}

func TestElementPlus_LoneCheckboxValue(t *testing.T) {
	strat := ForLibrary("elementplus")

	checked := mustParse(t, `<input id="a" type="checkbox" value="yes" checked>`).FindByID("a")
	assert.Equal(t, "yes", strat.Value(checked))

	unchecked := mustParse(t, `<input id="a" type="checkbox" value="yes">`).FindByID("a")
	assert.Equal(t, "", strat.Value(unchecked))
}

func TestElementPlus_TextValuePassesThrough(t *testing.T) {
	body := mustParse(t, `<input id="a" type="text" value="hello">`)
	strat := ForLibrary("elementplus")

	assert.Equal(t, "hello", strat.Value(body.FindByID("a")))
}

func TestElementPlus_ClickOnAnchorRejected(t *testing.T) {
	body := mustParse(t, `<a id="link" href="#/x">go</a>`)
	strat := ForLibrary("elementplus")

	_, ok := strat.ClickID(&dom.Event{Target: body.FindByID("link")})
	assert.False(t, ok)
}

func TestElementPlus_ClickInsideAnchorRejected(t *testing.T) {
	strat := ForLibrary("elementplus")

	// Anchor one level up (router-link around a span).
	body := mustParse(t, `<a href="#/x"><span id="inner">go</span></a>`)
	_, ok := strat.ClickID(&dom.Event{Target: body.FindByID("inner")})
	assert.False(t, ok)

	// Anchor two levels up (router-link around a button around a span).
	body = mustParse(t, `<a href="#/x"><button id="b"><span id="deep">go</span></button></a>`)
	_, ok = strat.ClickID(&dom.Event{Target: body.FindByID("deep")})
	assert.False(t, ok)
}

func TestElementPlus_ClickOnButtonSpanUsesButtonID(t *testing.T) {
	body := mustParse(t, `<div><button id="submit-btn"><span id="inner">Submit</span></button></div>`)
	strat := ForLibrary("elementplus")

	id, ok := strat.ClickID(&dom.Event{Target: body.FindByID("inner")})
	require.True(t, ok)
	assert.Equal(t, "submit-btn", id)
}

func TestElementPlus_AutoGeneratedButtonIDRejected(t *testing.T) {
	body := mustParse(t, `<div><button id="el-button-42"><span id="inner">x</span></button></div>`)
	strat := ForLibrary("elementplus")

	_, ok := strat.ClickID(&dom.Event{Target: body.FindByID("inner")})
	assert.False(t, ok)
}

func TestElementPlus_ClickOnPlainElementUsesOwnID(t *testing.T) {
	body := mustParse(t, `<div><span id="chip">x</span></div>`)
	strat := ForLibrary("elementplus")

	id, ok := strat.ClickID(&dom.Event{Target: body.FindByID("chip")})
	require.True(t, ok)
	assert.Equal(t, "chip", id)
}

func TestElementPlus_AutoGeneratedTargetIDRejected(t *testing.T) {
	body := mustParse(t, `<div><span id="el-id-1024">x</span></div>`)
	strat := ForLibrary("elementplus")

	_, ok := strat.ClickID(&dom.Event{Target: body.FindByID("el-id-1024")})
	assert.False(t, ok)
}

func TestElementPlus_ClickWithoutIDRejected(t *testing.T) {
	body := mustParse(t, `<div><span class="chip">x</span></div>`)
	strat := ForLibrary("elementplus")

	span := body.Children()[0].Children()[0]
	_, ok := strat.ClickID(&dom.Event{Target: span})
	assert.False(t, ok)
}

func TestAntDesign_UsesOwnGroupClassAndPrefix(t *testing.T) {
	strat := ForLibrary("antdesign")

	body := mustParse(t, `
		<div class="ant-radio-group" id="size">
			<input id="r1" type="radio" value="s">
		</div>`)
	assert.Equal(t, "size", strat.ElementID(body.FindByID("r1")))

	// Element Plus group classes mean nothing to the antdesign variant.
	body = mustParse(t, `
		<div class="el-radio-group" id="size">
			<input id="r1" type="radio" value="s">
		</div>`)
	assert.Equal(t, "r1", strat.ElementID(body.FindByID("r1")))

	body = mustParse(t, `<div><span id="ant-generated">x</span></div>`)
	_, ok := strat.ClickID(&dom.Event{Target: body.FindByID("ant-generated")})
	assert.False(t, ok)
}
