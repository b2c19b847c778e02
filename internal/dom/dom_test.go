package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_Accessors(t *testing.T) {
	el := NewElement("INPUT", map[string]string{
		"id":    "username",
		"name":  "user",
		"type":  "TEXT",
		"value": "alice",
	})

	assert.Equal(t, "input", el.Tag)
	assert.Equal(t, "username", el.ID())
	assert.Equal(t, "user", el.Name())
	assert.Equal(t, "text", el.Type())
	assert.Equal(t, "alice", el.Value)
	assert.False(t, el.Checked)
}

func TestElement_CheckedSeededFromAttribute(t *testing.T) {
	el := NewElement("input", map[string]string{"type": "checkbox", "checked": ""})
	assert.True(t, el.Checked)
}

func TestElement_HasClass(t *testing.T) {
	el := NewElement("div", map[string]string{"class": "el-checkbox-group is-disabled"})

	assert.True(t, el.HasClass("el-checkbox-group"))
	assert.True(t, el.HasClass("is-disabled"))
	assert.False(t, el.HasClass("el-checkbox"))
}

func TestElement_Closest(t *testing.T) {
	group := NewElement("div", map[string]string{"class": "el-radio-group", "id": "color"})
	wrapper := NewElement("label", nil)
	radio := NewElement("input", map[string]string{"type": "radio"})
	group.appendChild(wrapper)
	wrapper.appendChild(radio)

	assert.Equal(t, group, radio.Closest("el-radio-group"))
	assert.Nil(t, radio.Closest("el-checkbox-group"))

	// Closest includes the element itself.
	assert.Equal(t, group, group.Closest("el-radio-group"))
}

func TestElement_FormControls(t *testing.T) {
	body, err := ParseString(`
		<div>
			<input id="a">
			<p><textarea id="b"></textarea></p>
			<select id="c"></select>
			<button id="d">x</button>
		</div>`)
	require.NoError(t, err)

	controls := body.FormControls()
	require.Len(t, controls, 3)
	assert.Equal(t, "a", controls[0].ID())
	assert.Equal(t, "b", controls[1].ID())
	assert.Equal(t, "c", controls[2].ID())
}

func TestEvent_Path(t *testing.T) {
	outer := NewElement("div", nil)
	button := NewElement("button", nil)
	span := NewElement("span", nil)
	outer.appendChild(button)
	button.appendChild(span)

	ev := &Event{Target: span}
	path := ev.Path()
	require.Len(t, path, 3)
	assert.Equal(t, span, path[0])
	assert.Equal(t, button, path[1])
	assert.Equal(t, outer, path[2])

	assert.Equal(t, button, ev.PathAt(1))
	assert.Equal(t, outer, ev.PathAt(2))
	assert.Nil(t, ev.PathAt(3))
}

func TestDocument_ObserverFiresOnMutation(t *testing.T) {
	body, err := ParseString(`<div id="container"></div>`)
	require.NoError(t, err)
	doc := NewDocument(body)

	fired := 0
	doc.Observe(func() { fired++ })

	child := NewElement("input", map[string]string{"id": "new"})
	doc.AppendChild(body.FindByID("container"), child)
	assert.Equal(t, 1, fired)

	doc.RemoveChild(child)
	assert.Equal(t, 2, fired)

	// Removing a detached element is a no-op.
	doc.RemoveChild(child)
	assert.Equal(t, 2, fired)
}

func TestDocument_ChangeDispatch(t *testing.T) {
	input := NewElement("input", map[string]string{"id": "a"})
	doc := NewDocument(input)

	var got string
	doc.OnChange(input, func(ev *Event) { got = ev.Target.Value })

	doc.Change(input, "hello")
	assert.Equal(t, "hello", got)
	assert.Equal(t, "hello", input.Value)
}

func TestDocument_ClickDispatch(t *testing.T) {
	root := NewElement("div", nil)
	button := NewElement("button", map[string]string{"id": "go"})
	root.appendChild(button)
	doc := NewDocument(root)

	var targets []*Element
	doc.OnClick(func(ev *Event) { targets = append(targets, ev.Target) })

	doc.Click(button)
	require.Len(t, targets, 1)
	assert.Equal(t, button, targets[0])
}

func TestDocument_SetCheckedDispatchesChange(t *testing.T) {
	box := NewElement("input", map[string]string{"type": "checkbox", "value": "yes"})
	doc := NewDocument(box)

	fired := 0
	doc.OnChange(box, func(*Event) { fired++ })

	doc.SetChecked(box, true)
	assert.True(t, box.Checked)
	assert.Equal(t, 1, fired)
}
