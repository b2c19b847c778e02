package strategy

import (
	"strings"

	"github.com/bennent-g/websnap/internal/dom"
	"github.com/bennent-g/websnap/internal/history"
)

// groupVariant implements Strategy for class-based component libraries
// (Element Plus, Ant Design, Vant, iView). The libraries share a markup
// shape and differ only in the group container classes and the prefix of
// their auto-generated element ids.
type groupVariant struct {
	radioGroupClass    string
	checkboxGroupClass string

	// autoIDPrefix marks library-generated ids (e.g. "el-" for Element
	// Plus). Clicks resolving onto such ids are not recorded: the ids are
	// not stable across renders.
	autoIDPrefix string
}

func (v groupVariant) ElementID(el *dom.Element) string {
	switch {
	case el.Type() == "radio":
		if group := el.Closest(v.radioGroupClass); group != nil && group.ID() != "" {
			return group.ID()
		}
		return ownID(el)
	case el.Type() == "checkbox" && el.ID() == "":
		if group := el.Closest(v.checkboxGroupClass); group != nil && group.ID() != "" {
			return group.ID()
		}
		return ownID(el)
	default:
		return ownID(el)
	}
}

func (v groupVariant) Value(el *dom.Element) string {
	if el.Type() == "checkbox" {
		return checkboxValue(el, v.checkboxGroupClass)
	}
	return el.Value
}

func (v groupVariant) ClickID(ev *dom.Event) (string, bool) {
	target := ev.Target
	if target == nil || isAnchor(target) {
		return "", false
	}
	// Anchors one or two levels up wrap router-links and nested buttons;
	// recording those would double-count the navigation.
	if isAnchor(ev.PathAt(1)) || isAnchor(ev.PathAt(2)) {
		return "", false
	}
	// Library buttons render as button>span, so the click lands on the
	// span and the meaningful id sits on the wrapping button.
	if wrapper := ev.PathAt(1); wrapper != nil && wrapper.Tag == "button" && !isAnchor(ev.PathAt(2)) {
		return v.qualifyID(wrapper.ID())
	}
	return v.qualifyID(target.ID())
}

// qualifyID accepts an id unless it is empty or library-generated.
func (v groupVariant) qualifyID(id string) (string, bool) {
	if id == "" || strings.HasPrefix(id, v.autoIDPrefix) {
		return "", false
	}
	return id, true
}

// checkboxValue resolves a checkbox's value in group context: all checked
// boxes within the enclosing group container, semicolon-joined. A checkbox
// outside any group reports its own value when checked, "" otherwise.
func checkboxValue(el *dom.Element, groupClass string) string {
	if group := el.Closest(groupClass); group != nil {
		var values []string
		for _, box := range group.CheckedBoxes() {
			values = append(values, box.Value)
		}
		return history.JoinValues(values)
	}
	if el.Checked {
		return el.Value
	}
	return ""
}
