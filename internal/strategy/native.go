package strategy

import "github.com/bennent-g/websnap/internal/dom"

// nativeVariant implements Strategy for plain HTML forms: no group
// containers, no auto-generated ids. It is the fallback for unrecognized
// library names.
type nativeVariant struct{}

func (nativeVariant) ElementID(el *dom.Element) string {
	return ownID(el)
}

func (nativeVariant) Value(el *dom.Element) string {
	if el.Type() == "checkbox" {
		if el.Checked {
			return el.Value
		}
		return ""
	}
	return el.Value
}

func (nativeVariant) ClickID(ev *dom.Event) (string, bool) {
	target := ev.Target
	if target == nil || isAnchor(target) {
		return "", false
	}
	if isAnchor(ev.PathAt(1)) || isAnchor(ev.PathAt(2)) {
		return "", false
	}
	if wrapper := ev.PathAt(1); wrapper != nil && wrapper.Tag == "button" && !isAnchor(ev.PathAt(2)) {
		if id := wrapper.ID(); id != "" {
			return id, true
		}
		return "", false
	}
	if id := target.ID(); id != "" {
		return id, true
	}
	return "", false
}
