// Package strategy resolves DOM elements and events to stable identifiers
// and values across UI-component libraries.
//
// Component libraries wrap native controls (radio/checkbox groups,
// button-in-span, router-link-in-anchor) such that the visually interacted
// element differs from the semantically meaningful one. Each Strategy
// variant knows one library's wrapping conventions; selection happens once
// at configuration time via ForLibrary.
package strategy

import "github.com/bennent-g/websnap/internal/dom"

// Strategy resolves element identity and values for one UI-component
// library. All methods are pure functions of DOM state at call time;
// implementations hold no mutable state.
type Strategy interface {
	// ElementID derives a stable identifier for a form control.
	// Radio inputs resolve to their enclosing group's id when the
	// library's group container is present; checkboxes without an own id
	// resolve to their checkbox-group's id. Everything else resolves to
	// the element's own id, falling back to its name. Returns "" when no
	// identifier can be derived, which suppresses capture.
	ElementID(el *dom.Element) string

	// Value derives the element's current value. For checkbox groups it
	// returns all checked sibling values within the group container,
	// semicolon-joined ("" if none checked); for a lone checkbox, its
	// value if checked else ""; otherwise the element's value.
	Value(el *dom.Element) string

	// ClickID decides whether a click should be recorded and under which
	// identifier. Returns ok=false for anchor-related clicks (direct
	// anchor targets and anchor ancestors within two composed-path
	// levels), for library auto-generated ids, and when no qualifying id
	// exists.
	ClickID(ev *dom.Event) (id string, ok bool)
}

// ForLibrary returns the strategy variant for a UI library name.
// Unrecognized or empty names fall back to the native strategy.
func ForLibrary(name string) Strategy {
	switch name {
	case "elementplus":
		return groupVariant{
			radioGroupClass:    "el-radio-group",
			checkboxGroupClass: "el-checkbox-group",
			autoIDPrefix:       "el-",
		}
	case "antdesign":
		return groupVariant{
			radioGroupClass:    "ant-radio-group",
			checkboxGroupClass: "ant-checkbox-group",
			autoIDPrefix:       "ant-",
		}
	case "vant":
		return groupVariant{
			radioGroupClass:    "van-radio-group",
			checkboxGroupClass: "van-checkbox-group",
			autoIDPrefix:       "van-",
		}
	case "iview":
		return groupVariant{
			radioGroupClass:    "ivu-radio-group",
			checkboxGroupClass: "ivu-checkbox-group",
			autoIDPrefix:       "ivu-",
		}
	default:
		return nativeVariant{}
	}
}

// ownID returns the element's id, falling back to its name.
func ownID(el *dom.Element) string {
	if id := el.ID(); id != "" {
		return id
	}
	return el.Name()
}

// isAnchor reports whether el is an <a> element. Nil-safe.
func isAnchor(el *dom.Element) bool {
	return el != nil && el.Tag == "a"
}
