package dom

import "strings"

// Element is one node in the page tree.
//
// Tag is always lower-case. Attrs holds the raw markup attributes; the
// mutable interaction state (Value, Checked) lives in dedicated fields so
// a simulated change does not rewrite the attribute map.
type Element struct {
	Tag     string
	Attrs   map[string]string
	Value   string
	Checked bool

	parent   *Element
	children []*Element
}

// NewElement creates a detached element with the given tag and attributes.
// The value/checked state is seeded from the "value" and "checked" attributes.
func NewElement(tag string, attrs map[string]string) *Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	el := &Element{
		Tag:   strings.ToLower(tag),
		Attrs: attrs,
		Value: attrs["value"],
	}
	if _, ok := attrs["checked"]; ok {
		el.Checked = true
	}
	return el
}

// ID returns the element's id attribute ("" if absent).
func (e *Element) ID() string { return e.Attrs["id"] }

// Name returns the element's name attribute ("" if absent).
func (e *Element) Name() string { return e.Attrs["name"] }

// Type returns the element's type attribute ("" if absent).
// For inputs this distinguishes radio/checkbox/text controls.
func (e *Element) Type() string { return strings.ToLower(e.Attrs["type"]) }

// Parent returns the element's parent, or nil for a root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's direct children.
func (e *Element) Children() []*Element { return e.children }

// HasClass reports whether the class attribute contains the given class.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.Attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// Closest walks from the element up through its ancestors (including the
// element itself) and returns the first one carrying the given class.
// Returns nil if no ancestor matches.
func (e *Element) Closest(class string) *Element {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.HasClass(class) {
			return cur
		}
	}
	return nil
}

// appendChild attaches child as the last child of e.
// Detaches the child from any previous parent first.
func (e *Element) appendChild(child *Element) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// removeChild detaches child from e. No-op if child is not a direct child.
func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Walk visits the element and every descendant in document order.
func (e *Element) Walk(visit func(*Element)) {
	visit(e)
	for _, c := range e.children {
		c.Walk(visit)
	}
}

// Find returns every element in the subtree (including e) matching pred,
// in document order.
func (e *Element) Find(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) {
		if pred(el) {
			out = append(out, el)
		}
	})
	return out
}

// FindByID returns the first element in the subtree with the given id,
// or nil if none exists.
func (e *Element) FindByID(id string) *Element {
	var found *Element
	e.Walk(func(el *Element) {
		if found == nil && el.ID() == id {
			found = el
		}
	})
	return found
}

// FormControls returns every input, textarea and select in the subtree,
// in document order. This is the binding target set for the capture
// pipeline (the "input, textarea, select" selector).
func (e *Element) FormControls() []*Element {
	return e.Find(func(el *Element) bool {
		switch el.Tag {
		case "input", "textarea", "select":
			return true
		}
		return false
	})
}

// CheckedBoxes returns every checked checkbox input in the subtree,
// in document order.
func (e *Element) CheckedBoxes() []*Element {
	return e.Find(func(el *Element) bool {
		return el.Tag == "input" && el.Type() == "checkbox" && el.Checked
	})
}

// Event is a dispatched interaction event.
type Event struct {
	// Target is the element the event was dispatched on.
	Target *Element
}

// Path returns the composed path of the event: the target followed by its
// ancestors up to the root. Index 0 is the target itself.
func (ev *Event) Path() []*Element {
	var path []*Element
	for cur := ev.Target; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}
	return path
}

// PathAt returns the element at the given composed-path index, or nil if
// the path is shorter. PathAt(0) is the target, PathAt(1) its parent.
func (ev *Event) PathAt(i int) *Element {
	cur := ev.Target
	for ; i > 0 && cur != nil; i-- {
		cur = cur.parent
	}
	return cur
}
