package dom

// Document owns an element tree and dispatches events and mutation
// notifications, mirroring the host-page surface the capture pipeline
// binds to: per-element change listeners, a document-level click listener,
// and child-list mutation observers.
//
// Document is not safe for concurrent use. The deployment model is a
// single logical thread of control (the host's event loop); callers that
// need concurrency must serialize externally.
type Document struct {
	root *Element

	observers       []func()
	clickListeners  []func(*Event)
	changeListeners map[*Element][]func(*Event)
}

// NewDocument creates a document over the given root element.
func NewDocument(root *Element) *Document {
	return &Document{
		root:            root,
		changeListeners: map[*Element][]func(*Event){},
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// Observe registers a structural observer. The callback fires after every
// child-list mutation anywhere in the tree (AppendChild/RemoveChild).
// Observers are invoked sequentially in registration order; a callback is
// never re-entered concurrently with itself.
func (d *Document) Observe(fn func()) {
	d.observers = append(d.observers, fn)
}

// OnClick registers a document-level click listener.
func (d *Document) OnClick(fn func(*Event)) {
	d.clickListeners = append(d.clickListeners, fn)
}

// OnChange registers a change listener on a specific element.
func (d *Document) OnChange(el *Element, fn func(*Event)) {
	d.changeListeners[el] = append(d.changeListeners[el], fn)
}

// AppendChild attaches child under parent and notifies observers.
func (d *Document) AppendChild(parent, child *Element) {
	parent.appendChild(child)
	d.notify()
}

// RemoveChild detaches child from its parent and notifies observers.
func (d *Document) RemoveChild(child *Element) {
	if child.parent == nil {
		return
	}
	child.parent.removeChild(child)
	d.notify()
}

func (d *Document) notify() {
	for _, fn := range d.observers {
		fn()
	}
}

// Change sets the element's value and dispatches a change event to the
// listeners registered on it.
func (d *Document) Change(el *Element, value string) {
	el.Value = value
	d.dispatchChange(el)
}

// SetChecked flips a checkbox/radio checked state and dispatches a change
// event, matching native control behavior where toggling fires change.
func (d *Document) SetChecked(el *Element, checked bool) {
	el.Checked = checked
	d.dispatchChange(el)
}

func (d *Document) dispatchChange(el *Element) {
	ev := &Event{Target: el}
	for _, fn := range d.changeListeners[el] {
		fn(ev)
	}
}

// Click dispatches a click event on the element to the document-level
// click listeners.
func (d *Document) Click(el *Element) {
	ev := &Event{Target: el}
	for _, fn := range d.clickListeners {
		fn(ev)
	}
}
