// Package dom provides a minimal in-process model of the host page:
// an element tree, change/click event dispatch with composed paths, and
// child-list mutation observers.
//
// It intentionally models only what the capture pipeline and the
// identification strategies need:
//   - tag, id, name, type, class and value/checked state per element
//   - ancestor lookup by class (Closest)
//   - subtree queries for form controls and checked checkboxes
//   - structural mutation notification (AppendChild/RemoveChild)
//
// Trees are usually built from HTML markup via ParseString, which uses
// golang.org/x/net/html under the hood.
package dom
