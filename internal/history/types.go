package history

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind classifies the source of a captured record.
type Kind string

const (
	// KindForm marks a value-change capture on a form control.
	KindForm Kind = "form"
	// KindClick marks a click capture on an identified element.
	KindClick Kind = "click"
	// KindBrowser marks a browser-level event (navigation, unload).
	// Reserved: no pipeline currently emits it.
	KindBrowser Kind = "browser"
)

// Record is one captured interaction.
type Record struct {
	// Element is the resolved stable identifier of the target control.
	// Always non-empty: captures without an identifier are suppressed
	// upstream.
	Element string `json:"element"`

	// Value is the captured scalar value. Multi-value controls
	// (checkbox groups) store a semicolon-joined list; click captures
	// store "true".
	Value string `json:"value"`

	// Timestamp is the capture time in Unix milliseconds. Monotonically
	// non-decreasing per process, not unique (ties possible).
	Timestamp int64 `json:"timestamp"`

	// Kind is the capture source; defaults to KindForm.
	Kind Kind `json:"type"`
}

// Entry is the persisted unit: the append-only record log for one
// composite key.
type Entry struct {
	Key     string   `json:"key"`
	Records []Record `json:"records"`
}

// KeyInfo is a composite key split into its parts.
type KeyInfo struct {
	User  string `json:"user"`
	Route string `json:"route"`
}

// Key builds the composite "{user}@{route}" store key. The result is
// NFC-normalized so equivalent Unicode spellings map to the same entry.
func Key(user, routePath string) string {
	return norm.NFC.String(user + "@" + routePath)
}

// SplitKey splits a composite key on the first "@" into user and route.
func SplitKey(key string) KeyInfo {
	user, routePath, _ := strings.Cut(key, "@")
	return KeyInfo{User: user, Route: routePath}
}

// SplitParam splits a "{route}@{element}" lookup parameter on the first
// "@" into route and element identifier.
func SplitParam(param string) (routePath, element string) {
	routePath, element, _ = strings.Cut(param, "@")
	return routePath, element
}

// JoinValues encodes a multi-value capture (e.g. a checkbox group) as the
// single stored value string.
func JoinValues(values []string) string {
	return strings.Join(values, ";")
}
