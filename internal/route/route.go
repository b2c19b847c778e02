// Package route resolves the current route for use in composite history
// keys. Route resolution is configurable between hash-based routing
// (single-page apps, "#/path") and path-based routing; either way the
// query-string suffix is stripped before the route enters a key.
package route

import "strings"

// Mode selects which part of the location identifies the route.
type Mode string

const (
	// ModeHash routes on the location hash (e.g. "#/orders").
	ModeHash Mode = "hash"
	// ModePath routes on the location pathname (e.g. "/orders").
	ModePath Mode = "path"
)

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	return m == ModeHash || m == ModePath
}

// Location is the host page's current address, split the way a browser
// location object splits it.
type Location struct {
	Path string
	Hash string
}

// Provider reports the current route, already stripped of any
// query-string suffix.
type Provider func() string

// NewProvider builds a Provider over a location source for the given mode.
func NewProvider(mode Mode, location func() Location) Provider {
	return func() string {
		loc := location()
		if mode == ModePath {
			return StripQuery(loc.Path)
		}
		return StripQuery(loc.Hash)
	}
}

// Static returns a Provider that always reports the given route.
// Useful for tests and for callers that manage routing themselves.
func Static(routePath string) Provider {
	stripped := StripQuery(routePath)
	return func() string { return stripped }
}

// StripQuery removes a query-string suffix from a route. Hash routes
// carry their query inside the fragment ("#/orders?tab=open"), so this
// works on the raw string rather than net/url parsing.
func StripQuery(routePath string) string {
	if i := strings.Index(routePath, "?"); i >= 0 {
		return routePath[:i]
	}
	return routePath
}
