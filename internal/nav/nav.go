// Package nav models the page location the directory reads its category from.
package nav

import (
	"net/url"
	"strings"
)

// CategoryParam is the query parameter holding the category filter.
const CategoryParam = "category"

// Location is a parsed page address such as "/?category=Health".
type Location struct {
	Path   string
	Params url.Values
}

// Home is the unfiltered landing page.
var Home = Location{Path: "/", Params: url.Values{}}

// Parse parses a path with an optional query string. Unparseable input
// falls back to Home.
func Parse(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Home
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Home
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return Location{Path: path, Params: u.Query()}
}

// Category returns the category parameter, or nil when it is absent or empty.
func (l Location) Category() *string {
	if l.Params == nil {
		return nil
	}
	c := l.Params.Get(CategoryParam)
	if c == "" {
		return nil
	}
	return &c
}

// String formats the location back into "path?query".
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "/"
	}
	if q := l.Params.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// CategoryHref returns the landing-page address filtered by category.
// An empty category yields "/".
func CategoryHref(category string) string {
	if category == "" {
		return "/"
	}
	return "/?" + url.Values{CategoryParam: {category}}.Encode()
}
