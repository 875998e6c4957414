// Package media turns stored upload paths into public URLs.
package media

import (
	"net/url"
	"strings"
)

// Resolver prefixes relative paths with a public base URL. Absolute URLs
// pass through unchanged.
type Resolver struct {
	base string
}

// NewResolver creates a resolver for base, e.g. "https://cdn.example.com".
// An empty base leaves every path as stored.
func NewResolver(base string) *Resolver {
	return &Resolver{base: strings.TrimRight(base, "/")}
}

// URL resolves one path.
func (r *Resolver) URL(path string) string {
	if r == nil || r.base == "" || path == "" {
		return path
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return r.base + "/" + strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")
}

// URLs resolves every path into a new slice.
func (r *Resolver) URLs(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = r.URL(p)
	}
	return out
}
