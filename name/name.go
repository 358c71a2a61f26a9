// Package name provides interned Starlark identifiers.
//
// Every layer of the analysis core — HIR, scopes, the resolver, the
// argument binder — refers to identifiers by value, never by pointer into
// source text, so that two occurrences of the same spelling compare equal
// regardless of which file or offset produced them. This package is the
// one place that owns that invariant.
package name

// Name is an interned Starlark identifier. Two Names are equal iff their
// spellings are equal; there is no pointer identity to rely on.
type Name struct {
	s string
}

// Missing is the empty Name used for anonymous "*" markers in parameter
// lists (a bare "*" that separates positional-only from keyword-only
// parameters, with no name of its own).
var Missing = Name{}

// New interns s as a Name.
func New(s string) Name {
	return Name{s: s}
}

// String returns the identifier's spelling.
func (n Name) String() string {
	return n.s
}

// IsMissing reports whether n is the anonymous "*" marker.
func (n Name) IsMissing() bool {
	return n.s == ""
}
