// Package normalize holds the canonical forms used for storage and comparison.
package normalize

import "strings"

// Email returns a normalized form of an email address suitable for
// storage and comparisons. Normalization currently trims surrounding
// whitespace and lower-cases the address.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// UserName returns the stored form of a login name: trimmed and lower-cased,
// so "Recruiter1 " and "recruiter1" resolve to the same account.
func UserName(n string) string {
	return strings.ToLower(strings.TrimSpace(n))
}

// ID trims surrounding whitespace from an opaque identifier. Case is kept
// since identifiers are compared byte-for-byte.
func ID(id string) string {
	return strings.TrimSpace(id)
}
