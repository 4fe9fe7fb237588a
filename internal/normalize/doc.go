// Package normalize canonicalizes the free-text fields of calendar rows.
//
// A Normalizer is built from an immutable Config holding the venue code table and
// the ordered name replacements, so alternate venue sets can be injected in tests.
package normalize
