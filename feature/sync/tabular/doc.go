// Package tabular is the value codec for the partner's column-indexed
// payloads.
//
// The partner delivers each dataset as a generic column list plus row list.
// This package turns that semi-structured shape into typed values with safe
// defaults: absent cells (nil, "", the literal "null") substitute the caller's
// default, integers fall back instead of failing, and dates are tried against
// every known partner layout before being declared unset.
//
// The codec has no side effects and no failure modes other than returning
// defaults; it is the layer that keeps the reconciliation engine tolerant of
// an evolving external schema.
package tabular
