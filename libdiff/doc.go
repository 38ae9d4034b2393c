// Package libdiff compares decoded trees.
//
// Trees are first compared structurally; only when they differ are
// both rendered as text and diffed line by line, so equal inputs cost
// no rendering.
package libdiff
