// Package encode renders decoded GBF trees.
//
// # Usage
//
//	// Render as indented text
//	err := encode.Encode(root, strs, os.Stdout)
//
//	// Render as JSON, with at most 3 levels of children
//	err := encode.Encode(root, strs, w, encode.EncodeFormat(format.JSONFormat), encode.Depth(3))
//
// Text output puts one node per line. Ordered children are prefixed
// with "- ", named children with "name: " and comments with "{name}: ".
// A node reachable more than once is rendered in full at its first
// occurrence, marked "&N", and as "*N" afterwards, so the output stays
// proportional to the number of distinct nodes. EncodeExpand turns this
// off and renders every occurrence.
//
// JSON, YAML and CBOR output render each node as a Value.
//
// # Related Packages
//
//   - github.com/signadot/gbf/irep - decoded trees
//   - github.com/signadot/gbf/format - output formats
package encode
