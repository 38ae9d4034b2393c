// Package irep provides the decoded form of an ESBMC irep: a tagged tree
// value with an identifier and three kinds of children.
//
// # Node Structure
//
// A Node carries
//
//   - an identifier, an interned string id
//   - ordered children (Sub), where order matters and duplicates are allowed
//   - named children, a map from interned field name to child
//   - comment children, a map of the same shape kept as a separate channel
//
// Identifiers and keys are [intern.ID] values; resolving them to text needs
// the [intern.Interner] that issued them.
//
// # Sharing
//
// The container format lets a node be referenced from several parents, so
// a decoded value is a DAG rather than a tree. Nodes are immutable once
// built, which makes sharing safe: the same *Node may appear under any
// number of parents.
//
// # Equality and Hashing
//
// [Equal] compares nodes structurally over all four components. Wire ids
// and pointer identity play no part. [Node.Hash] is computed once when the
// node is built and is consistent with Equal within one process. [Digest]
// is a content digest that is stable across processes and interners.
//
// # Paths
//
// A path addresses a node from a root:
//
//	$                 the root
//	$[0]              first ordered child
//	$.type            named child "type"
//	$.'a.b'           named child "a.b"
//	$.type{#location} comment child "#location" of the named child "type"
//	$..               every node below (List only)
//	$[*]              every ordered child (List only)
//
// Use [Get] to resolve a path to one node, [List] to collect all matches.
//
// # Thread Safety
//
// Nodes may be read from many goroutines. The Interner is not safe for
// concurrent mutation.
package irep
