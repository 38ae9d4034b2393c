package decode

import "github.com/signadot/gbf/intern"

// DecodeOption configures a Decoder.
type DecodeOption func(*decodeOpts)

type decodeOpts struct {
	maxDepth int
	maxNodes int
	maxSize  int
	strs     *intern.Interner
}

// DefaultMaxDepth bounds nesting when no DecodeMaxDepth is given.
const DefaultMaxDepth = 1 << 20

// DecodeMaxDepth bounds the nesting depth of node encodings. n <= 0 means
// no bound.
func DecodeMaxDepth(n int) DecodeOption {
	return func(o *decodeOpts) { o.maxDepth = n }
}

// DecodeMaxNodes bounds the number of node bodies decoded. Back
// references do not count. n <= 0 means no bound.
func DecodeMaxNodes(n int) DecodeOption {
	return func(o *decodeOpts) { o.maxNodes = n }
}

// DecodeMaxSize rejects inputs longer than n bytes. n <= 0 means no
// bound.
func DecodeMaxSize(n int) DecodeOption {
	return func(o *decodeOpts) { o.maxSize = n }
}

// DecodeInterner makes the session intern into strs instead of a fresh
// interner. Sessions sharing an interner must not run concurrently.
func DecodeInterner(strs *intern.Interner) DecodeOption {
	return func(o *decodeOpts) { o.strs = strs }
}
