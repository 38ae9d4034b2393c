package decode

// Stats counts what a session has read so far.
type Stats struct {
	// Bytes is the number of bytes consumed.
	Bytes int `json:"bytes"`
	// Trailing is the number of bytes left after the last read. A
	// complete session normally leaves none; they are not an error.
	Trailing int `json:"trailing"`
	// Nodes is the number of node bodies decoded.
	Nodes int `json:"nodes"`
	// NodeRefs is the number of node back references.
	NodeRefs int `json:"nodeRefs"`
	// Strings is the number of string payloads decoded.
	Strings int `json:"strings"`
	// StringRefs is the number of string back references.
	StringRefs int `json:"stringRefs"`
	// MaxDepth is the largest number of node bodies open at once.
	MaxDepth int `json:"maxDepth"`
}
