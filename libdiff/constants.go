package libdiff

// line prefixes in Write output
const (
	EqualPrefix  = "  "
	InsertPrefix = "+ "
	DeletePrefix = "- "
	SkipFormat   = "@@ %d equal lines @@"
)
