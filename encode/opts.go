package encode

import "github.com/signadot/gbf/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Depth limits how many levels of children are rendered. Nodes at the
// limit are rendered without their children. n <= 0 means no limit.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
func EncodeExpand(v bool) EncodeOption {
	return func(es *EncState) { es.expand = v }
}
