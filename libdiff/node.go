package libdiff

import (
	"bytes"

	"github.com/signadot/gbf/encode"
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"
)

// Nodes diffs the text renderings of from and to. It returns no lines
// and false when the trees are equal. Trees decoded with one interner
// are compared with irep.Equal, others by digest.
func Nodes(from *irep.Node, fromStrs *intern.Interner, to *irep.Node, toStrs *intern.Interner, opts ...encode.EncodeOption) ([]Line, bool, error) {
	if same(from, fromStrs, to, toStrs) {
		return nil, false, nil
	}
	a := bytes.NewBuffer(nil)
	if err := encode.Encode(from, fromStrs, a, opts...); err != nil {
		return nil, false, err
	}
	b := bytes.NewBuffer(nil)
	if err := encode.Encode(to, toStrs, b, opts...); err != nil {
		return nil, false, err
	}
	return Lines(a.String(), b.String()), true, nil
}

func same(from *irep.Node, fromStrs *intern.Interner, to *irep.Node, toStrs *intern.Interner) bool {
	if fromStrs == toStrs {
		return irep.Equal(from, to)
	}
	return irep.Digest(from, fromStrs) == irep.Digest(to, toStrs)
}
