package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"
)

func MustString(node *irep.Node, strs *intern.Interner, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, strs, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
