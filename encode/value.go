package encode

import (
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"

	"github.com/fxamacker/cbor/v2"
)

// Value is the structured rendering of a node. A node rendered before
// carries only ID and Ref.
type Value struct {
	ID       string            `json:"id" yaml:"id"`
	Anchor   int               `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Ref      int               `json:"ref,omitempty" yaml:"ref,omitempty"`
	Sub      []*Value          `json:"sub,omitempty" yaml:"sub,omitempty"`
	Named    map[string]*Value `json:"named,omitempty" yaml:"named,omitempty"`
	Comments map[string]*Value `json:"comments,omitempty" yaml:"comments,omitempty"`
	// Elided counts the children left out by Depth.
	Elided int `json:"elided,omitempty" yaml:"elided,omitempty"`
}

// core deterministic encoding: the same tree always gives the same bytes
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encode: cbor mode: " + err.Error())
	}
}

// MarshalCBOR encodes v with the deterministic mode used for Values.
func MarshalCBOR(v any) ([]byte, error) {
	return cborMode.Marshal(v)
}

// ToValue renders n as a Value using the sharing and depth options in
// opts. The format option is ignored.
func ToValue(n *irep.Node, strs *intern.Interner, opts ...EncodeOption) *Value {
	es := &EncState{strs: strs}
	for _, opt := range opts {
		opt(es)
	}
	if es.strs == nil {
		es.strs = intern.New()
	}
	if !es.expand {
		es.shared = sharedNodes(n)
		es.anchors = map[*irep.Node]int{}
	}
	return toValue(n, 0, es)
}

// toValue visits children in the order text rendering does, so anchors
// are numbered the same way in every format.
func toValue(n *irep.Node, depth int, es *EncState) *Value {
	v := &Value{ID: es.strs.MustResolve(n.ID())}
	anchor, ref := es.anchor(n, depth)
	if ref > 0 {
		v.Ref = ref
		return v
	}
	v.Anchor = anchor
	if n.IsLeaf() {
		return v
	}
	if es.elided(n, depth) {
		v.Elided = numChildren(n)
		return v
	}
	for i := 0; i < n.NumSub(); i++ {
		v.Sub = append(v.Sub, toValue(n.Sub(i), depth+1, es))
	}
	if n.NumNamed() > 0 {
		keys := n.NamedKeys()
		irep.SortKeys(keys, es.strs)
		v.Named = make(map[string]*Value, len(keys))
		for _, k := range keys {
			c, _ := n.Named(k)
			v.Named[es.strs.MustResolve(k)] = toValue(c, depth+1, es)
		}
	}
	if n.NumComments() > 0 {
		keys := n.CommentKeys()
		irep.SortKeys(keys, es.strs)
		v.Comments = make(map[string]*Value, len(keys))
		for _, k := range keys {
			c, _ := n.Comment(k)
			v.Comments[es.strs.MustResolve(k)] = toValue(c, depth+1, es)
		}
	}
	return v
}
