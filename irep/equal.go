package irep

import "github.com/signadot/gbf/intern"

// Equal reports whether a and b are structurally equal: same identifier,
// pairwise equal ordered children, and equal named and comment maps.
// Two nil nodes are equal.
func Equal(a, b *Node) bool {
	e := &equaler{}
	return e.equal(a, b)
}

type pair struct{ a, b *Node }

// equaler remembers pairs already shown equal so that shared
// substructure is compared once.
type equaler struct {
	same map[pair]struct{}
}

func (e *equaler) equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.hash != b.hash || a.id != b.id {
		return false
	}
	if len(a.sub) != len(b.sub) || len(a.named) != len(b.named) || len(a.comments) != len(b.comments) {
		return false
	}
	p := pair{a, b}
	if _, ok := e.same[p]; ok {
		return true
	}
	for i := range a.sub {
		if !e.equal(a.sub[i], b.sub[i]) {
			return false
		}
	}
	if !e.equalMaps(a.named, b.named) || !e.equalMaps(a.comments, b.comments) {
		return false
	}
	if e.same == nil {
		e.same = make(map[pair]struct{})
	}
	e.same[p] = struct{}{}
	return true
}

func (e *equaler) equalMaps(a, b map[intern.ID]*Node) bool {
	for k, ac := range a {
		bc, ok := b[k]
		if !ok || !e.equal(ac, bc) {
			return false
		}
	}
	return true
}
