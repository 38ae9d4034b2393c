package irep

import (
	"encoding/binary"

	"github.com/signadot/gbf/intern"

	"github.com/zeebo/blake3"
)

// Digest returns a BLAKE3 digest of the content of n. Identifiers and keys
// are hashed by their text, and map entries in text order, so two nodes
// decoded into different interners, or in different processes, have the
// same digest exactly when they are equal.
func Digest(n *Node, strs *intern.Interner) [32]byte {
	d := &digester{strs: strs, memo: map[*Node][32]byte{}}
	return d.digest(n)
}

type digester struct {
	strs *intern.Interner
	memo map[*Node][32]byte
	buf  [8]byte
}

func (d *digester) digest(n *Node) [32]byte {
	if sum, ok := d.memo[n]; ok {
		return sum
	}
	h := blake3.New()
	d.str(h, n.id)
	d.count(h, 'S', len(n.sub))
	for _, c := range n.sub {
		sum := d.digest(c)
		h.Write(sum[:])
	}
	d.entries(h, 'N', n.named)
	d.entries(h, 'C', n.comments)

	var res [32]byte
	copy(res[:], h.Sum(nil))
	d.memo[n] = res
	return res
}

func (d *digester) entries(h *blake3.Hasher, tag byte, m map[intern.ID]*Node) {
	d.count(h, tag, len(m))
	keys := sortedKeys(m)
	SortKeys(keys, d.strs)
	for _, k := range keys {
		d.str(h, k)
		sum := d.digest(m[k])
		h.Write(sum[:])
	}
}

func (d *digester) count(h *blake3.Hasher, tag byte, n int) {
	h.Write([]byte{tag})
	binary.BigEndian.PutUint64(d.buf[:], uint64(n))
	h.Write(d.buf[:])
}

func (d *digester) str(h *blake3.Hasher, id intern.ID) {
	s := d.strs.MustResolve(id)
	binary.BigEndian.PutUint64(d.buf[:], uint64(len(s)))
	h.Write(d.buf[:])
	h.Write([]byte(s))
}
