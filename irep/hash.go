package irep

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/signadot/gbf/intern"
)

var seed = maphash.MakeSeed()

// Hash returns the structural hash of n. Equal nodes have equal hashes
// within one process; the value is not stable across processes (see
// Digest for that).
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("irep: Hash called on nil node")
	}
	return n.hash
}

// computeHash combines the already computed hashes of the children, so
// building a node costs time proportional to its own fan-out only.
func (n *Node) computeHash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var b [8]byte

	binary.LittleEndian.PutUint32(b[:4], uint32(n.id))
	h.Write(b[:4])

	h.WriteByte('S')
	for _, c := range n.sub {
		if c == nil {
			panic("irep: nil child")
		}
		binary.LittleEndian.PutUint64(b[:], c.hash)
		h.Write(b[:])
	}

	// map channels are unordered, so entries are combined by addition
	h.WriteByte('N')
	binary.LittleEndian.PutUint64(b[:], entriesHash(n.named))
	h.Write(b[:])

	h.WriteByte('C')
	binary.LittleEndian.PutUint64(b[:], entriesHash(n.comments))
	h.Write(b[:])

	return h.Sum64()
}

func entriesHash(m map[intern.ID]*Node) uint64 {
	var (
		sum uint64
		b   [12]byte
	)
	for k, c := range m {
		if c == nil {
			panic("irep: nil child")
		}
		binary.LittleEndian.PutUint32(b[:4], uint32(k))
		binary.LittleEndian.PutUint64(b[4:], c.hash)
		sum += maphash.Bytes(seed, b[:])
	}
	binary.LittleEndian.PutUint64(b[:8], uint64(len(m)))
	return sum ^ maphash.Bytes(seed, b[:8])
}
