// Package gbftest writes GBF containers for tests.
package gbftest

import (
	"bytes"
	"encoding/binary"
)

// N describes a node to encode. Reusing the same *N in several places
// produces a back reference after the first occurrence.
type N struct {
	ID       string
	Sub      []*N
	Named    []KV
	Comments []KV
}

type KV struct {
	Key string
	Val *N
}

func Leaf(id string) *N {
	return &N{ID: id}
}

// Builder appends raw container pieces. Node and Str assign wire ids and
// emit back references the way the ESBMC writer does.
type Builder struct {
	buf   bytes.Buffer
	nodes map[*N]uint32
	strs  map[string]uint32
}

// New returns a builder that has written a valid header.
func New() *Builder {
	return Raw().Header("GBF", 1)
}

// Raw returns a builder with nothing written.
func Raw() *Builder {
	return &Builder{nodes: map[*N]uint32{}, strs: map[string]uint32{}}
}

func (b *Builder) Header(magic string, version uint32) *Builder {
	b.buf.WriteString(magic)
	return b.Word(version)
}

func (b *Builder) Word(w uint32) *Builder {
	var d [4]byte
	binary.BigEndian.PutUint32(d[:], w)
	b.buf.Write(d[:])
	return b
}

func (b *Builder) Byte(c ...byte) *Builder {
	b.buf.Write(c)
	return b
}

// Escaped writes s with NUL and backslash escaped, then a NUL.
func (b *Builder) Escaped(s string) *Builder {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0 || c == '\\' {
			b.buf.WriteByte('\\')
		}
		b.buf.WriteByte(c)
	}
	b.buf.WriteByte(0)
	return b
}

// Str writes a string reference, with payload only on first use of s.
func (b *Builder) Str(s string) *Builder {
	if sid, ok := b.strs[s]; ok {
		return b.Word(sid)
	}
	sid := uint32(len(b.strs) + 1)
	b.strs[s] = sid
	return b.Word(sid).Escaped(s)
}

// Node writes n, or a back reference if n was written before.
func (b *Builder) Node(n *N) *Builder {
	if wid, ok := b.nodes[n]; ok {
		return b.Word(wid)
	}
	wid := uint32(len(b.nodes) + 1)
	b.nodes[n] = wid
	b.Word(wid).Str(n.ID)
	for _, c := range n.Sub {
		b.Byte('S').Node(c)
	}
	for _, kv := range n.Named {
		b.Byte('N').Str(kv.Key).Node(kv.Val)
	}
	for _, kv := range n.Comments {
		b.Byte('C').Str(kv.Key).Node(kv.Val)
	}
	return b.Byte(0)
}

func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Encode returns a complete container holding root.
func Encode(root *N) []byte {
	return New().Node(root).Bytes()
}
