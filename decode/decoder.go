package decode

import (
	"bytes"
	"context"

	"github.com/signadot/gbf/cursor"
	"github.com/signadot/gbf/debug"
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"
)

const (
	Magic   = "GBF"
	Version = 1
)

const (
	tagSub     = 'S'
	tagNamed   = 'N'
	tagComment = 'C'
)

// how many node bodies are decoded between context checks
const pollEvery = 4096

// Decoder is one decode session over one buffer. The node and string-ref
// caches live as long as the session; the interner and the nodes it
// produces outlive it.
type Decoder struct {
	cur   *cursor.Cursor
	strs  *intern.Interner
	nodes map[uint32]*irep.Node
	refs  map[uint32]intern.ID
	opts  decodeOpts
	stats Stats
	stack []*frame
}

type phase uint8

const (
	inSub phase = iota
	inNamed
	inComment
)

// frame is a node whose body is being decoded.
type frame struct {
	wid      uint32
	id       intern.ID
	phase    phase
	key      intern.ID
	sub      []*irep.Node
	named    map[intern.ID]*irep.Node
	comments map[intern.ID]*irep.Node
}

func (f *frame) attach(n *irep.Node) {
	switch f.phase {
	case inSub:
		f.sub = append(f.sub, n)
	case inNamed:
		if f.named == nil {
			f.named = map[intern.ID]*irep.Node{}
		}
		f.named[f.key] = n
	case inComment:
		if f.comments == nil {
			f.comments = map[intern.ID]*irep.Node{}
		}
		f.comments[f.key] = n
	}
}

// New starts a session over data. data must not change while the session
// runs.
func New(data []byte, opts ...DecodeOption) *Decoder {
	o := decodeOpts{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.strs == nil {
		o.strs = intern.New()
	}
	return &Decoder{
		cur:   cursor.New(data),
		strs:  o.strs,
		nodes: map[uint32]*irep.Node{},
		refs:  map[uint32]intern.ID{},
		opts:  o,
	}
}

// Decode checks the header and version and decodes the root node. On
// error the session is unusable and any partial result is discarded.
func (d *Decoder) Decode(ctx context.Context) (*irep.Node, error) {
	n, err := d.decode(ctx)
	if debug.Decode() {
		if err != nil {
			debug.Logf("gbf decode: error after %d bytes: %v\n", d.cur.Offset(), err)
		} else {
			debug.Logf("gbf decode: ")
			debug.LogAny(d.Stats())
			debug.Logf("\n")
		}
	}
	return n, err
}

func (d *Decoder) decode(ctx context.Context) (*irep.Node, error) {
	if d.opts.maxSize > 0 && d.cur.Len() > d.opts.maxSize {
		return nil, ErrTooLarge
	}
	if err := d.CheckHeader(); err != nil {
		return nil, err
	}
	if err := d.CheckVersion(); err != nil {
		return nil, err
	}
	return d.ReadNode(ctx)
}

// CheckHeader consumes and checks the 3 magic bytes.
func (d *Decoder) CheckHeader() error {
	found, err := d.cur.ReadN(len(Magic))
	if err != nil {
		rest, _ := d.cur.ReadN(d.cur.Len())
		return &HeaderError{Found: bytes.Clone(rest)}
	}
	if string(found) != Magic {
		return &HeaderError{Found: bytes.Clone(found)}
	}
	return nil
}

// CheckVersion consumes the version word and checks it is supported.
func (d *Decoder) CheckVersion() error {
	v, err := d.cur.ReadWord()
	if err != nil {
		return err
	}
	if v != Version {
		return &VersionError{Version: v}
	}
	return nil
}

// ReadStringRef reads a string reference: a word, followed by the escaped
// string the first time the word is seen.
func (d *Decoder) ReadStringRef() (intern.ID, error) {
	sid, err := d.cur.ReadWord()
	if err != nil {
		return 0, err
	}
	if id, ok := d.refs[sid]; ok {
		d.stats.StringRefs++
		return id, nil
	}
	s, err := d.cur.ReadEscapedString()
	if err != nil {
		return 0, err
	}
	id := d.strs.GetOrIntern(s)
	d.refs[sid] = id
	d.stats.Strings++
	return id, nil
}

// ReadNode decodes one node encoding, including all of its descendants.
// The nesting is tracked on an explicit stack, so the goroutine stack
// does not grow with the depth of the input.
func (d *Decoder) ReadNode(ctx context.Context) (*irep.Node, error) {
	base := len(d.stack)
	n, err := d.begin(ctx)
	if err != nil || n != nil {
		return n, err
	}
	for {
		f := d.stack[len(d.stack)-1]
		b, err := d.cur.Peek()
		if err != nil {
			return nil, err
		}
		var child *irep.Node
		switch {
		case f.phase == inSub && b == tagSub:
			_, _ = d.cur.Get()
			child, err = d.begin(ctx)
		case f.phase <= inNamed && b == tagNamed:
			f.phase = inNamed
			child, err = d.keyed(ctx, f)
		case b == tagComment:
			f.phase = inComment
			child, err = d.keyed(ctx, f)
		default:
			n, err := d.end()
			if err != nil {
				return nil, err
			}
			if len(d.stack) == base {
				return n, nil
			}
			child = n
		}
		if err != nil {
			return nil, err
		}
		if child != nil {
			d.stack[len(d.stack)-1].attach(child)
		}
	}
}

// keyed consumes a tag byte, the key string-ref and begins the child.
func (d *Decoder) keyed(ctx context.Context, f *frame) (*irep.Node, error) {
	_, _ = d.cur.Get()
	k, err := d.ReadStringRef()
	if err != nil {
		return nil, err
	}
	f.key = k
	return d.begin(ctx)
}

// begin reads a node's wire id. An id already in the node cache yields
// the cached node and nothing more is read. Otherwise the identifier is
// read, a frame is pushed and begin returns nil.
func (d *Decoder) begin(ctx context.Context) (*irep.Node, error) {
	off := d.cur.Offset()
	wid, err := d.cur.ReadWord()
	if err != nil {
		return nil, err
	}
	if n, ok := d.nodes[wid]; ok {
		d.stats.NodeRefs++
		return n, nil
	}
	if d.opts.maxDepth > 0 && len(d.stack) >= d.opts.maxDepth {
		return nil, &NodeError{Off: off, WireID: wid, Err: ErrDepth}
	}
	if d.opts.maxNodes > 0 && d.stats.Nodes >= d.opts.maxNodes {
		return nil, &NodeError{Off: off, WireID: wid, Err: ErrTooManyNodes}
	}
	if d.stats.Nodes%pollEvery == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	d.stats.Nodes++
	id, err := d.ReadStringRef()
	if err != nil {
		return nil, err
	}
	d.stack = append(d.stack, &frame{wid: wid, id: id})
	d.stats.MaxDepth = max(d.stats.MaxDepth, len(d.stack))
	return nil, nil
}

// end consumes the terminator of the innermost open node, builds it and
// records it in the node cache.
func (d *Decoder) end() (*irep.Node, error) {
	i := len(d.stack) - 1
	f := d.stack[i]
	off := d.cur.Offset()
	b, err := d.cur.Get()
	if err != nil {
		return nil, err
	}
	if b != 0 {
		return nil, &NodeError{Off: off, WireID: f.wid, Byte: b, Err: ErrUnterminated}
	}
	if _, ok := d.nodes[f.wid]; ok {
		return nil, &NodeError{Off: off, WireID: f.wid, Err: ErrRedefined}
	}
	n := irep.New(f.id, f.sub, f.named, f.comments)
	d.nodes[f.wid] = n
	d.stack[i] = nil
	d.stack = d.stack[:i]
	return n, nil
}

// Interner returns the interner identifiers and keys resolve against.
func (d *Decoder) Interner() *intern.Interner {
	return d.strs
}

func (d *Decoder) Stats() Stats {
	s := d.stats
	s.Bytes = d.cur.Offset()
	s.Trailing = d.cur.Len()
	return s
}

// Decode runs a whole session over data.
func Decode(ctx context.Context, data []byte, opts ...DecodeOption) (*irep.Node, *intern.Interner, error) {
	d := New(data, opts...)
	n, err := d.Decode(ctx)
	if err != nil {
		return nil, nil, err
	}
	return n, d.Interner(), nil
}
