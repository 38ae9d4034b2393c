package irep

import (
	"cmp"
	"slices"
	"strings"

	"github.com/signadot/gbf/intern"
)

// Node is an immutable irep value.
type Node struct {
	id       intern.ID
	sub      []*Node
	named    map[intern.ID]*Node
	comments map[intern.ID]*Node
	hash     uint64
}

// New builds a node and takes ownership of sub, named and comments;
// callers must not modify them afterwards. Nil maps are fine. It panics
// on a nil child.
func New(id intern.ID, sub []*Node, named, comments map[intern.ID]*Node) *Node {
	n := &Node{
		id:       id,
		sub:      sub,
		named:    named,
		comments: comments,
	}
	n.hash = n.computeHash()
	return n
}

// Leaf builds a node with no children.
func Leaf(id intern.ID) *Node {
	return New(id, nil, nil, nil)
}

func (n *Node) ID() intern.ID {
	return n.id
}

func (n *Node) NumSub() int {
	return len(n.sub)
}

// Sub returns the i-th ordered child.
func (n *Node) Sub(i int) *Node {
	return n.sub[i]
}

// Subs returns a copy of the ordered children.
func (n *Node) Subs() []*Node {
	return slices.Clone(n.sub)
}

func (n *Node) Named(k intern.ID) (*Node, bool) {
	c, ok := n.named[k]
	return c, ok
}

func (n *Node) NumNamed() int {
	return len(n.named)
}

// NamedKeys returns the named child keys in id order.
func (n *Node) NamedKeys() []intern.ID {
	return sortedKeys(n.named)
}

func (n *Node) Comment(k intern.ID) (*Node, bool) {
	c, ok := n.comments[k]
	return c, ok
}

func (n *Node) NumComments() int {
	return len(n.comments)
}

// CommentKeys returns the comment keys in id order.
func (n *Node) CommentKeys() []intern.ID {
	return sortedKeys(n.comments)
}

// IsLeaf reports whether n has no children in any channel.
func (n *Node) IsLeaf() bool {
	return len(n.sub) == 0 && len(n.named) == 0 && len(n.comments) == 0
}

func sortedKeys(m map[intern.ID]*Node) []intern.ID {
	if len(m) == 0 {
		return nil
	}
	res := make([]intern.ID, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// SortKeys orders keys by their resolved text, falling back to id order
// for equal text. Output built this way does not depend on the order in
// which strings were first interned.
func SortKeys(keys []intern.ID, strs *intern.Interner) {
	slices.SortFunc(keys, func(a, b intern.ID) int {
		if c := strings.Compare(strs.MustResolve(a), strs.MustResolve(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
