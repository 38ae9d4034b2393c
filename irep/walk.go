package irep

import (
	"strconv"

	"github.com/signadot/gbf/intern"
)

// Kind says how a node was reached from its parent.
type Kind int

const (
	RootKind Kind = iota
	SubKind
	NamedKind
	CommentKind
)

func (k Kind) String() string {
	switch k {
	case RootKind:
		return "root"
	case SubKind:
		return "sub"
	case NamedKind:
		return "named"
	case CommentKind:
		return "comment"
	}
	return "<unknown kind>"
}

// Step is one occurrence of a node during Walk.
type Step struct {
	Node  *Node
	Kind  Kind
	Index int       // position among the ordered children, for SubKind
	Key   intern.ID // for NamedKind and CommentKind
	Path  string
	Depth int
	// Seen is set when Node was already visited at an earlier step.
	Seen bool
}

// WalkFunc is called for each step. Returning false skips the children of
// the step's node.
type WalkFunc func(s *Step) (bool, error)

// Walk visits root and its descendants in pre-order: ordered children,
// then named children, then comments, map entries sorted by key text.
// Shared nodes are reported at every occurrence, with Seen set after the
// first; callers that want each distinct node once return false on Seen.
// Walk uses an explicit stack, so deep values do not grow the goroutine
// stack.
func Walk(root *Node, strs *intern.Interner, fn WalkFunc) error {
	seen := map[*Node]struct{}{}
	stack := []*Step{{Node: root, Kind: RootKind, Path: "$"}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		_, s.Seen = seen[s.Node]
		seen[s.Node] = struct{}{}
		descend, err := fn(s)
		if err != nil {
			return err
		}
		if !descend {
			continue
		}
		stack = pushChildren(stack, s, strs)
	}
	return nil
}

// pushChildren pushes the children of s in reverse so they pop in order.
func pushChildren(stack []*Step, s *Step, strs *intern.Interner) []*Step {
	n := s.Node
	d := s.Depth + 1
	keys := n.CommentKeys()
	SortKeys(keys, strs)
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		stack = append(stack, &Step{
			Node:  n.comments[k],
			Kind:  CommentKind,
			Key:   k,
			Path:  s.Path + "{" + commentString(strs.MustResolve(k)) + "}",
			Depth: d,
		})
	}
	keys = n.NamedKeys()
	SortKeys(keys, strs)
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		stack = append(stack, &Step{
			Node:  n.named[k],
			Kind:  NamedKind,
			Key:   k,
			Path:  s.Path + "." + pathString(strs.MustResolve(k)),
			Depth: d,
		})
	}
	for i := len(n.sub) - 1; i >= 0; i-- {
		stack = append(stack, &Step{
			Node:  n.sub[i],
			Kind:  SubKind,
			Index: i,
			Path:  s.Path + "[" + strconv.Itoa(i) + "]",
			Depth: d,
		})
	}
	return stack
}

// Shape summarizes the size of a decoded value.
type Shape struct {
	// Distinct is the number of distinct nodes.
	Distinct int
	// Occurrences is the number of nodes the value would have if every
	// shared node were copied at each use. It saturates at MaxUint64.
	Occurrences uint64
	// Shared is the number of distinct nodes with more than one parent
	// edge.
	Shared int
	// Height is the number of edges on the longest root to leaf path.
	Height int
}

// Measure computes the Shape of root.
func Measure(root *Node) Shape {
	m := &measurer{
		size:   map[*Node]uint64{},
		height: map[*Node]int{},
		refs:   map[*Node]int{},
	}
	m.visit(root)
	res := Shape{
		Distinct:    len(m.size),
		Occurrences: m.size[root],
		Height:      m.height[root],
	}
	for _, r := range m.refs {
		if r > 1 {
			res.Shared++
		}
	}
	return res
}

type measurer struct {
	size   map[*Node]uint64
	height map[*Node]int
	refs   map[*Node]int
}

func (m *measurer) visit(n *Node) {
	if _, ok := m.size[n]; ok {
		return
	}
	size := uint64(1)
	height := 0
	child := func(c *Node) {
		m.refs[c]++
		m.visit(c)
		size = satAdd(size, m.size[c])
		height = max(height, m.height[c]+1)
	}
	for _, c := range n.sub {
		child(c)
	}
	for _, c := range n.named {
		child(c)
	}
	for _, c := range n.comments {
		child(c)
	}
	m.size[n] = size
	m.height[n] = height
}

func satAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}
