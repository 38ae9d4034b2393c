package irep

import (
	"fmt"
	"testing"

	"github.com/signadot/gbf/intern"
)

type builder struct {
	strs *intern.Interner
}

func newBuilder() *builder {
	return &builder{strs: intern.New()}
}

func (b *builder) leaf(id string) *Node {
	return Leaf(b.strs.GetOrIntern(id))
}

func (b *builder) node(id string, sub []*Node, named, comments map[string]*Node) *Node {
	return New(b.strs.GetOrIntern(id), sub, b.keyed(named), b.keyed(comments))
}

func (b *builder) keyed(m map[string]*Node) map[intern.ID]*Node {
	if m == nil {
		return nil
	}
	res := make(map[intern.ID]*Node, len(m))
	for k, v := range m {
		res[b.strs.GetOrIntern(k)] = v
	}
	return res
}

func TestLeaf(t *testing.T) {
	b := newBuilder()
	n := b.leaf("test_id")
	if !n.IsLeaf() || n.NumSub() != 0 || n.NumNamed() != 0 || n.NumComments() != 0 {
		t.Errorf("leaf has children")
	}
	if b.strs.MustResolve(n.ID()) != "test_id" {
		t.Errorf("id %q", b.strs.MustResolve(n.ID()))
	}
	if b.leaf("test_id").ID() != n.ID() {
		t.Errorf("same text, different ids")
	}
	if b.leaf("other").ID() == n.ID() {
		t.Errorf("different text, same id")
	}
}

func TestSubOrder(t *testing.T) {
	b := newBuilder()
	var sub []*Node
	for i := 0; i < 5; i++ {
		sub = append(sub, b.leaf(fmt.Sprintf("child_%d", i)))
	}
	n := b.node("parent", sub, nil, nil)
	if n.NumSub() != 5 {
		t.Fatalf("NumSub %d", n.NumSub())
	}
	for i := range sub {
		if n.Sub(i) != sub[i] {
			t.Errorf("child %d out of order", i)
		}
	}
	subs := n.Subs()
	subs[0] = nil
	if n.Sub(0) == nil {
		t.Errorf("Subs aliases node storage")
	}
}

func TestNamedAndComments(t *testing.T) {
	b := newBuilder()
	child := b.leaf("child")
	comment := b.leaf("comment_text")
	n := b.node("node", nil,
		map[string]*Node{"field": child},
		map[string]*Node{"#location": comment})

	field, _ := b.strs.Lookup("field")
	loc, _ := b.strs.Lookup("#location")
	if c, ok := n.Named(field); !ok || c != child {
		t.Errorf("named lookup")
	}
	if _, ok := n.Named(loc); ok {
		t.Errorf("comment key visible as named child")
	}
	if c, ok := n.Comment(loc); !ok || c != comment {
		t.Errorf("comment lookup")
	}
	if len(n.NamedKeys()) != 1 || len(n.CommentKeys()) != 1 {
		t.Errorf("keys %v %v", n.NamedKeys(), n.CommentKeys())
	}
}

func TestEqual(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"empty", b.leaf("test"), b.leaf("test"), true},
		{"different ids", b.leaf("id1"), b.leaf("id2"), false},
		{"nil nil", nil, nil, true},
		{"nil node", nil, b.leaf("x"), false},
		{"same sub",
			b.node("parent", []*Node{b.leaf("child")}, nil, nil),
			b.node("parent", []*Node{b.leaf("child")}, nil, nil),
			true},
		{"sub count",
			b.node("parent", []*Node{b.leaf("child")}, nil, nil),
			b.leaf("parent"),
			false},
		{"sub order",
			b.node("p", []*Node{b.leaf("a"), b.leaf("b")}, nil, nil),
			b.node("p", []*Node{b.leaf("b"), b.leaf("a")}, nil, nil),
			false},
		{"duplicate subs",
			b.node("p", []*Node{b.leaf("a"), b.leaf("a")}, nil, nil),
			b.node("p", []*Node{b.leaf("a"), b.leaf("a")}, nil, nil),
			true},
		{"same named",
			b.node("parent", nil, map[string]*Node{"field": b.leaf("child")}, nil),
			b.node("parent", nil, map[string]*Node{"field": b.leaf("child")}, nil),
			true},
		{"named value",
			b.node("parent", nil, map[string]*Node{"field": b.leaf("a")}, nil),
			b.node("parent", nil, map[string]*Node{"field": b.leaf("b")}, nil),
			false},
		{"named key",
			b.node("parent", nil, map[string]*Node{"f": b.leaf("a")}, nil),
			b.node("parent", nil, map[string]*Node{"g": b.leaf("a")}, nil),
			false},
		{"same comments",
			b.node("node", nil, nil, map[string]*Node{"comment": b.leaf("c")}),
			b.node("node", nil, nil, map[string]*Node{"comment": b.leaf("c")}),
			true},
		{"channel matters",
			b.node("node", nil, map[string]*Node{"k": b.leaf("c")}, nil),
			b.node("node", nil, nil, map[string]*Node{"k": b.leaf("c")}),
			false},
		{"mixed",
			b.node("complex",
				[]*Node{b.leaf("subt_child")},
				map[string]*Node{"field": b.leaf("named_child")},
				map[string]*Node{"comment": b.leaf("comment")}),
			b.node("complex",
				[]*Node{b.leaf("subt_child")},
				map[string]*Node{"field": b.leaf("named_child")},
				map[string]*Node{"comment": b.leaf("comment")}),
			true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.want)
			}
			if tt.want && tt.a != nil && tt.a.Hash() != tt.b.Hash() {
				t.Errorf("equal nodes hash differently")
			}
		})
	}
}

func TestHashConsistency(t *testing.T) {
	b := newBuilder()
	n := b.node("p", []*Node{b.leaf("c")}, map[string]*Node{"f": b.leaf("x")}, nil)
	if n.Hash() != n.Hash() {
		t.Errorf("hash not stable")
	}
	// map insertion order is irrelevant
	m1 := map[string]*Node{"a": b.leaf("1"), "b": b.leaf("2"), "c": b.leaf("3")}
	m2 := map[string]*Node{"c": b.leaf("3"), "a": b.leaf("1"), "b": b.leaf("2")}
	if b.node("p", nil, m1, nil).Hash() != b.node("p", nil, m2, nil).Hash() {
		t.Errorf("hash depends on map order")
	}
}

// a chain where every level references the level below twice expands to
// 2^depth nodes; equality must not walk the expansion.
func TestEqualSharedChain(t *testing.T) {
	chain := func(b *builder, depth int) *Node {
		n := b.leaf("bottom")
		for i := 0; i < depth; i++ {
			n = b.node("level", []*Node{n, n}, nil, nil)
		}
		return n
	}
	b := newBuilder()
	x, y := chain(b, 200), chain(b, 200)
	if x == y {
		t.Fatal("chains should be distinct")
	}
	if !Equal(x, y) {
		t.Errorf("chains differ")
	}
	s := Measure(x)
	if s.Distinct != 201 || s.Height != 200 || s.Occurrences != ^uint64(0) {
		t.Errorf("shape %+v", s)
	}
	if s.Shared != 200 {
		t.Errorf("shared %d", s.Shared)
	}
}

func TestDigest(t *testing.T) {
	b1, b2 := newBuilder(), newBuilder()
	// intern in a different order so ids differ
	b2.strs.GetOrIntern("zzz")
	b2.strs.GetOrIntern("field")
	mk := func(b *builder) *Node {
		return b.node("parent",
			[]*Node{b.leaf("child")},
			map[string]*Node{"field": b.leaf("v"), "aaa": b.leaf("w")},
			map[string]*Node{"#c": b.leaf("c")})
	}
	n1, n2 := mk(b1), mk(b2)
	if Digest(n1, b1.strs) != Digest(n2, b2.strs) {
		t.Errorf("digest depends on interner")
	}
	n3 := b1.node("parent", []*Node{b1.leaf("child")}, nil, nil)
	if Digest(n1, b1.strs) == Digest(n3, b1.strs) {
		t.Errorf("different nodes share digest")
	}
}
