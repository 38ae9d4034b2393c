package libdiff

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/signadot/gbf/decode"
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/internal/gbftest"
	"github.com/signadot/gbf/irep"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nB\nc\nd\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "B"},
		{Equal, "c"},
		{Insert, "d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Errorf("expected a change")
	}
	if Changed(Lines("x\n", "x\n")) {
		t.Errorf("equal text reported as changed")
	}
}

func TestLinesNoTrailingNewline(t *testing.T) {
	got := Lines("a", "a\nb")
	want := []Line{{Delete, "a"}, {Insert, "a"}, {Insert, "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func tree(width string) *gbftest.N {
	return &gbftest.N{
		ID: "code",
		Sub: []*gbftest.N{
			{ID: "symbol", Named: []gbftest.KV{{Key: "type", Val: &gbftest.N{ID: "signedbv", Named: []gbftest.KV{{Key: "width", Val: gbftest.Leaf(width)}}}}}},
		},
	}
}

func decodeTree(t *testing.T, n *gbftest.N, opts ...decode.DecodeOption) (*irep.Node, *intern.Interner) {
	t.Helper()
	root, strs, err := decode.Decode(context.Background(), gbftest.Encode(n), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return root, strs
}

func TestNodes(t *testing.T) {
	a, as := decodeTree(t, tree("32"))
	b, bs := decodeTree(t, tree("64"))
	lines, changed, err := Nodes(a, as, b, bs)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected a difference")
	}
	want := []Line{
		{Equal, "code"},
		{Equal, "  - symbol"},
		{Equal, "    type: signedbv"},
		{Delete, "      width: 32"},
		{Insert, "      width: 64"},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNodesEqual(t *testing.T) {
	a, as := decodeTree(t, tree("32"))
	b, bs := decodeTree(t, tree("32"))
	if _, changed, err := Nodes(a, as, b, bs); err != nil || changed {
		t.Errorf("separate interners: changed=%v err=%v", changed, err)
	}
	c, _ := decodeTree(t, tree("32"), decode.DecodeInterner(as))
	if _, changed, err := Nodes(a, as, c, as); err != nil || changed {
		t.Errorf("shared interner: changed=%v err=%v", changed, err)
	}
}

func TestWrite(t *testing.T) {
	lines := Lines("a\nb\nc\nd\ne\nf\n", "a\nb\nc\nd\ne\nF\n")
	buf := bytes.NewBuffer(nil)
	if err := Write(buf, lines); err != nil {
		t.Fatal(err)
	}
	want := "  a\n  b\n  c\n  d\n  e\n- f\n+ F\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := Write(buf, lines, Context(1)); err != nil {
		t.Fatal(err)
	}
	want = "@@ 4 equal lines @@\n  e\n- f\n+ F\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := Write(buf, lines, Colored(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape sequences in %q", buf.String())
	}
}
