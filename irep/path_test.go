package irep

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pathFixture() (*builder, *Node) {
	b := newBuilder()
	loc := b.node("location", nil, map[string]*Node{"line": b.leaf("12")}, nil)
	typ := b.node("signedbv", nil, map[string]*Node{"width": b.leaf("32")}, map[string]*Node{"#location": loc})
	root := b.node("code",
		[]*Node{b.leaf("first"), b.node("second", []*Node{b.leaf("inner")}, nil, nil)},
		map[string]*Node{"type": typ, "a.b": b.leaf("dotted")},
		nil)
	return b, root
}

func TestParsePathString(t *testing.T) {
	for _, p := range []string{
		"$",
		"$[0]",
		"$.type",
		"$.type.width",
		"$.'a.b'",
		"$.type{#location}.line",
		`${"#a}b"}.line`,
		"$[*]",
		"$..",
		"$[1][0]",
	} {
		pp, err := ParsePath(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if got := pp.String(); got != p {
			t.Errorf("String() = %q, want %q", got, p)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"", "type", "$type", "$[x]", "$[1", "$.'abc", "${abc", "$.", "$[-1]", `${"abc}`, `${"abc"x}`} {
		if _, err := ParsePath(p); err == nil {
			t.Errorf("%q: expected error", p)
		}
	}
}

func TestGet(t *testing.T) {
	b, root := pathFixture()
	tests := []struct {
		path string
		want string
	}{
		{"$", "code"},
		{"$[0]", "first"},
		{"$[1][0]", "inner"},
		{"$.type", "signedbv"},
		{"$.type.width", "32"},
		{"$.'a.b'", "dotted"},
		{"$.type{#location}.line", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, err := Get(root, b.strs, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.strs.MustResolve(n.ID()); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	b, root := pathFixture()
	for _, p := range []string{"$[2]", "$.nope", "$.type{#nope}", "${#location}", "$.width"} {
		n, err := Get(root, b.strs, p)
		if !errors.Is(err, ErrNoPath) {
			t.Errorf("%s: got %v, %v", p, n, err)
		}
	}
	if _, err := Get(root, b.strs, "$[*]"); err == nil {
		t.Errorf("expected error for [*] in get")
	}
}

func TestList(t *testing.T) {
	b, root := pathFixture()
	ids := func(ns []*Node) []string {
		var res []string
		for _, n := range ns {
			res = append(res, b.strs.MustResolve(n.ID()))
		}
		return res
	}
	tests := []struct {
		path string
		want []string
	}{
		{"$[*]", []string{"first", "second"}},
		{"$[*][0]", []string{"inner"}},
		{"$.missing", nil},
		{"$..width", []string{"32"}},
		{"$..line", []string{"12"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := List(nil, root, b.strs, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, ids(res)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	b := newBuilder()
	shared := b.leaf("shared")
	root := b.node("root",
		[]*Node{shared, shared},
		map[string]*Node{"f": shared},
		map[string]*Node{"#c": b.leaf("c")})
	var got []string
	err := Walk(root, b.strs, func(s *Step) (bool, error) {
		tag := ""
		if s.Seen {
			tag = " seen"
		}
		got = append(got, s.Kind.String()+" "+s.Path+tag)
		return !s.Seen, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"root $",
		"sub $[0]",
		"sub $[1] seen",
		"named $.f seen",
		"comment ${#c}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWalkPathsResolve(t *testing.T) {
	b := newBuilder()
	root := b.node("root", nil,
		map[string]*Node{"x.y": b.leaf("dotted")},
		map[string]*Node{
			"#a}b":   b.leaf("brace"),
			`"quote`: b.leaf("quote"),
			"#plain": b.node("loc", nil, map[string]*Node{"line": b.leaf("3")}, nil),
		})
	var paths []string
	err := Walk(root, b.strs, func(s *Step) (bool, error) {
		paths = append(paths, s.Path)
		n, err := Get(root, b.strs, s.Path)
		if err != nil {
			return false, err
		}
		if n != s.Node {
			t.Errorf("%s resolves to %s", s.Path, b.strs.MustResolve(n.ID()))
		}
		return true, nil
	})
	if err != nil {
		t.Fatalf("%v (paths %q)", err, paths)
	}
	want := []string{
		"$",
		"$.'x.y'",
		`${"\"quote"}`,
		`${"#a}b"}`,
		"${#plain}",
		"${#plain}.line",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
