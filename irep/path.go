package irep

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/gbf/intern"
)

var ErrNoPath = errors.New("no such path")

type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Comment  *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	for x != nil {
		switch {
		case x.Subtree:
			buf.WriteString("..")
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Field != nil:
			buf.WriteString("." + pathString(*x.Field))
		case x.Comment != nil:
			buf.WriteString("{" + commentString(*x.Comment) + "}")
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
		x = x.Next
	}
	return buf.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("path %q should start with '$'", p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("path %q: %w", p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	var rest string
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			rest = frag[2:]
			if rest != "" && strings.IndexByte(".[{", rest[0]) == -1 {
				rest = "." + rest
			}
			break
		}
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		rest = frag[i+2:]
	case '{':
		if len(frag) > 1 && frag[1] == '"' {
			q, err := strconv.QuotedPrefix(frag[1:])
			if err != nil {
				return fmt.Errorf("comment key: %w", err)
			}
			end := 1 + len(q)
			if end >= len(frag) || frag[end] != '}' {
				return fmt.Errorf("expected '}' after quoted comment key")
			}
			key, _ := strconv.Unquote(q)
			parent.Comment = &key
			rest = frag[end+1:]
			break
		}
		i := strings.IndexByte(frag[1:], '}')
		if i == -1 {
			return fmt.Errorf("expected '{' <comment> '}'")
		}
		key := frag[1 : i+1]
		parent.Comment = &key
		rest = frag[i+2:]
	default:
		return fmt.Errorf("expected '.', '[' or '{'")
	}
	if len(rest) == 0 {
		return nil
	}
	next := &Path{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[{")
		if i == -1 {
			return frag, "", nil
		}
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]{}\\") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// commentString quotes comment keys that would end the braces early.
func commentString(k string) string {
	if strings.ContainsRune(k, '}') || strings.HasPrefix(k, "\"") {
		return strconv.Quote(k)
	}
	return k
}

// Get resolves path from n. Field and comment names are looked up in
// strs without interning them.
func Get(n *Node, strs *intern.Interner, path string) (*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	res := n
	for p != nil {
		switch {
		case p.IndexAll:
			return nil, fmt.Errorf("any index in get")
		case p.Subtree:
			return nil, fmt.Errorf("recurse .. in get")
		case p.Index != nil:
			i := *p.Index
			if i >= len(res.sub) {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d)", ErrNoPath, i, len(res.sub))
			}
			res = res.sub[i]
		case p.Field != nil:
			c, ok := lookup(res.named, strs, *p.Field)
			if !ok {
				return nil, fmt.Errorf("%w: no named child %q", ErrNoPath, *p.Field)
			}
			res = c
		case p.Comment != nil:
			c, ok := lookup(res.comments, strs, *p.Comment)
			if !ok {
				return nil, fmt.Errorf("%w: no comment %q", ErrNoPath, *p.Comment)
			}
			res = c
		}
		p = p.Next
	}
	return res, nil
}

func lookup(m map[intern.ID]*Node, strs *intern.Interner, name string) (*Node, bool) {
	k, ok := strs.Lookup(name)
	if !ok {
		return nil, false
	}
	c, ok := m[k]
	return c, ok
}

// List appends to dst every node matched by path. Unlike Get, it accepts
// [*] and .. and reports no error for paths that match nothing.
func List(dst []*Node, n *Node, strs *intern.Interner, path string) ([]*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return listPath(dst, n, strs, p)
}

func listPath(dst []*Node, n *Node, strs *intern.Interner, p *Path) ([]*Node, error) {
	if p == nil {
		return append(dst, n), nil
	}
	var err error
	switch {
	case p.Subtree:
		werr := Walk(n, strs, func(s *Step) (bool, error) {
			if s.Seen {
				return false, nil
			}
			dst, err = listPath(dst, s.Node, strs, p.Next)
			return err == nil, err
		})
		return dst, werr
	case p.IndexAll:
		for _, c := range n.sub {
			if dst, err = listPath(dst, c, strs, p.Next); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case p.Index != nil:
		if *p.Index < len(n.sub) {
			return listPath(dst, n.sub[*p.Index], strs, p.Next)
		}
		return dst, nil
	case p.Field != nil:
		if c, ok := lookup(n.named, strs, *p.Field); ok {
			return listPath(dst, c, strs, p.Next)
		}
		return dst, nil
	case p.Comment != nil:
		if c, ok := lookup(n.comments, strs, *p.Comment); ok {
			return listPath(dst, c, strs, p.Next)
		}
		return dst, nil
	}
	return listPath(dst, n, strs, p.Next)
}
