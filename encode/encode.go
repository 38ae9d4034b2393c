package encode

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/gbf/format"
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"

	"github.com/goccy/go-yaml"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent   int
	maxDepth int
	expand   bool

	format format.Format
	strs   *intern.Interner

	// nodes with more than one parent edge, and the anchors given to
	// those already rendered
	shared  map[*irep.Node]bool
	anchors map[*irep.Node]int

	Color func(ColorAttr, string) string
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

// anchor reports how n should be rendered at this occurrence: ref > 0
// means n was rendered before, anchor > 0 means this is the first of
// several occurrences. An elided occurrence does not count as rendered.
func (es *EncState) anchor(n *irep.Node, depth int) (anchor, ref int) {
	if es.expand || !es.shared[n] {
		return 0, 0
	}
	if a, ok := es.anchors[n]; ok {
		return 0, a
	}
	if es.elided(n, depth) {
		return 0, 0
	}
	a := len(es.anchors) + 1
	es.anchors[n] = a
	return a, 0
}

func (es *EncState) elided(n *irep.Node, depth int) bool {
	return es.maxDepth > 0 && depth >= es.maxDepth && !n.IsLeaf()
}

func Encode(node *irep.Node, strs *intern.Interner, w io.Writer, opts ...EncodeOption) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	es := &EncState{
		indent: 2,
		strs:   strs,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.strs == nil {
		es.strs = intern.New()
	}
	if !es.expand {
		es.shared = sharedNodes(node)
		es.anchors = map[*irep.Node]int{}
	}
	switch es.format {
	case format.TextFormat:
		bw := bufio.NewWriter(w)
		encodeText(bw, node, 0, es)
		return bw.Flush()
	case format.JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toValue(node, 0, es))
	case format.YAMLFormat:
		d, err := yaml.Marshal(toValue(node, 0, es))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		_, err = w.Write(d)
		return err
	case format.CBORFormat:
		d, err := cborMode.Marshal(toValue(node, 0, es))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		_, err = w.Write(d)
		return err
	}
	return fmt.Errorf("%w: unsupported format %s", ErrEncoding, es.format)
}

// sharedNodes finds the nodes that would be rendered more than once.
func sharedNodes(root *irep.Node) map[*irep.Node]bool {
	refs := map[*irep.Node]int{}
	res := map[*irep.Node]bool{}
	stack := []*irep.Node{root}
	edge := func(c *irep.Node) {
		refs[c]++
		switch refs[c] {
		case 1:
			stack = append(stack, c)
		case 2:
			res[c] = true
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := 0; i < n.NumSub(); i++ {
			edge(n.Sub(i))
		}
		for _, k := range n.NamedKeys() {
			c, _ := n.Named(k)
			edge(c)
		}
		for _, k := range n.CommentKeys() {
			c, _ := n.Comment(k)
			edge(c)
		}
	}
	return res
}

func numChildren(n *irep.Node) int {
	return n.NumSub() + n.NumNamed() + n.NumComments()
}

// encodeText writes n starting at the current column. Errors stick in w
// and are reported by Flush.
func encodeText(w *bufio.Writer, n *irep.Node, depth int, es *EncState) {
	anchor, ref := es.anchor(n, depth)
	if ref > 0 {
		w.WriteString(es.color(RefColor, "*"+strconv.Itoa(ref)) + "\n")
		return
	}
	if anchor > 0 {
		w.WriteString(es.color(AnchorColor, "&"+strconv.Itoa(anchor)) + " ")
	}
	w.WriteString(es.color(IDColor, quote(es.strs.MustResolve(n.ID()))))
	if n.IsLeaf() {
		w.WriteByte('\n')
		return
	}
	if es.elided(n, depth) {
		w.WriteString(" " + es.color(ElidedColor, "...") + "\n")
		return
	}
	w.WriteByte('\n')
	ind := strings.Repeat(" ", es.indent*(depth+1))
	for i := 0; i < n.NumSub(); i++ {
		w.WriteString(ind + es.color(SepColor, "-") + " ")
		encodeText(w, n.Sub(i), depth+1, es)
	}
	keys := n.NamedKeys()
	irep.SortKeys(keys, es.strs)
	for _, k := range keys {
		c, _ := n.Named(k)
		w.WriteString(ind + es.color(FieldColor, quote(es.strs.MustResolve(k))) + es.color(SepColor, ":") + " ")
		encodeText(w, c, depth+1, es)
	}
	keys = n.CommentKeys()
	irep.SortKeys(keys, es.strs)
	for _, k := range keys {
		c, _ := n.Comment(k)
		key := es.strs.MustResolve(k)
		if strings.ContainsRune(key, '}') {
			key = strconv.Quote(key)
		}
		w.WriteString(ind + es.color(CommentColor, "{"+key+"}") + es.color(SepColor, ":") + " ")
		encodeText(w, c, depth+1, es)
	}
}

// quote quotes s when it could not be read back unambiguously from a text
// rendering.
func quote(s string) string {
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" || strings.ContainsRune("&*-{\"' ", rune(s[0])) || s[len(s)-1] == ' ' {
		return true
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return true
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f || r == '\\' || r == '\uFFFD' {
			return true
		}
	}
	return false
}
