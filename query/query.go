// Package query selects nodes of a decoded tree with boolean expr-lang
// expressions.
//
// An expression is evaluated once per node with these variables:
//
//	id         identifier text
//	path       path of the node, e.g. "$[0].type"
//	depth      number of edges from the root
//	nsub       number of ordered children
//	nnamed     number of named children
//	ncomments  number of comment children
//
// and these functions:
//
//	named(k)   identifier of the named child k, or ""
//	comment(k) identifier of the comment child k, or ""
//	has(k)     whether a named or comment child k exists
//	sub(i)     identifier of the i-th ordered child, or ""
//	getpath(p) identifier of the node at path p relative to this one, or ""
//
// For example
//
//	id == "symbol" && named("identifier") startsWith "c:@F@main"
package query

import (
	"fmt"

	"github.com/signadot/gbf/debug"
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query is a compiled expression. It is not safe for concurrent use.
type Query struct {
	src  string
	prg  *vm.Program
	cur  *irep.Node
	strs *intern.Interner
}

func sampleEnv() map[string]any {
	return map[string]any{
		"id":        "",
		"path":      "",
		"depth":     0,
		"nsub":      0,
		"nnamed":    0,
		"ncomments": 0,
	}
}

func Compile(src string) (*Query, error) {
	q := &Query{src: src}
	opts := append([]expr.Option{expr.Env(sampleEnv()), expr.AsBool()}, q.funcs()...)
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	if debug.Query() {
		debug.Logf("gbf query: compiled %q\n", src)
	}
	q.prg = prg
	return q, nil
}

func (q *Query) String() string {
	return q.src
}

func (q *Query) idOf(n *irep.Node, ok bool) string {
	if !ok {
		return ""
	}
	return q.strs.MustResolve(n.ID())
}

func (q *Query) funcs() []expr.Option {
	return []expr.Option{
		expr.Function("named", func(params ...any) (any, error) {
			return q.idOf(q.child(params[0].(string), false)), nil
		},
			new(func(string) string)),
		expr.Function("comment", func(params ...any) (any, error) {
			return q.idOf(q.child(params[0].(string), true)), nil
		},
			new(func(string) string)),
		expr.Function("has", func(params ...any) (any, error) {
			k := params[0].(string)
			_, named := q.child(k, false)
			_, comment := q.child(k, true)
			return named || comment, nil
		},
			new(func(string) bool)),
		expr.Function("sub", func(params ...any) (any, error) {
			i := params[0].(int)
			if i < 0 || i >= q.cur.NumSub() {
				return "", nil
			}
			return q.strs.MustResolve(q.cur.Sub(i).ID()), nil
		},
			new(func(int) string)),
		expr.Function("getpath", func(params ...any) (any, error) {
			n, err := irep.Get(q.cur, q.strs, params[0].(string))
			return q.idOf(n, err == nil), nil
		},
			new(func(string) string)),
	}
}

func (q *Query) child(k string, comment bool) (*irep.Node, bool) {
	id, ok := q.strs.Lookup(k)
	if !ok {
		return nil, false
	}
	if comment {
		return q.cur.Comment(id)
	}
	return q.cur.Named(id)
}

// Match evaluates q on n, which was reached at path and depth.
func (q *Query) Match(n *irep.Node, strs *intern.Interner, path string, depth int) (bool, error) {
	q.cur, q.strs = n, strs
	defer func() { q.cur, q.strs = nil, nil }()
	env := map[string]any{
		"id":        strs.MustResolve(n.ID()),
		"path":      path,
		"depth":     depth,
		"nsub":      n.NumSub(),
		"nnamed":    n.NumNamed(),
		"ncomments": n.NumComments(),
	}
	res, err := expr.Run(q.prg, env)
	if err != nil {
		return false, fmt.Errorf("error evaluating %q at %s: %w", q.src, path, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%q evaluated to %T at %s", q.src, res, path)
	}
	return b, nil
}

// Result is a matching node and the first path it was reached at.
type Result struct {
	Path string
	Node *irep.Node
}

// Find evaluates q on every distinct node under root, in walk order.
func Find(q *Query, root *irep.Node, strs *intern.Interner) ([]Result, error) {
	var res []Result
	err := irep.Walk(root, strs, func(s *irep.Step) (bool, error) {
		if s.Seen {
			return false, nil
		}
		ok, err := q.Match(s.Node, strs, s.Path, s.Depth)
		if err != nil {
			return false, err
		}
		if ok {
			if debug.Query() {
				debug.Logf("gbf query: match at %s\n", s.Path)
			}
			res = append(res, Result{Path: s.Path, Node: s.Node})
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
