package libdiff

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

type WriteOption func(*writeOpts)

type writeOpts struct {
	context int
	insert  func(a ...any) string
	delete  func(a ...any) string
	skip    func(a ...any) string
}

// Context limits the equal lines shown around each change to n. Longer
// runs are summarized. n < 0 shows everything, which is the default.
func Context(n int) WriteOption {
	return func(o *writeOpts) { o.context = n }
}

// Colored colors insertions and deletions, whether or not the output is
// a terminal.
func Colored(v bool) WriteOption {
	return func(o *writeOpts) {
		if !v {
			o.insert, o.delete, o.skip = fmt.Sprint, fmt.Sprint, fmt.Sprint
			return
		}
		o.insert = forced(color.FgGreen)
		o.delete = forced(color.FgRed)
		o.skip = forced(color.FgCyan)
	}
}

func forced(a color.Attribute) func(...any) string {
	c := color.New(a)
	c.EnableColor()
	return c.SprintFunc()
}

// Write writes lines in unified style: a two character prefix then the
// line.
func Write(w io.Writer, lines []Line, opts ...WriteOption) error {
	o := &writeOpts{context: -1}
	Colored(false)(o)
	for _, opt := range opts {
		opt(o)
	}
	bw := bufio.NewWriter(w)
	show := visible(lines, o.context)
	for i := 0; i < len(lines); i++ {
		if !show[i] {
			j := i
			for j < len(lines) && !show[j] {
				j++
			}
			fmt.Fprintln(bw, o.skip(fmt.Sprintf(SkipFormat, j-i)))
			i = j - 1
			continue
		}
		ln := lines[i]
		switch ln.Op {
		case Insert:
			fmt.Fprintln(bw, o.insert(InsertPrefix+ln.Text))
		case Delete:
			fmt.Fprintln(bw, o.delete(DeletePrefix+ln.Text))
		default:
			fmt.Fprintln(bw, EqualPrefix+ln.Text)
		}
	}
	return bw.Flush()
}

// visible marks the lines within context of a change.
func visible(lines []Line, context int) []bool {
	show := make([]bool, len(lines))
	if context < 0 {
		for i := range show {
			show[i] = true
		}
		return show
	}
	for i, ln := range lines {
		if ln.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			show[j] = true
		}
	}
	return show
}
