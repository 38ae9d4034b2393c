package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (op Op) String() string {
	switch op {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "<unknown op>"
}

// Line is one line of a diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs a and b line by line.
func Lines(from, to string) []Line {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		var op Op
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffEqual:
			op = Equal
		}
		for _, ln := range splitLines(diff.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	res := strings.SplitAfter(s, "\n")
	if res[len(res)-1] == "" {
		res = res[:len(res)-1]
	}
	for i, ln := range res {
		res[i] = strings.TrimSuffix(ln, "\n")
	}
	return res
}

// Changed reports whether lines has any insertion or deletion.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}
