package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	IDColor ColorAttr = iota
	FieldColor
	CommentColor
	SepColor
	AnchorColor
	RefColor
	ElidedColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			IDColor:      color.RGB(8, 196, 16).SprintfFunc(),
			FieldColor:   color.RGB(128, 168, 196).SprintfFunc(),
			CommentColor: color.BlueString,
			SepColor:     color.RGB(255, 0, 196).SprintfFunc(),
			AnchorColor:  color.RGB(196, 168, 128).SprintfFunc(),
			RefColor:     color.RGB(196, 96, 16).SprintfFunc(),
			ElidedColor:  color.RGB(96, 96, 96).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	if f := c.Map[a]; f != nil {
		return f
	}
	if c.Default == nil {
		return colorDefault
	}
	return c.Default
}
