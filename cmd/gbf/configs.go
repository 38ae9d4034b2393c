package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/signadot/gbf/decode"
	"github.com/signadot/gbf/encode"
	"github.com/signadot/gbf/format"
	"github.com/signadot/gbf/load"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	MaxDepth int `cli:"name=maxDepth desc='maximum node nesting (0 for the default)'"`
	MaxNodes int `cli:"name=maxNodes desc='maximum number of nodes (0 for no limit)'"`
	MaxSize  int `cli:"name=maxSize desc='maximum decompressed input size in bytes (0 for no limit)'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command

	ctx context.Context
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.TextFormat
}

func (cfg *MainConfig) decodeOpts() []decode.DecodeOption {
	var res []decode.DecodeOption
	if cfg.MaxDepth > 0 {
		res = append(res, decode.DecodeMaxDepth(cfg.MaxDepth))
	}
	if cfg.MaxNodes > 0 {
		res = append(res, decode.DecodeMaxNodes(cfg.MaxNodes))
	}
	return res
}

func (cfg *MainConfig) loadOpts() []load.LoadOption {
	if cfg.MaxSize <= 0 {
		return nil
	}
	return []load.LoadOption{load.LoadMaxSize(int64(cfg.MaxSize))}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	f := cfg.outFormat()
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
	}
	if f != format.TextFormat {
		return res
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor honors an explicit -color and otherwise colors terminals.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DumpConfig struct {
	*MainConfig
	X     bool `cli:"name=x desc='expand shared nodes at every occurrence'"`
	Depth int  `cli:"name=d aliases=depth desc='levels of children to render (0 for all)'"`
	Dump  *cli.Command
}

func (cfg *DumpConfig) encOpts(w io.Writer) []encode.EncodeOption {
	return append(cfg.MainConfig.encOpts(w), encode.EncodeExpand(cfg.X), encode.Depth(cfg.Depth))
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig
	Path bool `cli:"name=p aliases=path desc='treat the argument as a path'"`

	List *cli.Command
}

type StatConfig struct {
	*MainConfig

	Stat *cli.Command
}

type DiffConfig struct {
	*MainConfig
	X       bool `cli:"name=x desc='expand shared nodes before comparing text'"`
	Context int  `cli:"name=c aliases=context desc='equal lines shown around changes (-1 for all)'"`

	Diff *cli.Command
}
