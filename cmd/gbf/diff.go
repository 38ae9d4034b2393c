package main

import (
	"fmt"

	"github.com/signadot/gbf/encode"
	"github.com/signadot/gbf/format"
	"github.com/signadot/gbf/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := cfg.readFile(args[0])
	if err != nil {
		return err
	}
	b, err := cfg.readFile(args[1])
	if err != nil {
		return err
	}
	lines, changed, err := libdiff.Nodes(a.Root, a.Strings, b.Root, b.Strings,
		encode.EncodeFormat(format.TextFormat), encode.EncodeExpand(cfg.X))
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	w := cc.Out
	opts := []libdiff.WriteOption{
		libdiff.Context(cfg.Context),
		libdiff.Colored(cfg.useColor(w)),
	}
	if err := libdiff.Write(w, lines, opts...); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
