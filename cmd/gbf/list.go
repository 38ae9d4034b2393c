package main

import (
	"fmt"
	"io"

	"github.com/signadot/gbf"
	"github.com/signadot/gbf/encode"
	"github.com/signadot/gbf/irep"
	"github.com/signadot/gbf/query"

	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires one argument, an expression", cli.ErrUsage)
	}
	arg := args[0]
	if arg == "" {
		return fmt.Errorf("%w: invalid expression \"\"", cli.ErrUsage)
	}
	var q *query.Query
	if cfg.Path {
		if arg[0] != '$' {
			arg = "$" + arg
		}
		if _, err := irep.ParsePath(arg); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	} else {
		q, err = query.Compile(arg)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	files := inputs(args[1:])
	for _, file := range files {
		f, err := cfg.readFile(file)
		if err != nil {
			return err
		}
		if cfg.Path {
			err = listPath(cfg, cc.Out, f, arg)
		} else {
			err = listQuery(cc.Out, f, q, file, len(files) > 1)
		}
		if err != nil {
			return fmt.Errorf("error listing %s: %w", file, err)
		}
	}
	return nil
}

func listQuery(w io.Writer, f *gbf.File, q *query.Query, file string, prefix bool) error {
	res, err := query.Find(q, f.Root, f.Strings)
	if err != nil {
		return err
	}
	for _, r := range res {
		ln := r.Path + "\n"
		if prefix {
			ln = file + ": " + ln
		}
		if _, err := w.Write([]byte(ln)); err != nil {
			return err
		}
	}
	return nil
}

func listPath(cfg *ListConfig, w io.Writer, f *gbf.File, path string) error {
	res, err := irep.List(nil, f.Root, f.Strings, path)
	if err != nil {
		return err
	}
	for i, n := range res {
		if i > 0 {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := encode.Encode(n, f.Strings, w, cfg.encOpts(w)...); err != nil {
			return err
		}
	}
	return nil
}
