package main

import (
	"fmt"

	"github.com/signadot/gbf/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a node path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	w := cc.Out
	for i, file := range inputs(args[1:]) {
		f, err := cfg.readFile(file)
		if err != nil {
			return err
		}
		n, err := f.Get(path)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", path, file, err)
		}
		if i > 0 {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := encode.Encode(n, f.Strings, w, cfg.encOpts(w)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
