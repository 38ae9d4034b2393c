package main

import (
	"fmt"
	"io"

	"github.com/signadot/gbf/encode"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	return dumpFiles(cfg, cc.Out, inputs(args))
}

func dumpFiles(cfg *DumpConfig, w io.Writer, files []string) error {
	for i, file := range files {
		if i > 0 && !cfg.outFormat().IsBinary() {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := dumpFile(cfg, w, file); err != nil {
			return err
		}
	}
	return nil
}

func dumpFile(cfg *DumpConfig, w io.Writer, file string) error {
	f, err := cfg.readFile(file)
	if err != nil {
		return err
	}
	if err := encode.Encode(f.Root, f.Strings, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	return nil
}
