package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/gbf"
	"github.com/signadot/gbf/load"

	"github.com/scott-cotton/cli"
)

func gbfMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readFile loads and decodes one input, "-" being standard input.
func (cfg *MainConfig) readFile(file string) (*gbf.File, error) {
	data, err := load.File(file, cfg.loadOpts()...)
	if err != nil {
		return nil, err
	}
	f, err := gbf.Decode(cfg.ctx, data, cfg.decodeOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return f, nil
}

// inputs defaults to standard input.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	return err
}
