package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/gbf"
	"github.com/signadot/gbf/decode"
	"github.com/signadot/gbf/encode"
	"github.com/signadot/gbf/format"
	"github.com/signadot/gbf/irep"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

type statReport struct {
	File        string       `json:"file" yaml:"file"`
	Decode      decode.Stats `json:"decode" yaml:"decode"`
	Distinct    int          `json:"distinct" yaml:"distinct"`
	Occurrences uint64       `json:"occurrences" yaml:"occurrences"`
	Shared      int          `json:"shared" yaml:"shared"`
	Height      int          `json:"height" yaml:"height"`
	Digest      string       `json:"digest" yaml:"digest"`
}

func newStatReport(file string, f *gbf.File) *statReport {
	shape := irep.Measure(f.Root)
	d := irep.Digest(f.Root, f.Strings)
	return &statReport{
		File:        file,
		Decode:      f.Stats,
		Distinct:    shape.Distinct,
		Occurrences: shape.Occurrences,
		Shared:      shape.Shared,
		Height:      shape.Height,
		Digest:      hex.EncodeToString(d[:]),
	}
}

func stat(cfg *StatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stat.Parse(cc, args)
	if err != nil {
		cfg.Stat.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for i, file := range inputs(args) {
		f, err := cfg.readFile(file)
		if err != nil {
			return err
		}
		if i > 0 && !cfg.outFormat().IsBinary() {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
		if err := writeStat(cc.Out, cfg.outFormat(), newStatReport(file, f)); err != nil {
			return err
		}
	}
	return nil
}

func writeStat(w io.Writer, f format.Format, r *statReport) error {
	var (
		d   []byte
		err error
	)
	switch f {
	case format.JSONFormat:
		d, err = json.MarshalIndent(r, "", "  ")
		d = append(d, '\n')
	case format.CBORFormat:
		d, err = encode.MarshalCBOR(r)
	default:
		d, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("error encoding statistics: %w", err)
	}
	_, err = w.Write(d)
	return err
}
