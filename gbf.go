// Package gbf decodes the GBF container format written by the ESBMC
// model checker for its irep trees.
//
// A container is the magic "GBF", a big-endian version word and one
// root node. Nodes and strings are deduplicated on the wire, and the
// decoded tree keeps that sharing: a node that appears several times is
// one *irep.Node reachable from several parents.
//
// # Usage
//
//	f, err := gbf.ReadFile(ctx, "prog.gbf")
//	if err != nil {
//		return err
//	}
//	ty, err := f.Get("$.symbols[0].type")
//
// # Related Packages
//
//   - github.com/signadot/gbf/decode - the decoder and its options
//   - github.com/signadot/gbf/irep - decoded nodes, paths and traversal
//   - github.com/signadot/gbf/encode - rendering decoded trees
package gbf

import (
	"context"
	"fmt"

	"github.com/signadot/gbf/decode"
	"github.com/signadot/gbf/intern"
	"github.com/signadot/gbf/irep"
	"github.com/signadot/gbf/load"
)

const (
	Magic   = decode.Magic
	Version = decode.Version
)

// File is a decoded container.
type File struct {
	Root    *irep.Node
	Strings *intern.Interner
	Stats   decode.Stats
}

func Decode(ctx context.Context, data []byte, opts ...decode.DecodeOption) (*File, error) {
	d := decode.New(data, opts...)
	root, err := d.Decode(ctx)
	if err != nil {
		return nil, err
	}
	return &File{Root: root, Strings: d.Interner(), Stats: d.Stats()}, nil
}

// ReadFile loads path, decompressing it if needed, and decodes it.
func ReadFile(ctx context.Context, path string, opts ...decode.DecodeOption) (*File, error) {
	data, err := load.File(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(ctx, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return f, nil
}

// Resolve returns the text of an identifier or key of f.
func (f *File) Resolve(id intern.ID) string {
	return f.Strings.MustResolve(id)
}

// Get returns the node at path, for example "$[0].type{#location}".
func (f *File) Get(path string) (*irep.Node, error) {
	return irep.Get(f.Root, f.Strings, path)
}
