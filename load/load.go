// Package load reads GBF containers from files and streams, undoing
// zstd, gzip or lz4 frame compression when the input starts with the
// corresponding magic number.
package load

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/gbf/debug"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var ErrTooLarge = errors.New("input too large")

type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
	LZ4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case LZ4:
		return "lz4"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect names the compression of a stream starting with head.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4
	}
	return None
}

type LoadOption func(*loadOpts)

type loadOpts struct {
	maxSize int64
}

// LoadMaxSize bounds the size of the loaded data after decompression. n
// <= 0 means no bound.
func LoadMaxSize(n int64) LoadOption {
	return func(o *loadOpts) { o.maxSize = n }
}

// File loads the file at path, or standard input when path is "-".
func File(path string, opts ...LoadOption) ([]byte, error) {
	var (
		f   *os.File
		err error
	)
	if path != "-" {
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	d, err := Reader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return d, nil
}

// Reader reads r to the end, decompressing if needed.
func Reader(r io.Reader, opts ...LoadOption) ([]byte, error) {
	o := &loadOpts{}
	for _, opt := range opts {
		opt(o)
	}
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}
	c := Detect(head)
	if debug.Load() {
		debug.Logf("gbf load: compression %s\n", c)
	}
	var src io.Reader = br
	switch c {
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		src = zr
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		src = gr
	case LZ4:
		src = lz4.NewReader(br)
	}
	if o.maxSize > 0 {
		src = io.LimitReader(src, o.maxSize+1)
	}
	d, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s input: %w", c, err)
	}
	if o.maxSize > 0 && int64(len(d)) > o.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, o.maxSize)
	}
	if debug.Load() {
		debug.Logf("gbf load: %d bytes\n", len(d))
	}
	return d, nil
}
