package load

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/gbf/internal/gbftest"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func payload() []byte {
	shared := gbftest.Leaf("signedbv")
	n := &gbftest.N{ID: "code"}
	for i := 0; i < 100; i++ {
		n.Sub = append(n.Sub, &gbftest.N{ID: "symbol", Named: []gbftest.KV{{Key: "type", Val: shared}}})
	}
	return gbftest.Encode(n)
}

func compress(t *testing.T, c Compression, d []byte) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	var w io.WriteCloser
	switch c {
	case None:
		return d
	case Zstd:
		zw, err := zstd.NewWriter(buf)
		if err != nil {
			t.Fatal(err)
		}
		w = zw
	case Gzip:
		w = gzip.NewWriter(buf)
	case LZ4:
		w = lz4.NewWriter(buf)
	}
	if _, err := w.Write(d); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReader(t *testing.T) {
	want := payload()
	for _, c := range []Compression{None, Zstd, Gzip, LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			in := compress(t, c, want)
			if got := Detect(in); got != c {
				t.Errorf("detected %s", got)
			}
			got, err := Reader(bytes.NewReader(in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestShortInput(t *testing.T) {
	for _, in := range [][]byte{nil, {'G'}, {'G', 'B', 'F'}} {
		got, err := Reader(bytes.NewReader(in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if !bytes.Equal(got, in) {
			t.Errorf("got %q want %q", got, in)
		}
	}
}

func TestMaxSize(t *testing.T) {
	d := payload()
	for _, c := range []Compression{None, Zstd} {
		in := compress(t, c, d)
		if _, err := Reader(bytes.NewReader(in), LoadMaxSize(int64(len(d)-1))); !errors.Is(err, ErrTooLarge) {
			t.Errorf("%s: got %v", c, err)
		}
		if _, err := Reader(bytes.NewReader(in), LoadMaxSize(int64(len(d)))); err != nil {
			t.Errorf("%s exact: %v", c, err)
		}
	}
}

func TestFile(t *testing.T) {
	want := payload()
	path := filepath.Join(t.TempDir(), "prog.gbf.zst")
	if err := os.WriteFile(path, compress(t, Zstd, want), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("file contents differ")
	}
	if _, err := File(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}

func TestCorrupt(t *testing.T) {
	in := compress(t, Gzip, payload())
	in = in[:len(in)/2]
	if _, err := Reader(bytes.NewReader(in)); err == nil {
		t.Errorf("expected an error for a cut gzip stream")
	}
}
