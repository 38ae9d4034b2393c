package gbf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/gbf/decode"
	"github.com/signadot/gbf/internal/gbftest"
	"github.com/signadot/gbf/irep"

	"github.com/klauspost/compress/zstd"
)

func program() []byte {
	loc := gbftest.Leaf("main.c:3")
	return gbftest.Encode(&gbftest.N{
		ID: "code",
		Sub: []*gbftest.N{
			{ID: "decl", Comments: []gbftest.KV{{Key: "#location", Val: loc}}},
			{ID: "return", Comments: []gbftest.KV{{Key: "#location", Val: loc}}},
		},
		Named: []gbftest.KV{{Key: "statement", Val: gbftest.Leaf("block")}},
	})
}

func TestDecode(t *testing.T) {
	data := program()
	f, err := Decode(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}
	if f.Resolve(f.Root.ID()) != "code" {
		t.Errorf("root %q", f.Resolve(f.Root.ID()))
	}
	a, err := f.Get("$[0]{#location}")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Get("$[1]{#location}")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("shared location decoded twice")
	}
	if f.Stats.Bytes != len(data) || f.Stats.NodeRefs != 1 {
		t.Errorf("stats %+v", f.Stats)
	}
	if _, err := f.Get("$.missing"); !errors.Is(err, irep.ErrNoPath) {
		t.Errorf("missing path: %v", err)
	}
}

func TestDecodeError(t *testing.T) {
	data := program()
	data[3] = 9
	_, err := Decode(context.Background(), data)
	var ve *decode.VersionError
	if !errors.As(err, &ve) || ve.Version != 9<<24|1 {
		t.Errorf("got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	zw, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "prog.gbf")
	packed := filepath.Join(dir, "prog.gbf.zst")
	if err := os.WriteFile(plain, program(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(packed, zw.EncodeAll(program(), nil), 0644); err != nil {
		t.Fatal(err)
	}
	a, err := ReadFile(context.Background(), plain)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ReadFile(context.Background(), packed)
	if err != nil {
		t.Fatal(err)
	}
	if irep.Digest(a.Root, a.Strings) != irep.Digest(b.Root, b.Strings) {
		t.Errorf("compressed file decoded differently")
	}
	if _, err := ReadFile(context.Background(), filepath.Join(dir, "none")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v", err)
	}
}
