package decima

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("decima core record "), 200)
	for _, comp := range []Compression{CompNone, CompZSTD, CompLZ4, CompBR} {
		packed, err := compress(comp, data)
		if err != nil {
			t.Fatalf("%s: %v", comp, err)
		}
		out, err := decompress(comp, packed, uint64(len(data)))
		if err != nil {
			t.Fatalf("%s: %v", comp, err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("%s: round trip mismatch", comp)
		}
		if comp != CompNone {
			if _, err := decompress(comp, packed, uint64(len(data)-1)); !errors.Is(err, ErrLimitExceeded) {
				t.Fatalf("%s: limit err = %v", comp, err)
			}
		}
	}
}

func TestDetectCompression(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want Compression
	}{
		{"a.core", nil, CompNone},
		{"a.core.zst", nil, CompZSTD},
		{"a.core.lz4", nil, CompLZ4},
		{"a.core.br", nil, CompBR},
		{"a.core", zstdMagic, CompZSTD},
		{"a.core", lz4Magic, CompLZ4},
	}
	for _, c := range cases {
		if got := detectCompression(c.name, c.head); got != c.want {
			t.Errorf("%s %x: %v, want %v", c.name, c.head, got, c.want)
		}
	}
}

func TestReadContainerPrefersPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.core")
	writeFile(t, path, []byte("plain"))
	packed, _ := compress(CompZSTD, []byte("packed"))
	writeFile(t, path+".zst", packed)

	data, file, comp, err := readContainer(path, defaultLimits())
	if err != nil || string(data) != "plain" || file != path || comp != CompNone {
		t.Fatalf("got %q %s %v %v", data, file, comp, err)
	}
}

func TestCompressInjectedErrors(t *testing.T) {
	boom := errors.New("boom")

	oldZstd := newZstdWriter
	newZstdWriter = func() (*zstd.Encoder, error) { return nil, boom }
	_, err := compress(CompZSTD, []byte("x"))
	newZstdWriter = oldZstd
	if !errors.Is(err, boom) {
		t.Fatalf("zstd writer: %v", err)
	}

	oldReader := newZstdReader
	newZstdReader = func(io.Reader) (*zstd.Decoder, error) { return nil, boom }
	_, err = decompress(CompZSTD, []byte("x"), 10)
	newZstdReader = oldReader
	if !errors.Is(err, boom) {
		t.Fatalf("zstd reader: %v", err)
	}

	oldLZ4 := lz4Close
	lz4Close = func(*lz4.Writer) error { return boom }
	_, err = compress(CompLZ4, []byte("x"))
	lz4Close = oldLZ4
	if !errors.Is(err, boom) {
		t.Fatalf("lz4 close: %v", err)
	}

	oldWrite := brotliWrite
	brotliWrite = func(*brotli.Writer, []byte) (int, error) { return 0, boom }
	_, err = compress(CompBR, []byte("x"))
	brotliWrite = oldWrite
	if !errors.Is(err, boom) {
		t.Fatalf("brotli write: %v", err)
	}

	oldClose := brotliClose
	brotliClose = func(*brotli.Writer) error { return boom }
	_, err = compress(CompBR, []byte("x"))
	brotliClose = oldClose
	if !errors.Is(err, boom) {
		t.Fatalf("brotli close: %v", err)
	}

	oldRead := readAll
	readAll = func(io.Reader) ([]byte, error) { return nil, boom }
	packed, _ := lz4Compress([]byte("x"))
	_, err = decompress(CompLZ4, packed, 10)
	readAll = oldRead
	if !errors.Is(err, boom) {
		t.Fatalf("read: %v", err)
	}
}

func TestDecompressCorrupt(t *testing.T) {
	for _, comp := range []Compression{CompZSTD, CompLZ4} {
		if _, err := decompress(comp, []byte("not compressed"), 100); err == nil {
			t.Errorf("%s: expected error", comp)
		}
	}
}
