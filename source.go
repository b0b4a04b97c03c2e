package decima

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the whole-file compression of a container on disk. Game
// files are never compressed; the compressed forms exist for tooling that
// archives extracted containers.
type Compression uint8

const (
	CompNone Compression = iota
	CompZSTD
	CompLZ4
	CompBR
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// suffix is the file extension appended to ".core" for c.
func (c Compression) suffix() string {
	switch c {
	case CompZSTD:
		return ".zst"
	case CompLZ4:
		return ".lz4"
	case CompBR:
		return ".br"
	}
	return ""
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func(r io.Reader) (*zstd.Decoder, error) { return zstd.NewReader(r) }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
	createTemp    = os.CreateTemp
	renameFile    = os.Rename
)

// detectCompression picks the compression from the file name, falling back
// to the frame magic. Brotli has no magic and is only recognized by name.
func detectCompression(name string, head []byte) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompZSTD
	case strings.HasSuffix(name, ".lz4"):
		return CompLZ4
	case strings.HasSuffix(name, ".br"):
		return CompBR
	case bytes.HasPrefix(head, zstdMagic):
		return CompZSTD
	case bytes.HasPrefix(head, lz4Magic):
		return CompLZ4
	}
	return CompNone
}

// resolveContainerFile finds path on disk, trying the compressed siblings
// path.zst, path.lz4 and path.br when path itself is absent.
func resolveContainerFile(path string) (string, error) {
	candidates := []string{path}
	for _, c := range []Compression{CompZSTD, CompLZ4, CompBR} {
		candidates = append(candidates, path+c.suffix())
	}
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingExternalFile, path)
}

// readContainer reads and decompresses the container at path. It returns
// the file actually read and its compression.
func readContainer(path string, limits Limits) ([]byte, string, Compression, error) {
	file, err := resolveContainerFile(path)
	if err != nil {
		return nil, "", CompNone, err
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, file, CompNone, err
	}
	comp := detectCompression(file, raw)
	if comp == CompNone {
		if uint64(len(raw)) > limits.MaxContainerSize {
			return nil, file, comp, fmt.Errorf("%w: %s is %d bytes", ErrLimitExceeded, file, len(raw))
		}
		return raw, file, comp, nil
	}
	data, err := decompress(comp, raw, limits.MaxContainerSize)
	if err != nil {
		return nil, file, comp, fmt.Errorf("%s: %w", file, err)
	}
	return data, file, comp, nil
}

// writeContainer writes data to path with compression comp. The bytes go to
// a temporary file in the same directory that replaces path only once fully
// written.
func writeContainer(path string, data []byte, comp Compression) (err error) {
	out := data
	if comp != CompNone {
		if out, err = compress(comp, data); err != nil {
			return err
		}
	}
	tmp, err := createTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(out); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return renameFile(tmp.Name(), path)
}

func compress(comp Compression, in []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return in, nil
	case CompZSTD:
		return zstdCompress(in)
	case CompLZ4:
		return lz4Compress(in)
	case CompBR:
		return brotliCompress(in)
	}
	return nil, fmt.Errorf("unknown compression %d", comp)
}

// decompress expands in, failing with ErrLimitExceeded once the output
// passes limit bytes.
func decompress(comp Compression, in []byte, limit uint64) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch comp {
	case CompNone:
		out = in
	case CompZSTD:
		out, err = zstdDecompress(in, limit)
	case CompLZ4:
		out, err = limitedRead(lz4.NewReader(bytes.NewReader(in)), limit)
	case CompBR:
		out, err = limitedRead(brotli.NewReader(bytes.NewReader(in)), limit)
	default:
		return nil, fmt.Errorf("unknown compression %d", comp)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", comp, err)
	}
	if uint64(len(out)) > limit {
		return nil, fmt.Errorf("%w: %s container expands past %d bytes", ErrLimitExceeded, comp, limit)
	}
	return out, nil
}

// limitedRead reads at most limit+1 bytes so the caller can tell an
// oversized stream from one that ends exactly at the limit.
func limitedRead(r io.Reader, limit uint64) ([]byte, error) {
	return readAll(io.LimitReader(r, int64(min(limit, 1<<62))+1))
}

// zstdCompress compresses in using the Zstandard algorithm.
func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, limit uint64) ([]byte, error) {
	dec, err := newZstdReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return limitedRead(dec, limit)
}

// lz4Compress compresses in using the LZ4 frame format.
func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return nil, err
	}
	if err := lz4Close(zw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// brotliCompress compresses in using the Brotli algorithm.
func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return nil, err
	}
	if err := brotliClose(bw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readRange reads length bytes at offset from the file at path.
func readRange(path string, offset, length uint64) ([]byte, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingExternalFile, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if offset > 1<<62 || length > 1<<62 {
		return nil, fmt.Errorf("%w: stream range %d+%d", ErrLimitExceeded, offset, length)
	}
	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, int64(offset)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is shorter than %d+%d", ErrCorruptContainer, path, offset, length)
		}
		return nil, err
	}
	return buf, nil
}
