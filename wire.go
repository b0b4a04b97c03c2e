package decima

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

type recordHeader struct {
	Type TypeHash
	Size uint32
}

func parseRecordHeader(b []byte) recordHeader {
	return recordHeader{
		Type: TypeHash(binary.LittleEndian.Uint64(b[0:8])),
		Size: binary.LittleEndian.Uint32(b[8:12]),
	}
}

func putRecordHeader(b []byte, h recordHeader) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(h.Type))
	binary.LittleEndian.PutUint32(b[8:12], h.Size)
}

// errOverrun is recorded when a decoder reads past the declared payload.
var errOverrun = errors.New("read past end of payload")

// reader is a little-endian cursor over one record payload. The first failed
// read is kept and every later read returns zero values.
type reader struct {
	buf []byte
	off int
	err error
}

func newReader(b []byte) *reader { return &reader{buf: b} }

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.remaining() {
		r.err = fmt.Errorf("%w: need %d bytes at payload offset %d, %d left", errOverrun, n, r.off, r.remaining())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// bytes returns a copy of the next n bytes.
func (r *reader) bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// rest copies everything up to the end of the payload.
func (r *reader) rest() []byte { return r.bytes(r.remaining()) }

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) i8() int8 { return int8(r.u8()) }

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) i32() int32 { return int32(r.u32()) }

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) f32() float32 { return math.Float32frombits(r.u32()) }

func (r *reader) id() ID {
	var id ID
	copy(id[:], r.take(len(id)))
	return id
}

// count reads a u32 element count and rejects counts that cannot fit in the
// remaining payload given a minimum element size.
func (r *reader) count(minElem int) int {
	n := int(r.u32())
	if r.err == nil && minElem > 0 && n > r.remaining()/minElem {
		r.err = fmt.Errorf("%w: count %d at payload offset %d exceeds payload", errOverrun, n, r.off-4)
		return 0
	}
	return n
}

// fail records err unless a read already failed.
func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// writer builds a record payload.
type writer struct {
	buf []byte
}

func (w *writer) raw(b []byte) { w.buf = append(w.buf, b...) }

func (w *writer) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

func (w *writer) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *writer) id(id ID) { w.buf = append(w.buf, id[:]...) }

// record prefixes the payload with a header whose size is the payload length.
func (w *writer) record(t TypeHash) ([]byte, error) {
	if uint64(len(w.buf)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrLimitExceeded, len(w.buf))
	}
	out := make([]byte, HeaderSize+len(w.buf))
	putRecordHeader(out, recordHeader{Type: t, Size: uint32(len(w.buf))})
	copy(out[HeaderSize:], w.buf)
	return out, nil
}
