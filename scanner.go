package decima

import (
	"fmt"

	"go.uber.org/zap"
)

// Record is one undecoded record of a container.
type Record struct {
	Offset int64 // offset of the header within the container
	Type   TypeHash
	Size   uint32
	Bytes  []byte // header and payload, HeaderSize+Size bytes
}

// Payload returns the record bytes after the header.
func (r Record) Payload() []byte { return r.Bytes[HeaderSize:] }

func (r Record) errorf(typeName string, id ID, hasID bool, err error) error {
	return &RecordError{Offset: r.Offset, TypeName: typeName, ID: id, HasID: hasID, Err: err}
}

// NextRecord splits the record starting at off. It returns ok == false at a
// clean end of data.
func NextRecord(data []byte, off int) (rec Record, ok bool, err error) {
	left := len(data) - off
	if left < 1 {
		return Record{}, false, nil
	}
	if left < HeaderSize {
		return Record{}, false, &RecordError{Offset: int64(off), Err: fmt.Errorf("%w: %d trailing bytes, need a %d byte header", ErrCorruptContainer, left, HeaderSize)}
	}
	h := parseRecordHeader(data[off:])
	end := uint64(off) + HeaderSize + uint64(h.Size)
	if end > uint64(len(data)) {
		return Record{}, false, &RecordError{Offset: int64(off), Err: fmt.Errorf("%w: record of %d bytes runs %d bytes past end", ErrCorruptContainer, HeaderSize+uint64(h.Size), end-uint64(len(data)))}
	}
	return Record{Offset: int64(off), Type: h.Type, Size: h.Size, Bytes: data[off:end:end]}, true, nil
}

// Scanner iterates over the records of a container held in memory.
//
//	sc := decima.NewScanner(data)
//	for sc.Scan() {
//		rec := sc.Record()
//		...
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	data []byte
	off  int
	rec  Record
	err  error
}

func NewScanner(data []byte) *Scanner { return &Scanner{data: data} }

// Scan advances to the next record. It returns false at the end of data or
// on the first error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	rec, ok, err := NextRecord(s.data, s.off)
	if err != nil {
		s.err = err
		return false
	}
	if !ok {
		return false
	}
	s.rec = rec
	s.off += len(rec.Bytes)
	return true
}

func (s *Scanner) Record() Record { return s.rec }

func (s *Scanner) Err() error { return s.err }

// DecodeAll decodes every record in data strictly. Either all records are
// returned or none.
func (r *Registry) DecodeAll(data []byte) ([]Resource, error) {
	return r.decodeAll(data, false, zap.NewNop())
}

func (r *Registry) decodeAll(data []byte, lenient bool, log *zap.Logger) ([]Resource, error) {
	var out []Resource
	sc := NewScanner(data)
	for sc.Scan() {
		res, err := r.decode(sc.Record(), lenient, log)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
