package decima

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"
)

// testHash gives every decodable type a stable fake hash. LocalizedText
// keeps its real one.
func testHash(name string) TypeHash {
	if name == "LocalizedTextResource" {
		return LocalizedTextHash
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return TypeHash(h.Sum64())
}

// unknownHash is absent from every type map.
const unknownHash TypeHash = 0xDEADBEEFCAFEF00D

func testTypeMap() map[TypeHash]string {
	m := make(map[TypeHash]string, len(decoders))
	for name := range decoders {
		m[testHash(name)] = name
	}
	return m
}

func testRegistry(v Variant) *Registry { return NewRegistry(v, testTypeMap()) }

func testID(b byte) ID {
	var id ID
	for i := range id {
		id[i] = b
	}
	return id
}

// payload builds record payloads in the on-disk encoding.
type payload struct{ b []byte }

func (p *payload) raw(b ...byte) *payload {
	p.b = append(p.b, b...)
	return p
}

func (p *payload) u8(v uint8) *payload { return p.raw(v) }

func (p *payload) u16(v uint16) *payload {
	p.b = binary.LittleEndian.AppendUint16(p.b, v)
	return p
}

func (p *payload) u32(v uint32) *payload {
	p.b = binary.LittleEndian.AppendUint32(p.b, v)
	return p
}

func (p *payload) u64(v uint64) *payload {
	p.b = binary.LittleEndian.AppendUint64(p.b, v)
	return p
}

func (p *payload) f32(v float32) *payload { return p.u32(math.Float32bits(v)) }

func (p *payload) id(id ID) *payload { return p.raw(id[:]...) }

func (p *payload) zeros(n int) *payload { return p.raw(make([]byte, n)...) }

// str writes a hashed string with a placeholder hash.
func (p *payload) str(s string) *payload {
	p.u32(uint32(len(s)))
	if len(s) > 0 {
		p.raw(0xA1, 0xB2, 0xC3, 0xD4)
	}
	return p.raw([]byte(s)...)
}

func (p *payload) plain(s string) *payload {
	return p.u32(uint32(len(s))).raw([]byte(s)...)
}

func (p *payload) utf16(s string) *payload {
	units := utf16.Encode([]rune(s))
	p.u32(uint32(len([]rune(s))))
	for _, u := range units {
		p.u16(u)
	}
	return p
}

func (p *payload) null() *payload { return p.u8(0) }

func (p *payload) local(id ID) *payload { return p.u8(1).id(id) }

func (p *payload) ext(id ID, path string) *payload { return p.u8(2).id(id).str(path) }

func (p *payload) localRefs(ids ...ID) *payload {
	p.u32(uint32(len(ids)))
	for _, id := range ids {
		p.local(id)
	}
	return p
}

func record(h TypeHash, body []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(body))
	putRecordHeader(out, recordHeader{Type: h, Size: uint32(len(body))})
	return append(out, body...)
}

func container(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

// textRecord builds a LocalizedTextResource with english in slot 0 and the
// other slots empty.
func textRecord(id ID, l Layout, english string) []byte {
	p := (&payload{}).id(id)
	for i := 0; i < l.TextSlots; i++ {
		text := ""
		if i == 0 {
			text = english
		}
		p.u16(uint16(len(text))).raw([]byte(text)...)
		if l.TextTrailer > 0 {
			p.raw(make([]byte, l.TextTrailer)...)
		}
	}
	return record(LocalizedTextHash, p.b)
}

func rawRecord(id ID, extra ...byte) []byte {
	return record(unknownHash, (&payload{}).id(id).raw(extra...).b)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
