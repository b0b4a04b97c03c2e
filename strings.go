package decima

import (
	"unicode/utf16"
)

// HashedString is a length-prefixed string stored with a 4-byte hash of its
// text. The hash is kept so the string can be written back; it cannot be
// recomputed here.
type HashedString struct {
	Hash [4]byte
	Text string
}

func (s HashedString) String() string { return s.Text }

func (r *reader) hashedString() HashedString {
	var s HashedString
	n := int(r.u32())
	if n > 0 {
		copy(s.Hash[:], r.take(4))
	}
	s.Text = string(r.take(n))
	return s
}

// name reads a hashed string and drops the hash.
func (r *reader) name() string { return r.hashedString().Text }

// plainString reads a u32 length followed by text, with no hash.
func (r *reader) plainString() string {
	n := int(r.u32())
	return string(r.take(n))
}

// utf16Chars reads n characters of UTF-16LE text. Surrogate pairs count as a
// single character and occupy four bytes.
func (r *reader) utf16Chars(n int) string {
	units := make([]uint16, 0, min(n, r.remaining()/2))
	for chars := 0; chars < n && r.err == nil; chars++ {
		u := r.u16()
		units = append(units, u)
		if utf16.IsSurrogate(rune(u)) {
			units = append(units, r.u16())
		}
	}
	return string(utf16.Decode(units))
}

func (w *writer) hashedString(s HashedString) {
	w.u32(uint32(len(s.Text)))
	if len(s.Text) > 0 {
		w.raw(s.Hash[:])
	}
	w.raw([]byte(s.Text))
}
