package decima

import "fmt"

// RefKind classifies a Ref.
type RefKind uint8

const (
	RefNull RefKind = iota
	RefLocal
	RefExternal
)

func (k RefKind) String() string {
	switch k {
	case RefNull:
		return "null"
	case RefLocal:
		return "local"
	case RefExternal:
		return "external"
	}
	return fmt.Sprintf("refkind(%d)", uint8(k))
}

// Ref points at another resource by id. It never owns the referent.
type Ref struct {
	Tag  uint8 // on-disk kind byte, kept so the ref re-encodes unchanged
	ID   ID
	Path HashedString // container path without extension, external refs only
}

// Kind maps the on-disk tag to Null, Local or External.
func (r Ref) Kind() RefKind {
	switch r.Tag {
	case 0:
		return RefNull
	case 2, 3:
		return RefExternal
	default:
		return RefLocal
	}
}

func (r Ref) IsNull() bool { return r.Tag == 0 }

// NullRef, LocalRef and ExternalRef build refs with the tags the format uses.
func NullRef() Ref { return Ref{} }

func LocalRef(id ID) Ref { return Ref{Tag: 1, ID: id} }

func ExternalRef(id ID, path string) Ref {
	return Ref{Tag: 2, ID: id, Path: HashedString{Text: path}}
}

func (r Ref) String() string {
	switch r.Kind() {
	case RefNull:
		return "null ref"
	case RefExternal:
		return fmt.Sprintf("ref %s in %s", r.ID, r.Path.Text)
	}
	return "ref " + r.ID.String()
}

func (r *reader) ref() Ref {
	var ref Ref
	ref.Tag = r.u8()
	if ref.Tag > 0 {
		ref.ID = r.id()
	}
	if ref.Kind() == RefExternal {
		ref.Path = r.hashedString()
	}
	return ref
}

func (r *reader) refs() []Ref {
	n := r.count(1)
	if n == 0 {
		return nil
	}
	out := make([]Ref, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.ref())
	}
	return out
}

// nullRef reads a ref the format requires to be null.
func (r *reader) nullRef(field string) Ref {
	ref := r.ref()
	if r.err == nil && !ref.IsNull() {
		r.fail(assertf("%s: expected null ref, got tag %d", field, ref.Tag))
	}
	return ref
}

func (w *writer) ref(ref Ref) {
	w.u8(ref.Tag)
	if ref.Tag > 0 {
		w.id(ref.ID)
	}
	if ref.Kind() == RefExternal {
		w.hashedString(ref.Path)
	}
}
