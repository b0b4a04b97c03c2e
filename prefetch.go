package decima

import (
	"errors"
	"io/fs"
	"math"
)

// PrefetchList is the engine's list of container paths with their file
// sizes. Paths keep their hash so the list can be rewritten.
type PrefetchList struct {
	Base
	Paths   []HashedString // container paths without extension
	Sizes   []uint32       // one per path
	Indices []uint32
}

// PrefetchChange records a size updated by Refresh.
type PrefetchChange struct {
	Path    string
	OldSize uint32
	NewSize uint32
}

func decodePrefetchList(d *decoder) (Resource, error) {
	p := &PrefetchList{Base: d.header()}
	n := d.count(4)
	p.Paths = make([]HashedString, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		p.Paths = append(p.Paths, d.hashedString())
	}
	sizes := d.count(4)
	if d.err == nil && sizes != n {
		d.fail(assertf("PrefetchList: %d paths but %d sizes", n, sizes))
	}
	p.Sizes = d.u32s(sizes)
	p.Indices = d.u32s(d.count(4))
	return p, d.err
}

func (r *reader) u32s(n int) []uint32 {
	out := make([]uint32, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.u32())
	}
	return out
}

func (p *PrefetchList) encodePayload(w *writer, _ Layout) error {
	if len(p.Paths) != len(p.Sizes) {
		return assertf("PrefetchList: %d paths but %d sizes", len(p.Paths), len(p.Sizes))
	}
	w.id(p.ID)
	w.u32(uint32(len(p.Paths)))
	for _, s := range p.Paths {
		w.hashedString(s)
	}
	w.u32(uint32(len(p.Sizes)))
	for _, v := range p.Sizes {
		w.u32(v)
	}
	w.u32(uint32(len(p.Indices)))
	for _, v := range p.Indices {
		w.u32(v)
	}
	return nil
}

// Refresh sets each listed size to the size of path+".core" in fsys. Paths
// with no file are left alone. Changes are returned in list order.
func (p *PrefetchList) Refresh(fsys fs.FS) ([]PrefetchChange, error) {
	var changes []PrefetchChange
	for i, path := range p.Paths {
		if i >= len(p.Sizes) {
			break
		}
		info, err := fs.Stat(fsys, path.Text+".core")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return changes, err
		}
		size := info.Size()
		if size > math.MaxUint32 {
			return changes, &fs.PathError{Op: "refresh", Path: path.Text, Err: ErrLimitExceeded}
		}
		if uint32(size) != p.Sizes[i] {
			changes = append(changes, PrefetchChange{Path: path.Text, OldSize: p.Sizes[i], NewSize: uint32(size)})
			p.Sizes[i] = uint32(size)
		}
	}
	return changes, nil
}
