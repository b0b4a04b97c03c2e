package decima

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// RecordInfo describes one record without decoding it.
type RecordInfo struct {
	Offset    int64
	Type      TypeHash
	Name      string
	ID        ID
	HasID     bool
	Size      uint32
	Decodable bool
	Digest    [32]byte // BLAKE3 of the whole record, header included
}

func (i RecordInfo) DigestHex() string { return hex.EncodeToString(i.Digest[:]) }

// Inspect lists the records of data in file order.
func Inspect(data []byte, reg *Registry) ([]RecordInfo, error) {
	var out []RecordInfo
	sc := NewScanner(data)
	for sc.Scan() {
		rec := sc.Record()
		id, hasID := reg.RecordID(rec)
		out = append(out, RecordInfo{
			Offset:    rec.Offset,
			Type:      rec.Type,
			Name:      reg.Name(rec.Type),
			ID:        id,
			HasID:     hasID,
			Size:      rec.Size,
			Decodable: reg.Decodable(rec.Type),
			Digest:    blake3.Sum256(rec.Bytes),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type DiffKind uint8

const (
	DiffChanged DiffKind = iota
	DiffAdded
	DiffRemoved
)

func (k DiffKind) String() string {
	switch k {
	case DiffAdded:
		return "added"
	case DiffRemoved:
		return "removed"
	}
	return "changed"
}

// RecordDiff is one record that differs between two listings. Old is nil for
// added records and New is nil for removed ones.
type RecordDiff struct {
	Kind DiffKind
	Old  *RecordInfo
	New  *RecordInfo
}

// DiffRecords matches the records of a and b by id, pairing repeated ids in
// order, and reports those whose digests differ. Changed and removed records
// come in the order of a, followed by added records in the order of b.
func DiffRecords(a, b []RecordInfo) []RecordDiff {
	type key struct {
		id ID
		n  int
	}
	keys := func(list []RecordInfo) []key {
		seen := make(map[ID]int, len(list))
		out := make([]key, len(list))
		for i, r := range list {
			out[i] = key{r.ID, seen[r.ID]}
			seen[r.ID]++
		}
		return out
	}
	ka, kb := keys(a), keys(b)
	inB := make(map[key]int, len(b))
	for i, k := range kb {
		inB[k] = i
	}
	var diffs []RecordDiff
	matched := make(map[int]bool, len(b))
	for i, k := range ka {
		j, ok := inB[k]
		if !ok {
			diffs = append(diffs, RecordDiff{Kind: DiffRemoved, Old: &a[i]})
			continue
		}
		matched[j] = true
		if a[i].Digest != b[j].Digest {
			diffs = append(diffs, RecordDiff{Kind: DiffChanged, Old: &a[i], New: &b[j]})
		}
	}
	for j := range b {
		if !matched[j] {
			diffs = append(diffs, RecordDiff{Kind: DiffAdded, New: &b[j]})
		}
	}
	return diffs
}
