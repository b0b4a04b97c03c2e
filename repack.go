package decima

import (
	"bytes"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Mutation edits a freshly decoded record before it is re-encoded.
type Mutation func(Resource) error

// RepackReport summarizes one repack.
type RepackReport struct {
	Records     int         // records in the container
	Rewritten   []ID        // targeted records that were re-encoded, in file order
	Unmatched   []ID        // mutation ids with no record of the target type, sorted
	Compression Compression // compression of the input file, reused for the output
	SizeDelta   int64       // output length minus input length, uncompressed
}

// Repacker rewrites selected records of a container and copies every other
// record byte for byte.
type Repacker struct {
	cfg config
	reg *Registry
	log *zap.Logger
}

func NewRepacker(opts ...Option) *Repacker {
	cfg := newConfig(opts)
	return &Repacker{cfg: cfg, reg: cfg.registry(), log: cfg.log}
}

func (p *Repacker) Registry() *Registry { return p.reg }

// RepackBytes rewrites the records of data whose type name is target and
// whose id has an entry in muts. A nil Mutation re-encodes the record
// unchanged. Targets are always decoded strictly. Nothing is returned unless
// every targeted record was rewritten.
func (p *Repacker) RepackBytes(data []byte, target string, muts map[ID]Mutation) ([]byte, RepackReport, error) {
	var (
		rep  RepackReport
		out  bytes.Buffer
		seen = make(map[ID]struct{}, len(muts))
	)
	out.Grow(len(data))
	sc := NewScanner(data)
	for sc.Scan() {
		rec := sc.Record()
		rep.Records++
		name := p.reg.Name(rec.Type)
		id, hasID := p.reg.RecordID(rec)
		mut, ok := muts[id]
		if name != target || !hasID || !ok {
			out.Write(rec.Bytes)
			continue
		}
		b, err := p.rewrite(rec, mut)
		if err != nil {
			return nil, RepackReport{}, rec.errorf(name, id, hasID, err)
		}
		out.Write(b)
		seen[id] = struct{}{}
		rep.Rewritten = append(rep.Rewritten, id)
		p.log.Debug("rewrote record",
			zap.String("type", name),
			zap.Stringer("id", id),
			zap.Int64("offset", rec.Offset),
			zap.Int("old_size", len(rec.Bytes)),
			zap.Int("new_size", len(b)))
	}
	if err := sc.Err(); err != nil {
		return nil, RepackReport{}, err
	}
	for id := range muts {
		if _, ok := seen[id]; !ok {
			rep.Unmatched = append(rep.Unmatched, id)
		}
	}
	slices.SortFunc(rep.Unmatched, func(a, b ID) int { return bytes.Compare(a[:], b[:]) })
	rep.SizeDelta = int64(out.Len()) - int64(len(data))
	return out.Bytes(), rep, nil
}

// rewrite decodes strictly regardless of the size policy. Encode writes only
// decoded fields, so unread bytes would be lost.
func (p *Repacker) rewrite(rec Record, mut Mutation) ([]byte, error) {
	res, err := p.reg.decode(rec, false, p.log)
	if err != nil {
		return nil, err
	}
	if !Encodable(res) {
		return nil, fmt.Errorf("%w: %s", ErrNotEncodable, res.Info().TypeName)
	}
	if mut != nil {
		if err := mut(res); err != nil {
			return nil, err
		}
	}
	return Encode(res, p.reg.layout)
}

// RepackFile repacks the container at in and writes the result to out, which
// may equal in. The output is written to a temporary file and renamed over
// out only when the whole repack succeeded, so a failed repack leaves out
// untouched. The input's compression is kept.
func (p *Repacker) RepackFile(in, out string, target string, muts map[ID]Mutation) (RepackReport, error) {
	data, file, comp, err := readContainer(in, p.cfg.limits)
	if err != nil {
		return RepackReport{}, err
	}
	b, rep, err := p.RepackBytes(data, target, muts)
	if err != nil {
		return RepackReport{}, withPath(err, file)
	}
	rep.Compression = comp
	if out == "" {
		out = file
	}
	if err := writeContainer(out, b, comp); err != nil {
		return RepackReport{}, err
	}
	p.log.Debug("repacked container",
		zap.String("in", file),
		zap.String("out", out),
		zap.Int("rewritten", len(rep.Rewritten)),
		zap.Int("unmatched", len(rep.Unmatched)))
	return rep, nil
}
