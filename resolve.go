package decima

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Resolve returns the object ref points at. A null ref resolves to nil with
// no error.
//
// A local ref must name an object already in the session. An external ref
// is looked up first; when absent, its container (root/path.core) is loaded
// unless it was loaded before, and the lookup is retried. A file that failed
// to decode is not read again; later refs into it get the same error. Resolution is
// memoized by id, so reference cycles between files terminate.
//
// Errors are *RecordError values wrapping ErrDanglingReference,
// ErrMissingExternalFile, ErrInvalidPath or a decode failure of the
// external file.
func (s *Session) Resolve(ref Ref) (Resource, error) {
	switch ref.Kind() {
	case RefNull:
		return nil, nil
	case RefLocal:
		if r, ok := s.Get(ref.ID); ok {
			return r, nil
		}
		return nil, &RecordError{Offset: -1, ID: ref.ID, HasID: true, Err: fmt.Errorf("%w: local %s", ErrDanglingReference, ref.ID)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.objects[ref.ID]; ok {
		return r, nil
	}
	file, err := containerPath(s.cfg.root, ref.Path.Text)
	if err != nil {
		return nil, &RecordError{Offset: -1, ID: ref.ID, HasID: true, Err: err}
	}
	key := filepath.Clean(file)
	if err, ok := s.failed[key]; ok {
		return nil, err
	}
	if _, done := s.loaded[key]; !done {
		s.log.Debug("resolving external ref", zap.Stringer("id", ref.ID), zap.String("path", file))
		if _, err := s.loadLocked(file); err != nil {
			var re *RecordError
			if errors.As(err, &re) {
				return nil, err
			}
			return nil, &RecordError{Path: file, Offset: -1, ID: ref.ID, HasID: true, Err: err}
		}
	}
	if r, ok := s.objects[ref.ID]; ok {
		return r, nil
	}
	return nil, &RecordError{Path: file, Offset: -1, ID: ref.ID, HasID: true, Err: fmt.Errorf("%w: %s not in %s", ErrDanglingReference, ref.ID, ref.Path.Text)}
}

// ResolveAll resolves refs in order, skipping null refs.
func (s *Session) ResolveAll(refs []Ref) ([]Resource, error) {
	out := make([]Resource, 0, len(refs))
	for _, ref := range refs {
		r, err := s.Resolve(ref)
		if err != nil {
			return nil, err
		}
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// Follow resolves ref and checks that the object is a T. A null ref yields
// the zero T and no error. A target of another type is ErrUnexpectedType.
func Follow[T Resource](s *Session, ref Ref) (T, error) {
	var zero T
	r, err := s.Resolve(ref)
	if err != nil || r == nil {
		return zero, err
	}
	t, ok := r.(T)
	if !ok {
		b := r.Info()
		return zero, &RecordError{Offset: -1, TypeName: b.TypeName, ID: b.ID, HasID: true, Err: fmt.Errorf("%w: want %T, got %T", ErrUnexpectedType, zero, r)}
	}
	return t, nil
}

// ReadStream returns the bytes sr selects from its cache file under the
// root directory.
func (s *Session) ReadStream(sr StreamRef) ([]byte, error) {
	if sr.Length > s.cfg.limits.MaxStreamRead {
		return nil, fmt.Errorf("%w: stream of %d bytes", ErrLimitExceeded, sr.Length)
	}
	file, err := streamPath(s.cfg.root, sr)
	if err != nil {
		return nil, err
	}
	s.log.Debug("reading stream", zap.String("path", file), zap.Uint64("offset", sr.Offset), zap.Uint64("length", sr.Length))
	return readRange(file, sr.Offset, sr.Length)
}
