package decima

import (
	"bytes"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Session owns the objects decoded during one load operation, keyed by id,
// together with the variant and root directory used to decode and resolve
// them. A Session is safe for concurrent use; external loads happen at most
// once per file.
type Session struct {
	cfg config
	reg *Registry
	log *zap.Logger

	mu      sync.Mutex
	objects map[ID]Resource
	loaded  map[string]struct{} // cleaned paths of files decoded and merged
	failed  map[string]error    // cleaned paths of files that failed to decode
	loads   int
}

// NewSession returns an empty Session configured by opts.
func NewSession(opts ...Option) *Session {
	cfg := newConfig(opts)
	return &Session{
		cfg:     cfg,
		reg:     cfg.registry(),
		log:     cfg.log,
		objects: make(map[ID]Resource),
		loaded:  make(map[string]struct{}),
		failed:  make(map[string]error),
	}
}

func (s *Session) Registry() *Registry { return s.reg }

func (s *Session) Variant() Variant { return s.reg.variant }

func (s *Session) RootDir() string { return s.cfg.root }

// Load reads the container at path and merges its records into the session.
// A record whose id is already present replaces the earlier one. On error
// nothing from the file is merged. The decoded records are returned in file
// order.
func (s *Session) Load(path string) ([]Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(path)
}

// LoadBytes decodes an in-memory container and merges its records. name is
// used only in errors and logs.
func (s *Session) LoadBytes(name string, data []byte) ([]Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.decodeContainer(data)
	if err != nil {
		return nil, withPath(err, name)
	}
	s.merge(res)
	s.log.Debug("loaded container bytes", zap.String("name", name), zap.Int("records", len(res)))
	return res, nil
}

func (s *Session) loadLocked(path string) ([]Resource, error) {
	data, file, comp, err := readContainer(path, s.cfg.limits)
	if err != nil {
		return nil, err
	}
	s.loads++
	if s.cfg.loadHook != nil {
		s.cfg.loadHook(file)
	}
	key := filepath.Clean(path)
	res, err := s.decodeContainer(data)
	if err != nil {
		err = withPath(err, file)
		s.failed[key] = err
		return nil, err
	}
	delete(s.failed, key)
	s.loaded[key] = struct{}{}
	s.merge(res)
	s.log.Debug("loaded container",
		zap.String("path", file),
		zap.Stringer("compression", comp),
		zap.Int("records", len(res)))
	return res, nil
}

func (s *Session) decodeContainer(data []byte) ([]Resource, error) {
	return s.reg.decodeAll(data, s.cfg.lenient, s.log)
}

func (s *Session) merge(res []Resource) {
	for _, r := range res {
		s.objects[r.Info().ID] = r
	}
}

// Get returns the object with id, if any file loaded so far contained it.
func (s *Session) Get(id ID) (Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.objects[id]
	return r, ok
}

// Len is the number of distinct ids in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Objects returns every object ordered by id.
func (s *Session) Objects() []Resource {
	s.mu.Lock()
	out := make([]Resource, 0, len(s.objects))
	for _, r := range s.objects {
		out = append(out, r)
	}
	s.mu.Unlock()
	slices.SortFunc(out, func(a, b Resource) int {
		ai, bi := a.Info().ID, b.Info().ID
		return bytes.Compare(ai[:], bi[:])
	})
	return out
}

// ObjectsOf returns the objects of concrete type T ordered by id.
func ObjectsOf[T Resource](s *Session) []T {
	var out []T
	for _, r := range s.Objects() {
		if t, ok := r.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Loads is the number of container files read from disk.
func (s *Session) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// ReadContainer returns the decompressed bytes of the container at path
// without decoding them.
func (s *Session) ReadContainer(path string) ([]byte, error) {
	data, _, _, err := readContainer(path, s.cfg.limits)
	return data, err
}
