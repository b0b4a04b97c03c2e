package decima

import "go.uber.org/zap"

type config struct {
	variant  Variant
	root     string
	typeMap  map[TypeHash]string
	layout   *Layout
	lenient  bool
	log      *zap.Logger
	limits   Limits
	loadHook func(path string)
}

func newConfig(opts []Option) config {
	cfg := config{limits: defaultLimits(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}
	return cfg
}

func (c config) registry() *Registry {
	r := NewRegistry(c.variant, c.typeMap)
	if c.layout != nil {
		r = r.withLayout(*c.layout)
	}
	return r
}

// Option configures a Session or Repacker.
type Option func(*config)

// WithVariant selects the game build. The default is VariantHorizonPC.
func WithVariant(v Variant) Option {
	return func(c *config) { c.variant = v }
}

// WithRootDir sets the directory that external refs and cache paths are
// relative to.
func WithRootDir(dir string) Option {
	return func(c *config) { c.root = dir }
}

// WithTypeMap adds hash to name entries on top of the variant's built-ins.
func WithTypeMap(m map[TypeHash]string) Option {
	return func(c *config) { c.typeMap = m }
}

// WithLayout overrides the variant's default field layouts.
func WithLayout(l Layout) Option {
	return func(c *config) { c.layout = &l }
}

// WithLenientSizes logs records that a decoder under-consumes instead of
// failing. Reads past the declared size stay fatal.
func WithLenientSizes(v bool) Option {
	return func(c *config) { c.lenient = v }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.log = l }
}

func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithLoadHook registers fn to be called with the path of every container
// file a Session reads from disk.
func WithLoadHook(fn func(path string)) Option {
	return func(c *config) { c.loadHook = fn }
}
