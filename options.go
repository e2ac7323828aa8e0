package ivfflat

import (
	"log/slog"

	"github.com/ivfflat/ivfflat/internal/vectorstore"
)

// defaultSeed is the fixed constant used when no seed is configured, so
// that two otherwise-identical builds are deterministic by default.
const defaultSeed int64 = 1

const (
	defaultKMeansIters    = 300
	defaultSampleFraction = 0.10
	defaultProbeFraction  = 0.01
)

// config holds the tunables named in spec §4.9: storage variant, Lloyd
// iteration cap, sample/probe fractions, seed, and the debug/logging/
// metrics hooks.
type config struct {
	clusters         int // 0 selects floor(sqrt(N)) at Build time
	storageKind      vectorstore.Kind
	kMeansIters      int
	sampleFraction   float64
	probeFraction    float64
	seed             int64
	debug            bool
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures New's constructor behavior.
//
// Today options primarily exist to avoid exploding New's signature with
// positional tunables.
type Option func(*config)

// WithClusters fixes the cluster count k used by Build. If unset (or 0),
// Build chooses k = floor(sqrt(N)), clamped to at least 1.
func WithClusters(k int) Option {
	return func(c *config) {
		c.clusters = k
	}
}

// WithStorageKind selects the VectorStore variant Build uses for both the
// input view and the centroid store. Defaults to vectorstore.OffHeap.
func WithStorageKind(kind vectorstore.Kind) Option {
	return func(c *config) {
		c.storageKind = kind
	}
}

// WithKMeansIters caps Lloyd's algorithm's iteration count. Defaults to 300.
func WithKMeansIters(iters int) Option {
	return func(c *config) {
		if iters > 0 {
			c.kMeansIters = iters
		}
	}
}

// WithSampleFraction sets the fraction of input vectors drawn via reservoir
// sampling to seed k-means. Sample size = floor(f*N), raised to at least k
// and capped at N by Build. Defaults to 0.10.
func WithSampleFraction(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.sampleFraction = f
		}
	}
}

// WithProbeFraction sets the fraction of clusters scanned per query.
// P = max(1, floor(f*k)). Defaults to 0.01.
func WithProbeFraction(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.probeFraction = f
		}
	}
}

// WithSeed fixes the sampler and k-means initialization seed, required to
// reproduce an identical build. Defaults to a fixed constant.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithDebug enables diagnostic dumps (the pairwise centroid distance
// matrix) at debug log level during Build.
func WithDebug(debug bool) Option {
	return func(c *config) {
		c.debug = debug
	}
}

// WithLogger configures structured logging for Build/Search/persistence
// operations. Pass nil to fall back to NoopLogger (no logging).
func WithLogger(logger *Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = NoopLogger()
		}
		c.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(c *config) {
		c.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to fall back to NoopMetricsCollector (no collection).
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(c *config) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		c.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) config {
	c := config{
		storageKind:      vectorstore.OffHeap,
		kMeansIters:      defaultKMeansIters,
		sampleFraction:   defaultSampleFraction,
		probeFraction:    defaultProbeFraction,
		seed:             defaultSeed,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&c)
		}
	}
	return c
}
