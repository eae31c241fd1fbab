package vecdb

import (
	"log/slog"

	"github.com/hupe1980/vecdb/codec"
	"github.com/hupe1980/vecdb/persistence"
)

type options struct {
	codec            codec.Codec
	logger           *Logger
	metricsCollector MetricsCollector
	dimension        int
	looseDimensions  bool
	compression      persistence.CompressionType
}

// Option configures Store construction.
type Option func(*options)

// WithCodec configures the codec used for the metadata blob.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithDimension fixes the embedding dimensionality up front. Adds and
// queries with a different length fail with ErrDimensionMismatch.
//
// Without this option the dimension is fixed by the first Add.
func WithDimension(dimension int) Option {
	return func(o *options) {
		o.dimension = dimension
	}
}

// WithLooseDimensions disables the Add-time dimensionality check, matching
// stores that accept whatever the embedding source produces. Queries still
// verify the query vector against the stored dimension, since a silent
// mismatch there would corrupt the similarity math.
func WithLooseDimensions() Option {
	return func(o *options) {
		o.looseDimensions = true
	}
}

// WithCompression selects the compression applied to snapshot payloads.
// The default is no compression; persisted blobs record the choice, so
// stores with different settings can load each other's snapshots.
func WithCompression(c persistence.CompressionType) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		compression:      persistence.CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
