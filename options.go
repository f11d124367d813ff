package glyphmesh

import (
	"log/slog"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/outline"
	"github.com/gogpu/glyphmesh/pool"
)

// DefaultOutlineCacheSize is the number of resolved outlines kept in memory.
const DefaultOutlineCacheSize = 512

// Option configures a GlyphCache during creation.
//
// Example:
//
//	gc, err := glyphmesh.New(device, queue, faces,
//	    glyphmesh.WithTolerance(5e-4),
//	    glyphmesh.WithPoolOptions(pool.WithLabelPrefix("ui")),
//	)
type Option func(*options)

type options struct {
	tolerance   float64
	memoSize    int
	classifier  fonts.Classifier
	logger      *slog.Logger
	poolOptions []pool.Option
}

func defaultOptions() options {
	return options{
		tolerance:  outline.DefaultTolerance,
		memoSize:   DefaultOutlineCacheSize,
		classifier: fonts.Classify,
	}
}

// WithTolerance sets the tolerance for reducing cubics to quadratics,
// relative to the em size of a glyph or the extent of a shape.
// Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithOutlineCacheSize sets how many resolved glyph outlines are memoized.
func WithOutlineCacheSize(n int) Option {
	return func(o *options) {
		o.memoSize = n
	}
}

// WithWidthClassifier replaces fonts.Classify.
func WithWidthClassifier(c fonts.Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithLogger sets a logger for this cache only. Without it the cache logs
// through the package logger, see SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPoolOptions passes options to the underlying buffer pool.
func WithPoolOptions(opts ...pool.Option) Option {
	return func(o *options) {
		o.poolOptions = append(o.poolOptions, opts...)
	}
}
