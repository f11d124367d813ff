package glyphmesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphmesh/pool"
)

// Sentinel errors for the glyph cache.
var (
	// ErrKeyNotFound is returned by DrawInfo for runes and shapes that were
	// never registered. It is the same value as pool.ErrKeyNotFound.
	ErrKeyNotFound = pool.ErrKeyNotFound

	// ErrClosed is returned by operations on a destroyed cache.
	ErrClosed = errors.New("glyphmesh: cache destroyed")

	// ErrNilDevice is returned by New when the device or queue is nil.
	ErrNilDevice = errors.New("glyphmesh: nil device or queue")

	// ErrNoHalAccess is returned by NewFromProvider when the provider does
	// not expose HAL device and queue handles.
	ErrNoHalAccess = errors.New("glyphmesh: provider does not expose HAL device and queue")
)

// ShapeError reports a shape that could not be registered.
type ShapeError struct {
	Key string
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("glyphmesh: shape %q: %v", e.Key, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
