package arbor

import "errors"

var (
	// ErrSingularMatrix is returned when a matrix with a zero determinant is
	// inverted through a checked path.
	ErrSingularMatrix = errors.New("arbor: singular matrix")

	// ErrTaintedSurface is returned when pixels are read back from a surface
	// that has had opaque content drawn into it.
	ErrTaintedSurface = errors.New("arbor: surface is tainted and cannot be read")

	// ErrNoCanvas is returned by Stage operations that need a surface when the
	// stage was created without one.
	ErrNoCanvas = errors.New("arbor: stage has no canvas")

	// ErrInvalidCacheSize is returned by Node.Cache for a non-positive region
	// or scale.
	ErrInvalidCacheSize = errors.New("arbor: cache region must have positive size")

	// ErrNotCached is returned by Node.UpdateCache on a node without a cache.
	ErrNotCached = errors.New("arbor: node is not cached")
)
