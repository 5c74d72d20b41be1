package vram

import "fmt"

// Kind is the shape of a resource. A slot holds at most one resource
// per kind at a time.
type Kind uint8

const (
	// Kind2D is a single two-dimensional image with mip levels.
	Kind2D Kind = iota + 1

	// Kind2DArray is a stack of 2D layers sharing one mip chain.
	Kind2DArray

	// Kind3D is a volume; depth halves along the mip chain like width
	// and height.
	Kind3D

	// KindCube is six square faces sharing one mip chain.
	KindCube
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Kind2D:
		return "2D"
	case Kind2DArray:
		return "2DArray"
	case Kind3D:
		return "3D"
	case KindCube:
		return "Cube"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Layout describes the immutable shape of a resource: kind, base
// dimensions and the number of mip levels. Depth is the layer count
// for Kind2DArray, the volume depth for Kind3D, and ignored for Kind2D
// and KindCube.
type Layout struct {
	Kind   Kind
	Width  int
	Height int
	Depth  int
	Levels int
}

// MaxLevels returns the length of a full mip chain for the given base
// dimensions: the number of times the largest dimension can halve
// before reaching 1, inclusive.
func MaxLevels(width, height, depth int) int {
	max := width
	if height > max {
		max = height
	}
	if depth > max {
		max = depth
	}
	if max < 1 {
		return 0
	}
	levels := 1
	for max > 1 {
		max >>= 1
		levels++
	}
	return levels
}

// validate checks the layout against a format. Cube faces must be
// square. Compressed formats are only sized for 2D-shaped kinds.
func (l Layout) validate(f Format) error {
	if !f.Valid() {
		return fmt.Errorf("%w: unknown format %v", ErrInvalidLayout, f)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if l.Levels <= 0 || l.Levels > MaxLevels(l.Width, l.Height, l.Depth) {
		return fmt.Errorf("%w: %d levels for %dx%dx%d", ErrInvalidLayout, l.Levels, l.Width, l.Height, l.Depth)
	}
	switch l.Kind {
	case Kind2D:
	case Kind2DArray, Kind3D:
		if l.Depth <= 0 {
			return fmt.Errorf("%w: %v needs positive depth", ErrInvalidLayout, l.Kind)
		}
	case KindCube:
		if l.Width != l.Height {
			return fmt.Errorf("%w: cube faces must be square, got %dx%d", ErrInvalidLayout, l.Width, l.Height)
		}
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidLayout, l.Kind)
	}
	if f.Compressed() && l.Kind == Kind3D {
		return fmt.Errorf("%w: compressed format %v on a 3D volume", ErrInvalidLayout, f)
	}
	return nil
}

// LevelExtent returns the dimensions of a mip level. Each dimension is
// max(base>>level, 1); for 2D arrays the layer count does not shrink,
// for cube maps depth is the face count.
func (l Layout) LevelExtent(level int) (width, height, depth int, ok bool) {
	if level < 0 || level >= l.Levels {
		return 0, 0, 0, false
	}
	width = l.Width >> level
	if width < 1 {
		width = 1
	}
	height = l.Height >> level
	if height < 1 {
		height = 1
	}
	switch l.Kind {
	case Kind2D:
		depth = 1
	case Kind2DArray:
		depth = l.Depth
	case Kind3D:
		depth = l.Depth >> level
		if depth < 1 {
			depth = 1
		}
	case KindCube:
		depth = 6
	}
	return width, height, depth, true
}

// LevelRegion returns the region covering an entire mip level.
func (l Layout) LevelRegion(level int) (Region, bool) {
	w, h, d, ok := l.LevelExtent(level)
	if !ok {
		return Region{}, false
	}
	return Region{Width: w, Height: h, Depth: d}, true
}

// ByteLength returns the total bytes a backend allocation of this
// layout and format occupies, summed across all mip levels and layers.
// The store uses this one number both for accounting and for deciding
// how much an eviction recovers.
func (l Layout) ByteLength(f Format) uint64 {
	var total uint64
	for level := 0; level < l.Levels; level++ {
		w, h, d, _ := l.LevelExtent(level)
		total += f.ByteLength(w, h) * uint64(d)
	}
	return total
}
