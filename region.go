package vram

import "fmt"

// Region addresses a box within one mip level of a resource.
//
// For Kind2D resources Z and Depth address nothing and must be 0 and
// 1 (a zero Depth is normalized to 1). For Kind2DArray, Z is the first
// layer and Depth the layer count. For Kind3D they are the volume
// range. For KindCube, Z is the first face (0-5) and Depth the face
// count.
type Region struct {
	X      int
	Y      int
	Z      int
	Width  int
	Height int
	Depth  int
}

// String returns a compact description of the region.
func (r Region) String() string {
	return fmt.Sprintf("%dx%dx%d+%d+%d+%d", r.Width, r.Height, r.Depth, r.X, r.Y, r.Z)
}

// normalized returns the region with a zero Depth promoted to 1.
func (r Region) normalized() Region {
	if r.Depth == 0 {
		r.Depth = 1
	}
	return r
}

// validateRegion checks a write region against one mip level of a
// layout/format pair and returns the exact byte length its data must
// have. Violations are ErrSizeMismatch: regions never clip and data is
// never truncated.
func validateRegion(l Layout, f Format, level int, r Region) (uint64, error) {
	lw, lh, ld, ok := l.LevelExtent(level)
	if !ok {
		return 0, fmt.Errorf("%w: level %d of %d", ErrSizeMismatch, level, l.Levels)
	}

	r = r.normalized()
	if r.X < 0 || r.Y < 0 || r.Z < 0 || r.Width <= 0 || r.Height <= 0 || r.Depth <= 0 {
		return 0, fmt.Errorf("%w: region %v", ErrSizeMismatch, r)
	}
	if r.X+r.Width > lw || r.Y+r.Height > lh || r.Z+r.Depth > ld {
		return 0, fmt.Errorf("%w: region %v exceeds level %d extent %dx%dx%d",
			ErrSizeMismatch, r, level, lw, lh, ld)
	}

	if f.Compressed() {
		bw, bh := f.BlockSize()
		// Offsets must sit on block boundaries; extents must cover whole
		// blocks unless they run to the level edge.
		if r.X%bw != 0 || r.Y%bh != 0 ||
			(r.Width%bw != 0 && r.X+r.Width != lw) ||
			(r.Height%bh != 0 && r.Y+r.Height != lh) {
			return 0, fmt.Errorf("%w: region %v not aligned to %dx%d blocks of %v",
				ErrSizeMismatch, r, bw, bh, f)
		}
	}

	return f.ByteLength(r.Width, r.Height) * uint64(r.Depth), nil
}
