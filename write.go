package vram

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Write is one pending upload: data for a region of one mip level.
// Writes flush in FIFO order when their resource is used.
type Write struct {
	// Level is the destination mip level.
	Level int

	// Region is the destination box within the level.
	Region Region

	// Data holds the texels, exactly Region's computed byte length.
	Data []byte

	// GenerateMips asks the backend to regenerate the mip chain after
	// this write lands.
	GenerateMips bool
}

// validateWrite checks a write against a layout/format pair. The data
// length must equal the analytically computed size for the region;
// nothing is clipped or padded.
func validateWrite(l Layout, f Format, w Write) error {
	want, err := validateRegion(l, f, w.Level, w.Region)
	if err != nil {
		return err
	}
	if uint64(len(w.Data)) != want {
		return fmt.Errorf("%w: got %d bytes, region %v of %v needs %d",
			ErrSizeMismatch, len(w.Data), w.Region, f, want)
	}
	return nil
}

// rgbaClass reports whether a format stores 4-byte RGBA-ordered texels
// that an image.Image can be converted into.
func rgbaClass(f Format) bool {
	switch f {
	case FormatRGBA8, FormatBGRA8, FormatSRGBA8:
		return true
	default:
		return false
	}
}

// imageWrite converts an image into a full-layer write for one mip
// level. The source is scaled to the level extent when sizes differ.
// Only 4-byte RGBA-class formats accept image sources; anything else
// is a format mismatch, detected here rather than at the backend.
func imageWrite(l Layout, f Format, src image.Image, level, layer int) (Write, error) {
	if !rgbaClass(f) {
		return Write{}, fmt.Errorf("%w: image source into %v", ErrFormatMismatch, f)
	}
	lw, lh, ld, ok := l.LevelExtent(level)
	if !ok {
		return Write{}, fmt.Errorf("%w: level %d of %d", ErrSizeMismatch, level, l.Levels)
	}
	if layer < 0 || layer >= ld {
		return Write{}, fmt.Errorf("%w: layer %d of %d", ErrSizeMismatch, layer, ld)
	}

	dst := image.NewRGBA(image.Rect(0, 0, lw, lh))
	bounds := src.Bounds()
	if bounds.Dx() == lw && bounds.Dy() == lh {
		xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Src)
	} else {
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	}

	data := dst.Pix
	if f == FormatBGRA8 {
		swizzleRGBAToBGRA(data)
	}

	return Write{
		Level: level,
		Region: Region{
			Z:      layer,
			Width:  lw,
			Height: lh,
			Depth:  1,
		},
		Data: data,
	}, nil
}

// swizzleRGBAToBGRA swaps the red and blue channels in place.
func swizzleRGBAToBGRA(p []byte) {
	for i := 0; i+3 < len(p); i += 4 {
		p[i], p[i+2] = p[i+2], p[i]
	}
}
