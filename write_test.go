package vram

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestValidateRegion(t *testing.T) {
	layout2D := Layout{Kind: Kind2D, Width: 64, Height: 64, Levels: 7}
	layoutArr := Layout{Kind: Kind2DArray, Width: 16, Height: 16, Depth: 4, Levels: 1}

	tests := []struct {
		name    string
		layout  Layout
		format  Format
		level   int
		region  Region
		want    uint64
		wantErr bool
	}{
		{
			name:   "full level",
			layout: layout2D, format: FormatRGBA8,
			region: Region{Width: 64, Height: 64},
			want:   16384,
		},
		{
			name:   "sub region",
			layout: layout2D, format: FormatRGBA8,
			region: Region{X: 8, Y: 8, Width: 16, Height: 16},
			want:   1024,
		},
		{
			name:   "mip level",
			layout: layout2D, format: FormatRGBA8, level: 3,
			region: Region{Width: 8, Height: 8},
			want:   256,
		},
		{
			name:   "zero depth normalizes to one",
			layout: layout2D, format: FormatRGBA8,
			region: Region{Width: 4, Height: 4, Depth: 0},
			want:   64,
		},
		{
			name:   "layer range",
			layout: layoutArr, format: FormatR8,
			region: Region{Z: 1, Width: 16, Height: 16, Depth: 2},
			want:   512,
		},
		{
			name:   "exceeds width",
			layout: layout2D, format: FormatRGBA8, level: 1,
			region:  Region{X: 16, Width: 20, Height: 8},
			wantErr: true,
		},
		{
			name:   "exceeds layers",
			layout: layoutArr, format: FormatR8,
			region:  Region{Z: 3, Width: 16, Height: 16, Depth: 2},
			wantErr: true,
		},
		{
			name:   "level out of range",
			layout: layout2D, format: FormatRGBA8, level: 7,
			region:  Region{Width: 1, Height: 1},
			wantErr: true,
		},
		{
			name:   "negative origin",
			layout: layout2D, format: FormatRGBA8,
			region:  Region{X: -1, Width: 4, Height: 4},
			wantErr: true,
		},
		{
			name:   "empty region",
			layout: layout2D, format: FormatRGBA8,
			region:  Region{Width: 0, Height: 4},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateRegion(tt.layout, tt.format, tt.level, tt.region)
			if tt.wantErr {
				if !errors.Is(err, ErrSizeMismatch) {
					t.Errorf("err = %v, want ErrSizeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("byte length = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateRegionBlockAlignment(t *testing.T) {
	layout := Layout{Kind: Kind2D, Width: 64, Height: 64, Levels: 1}
	odd := Layout{Kind: Kind2D, Width: 10, Height: 10, Levels: 1}

	tests := []struct {
		name    string
		layout  Layout
		region  Region
		want    uint64
		wantErr bool
	}{
		{
			name:   "aligned blocks",
			layout: layout,
			region: Region{X: 4, Y: 8, Width: 16, Height: 16},
			want:   128,
		},
		{
			name:    "misaligned origin",
			layout:  layout,
			region:  Region{X: 2, Width: 4, Height: 4},
			wantErr: true,
		},
		{
			name:    "partial block inside level",
			layout:  layout,
			region:  Region{Width: 62, Height: 64},
			wantErr: true,
		},
		{
			name:   "partial block at level edge",
			layout: odd,
			region: Region{Width: 10, Height: 10},
			want:   72,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateRegion(tt.layout, FormatBC1, 0, tt.region)
			if tt.wantErr {
				if !errors.Is(err, ErrSizeMismatch) {
					t.Errorf("err = %v, want ErrSizeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("byte length = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateWriteDataLength(t *testing.T) {
	layout := Layout{Kind: Kind2D, Width: 8, Height: 8, Levels: 1}
	w := Write{Region: Region{Width: 8, Height: 8, Depth: 1}, Data: make([]byte, 256)}
	if err := validateWrite(layout, FormatRGBA8, w); err != nil {
		t.Errorf("exact data rejected: %v", err)
	}

	w.Data = make([]byte, 255)
	if err := validateWrite(layout, FormatRGBA8, w); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short data: err = %v, want ErrSizeMismatch", err)
	}

	w.Data = make([]byte, 257)
	if err := validateWrite(layout, FormatRGBA8, w); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("long data: err = %v, want ErrSizeMismatch", err)
	}
}

// solidImage returns a w by h image filled with one color.
func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestImageWrite(t *testing.T) {
	layout := Layout{Kind: Kind2D, Width: 4, Height: 4, Levels: 1}

	w, err := imageWrite(layout, FormatRGBA8, solidImage(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255}), 0, 0)
	if err != nil {
		t.Fatalf("imageWrite failed: %v", err)
	}
	if w.Level != 0 {
		t.Errorf("Level = %d, want 0", w.Level)
	}
	want := Region{Width: 4, Height: 4, Depth: 1}
	if w.Region != want {
		t.Errorf("Region = %+v, want %+v", w.Region, want)
	}
	if len(w.Data) != 64 {
		t.Fatalf("len(Data) = %d, want 64", len(w.Data))
	}
	if !bytes.Equal(w.Data[:4], []byte{10, 20, 30, 255}) {
		t.Errorf("first texel = %v, want [10 20 30 255]", w.Data[:4])
	}
}

func TestImageWriteBGRASwizzle(t *testing.T) {
	layout := Layout{Kind: Kind2D, Width: 2, Height: 2, Levels: 1}
	w, err := imageWrite(layout, FormatBGRA8, solidImage(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255}), 0, 0)
	if err != nil {
		t.Fatalf("imageWrite failed: %v", err)
	}
	if !bytes.Equal(w.Data[:4], []byte{30, 20, 10, 255}) {
		t.Errorf("first texel = %v, want [30 20 10 255]", w.Data[:4])
	}
}

func TestImageWriteScales(t *testing.T) {
	layout := Layout{Kind: Kind2D, Width: 4, Height: 4, Levels: 3}
	// An 8x8 source against the 2x2 level 1 gets resampled.
	w, err := imageWrite(layout, FormatRGBA8, solidImage(8, 8, color.RGBA{R: 200, A: 255}), 1, 0)
	if err != nil {
		t.Fatalf("imageWrite failed: %v", err)
	}
	if len(w.Data) != 16 {
		t.Errorf("len(Data) = %d, want 16", len(w.Data))
	}
	if w.Data[0] != 200 || w.Data[3] != 255 {
		t.Errorf("first texel = %v, want solid red", w.Data[:4])
	}
}

func TestImageWriteLayer(t *testing.T) {
	layout := Layout{Kind: Kind2DArray, Width: 2, Height: 2, Depth: 3, Levels: 1}
	w, err := imageWrite(layout, FormatRGBA8, solidImage(2, 2, color.RGBA{A: 255}), 0, 2)
	if err != nil {
		t.Fatalf("imageWrite failed: %v", err)
	}
	if w.Region.Z != 2 || w.Region.Depth != 1 {
		t.Errorf("Region = %+v, want layer 2 depth 1", w.Region)
	}

	if _, err := imageWrite(layout, FormatRGBA8, solidImage(2, 2, color.RGBA{}), 0, 3); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("layer out of range: err = %v, want ErrSizeMismatch", err)
	}
}

func TestImageWriteFormatMismatch(t *testing.T) {
	layout := Layout{Kind: Kind2D, Width: 4, Height: 4, Levels: 1}
	for _, f := range []Format{FormatR8, FormatRGBA16F, FormatBC1} {
		if _, err := imageWrite(layout, f, solidImage(4, 4, color.RGBA{}), 0, 0); !errors.Is(err, ErrFormatMismatch) {
			t.Errorf("%v: err = %v, want ErrFormatMismatch", f, err)
		}
	}
}

func TestSwizzleRGBAToBGRA(t *testing.T) {
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	swizzleRGBAToBGRA(p)
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	if !bytes.Equal(p, want) {
		t.Errorf("swizzle = %v, want %v", p, want)
	}
}
