package wgpu

import (
	"errors"

	"github.com/gogpu/gputypes"
	types "github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vram"
)

// ErrUnsupportedFormat is returned when a vram format has no wgpu
// equivalent in this backend.
var ErrUnsupportedFormat = errors.New("wgpu: format not supported by this backend")

// textureFormat converts a vram format to its HAL texture format.
// The set is the subset the gogpu stack exposes today; anything else
// is rejected at creation time rather than guessed at.
func textureFormat(f vram.Format) (types.TextureFormat, error) {
	switch f {
	case vram.FormatR8:
		return types.TextureFormatR8Unorm, nil
	case vram.FormatRGBA8:
		return types.TextureFormatRGBA8Unorm, nil
	case vram.FormatSRGBA8:
		return types.TextureFormatRGBA8UnormSrgb, nil
	case vram.FormatBGRA8:
		return types.TextureFormatBGRA8Unorm, nil
	case vram.FormatDepth24Stencil8:
		return types.TextureFormatDepth24PlusStencil8, nil
	default:
		return types.TextureFormatUndefined, ErrUnsupportedFormat
	}
}

// textureDescriptor builds the HAL texture descriptor for a layout and
// format pair. Arrays and cubes are 2D textures with layers; a cube is
// always six of them.
func textureDescriptor(label string, layout vram.Layout, format types.TextureFormat) *hal.TextureDescriptor {
	depth := 1
	dimension := types.TextureDimension2D
	switch layout.Kind {
	case vram.Kind2DArray:
		depth = layout.Depth
	case vram.Kind3D:
		depth = layout.Depth
		dimension = types.TextureDimension3D
	case vram.KindCube:
		depth = 6
	}

	return &hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(layout.Width),
			Height:             uint32(layout.Height),
			DepthOrArrayLayers: uint32(depth),
		},
		MipLevelCount: uint32(layout.Levels),
		SampleCount:   1,
		Dimension:     dimension,
		Format:        format,
		Usage:         types.TextureUsageTextureBinding | types.TextureUsageCopyDst,
	}
}

// samplerDescriptor builds a HAL sampler from descriptor parameters.
// Unset kinds keep WebGPU defaults (nearest filtering, clamp to edge).
// LOD clamps and anisotropy are recorded by the descriptor but have no
// HAL sampler field to land in yet, so they are ignored here.
func samplerDescriptor(label string, params []vram.Parameter) *hal.SamplerDescriptor {
	desc := &hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
	}
	for _, p := range params {
		switch p.Kind {
		case vram.ParamMinFilter:
			desc.MinFilter = filterMode(p.Value)
			desc.MipmapFilter = filterMode(p.Value)
		case vram.ParamMagFilter:
			desc.MagFilter = filterMode(p.Value)
		case vram.ParamWrapU:
			desc.AddressModeU = addressMode(p.Value)
		case vram.ParamWrapV:
			desc.AddressModeV = addressMode(p.Value)
		case vram.ParamWrapW:
			desc.AddressModeW = addressMode(p.Value)
		}
	}
	return desc
}

func filterMode(v int32) gputypes.FilterMode {
	if v == vram.FilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

func addressMode(v int32) gputypes.AddressMode {
	switch v {
	case vram.WrapClampToEdge:
		return gputypes.AddressModeClampToEdge
	case vram.WrapMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeRepeat
	}
}

// dataLayout computes the row layout for a write. Rows are block rows,
// so for uncompressed formats (1x1 blocks) these are plain texel rows.
func dataLayout(f vram.Format, r vram.Region) *hal.ImageDataLayout {
	_, bh := f.BlockSize()
	return &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(f.ByteLength(r.Width, bh)),
		RowsPerImage: uint32((r.Height + bh - 1) / bh),
	}
}
