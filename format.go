package vram

import "fmt"

// Format specifies the texel format of a resource.
//
// Uncompressed formats have a fixed byte count per pixel. Block
// compressed formats store fixed-size blocks covering a rectangle of
// pixels; partial blocks at the right and bottom edges still occupy a
// whole block.
type Format uint8

// Uncompressed formats.
const (
	// FormatR8 is single-channel 8-bit, used for masks and coverage.
	FormatR8 Format = iota + 1

	// FormatRG8 is two-channel 8-bit.
	FormatRG8

	// FormatRGB8 is three-channel 8-bit without padding.
	FormatRGB8

	// FormatRGBA8 is the standard RGBA format with 8 bits per channel.
	FormatRGBA8

	// FormatBGRA8 is BGRA order, often used for surface presentation.
	FormatBGRA8

	// FormatSRGBA8 is RGBA8 in the sRGB transfer function.
	FormatSRGBA8

	// FormatR16F is single-channel 16-bit float.
	FormatR16F

	// FormatRG16F is two-channel 16-bit float.
	FormatRG16F

	// FormatRGBA16F is four-channel 16-bit float.
	FormatRGBA16F

	// FormatR32F is single-channel 32-bit float.
	FormatR32F

	// FormatRG32F is two-channel 32-bit float.
	FormatRG32F

	// FormatRGBA32F is four-channel 32-bit float.
	FormatRGBA32F

	// FormatRGB10A2 packs 10-bit RGB with 2-bit alpha into 32 bits.
	FormatRGB10A2

	// FormatRG11B10F packs 11+11+10 bit floats into 32 bits.
	FormatRG11B10F

	// FormatRGB9E5 packs RGB with a shared 5-bit exponent into 32 bits.
	FormatRGB9E5

	// FormatDepth16 is 16-bit depth.
	FormatDepth16

	// FormatDepth24 is 24-bit depth.
	FormatDepth24

	// FormatDepth32F is 32-bit float depth.
	FormatDepth32F

	// FormatDepth24Stencil8 is 24-bit depth with 8-bit stencil.
	FormatDepth24Stencil8

	// FormatDepth32FStencil8 is 32-bit float depth with 8-bit stencil.
	FormatDepth32FStencil8
)

// Block compressed formats.
const (
	// FormatBC1 is S3TC DXT1: 4x4 blocks, 8 bytes per block.
	FormatBC1 Format = iota + 64

	// FormatBC2 is S3TC DXT3: 4x4 blocks, 16 bytes per block.
	FormatBC2

	// FormatBC3 is S3TC DXT5: 4x4 blocks, 16 bytes per block.
	FormatBC3

	// FormatBC4 is RGTC single-channel: 4x4 blocks, 8 bytes per block.
	FormatBC4

	// FormatBC5 is RGTC two-channel: 4x4 blocks, 16 bytes per block.
	FormatBC5

	// FormatBC7 is BPTC RGBA: 4x4 blocks, 16 bytes per block.
	FormatBC7

	// FormatETC2RGB8 is ETC2 RGB: 4x4 blocks, 8 bytes per block.
	FormatETC2RGB8

	// FormatETC2RGBA8 is ETC2 RGBA with EAC alpha: 4x4 blocks, 16 bytes
	// per block.
	FormatETC2RGBA8

	// FormatEACR11 is EAC single-channel: 4x4 blocks, 8 bytes per block.
	FormatEACR11

	// FormatEACRG11 is EAC two-channel: 4x4 blocks, 16 bytes per block.
	FormatEACRG11

	// FormatASTC4x4 is ASTC with 4x4 blocks, 16 bytes per block.
	FormatASTC4x4

	// FormatASTC5x5 is ASTC with 5x5 blocks, 16 bytes per block.
	FormatASTC5x5

	// FormatASTC6x6 is ASTC with 6x6 blocks, 16 bytes per block.
	FormatASTC6x6

	// FormatASTC8x8 is ASTC with 8x8 blocks, 16 bytes per block.
	FormatASTC8x8

	// FormatASTC10x10 is ASTC with 10x10 blocks, 16 bytes per block.
	FormatASTC10x10

	// FormatASTC12x12 is ASTC with 12x12 blocks, 16 bytes per block.
	FormatASTC12x12
)

// formatInfo describes the memory shape of a format. Exactly one of
// bytesPerPixel or the block fields is set.
type formatInfo struct {
	name          string
	bytesPerPixel int
	blockWidth    int
	blockHeight   int
	blockBytes    int
}

var formatInfos = map[Format]formatInfo{
	FormatR8:               {name: "R8", bytesPerPixel: 1},
	FormatRG8:              {name: "RG8", bytesPerPixel: 2},
	FormatRGB8:             {name: "RGB8", bytesPerPixel: 3},
	FormatRGBA8:            {name: "RGBA8", bytesPerPixel: 4},
	FormatBGRA8:            {name: "BGRA8", bytesPerPixel: 4},
	FormatSRGBA8:           {name: "SRGBA8", bytesPerPixel: 4},
	FormatR16F:             {name: "R16F", bytesPerPixel: 2},
	FormatRG16F:            {name: "RG16F", bytesPerPixel: 4},
	FormatRGBA16F:          {name: "RGBA16F", bytesPerPixel: 8},
	FormatR32F:             {name: "R32F", bytesPerPixel: 4},
	FormatRG32F:            {name: "RG32F", bytesPerPixel: 8},
	FormatRGBA32F:          {name: "RGBA32F", bytesPerPixel: 16},
	FormatRGB10A2:          {name: "RGB10A2", bytesPerPixel: 4},
	FormatRG11B10F:         {name: "RG11B10F", bytesPerPixel: 4},
	FormatRGB9E5:           {name: "RGB9E5", bytesPerPixel: 4},
	FormatDepth16:          {name: "Depth16", bytesPerPixel: 2},
	FormatDepth24:          {name: "Depth24", bytesPerPixel: 3},
	FormatDepth32F:         {name: "Depth32F", bytesPerPixel: 4},
	FormatDepth24Stencil8:  {name: "Depth24Stencil8", bytesPerPixel: 4},
	FormatDepth32FStencil8: {name: "Depth32FStencil8", bytesPerPixel: 5},

	FormatBC1:        {name: "BC1", blockWidth: 4, blockHeight: 4, blockBytes: 8},
	FormatBC2:        {name: "BC2", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatBC3:        {name: "BC3", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatBC4:        {name: "BC4", blockWidth: 4, blockHeight: 4, blockBytes: 8},
	FormatBC5:        {name: "BC5", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatBC7:        {name: "BC7", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatETC2RGB8:   {name: "ETC2RGB8", blockWidth: 4, blockHeight: 4, blockBytes: 8},
	FormatETC2RGBA8:  {name: "ETC2RGBA8", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatEACR11:     {name: "EACR11", blockWidth: 4, blockHeight: 4, blockBytes: 8},
	FormatEACRG11:    {name: "EACRG11", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatASTC4x4:    {name: "ASTC4x4", blockWidth: 4, blockHeight: 4, blockBytes: 16},
	FormatASTC5x5:    {name: "ASTC5x5", blockWidth: 5, blockHeight: 5, blockBytes: 16},
	FormatASTC6x6:    {name: "ASTC6x6", blockWidth: 6, blockHeight: 6, blockBytes: 16},
	FormatASTC8x8:    {name: "ASTC8x8", blockWidth: 8, blockHeight: 8, blockBytes: 16},
	FormatASTC10x10:  {name: "ASTC10x10", blockWidth: 10, blockHeight: 10, blockBytes: 16},
	FormatASTC12x12:  {name: "ASTC12x12", blockWidth: 12, blockHeight: 12, blockBytes: 16},
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	if info, ok := formatInfos[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(f))
}

// Valid reports whether f is a format known to the package.
func (f Format) Valid() bool {
	_, ok := formatInfos[f]
	return ok
}

// Compressed reports whether f is a block compressed format.
func (f Format) Compressed() bool {
	return formatInfos[f].blockBytes != 0
}

// BytesPerPixel returns the byte count per pixel for uncompressed
// formats, or 0 for compressed formats.
func (f Format) BytesPerPixel() int {
	return formatInfos[f].bytesPerPixel
}

// BlockSize returns the block dimensions for compressed formats, or
// (1, 1) for uncompressed formats.
func (f Format) BlockSize() (w, h int) {
	info := formatInfos[f]
	if info.blockBytes == 0 {
		return 1, 1
	}
	return info.blockWidth, info.blockHeight
}

// ByteLength returns the exact number of bytes a width by height image
// of this format occupies. For compressed formats each dimension is
// rounded up to the block size. The same function sizes backend
// allocations and validates caller-supplied buffers, so the two can
// never disagree.
func (f Format) ByteLength(width, height int) uint64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	info := formatInfos[f]
	if info.blockBytes != 0 {
		bw := (width + info.blockWidth - 1) / info.blockWidth
		bh := (height + info.blockHeight - 1) / info.blockHeight
		return uint64(bw) * uint64(bh) * uint64(info.blockBytes)
	}
	return uint64(width) * uint64(height) * uint64(info.bytesPerPixel)
}
