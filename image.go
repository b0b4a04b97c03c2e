package decima

import (
	"fmt"
	"strings"
)

// PixelFormat is the engine's pixel format enumeration.
type PixelFormat uint8

const (
	RGBA5551 PixelFormat = iota
	RGBA5551Rev
	RGBA4444
	RGBA4444Rev
	RGB888_32
	RGB888_32Rev
	RGB888
	RGB888Rev
	RGB565
	RGB565Rev
	RGB555
	RGB555Rev
	RGBA8888
	RGBA8888Rev
	RGBERev
	RGBAFloat32
	RGBFloat32
	RGFloat32
	RFloat32
	RGBAFloat16
	RGBFloat16
	RGFloat16
	RFloat16
	RGBAUnorm32
	RGUnorm32
	RUnorm32
	RGBAUnorm16
	RGUnorm16
	RUnorm16
	RGBAUnorm8
	RGUnorm8
	RUnorm8
	RGBANorm32
	RGNorm32
	RNorm32
	RGBANorm16
	RGNorm16
	RNorm16
	RGBANorm8
	RGNorm8
	RNorm8
	RGBAUint32
	RGUint32
	RUint32
	RGBAUint16
	RGUint16
	RUint16
	RGBAUint8
	RGUint8
	RUint8
	RGBAInt32
	RGInt32
	RInt32
	RGBAInt16
	RGInt16
	RInt16
	RGBAInt8
	RGInt8
	RInt8
	RGBFloat11_11_10
	RGBAUnorm10_10_10_2
	RGBUnorm11_11_10
	DepthFloat32Stencil8
	DepthFloat32Stencil0
	Depth24Stencil8
	Depth16Stencil0
	BC1
	BC2
	BC3
	BC4U
	BC4S
	BC5U
	BC5S
	BC6U
	BC6S
	BC7
	PixelFormatInvalid
)

var pixelFormatNames = [...]string{
	"RGBA_5551", "RGBA_5551_REV", "RGBA_4444", "RGBA_4444_REV", "RGB_888_32", "RGB_888_32_REV",
	"RGB_888", "RGB_888_REV", "RGB_565", "RGB_565_REV", "RGB_555", "RGB_555_REV", "RGBA_8888",
	"RGBA_8888_REV", "RGBE_REV", "RGBA_FLOAT_32", "RGB_FLOAT_32", "RG_FLOAT_32", "R_FLOAT_32",
	"RGBA_FLOAT_16", "RGB_FLOAT_16", "RG_FLOAT_16", "R_FLOAT_16", "RGBA_UNORM_32", "RG_UNORM_32",
	"R_UNORM_32", "RGBA_UNORM_16", "RG_UNORM_16", "R_UNORM_16", "RGBA_UNORM_8", "RG_UNORM_8",
	"R_UNORM_8", "RGBA_NORM_32", "RG_NORM_32", "R_NORM_32", "RGBA_NORM_16", "RG_NORM_16",
	"R_NORM_16", "RGBA_NORM_8", "RG_NORM_8", "R_NORM_8", "RGBA_UINT_32", "RG_UINT_32",
	"R_UINT_32", "RGBA_UINT_16", "RG_UINT_16", "R_UINT_16", "RGBA_UINT_8", "RG_UINT_8",
	"R_UINT_8", "RGBA_INT_32", "RG_INT_32", "R_INT_32", "RGBA_INT_16", "RG_INT_16", "R_INT_16",
	"RGBA_INT_8", "RG_INT_8", "R_INT_8", "RGB_FLOAT_11_11_10", "RGBA_UNORM_10_10_10_2",
	"RGB_UNORM_11_11_10", "DEPTH_FLOAT_32_STENCIL_8", "DEPTH_FLOAT_32_STENCIL_0",
	"DEPTH_24_STENCIL_8", "DEPTH_16_STENCIL_0", "BC1", "BC2", "BC3", "BC4U", "BC4S", "BC5U",
	"BC5S", "BC6U", "BC6S", "BC7", "INVALID",
}

func (f PixelFormat) String() string {
	if int(f) < len(pixelFormatNames) {
		return pixelFormatNames[f]
	}
	return fmt.Sprintf("PixelFormat(%#x)", uint8(f))
}

// CachePrefix marks a stream path relative to the root directory.
const CachePrefix = "cache:"

// StreamRef selects a byte range of an external stream file.
type StreamRef struct {
	CachePath string // "cache:<relative path>"
	Offset    uint64
	Length    uint64
}

// RelativePath strips the cache prefix.
func (s StreamRef) RelativePath() (string, error) {
	rel, ok := strings.CutPrefix(s.CachePath, CachePrefix)
	if !ok {
		return "", fmt.Errorf("%w: stream path %q lacks %q prefix", ErrInvalidPath, s.CachePath, CachePrefix)
	}
	return rel, nil
}

// ImageMetadata is the image header shared by the texture resources. Pixel
// data is either inline or partly streamed from a cache file.
type ImageMetadata struct {
	UnknownShort1 uint16
	Width         uint16 // 14 bits
	WidthCrop     uint8  // high 2 bits of the width field
	Height        uint16
	HeightCrop    uint8
	UnknownShort2 uint16
	UnknownByte1  uint8
	Format        PixelFormat
	UnknownByte2  uint8
	UnknownByte3  uint8
	Magic         [4]byte
	MaybeHash     [16]byte
	ChunkSize     uint32

	InlineSize     uint32 // bytes of Contents
	StreamSize     uint32 // bytes held in the stream file, zero if not streamed
	StreamMipmaps  uint32
	Stream         *StreamRef
	Contents       []byte
	SizeWithStream uint32 // PS4 layout only
	Padding        []byte // unused bytes between header and inline data
}

// Streamed reports whether part of the image lives in a stream file.
func (m *ImageMetadata) Streamed() bool { return m.Stream != nil }

// Mipmaps is the total mip count, counting the inline level.
func (m *ImageMetadata) Mipmaps() uint32 { return m.StreamMipmaps + 1 }

func (d *decoder) image() *ImageMetadata {
	m := &ImageMetadata{}
	m.UnknownShort1 = d.u16()
	w := d.u16()
	m.Width, m.WidthCrop = w&0x3FFF, uint8(w>>14)
	h := d.u16()
	m.Height, m.HeightCrop = h&0x3FFF, uint8(h>>14)
	m.UnknownShort2 = d.u16()
	m.UnknownByte1 = d.u8()
	m.Format = PixelFormat(d.u8())
	if d.err == nil && m.Format > PixelFormatInvalid {
		d.fail(assertf("image format %#x", uint8(m.Format)))
	}
	m.UnknownByte2 = d.u8()
	m.UnknownByte3 = d.u8()
	copy(m.Magic[:], d.take(4))
	copy(m.MaybeHash[:], d.take(16))
	m.ChunkSize = d.u32()

	switch d.layout.Image {
	case ImageLayoutPS4:
		d.imagePS4(m)
	default:
		d.imagePC(m)
	}
	return m
}

func (d *decoder) imagePadding(m *ImageMetadata) {
	n := int64(m.ChunkSize) - (int64(m.InlineSize) + 8)
	if n < 0 {
		d.fail(assertf("image chunk size %d smaller than inline size %d", m.ChunkSize, m.InlineSize))
		return
	}
	m.Padding = d.bytes(int(n))
}

func (d *decoder) imagePC(m *ImageMetadata) {
	m.InlineSize = d.u32()
	m.StreamSize = d.u32()
	if d.err != nil {
		return
	}
	if m.StreamSize > 0 {
		m.StreamMipmaps = d.u32()
		s := &StreamRef{CachePath: d.plainString(), Offset: d.u64(), Length: d.u64()}
		if d.err == nil && s.Length != uint64(m.StreamSize) {
			d.fail(assertf("image stream sizes %d and %d don't match", m.StreamSize, s.Length))
		}
		m.Stream = s
	} else {
		d.imagePadding(m)
	}
	m.Contents = d.bytes(int(m.InlineSize))
}

func (d *decoder) imagePS4(m *ImageMetadata) {
	m.SizeWithStream = d.u32()
	m.InlineSize = d.u32()
	if d.err != nil {
		return
	}
	if m.SizeWithStream == m.InlineSize {
		d.imagePadding(m)
		m.Contents = d.bytes(int(m.InlineSize))
		return
	}
	m.StreamSize = d.u32()
	if d.err == nil && uint64(m.SizeWithStream) != uint64(m.InlineSize)+uint64(m.StreamSize) {
		d.fail(assertf("image stream size doesn't add up: %d != %d + %d", m.SizeWithStream, m.InlineSize, m.StreamSize))
	}
	m.StreamMipmaps = d.u32()
	m.Contents = d.bytes(int(m.InlineSize))
	s := &StreamRef{CachePath: d.plainString()}
	start, end := d.u64(), d.u64()
	if d.err == nil && end < start {
		d.fail(assertf("image stream ends at %d before it starts at %d", end, start))
	}
	s.Offset, s.Length = start, end-start
	m.Stream = s
}
