package decima

import "fmt"

// Texture is a standalone texture. The image is absent when the payload
// ends after the name.
type Texture struct {
	Base
	Name  string
	Image *ImageMetadata
}

func (t *Texture) String() string {
	if t.Image == nil {
		return t.TypeName + ": " + t.Name
	}
	return t.TypeName + ": " + t.Name + ", " + t.Image.describe()
}

func (m *ImageMetadata) describe() string {
	where := "internal"
	if m.Streamed() {
		where = fmt.Sprintf("streamed @%#x", m.Stream.Offset)
	}
	return fmt.Sprintf("%dx%d, %s, %s", m.Width, m.Height, m.Format, where)
}

func decodeTexture(d *decoder) (Resource, error) {
	t := &Texture{Base: d.header()}
	t.Name = d.name()
	if d.err == nil && d.remaining() > 0 {
		t.Image = d.image()
	}
	return t, d.err
}

// TextureSetType says what a texture channel carries.
type TextureSetType uint8

const (
	TextureSetInvalid TextureSetType = iota
	TextureSetColor
	TextureSetAlpha
	TextureSetNormal
	TextureSetReflectance
	TextureSetAO
	TextureSetRoughness
	TextureSetHeight
	TextureSetMask
	TextureSetMaskAlpha
	TextureSetIncandescence
	TextureSetTranslucencyDiffusion
	TextureSetTranslucencyAmount
	TextureSetMisc01
	TextureSetCount
)

// ChannelDetails packs the set type in the low nibble.
type ChannelDetails struct {
	Type    TextureSetType
	Unknown uint8
}

type TextureDetails struct {
	UnknownInt1 uint32
	UnknownInt2 uint32
	UnknownByte int8
	Channels    [4]ChannelDetails
	UnknownInt3 uint32
	Texture     Ref // Texture
}

type SourceDetails struct {
	Type           uint32
	SourceFilename string
	UnknownBytes   [2]int8
	UnknownInts    [3]uint32
	Width          uint32
	Height         uint32
	UnknownFloats  [4]float32
}

// TextureSet groups the textures of a material.
type TextureSet struct {
	Base
	Name     string
	Textures []TextureDetails
	Sources  []SourceDetails
}

func (t *TextureSet) String() string { return t.TypeName + ": " + t.Name }

const (
	textureDetailsSize = 4 + 4 + 1 + 4 + 4 + 1
	sourceDetailsSize  = 4 + 4 + 2 + 12 + 8 + 16
)

func decodeTextureSet(d *decoder) (Resource, error) {
	t := &TextureSet{Base: d.header()}
	t.Name = d.name()
	n := d.count(textureDetailsSize)
	for i := 0; i < n && d.err == nil; i++ {
		var td TextureDetails
		td.UnknownInt1 = d.u32()
		td.UnknownInt2 = d.u32()
		td.UnknownByte = d.i8()
		for c := range td.Channels {
			b := d.u8()
			td.Channels[c] = ChannelDetails{Type: TextureSetType(b & 0x0F), Unknown: b >> 4}
			if d.err == nil && td.Channels[c].Type > TextureSetCount {
				d.fail(assertf("TextureSet %s: channel set type %d", t.Name, b&0x0F))
			}
		}
		td.UnknownInt3 = d.u32()
		td.Texture = d.ref()
		t.Textures = append(t.Textures, td)
	}
	if zero := d.u32(); d.err == nil && zero != 0 {
		d.fail(assertf("TextureSet %s: expected zero after textures, got %d", t.Name, zero))
	}
	n = d.count(sourceDetailsSize)
	for i := 0; i < n && d.err == nil; i++ {
		var s SourceDetails
		s.Type = d.u32()
		if d.err == nil && s.Type > uint32(TextureSetCount) {
			d.fail(assertf("TextureSet %s: source set type %d", t.Name, s.Type))
		}
		s.SourceFilename = d.name()
		s.UnknownBytes = [2]int8{d.i8(), d.i8()}
		for j := range s.UnknownInts {
			s.UnknownInts[j] = d.u32()
		}
		s.Width = d.u32()
		s.Height = d.u32()
		for j := range s.UnknownFloats {
			s.UnknownFloats[j] = d.f32()
		}
		t.Sources = append(t.Sources, s)
	}
	return t, d.err
}

// UITexture carries up to two images, each stored in its own sized block.
type UITexture struct {
	Base
	Name          string
	InitialWidth  uint32
	InitialHeight uint32
	Sizes         [2]uint32
	Images        [2]*ImageMetadata
}

func (t *UITexture) String() string {
	if t.Images[1] == nil {
		return t.TypeName + ": " + t.Name
	}
	return t.TypeName + ": " + t.Name + ", " + t.Images[1].describe()
}

func decodeUITexture(d *decoder) (Resource, error) {
	t := &UITexture{Base: d.header()}
	t.Name = d.name()
	if second := d.name(); d.err == nil && second != t.Name {
		d.fail(assertf("UITexture names don't match: %q, %q", t.Name, second))
	}
	t.InitialWidth = d.u32()
	t.InitialHeight = d.u32()
	t.Sizes = [2]uint32{d.u32(), d.u32()}
	for i, size := range t.Sizes {
		if size == 0 || d.err != nil {
			continue
		}
		t.Images[i] = d.subImage(int(size))
	}
	return t, d.err
}

// subImage decodes an image from the next n bytes. The image must fill the
// block exactly.
func (d *decoder) subImage(n int) *ImageMetadata {
	block := d.take(n)
	if block == nil {
		return nil
	}
	sub := &decoder{reader: newReader(block), layout: d.layout, base: d.base}
	m := sub.image()
	if sub.err == nil && sub.remaining() != 0 {
		sub.fail(fmt.Errorf("%w: image block of %d bytes has %d unread", ErrSizeMismatch, n, sub.remaining()))
	}
	d.fail(sub.err)
	return m
}
