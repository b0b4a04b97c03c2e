package decima

import "fmt"

// AudioLanguage indexes the per-language sound entries.
type AudioLanguage int

const (
	AudioEnglish AudioLanguage = iota
	AudioFrench
	AudioSpanish
	AudioGerman
	AudioItalian
	AudioPortuguese
	AudioRussian
	AudioPolish
	AudioJapanese
	AudioLatinAmericanSpanish
	AudioBrazilianPortuguese
	AudioArabic
)

const audioLanguageCount = 12

// Audio types seen in LocalizedSimpleSoundResource.
const (
	AudioTypeATRAC9    = 0x09
	AudioTypeMP3       = 0x0b
	AudioTypeATRAC9Alt = 0x0d
	AudioTypeAAC       = 0x0f // PS4 only
)

// SoundInfo locates one language's audio in the language stream file.
type SoundInfo struct {
	Size        uint32
	SampleCount uint32
	Start       uint32
}

func (d *decoder) soundInfo() *SoundInfo {
	s := &SoundInfo{}
	s.Size = d.u32()
	s.SampleCount = d.u32()
	zero0 := d.u32()
	s.Start = d.u32()
	zero1 := d.u32()
	size2 := d.u32()
	zero2 := d.u32()
	if d.err != nil {
		return s
	}
	if zero0 != 0 || zero1 != 0 || zero2 != 0 {
		d.fail(assertf("sound info padding is %d/%d/%d, want zero", zero0, zero1, zero2))
	}
	if size2 != s.Size {
		d.fail(assertf("sound info sizes %d and %d don't match", s.Size, size2))
	}
	return s
}

// LocalizedSimpleSound is a LocalizedSimpleSoundResource: one voice line in
// every audio language.
type LocalizedSimpleSound struct {
	Base
	Name             string
	UnknownFloats1   [17]float32
	UnknownBytes2    []byte
	UnknownFloats3   [9]float32
	UnknownBytes4    []byte
	StateRelativeMix Ref
	SoundPreset      Ref
	SoundFilename    string
	LanguageFlags    uint16
	UnknownByte5     uint8
	AudioType        int8
	UnknownBytes6    []byte
	SampleRate       uint32
	BitsPerSample    uint16
	BitRate          uint32
	UnknownShort8    uint16
	UnknownShort9    uint16
	Sounds           [audioLanguageCount]*SoundInfo // nil where LanguageFlags lacks the language
}

func (s *LocalizedSimpleSound) String() string { return s.TypeName + ": " + s.Name }

// Sound returns the entry for lang, or nil.
func (s *LocalizedSimpleSound) Sound(lang AudioLanguage) *SoundInfo {
	if lang < 0 || int(lang) >= len(s.Sounds) {
		return nil
	}
	return s.Sounds[lang]
}

// Extension is the usual file extension for the sound's encoding.
func (s *LocalizedSimpleSound) Extension() string {
	switch s.AudioType {
	case AudioTypeMP3:
		return "mp3"
	case AudioTypeATRAC9, AudioTypeATRAC9Alt:
		return "at9"
	case AudioTypeAAC:
		return "aac"
	}
	return "vgmstream"
}

func decodeLocalizedSimpleSound(d *decoder) (Resource, error) {
	s := &LocalizedSimpleSound{Base: d.header()}
	s.Name = d.name()
	for i := range s.UnknownFloats1 {
		s.UnknownFloats1[i] = d.f32()
	}
	s.UnknownBytes2 = d.bytes(17)
	for i := range s.UnknownFloats3 {
		s.UnknownFloats3[i] = d.f32()
	}
	s.UnknownBytes4 = d.bytes(3)
	s.StateRelativeMix = d.ref()
	s.SoundPreset = d.ref()
	s.SoundFilename = d.plainString()
	s.LanguageFlags = d.u16()
	if d.err == nil && s.LanguageFlags > 0xFFF {
		d.fail(assertf("LocalizedSimpleSoundResource %s: language flags %#x", s.Name, s.LanguageFlags))
	}
	s.UnknownByte5 = d.u8()
	s.AudioType = d.i8()
	switch s.AudioType {
	case AudioTypeATRAC9, AudioTypeMP3, AudioTypeATRAC9Alt, AudioTypeAAC:
	default:
		d.fail(assertf("LocalizedSimpleSoundResource %s: audio type %#x", s.Name, s.AudioType))
	}
	s.UnknownBytes6 = d.bytes(4)
	s.SampleRate = d.u32()
	s.BitsPerSample = d.u16()
	s.BitRate = d.u32()
	s.UnknownShort8 = d.u16()
	s.UnknownShort9 = d.u16()
	for i := range s.Sounds {
		if s.LanguageFlags&(1<<i) != 0 {
			s.Sounds[i] = d.soundInfo()
		}
	}
	return s, d.err
}

// LocalizedAnimation is a LocalizedAnimationResource.
type LocalizedAnimation struct {
	Base
	Unknown1 uint32
	Unknown2 uint32
	Unknown3 Ref
}

func decodeLocalizedAnimation(d *decoder) (Resource, error) {
	a := &LocalizedAnimation{Base: d.header()}
	a.Unknown1 = d.u32()
	a.Unknown2 = d.u32()
	a.Unknown3 = d.ref()
	return a, d.err
}

// WaveEncoding is the codec of a WaveResource.
type WaveEncoding uint32

const (
	WavePCM WaveEncoding = iota
	WavePCMFloat
	WaveXWMA
	WaveATRAC9
	WaveMP3
	WaveADPCM
	WaveAAC
)

var waveEncodingNames = [...]string{"PCM", "PCM_FLOAT", "XWMA", "ATRAC9", "MP3", "ADPCM", "AAC"}

func (e WaveEncoding) String() string {
	if int(e) < len(waveEncodingNames) {
		return waveEncodingNames[e]
	}
	return fmt.Sprintf("WaveEncoding(%d)", uint32(e))
}

// WaveQuality is the encoder quality setting of a WaveResource.
type WaveQuality uint32

const (
	WaveQualityUncompressed WaveQuality = iota
	WaveQualityLowest
	WaveQualityLow
	WaveQualityMedium
	WaveQualityHigh
	WaveQualityHighest
)

// Wave is a WaveResource. The id follows a quality field and two bytes.
type Wave struct {
	Base
	Quality          WaveQuality
	UnknownBytes1    [2]int8
	Name             string
	Sound            []byte // inline sound data
	SizeWithStream   uint32
	SampleRate       uint32
	Channels         int8
	Encoding         WaveEncoding
	UnknownShort4    uint16
	BitRate          uint32
	UnknownShort5    uint16
	UnknownShort6    uint16
	UnknownBytes7    []byte
	CacheString      string // set when part of the sound is streamed
	UnknownStreamInt [4]uint32
}

func (w *Wave) String() string { return w.TypeName + ": " + w.Name }

// Streamed reports whether part of the sound lives in a cache file.
func (w *Wave) Streamed() bool { return int(w.SizeWithStream) != len(w.Sound) }

func decodeWave(d *decoder) (Resource, error) {
	w := &Wave{}
	w.Quality = WaveQuality(d.u32())
	w.UnknownBytes1 = [2]int8{d.i8(), d.i8()}
	w.Base = d.header()
	if d.err == nil && w.Quality > WaveQualityHighest {
		d.fail(assertf("WaveResource %s: encoding quality %d", w.ID, uint32(w.Quality)))
	}
	w.Name = d.name()
	inline := d.u32()
	if inline > 0 {
		w.Sound = d.bytes(int(inline))
	}
	w.SizeWithStream = d.u32()
	w.SampleRate = d.u32()
	w.Channels = d.i8()
	w.Encoding = WaveEncoding(d.u32())
	if d.err == nil && w.Encoding > WaveAAC {
		d.fail(assertf("WaveResource %s: encoding %d", w.Name, uint32(w.Encoding)))
	}
	w.UnknownShort4 = d.u16()
	w.BitRate = d.u32()
	w.UnknownShort5 = d.u16()
	w.UnknownShort6 = d.u16()
	w.UnknownBytes7 = d.bytes(6)
	if w.SizeWithStream != inline {
		w.CacheString = d.plainString()
		for i := range w.UnknownStreamInt {
			w.UnknownStreamInt[i] = d.u32()
		}
	}
	return w, d.err
}
