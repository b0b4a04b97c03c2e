package decima

import (
	"fmt"
	"strings"
)

// TextLanguage indexes the slots of a LocalizedTextResource.
type TextLanguage int

const (
	English TextLanguage = iota
	French
	Spanish
	German
	Italian
	Dutch
	Portuguese
	TraditionalChinese
	Korean
	Russian
	Polish
	Danish
	Finnish
	Norwegian
	Swedish
	Japanese
	LatinAmericanSpanish
	BrazilianPortuguese
	Turkish
	Arabic
	SimplifiedChinese
	English2 // Death Stranding only, from here on
	Greek
	Czech
	Hungarian
)

var textLanguageNames = []string{
	"English", "French", "Spanish", "German", "Italian", "Dutch", "Portuguese",
	"TraditionalChinese", "Korean", "Russian", "Polish", "Danish", "Finnish",
	"Norwegian", "Swedish", "Japanese", "LatinAmericanSpanish", "BrazilianPortuguese",
	"Turkish", "Arabic", "SimplifiedChinese", "English2", "Greek", "Czech", "Hungarian",
}

func (l TextLanguage) String() string {
	if l >= 0 && int(l) < len(textLanguageNames) {
		return textLanguageNames[l]
	}
	return "TextLanguage(?)"
}

// ParseTextLanguage matches a language name case-insensitively.
func ParseTextLanguage(s string) (TextLanguage, bool) {
	for i, n := range textLanguageNames {
		if strings.EqualFold(n, s) {
			return TextLanguage(i), true
		}
	}
	return 0, false
}

// TextSlot is one language of a LocalizedTextResource.
type TextSlot struct {
	Text    string
	Trailer []byte // len is Layout.TextTrailer
}

// LocalizedText is a LocalizedTextResource: a fixed number of per-language
// strings. The slot count and trailer length depend on the variant.
type LocalizedText struct {
	Base
	Slots []TextSlot
}

// Text returns the slot for lang, or "" if the layout has no such slot.
func (t *LocalizedText) Text(lang TextLanguage) string {
	if lang < 0 || int(lang) >= len(t.Slots) {
		return ""
	}
	return t.Slots[lang].Text
}

// SetText replaces the slot for lang. It reports false if there is no such slot.
func (t *LocalizedText) SetText(lang TextLanguage, text string) bool {
	if lang < 0 || int(lang) >= len(t.Slots) {
		return false
	}
	t.Slots[lang].Text = text
	return true
}

func (t *LocalizedText) String() string { return strings.TrimSpace(t.Text(English)) }

func decodeLocalizedText(d *decoder) (Resource, error) {
	t := &LocalizedText{Base: d.header(), Slots: make([]TextSlot, d.layout.TextSlots)}
	for i := range t.Slots {
		n := int(d.u16())
		t.Slots[i].Text = string(d.take(n))
		if d.layout.TextTrailer > 0 {
			t.Slots[i].Trailer = d.bytes(d.layout.TextTrailer)
		}
	}
	return t, d.err
}

func (t *LocalizedText) encodePayload(w *writer, l Layout) error {
	if len(t.Slots) != l.TextSlots {
		return assertf("LocalizedTextResource %s: has %d slots, layout wants %d", t.ID, len(t.Slots), l.TextSlots)
	}
	w.id(t.ID)
	for i, s := range t.Slots {
		if len(s.Text) > 0xFFFF {
			return fmt.Errorf("%w: LocalizedTextResource %s: slot %d text of %d bytes", ErrLimitExceeded, t.ID, i, len(s.Text))
		}
		w.u16(uint16(len(s.Text)))
		w.raw([]byte(s.Text))
		if l.TextTrailer > 0 {
			trailer := make([]byte, l.TextTrailer)
			copy(trailer, s.Trailer)
			w.raw(trailer)
		}
	}
	return nil
}
