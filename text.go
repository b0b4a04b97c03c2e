package decima

import "fmt"

// SentenceGroupType orders the sentences of a group.
type SentenceGroupType uint32

const (
	SentenceGroupNormal SentenceGroupType = iota
	SentenceGroupOneOfRandom
	SentenceGroupOneOfInOrder
)

func (t SentenceGroupType) String() string {
	switch t {
	case SentenceGroupNormal:
		return "Normal"
	case SentenceGroupOneOfRandom:
		return "OneOfRandom"
	case SentenceGroupOneOfInOrder:
		return "OneOfInOrder"
	}
	return fmt.Sprintf("SentenceGroupType(%d)", uint32(t))
}

// Sentence is a SentenceResource: one line of dialogue.
type Sentence struct {
	Base
	Name      string
	Unknown   uint32
	Flags     [2]int8
	Sound     Ref // LocalizedSimpleSoundResource
	Animation Ref
	Text      Ref // LocalizedTextResource
	Voice     Ref // VoiceResource
}

func (s *Sentence) String() string { return s.TypeName + ": " + s.Name }

func decodeSentence(d *decoder) (Resource, error) {
	s := &Sentence{Base: d.header()}
	s.Name = d.name()
	s.Unknown = d.u32()
	s.Flags = [2]int8{d.i8(), d.i8()}
	s.Sound = d.ref()
	s.Animation = d.ref()
	s.Text = d.ref()
	s.Voice = d.ref()
	return s, d.err
}

// SentenceGroup is a SentenceGroupResource.
type SentenceGroup struct {
	Base
	Name      string
	Order     SentenceGroupType
	Sentences []Ref // SentenceResource
}

func (g *SentenceGroup) String() string { return g.TypeName + ": " + g.Name }

func decodeSentenceGroup(d *decoder) (Resource, error) {
	g := &SentenceGroup{Base: d.header()}
	g.Name = d.name()
	g.Order = SentenceGroupType(d.u32())
	if d.err == nil && g.Order > SentenceGroupOneOfInOrder {
		d.fail(assertf("SentenceGroupResource %s: sentence group type %d", g.Name, uint32(g.Order)))
	}
	g.Sentences = d.refs()
	return g, d.err
}

// Voice is a VoiceResource: a speaking character.
type Voice struct {
	Base
	Name    string
	Unknown [4]byte
	Flag    int8
	Text    Ref // LocalizedTextResource holding the display name
}

func (v *Voice) String() string { return v.TypeName + ": " + v.Name }

func decodeVoice(d *decoder) (Resource, error) {
	v := &Voice{Base: d.header()}
	v.Name = d.name()
	copy(v.Unknown[:], d.take(4))
	v.Flag = d.i8()
	v.Text = d.ref()
	return v, d.err
}

// VoiceSignals is a VoiceSignalsResource.
type VoiceSignals struct {
	Base
	Name      string
	Voice     Ref
	Sentences []Ref
}

func (v *VoiceSignals) String() string { return v.TypeName + ": " + v.Name }

func decodeVoiceSignals(d *decoder) (Resource, error) {
	v := &VoiceSignals{Base: d.header()}
	v.Name = d.name()
	v.Voice = d.ref()
	v.Sentences = d.refs()
	return v, d.err
}

// VoiceComponent is a VoiceComponentResource.
type VoiceComponent struct {
	Base
	Name    string
	Signals []Ref // VoiceSignalsResource
}

func (v *VoiceComponent) String() string { return v.TypeName + ": " + v.Name }

func decodeVoiceComponent(d *decoder) (Resource, error) {
	v := &VoiceComponent{Base: d.header()}
	v.Name = d.name()
	v.Signals = d.refs()
	return v, d.err
}

// ObjectCollection lists the objects of a container, in order.
type ObjectCollection struct {
	Base
	Objects []Ref
}

func decodeObjectCollection(d *decoder) (Resource, error) {
	c := &ObjectCollection{Base: d.header()}
	c.Objects = d.refs()
	return c, d.err
}
