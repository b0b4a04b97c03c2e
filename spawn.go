package decima

// SpawnSetup describes how a character is spawned.
type SpawnSetup struct {
	Base
	Name                  string
	GraphCondition        Ref
	Impostor              Ref
	Humanoid              Ref
	GraphProgram          Ref
	Faction               Ref
	UnknownRefs1          []Ref
	UnknownRefs2          []Ref
	UnknownInts           [3]int32
	UnknownByte           int8
	UnknownRefs3          []Ref
	InventoryCollection   Ref
	CombatBehavior        Ref
	BodyVariant           Ref // HumanoidBodyVariant or HumanoidBodyVariantGroup
	CombatProperties      Ref
	CombatPropertiesFacts Ref
}

func (s *SpawnSetup) String() string { return s.TypeName + ": " + s.Name }

func decodeSpawnSetup(d *decoder) (Resource, error) {
	s := &SpawnSetup{Base: d.header()}
	s.Name = d.name()
	s.GraphCondition = d.ref()
	s.Impostor = d.ref()
	s.Humanoid = d.ref()
	s.GraphProgram = d.ref()
	s.Faction = d.ref()
	s.UnknownRefs1 = d.refs()
	s.UnknownRefs2 = d.refs()
	for i := range s.UnknownInts {
		s.UnknownInts[i] = d.i32()
	}
	s.UnknownByte = d.i8()
	s.UnknownRefs3 = d.refs()
	s.InventoryCollection = d.ref()
	s.CombatBehavior = d.ref()
	s.BodyVariant = d.ref()
	s.CombatProperties = d.ref()
	s.CombatPropertiesFacts = d.ref()
	return s, d.err
}

// SpawnSetupEntry is a weighted member of a SpawnSetupGroup.
type SpawnSetupEntry struct {
	Weight float32
	Setup  Ref // SpawnSetup or SpawnSetupGroup
}

type SpawnSetupGroup struct {
	Base
	Name        string
	BooleanFact Ref
	Unknown2    Ref
	Entries     []SpawnSetupEntry
}

func (g *SpawnSetupGroup) String() string { return g.TypeName + ": " + g.Name }

func decodeSpawnSetupGroup(d *decoder) (Resource, error) {
	g := &SpawnSetupGroup{Base: d.header()}
	g.Name = d.name()
	g.BooleanFact = d.ref()
	g.Unknown2 = d.nullRef("SpawnSetupGroup.Unknown2")
	n := d.count(5)
	for i := 0; i < n && d.err == nil; i++ {
		g.Entries = append(g.Entries, SpawnSetupEntry{Weight: d.f32(), Setup: d.ref()})
	}
	return g, d.err
}

type HumanoidBodyVariant struct {
	Base
	Name                string
	ModelPart           Ref
	AbilityPoseDeformer Ref
	UnknownRefs1        []Ref
	UnknownRefs2        []Ref
	UnknownRefs3        []Ref
	UnknownRef4         Ref
	UnknownInt5         uint32
	UnknownRef6         Ref
	UnknownInt7         uint32
	UnknownFloat8       float32
	UnknownRefs9        []Ref
	UnknownStrings10    []string
}

func (h *HumanoidBodyVariant) String() string { return h.TypeName + ": " + h.Name }

func decodeHumanoidBodyVariant(d *decoder) (Resource, error) {
	h := &HumanoidBodyVariant{Base: d.header()}
	h.Name = d.name()
	h.ModelPart = d.ref()
	h.AbilityPoseDeformer = d.ref()
	h.UnknownRefs1 = d.refs()
	h.UnknownRefs2 = d.refs()
	h.UnknownRefs3 = d.refs()
	h.UnknownRef4 = d.ref()
	h.UnknownInt5 = d.u32()
	h.UnknownRef6 = d.ref()
	h.UnknownInt7 = d.u32()
	h.UnknownFloat8 = d.f32()
	h.UnknownRefs9 = d.refs()
	n := d.count(4)
	for i := 0; i < n && d.err == nil; i++ {
		h.UnknownStrings10 = append(h.UnknownStrings10, d.name())
	}
	return h, d.err
}

type HumanoidBodyVariantGroup struct {
	Base
	Name     string
	Variants []Ref // HumanoidBodyVariant
}

func (g *HumanoidBodyVariantGroup) String() string { return g.TypeName + ": " + g.Name }

func decodeHumanoidBodyVariantGroup(d *decoder) (Resource, error) {
	g := &HumanoidBodyVariantGroup{Base: d.header()}
	g.Name = d.name()
	g.Variants = d.refs()
	return g, d.err
}

// CharacterDescription is a CharacterDescriptionComponentResource.
type CharacterDescription struct {
	Base
	Name          string
	CharacterName Ref // LocalizedTextResource
	Unknown1      Ref
	TypeClass     Ref
	Unknown2      Ref
}

func (c *CharacterDescription) String() string { return c.TypeName + ": " + c.Name }

func decodeCharacterDescription(d *decoder) (Resource, error) {
	c := &CharacterDescription{Base: d.header()}
	c.Name = d.name()
	c.CharacterName = d.ref()
	c.Unknown1 = d.nullRef("CharacterDescriptionComponentResource.Unknown1")
	c.TypeClass = d.ref()
	c.Unknown2 = d.nullRef("CharacterDescriptionComponentResource.Unknown2")
	return c, d.err
}

// FocusScannedInfo is what the focus device shows for a target.
type FocusScannedInfo struct {
	Base
	Name                 string
	Title                Ref // LocalizedTextResource
	DescriptionAlternate Ref // LocalizedTextResource
	Description          Ref // LocalizedTextResource
	TargetType           Ref
	Categories           []Ref
	ScannableBody        Ref
	OutlineSettings      Ref
	Properties           []Ref
	GraphCondition       Ref
}

func (f *FocusScannedInfo) String() string { return f.TypeName + ": " + f.Name }

func decodeFocusScannedInfo(d *decoder) (Resource, error) {
	f := &FocusScannedInfo{Base: d.header()}
	f.Name = d.name()
	f.Title = d.ref()
	f.DescriptionAlternate = d.ref()
	f.Description = d.ref()
	f.TargetType = d.ref()
	f.Categories = d.refs()
	f.ScannableBody = d.ref()
	f.OutlineSettings = d.ref()
	f.Properties = d.refs()
	f.GraphCondition = d.ref()
	return f, d.err
}

// FocusTargetComponent is a FocusTargetComponentResource.
type FocusTargetComponent struct {
	Base
	Name          string
	BooleanFact   Ref
	UnknownShort1 int16
	UnknownShort2 int16
	UnknownFloat  float32
	ScannedInfo   Ref // FocusScannedInfo
	UnknownRefs   []Ref
	UnknownByte2  int8
	TrackingPath  Ref
}

func (f *FocusTargetComponent) String() string { return f.TypeName + ": " + f.Name }

func decodeFocusTargetComponent(d *decoder) (Resource, error) {
	f := &FocusTargetComponent{Base: d.header()}
	f.Name = d.name()
	f.BooleanFact = d.ref()
	f.UnknownShort1 = d.i16()
	f.UnknownShort2 = d.i16()
	if v := d.u32(); d.err == nil && v != 0 {
		d.fail(assertf("FocusTargetComponentResource %s: expected zero int, got %d", f.Name, v))
	}
	f.UnknownFloat = d.f32()
	if v := d.u8(); d.err == nil && v != 0 {
		d.fail(assertf("FocusTargetComponentResource %s: expected zero byte, got %d", f.Name, v))
	}
	f.ScannedInfo = d.ref()
	f.UnknownRefs = d.refs()
	f.UnknownByte2 = d.i8()
	f.TrackingPath = d.ref()
	return f, d.err
}
