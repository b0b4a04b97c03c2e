package decima

// Prefixed is a resource whose id follows a short leading field. Only the
// prefix and id are decoded; Rest keeps the remainder of the payload.
type Prefixed struct {
	Base
	Prefix []byte
	Rest   []byte
}

func decodePrefixed(n int) decodeFunc {
	return func(d *decoder) (Resource, error) {
		p := &Prefixed{}
		p.Prefix = d.bytes(n)
		p.Base = d.header()
		p.Rest = d.rest()
		return p, d.err
	}
}

// NamedPrefixed is a Prefixed resource with a name after the id.
type NamedPrefixed struct {
	Base
	Prefix int16
	Name   string
	Rest   []byte
}

func (p *NamedPrefixed) String() string { return p.TypeName + ": " + p.Name }

func decodeNamedPrefixed(d *decoder) (Resource, error) {
	p := &NamedPrefixed{}
	p.Prefix = d.i16()
	p.Base = d.header()
	p.Name = d.name()
	p.Rest = d.rest()
	return p, d.err
}

// Entity is an EntityResource.
type Entity struct {
	Base
	Unknown1      int16
	Name          string
	UnknownBytes2 []byte
	UnknownRefs3  [3]Ref
	UnknownBytes4 []byte
	UnknownRefs5  [2]Ref
	Refs          []Ref
	UnknownFloat6 float32
	UnknownByte7  int8
}

func (e *Entity) String() string { return e.TypeName + ": " + e.Name }

func decodeEntity(d *decoder) (Resource, error) {
	e := &Entity{}
	e.Unknown1 = d.i16()
	e.Base = d.header()
	e.Name = d.name()
	e.UnknownBytes2 = d.bytes(6)
	for i := range e.UnknownRefs3 {
		e.UnknownRefs3[i] = d.ref()
	}
	e.UnknownBytes4 = d.bytes(15)
	for i := range e.UnknownRefs5 {
		e.UnknownRefs5[i] = d.ref()
	}
	e.Refs = d.refs()
	e.UnknownFloat6 = d.f32()
	e.UnknownByte7 = d.i8()
	return e, d.err
}

// InventoryEntity is an InventoryEntityResource. The fields after Refs are
// not decoded and stay in Rest.
type InventoryEntity struct {
	Base
	Unknown1      int16
	Name          string
	UnknownBytes2 []byte
	UnknownRef3   Ref
	UnknownBytes4 []byte
	MultiAction   Ref
	UnknownRef5   Ref
	Refs          []Ref
	Rest          []byte
}

func (e *InventoryEntity) String() string { return e.TypeName + ": " + e.Name }

func decodeInventoryEntity(d *decoder) (Resource, error) {
	e := &InventoryEntity{}
	e.Unknown1 = d.i16()
	e.Base = d.header()
	e.Name = d.name()
	e.UnknownBytes2 = d.bytes(7)
	e.UnknownRef3 = d.ref()
	e.UnknownBytes4 = d.bytes(16)
	e.MultiAction = d.ref()
	e.UnknownRef5 = d.ref()
	e.Refs = d.refs()
	e.Rest = d.rest()
	return e, d.err
}

// FacialAnimationComponent is a FacialAnimationComponentResource.
type FacialAnimationComponent struct {
	Base
	Name              string
	HeadMultiMesh     Ref
	Skeleton          Ref
	BoneBoundingBoxes Ref
	NeutralAnimation  Ref
	UnknownInts       [2]uint32
	FaceRigData       Ref
	Expressions       Ref
	Rest              []byte
}

func (f *FacialAnimationComponent) String() string { return f.TypeName + ": " + f.Name }

func decodeFacialAnimationComponent(d *decoder) (Resource, error) {
	f := &FacialAnimationComponent{Base: d.header()}
	f.Name = d.name()
	f.HeadMultiMesh = d.ref()
	f.Skeleton = d.ref()
	f.BoneBoundingBoxes = d.ref()
	f.NeutralAnimation = d.ref()
	f.UnknownInts = [2]uint32{d.u32(), d.u32()}
	f.FaceRigData = d.ref()
	f.Expressions = d.ref()
	f.Rest = d.rest()
	return f, d.err
}

// SkeletonAnimation is a SkeletonAnimationResource, kept as opaque data.
type SkeletonAnimation struct {
	Base
	Data []byte
}

func decodeSkeletonAnimation(d *decoder) (Resource, error) {
	s := &SkeletonAnimation{Base: d.header()}
	s.Data = d.rest()
	return s, d.err
}
