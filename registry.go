package decima

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
)

// LocalizedTextHash is the type hash of LocalizedTextResource.
const LocalizedTextHash TypeHash = 0x31BE502435317445

type decodeFunc func(d *decoder) (Resource, error)

type typeInfo struct {
	decode decodeFunc
	// idOffset is where the id sits in the payload. Most types start with it;
	// a few carry a leading field first.
	idOffset int
}

// decoders maps canonical type names to their decoders. Names that are absent
// still resolve through the type map but decode as raw captures.
var decoders = map[string]typeInfo{
	"LocalizedTextResource":                 {decode: decodeLocalizedText},
	"CreditsColumn":                         {decode: decodeCreditsColumn},
	"CreditsRow":                            {decode: decodeCreditsRow},
	"DataSourceCreditsResource":             {decode: decodeDataSourceCredits},
	"ObjectCollection":                      {decode: decodeObjectCollection},
	"SentenceResource":                      {decode: decodeSentence},
	"SentenceGroupResource":                 {decode: decodeSentenceGroup},
	"VoiceResource":                         {decode: decodeVoice},
	"VoiceSignalsResource":                  {decode: decodeVoiceSignals},
	"VoiceComponentResource":                {decode: decodeVoiceComponent},
	"LocalizedSimpleSoundResource":          {decode: decodeLocalizedSimpleSound},
	"LocalizedAnimationResource":            {decode: decodeLocalizedAnimation},
	"WaveResource":                          {decode: decodeWave, idOffset: 6},
	"Texture":                               {decode: decodeTexture},
	"TextureSet":                            {decode: decodeTextureSet},
	"UITexture":                             {decode: decodeUITexture},
	"PrefetchList":                          {decode: decodePrefetchList},
	"LootData":                              {decode: decodeLootData},
	"LootItem":                              {decode: decodeLootItem},
	"LootSlot":                              {decode: decodeLootSlot},
	"InventoryLootPackageComponentResource": {decode: decodeInventoryLootPackage},
	"InventoryItemComponentResource":        {decode: decodeInventoryItemComponent},
	"CharacterDescriptionComponentResource": {decode: decodeCharacterDescription},
	"FocusScannedInfo":                      {decode: decodeFocusScannedInfo},
	"FocusTargetComponentResource":          {decode: decodeFocusTargetComponent},
	"HumanoidBodyVariant":                   {decode: decodeHumanoidBodyVariant},
	"HumanoidBodyVariantGroup":              {decode: decodeHumanoidBodyVariantGroup},
	"SpawnSetup":                            {decode: decodeSpawnSetup},
	"SpawnSetupGroup":                       {decode: decodeSpawnSetupGroup},
	"FacialAnimationComponentResource":      {decode: decodeFacialAnimationComponent},
	"SkeletonAnimationResource":             {decode: decodeSkeletonAnimation},
	"EntityResource":                        {decode: decodeEntity, idOffset: 2},
	"InventoryEntityResource":               {decode: decodeInventoryEntity, idOffset: 2},
	"EntityProjectileAmmoResource":          {decode: decodeNamedPrefixed, idOffset: 2},
	"InventoryAmmoEjectorResource":          {decode: decodeNamedPrefixed, idOffset: 2},
	"AmmoResource":                          {decode: decodePrefixed(2), idOffset: 2},
	"DamageAreaResource":                    {decode: decodePrefixed(2), idOffset: 2},
	"ExplosionResource":                     {decode: decodePrefixed(2), idOffset: 2},
	"InventoryActionAbilityResource":        {decode: decodePrefixed(2), idOffset: 2},
	"ThrowableResource":                     {decode: decodePrefixed(2), idOffset: 2},
	"CollisionTrigger":                      {decode: decodePrefixed(4), idOffset: 4},
	"FactCollisionTrigger":                  {decode: decodePrefixed(4), idOffset: 4},
	"PhysicsCollisionResource":              {decode: decodePrefixed(4), idOffset: 4},
	"OutOfBoundsNavMeshArea":                {decode: decodePrefixed(60), idOffset: 60},
}

// builtinTypeMap holds the hashes known without a type-map file.
func builtinTypeMap(Variant) map[TypeHash]string {
	return map[TypeHash]string{
		LocalizedTextHash: "LocalizedTextResource",
	}
}

// Registry maps type hashes to names and decoders for one variant. A Registry
// is immutable after construction and safe for concurrent use.
type Registry struct {
	variant Variant
	layout  Layout
	types   map[TypeHash]string
}

// NewRegistry builds the registry for v. Entries in typeMap are added to, and
// override, the built-in entries for v.
func NewRegistry(v Variant, typeMap map[TypeHash]string) *Registry {
	types := builtinTypeMap(v)
	maps.Copy(types, typeMap)
	return &Registry{variant: v, layout: DefaultLayout(v), types: types}
}

// withLayout returns a copy of r that decodes with l.
func (r *Registry) withLayout(l Layout) *Registry {
	c := *r
	c.layout = l
	return &c
}

func (r *Registry) Variant() Variant { return r.variant }

func (r *Registry) Layout() Layout { return r.layout }

// Name returns the canonical name for h, or UnknownTypeName.
func (r *Registry) Name(h TypeHash) string {
	if n, ok := r.types[h]; ok {
		return n
	}
	return UnknownTypeName
}

// Decodable reports whether records of type h get a typed decode.
func (r *Registry) Decodable(h TypeHash) bool {
	_, ok := decoders[r.Name(h)]
	return ok
}

// HashesOf returns every hash mapped to name, in ascending order.
func (r *Registry) HashesOf(name string) []TypeHash {
	var out []TypeHash
	for h, n := range r.types {
		if n == name {
			out = append(out, h)
		}
	}
	slices.Sort(out)
	return out
}

// RecordID returns the id of rec, taking the type's id position into account.
func (r *Registry) RecordID(rec Record) (ID, bool) {
	off := decoders[r.Name(rec.Type)].idOffset
	p := rec.Payload()
	var id ID
	if len(p) < off+len(id) {
		return id, false
	}
	copy(id[:], p[off:])
	return id, true
}

// Decode decodes one record, requiring the decoder to consume exactly the
// declared payload.
func (r *Registry) Decode(rec Record) (Resource, error) {
	return r.decode(rec, false, zap.NewNop())
}

func (r *Registry) decode(rec Record, lenient bool, log *zap.Logger) (Resource, error) {
	name := r.Name(rec.Type)
	base := Base{TypeHash: rec.Type, TypeName: name, Size: rec.Size, raw: rec.Bytes}
	id, hasID := r.RecordID(rec)
	base.ID = id

	info, ok := decoders[name]
	if !ok {
		if hasID && id[0] == 0 && id[1] == 0 {
			log.Debug("raw record id starts with a zero short", zap.String("type", name), zap.Stringer("id", id))
		}
		return &RawResource{Base: base}, nil
	}

	d := &decoder{reader: newReader(rec.Payload()), layout: r.layout, base: base}
	res, err := info.decode(d)
	if err != nil {
		if errors.Is(err, errOverrun) {
			err = fmt.Errorf("%w: %v", ErrSizeMismatch, err)
		}
		return nil, rec.errorf(name, id, hasID, err)
	}
	if left := d.remaining(); left != 0 {
		mismatch := fmt.Errorf("%w: expected %d bytes, read %d", ErrSizeMismatch, HeaderSize+int(rec.Size), HeaderSize+d.off)
		if !lenient {
			return nil, rec.errorf(name, id, hasID, mismatch)
		}
		log.Warn("record not fully decoded",
			zap.String("type", name),
			zap.Stringer("id", id),
			zap.Int64("offset", rec.Offset),
			zap.Int("unread", left))
	}
	return res, nil
}

// decoder is the state handed to a type's decode function.
type decoder struct {
	*reader
	layout Layout
	base   Base
}

// header reads the record id and returns the common fields.
func (d *decoder) header() Base {
	d.base.ID = d.id()
	return d.base
}
