package decima

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	// HeaderSize is the length of the type hash and size prefix of every record.
	HeaderSize = 12

	// UnknownTypeName is reported for type hashes absent from the type map.
	UnknownTypeName = "Unknown"
)

// ID identifies a resource within and across containers.
type ID [16]byte

func (id ID) String() string { return hex.EncodeToString(id[:]) }

// ParseID decodes a 32 character hex id.
func ParseID(s string) (ID, error) {
	var id ID
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return id, fmt.Errorf("parse id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("parse id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// TypeHash is the 64-bit type tag at the start of every record.
type TypeHash uint64

// String formats the hash the way type-map files key it: upper-case hex of the
// little-endian value, without padding.
func (h TypeHash) String() string { return strings.ToUpper(strconv.FormatUint(uint64(h), 16)) }

// ParseTypeHash is the inverse of TypeHash.String.
func ParseTypeHash(s string) (TypeHash, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse type hash %q: %w", s, err)
	}
	return TypeHash(v), nil
}

// Variant selects the physical layouts and type map for one game build.
type Variant uint8

const (
	VariantHorizonPC Variant = iota
	VariantHorizonPS4
	VariantDeathStrandingPC
)

var variantNames = map[Variant]string{
	VariantHorizonPC:        "hzd-pc",
	VariantHorizonPS4:       "hzd-ps4",
	VariantDeathStrandingPC: "ds-pc",
}

func (v Variant) String() string {
	if n, ok := variantNames[v]; ok {
		return n
	}
	return "variant(" + strconv.Itoa(int(v)) + ")"
}

// ParseVariant accepts the names printed by Variant.String.
func ParseVariant(s string) (Variant, error) {
	for v, n := range variantNames {
		if strings.EqualFold(n, s) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// ImageLayout distinguishes the two on-disk image header layouts.
type ImageLayout uint8

const (
	ImageLayoutPC ImageLayout = iota
	ImageLayoutPS4
)

// Layout is the set of variant-dependent field layouts.
type Layout struct {
	TextSlots   int // language slots in a LocalizedTextResource
	TextTrailer int // bytes after each slot's text
	Image       ImageLayout
}

// DefaultLayout returns the layout used by v.
func DefaultLayout(v Variant) Layout {
	switch v {
	case VariantHorizonPS4:
		return Layout{TextSlots: 21, Image: ImageLayoutPS4}
	case VariantDeathStrandingPC:
		return Layout{TextSlots: 25, TextTrailer: 3, Image: ImageLayoutPC}
	default:
		return Layout{TextSlots: 21, Image: ImageLayoutPC}
	}
}

// Base holds the fields every decoded record carries.
type Base struct {
	TypeHash TypeHash
	TypeName string
	ID       ID
	Size     uint32 // payload length, header excluded
	raw      []byte // the full HeaderSize+Size bytes as read
}

// Info returns the common record fields.
func (b *Base) Info() *Base { return b }

// Raw returns the record bytes exactly as they were read, header included.
func (b *Base) Raw() []byte { return b.raw }

func (b *Base) String() string { return b.TypeName + ": " + b.ID.String() }

func (*Base) sealed() {}

// Resource is a decoded record. The set of implementations is closed; use a
// type switch over the concrete types and treat *RawResource as the fallback.
type Resource interface {
	Info() *Base
	Raw() []byte
	sealed()
}

// RawResource is the capture of a record whose type has no decoder.
type RawResource struct {
	Base
}

// Data returns the captured record bytes, header included.
func (r *RawResource) Data() []byte { return r.raw }
