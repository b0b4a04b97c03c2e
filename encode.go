package decima

import (
	"fmt"
)

// payloadEncoder is implemented by resources that can be re-serialized from
// their fields.
type payloadEncoder interface {
	encodePayload(w *writer, l Layout) error
}

// Encodable reports whether r is re-serialized from its fields by Encode
// rather than copied from its raw capture.
func Encodable(r Resource) bool {
	_, ok := r.(payloadEncoder)
	return ok
}

// Encode serializes r as one record, header included, using layout l.
//
// Resources with an encoder (LocalizedText and PrefetchList) are rebuilt from
// their fields and the header size is recomputed from the new payload. The id
// and type hash are kept. Every other resource is emitted from its raw
// capture, byte for byte.
//
// Encode returns ErrNotEncodable when r has neither an encoder nor a raw
// capture, which happens only for resources built by hand.
func Encode(r Resource, l Layout) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: resource is nil", ErrNotEncodable)
	}
	b := r.Info()
	if enc, ok := r.(payloadEncoder); ok {
		w := &writer{buf: make([]byte, 0, b.Size)}
		if err := enc.encodePayload(w, l); err != nil {
			return nil, err
		}
		return w.record(b.TypeHash)
	}
	if raw := r.Raw(); raw != nil {
		return append([]byte(nil), raw...), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotEncodable, b.TypeName)
}

// Encode serializes r with the registry's layout.
func (r *Registry) Encode(res Resource) ([]byte, error) { return Encode(res, r.layout) }
