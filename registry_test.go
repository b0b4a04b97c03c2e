package decima

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUnknownTypeDecodesRaw(t *testing.T) {
	reg := testRegistry(VariantHorizonPC)
	rec := rawRecord(testID(7), 9, 9)
	res, err := reg.DecodeAll(rec)
	if err != nil {
		t.Fatal(err)
	}
	raw, ok := res[0].(*RawResource)
	if !ok {
		t.Fatalf("got %T, want *RawResource", res[0])
	}
	if raw.TypeName != UnknownTypeName || raw.ID != testID(7) || raw.Size != 18 {
		t.Fatalf("base = %+v", raw.Base)
	}
	out, err := reg.Encode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, rec) {
		t.Fatal("raw capture did not re-encode byte for byte")
	}
}

func TestMappedNameWithoutDecoderIsRaw(t *testing.T) {
	h := TypeHash(0x1234)
	reg := NewRegistry(VariantHorizonPC, map[TypeHash]string{h: "ModelResource"})
	res, err := reg.DecodeAll(record(h, (&payload{}).id(testID(3)).zeros(5).b))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res[0].(*RawResource); !ok || res[0].Info().TypeName != "ModelResource" {
		t.Fatalf("got %T %q", res[0], res[0].Info().TypeName)
	}
	if reg.Decodable(h) {
		t.Fatal("ModelResource reported decodable")
	}
}

func TestBuiltinTypeMap(t *testing.T) {
	reg := NewRegistry(VariantHorizonPS4, nil)
	if reg.Name(LocalizedTextHash) != "LocalizedTextResource" || !reg.Decodable(LocalizedTextHash) {
		t.Fatal("LocalizedTextResource missing from built-ins")
	}
	if reg.Name(unknownHash) != UnknownTypeName {
		t.Fatal("unexpected name for unknown hash")
	}
}

func TestStrictSizeMismatch(t *testing.T) {
	reg := testRegistry(VariantHorizonPC)
	p := (&payload{}).id(testID(1))
	for i := 0; i < 21; i++ {
		p.u16(0)
	}
	p.u8(0xFF)
	_, err := reg.DecodeAll(record(LocalizedTextHash, p.b))
	var re *RecordError
	if !errors.Is(err, ErrSizeMismatch) || !errors.As(err, &re) {
		t.Fatalf("err = %v", err)
	}
	if re.TypeName != "LocalizedTextResource" || re.ID != testID(1) || re.Offset != 0 {
		t.Fatalf("record error = %+v", re)
	}
}

func TestLenientSizesWarn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSession(WithTypeMap(testTypeMap()), WithLenientSizes(true), WithLogger(zap.New(core)))

	data := append(textRecord(testID(1), s.Registry().Layout(), "hi"), 0, 0)
	data[8] += 2
	res, err := s.LoadBytes("mem", data)
	if err != nil {
		t.Fatal(err)
	}
	if res[0].(*LocalizedText).Text(English) != "hi" {
		t.Fatalf("text = %q", res[0].(*LocalizedText).Text(English))
	}
	entries := logs.FilterMessage("record not fully decoded").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warnings", len(entries))
	}
	if got := entries[0].ContextMap()["unread"]; got != int64(2) {
		t.Fatalf("unread = %v", got)
	}
}

func TestOverrunIsSizeMismatchEvenWhenLenient(t *testing.T) {
	s := NewSession(WithTypeMap(testTypeMap()), WithLenientSizes(true))
	rec := textRecord(testID(1), s.Registry().Layout(), "hello")
	trunc := append([]byte(nil), rec[:len(rec)-3]...)
	trunc[8] -= 3
	if _, err := s.LoadBytes("mem", trunc); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("err = %v", err)
	}
	if s.Len() != 0 {
		t.Fatal("failed load merged objects")
	}
}

func TestRecordIDOffsets(t *testing.T) {
	reg := testRegistry(VariantHorizonPC)
	id := testID(0x42)
	cases := []struct {
		name string
		lead int
	}{
		{"LocalizedTextResource", 0},
		{"EntityResource", 2},
		{"CollisionTrigger", 4},
		{"WaveResource", 6},
		{"OutOfBoundsNavMeshArea", 60},
	}
	for _, c := range cases {
		body := (&payload{}).zeros(c.lead).id(id).b
		rec := Record{Type: testHash(c.name), Size: uint32(len(body)), Bytes: record(testHash(c.name), body)}
		got, ok := reg.RecordID(rec)
		if !ok || got != id {
			t.Errorf("%s: id = %v, %v", c.name, got, ok)
		}
	}

	short := record(testHash("OutOfBoundsNavMeshArea"), make([]byte, 40))
	if _, ok := reg.RecordID(Record{Type: testHash("OutOfBoundsNavMeshArea"), Size: 40, Bytes: short}); ok {
		t.Fatal("short payload reported an id")
	}
}

func TestHashesOf(t *testing.T) {
	reg := NewRegistry(VariantHorizonPC, map[TypeHash]string{3: "A", 1: "A", 2: "B"})
	got := reg.HashesOf("A")
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("HashesOf = %v", got)
	}
	if len(reg.HashesOf("LocalizedTextResource")) != 1 {
		t.Fatal("built-in hash missing")
	}
}
