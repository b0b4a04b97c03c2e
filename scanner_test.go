package decima

import (
	"bytes"
	"errors"
	"testing"
)

func TestScannerAdvancesByDeclaredSize(t *testing.T) {
	a := rawRecord(testID(1), 1, 2, 3)
	b := rawRecord(testID(2))
	data := container(a, b)

	sc := NewScanner(data)
	var got []Record
	for sc.Scan() {
		got = append(got, sc.Record())
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].Offset != 0 || got[1].Offset != int64(len(a)) {
		t.Fatalf("offsets %d, %d", got[0].Offset, got[1].Offset)
	}
	if !bytes.Equal(got[0].Bytes, a) || !bytes.Equal(got[1].Bytes, b) {
		t.Fatal("record bytes differ from input")
	}
	if got[0].Size != 19 || len(got[0].Payload()) != 19 {
		t.Fatalf("size = %d", got[0].Size)
	}
}

func TestScannerEmpty(t *testing.T) {
	sc := NewScanner(nil)
	if sc.Scan() || sc.Err() != nil {
		t.Fatalf("empty input: scan true or err %v", sc.Err())
	}
}

func TestScannerCorruptTail(t *testing.T) {
	for _, tail := range [][]byte{{0}, make([]byte, HeaderSize-1)} {
		data := container(rawRecord(testID(1)), tail)
		sc := NewScanner(data)
		n := 0
		for sc.Scan() {
			n++
		}
		if n != 1 {
			t.Fatalf("scanned %d records before the tail", n)
		}
		var re *RecordError
		if !errors.Is(sc.Err(), ErrCorruptContainer) || !errors.As(sc.Err(), &re) {
			t.Fatalf("err = %v", sc.Err())
		}
		if re.Offset != int64(len(rawRecord(testID(1)))) {
			t.Fatalf("offset = %d", re.Offset)
		}
	}
}

func TestScannerPayloadPastEnd(t *testing.T) {
	rec := rawRecord(testID(1), 1, 2, 3, 4)
	if _, _, err := NextRecord(rec[:len(rec)-1], 0); !errors.Is(err, ErrCorruptContainer) {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeAllIsAllOrNothing(t *testing.T) {
	reg := testRegistry(VariantHorizonPC)
	good := textRecord(testID(1), reg.Layout(), "ok")
	bad := append(textRecord(testID(2), reg.Layout(), "x"), 0)
	bad[8]++ // declare the extra byte as payload
	res, err := reg.DecodeAll(container(good, bad))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("err = %v", err)
	}
	if res != nil {
		t.Fatalf("partial result of %d records", len(res))
	}
}
