package decima

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setEnglish(text string) Mutation {
	return func(r Resource) error {
		r.(*LocalizedText).SetText(English, text)
		return nil
	}
}

func TestRepackRewritesOnlyTargets(t *testing.T) {
	p := NewRepacker(WithTypeMap(testTypeMap()))
	l := p.Registry().Layout()
	a := rawRecord(testID(1), 5, 5, 5)
	b := textRecord(testID(2), l, "short")
	c := textRecord(testID(3), l, "keep")
	data := container(a, b, c)

	out, rep, err := p.RepackBytes(data, "LocalizedTextResource", map[ID]Mutation{testID(2): setEnglish("much longer")})
	if err != nil {
		t.Fatal(err)
	}
	want := container(a, textRecord(testID(2), l, "much longer"), c)
	if !bytes.Equal(out, want) {
		t.Fatal("output differs outside the rewritten record")
	}
	if rep.Records != 3 || len(rep.Rewritten) != 1 || rep.Rewritten[0] != testID(2) || rep.SizeDelta != 6 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRepackTargetsDecodeStrictly(t *testing.T) {
	p := NewRepacker(WithTypeMap(testTypeMap()), WithLenientSizes(true))
	l := p.Registry().Layout()
	tail := append(textRecord(testID(2), l, "short"), 0xEE, 0xEE)
	tail[8] += 2
	other := append(rawRecord(testID(3)), 0)
	other[8]++
	data := container(other, tail)

	_, _, err := p.RepackBytes(data, "LocalizedTextResource", map[ID]Mutation{testID(2): setEnglish("shorty")})
	var re *RecordError
	if !errors.Is(err, ErrSizeMismatch) || !errors.As(err, &re) || re.ID != testID(2) {
		t.Fatalf("err = %v", err)
	}

	out, _, err := p.RepackBytes(data, "LocalizedTextResource", nil)
	if err != nil || !bytes.Equal(out, data) {
		t.Fatalf("untargeted pass: err = %v, equal = %v", err, bytes.Equal(out, data))
	}
}

func TestRepackNilMutationReencodes(t *testing.T) {
	p := NewRepacker(WithTypeMap(testTypeMap()))
	data := container(rawRecord(testID(1)), textRecord(testID(2), p.Registry().Layout(), "same"))
	out, rep, err := p.RepackBytes(data, "LocalizedTextResource", map[ID]Mutation{testID(2): nil})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) || len(rep.Rewritten) != 1 || rep.SizeDelta != 0 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRepackUnmatchedIDs(t *testing.T) {
	p := NewRepacker(WithTypeMap(testTypeMap()))
	data := container(rawRecord(testID(4)), textRecord(testID(1), p.Registry().Layout(), "x"))
	muts := map[ID]Mutation{
		testID(9): setEnglish("a"),
		testID(4): setEnglish("b"), // present but not a LocalizedTextResource
		testID(1): setEnglish("c"),
	}
	_, rep, err := p.RepackBytes(data, "LocalizedTextResource", muts)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Unmatched) != 2 || rep.Unmatched[0] != testID(4) || rep.Unmatched[1] != testID(9) {
		t.Fatalf("unmatched = %v", rep.Unmatched)
	}
}

func TestRepackNotEncodable(t *testing.T) {
	p := NewRepacker(WithTypeMap(testTypeMap()))
	body := (&payload{}).id(testID(1)).str("v").localRefs().b
	data := record(testHash("VoiceComponentResource"), body)
	called := false
	_, _, err := p.RepackBytes(data, "VoiceComponentResource", map[ID]Mutation{testID(1): func(Resource) error {
		called = true
		return nil
	}})
	if !errors.Is(err, ErrNotEncodable) || called {
		t.Fatalf("err = %v, mutation called = %v", err, called)
	}
}

func TestRepackFileFailureLeavesFile(t *testing.T) {
	dir := t.TempDir()
	p := NewRepacker(WithTypeMap(testTypeMap()))
	path := filepath.Join(dir, "text.core")
	data := container(textRecord(testID(1), p.Registry().Layout(), "a"), textRecord(testID(2), p.Registry().Layout(), "b"))
	writeFile(t, path, data)

	boom := errors.New("boom")
	muts := map[ID]Mutation{
		testID(1): setEnglish("changed"),
		testID(2): func(Resource) error { return boom },
	}
	_, err := p.RepackFile(path, "", "LocalizedTextResource", muts)
	var re *RecordError
	if !errors.Is(err, boom) || !errors.As(err, &re) || re.ID != testID(2) || re.Path != path {
		t.Fatalf("err = %v", err)
	}
	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, data) {
		t.Fatal("failed repack modified the input")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("stray files left behind: %v", entries)
	}
}

func TestRepackFileKeepsCompression(t *testing.T) {
	dir := t.TempDir()
	p := NewRepacker(WithTypeMap(testTypeMap()))
	l := p.Registry().Layout()
	packed, err := compress(CompZSTD, textRecord(testID(1), l, "old"))
	if err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "t.core.zst")
	writeFile(t, in, packed)

	out := filepath.Join(dir, "out.core.zst")
	rep, err := p.RepackFile(filepath.Join(dir, "t.core"), out, "LocalizedTextResource", map[ID]Mutation{testID(1): setEnglish("new")})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Compression != CompZSTD {
		t.Fatalf("compression = %v", rep.Compression)
	}
	data, _, comp, err := readContainer(out, defaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	if comp != CompZSTD || !bytes.Equal(data, textRecord(testID(1), l, "new")) {
		t.Fatalf("output compression %v, data %x", comp, data)
	}
}

func TestWriteContainerRenameFailure(t *testing.T) {
	dir := t.TempDir()
	old := renameFile
	renameFile = func(string, string) error { return errors.New("rename failed") }
	t.Cleanup(func() { renameFile = old })

	if err := writeContainer(filepath.Join(dir, "x.core"), []byte("data"), CompNone); err == nil {
		t.Fatal("expected error")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}
