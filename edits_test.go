package decima

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSVEdits(t *testing.T) {
	id1, id2 := testID(1), testID(2)
	in := "UUID,Text,Translation\n" +
		id1.String() + ",Hello,Bonjour\n" +
		id2.String() + ",\"Skip, me\",\n"
	edits, err := ReadTextEdits(strings.NewReader(in), EditCSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 || edits[0].ID != id1 || edits[0].Replacement() != "Bonjour" {
		t.Fatalf("edits = %+v", edits)
	}
}

func TestReadCSVEditsErrors(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"header":     "ID,Text,Translation\n",
		"bad id":     "UUID,Text,Translation\nzz,a,b\n",
		"bad fields": "UUID,Text,Translation\nx,y\n",
	}
	for name, in := range cases {
		if _, err := ReadTextEdits(strings.NewReader(in), EditCSV); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	_, err := ReadTextEdits(strings.NewReader("UUID,Text,Translation\n"+testID(1).String()+",a,b\nnope,a,b\n"), EditCSV)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v", err)
	}
}

func TestReadJSONEditsWithComments(t *testing.T) {
	in := `[
		// first line
		{"uuid": "` + testID(1).String() + `", "text": "Hi", "translation": ""},
		{"uuid": "` + testID(2).String() + `", "text": "a", "translation": "b"}, /* trailing */
	]`
	edits, err := ReadTextEdits(strings.NewReader(in), EditJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 2 || edits[0].Replacement() != "Hi" || edits[1].ID != testID(2) {
		t.Fatalf("edits = %+v", edits)
	}
	if _, err := ReadTextEdits(strings.NewReader(`[{"uuid":"xx"}]`), EditJSON); err == nil {
		t.Fatal("expected bad uuid error")
	}
}

func TestEditFormatFor(t *testing.T) {
	for path, want := range map[string]EditFormat{"a.csv": EditCSV, "a.JSON": EditJSON, "b/c.jsonc": EditJSON} {
		if got, err := EditFormatFor(path); err != nil || got != want {
			t.Errorf("%s: %v, %v", path, got, err)
		}
	}
	if _, err := EditFormatFor("a.txt"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDumpAndApplyEdits(t *testing.T) {
	reg := testRegistry(VariantHorizonPC)
	res, err := reg.DecodeAll(container(
		textRecord(testID(1), reg.Layout(), "One, <b>bold</b>"),
		textRecord(testID(2), reg.Layout(), "Two"),
	))
	if err != nil {
		t.Fatal(err)
	}
	texts := []*LocalizedText{res[0].(*LocalizedText), res[1].(*LocalizedText)}

	for _, format := range []EditFormat{EditCSV, EditJSON} {
		var buf bytes.Buffer
		if err := DumpTextEdits(&buf, format, texts, English); err != nil {
			t.Fatal(err)
		}
		if format == EditJSON && !strings.Contains(buf.String(), "<b>bold</b>") {
			t.Fatalf("html escaped: %s", buf.String())
		}
		edits, err := ReadTextEdits(&buf, format)
		if err != nil {
			t.Fatal(err)
		}
		// CSV drops rows without a translation.
		if format == EditCSV && len(edits) != 0 {
			t.Fatalf("csv edits = %+v", edits)
		}
		if format == EditJSON && (len(edits) != 2 || edits[0].Text != "One, <b>bold</b>") {
			t.Fatalf("json edits = %+v", edits)
		}
	}

	edits := []TextEdit{{ID: testID(2), Text: "Two", Translation: "Deux"}}
	muts := TextMutations(edits, French)
	if err := muts[testID(2)](texts[1]); err != nil {
		t.Fatal(err)
	}
	if texts[1].Text(French) != "Deux" || texts[1].Text(English) != "Two" {
		t.Fatalf("slots = %+v", texts[1].Slots)
	}
	if err := muts[testID(2)](&Voice{}); !errors.Is(err, ErrUnexpectedType) {
		t.Fatalf("err = %v", err)
	}
	if err := TextMutations(edits, Hungarian)[testID(2)](texts[1]); !errors.Is(err, ErrUnrecognizedAssertion) {
		t.Fatalf("missing slot: err = %v", err)
	}
}

func TestDumpCSVQuotesEveryField(t *testing.T) {
	reg := testRegistry(VariantHorizonPC)
	res, err := reg.DecodeAll(textRecord(testID(1), reg.Layout(), `Say "hi"`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := DumpTextEdits(&buf, EditCSV, []*LocalizedText{res[0].(*LocalizedText)}, English); err != nil {
		t.Fatal(err)
	}
	want := "\"UUID\",\"Text\",\"Translation\"\r\n" +
		"\"" + testID(1).String() + "\",\"Say \"\"hi\"\"\",\"\"\r\n"
	if buf.String() != want {
		t.Fatalf("dump = %q, want %q", buf.String(), want)
	}
}

func TestTextRepackFromEditFile(t *testing.T) {
	dir := t.TempDir()
	p := NewRepacker(WithTypeMap(testTypeMap()))
	l := p.Registry().Layout()
	core := filepath.Join(dir, "text.core")
	writeFile(t, core, container(textRecord(testID(1), l, "Hello"), rawRecord(testID(5), 1)))
	edits := filepath.Join(dir, "text.csv")
	writeFile(t, edits, []byte("UUID,Text,Translation\n"+testID(1).String()+",Hello,Howdy\n"))

	parsed, err := ReadTextEditsFile(edits)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := p.RepackFile(core, "", "LocalizedTextResource", TextMutations(parsed, English))
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Rewritten) != 1 || len(rep.Unmatched) != 0 {
		t.Fatalf("report = %+v", rep)
	}

	s := NewSession(WithTypeMap(testTypeMap()))
	if _, err := s.Load(core); err != nil {
		t.Fatal(err)
	}
	r, _ := s.Get(testID(1))
	if r.(*LocalizedText).Text(English) != "Howdy" {
		t.Fatalf("text = %q", r.(*LocalizedText).Text(English))
	}
	if raw, ok := s.Get(testID(5)); !ok || !bytes.Equal(raw.Raw(), rawRecord(testID(5), 1)) {
		t.Fatal("unrelated record changed")
	}
}
