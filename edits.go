package decima

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
)

// EditFormat is the interchange format of a text edit file.
type EditFormat uint8

const (
	EditCSV EditFormat = iota
	EditJSON
)

// EditFormatFor picks the format from a file extension: .csv, .json or
// .jsonc.
func EditFormatFor(path string) (EditFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return EditCSV, nil
	case ".json", ".jsonc":
		return EditJSON, nil
	}
	return 0, fmt.Errorf("no edit format for %q", path)
}

var csvHeader = []string{"UUID", "Text", "Translation"}

// TextEdit replaces the text of one LocalizedTextResource.
type TextEdit struct {
	ID          ID     `json:"-"`
	UUID        string `json:"uuid"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Replacement is the text the edit writes: the translation, or the original
// text when no translation was given.
func (e TextEdit) Replacement() string {
	if e.Translation != "" {
		return e.Translation
	}
	return e.Text
}

// ReadTextEdits parses an edit file. CSV files need the header
// UUID,Text,Translation and rows with an empty translation are dropped. JSON
// files hold an array of {uuid, text, translation} objects and may contain
// comments and trailing commas.
func ReadTextEdits(r io.Reader, format EditFormat) ([]TextEdit, error) {
	switch format {
	case EditCSV:
		return readCSVEdits(r)
	case EditJSON:
		return readJSONEdits(r)
	}
	return nil, fmt.Errorf("unknown edit format %d", format)
}

// ReadTextEditsFile reads the edit file at path, choosing the format by its
// extension.
func ReadTextEditsFile(path string) ([]TextEdit, error) {
	format, err := EditFormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	edits, err := ReadTextEdits(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edits, nil
}

func readCSVEdits(r io.Reader) ([]TextEdit, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("edit file is empty")
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, csvHeader) {
		return nil, fmt.Errorf("edit file header is %q, want %q", header, csvHeader)
	}
	var edits []TextEdit
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return edits, nil
		}
		if err != nil {
			return nil, err
		}
		e := TextEdit{UUID: row[0], Text: row[1], Translation: row[2]}
		if e.Translation == "" {
			continue
		}
		if e.ID, err = ParseID(e.UUID); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		edits = append(edits, e)
	}
}

func readJSONEdits(r io.Reader) ([]TextEdit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var edits []TextEdit
	if err := json.Unmarshal(jsonc.ToJSON(data), &edits); err != nil {
		return nil, fmt.Errorf("parsing edits: %w", err)
	}
	for i := range edits {
		if edits[i].ID, err = ParseID(edits[i].UUID); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
	}
	return edits, nil
}

// DumpTextEdits writes an edit file listing the lang text of every text
// resource with an empty translation, ready to be filled in.
func DumpTextEdits(w io.Writer, format EditFormat, texts []*LocalizedText, lang TextLanguage) error {
	edits := make([]TextEdit, 0, len(texts))
	for _, t := range texts {
		edits = append(edits, TextEdit{ID: t.ID, UUID: t.ID.String(), Text: t.Text(lang)})
	}
	switch format {
	case EditCSV:
		bw := bufio.NewWriter(w)
		writeQuotedRow(bw, csvHeader)
		for _, e := range edits {
			writeQuotedRow(bw, []string{e.UUID, e.Text, e.Translation})
		}
		return bw.Flush()
	case EditJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(edits)
	}
	return fmt.Errorf("unknown edit format %d", format)
}

// writeQuotedRow writes one CSV row with every field quoted and CRLF line
// ends, the form the game's text tools exchange. csv.Writer quotes only
// fields that need it.
func writeQuotedRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}

// TextMutations turns edits into Repacker mutations that set the lang slot.
// A later edit for the same id wins.
func TextMutations(edits []TextEdit, lang TextLanguage) map[ID]Mutation {
	muts := make(map[ID]Mutation, len(edits))
	for _, e := range edits {
		text := e.Replacement()
		muts[e.ID] = func(r Resource) error {
			t, ok := r.(*LocalizedText)
			if !ok {
				return fmt.Errorf("%w: text edit on %s", ErrUnexpectedType, r.Info().TypeName)
			}
			if !t.SetText(lang, text) {
				return assertf("LocalizedTextResource %s has no %s slot", t.ID, lang)
			}
			return nil
		}
	}
	return muts
}
