// Package decima reads and rewrites the .core resource containers of the
// Decima engine, as shipped with Horizon Zero Dawn and Death Stranding.
//
// # Container Format
//
// A container is a sequence of records and nothing else:
//   - u64 type hash, little-endian
//   - u32 payload size, header excluded
//   - payload, by convention starting with the 16-byte record id
//
// Records that reference each other use a [Ref]: null, local (same session)
// or external (another container, addressed by a path relative to the game
// root, without the .core extension).
//
// # Variants
//
// The same type hash can have different physical layouts per game build. A
// [Variant] selects the [Layout] (language slots of LocalizedTextResource,
// image header layout) and the built-in type map. Hashes for the remaining
// types come from a YAML type map file, see [ParseTypeMap]. Types without a
// decoder decode as [*RawResource], which keeps the record bytes verbatim.
//
// # Basic Usage
//
// To load a container and everything one of its refs reaches:
//
//	s := decima.NewSession(
//		decima.WithVariant(decima.VariantHorizonPC),
//		decima.WithRootDir("/games/hzd/extracted"),
//		decima.WithTypeMap(types))
//	res, err := s.Load("/games/hzd/extracted/localized/sentences/aigenerated/aloy.core")
//	for _, r := range res {
//		if sg, ok := r.(*decima.SentenceGroup); ok {
//			sentence, err := decima.Follow[*decima.Sentence](s, sg.Sentences[0])
//			...
//		}
//	}
//
// To replace the English text of selected LocalizedTextResource records,
// leaving every other byte of the file unchanged:
//
//	edits, err := decima.ReadTextEditsFile("aloy.csv")
//	p := decima.NewRepacker(decima.WithVariant(decima.VariantHorizonPC))
//	report, err := p.RepackFile(in, in, "LocalizedTextResource",
//		decima.TextMutations(edits, decima.English))
//
// # Errors
//
// Decoding is strict: a decoder must consume exactly the declared payload,
// and fields the format fixes to a constant are checked. Failures are
// [*RecordError] values locating the file, offset, type and id, wrapping one
// of the Err* sentinels for use with errors.Is.
package decima
