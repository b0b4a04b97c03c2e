package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logicossoftware/go-decima"
)

func init() {
	textCmd := &cobra.Command{
		Use:   "text",
		Short: "Dump and repack LocalizedTextResource strings",
	}
	textCmd.PersistentFlags().StringP("lang", "l", "English", "Text language slot")

	dump := &cobra.Command{
		Use:   "dump FILE",
		Short: "Write an edit file listing every text of a container",
		Args:  cobra.ExactArgs(1),
		Run:   runTextDump,
	}
	dump.Flags().StringP("out", "o", "", "Edit file to write (default: FILE with .csv extension)")

	repack := &cobra.Command{
		Use:   "repack FILE",
		Short: "Replace texts of a container from an edit file",
		Args:  cobra.ExactArgs(1),
		Run:   runTextRepack,
	}
	repack.Flags().StringP("edits", "e", "", "Edit file, .csv or .json (default: FILE with .csv extension)")
	repack.Flags().StringP("out", "o", "", "Container to write (default: rewrite FILE in place)")

	textCmd.AddCommand(dump, repack)
	RootCmd.AddCommand(textCmd)
}

func language(cmd *cobra.Command) decima.TextLanguage {
	name, _ := cmd.Flags().GetString("lang")
	lang, ok := decima.ParseTextLanguage(name)
	if !ok {
		exitErr("lang", fmt.Errorf("unknown language %q", name))
	}
	return lang
}

func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func runTextDump(cmd *cobra.Command, args []string) {
	lang := language(cmd)
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = siblingPath(args[0], ".csv")
	}
	format, err := decima.EditFormatFor(out)
	if err != nil {
		exitErr("dump", err)
	}

	s, log := openSession()
	defer log.Sync()
	res, err := s.Load(args[0])
	if err != nil {
		exitErr("load", err)
	}
	var texts []*decima.LocalizedText
	for _, r := range res {
		if t, ok := r.(*decima.LocalizedText); ok {
			texts = append(texts, t)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		exitErr("create", err)
	}
	if err := decima.DumpTextEdits(f, format, texts, lang); err != nil {
		f.Close()
		exitErr("dump", err)
	}
	if err := f.Close(); err != nil {
		exitErr("dump", err)
	}
	fmt.Printf("%d texts written to %s\n", len(texts), out)
}

func runTextRepack(cmd *cobra.Command, args []string) {
	lang := language(cmd)
	editsPath, _ := cmd.Flags().GetString("edits")
	out, _ := cmd.Flags().GetString("out")
	if editsPath == "" {
		editsPath = siblingPath(args[0], ".csv")
	}

	edits, err := decima.ReadTextEditsFile(editsPath)
	if err != nil {
		exitErr("read edits", err)
	}
	opts, log, err := options()
	if err != nil {
		exitErr("configure", err)
	}
	defer log.Sync()

	p := decima.NewRepacker(opts...)
	rep, err := p.RepackFile(args[0], out, "LocalizedTextResource", decima.TextMutations(edits, lang))
	if err != nil {
		exitErr("repack", err)
	}
	for _, id := range rep.Unmatched {
		fmt.Fprintf(os.Stderr, "warning: no LocalizedTextResource %s in %s\n", id, args[0])
	}
	fmt.Printf("%d of %d records rewritten\n", len(rep.Rewritten), rep.Records)
}
