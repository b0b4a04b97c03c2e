package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/logicossoftware/go-decima"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sentences FILE",
		Short: "Print the dialogue of a container as YAML",
		Args:  cobra.ExactArgs(1),
		Run:   runSentences,
	}

	cmd.Flags().StringP("lang", "l", "English", "Text language slot")

	RootCmd.AddCommand(cmd)
}

type sentenceYAML struct {
	Name  string `yaml:"name"`
	Voice string `yaml:"voice"`
	Text  string `yaml:"text,omitempty"`
}

type groupYAML struct {
	Name      string         `yaml:"name"`
	Order     string         `yaml:"order"`
	Sentences []sentenceYAML `yaml:"sentences"`
}

func runSentences(cmd *cobra.Command, args []string) {
	lang := language(cmd)
	s, log := openSession()
	defer log.Sync()

	res, err := s.Load(args[0])
	if err != nil {
		exitErr("load", err)
	}
	var groups []*decima.SentenceGroup
	for _, r := range res {
		if g, ok := r.(*decima.SentenceGroup); ok {
			groups = append(groups, g)
		}
	}
	slices.SortFunc(groups, func(a, b *decima.SentenceGroup) int { return strings.Compare(a.Name, b.Name) })

	out := make([]groupYAML, 0, len(groups))
	for _, g := range groups {
		gy := groupYAML{Name: g.Name, Order: g.Order.String()}
		for _, ref := range g.Sentences {
			sent, err := decima.Follow[*decima.Sentence](s, ref)
			if err != nil {
				exitErr("sentence", err)
			}
			if sent == nil {
				continue
			}
			gy.Sentences = append(gy.Sentences, sentenceYAML{
				Name:  sent.Name,
				Voice: voiceName(s, sent, lang),
				Text:  localized(s, sent.Text, lang),
			})
		}
		out = append(out, gy)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		exitErr("encode", err)
	}
	enc.Close()
}

// localized returns the lang text ref points at, falling back to English.
func localized(s *decima.Session, ref decima.Ref, lang decima.TextLanguage) string {
	t, err := decima.Follow[*decima.LocalizedText](s, ref)
	if err != nil {
		exitErr("text", err)
	}
	if t == nil {
		return ""
	}
	if text := t.Text(lang); text != "" {
		return text
	}
	return t.Text(decima.English)
}

func voiceName(s *decima.Session, sent *decima.Sentence, lang decima.TextLanguage) string {
	v, err := decima.Follow[*decima.Voice](s, sent.Voice)
	if err != nil {
		exitErr("voice", err)
	}
	if v != nil {
		if name := localized(s, v.Text, lang); name != "" {
			return name
		}
	}
	return "<No voice name>"
}
