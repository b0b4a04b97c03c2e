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
	cmd := &cobra.Command{
		Use:   "textures FILE",
		Short: "List the textures of a container",
		Args:  cobra.ExactArgs(1),
		Run:   runTextures,
	}

	cmd.Flags().String("extract", "", "Write the raw pixel data of each texture to this directory")

	RootCmd.AddCommand(cmd)
}

func runTextures(cmd *cobra.Command, args []string) {
	extract, _ := cmd.Flags().GetString("extract")
	s, log := openSession()
	defer log.Sync()

	res, err := s.Load(args[0])
	if err != nil {
		exitErr("load", err)
	}
	for _, r := range res {
		var name string
		var img *decima.ImageMetadata
		switch t := r.(type) {
		case *decima.Texture:
			name, img = t.Name, t.Image
		case *decima.UITexture:
			name, img = t.Name, t.Images[1]
			if img == nil {
				img = t.Images[0]
			}
		default:
			continue
		}
		fmt.Println(r)
		if extract == "" || img == nil {
			continue
		}
		data, err := pixels(s, img)
		if err != nil {
			exitErr("extract "+name, err)
		}
		out := filepath.Join(extract, strings.ReplaceAll(name, "/", "_")+".bin")
		if err := os.WriteFile(out, data, 0o644); err != nil {
			exitErr("extract", err)
		}
	}
}

// pixels returns the streamed mip levels followed by the inline ones.
func pixels(s *decima.Session, img *decima.ImageMetadata) ([]byte, error) {
	if !img.Streamed() {
		return img.Contents, nil
	}
	data, err := s.ReadStream(*img.Stream)
	if err != nil {
		return nil, err
	}
	return append(data, img.Contents...), nil
}
