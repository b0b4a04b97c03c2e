package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/logicossoftware/go-decima"
)

func init() {
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the records of a container",
		Args:  cobra.ExactArgs(1),
		Run:   runInspect,
	}

	cmd.Flags().String("diff", "", "Compare against another container and list differing records")
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")

	RootCmd.AddCommand(cmd)
}

type recordJSON struct {
	Offset    int64  `json:"offset"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	ID        string `json:"id,omitempty"`
	Size      uint32 `json:"size"`
	Decodable bool   `json:"decodable"`
	Digest    string `json:"blake3"`
}

func toJSON(r decima.RecordInfo) recordJSON {
	j := recordJSON{
		Offset:    r.Offset,
		Type:      r.Type.String(),
		Name:      r.Name,
		Size:      r.Size,
		Decodable: r.Decodable,
		Digest:    r.DigestHex(),
	}
	if r.HasID {
		j.ID = r.ID.String()
	}
	return j
}

func inspectFile(s *decima.Session, path string) []decima.RecordInfo {
	data, err := s.ReadContainer(path)
	if err != nil {
		exitErr("read", err)
	}
	infos, err := decima.Inspect(data, s.Registry())
	if err != nil {
		exitErr("inspect "+path, err)
	}
	return infos
}

func runInspect(cmd *cobra.Command, args []string) {
	other, _ := cmd.Flags().GetString("diff")
	asJSON, _ := cmd.Flags().GetBool("json")

	s, log := openSession()
	defer log.Sync()

	infos := inspectFile(s, args[0])
	if other != "" {
		printDiff(decima.DiffRecords(infos, inspectFile(s, other)))
		return
	}

	if asJSON {
		out := make([]recordJSON, 0, len(infos))
		for _, r := range infos {
			out = append(out, toJSON(r))
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(b))
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tTYPE\tNAME\tID\tSIZE\tBLAKE3")
	for _, r := range infos {
		id := "-"
		if r.HasID {
			id = r.ID.String()
		}
		fmt.Fprintf(tw, "%#x\t%s\t%s\t%s\t%d\t%.16s\n", r.Offset, r.Type, r.Name, id, r.Size, r.DigestHex())
	}
	tw.Flush()
}

func printDiff(diffs []decima.RecordDiff) {
	if len(diffs) == 0 {
		fmt.Println("no differences")
		return
	}
	for _, d := range diffs {
		switch d.Kind {
		case decima.DiffChanged:
			fmt.Printf("changed %s %s: %d -> %d bytes\n", d.Old.Name, d.Old.ID, d.Old.Size, d.New.Size)
		case decima.DiffRemoved:
			fmt.Printf("removed %s %s\n", d.Old.Name, d.Old.ID)
		case decima.DiffAdded:
			fmt.Printf("added   %s %s\n", d.New.Name, d.New.ID)
		}
	}
}
