package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logicossoftware/go-decima"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prefetch FILE",
		Short: "Update the file sizes recorded in a PrefetchList container",
		Args:  cobra.ExactArgs(1),
		Run:   runPrefetch,
	}

	cmd.Flags().StringP("out", "o", "", "Container to write (default: rewrite FILE in place)")

	RootCmd.AddCommand(cmd)
}

func runPrefetch(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	opts, log, err := options()
	if err != nil {
		exitErr("configure", err)
	}
	defer log.Sync()

	s := decima.NewSession(opts...)
	if s.RootDir() == "" {
		exitErr("prefetch", errors.New("a root directory is required"))
	}
	res, err := s.Load(args[0])
	if err != nil {
		exitErr("load", err)
	}

	fsys := os.DirFS(s.RootDir())
	var changes []decima.PrefetchChange
	muts := map[decima.ID]decima.Mutation{}
	for _, r := range res {
		if _, ok := r.(*decima.PrefetchList); !ok {
			continue
		}
		muts[r.Info().ID] = func(r decima.Resource) error {
			c, err := r.(*decima.PrefetchList).Refresh(fsys)
			changes = append(changes, c...)
			return err
		}
	}
	if len(muts) == 0 {
		exitErr("prefetch", fmt.Errorf("no PrefetchList in %s", args[0]))
	}

	if _, err := decima.NewRepacker(opts...).RepackFile(args[0], out, "PrefetchList", muts); err != nil {
		exitErr("repack", err)
	}
	for _, c := range changes {
		fmt.Printf("%s %d -> %d\n", c.Path, c.OldSize, c.NewSize)
	}
	fmt.Printf("%d sizes updated\n", len(changes))
}
