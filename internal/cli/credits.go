package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logicossoftware/go-decima"
)

func init() {
	cmd := &cobra.Command{
		Use:   "credits FILE",
		Short: "Print the credits table of a DataSourceCreditsResource container",
		Args:  cobra.ExactArgs(1),
		Run:   runCredits,
	}

	RootCmd.AddCommand(cmd)
}

func runCredits(cmd *cobra.Command, args []string) {
	s, log := openSession()
	defer log.Sync()

	res, err := s.Load(args[0])
	if err != nil {
		exitErr("load", err)
	}
	var root *decima.DataSourceCredits
	for _, r := range res {
		if c, ok := r.(*decima.DataSourceCredits); ok {
			root = c
			break
		}
	}
	if root == nil {
		exitErr("credits", fmt.Errorf("no DataSourceCreditsResource in %s", args[0]))
	}

	for _, rowRef := range root.Rows {
		row, err := decima.Follow[*decima.CreditsRow](s, rowRef)
		if err != nil {
			exitErr("row", err)
		}
		if row == nil {
			continue
		}
		for _, colRef := range row.Columns {
			col, err := decima.Follow[*decima.CreditsColumn](s, colRef)
			if err != nil {
				exitErr("column", err)
			}
			if col != nil {
				fmt.Printf("%-20s ", col.CreditsName)
			}
		}
		fmt.Println()
	}
}
