package cmd

import (
	"context"
	"fmt"

	"teamboard/core/liveview"

	"github.com/spf13/cobra"
)

// listCmd prints the current sectioned view.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the teams grouped by zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		svc, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer svc.close()

		view, err := svc.liveView(ctx)
		if err != nil {
			return err
		}
		defer view.Close()

		return printView(view)
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func printView(view *liveview.Controller) error {
	sections, err := view.Sections()
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		fmt.Println("No teams.")
		return nil
	}

	for s, sec := range sections {
		fmt.Printf("\n[%d] %s (%d)\n", s, sec.Label, sec.Count)
		for r := 0; r < sec.Count; r++ {
			rec, err := view.ObjectAt(s, r)
			if err != nil {
				return err
			}
			fmt.Printf("  %3d  %-24s %4d wins  %-12s %s\n", r, rec.Name, rec.Wins, rec.Image(), rec.ID)
		}
	}
	return nil
}
