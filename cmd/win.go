package cmd

import (
	"context"
	"fmt"

	"teamboard/core/reconcile"
	"teamboard/feature/teams"

	"github.com/spf13/cobra"
)

var (
	winSection int
	winRow     int
)

// winCmd adds a win to a team and prints the resulting operations.
var winCmd = &cobra.Command{
	Use:   "win [id]",
	Short: "Add one win to a team",
	Long: `Adds one win to the team with the given id, or to the team at --section/--row
when no id is given, and prints the edit operations the live view produced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWin,
}

func init() {
	winCmd.Flags().IntVar(&winSection, "section", -1, "Section index of the team")
	winCmd.Flags().IntVar(&winRow, "row", -1, "Row index of the team")
	RootCmd.AddCommand(winCmd)
}

func runWin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 && (winSection < 0 || winRow < 0) {
		return fmt.Errorf("either an id or --section and --row are required")
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

	teamSvc := teams.NewService(svc.store, view, svc.logger, 1)
	defer teamSvc.Close()

	if len(args) == 1 {
		_, err = teamSvc.IncrementWins(ctx, args[0])
	} else {
		_, err = teamSvc.IncrementWinsAt(ctx, winSection, winRow)
	}
	if err != nil {
		return err
	}

	for _, b := range teamSvc.RecentBatches() {
		printOperations(b.Operations)
	}
	return printView(view)
}

func printOperations(ops []reconcile.Operation) {
	s := reconcile.Summarize(ops)
	fmt.Printf("\n--- Operations (%d) ---\n", s.Total())
	for _, op := range ops {
		fmt.Printf("  %s\n", op)
	}
}
