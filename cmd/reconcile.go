package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"teamboard/core/reconcile"

	"github.com/spf13/cobra"
)

var reconcileVerify bool

// reconcileCmd diffs two snapshot files, as served by GET /teams/snapshot.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [old.json] [new.json]",
	Short: "Print the edit operations between two snapshots",
	Long: `Computes the operations that turn the first snapshot into the second.
Both files hold a snapshot as returned by GET /teams/snapshot.

Examples:
  teamboard reconcile before.json after.json
  teamboard reconcile before.json after.json --verify`,
	Args: cobra.ExactArgs(2),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileVerify, "verify", false, "Replay the operations and check the result matches the second snapshot")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	oldSnap, err := readSnapshot(args[0])
	if err != nil {
		return err
	}
	newSnap, err := readSnapshot(args[1])
	if err != nil {
		return err
	}

	ops := reconcile.Diff(oldSnap, newSnap)
	printOperations(ops)

	s := reconcile.Summarize(ops)
	fmt.Printf("\nsections +%d -%d, rows +%d -%d, moves %d, updates %d\n",
		s.SectionInserts, s.SectionDeletes, s.RowInserts, s.RowDeletes, s.RowMoves, s.RowUpdates)

	if !reconcileVerify {
		return nil
	}
	got, err := reconcile.Apply(oldSnap, ops)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	if !sameSections(got.Sections, newSnap.Sections) {
		return fmt.Errorf("replayed snapshot does not match %s", args[1])
	}
	fmt.Println("✓ Replay matches")
	return nil
}

func readSnapshot(path string) (*reconcile.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap reconcile.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

func sameSections(a, b []reconcile.Section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || len(a[i].Rows) != len(b[i].Rows) {
			return false
		}
		for j := range a[i].Rows {
			if a[i].Rows[j] != b[i].Rows[j] {
				return false
			}
		}
	}
	return true
}
