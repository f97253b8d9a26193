// Package reconcile computes edit operations between two sectioned snapshots.
//
// Rows are matched by record id only, never by value. Diff emits an ordered batch
// of section and row operations which, applied in order to the old snapshot,
// reproduces the new snapshot exactly (see Apply).
//
// # Index Policy
//
// Every index in an operation refers to the state produced by all previous
// operations of the batch. Consumers must apply operations strictly in order
// and re-resolve indices after each step. Diff emits, in this order:
//
//  1. Row deletes, highest section and row first.
//  2. Section deletes, highest index first. Rows left in a deleted section go with it.
//  3. Section inserts, lowest index first. After this step section indices match the new snapshot.
//  4. Row moves and inserts, building each new section from its first row to its last.
//     A move removes the row first; ToSection and ToRow refer to the state after that removal.
//  5. Row updates for rows that kept their place but changed fields, at their final indices.
//
// # Moves
//
// Rows that keep their relative order inside a surviving section are left in place
// (a longest increasing subsequence of their new positions); every other surviving
// row becomes a single move. When several such subsequences are equally long, the
// one keeping the most unchanged rows wins, so repositioning one edited record within
// its section yields exactly one move carrying its new version. A record that changes section is moved when both sections
// survive, and deleted and inserted otherwise.
//
// # Usage
//
//	ops := reconcile.Diff(prev, next)
//	for _, op := range ops {
//	    ui.Apply(op)
//	}
package reconcile
