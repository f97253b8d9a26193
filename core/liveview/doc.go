// Package liveview keeps a sectioned, sorted snapshot of the record store in sync
// with its mutations.
//
// A Controller evaluates its query spec once on Initialize and again on every store
// notification. Each re-evaluation produces a new snapshot which is diffed against
// the previous one (see core/reconcile); the snapshot is then swapped atomically and
// the resulting operations are handed to the registered observers.
//
// Readers (ObjectAt, Sections, Snapshot) always see one complete snapshot
// generation, never a partially built one.
//
// # States
//
//	Uninitialized --Initialize--> Loaded --(store change)--> Loaded
//	                                 \--Close--> Closed
//
// # Usage
//
//	ctrl := liveview.New(st, query.DefaultSpec(), logger)
//	if err := ctrl.Initialize(ctx); err != nil {
//	    return err
//	}
//	defer ctrl.Close()
//
//	ctrl.Observe(func(gen uint64, ops []reconcile.Operation) {
//	    table.Apply(ops)
//	})
//
//	rec, err := ctrl.ObjectAt(0, 0)
package liveview
