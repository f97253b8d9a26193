// Package store provides the persistent team record store.
//
// Records are kept in a single GORM-managed table and identified by an opaque,
// stable UUID. Every record also carries an insertion sequence which the query
// evaluator uses to break sort ties deterministically.
//
// # Mutations and Notifications
//
// Mutations (Insert, InsertBatch, Update) are serialized: one mutation commits and
// dispatches its notification to every active subscriber before the next mutation
// is accepted. Subscribers receive a Change that only carries the store generation;
// they are expected to re-read the store (poll-on-notify).
//
// A failed commit returns an error wrapping ErrPersistence and never notifies.
//
// # Usage
//
//	st := store.NewGormStore(db, logger)
//	if err := st.Migrate(ctx); err != nil {
//	    return err
//	}
//
//	sub := st.Subscribe(func(c store.Change) {
//	    logger.Info("store changed", zap.Uint64("generation", c.Generation))
//	})
//	defer sub.Cancel()
//
//	id, err := st.Insert(ctx, store.Record{Name: "Brazil", Zone: "South America", Wins: 5})
package store
