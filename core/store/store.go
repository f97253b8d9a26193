package store

import "context"

// Store defines the operations of the team record store.
type Store interface {
	// Insert persists a new record and returns its assigned id.
	Insert(ctx context.Context, rec Record) (string, error)
	// InsertBatch persists records one by one and notifies once for the batch.
	// Inserts committed before a failure are kept.
	InsertBatch(ctx context.Context, recs []Record) ([]string, error)
	// Update applies mutate to the record with the given id and persists the result.
	Update(ctx context.Context, id string, mutate func(*Record) error) error
	// Get returns a single record.
	Get(ctx context.Context, id string) (Record, error)
	// List returns all records in insertion order.
	List(ctx context.Context) ([]Record, error)
	// Count returns the number of records matching pred. A nil pred counts all records.
	Count(ctx context.Context, pred Predicate) (int, error)
	// Subscribe registers a listener notified after every committed mutation.
	Subscribe(l Listener) *Subscription
	// Generation returns the number of committed mutations seen by this store.
	Generation() uint64
}
