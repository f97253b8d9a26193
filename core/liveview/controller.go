package liveview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"teamboard/core/query"
	"teamboard/core/reconcile"
	"teamboard/core/store"

	"go.uber.org/zap"
)

var (
	// ErrIndexOutOfRange is returned when a read goes past the current snapshot.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotLoaded is returned before Initialize has completed.
	ErrNotLoaded = errors.New("live view not loaded")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("live view closed")
)

// State is the lifecycle state of a Controller.
type State int32

const (
	StateUninitialized State = iota
	StateLoaded
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoaded:
		return "loaded"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Observer receives the operations of each non-empty reconcile batch, in order.
// Observers run while the controller holds its evaluation lock and must not
// mutate the store synchronously.
type Observer func(generation uint64, ops []reconcile.Operation)

// SectionInfo describes one section of the current snapshot.
type SectionInfo struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// view is one immutable snapshot generation together with the records it references.
type view struct {
	snapshot *reconcile.Snapshot
	records  [][]store.Record
}

// Controller maintains the live sectioned view of a store.
type Controller struct {
	store  store.Store
	spec   query.Spec
	logger *zap.Logger

	// mu serializes evaluation, snapshot swaps and observer dispatch.
	mu    sync.Mutex
	state atomic.Int32
	view  atomic.Pointer[view]
	sub   *store.Subscription

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
}

// New creates an uninitialized controller.
func New(st store.Store, spec query.Spec, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:     st,
		spec:      spec,
		logger:    logger,
		observers: make(map[int]Observer),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Initialize evaluates the spec, publishes the first snapshot and subscribes to the store.
func (c *Controller) Initialize(ctx context.Context) error {
	if err := c.spec.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.State() {
	case StateLoaded:
		return nil
	case StateClosed:
		return ErrClosed
	}

	generation := c.store.Generation()
	v, err := c.evaluate(ctx, generation)
	if err != nil {
		return err
	}
	c.view.Store(v)
	c.state.Store(int32(StateLoaded))

	c.sub = c.store.Subscribe(c.handleChange)

	// Catch up with mutations committed before the subscription existed.
	if c.store.Generation() != generation {
		if _, err := c.refreshLocked(ctx, c.store.Generation()); err != nil {
			return err
		}
	}

	v = c.view.Load()
	c.logger.Info("Live view loaded",
		zap.String("sort", c.spec.String()),
		zap.Int("sections", len(v.snapshot.Sections)),
		zap.Int("rows", v.snapshot.Len()),
	)
	return nil
}

// handleChange runs synchronously inside the store's notification dispatch.
func (c *Controller) handleChange(change store.Change) {
	if _, err := c.refresh(context.Background(), change.Generation); err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Error("Live view refresh failed, keeping previous snapshot",
			zap.Uint64("generation", change.Generation),
			zap.Error(err),
		)
	}
}

// OnStoreChanged re-evaluates the spec, swaps in the new snapshot and returns the
// operations that turn the previous snapshot into it. Observers are notified when the
// batch is not empty. Without an intervening mutation the batch is empty.
func (c *Controller) OnStoreChanged(ctx context.Context) ([]reconcile.Operation, error) {
	return c.refresh(ctx, c.store.Generation())
}

func (c *Controller) refresh(ctx context.Context, generation uint64) ([]reconcile.Operation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx, generation)
}

func (c *Controller) refreshLocked(ctx context.Context, generation uint64) ([]reconcile.Operation, error) {
	switch c.State() {
	case StateUninitialized:
		return nil, ErrNotLoaded
	case StateClosed:
		return nil, ErrClosed
	}

	prev := c.view.Load()
	if generation < prev.snapshot.Generation {
		// A later generation was already evaluated.
		generation = prev.snapshot.Generation
	}

	next, err := c.evaluate(ctx, generation)
	if err != nil {
		return nil, err
	}

	ops := reconcile.Diff(prev.snapshot, next.snapshot)
	c.view.Store(next)

	if len(ops) == 0 {
		return ops, nil
	}

	sum := reconcile.Summarize(ops)
	c.logger.Debug("Live view reconciled",
		zap.Uint64("generation", generation),
		zap.Int("operations", len(ops)),
		zap.Int("moves", sum.RowMoves),
		zap.Int("inserts", sum.RowInserts+sum.SectionInserts),
		zap.Int("deletes", sum.RowDeletes+sum.SectionDeletes),
		zap.Int("updates", sum.RowUpdates),
	)

	for _, obs := range c.observerList() {
		obs(generation, ops)
	}
	return ops, nil
}

func (c *Controller) evaluate(ctx context.Context, generation uint64) (*view, error) {
	records, err := query.Evaluate(ctx, c.spec, c.store)
	if err != nil {
		return nil, err
	}

	groups := query.Sections(c.spec, records)
	v := &view{
		snapshot: &reconcile.Snapshot{
			Generation: generation,
			Sections:   make([]reconcile.Section, len(groups)),
		},
		records: make([][]store.Record, len(groups)),
	}
	for i, g := range groups {
		rows := make([]reconcile.Row, len(g.Records))
		for j, r := range g.Records {
			rows[j] = reconcile.Row{ID: r.ID, Version: r.Fingerprint()}
		}
		v.snapshot.Sections[i] = reconcile.Section{Key: g.Key, Rows: rows}
		v.records[i] = g.Records
	}
	return v, nil
}

// ObjectAt returns the record at (section, row) of the current snapshot.
func (c *Controller) ObjectAt(section, row int) (store.Record, error) {
	v, err := c.current()
	if err != nil {
		return store.Record{}, err
	}
	if section < 0 || section >= len(v.records) {
		return store.Record{}, fmt.Errorf("%w: section %d of %d", ErrIndexOutOfRange, section, len(v.records))
	}
	rows := v.records[section]
	if row < 0 || row >= len(rows) {
		return store.Record{}, fmt.Errorf("%w: row %d of %d in section %d", ErrIndexOutOfRange, row, len(rows), section)
	}
	return rows[row], nil
}

// Sections returns the label and row count of every section of the current snapshot.
func (c *Controller) Sections() ([]SectionInfo, error) {
	v, err := c.current()
	if err != nil {
		return nil, err
	}
	out := make([]SectionInfo, len(v.snapshot.Sections))
	for i, sec := range v.snapshot.Sections {
		out[i] = SectionInfo{Label: sec.Key, Count: len(sec.Rows)}
	}
	return out, nil
}

// Snapshot returns a copy of the current snapshot.
func (c *Controller) Snapshot() (*reconcile.Snapshot, error) {
	v, err := c.current()
	if err != nil {
		return nil, err
	}
	return v.snapshot.Clone(), nil
}

// Observe registers obs and returns a function that removes it.
func (c *Controller) Observe(obs Observer) func() {
	c.obsMu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = obs
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.observers, id)
		c.obsMu.Unlock()
	}
}

// Close cancels the store subscription. The controller cannot be reused.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.State() == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state.Store(int32(StateClosed))
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	// Cancel waits for an in-flight delivery, which itself needs c.mu.
	sub.Cancel()
	c.logger.Info("Live view closed")
}

func (c *Controller) current() (*view, error) {
	switch c.State() {
	case StateUninitialized:
		return nil, ErrNotLoaded
	case StateClosed:
		return nil, ErrClosed
	}
	return c.view.Load(), nil
}

func (c *Controller) observerList() []Observer {
	c.obsMu.RLock()
	defer c.obsMu.RUnlock()

	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = c.observers[id]
	}
	return out
}
