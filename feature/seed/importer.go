package seed

import (
	"context"
	"errors"
	"fmt"

	"teamboard/core/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrStoreNotEmpty is returned by Import when the store already holds records.
var ErrStoreNotEmpty = errors.New("store is not empty")

// Result reports the outcome of an import.
type Result struct {
	Source        string    `json:"source"`
	AlreadySeeded bool      `json:"alreadySeeded"`
	Imported      int       `json:"imported"`
	IDs           []string  `json:"ids,omitempty"`
	Skipped       []Problem `json:"skipped,omitempty"`
}

// Importer loads seed documents into the record store.
type Importer struct {
	store  store.Store
	logger *zap.Logger
	strict bool
	group  singleflight.Group
}

// NewImporter creates an importer.
func NewImporter(s store.Store, logger *zap.Logger, strict bool) *Importer {
	return &Importer{store: s, logger: logger, strict: strict}
}

// ImportIfEmpty imports src when the store holds no records.
// Concurrent calls share one run and its result.
func (i *Importer) ImportIfEmpty(ctx context.Context, src Source) (*Result, error) {
	return i.run(ctx, src, false)
}

// Import imports src and fails with ErrStoreNotEmpty when the store already holds records.
func (i *Importer) Import(ctx context.Context, src Source) (*Result, error) {
	return i.run(ctx, src, true)
}

func (i *Importer) run(ctx context.Context, src Source, requireEmpty bool) (*Result, error) {
	key := "if-empty"
	if requireEmpty {
		key = "require-empty"
	}
	// The run is shared, so one caller cancelling must not fail the others.
	shared := context.WithoutCancel(ctx)
	v, err, joined := i.group.Do(key, func() (any, error) {
		return i.importIfEmpty(shared, src, requireEmpty)
	})
	if joined {
		i.logger.Debug("Seed import shared with concurrent caller")
	}
	res, _ := v.(*Result)
	return res, err
}

func (i *Importer) importIfEmpty(ctx context.Context, src Source, requireEmpty bool) (*Result, error) {
	res := &Result{Source: src.Name()}

	n, err := i.store.Count(ctx, nil)
	if err != nil {
		return res, err
	}
	if n > 0 {
		res.AlreadySeeded = true
		if requireEmpty {
			return res, fmt.Errorf("%w: %d records present", ErrStoreNotEmpty, n)
		}
		i.logger.Info("Store already seeded, skipping import",
			zap.String("source", res.Source),
			zap.Int("records", n))
		return res, nil
	}

	data, err := src.Read(ctx)
	if err != nil {
		return res, err
	}

	entries, problems, err := Parse(data, i.strict)
	if err != nil {
		i.logger.Error("Seed document rejected",
			zap.String("source", res.Source),
			zap.Int("problems", len(problems)),
			zap.Error(err))
		return res, err
	}
	for _, p := range problems {
		i.logger.Warn("Skipping malformed seed entry",
			zap.String("source", res.Source),
			zap.Int("index", p.Index),
			zap.String("reason", p.Reason))
	}
	res.Skipped = problems

	recs := make([]store.Record, len(entries))
	for j, e := range entries {
		recs[j] = e.Record()
	}

	ids, err := i.store.InsertBatch(ctx, recs)
	res.IDs = ids
	res.Imported = len(ids)
	if err != nil {
		return res, fmt.Errorf("seed import stopped after %d of %d entries: %w", len(ids), len(recs), err)
	}

	i.logger.Info("Seed import complete",
		zap.String("source", res.Source),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
