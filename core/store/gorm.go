package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TeamModel represents the 'teams' table.
type TeamModel struct {
	Seq      uint64  `gorm:"column:seq;primaryKey;autoIncrement"`
	ID       string  `gorm:"column:id;size:36;uniqueIndex;not null"`
	Name     string  `gorm:"column:name;size:255;not null"`
	Zone     string  `gorm:"column:zone;size:255;index;not null"`
	Wins     int     `gorm:"column:wins;not null"`
	ImageRef *string `gorm:"column:image_ref;size:255"`
}

// TableName overrides the table name.
func (TeamModel) TableName() string {
	return "teams"
}

func (m TeamModel) toRecord() Record {
	return Record{
		ID:       m.ID,
		Seq:      m.Seq,
		Name:     m.Name,
		Zone:     m.Zone,
		Wins:     m.Wins,
		ImageRef: m.ImageRef,
	}
}

// GormStore is a Store backed by a GORM connection (MySQL or SQLite).
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger

	// mu serializes mutations including their notification dispatch.
	mu         sync.Mutex
	generation atomic.Uint64
	notifier   *notifier
}

// NewGormStore creates a store on top of db. It does not touch the schema; call Migrate for that.
func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormStore{
		db:       db,
		logger:   logger,
		notifier: newNotifier(),
	}
}

// Migrate creates or updates the teams table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&TeamModel{}); err != nil {
		return fmt.Errorf("%w: migrate teams: %v", ErrPersistence, err)
	}
	return nil
}

// Insert persists a new record and notifies subscribers.
func (s *GormStore) Insert(ctx context.Context, rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.insertLocked(ctx, rec)
	if err != nil {
		return "", err
	}
	s.commitLocked()
	return id, nil
}

// InsertBatch persists recs one at a time. Earlier inserts are kept when a later one fails;
// subscribers are notified once if at least one insert committed.
func (s *GormStore) InsertBatch(ctx context.Context, recs []Record) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(recs))
	var err error
	for i, rec := range recs {
		var id string
		id, err = s.insertLocked(ctx, rec)
		if err != nil {
			err = fmt.Errorf("batch entry %d: %w", i, err)
			break
		}
		ids = append(ids, id)
	}

	if len(ids) > 0 {
		s.commitLocked()
	}
	return ids, err
}

func (s *GormStore) insertLocked(ctx context.Context, rec Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	m := TeamModel{
		ID:       uuid.NewString(),
		Name:     rec.Name,
		Zone:     rec.Zone,
		Wins:     rec.Wins,
		ImageRef: rec.clone().ImageRef,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return "", fmt.Errorf("%w: insert team %q: %v", ErrPersistence, rec.Name, err)
	}

	s.logger.Debug("Team inserted", zap.String("id", m.ID), zap.Uint64("seq", m.Seq), zap.String("zone", m.Zone))
	return m.ID, nil
}

// Update loads the record, applies mutate and persists the changed fields.
func (s *GormStore) Update(ctx context.Context, id string, mutate func(*Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m TeamModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return fmt.Errorf("%w: load team %s: %v", ErrPersistence, id, err)
		}

		rec := m.toRecord()
		if err := mutate(&rec); err != nil {
			return err
		}
		if rec.ID != m.ID || rec.Seq != m.Seq {
			return fmt.Errorf("%w: identity of %s cannot change", ErrInvalidRecord, id)
		}
		if err := rec.Validate(); err != nil {
			return err
		}

		updates := map[string]any{
			"name":      rec.Name,
			"zone":      rec.Zone,
			"wins":      rec.Wins,
			"image_ref": rec.ImageRef,
		}
		if err := tx.Model(&TeamModel{}).Where("seq = ?", m.Seq).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: update team %s: %v", ErrPersistence, id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Team updated", zap.String("id", id))
	s.commitLocked()
	return nil
}

// Get returns the record with the given id.
func (s *GormStore) Get(ctx context.Context, id string) (Record, error) {
	var m TeamModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Record{}, fmt.Errorf("%w: load team %s: %v", ErrPersistence, id, err)
	}
	return m.toRecord(), nil
}

// List returns all records ordered by insertion sequence.
func (s *GormStore) List(ctx context.Context) ([]Record, error) {
	var models []TeamModel
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: list teams: %v", ErrPersistence, err)
	}
	out := make([]Record, 0, len(models))
	for _, m := range models {
		out = append(out, m.toRecord())
	}
	return out, nil
}

// Count returns the number of records matching pred.
func (s *GormStore) Count(ctx context.Context, pred Predicate) (int, error) {
	if pred == nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&TeamModel{}).Count(&n).Error; err != nil {
			return 0, fmt.Errorf("%w: count teams: %v", ErrPersistence, err)
		}
		return int(n), nil
	}

	recs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range recs {
		if pred(r) {
			n++
		}
	}
	return n, nil
}

// Subscribe registers l for change notifications.
func (s *GormStore) Subscribe(l Listener) *Subscription {
	return s.notifier.subscribe(l)
}

// Generation returns the number of committed mutations.
func (s *GormStore) Generation() uint64 {
	return s.generation.Load()
}

// commitLocked bumps the generation and dispatches. Callers hold s.mu.
func (s *GormStore) commitLocked() {
	gen := s.generation.Add(1)
	s.notifier.publish(Change{Generation: gen})
}
