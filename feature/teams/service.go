package teams

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"teamboard/core/liveview"
	"teamboard/core/reconcile"
	"teamboard/core/store"

	"go.uber.org/zap"
)

// DefaultImage is the image reference given to teams added without one.
const DefaultImage = "default"

// DefaultHistorySize is the number of reconcile batches kept for inspection.
const DefaultHistorySize = 32

// Batch is one reconcile batch produced by the live view.
type Batch struct {
	Generation uint64                `json:"generation"`
	Operations []reconcile.Operation `json:"operations"`
	Summary    reconcile.Summary     `json:"summary"`
}

// NewTeam is the input for AddTeam.
type NewTeam struct {
	Name  string  `json:"name"`
	Zone  string  `json:"zone"`
	Wins  int     `json:"wins"`
	Image *string `json:"image,omitempty"`
}

// Service handles team operations.
type Service struct {
	store  store.Store
	view   *liveview.Controller
	logger *zap.Logger

	mu      sync.Mutex
	history []Batch
	limit   int
	stop    func()
}

// NewService creates a team service and starts recording reconcile batches of view.
func NewService(st store.Store, view *liveview.Controller, logger *zap.Logger, historySize int) *Service {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	s := &Service{
		store:  st,
		view:   view,
		logger: logger,
		limit:  historySize,
	}
	s.stop = view.Observe(s.record)
	return s
}

// Close stops recording reconcile batches.
func (s *Service) Close() {
	s.stop()
}

func (s *Service) record(generation uint64, ops []reconcile.Operation) {
	b := Batch{
		Generation: generation,
		Operations: append([]reconcile.Operation(nil), ops...),
		Summary:    reconcile.Summarize(ops),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, b)
	if len(s.history) > s.limit {
		s.history = append(s.history[:0:0], s.history[len(s.history)-s.limit:]...)
	}
}

// RecentBatches returns the recorded batches, oldest first.
func (s *Service) RecentBatches() []Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Batch(nil), s.history...)
}

// Sections returns the sections of the current view.
func (s *Service) Sections() ([]liveview.SectionInfo, error) {
	return s.view.Sections()
}

// ObjectAt returns the record at a position of the current view.
func (s *Service) ObjectAt(section, row int) (store.Record, error) {
	return s.view.ObjectAt(section, row)
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() (*reconcile.Snapshot, error) {
	return s.view.Snapshot()
}

// IncrementWins adds one win to the team with the given id and returns the updated record.
func (s *Service) IncrementWins(ctx context.Context, id string) (store.Record, error) {
	if err := s.store.Update(ctx, id, func(r *store.Record) error {
		r.Wins++
		return nil
	}); err != nil {
		return store.Record{}, err
	}
	return s.store.Get(ctx, id)
}

// IncrementWinsAt adds one win to the team shown at (section, row).
func (s *Service) IncrementWinsAt(ctx context.Context, section, row int) (store.Record, error) {
	rec, err := s.view.ObjectAt(section, row)
	if err != nil {
		return store.Record{}, err
	}
	return s.IncrementWins(ctx, rec.ID)
}

// AddTeam inserts a new team and returns it.
func (s *Service) AddTeam(ctx context.Context, in NewTeam) (store.Record, error) {
	name := strings.TrimSpace(in.Name)
	zone := strings.TrimSpace(in.Zone)
	if name == "" || zone == "" {
		return store.Record{}, fmt.Errorf("%w: name and zone are required", store.ErrInvalidRecord)
	}

	img := in.Image
	if img == nil {
		img = store.StringPtr(DefaultImage)
	}

	id, err := s.store.Insert(ctx, store.Record{Name: name, Zone: zone, Wins: in.Wins, ImageRef: img})
	if err != nil {
		return store.Record{}, err
	}
	s.logger.Info("Team added", zap.String("id", id), zap.String("name", name), zap.String("zone", zone))
	return s.store.Get(ctx, id)
}
