package integrity

import (
	"context"

	"teamboard/core/liveview"
	"teamboard/core/query"
	"teamboard/core/store"
	"teamboard/feature/integrity/checks"
	"teamboard/feature/seed"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	store  store.Store
	view   *liveview.Controller
	spec   query.Spec
	source seed.Source
	strict bool
	logger *zap.Logger
}

// Options holds the dependencies of the integrity service.
type Options struct {
	DB     *gorm.DB
	Store  store.Store
	View   *liveview.Controller
	Spec   query.Spec
	Source seed.Source
	Strict bool
	Logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     opts.DB,
		store:  opts.Store,
		view:   opts.View,
		spec:   opts.Spec,
		source: opts.Source,
		strict: opts.Strict,
		logger: logger,
	}
}

// CheckSchema reports missing columns of the teams table.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckSeed parses the configured seed document.
func (s *Service) CheckSeed(ctx context.Context) (*checks.SeedReport, error) {
	return checks.CheckSeed(ctx, s.source, s.strict)
}

// CheckView compares the live view with the store.
func (s *Service) CheckView(ctx context.Context) (*checks.ViewReport, error) {
	return checks.CheckView(ctx, s.view, s.store, s.spec)
}
