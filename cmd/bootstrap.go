package cmd

import (
	"context"
	"fmt"
	"strings"

	"teamboard/core/config"
	"teamboard/core/database"
	"teamboard/core/liveview"
	"teamboard/core/logger"
	"teamboard/core/storage"
	"teamboard/core/store"
	"teamboard/feature/seed"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services bundles the components shared by the commands.
type services struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *store.GormStore
}

// bootstrap loads configuration, builds the logger and opens the record store.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	st := store.NewGormStore(db, logg)
	if cfg.Database.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
	} else {
		missing, err := store.VerifySchema(db)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("teams table is missing columns: %s", strings.Join(missing, ", "))
		}
	}

	logg.Debug("Record store ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Name))

	return &services{cfg: cfg, logger: logg, db: db, store: st}, nil
}

// storageClient creates the object storage client when a seed object is configured.
func (s *services) storageClient() (storage.Client, error) {
	if s.cfg.Seed.Object == "" {
		return nil, nil
	}
	return storage.NewClient(s.cfg.Storage)
}

// seedSource resolves the configured seed source.
func (s *services) seedSource() (seed.Source, error) {
	client, err := s.storageClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return seed.SourceFromConfig(s.cfg.Seed, client, s.cfg.Storage.Bucket), nil
}

// liveView builds and initializes the live view over the store.
func (s *services) liveView(ctx context.Context) (*liveview.Controller, error) {
	spec, err := s.cfg.View.Spec()
	if err != nil {
		return nil, err
	}
	view := liveview.New(s.store, spec, s.logger)
	if err := view.Initialize(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

// close releases the database and flushes the logger.
func (s *services) close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = s.logger.Sync()
}
