package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"teamboard/core/loader"
	"teamboard/core/logger"
	"teamboard/core/middleware/auth"
	"teamboard/core/middleware/rayid"
	"teamboard/feature/integrity"
	"teamboard/feature/seed"
	"teamboard/feature/teams"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the teamboard server",
	Long:  `Opens the record store, imports the seed document if the store is empty, and serves the live view over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Configuration, logger and record store
	svc, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer svc.close()
	logg := svc.logger
	zap.ReplaceGlobals(logg)

	// 2. Seed import; a rejected document stops startup
	src, err := svc.seedSource()
	if err != nil {
		return err
	}
	if svc.cfg.Seed.OnStart && src != nil {
		imp := seed.NewImporter(svc.store, logg, svc.cfg.Seed.Strict)
		if _, err := imp.ImportIfEmpty(ctx, src); err != nil {
			return fmt.Errorf("seed import failed: %w", err)
		}
	}

	// 3. Live view
	spec, err := svc.cfg.View.Spec()
	if err != nil {
		return fmt.Errorf("invalid view configuration: %w", err)
	}
	view, err := svc.liveView(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize live view: %w", err)
	}
	defer view.Close()

	teamSvc := teams.NewService(svc.store, view, logg, svc.cfg.Server.HistorySize)
	defer teamSvc.Close()

	// 4. Fiber app and features
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager(logg)
	mgr.Register(teams.NewFeature(teamSvc))
	mgr.Register(integrity.NewFeature(integrity.Options{
		DB:     svc.db,
		Store:  svc.store,
		View:   view,
		Spec:   spec,
		Source: src,
		Strict: svc.cfg.Seed.Strict,
		Logger: logg,
	}))

	// RayID must be first to trace everything
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{ApiKey: svc.cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	// 5. Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", svc.cfg.Server.Port))
		errCh <- app.Listen(svc.cfg.Server.Addr())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sig:
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(svc.cfg.Server.ShutdownTimeout())
}
