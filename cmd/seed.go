package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"teamboard/core/config"
	"teamboard/core/logger"
	"teamboard/core/storage"
	"teamboard/feature/seed"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedFile    string
	seedObject  string
	seedLenient bool
	seedStrict  bool
	seedIfEmpty bool
)

// seedCmd imports a seed document into the record store.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the seed document into the record store",
	Long: `Imports teams from a seed document. The store must be empty unless --if-empty is set,
in which case a populated store is left untouched.

Examples:
  # Import the configured seed source
  teamboard seed

  # Import a local file, rejecting it if any entry is malformed
  teamboard seed --file teams.json --strict`,
	RunE: runSeed,
}

// seedUploadCmd uploads a seed document to object storage.
var seedUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Validate a seed file and upload it to the storage bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeedUpload,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Local seed file (overrides configuration)")
	seedCmd.Flags().StringVar(&seedObject, "object", "", "Seed object in the storage bucket (overrides configuration)")
	seedCmd.Flags().BoolVar(&seedLenient, "lenient", false, "Skip malformed entries instead of failing")
	seedCmd.Flags().BoolVar(&seedStrict, "strict", false, "Fail the whole import on the first malformed entry")
	seedCmd.Flags().BoolVar(&seedIfEmpty, "if-empty", false, "Do nothing when the store already holds records")

	seedUploadCmd.Flags().StringVar(&seedObject, "object", "", "Object name (defaults to the configured seed object or the file name)")

	seedCmd.AddCommand(seedUploadCmd)
	RootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer svc.close()

	if seedFile != "" {
		svc.cfg.Seed.Path = seedFile
		svc.cfg.Seed.Object = ""
	}
	if seedObject != "" {
		svc.cfg.Seed.Object = seedObject
	}
	strict := (svc.cfg.Seed.Strict || seedStrict) && !seedLenient

	src, err := svc.seedSource()
	if err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("no seed source configured")
	}

	imp := seed.NewImporter(svc.store, svc.logger, strict)
	var res *seed.Result
	if seedIfEmpty {
		res, err = imp.ImportIfEmpty(ctx, src)
	} else {
		res, err = imp.Import(ctx, src)
	}
	if res != nil {
		printSeedResult(res)
	}
	return err
}

func printSeedResult(res *seed.Result) {
	fmt.Println("\n--- Seed Import ---")
	fmt.Printf("Source:         %s\n", res.Source)
	if res.AlreadySeeded {
		fmt.Println("Store already seeded, nothing imported.")
		return
	}
	fmt.Printf("Imported:       %d\n", res.Imported)
	fmt.Printf("Skipped:        %d\n", len(res.Skipped))
	for _, p := range res.Skipped {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Println("-------------------")
}

func runSeedUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	// Refuse to upload a document the strict importer would reject.
	entries, _, err := seed.Parse(data, true)
	if err != nil {
		return err
	}

	object := seedObject
	if object == "" {
		object = cfg.Seed.Object
	}
	if object == "" {
		object = filepath.Base(args[0])
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return err
	}
	info, err := client.PutObject(ctx, cfg.Storage.Bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload seed file: %w", err)
	}

	logg.Info("Seed file uploaded",
		zap.String("bucket", info.Bucket),
		zap.String("object", info.Key),
		zap.Int("entries", len(entries)),
		zap.Int64("size", info.Size))
	return nil
}
