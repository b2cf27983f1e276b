package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"postcard-gallery/core/media"
	"postcard-gallery/core/storage"
	"postcard-gallery/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd checks the registry against the postcard folder.
var integrityCmd = &cobra.Command{
	Use:   "integrity [folder]",
	Short: "Check the travel point registry against the postcard folder",
	Long: `Reports duplicate ids and places, invalid country codes, points without
coordinates, registry links to vanished postcards and postcards without a point.
Nothing is modified; use "reconcile points --write" to repair.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntegrity,
}

// structureCmd checks the postcard folders of the S3 bucket.
var structureCmd = &cobra.Command{
	Use:   "structure [folder...]",
	Short: "Check and fix postcard folders in the S3 bucket",
	RunE:  runStructure,
}

func init() {
	integrityCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save the detailed issues to a JSON file")
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	integrityCmd.AddCommand(structureCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	startTime := time.Now()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	source, err := media.NewSource(cfg.Media, cfg.Storage)
	if err != nil {
		return err
	}

	folder := folderArg(args, cfg.Points.DefaultFolder)
	svc := integrity.NewService(source, nil, cfg.Storage.Bucket, l)

	report, err := svc.CheckRegistry(ctx, cfg.Points.RegistryPath, media.FolderPath(folder, cfg.Media.RootPrefix), folder, cfg.Media.PageSize)
	if err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	if jsonFlag {
		filename := fmt.Sprintf("integrity_points_%d.json", time.Now().Unix())
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		l.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("issues", len(report.Issues)))
	}

	counts := report.Counts()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	fields := []zap.Field{
		zap.Int("points", report.Points),
		zap.Int("postcards", report.Postcards),
		zap.Int("issues", len(report.Issues)),
	}
	for _, kind := range kinds {
		fields = append(fields, zap.Int(kind, counts[kind]))
	}
	fields = append(fields, zap.Duration("execution_time", time.Since(startTime)))
	l.Info("Registry integrity check completed", fields...)

	return nil
}

func runStructure(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	if cfg.Media.Backend != media.BackendS3 {
		return fmt.Errorf("structure check requires media.backend=%s (got %q)", media.BackendS3, cfg.Media.Backend)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	folders := make([]string, 0, len(args)+1)
	if len(args) == 0 {
		args = []string{cfg.Points.DefaultFolder}
	}
	for _, a := range args {
		folders = append(folders, media.FolderPath(a, cfg.Media.RootPrefix))
	}

	svc := integrity.NewService(nil, client, cfg.Storage.Bucket, l)
	missing, err := svc.CheckStructure(ctx, folders)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		l.Info("All folders present", zap.Strings("folders", folders))
		return nil
	}

	l.Warn("Missing folders", zap.Strings("folders", missing))
	if fixFlag {
		return svc.FixStructure(ctx, missing)
	}
	return nil
}
