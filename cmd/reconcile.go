package cmd

import (
	"fmt"

	"postcard-gallery/core/geocode"
	"postcard-gallery/core/media"
	"postcard-gallery/feature/points"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile points command
	writePoints  bool
	dryRunPoints bool
	noGeocode    bool
	prunePoints  bool
	limitPoints  int
	pointsPath   string
	cachePath    string
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile local data with the postcard collection",
}

// pointsReconcileCmd reconciles the travel point registry with a folder.
var pointsReconcileCmd = &cobra.Command{
	Use:   "points [folder]",
	Short: "Reconcile the travel point registry (report + optionally write)",
	Long: `Reconcile the travel point registry with the postcards of a folder.

Each postcard identifier "<CC>_<City>_<suffix>" is matched to an existing
point or becomes a new one. New cities are geocoded through the cache and,
on a miss, the geocoding service. The run is a dry-run unless --write is set.

Examples:
  # Report only (dry-run) for the default folder
  reconcile points

  # Commit changes (implies pruning of vanished postcards)
  reconcile points Countries --write

  # Offline run, first 20 postcards, pruning preview
  reconcile points --no-geocode --limit 20 --prune`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPointsReconcile,
}

func init() {
	reconcileCmd.AddCommand(pointsReconcileCmd)

	pointsReconcileCmd.Flags().BoolVar(&writePoints, "write", false, "Write the registry (implies --prune)")
	pointsReconcileCmd.Flags().BoolVar(&dryRunPoints, "dry-run", false, "Force dry-run (no write even with --write)")
	pointsReconcileCmd.Flags().BoolVar(&noGeocode, "no-geocode", false, "Skip network geocoding lookups")
	pointsReconcileCmd.Flags().BoolVar(&prunePoints, "prune", false, "Prune stale batch points even without --write")
	pointsReconcileCmd.Flags().IntVar(&limitPoints, "limit", 0, "Process at most N postcards (0 = all)")
	pointsReconcileCmd.Flags().StringVar(&pointsPath, "points", "", "Registry file (default points.registry_path)")
	pointsReconcileCmd.Flags().StringVar(&cachePath, "cache", "", "Geocode cache file (forces the file cache backend)")

	RootCmd.AddCommand(reconcileCmd)
}

func runPointsReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	folder := folderArg(args, cfg.Points.DefaultFolder)
	l.Info("Starting points reconciliation", zap.String("folder", folder))

	// Credentials are checked before any network call
	source, err := media.NewSource(cfg.Media, cfg.Storage)
	if err != nil {
		return err
	}

	if cachePath != "" {
		cfg.Geocode.CacheBackend = geocode.BackendFile
		cfg.Geocode.CachePath = cachePath
	}
	store, err := geocode.OpenStore(ctx, cfg.Geocode, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open geocode cache: %w", err)
	}

	var client geocode.Client
	if !noGeocode {
		client = geocode.NewNominatimClient(cfg.Geocode)
	}
	geo := geocode.NewService(client, store, cfg.Geocode.Delay(), l)

	registry := pointsPath
	if registry == "" {
		registry = cfg.Points.RegistryPath
	}

	svc := points.NewService(source, geo, store, l)
	report, err := svc.Run(ctx, points.RunOptions{
		Folder:       folder,
		FolderPath:   media.FolderPath(folder, cfg.Media.RootPrefix),
		PageSize:     cfg.Media.PageSize,
		RegistryPath: registry,
		Write:        writePoints,
		DryRun:       dryRunPoints || !writePoints,
		Prune:        prunePoints,
		NoGeocode:    noGeocode,
		Limit:        limitPoints,
	})
	if err != nil {
		return err
	}

	l.Info("Done",
		zap.String("run_id", report.RunID),
		zap.Bool("written", report.Written),
		zap.Int("geocode_requests", geo.Requests()),
		zap.Int("cache_entries", store.Len()),
	)
	return nil
}
