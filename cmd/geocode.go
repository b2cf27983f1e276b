package cmd

import (
	"fmt"

	"postcard-gallery/core/geocode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// geocodeCmd resolves one place through the cache and the geocoding service.
var geocodeCmd = &cobra.Command{
	Use:   "geocode <city> <country-code>",
	Short: "Resolve one city through the geocode cache (debug aid)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGeocode,
}

func init() {
	geocodeCmd.Flags().StringVar(&cachePath, "cache", "", "Geocode cache file (forces the file cache backend)")
	RootCmd.AddCommand(geocodeCmd)
}

func runGeocode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	if cachePath != "" {
		cfg.Geocode.CacheBackend = geocode.BackendFile
		cfg.Geocode.CachePath = cachePath
	}
	store, err := geocode.OpenStore(ctx, cfg.Geocode, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open geocode cache: %w", err)
	}

	svc := geocode.NewService(geocode.NewNominatimClient(cfg.Geocode), store, cfg.Geocode.Delay(), l)
	out, err := svc.Lookup(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if !out.Found {
		return fmt.Errorf("no result for %s, %s", args[0], args[1])
	}

	l.Info("Resolved",
		zap.String("city", args[0]),
		zap.String("country_code", args[1]),
		zap.Float64("lat", out.Point.Lat),
		zap.Float64("lng", out.Point.Lng),
		zap.Bool("cached", out.Cached),
	)

	return store.Flush(ctx)
}
