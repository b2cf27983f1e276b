package points

import (
	"context"
	"fmt"

	"postcard-gallery/core/geocode"
	"postcard-gallery/core/logger"
	"postcard-gallery/core/media"
	"postcard-gallery/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSamples bounds the changes and warnings listed in the report.
const maxSamples = 5

// RunOptions controls one registry reconciliation.
type RunOptions struct {
	// Folder is the folder argument; it doubles as the batch label.
	Folder string
	// FolderPath is the resolved media host folder (see media.FolderPath).
	FolderPath string
	// PageSize is the media host page size.
	PageSize int
	// RegistryPath is the registry file.
	RegistryPath string
	// Write commits the new registry; it implies pruning.
	Write bool
	// DryRun skips the registry write even with Write set.
	DryRun bool
	// Prune forces pruning without writing.
	Prune bool
	// NoGeocode disables coordinate lookups.
	NoGeocode bool
	// Limit caps the number of resources processed.
	Limit int
}

// Report is the outcome of a run.
type Report struct {
	RunID     string
	Resources int
	Result    *reconcile.Result
	Written   bool
}

// Service runs registry reconciliations.
type Service struct {
	source   media.Source
	geocoder reconcile.Geocoder
	cache    geocode.Store
	logger   *zap.Logger
	newRunID func() string
}

// NewService creates a new points service. geocoder and cache may be nil.
func NewService(source media.Source, geocoder reconcile.Geocoder, cache geocode.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:   source,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Run fetches the folder, reconciles it against the registry and writes the
// registry when requested.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	report := &Report{RunID: s.newRunID()}
	l := logger.WithRunID(s.logger, report.RunID)

	folderPath := opts.FolderPath
	if folderPath == "" {
		folderPath = opts.Folder
	}

	l.Info("Fetching postcards", zap.String("folder", folderPath))
	resources, err := media.FetchAll(ctx, s.source, media.Query{Folder: folderPath, MaxResults: opts.PageSize}, l)
	if err != nil {
		return nil, err
	}
	report.Resources = len(resources)

	existing, err := LoadRegistry(opts.RegistryPath)
	if err != nil {
		return nil, err
	}
	l.Info("Loaded registry", zap.String("path", opts.RegistryPath), zap.Int("points", len(existing)))

	result, err := reconcile.Reconcile(ctx, resources, existing, s.geocoder, reconcile.Options{
		BatchLabel: opts.Folder,
		Limit:      opts.Limit,
		NoGeocode:  opts.NoGeocode,
		Prune:      opts.Write || opts.Prune,
	})
	if err != nil {
		return nil, fmt.Errorf("reconciliation aborted: %w", err)
	}
	report.Result = result

	logReport(l, report)

	switch {
	case opts.Write && !opts.DryRun:
		if err := SaveRegistry(opts.RegistryPath, result.Points); err != nil {
			return nil, fmt.Errorf("failed to write registry: %w", err)
		}
		report.Written = true
		l.Info("Registry written", zap.String("path", opts.RegistryPath), zap.Int("points", len(result.Points)))
	case result.Modified():
		l.Info("Dry-run mode: registry not written. Use --write to commit the changes.")
	default:
		l.Info("Registry is up to date")
	}

	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			return report, fmt.Errorf("failed to flush geocode cache: %w", err)
		}
	}

	return report, nil
}

// logReport prints the run counters, a sample of changes and the warnings.
func logReport(l *zap.Logger, report *Report) {
	r := report.Result
	st := r.Stats

	l.Info("Reconciliation report",
		zap.Int("resources", report.Resources),
		zap.Int("processed", st.Processed),
		zap.Int("added", st.Added),
		zap.Int("updated", st.Updated),
		zap.Int("skipped", st.Skipped),
		zap.Int("geocoded", st.Geocoded),
		zap.Int("cache_hits", st.CacheHits),
		zap.Int("pruned", st.Pruned),
		zap.Int("dropped", st.Dropped),
		zap.Int("points", len(r.Points)),
	)

	var changes []reconcile.Change
	for _, c := range r.Changes {
		if c.Kind != reconcile.ChangeUnchanged {
			changes = append(changes, c)
		}
	}
	shown := min(len(changes), maxSamples)
	for _, c := range changes[:shown] {
		l.Info("Sample change",
			zap.String("kind", string(c.Kind)),
			zap.String("point", c.PointID),
			zap.String("postcard", c.PostcardID),
			zap.String("matched_by", string(c.MatchedBy)),
			zap.String("reason", c.Reason),
		)
	}
	if len(changes) > shown {
		l.Info("Additional changes not shown", zap.Int("count", len(changes)-shown))
	}

	for _, w := range r.Warnings {
		l.Warn(w)
	}
}
