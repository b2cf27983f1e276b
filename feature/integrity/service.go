package integrity

import (
	"context"
	"fmt"

	"postcard-gallery/core/media"
	"postcard-gallery/core/storage"
	"postcard-gallery/feature/integrity/checks"
	"postcard-gallery/feature/points"

	"go.uber.org/zap"
)

// Report is the result of a registry check.
type Report struct {
	Points    int            `json:"points"`
	Postcards int            `json:"postcards"`
	Issues    []checks.Issue `json:"issues"`
}

// Counts returns the number of issues per kind.
func (r *Report) Counts() map[string]int {
	counts := make(map[string]int)
	for _, i := range r.Issues {
		counts[i.Kind]++
	}
	return counts
}

// Service handles integrity checks.
type Service struct {
	source media.Source
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when the
// media host is not an S3 bucket.
func NewService(source media.Source, client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// CheckRegistry loads the registry and checks it against the postcards of
// folderPath. batch is the provenance label owning the folder's points.
func (s *Service) CheckRegistry(ctx context.Context, registryPath, folderPath, batch string, pageSize int) (*Report, error) {
	pts, err := points.LoadRegistry(registryPath)
	if err != nil {
		return nil, err
	}

	resources, err := media.FetchAll(ctx, s.source, media.Query{Folder: folderPath, MaxResults: pageSize}, s.logger)
	if err != nil {
		return nil, err
	}

	report := &Report{Points: len(pts), Postcards: len(resources), Issues: []checks.Issue{}}
	report.Issues = append(report.Issues, checks.CheckRegistry(pts)...)
	report.Issues = append(report.Issues, checks.CheckPostcards(pts, resources, batch)...)
	return report, nil
}

// CheckStructure returns the missing folders of the bucket.
func (s *Service) CheckStructure(ctx context.Context, folders []string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("structure check requires the s3 media backend")
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return fmt.Errorf("structure fix requires the s3 media backend")
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}
