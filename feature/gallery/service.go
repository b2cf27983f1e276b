package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"postcard-gallery/core/media"
	"postcard-gallery/core/place"
	"postcard-gallery/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service builds and publishes gallery manifests.
type Service struct {
	source media.Source
	client storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new gallery service. client may be nil when the
// manifest is never published.
func NewService(source media.Source, client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		client: client,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Build fetches folderPath and assembles the manifest of its visible postcards.
func (s *Service) Build(ctx context.Context, folderPath string, pageSize int) (*Manifest, error) {
	resources, err := media.FetchAll(ctx, s.source, media.Query{Folder: folderPath, MaxResults: pageSize}, s.logger)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Folder:      folderPath,
		GeneratedAt: s.now().UTC(),
		Postcards:   make([]Postcard, 0, len(resources)),
	}
	albums := make(map[string]int)
	tags := make(map[string]int)

	for _, res := range resources {
		if res.Hidden() {
			m.Hidden++
			continue
		}

		pc := Postcard{
			ID:        res.PublicID,
			Album:     path.Base(res.Folder),
			URL:       res.URL,
			Tags:      res.Tags,
			Metadata:  res.Metadata,
			CreatedAt: res.CreatedAt,
		}
		if res.Folder == "" {
			pc.Album = path.Base(folderPath)
		}
		if cand, err := place.Parse(res.PublicID); err == nil {
			pc.Place = &Place{
				City:        cand.City,
				CountryCode: cand.CountryCode,
				CountryName: place.CountryName(cand.CountryCode),
			}
		}

		m.Postcards = append(m.Postcards, pc)
		albums[pc.Album]++
		for _, t := range res.Tags {
			tags[strings.ToLower(t)]++
		}
	}

	sort.SliceStable(m.Postcards, func(i, j int) bool {
		a, b := m.Postcards[i], m.Postcards[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	m.Albums = sortedCounts(albums)
	m.Tags = sortedCounts(tags)

	s.logger.Info("Gallery built",
		zap.String("folder", folderPath),
		zap.Int("postcards", len(m.Postcards)),
		zap.Int("hidden", m.Hidden),
		zap.Int("albums", len(m.Albums)),
	)
	return m, nil
}

// Publish uploads the manifest as key to the storage bucket.
func (s *Service) Publish(ctx context.Context, key string, m *Manifest) error {
	if s.client == nil {
		return fmt.Errorf("no storage client configured")
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  "application/json",
		CacheControl: "no-cache",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Info("Manifest published", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func sortedCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
