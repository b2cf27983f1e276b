package geocode

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntry is the database row for one cached lookup.
type CacheEntry struct {
	CacheKey    string    `gorm:"column:cache_key;primaryKey;size:191"`
	Lat         float64   `gorm:"not null"`
	Lng         float64   `gorm:"not null"`
	City        string    `gorm:"size:200;not null"`
	CountryCode string    `gorm:"size:2;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (CacheEntry) TableName() string {
	return "geocode_cache"
}

// DBStore keeps cached lookups in a relational database. Writes are immediate.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore wraps db. Call Migrate before first use on a fresh database.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates or updates the geocode_cache table.
func (s *DBStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&CacheEntry{}); err != nil {
		return fmt.Errorf("failed to migrate geocode cache: %w", err)
	}
	return nil
}

// Get returns the entry stored under key.
func (s *DBStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var rows []CacheEntry
	if err := s.db.WithContext(ctx).Where("cache_key = ?", key).Limit(1).Find(&rows).Error; err != nil {
		return Entry{}, false, fmt.Errorf("failed to read geocode cache %s: %w", key, err)
	}
	if len(rows) == 0 {
		return Entry{}, false, nil
	}
	r := rows[0]
	return Entry{Lat: r.Lat, Lng: r.Lng, City: r.City, CountryCode: r.CountryCode}, true, nil
}

// Put upserts an entry.
func (s *DBStore) Put(ctx context.Context, key string, entry Entry) error {
	row := CacheEntry{
		CacheKey:    key,
		Lat:         entry.Lat,
		Lng:         entry.Lng,
		City:        entry.City,
		CountryCode: entry.CountryCode,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"lat", "lng", "city", "country_code", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write geocode cache %s: %w", key, err)
	}
	return nil
}

// Flush is a no-op; every Put is already persisted.
func (s *DBStore) Flush(context.Context) error {
	return nil
}

// Len returns the number of cached rows, or 0 if the count fails.
func (s *DBStore) Len() int {
	var n int64
	if err := s.db.Model(&CacheEntry{}).Count(&n).Error; err != nil {
		return 0
	}
	return int(n)
}
