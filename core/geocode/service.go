package geocode

import (
	"context"
	"fmt"
	"time"

	"postcard-gallery/core/normalize"

	"go.uber.org/zap"
)

// Service resolves places through the cache and, on a miss, the external client.
// It is not safe for concurrent use; reconciliation runs are sequential.
type Service struct {
	client Client
	store  Store
	delay  time.Duration
	logger *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	lastRequest time.Time
	requests    int
}

// NewService creates a Service. A nil client makes the service cache-only.
func NewService(client Client, store Store, delay time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		store:  store,
		delay:  delay,
		logger: logger,
		sleep:  sleepContext,
		now:    time.Now,
	}
}

// Lookup returns the coordinates of city in countryCode.
// A miss in both cache and service yields Found=false and a nil error.
// Service failures are returned as errors and leave the cache untouched.
func (s *Service) Lookup(ctx context.Context, city, countryCode string) (Outcome, error) {
	key := normalize.PlaceKey(countryCode, city)

	entry, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return Outcome{}, err
	}
	if ok {
		return Outcome{Point: entry.Point(), Found: true, Cached: true}, nil
	}

	if s.client == nil {
		return Outcome{}, nil
	}

	if err := s.throttle(ctx); err != nil {
		return Outcome{}, err
	}

	code := normalize.CountryCode(countryCode)
	point, err := s.client.Search(ctx, Query{City: city, CountryCode: code})
	s.lastRequest = s.now()
	s.requests++
	if err != nil {
		s.logger.Warn("Geocoding failed", zap.String("key", key), zap.Error(err))
		return Outcome{}, fmt.Errorf("geocode %s: %w", key, err)
	}
	if point == nil {
		s.logger.Warn("Geocoding returned no result", zap.String("key", key))
		return Outcome{}, nil
	}

	if err := s.store.Put(ctx, key, Entry{Lat: point.Lat, Lng: point.Lng, City: city, CountryCode: code}); err != nil {
		return Outcome{}, err
	}
	s.logger.Debug("Geocoded place", zap.String("key", key), zap.Float64("lat", point.Lat), zap.Float64("lng", point.Lng))

	return Outcome{Point: *point, Found: true}, nil
}

// Requests returns the number of network lookups made so far.
func (s *Service) Requests() int {
	return s.requests
}

// throttle waits until delay has passed since the previous network call.
func (s *Service) throttle(ctx context.Context) error {
	if s.lastRequest.IsZero() || s.delay <= 0 {
		return nil
	}
	wait := s.delay - s.now().Sub(s.lastRequest)
	if wait <= 0 {
		return nil
	}
	return s.sleep(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
