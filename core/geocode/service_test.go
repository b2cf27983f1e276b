package geocode

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockClient is a testify mock of Client.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Search(ctx context.Context, q Query) (*Point, error) {
	args := m.Called(ctx, q)
	if p, ok := args.Get(0).(*Point); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := OpenFileStore(filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, err)
	return store
}

// fakeClock advances only when sleep is called.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestService(client Client, store Store, delay time.Duration) (*Service, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewService(client, store, delay, nil)
	svc.now = clock.Now
	svc.sleep = clock.Sleep
	return svc, clock
}

func TestLookup_CacheHit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Put(ctx, "FR:paris", Entry{Lat: 48.8566, Lng: 2.3522, City: "Paris", CountryCode: "FR"}))

	client := new(mockClient)
	svc, _ := newTestService(client, store, time.Second)

	out, err := svc.Lookup(ctx, "PARIS", "fr")
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.True(t, out.Cached)
	assert.Equal(t, Point{Lat: 48.8566, Lng: 2.3522}, out.Point)
	client.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	assert.Equal(t, 0, svc.Requests())
}

func TestLookup_MissStoresResult(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	client := new(mockClient)
	client.On("Search", mock.Anything, Query{City: "Lisboa", CountryCode: "PT"}).
		Return(&Point{Lat: 38.7223, Lng: -9.1393}, nil).Once()

	svc, _ := newTestService(client, store, time.Second)

	out, err := svc.Lookup(ctx, "Lisboa", "pt")
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.False(t, out.Cached)

	entry, ok, err := store.Get(ctx, "PT:lisbon")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Entry{Lat: 38.7223, Lng: -9.1393, City: "Lisboa", CountryCode: "PT"}, entry)

	// The alias makes "Lisbon" hit the same cache entry.
	out, err = svc.Lookup(ctx, "Lisbon", "PT")
	require.NoError(t, err)
	assert.True(t, out.Cached)
	client.AssertExpectations(t)
}

func TestLookup_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	client := new(mockClient)
	client.On("Search", mock.Anything, mock.Anything).Return(nil, nil)

	svc, _ := newTestService(client, store, 0)

	out, err := svc.Lookup(ctx, "Atlantis", "GR")
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, 0, store.Len())
}

func TestLookup_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	client := new(mockClient)
	client.On("Search", mock.Anything, mock.Anything).Return(nil, ErrMalformedResponse)

	svc, _ := newTestService(client, store, 0)

	out, err := svc.Lookup(ctx, "Paris", "FR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.False(t, out.Found)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1, svc.Requests())
}

func TestLookup_ThrottlesBetweenNetworkCalls(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	client := new(mockClient)
	client.On("Search", mock.Anything, mock.Anything).Return(&Point{Lat: 1, Lng: 1}, nil)

	svc, clock := newTestService(client, store, 1100*time.Millisecond)

	_, err := svc.Lookup(ctx, "Paris", "FR")
	require.NoError(t, err)
	assert.Empty(t, clock.sleeps, "first request is not delayed")

	// Cache hits never wait.
	_, err = svc.Lookup(ctx, "Paris", "FR")
	require.NoError(t, err)
	assert.Empty(t, clock.sleeps)

	clock.now = clock.now.Add(100 * time.Millisecond)
	_, err = svc.Lookup(ctx, "Lyon", "FR")
	require.NoError(t, err)
	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, time.Second, clock.sleeps[0])

	clock.now = clock.now.Add(5 * time.Second)
	_, err = svc.Lookup(ctx, "Nice", "FR")
	require.NoError(t, err)
	assert.Len(t, clock.sleeps, 1, "no wait once the delay has elapsed")
	assert.Equal(t, 3, svc.Requests())
}

func TestLookup_NilClientIsCacheOnly(t *testing.T) {
	svc := NewService(nil, newTestStore(t), time.Second, nil)
	out, err := svc.Lookup(context.Background(), "Paris", "FR")
	require.NoError(t, err)
	assert.False(t, out.Found)
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepContext(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
