package geocode

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"postcard-gallery/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestFileStore_LoadAndFlush(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"FR:paris":{"lat":48.8566,"lng":2.3522,"city":"Paris","countryCode":"FR"}}`), 0o644))

	store, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	e, ok, err := store.Get(ctx, "FR:paris")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Paris", e.City)

	require.NoError(t, store.Put(ctx, "DE:berlin", Entry{Lat: 52.52, Lng: 13.405, City: "Berlin", CountryCode: "DE"}))
	require.NoError(t, store.Flush(ctx))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\"DE:berlin\": {\n")
	assert.Equal(t, byte('\n'), raw[len(raw)-1])
}

func TestFileStore_FlushWithoutChangesDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	store, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Flush(context.Background()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o644))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestDBStore_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDBStore(db)

	rows := sqlmock.NewRows([]string{"cache_key", "lat", "lng", "city", "country_code"}).
		AddRow("FR:paris", 48.8566, 2.3522, "Paris", "FR")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `geocode_cache` WHERE cache_key = ?")).WillReturnRows(rows)

	e, ok, err := store.Get(context.Background(), "FR:paris")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Entry{Lat: 48.8566, Lng: 2.3522, City: "Paris", CountryCode: "FR"}, e)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_GetMiss(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDBStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `geocode_cache`")).
		WillReturnRows(sqlmock.NewRows([]string{"cache_key"}))

	_, ok, err := store.Get(context.Background(), "FR:nowhere")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_Put(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDBStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `geocode_cache`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Put(context.Background(), "FR:paris", Entry{Lat: 48.8566, Lng: 2.3522, City: "Paris", CountryCode: "FR"})
	require.NoError(t, err)
	assert.NoError(t, store.Flush(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_Len(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDBStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `geocode_cache`")).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	assert.Equal(t, 3, store.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), Config{CacheBackend: "redis"}, database.Config{})
	assert.EqualError(t, err, "unknown geocode cache backend: redis")
}

func TestOpenStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store, err := OpenStore(context.Background(), Config{CachePath: path}, database.Config{})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
}

func TestOpenStore_DatabaseSQLite(t *testing.T) {
	ctx := context.Background()
	dbCfg := database.Config{Driver: database.DriverSQLite, Name: filepath.Join(t.TempDir(), "geocode.db")}

	store, err := OpenStore(ctx, Config{CacheBackend: BackendDatabase}, dbCfg)
	require.NoError(t, err)
	require.IsType(t, &DBStore{}, store)

	entry := Entry{Lat: 38.72, Lng: -9.14, City: "Lisboa", CountryCode: "PT"}
	require.NoError(t, store.Put(ctx, "PT:lisbon", entry))
	entry.City = "Lisbon"
	require.NoError(t, store.Put(ctx, "PT:lisbon", entry))
	require.NoError(t, store.Flush(ctx))

	got, ok, err := store.Get(ctx, "PT:lisbon")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entry, got)
	assert.Equal(t, 1, store.Len())

	_, ok, err = store.Get(ctx, "PT:porto")
	require.NoError(t, err)
	assert.False(t, ok)
}
