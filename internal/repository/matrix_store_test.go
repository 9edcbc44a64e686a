package repository

import (
	"context"
	"path/filepath"
	"testing"

	"myShopCart/internal/repository/filesystem"
	"myShopCart/internal/repository/objectstore"
	psqlRepo "myShopCart/internal/repository/postgres"
	"myShopCart/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig(store string) *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{RedisHost: "127.0.0.1", RedisPort: "1"},
		Reco: config.RecoConfig{
			Store:      store,
			MatrixKey:  "reco/co_matrix.json",
			MatrixPath: filepath.Join("storage", "co_matrix.json"),
		},
		S3: config.S3Config{Bucket: "shop", Region: "us-east-1", Endpoint: "http://localhost:9000", UsePathStyle: true},
	}
}

func TestNewMatrixStore_File(t *testing.T) {
	store, cleanup, err := NewMatrixStore(context.Background(), testConfig(config.StoreFile), nil)
	require.NoError(t, err)
	defer cleanup()

	fs, ok := store.(*filesystem.MatrixFileStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("storage", "co_matrix.json"), fs.Path())
}

func TestNewMatrixStore_Postgres(t *testing.T) {
	_, _, err := NewMatrixStore(context.Background(), testConfig(config.StorePostgres), nil)
	require.Error(t, err)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	store, cleanup, err := NewMatrixStore(context.Background(), testConfig(config.StorePostgres), db)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &psqlRepo.MatrixRepository{}, store)
}

func TestNewMatrixStore_S3(t *testing.T) {
	store, cleanup, err := NewMatrixStore(context.Background(), testConfig(config.StoreS3), nil)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &objectstore.MatrixStore{}, store)
}

func TestNewMatrixStore_RedisUnreachable(t *testing.T) {
	_, cleanup, err := NewMatrixStore(context.Background(), testConfig(config.StoreRedis), nil)
	require.Error(t, err)
	cleanup()
}

func TestNewMatrixStore_Unknown(t *testing.T) {
	_, _, err := NewMatrixStore(context.Background(), testConfig("etcd"), nil)
	assert.ErrorContains(t, err, `unknown recommendation store "etcd"`)
}
