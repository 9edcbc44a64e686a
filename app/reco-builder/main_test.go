package main

import (
	"context"
	"errors"
	"testing"

	"myShopCart/internal/repository/filesystem"
	psqlRepo "myShopCart/internal/repository/postgres"
	"myShopCart/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSourceOpener_FileFallsBackToConfig(t *testing.T) {
	cfg := &config.Config{Reco: config.RecoConfig{OrdersFile: "exports/orders.json"}}
	open := sourceOpener(cfg, func() (*gorm.DB, error) {
		t.Fatal("file source must not connect to the database")
		return nil, nil
	})

	source, closeSource, err := open(context.Background(), "file", "")
	require.NoError(t, err)
	defer closeSource()

	file, ok := source.(*filesystem.OrderHistoryFile)
	require.True(t, ok)
	assert.Equal(t, "exports/orders.json", file.Path())

	source, _, err = open(context.Background(), "file", "/tmp/other.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", source.(*filesystem.OrderHistoryFile).Path())
}

func TestSourceOpener_DatabaseSource(t *testing.T) {
	boom := errors.New("connection refused")
	open := sourceOpener(&config.Config{}, func() (*gorm.DB, error) { return nil, boom })

	_, closeSource, err := open(context.Background(), "db", "")
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, closeSource)

	open = sourceOpener(&config.Config{}, func() (*gorm.DB, error) { return &gorm.DB{}, nil })
	source, _, err := open(context.Background(), "db", "")
	require.NoError(t, err)
	assert.IsType(t, &psqlRepo.OrderHistoryRepository{}, source)
}

func TestRun_ConfigErrorReturnsExitCode(t *testing.T) {
	t.Setenv("RECO_DEFAULT_LIMIT", "0")

	assert.Equal(t, 1, run())
}
