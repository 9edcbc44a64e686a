package repository

import (
	"context"
	"errors"
	"fmt"

	"myShopCart/business/recommendation"
	"myShopCart/internal/repository/filesystem"
	"myShopCart/internal/repository/objectstore"
	psqlRepo "myShopCart/internal/repository/postgres"
	redisRepo "myShopCart/internal/repository/redis"
	"myShopCart/pkg/config"
	redisdb "myShopCart/pkg/database/redis"
	"myShopCart/pkg/logger"

	"gorm.io/gorm"
)

// NewMatrixStore returns the matrix store selected by RECO_STORE together with a cleanup func
// that releases whatever connection the store opened. db is only used by the postgres backend.
func NewMatrixStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (recommendation.MatrixStore, func(), error) {
	noop := func() {}

	switch cfg.Reco.Store {
	case config.StoreFile:
		logger.Info("Using file matrix store", "path", cfg.Reco.MatrixPath)
		return filesystem.NewMatrixFileStore(cfg.Reco.MatrixPath), noop, nil

	case config.StorePostgres:
		if db == nil {
			return nil, noop, errors.New("postgres matrix store needs a database connection")
		}
		logger.Info("Using postgres matrix store", "key", cfg.Reco.MatrixKey)
		return psqlRepo.NewMatrixRepository(db, cfg.Reco.MatrixKey), noop, nil

	case config.StoreRedis:
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := redisdb.CloseRedisClient(client); err != nil {
				logger.Error("Failed to close Redis client", "error", err)
			}
		}
		logger.Info("Using redis matrix store", "key", cfg.Reco.MatrixKey)
		return redisRepo.NewMatrixRepository(client, cfg.Reco.MatrixKey), cleanup, nil

	case config.StoreS3:
		client, err := objectstore.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using s3 matrix store", "bucket", cfg.S3.Bucket, "key", cfg.Reco.MatrixKey)
		return objectstore.NewMatrixStore(client, cfg.S3.Bucket, cfg.Reco.MatrixKey), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown recommendation store %q", cfg.Reco.Store)
}
