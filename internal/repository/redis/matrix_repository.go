package redis

import (
	"context"
	"errors"
	"fmt"

	"myShopCart/business/recommendation"

	"github.com/redis/go-redis/v9"
)

// MatrixRepository keeps the encoded matrix under a single key. A SET replaces the value
// atomically, so readers see either the previous matrix or the new one.
type MatrixRepository struct {
	client *redis.Client
	key    string
}

func NewMatrixRepository(client *redis.Client, key string) *MatrixRepository {
	return &MatrixRepository{
		client: client,
		key:    key,
	}
}

func (r *MatrixRepository) SaveMatrix(ctx context.Context, data []byte) error {
	// no expiry: the matrix lives until the next build replaces it
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store matrix in Redis: %w", err)
	}

	return nil
}

func (r *MatrixRepository) LoadMatrix(ctx context.Context) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, recommendation.ErrMatrixNotFound
		}
		return nil, fmt.Errorf("failed to get matrix from Redis: %w", err)
	}

	return val, nil
}
