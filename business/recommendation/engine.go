package recommendation

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"myShopCart/pkg/logger"
)

type options struct {
	defaultLimit int
}

type Option func(*options)

// WithDefaultLimit sets the limit used when Recommend is called with limit <= 0.
func WithDefaultLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.defaultLimit = n
		}
	}
}

// Engine builds, persists and scores co-occurrence matrices keyed by K.
type Engine[K cmp.Ordered] struct {
	store        MatrixStore
	keys         KeyCodec[K]
	defaultLimit int
}

func NewEngine[K cmp.Ordered](store MatrixStore, keys KeyCodec[K], opts ...Option) *Engine[K] {
	o := options{defaultLimit: DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine[K]{
		store:        store,
		keys:         keys,
		defaultLimit: o.defaultLimit,
	}
}

// Build counts co-occurrences across all orders, replaces the stored matrix with the result
// and returns it. Nothing is saved when an order is malformed.
func (e *Engine[K]) Build(ctx context.Context, orders []Order[K]) (Matrix[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()

	m, err := BuildMatrix(orders)
	if err != nil {
		logger.Error("Failed to build co-occurrence matrix", "error", err)
		return nil, err
	}

	raw, err := Encode(m, e.keys)
	if err != nil {
		return nil, err
	}

	if err := e.store.SaveMatrix(ctx, raw); err != nil {
		logger.Error("Failed to save co-occurrence matrix", "error", err)
		return nil, &StoreError{Op: "save", Err: err}
	}

	MatrixBuildDuration.Observe(time.Since(start).Seconds())
	MatrixProducts.Set(float64(len(m)))

	logger.Info("co-occurrence matrix built",
		"orders", len(orders),
		"products", len(m),
		"pairs", m.Pairs(),
		"bytes", len(raw),
	)

	return m, nil
}

// Load reads the stored matrix. A store that has never been written yields an empty matrix.
func (e *Engine[K]) Load(ctx context.Context) (Matrix[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := e.store.LoadMatrix(ctx)
	if errors.Is(err, ErrMatrixNotFound) {
		logger.Debug("no co-occurrence matrix stored yet")
		return Matrix[K]{}, nil
	}
	if err != nil {
		MatrixLoadErrorsTotal.WithLabelValues("store").Inc()
		return nil, &StoreError{Op: "load", Err: err}
	}

	m, err := Decode(raw, e.keys)
	if err != nil {
		MatrixLoadErrorsTotal.WithLabelValues("corrupt").Inc()
		return nil, err
	}

	return m, nil
}

// Recommend ranks products for cart against m. See the package-level Recommend.
func (e *Engine[K]) Recommend(cart []K, m Matrix[K], limit int) []K {
	if limit <= 0 {
		limit = e.defaultLimit
	}
	return Recommend(cart, m, limit)
}

// DefaultLimit returns the limit applied when callers pass none.
func (e *Engine[K]) DefaultLimit() int {
	return e.defaultLimit
}
