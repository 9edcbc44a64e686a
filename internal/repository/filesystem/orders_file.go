package filesystem

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"

	"myShopCart/business/recommendation"
)

type orderFileItem struct {
	ProductID uint64 `json:"product_id"`
}

type orderFileEntry struct {
	ID       string          `json:"id,omitempty"`
	Products []orderFileItem `json:"products"`
}

// OrderHistoryFile reads past orders from a JSON export such as
// [{"id":"1","products":[{"product_id":1},{"product_id":2}]}].
type OrderHistoryFile struct {
	path string
}

func NewOrderHistoryFile(path string) *OrderHistoryFile {
	return &OrderHistoryFile{path: path}
}

func (f *OrderHistoryFile) Path() string {
	return f.path
}

func (f *OrderHistoryFile) FetchOrders(ctx context.Context) ([]recommendation.Order[uint64], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	var entries []orderFileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", recommendation.ErrInvalidOrder, f.path, err)
	}

	orders := make([]recommendation.Order[uint64], 0, len(entries))
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		ids := make([]uint64, 0, len(e.Products))
		for _, p := range e.Products {
			ids = append(ids, p.ProductID)
		}

		orders = append(orders, recommendation.Order[uint64]{ID: id, ProductIDs: ids})
	}

	return orders, nil
}
