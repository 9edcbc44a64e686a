package postgres

import (
	"context"
	"fmt"
	"strconv"

	"myShopCart/business/recommendation"
	"myShopCart/domain"

	"gorm.io/gorm"
)

// OrderHistoryRepository exposes past orders as input for the co-occurrence build.
type OrderHistoryRepository struct {
	DB *gorm.DB
}

func NewOrderHistoryRepository(db *gorm.DB) *OrderHistoryRepository {
	return &OrderHistoryRepository{DB: db}
}

type orderLine struct {
	OrderID   uint64
	ProductID uint64
}

// FetchOrders returns every order with its product ids, orders ascending by id and
// products in line order.
func (r *OrderHistoryRepository) FetchOrders(ctx context.Context) ([]recommendation.Order[uint64], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var lines []orderLine
	err := r.DB.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Select("order_id", "product_id").
		Order("order_id, id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	orders := make([]recommendation.Order[uint64], 0)
	for _, l := range lines {
		id := strconv.FormatUint(l.OrderID, 10)
		if n := len(orders); n == 0 || orders[n-1].ID != id {
			orders = append(orders, recommendation.Order[uint64]{ID: id})
		}
		last := &orders[len(orders)-1]
		last.ProductIDs = append(last.ProductIDs, l.ProductID)
	}

	return orders, nil
}
