package orders

import (
	"context"
	"fmt"
	"strings"

	"myShopCart/domain"
	"myShopCart/pkg/logger"

	"github.com/google/uuid"
)

type OrdersRepository interface {
	Checkout(ctx context.Context, token, email string) (domain.Order, error)
	FindByID(ctx context.Context, id uint64) (domain.Order, error)
}

type OrdersService struct {
	orderRepo OrdersRepository
}

func NewOrdersService(orderRepo OrdersRepository) *OrdersService {
	return &OrdersService{
		orderRepo: orderRepo,
	}
}

// CreateOrder checks out the cart: its items become the order's items and the cart is emptied.
func (s *OrdersService) CreateOrder(ctx context.Context, token, email string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create order")
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	// cart ids are uuid columns; anything else cannot name a cart
	if _, err := uuid.Parse(token); err != nil {
		logger.Warn("Checkout with malformed cart token", "cart_token", token)
		return domain.Order{}, domain.ErrCartNotFound
	}

	order, err := s.orderRepo.Checkout(ctx, token, strings.TrimSpace(email))
	if err != nil {
		logger.Error("Failed to create order", "cart_token", token, "error", err)
		return domain.Order{}, err
	}

	logger.Info("order created", "order_id", order.ID, "items", len(order.Items))

	return order, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, id uint64) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get order")
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	return s.orderRepo.FindByID(ctx, id)
}
