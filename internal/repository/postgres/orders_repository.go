package postgres

import (
	"context"
	"errors"
	"fmt"

	"myShopCart/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// Checkout turns the cart into an order in a single transaction: the order and its items are
// created from the cart lines and the cart is emptied.
func (r *OrdersRepository) Checkout(ctx context.Context, token, email string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart domain.Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cart, "id = ?", token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCartNotFound
		}
		if err != nil {
			return err
		}

		var items []domain.CartItem
		if err := tx.Where("cart_id = ?", token).Order("id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrCartEmpty
		}

		order = domain.Order{Email: email, Items: make([]domain.OrderItem, 0, len(items))}
		for _, item := range items {
			order.Items = append(order.Items, domain.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", token).Delete(&domain.CartItem{}).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) || errors.Is(err, domain.ErrCartEmpty) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("failed to checkout cart: %w", err)
	}

	return r.FindByID(ctx, order.ID)
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}
