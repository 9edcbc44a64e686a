package postgres

import (
	"context"
	"errors"
	"fmt"

	"myShopCart/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

func (r *CartRepository) Exists(ctx context.Context, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Cart{}).Where("id = ?", token).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check cart: %w", err)
	}

	return count > 0, nil
}

// FindByToken loads the cart with its items and their products, items in insertion order.
func (r *CartRepository) FindByToken(ctx context.Context, token string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("context error: %w", err)
	}

	var cart domain.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		First(&cart, "id = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("failed to find cart: %w", err)
	}

	return cart, nil
}

// AddItem adds quantity of a product to the cart, incrementing an existing line.
func (r *CartRepository) AddItem(ctx context.Context, token string, productID uint64, quantity int) (domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CartItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", token, productID).
			First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = domain.CartItem{CartID: token, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}

		item.Quantity += quantity
		return tx.Model(&item).Update("quantity", item.Quantity).Error
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

// RemoveItem deletes the product's line from the cart. Removing an absent product is not an error.
func (r *CartRepository) RemoveItem(ctx context.Context, token string, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", token, productID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

// ProductIDs returns the product ids in the cart in the order they were first added.
func (r *CartRepository) ProductIDs(ctx context.Context, token string) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("cart_id = ?", token).
		Order("id").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart products: %w", err)
	}

	return ids, nil
}
