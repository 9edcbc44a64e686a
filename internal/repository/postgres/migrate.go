package postgres

import (
	"fmt"

	"myShopCart/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables used by the shop and the recommendation store.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Product{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&MatrixRow{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	return nil
}
