package domain

import "time"

// Cart is addressed by an opaque token (a random UUID).
type Cart struct {
	ID        string     `gorm:"primaryKey;column:id;type:uuid" json:"cart_token"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    string    `gorm:"column:cart_id;type:uuid;not null;index" json:"cart_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ProductIDs returns the product ids of the cart in item order.
func (c Cart) ProductIDs() []uint64 {
	ids := make([]uint64, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
