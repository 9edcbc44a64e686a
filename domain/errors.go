package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartEmpty        = errors.New("cart empty")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidProductID = errors.New("invalid product id")
)
