package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"myShopCart/business/recommendation"
	"myShopCart/domain"
	"myShopCart/pkg/logger"
	"myShopCart/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CartService interface {
	CreateCart(ctx context.Context) (domain.Cart, error)
	GetCart(ctx context.Context, token string) (domain.Cart, error)
	AddItem(ctx context.Context, token string, productID uint64, quantity int) (domain.CartItem, error)
	RemoveItem(ctx context.Context, token string, productID uint64) error
	Recommend(ctx context.Context, token string, limit int) ([]domain.Product, error)
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1"`
}

type RemoveCartItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
}

func (h *CartHandler) CreateCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.CreateCart(ctx)
	if err != nil {
		logger.Error("Failed to create cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"cart_token": cart.ID,
	})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.GetCart(ctx, c.Param("cart_token"))
	if err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart item request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token := c.Param("cart_token")
	if _, err := h.cartService.AddItem(ctx, token, req.ProductID, quantity); err != nil {
		return h.cartError(c, err)
	}

	cart, err := h.cartService.GetCart(ctx, token)
	if err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	var req RemoveCartItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart item request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token := c.Param("cart_token")
	if err := h.cartService.RemoveItem(ctx, token, req.ProductID); err != nil {
		return h.cartError(c, err)
	}

	cart, err := h.cartService.GetCart(ctx, token)
	if err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

// Recommend answers GET /cart/:cart_token/recommendation?limit=N with products in rank order.
func (h *CartHandler) Recommend(c echo.Context) error {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	status := http.StatusOK
	defer func() {
		metrics.RecommendLatency.WithLabelValues(strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	}()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			status = http.StatusBadRequest
			return c.JSON(status, ResponseError{Message: "limit must be a positive integer"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.cartService.Recommend(ctx, c.Param("cart_token"), limit)
	if err != nil {
		switch {
		case errors.Is(err, recommendation.ErrCorruptMatrix):
			status = http.StatusServiceUnavailable
			return c.JSON(status, ResponseError{Message: "recommendations unavailable"})
		case recommendation.IsStoreError(err):
			status = http.StatusInternalServerError
			return c.JSON(status, ResponseError{Message: "failed to load recommendations"})
		}
		status = http.StatusInternalServerError
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	return c.JSON(status, products)
}

func (h *CartHandler) cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrCartNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: "Invalid cart token"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidProductID):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	logger.Error("Cart request failed", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
