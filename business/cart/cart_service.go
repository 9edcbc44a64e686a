package cart

import (
	"context"
	"errors"
	"fmt"

	"myShopCart/business/recommendation"
	"myShopCart/domain"
	"myShopCart/pkg/logger"
	"myShopCart/pkg/trace"

	"github.com/google/uuid"
)

type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	Exists(ctx context.Context, token string) (bool, error)
	FindByToken(ctx context.Context, token string) (domain.Cart, error)
	AddItem(ctx context.Context, token string, productID uint64, quantity int) (domain.CartItem, error)
	RemoveItem(ctx context.Context, token string, productID uint64) error
	ProductIDs(ctx context.Context, token string) ([]uint64, error)
}

type ProductLookup interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

// Recommender loads the persisted co-occurrence matrix and ranks products against it.
type Recommender interface {
	Load(ctx context.Context) (recommendation.Matrix[uint64], error)
	Recommend(cart []uint64, m recommendation.Matrix[uint64], limit int) []uint64
}

type CartService struct {
	cartRepo    CartRepository
	products    ProductLookup
	recommender Recommender
}

func NewCartService(cartRepo CartRepository, products ProductLookup, recommender Recommender) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		products:    products,
		recommender: recommender,
	}
}

func (s *CartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create cart")
		return domain.Cart{}, fmt.Errorf("context error: %w", err)
	}

	cart := domain.Cart{ID: uuid.NewString(), Items: []domain.CartItem{}}
	if err := s.cartRepo.Create(ctx, &cart); err != nil {
		logger.Error("Failed to create cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *CartService) Exists(ctx context.Context, token string) (bool, error) {
	if _, err := uuid.Parse(token); err != nil {
		return false, nil
	}

	return s.cartRepo.Exists(ctx, token)
}

func (s *CartService) GetCart(ctx context.Context, token string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get cart")
		return domain.Cart{}, fmt.Errorf("context error: %w", err)
	}

	cart, err := s.cartRepo.FindByToken(ctx, token)
	if err != nil {
		logger.Error("Failed to find cart", "cart_token", token, "error", err)
		return domain.Cart{}, err
	}

	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	return cart, nil
}

// AddItem adds quantity units of a product, incrementing the line if the product is already in the cart.
func (s *CartService) AddItem(ctx context.Context, token string, productID uint64, quantity int) (domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when add cart item")
		return domain.CartItem{}, fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		return domain.CartItem{}, domain.ErrInvalidProductID
	}
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	ok, err := s.cartRepo.Exists(ctx, token)
	if err != nil {
		logger.Error("Failed to check cart", err)
		return domain.CartItem{}, err
	}
	if !ok {
		return domain.CartItem{}, domain.ErrCartNotFound
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		logger.Error("Failed to find product for cart", "product_id", productID, "error", err)
		return domain.CartItem{}, err
	}

	item, err := s.cartRepo.AddItem(ctx, token, productID, quantity)
	if err != nil {
		logger.Error("Failed to add cart item", err)
		return domain.CartItem{}, err
	}
	item.Product = &product

	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, token string, productID uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when remove cart item")
		return fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		return domain.ErrInvalidProductID
	}

	if err := s.cartRepo.RemoveItem(ctx, token, productID); err != nil {
		logger.Error("Failed to remove cart item", err)
		return err
	}

	return nil
}

// CartProductIDs returns the product ids currently in the cart, first added first.
func (s *CartService) CartProductIDs(ctx context.Context, token string) ([]uint64, error) {
	return s.cartRepo.ProductIDs(ctx, token)
}

// Recommend ranks products that were bought together with the cart's contents and resolves them
// in rank order. An empty or missing matrix yields an empty list. A corrupt matrix is returned as
// recommendation.ErrCorruptMatrix and a store failure as *recommendation.StoreError.
func (s *CartService) Recommend(ctx context.Context, token string, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when recommend")
		return nil, fmt.Errorf("context error: %w", err)
	}

	traceID := trace.TraceIDFromContext(ctx)

	ids, err := s.CartProductIDs(ctx, token)
	if err != nil {
		logger.Error("Failed to read cart products", "trace_id", traceID, "error", err)
		return nil, err
	}

	m, err := s.recommender.Load(ctx)
	if err != nil {
		kind := "store"
		if errors.Is(err, recommendation.ErrCorruptMatrix) {
			kind = "corrupt"
		}
		logger.Error("Failed to load co-occurrence matrix", "trace_id", traceID, "kind", kind, "error", err)
		return nil, err
	}

	ranked := s.recommender.Recommend(ids, m, limit)
	if len(ranked) == 0 {
		recommendation.RecommendationsServedTotal.WithLabelValues("empty").Inc()
		logger.Debug("no recommendations for cart", "trace_id", traceID, "cart_items", len(ids))
		return []domain.Product{}, nil
	}

	products, err := s.products.FindByIDs(ctx, ranked)
	if err != nil {
		logger.Error("Failed to resolve recommended products", "trace_id", traceID, "error", err)
		return nil, err
	}

	recommendation.RecommendationsServedTotal.WithLabelValues("hit").Inc()
	logger.Debug("recommendations served",
		"trace_id", traceID,
		"cart_items", len(ids),
		"recommended", len(products),
	)

	return products, nil
}
