package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/repository"
	"github.com/ncordova/vinoteca/internal/telemetry"
)

// cartService implements domain.CartService over the persisted per-user cart.
type cartService struct {
	store   repository.Store
	metrics *telemetry.BusinessMetrics
}

// NewCartService creates a new cart service.
func NewCartService(store repository.Store, metrics *telemetry.BusinessMetrics) domain.CartService {
	return &cartService{
		store:   store,
		metrics: metrics,
	}
}

// GetCart returns the user's cart lines joined with product details.
func (s *cartService) GetCart(ctx context.Context, userID int64) ([]repository.CartItemDetail, error) {
	const op = "cart.get"

	items, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}

	return items, nil
}

// AddItem adds a product to the cart or increases its quantity.
func (s *cartService) AddItem(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
	const op = "cart.add_item"

	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	if _, err := s.store.UpsertCartItem(ctx, userID, productID, quantity); err != nil {
		return nil, domain.Internal(err, op, "failed to add cart item")
	}

	s.countUpdate("add")
	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity sets the quantity of a cart line. A quantity of 0
// removes the line.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
	const op = "cart.update_quantity"

	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	affected, err := s.store.SetCartItemQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update cart item")
	}
	if affected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	s.countUpdate("update_quantity")
	return s.GetCart(ctx, userID)
}

// RemoveItem removes a product from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID int64) ([]repository.CartItemDetail, error) {
	const op = "cart.remove_item"

	affected, err := s.store.DeleteCartItem(ctx, userID, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to remove cart item")
	}
	if affected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	s.countUpdate("remove")
	return s.GetCart(ctx, userID)
}

// ClearCart removes every line from the user's cart.
func (s *cartService) ClearCart(ctx context.Context, userID int64) error {
	const op = "cart.clear"

	if err := s.store.DeleteCartItems(ctx, userID); err != nil {
		return domain.Internal(err, op, "failed to clear cart")
	}

	s.countUpdate("clear")
	return nil
}

func (s *cartService) countUpdate(action string) {
	if s.metrics != nil {
		s.metrics.CartUpdated.WithLabelValues(action).Inc()
	}
}
