package domain

import (
	"context"

	"github.com/ncordova/vinoteca/internal/repository"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrEmptyCart        = &Error{Code: ENOTFOUND, Message: "El carrito está vacío"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Artículo no encontrado en el carrito"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "La cantidad debe ser mayor que 0"}
)

// DefaultBottleSizeML is assumed when a cart line omits its bottle volume.
const DefaultBottleSizeML = 750

// CartLineItem is an ephemeral cart line supplied per request.
// SizeML of 0 means unspecified and is treated as DefaultBottleSizeML.
type CartLineItem struct {
	ProductID int64
	Name      string
	UnitPrice float64
	Quantity  int32
	SizeML    int32
}

// CartService provides business logic for the persisted per-user cart.
type CartService interface {
	// GetCart returns the user's cart lines joined with product details.
	GetCart(ctx context.Context, userID int64) ([]repository.CartItemDetail, error)

	// AddItem adds a product to the cart or increases its quantity.
	AddItem(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error)

	// UpdateItemQuantity sets the quantity of a cart line.
	// A quantity of 0 removes the line.
	UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error)

	// RemoveItem removes a product from the cart.
	RemoveItem(ctx context.Context, userID, productID int64) ([]repository.CartItemDetail, error)

	// ClearCart removes every line from the user's cart.
	ClearCart(ctx context.Context, userID int64) error
}
