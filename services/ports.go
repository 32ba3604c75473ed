package services

import (
	"context"

	"github.com/pkg/errors"

	"marketcart/models"
)

// ErrNoRowsAffected is returned by Update and Delete when the record is gone.
var ErrNoRowsAffected = errors.New("no rows affected")

// CartRepository stores carts without their items. Find methods report
// absence through the bool rather than an error.
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindActiveByBuyer(ctx context.Context, buyerID string) (models.Cart, bool, error)
	FindOwned(ctx context.Context, buyerID, cartID string) (models.Cart, bool, error)
	Update(ctx context.Context, cart *models.Cart) error
}

type CartItemRepository interface {
	Create(ctx context.Context, item *models.CartItem) error
	FindByCartID(ctx context.Context, cartID string) ([]models.CartItem, error)
	// FindInCart resolves an item together with its membership in cartID.
	FindInCart(ctx context.Context, cartID, itemID string) (models.CartItem, bool, error)
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, item models.CartItem) error
}
