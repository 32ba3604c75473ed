package usecases

import (
	"context"

	"marketcart/models"
)

// Checkout is invoked by the order service once an order exists for the cart.
type Checkout struct {
	d Deps
}

func NewCheckout(d Deps) *Checkout {
	return &Checkout{d: d}
}

func (uc *Checkout) Execute(ctx context.Context, buyerID, cartID string, orderID *string) (cart models.Cart, err error) {
	ctx, span := startSpan(ctx, "cart.Checkout", buyerID, cartID)
	defer func() { endSpan(span, err) }()

	release, err := uc.d.lock(ctx, buyerID)
	if err != nil {
		return models.Cart{}, err
	}
	defer release()

	return uc.d.Carts.MarkCheckedOut(ctx, buyerID, cartID, orderID)
}
