package usecases

import (
	"context"

	"marketcart/apperr"
	"marketcart/models"
)

type RemoveItem struct {
	d Deps
}

func NewRemoveItem(d Deps) *RemoveItem {
	return &RemoveItem{d: d}
}

func (uc *RemoveItem) Execute(ctx context.Context, buyerID, cartID, itemID string) (cart models.Cart, err error) {
	ctx, span := startSpan(ctx, "cart.RemoveItem", buyerID, cartID)
	defer func() { endSpan(span, err) }()

	release, err := uc.d.lock(ctx, buyerID)
	if err != nil {
		return models.Cart{}, err
	}
	defer release()

	cart, err = uc.d.Carts.MustFindOwnedCart(ctx, buyerID, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	if cart.IsCheckout {
		return models.Cart{}, apperr.Invalid(msgCartCheckedOut)
	}
	if _, err := uc.d.Items.RemoveOwned(ctx, cart.ID, itemID); err != nil {
		return models.Cart{}, err
	}
	return uc.d.Carts.MustFindOwnedCart(ctx, buyerID, cart.ID)
}
