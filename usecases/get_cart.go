package usecases

import (
	"context"

	"marketcart/models"
)

// GetCart returns the buyer's active cart, creating it on first access, with
// item availability refreshed.
type GetCart struct {
	d            Deps
	availability *Availability
}

func NewGetCart(d Deps, availability *Availability) *GetCart {
	return &GetCart{d: d, availability: availability}
}

func (uc *GetCart) Execute(ctx context.Context, buyerID string) (cart models.Cart, err error) {
	ctx, span := startSpan(ctx, "cart.GetCart", buyerID, "")
	defer func() { endSpan(span, err) }()

	release, err := uc.d.lock(ctx, buyerID)
	if err != nil {
		return models.Cart{}, err
	}
	defer release()

	active, err := uc.d.Carts.FindOrCreateActiveCart(ctx, buyerID)
	if err != nil {
		return models.Cart{}, err
	}
	return uc.availability.refresh(ctx, buyerID, active.ID)
}
