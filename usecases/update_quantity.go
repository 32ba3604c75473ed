package usecases

import (
	"context"

	"github.com/sirupsen/logrus"

	"marketcart/apperr"
	"marketcart/models"
)

type UpdateQuantityInput struct {
	BuyerID  string
	CartID   string
	ItemID   string
	Quantity int
}

// UpdateQuantity changes one line's quantity after a stock check on that line
// only. A quantity of zero removes the line.
type UpdateQuantity struct {
	d   Deps
	log logrus.FieldLogger
}

func NewUpdateQuantity(d Deps) *UpdateQuantity {
	return &UpdateQuantity{d: d, log: d.logger("update_quantity")}
}

func (uc *UpdateQuantity) Execute(ctx context.Context, in UpdateQuantityInput) (cart models.Cart, err error) {
	ctx, span := startSpan(ctx, "cart.UpdateQuantity", in.BuyerID, in.CartID)
	defer func() { endSpan(span, err) }()

	release, err := uc.d.lock(ctx, in.BuyerID)
	if err != nil {
		return models.Cart{}, err
	}
	defer release()

	cart, err = uc.d.Carts.MustFindOwnedCart(ctx, in.BuyerID, in.CartID)
	if err != nil {
		return models.Cart{}, err
	}
	if cart.IsCheckout {
		return models.Cart{}, apperr.Invalid(msgCartCheckedOut)
	}
	item, ok := cart.ItemByID(in.ItemID)
	if !ok {
		return models.Cart{}, apperr.NotFound(msgCartItemNotFound)
	}

	switch {
	case in.Quantity < 0:
		return models.Cart{}, apperr.Invalid(msgInvalidQuantity)
	case in.Quantity == 0:
		if _, err := uc.d.Items.RemoveOwned(ctx, cart.ID, item.ID); err != nil {
			return models.Cart{}, err
		}
		return uc.d.Carts.MustFindOwnedCart(ctx, in.BuyerID, cart.ID)
	}

	product, ok, err := uc.d.Catalog.FindOneValidForDisplay(ctx, item.ProductID)
	if err != nil {
		return models.Cart{}, apperr.Wrap(err, "resolve product")
	}
	if !ok {
		return models.Cart{}, apperr.Invalid(msgProductNotFound)
	}
	if in.Quantity > product.Stock {
		return models.Cart{}, apperr.Invalidf(msgExceedsStock, in.Quantity, product.Stock)
	}

	if _, err := uc.d.Items.UpdateOwned(ctx, cart.ID, item.ID, models.QuantityPatch(in.Quantity, product.ShopID)); err != nil {
		return models.Cart{}, err
	}
	uc.log.WithFields(logrus.Fields{
		"cartId":   cart.ID,
		"itemId":   item.ID,
		"quantity": in.Quantity,
	}).Debug("cart item quantity updated")

	return uc.d.Carts.MustFindOwnedCart(ctx, in.BuyerID, cart.ID)
}
