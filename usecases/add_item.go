package usecases

import (
	"context"

	"github.com/sirupsen/logrus"

	"marketcart/apperr"
	"marketcart/models"
)

type AddItemInput struct {
	BuyerID string
	// CartID may be empty, in which case the buyer's active cart is used.
	CartID    string
	ProductID string
	VariantID *string
	Quantity  int
}

type AddItem struct {
	d            Deps
	availability *Availability
	log          logrus.FieldLogger
}

func NewAddItem(d Deps, availability *Availability) *AddItem {
	return &AddItem{d: d, availability: availability, log: d.logger("add_item")}
}

// Execute checks its preconditions in a fixed order and stops at the first
// violation. Availability writes made before a failure are kept.
func (uc *AddItem) Execute(ctx context.Context, in AddItemInput) (cart models.Cart, err error) {
	ctx, span := startSpan(ctx, "cart.AddItem", in.BuyerID, in.CartID)
	defer func() { endSpan(span, err) }()

	release, err := uc.d.lock(ctx, in.BuyerID)
	if err != nil {
		return models.Cart{}, err
	}
	defer release()

	cartID := in.CartID
	if cartID == "" {
		active, err := uc.d.Carts.FindOrCreateActiveCart(ctx, in.BuyerID)
		if err != nil {
			return models.Cart{}, err
		}
		cartID = active.ID
	}

	cart, err = uc.availability.refresh(ctx, in.BuyerID, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	if cart.IsCheckout {
		return models.Cart{}, apperr.Invalid(msgCartCheckedOut)
	}
	if _, dup := cart.ItemByProduct(in.ProductID); dup {
		return models.Cart{}, apperr.Invalid(msgProductAdded)
	}

	product, ok, err := uc.d.Catalog.FindOneValidForDisplay(ctx, in.ProductID)
	if err != nil {
		return models.Cart{}, apperr.Wrap(err, "resolve product")
	}
	if !ok {
		return models.Cart{}, apperr.Invalid(msgProductNotFound)
	}
	if in.Quantity <= 0 {
		return models.Cart{}, apperr.Invalid(msgInvalidQuantity)
	}
	if in.Quantity > product.Stock {
		return models.Cart{}, apperr.Invalidf(msgExceedsStock, in.Quantity, product.Stock)
	}

	item, err := uc.d.Items.Create(ctx, cart.ID, models.CartItem{
		ShopID:      product.ShopID,
		ProductID:   product.ID,
		VariantID:   in.VariantID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		Price:       product.Price,
		Available:   true,
	})
	if err != nil {
		return models.Cart{}, err
	}
	uc.log.WithFields(logrus.Fields{
		"buyerId":   in.BuyerID,
		"cartId":    cart.ID,
		"itemId":    item.ID,
		"productId": product.ID,
		"quantity":  in.Quantity,
	}).Info("item added to cart")

	return uc.d.Carts.MustFindOwnedCart(ctx, in.BuyerID, cart.ID)
}
