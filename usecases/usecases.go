// Package usecases holds the buyer-facing cart operations. Each one composes
// the cart and cart item services with the product catalog; none of them
// touches a repository directly.
package usecases

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketcart/cartlock"
	"marketcart/models"
	"marketcart/services"
)

const (
	msgProductAdded     = "Product added already"
	msgProductNotFound  = "Product not found"
	msgInvalidQuantity  = "Quantity must be greater than 0"
	msgExceedsStock     = "Quantity (%d) exceeds available stock (%d)"
	msgCartCheckedOut   = "Cart already checked out"
	msgCartItemNotFound = "Cart item not found"
)

var tracer = otel.Tracer("marketcart/usecases")

type ProductCatalog interface {
	FindOneValidForDisplay(ctx context.Context, productID string) (models.Product, bool, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type ShippingProfiles interface {
	ProfileForShop(ctx context.Context, shopID string) (models.ShippingProfile, bool, error)
}

type Deps struct {
	Carts    *services.CartService
	Items    *services.CartItemService
	Catalog  ProductCatalog
	Profiles ShippingProfiles
	// Locker serializes mutations per buyer. Nil leaves writers unserialized.
	Locker cartlock.Locker
	Log    logrus.FieldLogger
}

func (d Deps) lock(ctx context.Context, buyerID string) (func(), error) {
	if d.Locker == nil {
		return func() {}, nil
	}
	return d.Locker.Lock(ctx, cartlock.BuyerKey(buyerID))
}

func (d Deps) logger(op string) logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger().WithField("usecase", op)
	}
	return d.Log.WithField("usecase", op)
}

func startSpan(ctx context.Context, name, buyerID, cartID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("cart.buyer_id", buyerID),
		attribute.String("cart.id", cartID),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// UseCases bundles every cart use-case for the transport layer.
type UseCases struct {
	Availability   *Availability
	AddItem        *AddItem
	UpdateQuantity *UpdateQuantity
	RemoveItem     *RemoveItem
	GetCart        *GetCart
	Checkout       *Checkout
	ShippingFee    *ShippingFee
}

func New(d Deps) *UseCases {
	availability := NewAvailability(d)
	return &UseCases{
		Availability:   availability,
		AddItem:        NewAddItem(d, availability),
		UpdateQuantity: NewUpdateQuantity(d),
		RemoveItem:     NewRemoveItem(d),
		GetCart:        NewGetCart(d, availability),
		Checkout:       NewCheckout(d),
		ShippingFee:    NewShippingFee(d),
	}
}
