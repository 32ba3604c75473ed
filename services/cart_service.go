package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"marketcart/apperr"
	"marketcart/models"
)

const msgCartNotFound = "Cart not found"

type CartService struct {
	carts CartRepository
	items CartItemRepository
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewCartService(carts CartRepository, items CartItemRepository, log logrus.FieldLogger) *CartService {
	return &CartService{
		carts: carts,
		items: items,
		log:   log.WithField("component", "cart_service"),
		now:   time.Now,
	}
}

func (s *CartService) Create(ctx context.Context, buyerID string) (models.Cart, error) {
	now := s.now()
	cart := models.Cart{
		BuyerID:   buyerID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.carts.Create(ctx, &cart); err != nil {
		return models.Cart{}, apperr.Wrap(err, "create cart")
	}
	s.log.WithFields(logrus.Fields{"buyerId": buyerID, "cartId": cart.ID}).Info("cart created")
	return cart, nil
}

// FindOrCreateActiveCart returns the buyer's open cart, creating one on first
// access. It is not atomic against concurrent calls for the same buyer.
func (s *CartService) FindOrCreateActiveCart(ctx context.Context, buyerID string) (models.Cart, error) {
	cart, ok, err := s.carts.FindActiveByBuyer(ctx, buyerID)
	if err != nil {
		return models.Cart{}, apperr.Wrap(err, "find active cart")
	}
	if !ok {
		return s.Create(ctx, buyerID)
	}
	return s.withItems(ctx, cart)
}

// FindOwnedCart returns the cart with its items only when buyerID owns it.
func (s *CartService) FindOwnedCart(ctx context.Context, buyerID, cartID string) (models.Cart, bool, error) {
	if buyerID == "" || cartID == "" {
		return models.Cart{}, false, nil
	}
	cart, ok, err := s.carts.FindOwned(ctx, buyerID, cartID)
	if err != nil {
		return models.Cart{}, false, apperr.Wrap(err, "find owned cart")
	}
	if !ok || !cart.OwnedBy(buyerID) {
		return models.Cart{}, false, nil
	}
	cart, err = s.withItems(ctx, cart)
	if err != nil {
		return models.Cart{}, false, err
	}
	return cart, true, nil
}

// MustFindOwnedCart is FindOwnedCart with absence reported as NotFound.
func (s *CartService) MustFindOwnedCart(ctx context.Context, buyerID, cartID string) (models.Cart, error) {
	cart, ok, err := s.FindOwnedCart(ctx, buyerID, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	if !ok {
		return models.Cart{}, apperr.NotFound(msgCartNotFound)
	}
	return cart, nil
}

func (s *CartService) MarkCheckedOut(ctx context.Context, buyerID, cartID string, orderID *string) (models.Cart, error) {
	cart, err := s.MustFindOwnedCart(ctx, buyerID, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	if cart.IsCheckout {
		return models.Cart{}, apperr.Invalid("Cart already checked out")
	}

	cart.IsCheckout = true
	cart.OrderID = orderID
	cart.UpdatedAt = s.now()
	if err := s.carts.Update(ctx, &cart); err != nil {
		if errors.Is(err, ErrNoRowsAffected) {
			return models.Cart{}, apperr.NotFound(msgCartNotFound)
		}
		return models.Cart{}, apperr.Wrap(err, "mark cart checked out")
	}
	s.log.WithFields(logrus.Fields{"buyerId": buyerID, "cartId": cartID}).Info("cart checked out")
	return cart, nil
}

func (s *CartService) withItems(ctx context.Context, cart models.Cart) (models.Cart, error) {
	items, err := s.items.FindByCartID(ctx, cart.ID)
	if err != nil {
		return models.Cart{}, apperr.Wrap(err, "load cart items")
	}
	cart.Items = items
	return cart, nil
}
