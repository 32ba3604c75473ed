package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"marketcart/apperr"
	"marketcart/models"
)

const msgItemNotFound = "Cart item not found"

type CartItemService struct {
	items CartItemRepository
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewCartItemService(items CartItemRepository, log logrus.FieldLogger) *CartItemService {
	return &CartItemService{
		items: items,
		log:   log.WithField("component", "cart_item_service"),
		now:   time.Now,
	}
}

// Create stores item under cartID. Duplicate products are the caller's concern.
func (s *CartItemService) Create(ctx context.Context, cartID string, item models.CartItem) (models.CartItem, error) {
	now := s.now()
	item.ID = ""
	item.CartID = cartID
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.items.Create(ctx, &item); err != nil {
		return models.CartItem{}, apperr.Wrap(err, "create cart item")
	}
	return item, nil
}

func (s *CartItemService) FindByCartID(ctx context.Context, cartID string) ([]models.CartItem, error) {
	items, err := s.items.FindByCartID(ctx, cartID)
	if err != nil {
		return nil, apperr.Wrap(err, "find cart items")
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// UpdateOwned merges patch into the item only if itemID belongs to cartID.
func (s *CartItemService) UpdateOwned(ctx context.Context, cartID, itemID string, patch models.CartItemPatch) (models.CartItem, error) {
	current, err := s.findOwned(ctx, cartID, itemID)
	if err != nil {
		return models.CartItem{}, err
	}

	updated := patch.Apply(current)
	if updated.Quantity < 1 {
		return models.CartItem{}, apperr.Invalid("Quantity must be greater than 0")
	}
	updated.UpdatedAt = s.now()
	if err := s.items.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNoRowsAffected) {
			return models.CartItem{}, apperr.NotFound(msgItemNotFound)
		}
		return models.CartItem{}, apperr.Wrap(err, "update cart item")
	}
	return updated, nil
}

func (s *CartItemService) RemoveOwned(ctx context.Context, cartID, itemID string) (models.CartItem, error) {
	current, err := s.findOwned(ctx, cartID, itemID)
	if err != nil {
		return models.CartItem{}, err
	}
	if err := s.items.Delete(ctx, current); err != nil {
		if errors.Is(err, ErrNoRowsAffected) {
			return models.CartItem{}, apperr.NotFound(msgItemNotFound)
		}
		return models.CartItem{}, apperr.Wrap(err, "delete cart item")
	}
	s.log.WithFields(logrus.Fields{"cartId": cartID, "itemId": itemID}).Debug("cart item removed")
	return current, nil
}

func (s *CartItemService) findOwned(ctx context.Context, cartID, itemID string) (models.CartItem, error) {
	if cartID == "" || itemID == "" {
		return models.CartItem{}, apperr.NotFound(msgItemNotFound)
	}
	item, ok, err := s.items.FindInCart(ctx, cartID, itemID)
	if err != nil {
		return models.CartItem{}, apperr.Wrap(err, "find cart item")
	}
	if !ok || item.CartID != cartID {
		return models.CartItem{}, apperr.NotFound(msgItemNotFound)
	}
	return item, nil
}
