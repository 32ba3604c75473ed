package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketcart/models"
	"marketcart/services"
)

var ErrNoRowsAffected = services.ErrNoRowsAffected

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).
		Omit("Items").
		Create(cart).
		Error
	return errors.Wrap(err, "insert cart")
}

func (r *GormCartRepository) FindActiveByBuyer(ctx context.Context, buyerID string) (models.Cart, bool, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND is_checkout = ?", buyerID, false).
		Order("created_at ASC").
		First(&cart).
		Error
	return found(cart, err, "select active cart")
}

func (r *GormCartRepository) FindOwned(ctx context.Context, buyerID, cartID string) (models.Cart, bool, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("id = ? AND buyer_id = ?", cartID, buyerID).
		First(&cart).
		Error
	return found(cart, err, "select owned cart")
}

func (r *GormCartRepository) Update(ctx context.Context, cart *models.Cart) error {
	result := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"is_checkout": cart.IsCheckout,
			"order_id":    cart.OrderID,
			"updated_at":  cart.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update cart")
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func found[T any](v T, err error, op string) (T, bool, error) {
	var zero T
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, errors.Wrap(err, op)
	}
	return v, true, nil
}
