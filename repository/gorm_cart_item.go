package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketcart/models"
)

type GormCartItemRepository struct {
	db *gorm.DB
}

func NewGormCartItemRepository(db *gorm.DB) *GormCartItemRepository {
	return &GormCartItemRepository{db: db}
}

func (r *GormCartItemRepository) Create(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(item).Error
	return errors.Wrap(err, "insert cart item")
}

func (r *GormCartItemRepository) FindByCartID(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "select cart items")
	}
	return items, nil
}

func (r *GormCartItemRepository) FindInCart(ctx context.Context, cartID, itemID string) (models.CartItem, bool, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).
		Error
	return found(item, err, "select cart item")
}

func (r *GormCartItemRepository) Update(ctx context.Context, item *models.CartItem) error {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", item.ID, item.CartID).
		Updates(map[string]interface{}{
			"shop_id":            item.ShopID,
			"quantity":           item.Quantity,
			"available":          item.Available,
			"unavailable_reason": item.UnavailableReason,
			"updated_at":         item.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update cart item")
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *GormCartItemRepository) Delete(ctx context.Context, item models.CartItem) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", item.ID, item.CartID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete cart item")
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
