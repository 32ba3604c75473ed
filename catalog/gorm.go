package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketcart/models"
)

type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	err := c.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	return products, nil
}

func (c *GormCatalog) FindOneValidForDisplay(ctx context.Context, productID string) (models.Product, bool, error) {
	var product models.Product
	err := c.db.WithContext(ctx).
		Where("id = ? AND is_approved = ? AND on_shelf = ?", productID, true, true).
		First(&product).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, errors.Wrap(err, "select product")
	}
	return product, true, nil
}
