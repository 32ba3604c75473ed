package di

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketcart/models"
	"marketcart/shipping"
)

// AutoMigrate creates or updates the cart, catalog and shipping tables.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&shipping.Profile{},
		&shipping.Rate{},
	)
	return errors.Wrap(err, "auto migrate")
}
