package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         string `gorm:"primaryKey;size:36"`
	BuyerID    string `gorm:"size:64;index;not null"`
	IsCheckout bool   `gorm:"not null;default:false"`
	OrderID    *string
	Items      []CartItem `gorm:"foreignKey:CartID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OwnedBy reports whether buyerID owns the cart.
func (c Cart) OwnedBy(buyerID string) bool {
	return buyerID != "" && c.BuyerID == buyerID
}

// ItemByProduct returns the line holding productID, if any.
func (c Cart) ItemByProduct(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c Cart) ItemByID(itemID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Subtotal sums the line totals of every item, available or not.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
