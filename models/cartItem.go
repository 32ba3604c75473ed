package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID                string          `gorm:"primaryKey;size:36"`
	ShopID            string          `gorm:"size:64;index;not null"`
	CartID            string          `gorm:"size:36;index;not null"`
	ProductID         string          `gorm:"size:64;not null"`
	VariantID         *string         `gorm:"size:64"`
	ProductName       string          `gorm:"not null"`
	Quantity          int             `gorm:"not null"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Available         bool            `gorm:"not null;default:true"`
	UnavailableReason *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i CartItem) Availability() Availability {
	a := Availability{Available: i.Available}
	if i.UnavailableReason != nil {
		a.Reason = *i.UnavailableReason
	}
	return a
}

// CartItemPatch names the fields an update may touch. Nil fields are kept.
type CartItemPatch struct {
	Quantity     *int
	ShopID       *string
	Availability *Availability
}

func QuantityPatch(quantity int, shopID string) CartItemPatch {
	return CartItemPatch{Quantity: &quantity, ShopID: &shopID}
}

func AvailabilityPatch(a Availability) CartItemPatch {
	return CartItemPatch{Availability: &a}
}

func (p CartItemPatch) Empty() bool {
	return p.Quantity == nil && p.ShopID == nil && p.Availability == nil
}

// Apply returns a copy of item with the patch merged in. Identity, parent
// cart and the price/name snapshot are never touched by a patch.
func (p CartItemPatch) Apply(item CartItem) CartItem {
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.ShopID != nil && *p.ShopID != "" {
		item.ShopID = *p.ShopID
	}
	if p.Availability != nil {
		item.Available = p.Availability.Available
		item.UnavailableReason = nil
		if !p.Availability.Available && p.Availability.Reason != "" {
			reason := p.Availability.Reason
			item.UnavailableReason = &reason
		}
	}
	return item
}
