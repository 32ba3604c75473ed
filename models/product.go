package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         string          `gorm:"primaryKey;size:64" json:"id"`
	ShopID     string          `gorm:"size:64;index;not null" json:"shopId"`
	Name       string          `gorm:"not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock      int             `gorm:"not null" json:"stock"`
	IsApproved bool            `gorm:"not null;default:false" json:"isApproved"`
	OnShelf    bool            `gorm:"not null;default:false" json:"onShelf"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ValidForDisplay reports whether buyers may see and buy the product.
func (p Product) ValidForDisplay() bool {
	return p.ID != "" && p.IsApproved && p.OnShelf
}
