// Package shipping loads per-shop shipping profiles.
package shipping

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketcart/models"
)

type Profile struct {
	ShopID             string              `gorm:"primaryKey;size:64"`
	FreeShippingAmount decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	DefaultFee         decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	FeeMode            string              `gorm:"size:16;not null;default:per_line"`
	Aggregation        string              `gorm:"size:16;not null;default:sum"`
	Rates              []Rate              `gorm:"foreignKey:ShopID;references:ShopID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Profile) TableName() string { return "shipping_profiles" }

type Rate struct {
	ID        uint            `gorm:"primaryKey"`
	ShopID    string          `gorm:"size:64;uniqueIndex:idx_shop_product;not null"`
	ProductID string          `gorm:"size:64;uniqueIndex:idx_shop_product;not null"`
	Fee       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (Rate) TableName() string { return "shipping_rates" }

func (p Profile) toModel() models.ShippingProfile {
	out := models.ShippingProfile{
		ShopID:      p.ShopID,
		DefaultFee:  p.DefaultFee,
		ProductFees: make(map[string]decimal.Decimal, len(p.Rates)),
		FeeMode:     models.FeeMode(p.FeeMode),
		Aggregation: models.Aggregation(p.Aggregation),
	}
	if p.FreeShippingAmount.Valid {
		threshold := p.FreeShippingAmount.Decimal
		out.FreeShippingAmount = &threshold
	}
	for _, r := range p.Rates {
		out.ProductFees[r.ProductID] = r.Fee
	}
	return out
}

type GormProfiles struct {
	db *gorm.DB
}

func NewGormProfiles(db *gorm.DB) *GormProfiles {
	return &GormProfiles{db: db}
}

func (g *GormProfiles) ProfileForShop(ctx context.Context, shopID string) (models.ShippingProfile, bool, error) {
	var profile Profile
	err := g.db.WithContext(ctx).
		Preload("Rates").
		Where("shop_id = ?", shopID).
		First(&profile).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ShippingProfile{}, false, nil
	}
	if err != nil {
		return models.ShippingProfile{}, false, errors.Wrap(err, "select shipping profile")
	}
	return profile.toModel(), true, nil
}
