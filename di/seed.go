package di

import (
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"marketcart/catalog"
	"marketcart/models"
	"marketcart/shipping"
)

type seedFile struct {
	Products []struct {
		ID         string `yaml:"id"`
		ShopID     string `yaml:"shopId"`
		Name       string `yaml:"name"`
		Price      string `yaml:"price"`
		Stock      int    `yaml:"stock"`
		IsApproved bool   `yaml:"isApproved"`
		OnShelf    bool   `yaml:"onShelf"`
	} `yaml:"products"`
	ShippingProfiles []struct {
		ShopID             string            `yaml:"shopId"`
		FreeShippingAmount string            `yaml:"freeShippingAmount"`
		DefaultFee         string            `yaml:"defaultFee"`
		ProductFees        map[string]string `yaml:"productFees"`
		FeeMode            string            `yaml:"feeMode"`
		Aggregation        string            `yaml:"aggregation"`
	} `yaml:"shippingProfiles"`
}

// LoadSeed fills the memory stores from a YAML file. Amounts are strings so
// they parse exactly.
func LoadSeed(filename string, products *catalog.MemoryCatalog, profiles *shipping.MemoryProfiles) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse seed file")
	}

	for _, p := range seed.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return errors.Wrapf(err, "product %s: price", p.ID)
		}
		products.Put(models.Product{
			ID:         p.ID,
			ShopID:     p.ShopID,
			Name:       p.Name,
			Price:      price,
			Stock:      p.Stock,
			IsApproved: p.IsApproved,
			OnShelf:    p.OnShelf,
		})
	}

	for _, s := range seed.ShippingProfiles {
		profile := models.NoShippingProfile(s.ShopID)
		if s.FeeMode != "" {
			profile.FeeMode = models.FeeMode(s.FeeMode)
		}
		if s.Aggregation != "" {
			profile.Aggregation = models.Aggregation(s.Aggregation)
		}
		if s.DefaultFee != "" {
			if profile.DefaultFee, err = decimal.NewFromString(s.DefaultFee); err != nil {
				return errors.Wrapf(err, "shop %s: defaultFee", s.ShopID)
			}
		}
		if s.FreeShippingAmount != "" {
			amount, err := decimal.NewFromString(s.FreeShippingAmount)
			if err != nil {
				return errors.Wrapf(err, "shop %s: freeShippingAmount", s.ShopID)
			}
			profile.FreeShippingAmount = &amount
		}
		if len(s.ProductFees) > 0 {
			profile.ProductFees = make(map[string]decimal.Decimal, len(s.ProductFees))
			for productID, fee := range s.ProductFees {
				d, err := decimal.NewFromString(fee)
				if err != nil {
					return errors.Wrapf(err, "shop %s: fee for %s", s.ShopID, productID)
				}
				profile.ProductFees[productID] = d
			}
		}
		profiles.Put(profile)
	}
	return nil
}
