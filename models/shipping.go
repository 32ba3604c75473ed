package models

import "github.com/shopspring/decimal"

type FeeMode string

const (
	FeePerUnit FeeMode = "per_unit"
	FeePerLine FeeMode = "per_line"
)

type Aggregation string

const (
	AggregateSum Aggregation = "sum"
	AggregateMax Aggregation = "max"
)

// ShippingProfile holds a shop's shipping rates. FreeShippingAmount is nil
// when the shop has no free-shipping policy.
type ShippingProfile struct {
	ShopID             string
	FreeShippingAmount *decimal.Decimal
	DefaultFee         decimal.Decimal
	ProductFees        map[string]decimal.Decimal
	FeeMode            FeeMode
	Aggregation        Aggregation
}

// NoShippingProfile is used for shops that never configured shipping.
func NoShippingProfile(shopID string) ShippingProfile {
	return ShippingProfile{
		ShopID:      shopID,
		DefaultFee:  decimal.Zero,
		FeeMode:     FeePerLine,
		Aggregation: AggregateSum,
	}
}

func (p ShippingProfile) FeeFor(item CartItem) decimal.Decimal {
	fee, ok := p.ProductFees[item.ProductID]
	if !ok {
		fee = p.DefaultFee
	}
	if p.FeeMode == FeePerUnit {
		return fee.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return fee
}

func (p ShippingProfile) Combine(fees []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, fee := range fees {
		if p.Aggregation == AggregateMax {
			total = decimal.Max(total, fee)
			continue
		}
		total = total.Add(fee)
	}
	return total
}

func (p ShippingProfile) FreeFor(subtotal decimal.Decimal) bool {
	return p.FreeShippingAmount != nil && subtotal.GreaterThanOrEqual(*p.FreeShippingAmount)
}

// Quote prices the shop's share of a cart. Once the merchandise subtotal
// reaches the free-shipping threshold every fee drops to zero.
func (p ShippingProfile) Quote(items []CartItem) ShopShippingFee {
	out := ShopShippingFee{
		ShopID:             p.ShopID,
		Products:           make([]ProductShippingFee, 0, len(items)),
		TotalShippingFee:   decimal.Zero,
		FreeShippingAmount: p.FreeShippingAmount,
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	free := p.FreeFor(subtotal)

	fees := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		fee := decimal.Zero
		if !free {
			fee = p.FeeFor(item)
		}
		fees = append(fees, fee)
		out.Products = append(out.Products, ProductShippingFee{
			Product: ShippingProduct{
				ProductID: item.ProductID,
				Name:      item.ProductName,
				Price:     item.Price,
			},
			Qty:         item.Quantity,
			ShippingFee: fee,
		})
	}
	out.TotalShippingFee = p.Combine(fees)
	return out
}

type ShippingProduct struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
}

type ProductShippingFee struct {
	Product     ShippingProduct
	Qty         int
	ShippingFee decimal.Decimal
}

type ShopShippingFee struct {
	ShopID             string
	Products           []ProductShippingFee
	TotalShippingFee   decimal.Decimal
	FreeShippingAmount *decimal.Decimal
}

type ShippingFeeResult struct {
	CartTotalShippingFee decimal.Decimal
	ShopShippingFee      []ShopShippingFee
}
