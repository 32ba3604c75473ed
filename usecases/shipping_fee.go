package usecases

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"marketcart/apperr"
	"marketcart/models"
)

const maxProfileLookups = 8

type ShippingFeeInput struct {
	BuyerID string
	CartID  string
	// Items, when non-nil, is priced instead of the stored cart contents.
	Items []models.CartItem
}

// ShippingFee groups a cart's items by shop and sums the per-shop quotes.
// Rates and thresholds belong to the shop's shipping profile.
type ShippingFee struct {
	d   Deps
	log logrus.FieldLogger
}

func NewShippingFee(d Deps) *ShippingFee {
	return &ShippingFee{d: d, log: d.logger("shipping_fee")}
}

type shopGroup struct {
	shopID string
	items  []models.CartItem
}

func (uc *ShippingFee) Execute(ctx context.Context, in ShippingFeeInput) (result models.ShippingFeeResult, err error) {
	ctx, span := startSpan(ctx, "cart.ShippingFee", in.BuyerID, in.CartID)
	defer func() { endSpan(span, err) }()

	items := in.Items
	if items == nil {
		cart, err := uc.d.Carts.MustFindOwnedCart(ctx, in.BuyerID, in.CartID)
		if err != nil {
			return models.ShippingFeeResult{}, err
		}
		items = cart.Items
	}

	groups := groupByShop(items)
	profiles, err := uc.profiles(ctx, groups)
	if err != nil {
		return models.ShippingFeeResult{}, err
	}

	result = models.ShippingFeeResult{
		CartTotalShippingFee: decimal.Zero,
		ShopShippingFee:      make([]models.ShopShippingFee, 0, len(groups)),
	}
	for i, g := range groups {
		quote := profiles[i].Quote(g.items)
		result.ShopShippingFee = append(result.ShopShippingFee, quote)
		result.CartTotalShippingFee = result.CartTotalShippingFee.Add(quote.TotalShippingFee)
	}
	return result, nil
}

// groupByShop keeps shops in order of first appearance.
func groupByShop(items []models.CartItem) []shopGroup {
	index := make(map[string]int)
	var groups []shopGroup
	for _, item := range items {
		i, ok := index[item.ShopID]
		if !ok {
			i = len(groups)
			index[item.ShopID] = i
			groups = append(groups, shopGroup{shopID: item.ShopID})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

func (uc *ShippingFee) profiles(ctx context.Context, groups []shopGroup) ([]models.ShippingProfile, error) {
	out := make([]models.ShippingProfile, len(groups))
	if uc.d.Profiles == nil {
		for i, g := range groups {
			out[i] = models.NoShippingProfile(g.shopID)
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxProfileLookups)
	for i := range groups {
		i := i
		g.Go(func() error {
			shopID := groups[i].shopID
			profile, ok, err := uc.d.Profiles.ProfileForShop(ctx, shopID)
			if err != nil {
				return apperr.Wrap(err, "load shipping profile "+shopID)
			}
			if !ok {
				profile = models.NoShippingProfile(shopID)
			}
			profile.ShopID = shopID
			out[i] = profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
