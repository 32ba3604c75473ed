package usecases

import (
	"context"

	"github.com/sirupsen/logrus"

	"marketcart/models"
)

// Availability revalidates a cart's items against the live catalog and
// writes back the availability flags that changed.
type Availability struct {
	d   Deps
	log logrus.FieldLogger
}

func NewAvailability(d Deps) *Availability {
	return &Availability{d: d, log: d.logger("availability")}
}

// Refresh returns the cart as stored after the refresh was applied.
func (uc *Availability) Refresh(ctx context.Context, buyerID, cartID string) (cart models.Cart, err error) {
	ctx, span := startSpan(ctx, "cart.RefreshAvailability", buyerID, cartID)
	defer func() { endSpan(span, err) }()

	release, err := uc.d.lock(ctx, buyerID)
	if err != nil {
		return models.Cart{}, err
	}
	defer release()

	return uc.refresh(ctx, buyerID, cartID)
}

func (uc *Availability) refresh(ctx context.Context, buyerID, cartID string) (models.Cart, error) {
	cart, err := uc.d.Carts.MustFindOwnedCart(ctx, buyerID, cartID)
	if err != nil {
		return models.Cart{}, err
	}

	changed, err := uc.apply(ctx, cart)
	if err != nil {
		return models.Cart{}, err
	}
	if changed == 0 {
		return cart, nil
	}
	return uc.d.Carts.MustFindOwnedCart(ctx, buyerID, cartID)
}

func (uc *Availability) apply(ctx context.Context, cart models.Cart) (int, error) {
	if len(cart.Items) == 0 {
		return 0, nil
	}

	itemByProduct := make(map[string]string, len(cart.Items))
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		if _, seen := itemByProduct[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		itemByProduct[item.ProductID] = item.ID
	}

	results := uc.lookup(ctx, ids)

	changed := 0
	for _, item := range cart.Items {
		if itemByProduct[item.ProductID] != item.ID {
			continue
		}
		result, ok := results[item.ProductID]
		if !ok {
			continue
		}
		want := models.EvaluateAvailability(result)
		if want.Equal(item.Availability()) {
			continue
		}
		if _, err := uc.d.Items.UpdateOwned(ctx, cart.ID, item.ID, models.AvailabilityPatch(want)); err != nil {
			return changed, err
		}
		changed++
		uc.log.WithFields(logrus.Fields{
			"cartId":    cart.ID,
			"itemId":    item.ID,
			"productId": item.ProductID,
			"available": want.Available,
			"reason":    want.Reason,
		}).Debug("cart item availability changed")
	}
	return changed, nil
}

// lookup resolves every id to a lookup result. Ids the catalog silently
// omitted have no entry. A failed batch marks every id as a lookup error.
func (uc *Availability) lookup(ctx context.Context, ids []string) map[string]models.ProductLookupResult {
	results := make(map[string]models.ProductLookupResult, len(ids))

	products, err := uc.d.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		uc.log.WithError(err).WithField("products", len(ids)).Warn("catalog lookup failed, marking items unavailable")
		for _, id := range ids {
			results[id] = models.LookupError(err)
		}
		return results
	}

	for _, p := range products {
		results[p.ID] = models.Found(p)
	}
	return results
}
