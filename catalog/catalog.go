// Package catalog reads products from the marketplace catalog on behalf of
// the cart. It never writes products.
package catalog

import (
	"context"

	"marketcart/models"
)

// Source is a batch product lookup. Ids it cannot find are silently omitted.
type Source interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

func findValidForDisplay(ctx context.Context, src Source, productID string) (models.Product, bool, error) {
	if productID == "" {
		return models.Product{}, false, nil
	}
	products, err := src.FindByIDs(ctx, []string{productID})
	if err != nil {
		return models.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == productID && p.ValidForDisplay() {
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
