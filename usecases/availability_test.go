package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcart/apperr"
	"marketcart/models"
)

func reasonOf(item models.CartItem) string {
	if item.UnavailableReason == nil {
		return ""
	}
	return *item.UnavailableReason
}

func TestRefreshMarksOutOfStockWithoutTouchingQuantity(t *testing.T) {
	f := setup(t, product("p1", "shop-a", 1999, 5))
	cart := f.add(t, "b", "p1", 3)
	f.catalog.SetStock("p1", 0)

	refreshed, err := f.uc.Availability.Refresh(context.Background(), "b", cart.ID)
	require.NoError(t, err)

	require.Len(t, refreshed.Items, 1)
	item := refreshed.Items[0]
	assert.False(t, item.Available)
	assert.Equal(t, "Out of stock", reasonOf(item))
	assert.Equal(t, 3, item.Quantity)
}

func TestRefreshPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *models.Product)
		want   string
	}{
		{"not approved", func(p *models.Product) { p.IsApproved = false }, "Product offshelf"},
		{"not approved and out of stock", func(p *models.Product) { p.IsApproved = false; p.Stock = 0 }, "Product offshelf"},
		{"off shelf and out of stock", func(p *models.Product) { p.OnShelf = false; p.Stock = 0 }, "Product offshelf"},
		{"out of stock", func(p *models.Product) { p.Stock = 0 }, "Out of stock"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := product("p1", "shop-a", 100, 5)
			f := setup(t, p)
			cart := f.add(t, "b", "p1", 1)

			tc.mutate(&p)
			f.catalog.Put(p)

			refreshed, err := f.uc.Availability.Refresh(context.Background(), "b", cart.ID)
			require.NoError(t, err)
			assert.False(t, refreshed.Items[0].Available)
			assert.Equal(t, tc.want, reasonOf(refreshed.Items[0]))
		})
	}
}

func TestRefreshLeavesItemsOmittedByCatalog(t *testing.T) {
	f := setup(t, product("p1", "shop-a", 100, 5))
	cart := f.add(t, "b", "p1", 1)
	f.catalog.Remove("p1")

	refreshed, err := f.uc.Availability.Refresh(context.Background(), "b", cart.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Items[0].Available)
}

func TestRefreshMasksCatalogFailure(t *testing.T) {
	f := setup(t, product("p1", "shop-a", 100, 5), product("p2", "shop-b", 100, 5))
	f.add(t, "b", "p1", 1)
	cart := f.add(t, "b", "p2", 1)
	f.catalog.Err = errors.New("catalog unavailable")

	refreshed, err := f.uc.Availability.Refresh(context.Background(), "b", cart.ID)
	require.NoError(t, err)
	for _, item := range refreshed.Items {
		assert.False(t, item.Available)
		assert.Equal(t, "Product not found", reasonOf(item))
	}
	warned := false
	for _, entry := range f.logs.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestRefreshRestoresAvailability(t *testing.T) {
	f := setup(t, product("p1", "shop-a", 100, 5))
	cart := f.add(t, "b", "p1", 1)

	f.catalog.SetStock("p1", 0)
	_, err := f.uc.Availability.Refresh(context.Background(), "b", cart.ID)
	require.NoError(t, err)

	f.catalog.SetStock("p1", 4)
	refreshed, err := f.uc.Availability.Refresh(context.Background(), "b", cart.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Items[0].Available)
	assert.Nil(t, refreshed.Items[0].UnavailableReason)
}

func TestRefreshUnownedCart(t *testing.T) {
	f := setup(t, product("p1", "shop-a", 100, 5))
	cart := f.add(t, "owner", "p1", 1)

	_, err := f.uc.Availability.Refresh(context.Background(), "other", cart.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Cart not found", apperr.Message(err))
}

func TestRefreshEmptyCartSkipsCatalog(t *testing.T) {
	f := setup(t)
	cart, err := f.uc.GetCart.Execute(context.Background(), "b")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, f.catalog.Calls())
}
