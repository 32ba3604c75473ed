package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcart/models"
)

func TestMemoryCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCartRepository()

	first := models.Cart{BuyerID: "buyer-1"}
	require.NoError(t, repo.Create(ctx, &first))
	assert.NotEmpty(t, first.ID)

	active, ok, err := repo.FindActiveByBuyer(ctx, "buyer-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)

	_, ok, err = repo.FindOwned(ctx, "buyer-2", first.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	first.IsCheckout = true
	require.NoError(t, repo.Update(ctx, &first))
	_, ok, err = repo.FindActiveByBuyer(ctx, "buyer-1")
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Update(ctx, &models.Cart{ID: "missing"})
	assert.ErrorIs(t, err, ErrNoRowsAffected)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryCartItemRepositoryScopesByCart(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCartItemRepository()

	item := models.CartItem{CartID: "cart-1", ProductID: "p1", Quantity: 1}
	require.NoError(t, repo.Create(ctx, &item))
	require.NotEmpty(t, item.ID)

	_, ok, err := repo.FindInCart(ctx, "cart-2", item.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := repo.FindInCart(ctx, "cart-1", item.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p1", got.ProductID)

	got.Quantity = 4
	require.NoError(t, repo.Update(ctx, &got))
	items, err := repo.FindByCartID(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	assert.ErrorIs(t, repo.Delete(ctx, models.CartItem{ID: item.ID, CartID: "cart-2"}), ErrNoRowsAffected)
	require.NoError(t, repo.Delete(ctx, got))

	items, err = repo.FindByCartID(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}
