package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcart/apperr"
)

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	f := setup(t, product("p1", "shop-a", 100, 5))
	cart := f.add(t, "b", "p1", 1)
	itemID := cart.Items[0].ID

	t.Run("exactly stock", func(t *testing.T) {
		updated, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: itemID, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Items[0].Quantity)
	})

	t.Run("above stock", func(t *testing.T) {
		_, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: itemID, Quantity: 6})
		assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
		assert.Equal(t, "Quantity (6) exceeds available stock (5)", apperr.Message(err))

		items, err := f.items.FindByCartID(ctx, cart.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: itemID, Quantity: -1})
		assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
	})

	t.Run("foreign buyer", func(t *testing.T) {
		_, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "x", CartID: cart.ID, ItemID: itemID, Quantity: 1})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: "nope", Quantity: 1})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, "Cart item not found", apperr.Message(err))
	})

	t.Run("zero removes the line", func(t *testing.T) {
		updated, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: itemID, Quantity: 0})
		require.NoError(t, err)
		assert.Empty(t, updated.Items)
	})
}

func TestUpdateQuantityProductGone(t *testing.T) {
	ctx := context.Background()
	f := setup(t, product("p1", "shop-a", 100, 5))
	cart := f.add(t, "b", "p1", 1)
	f.catalog.Remove("p1")

	_, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: cart.Items[0].ID, Quantity: 2})
	assert.Equal(t, "Product not found", apperr.Message(err))
}

func TestUpdateQuantityChecksOwnershipBeforeProduct(t *testing.T) {
	ctx := context.Background()
	f := setup(t, product("p1", "shop-a", 100, 5))
	cart := f.add(t, "b", "p1", 1)
	f.catalog.Remove("p1")

	_, err := f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "x", CartID: cart.ID, ItemID: cart.Items[0].ID, Quantity: 2})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Cart not found", apperr.Message(err))

	_, err = f.uc.UpdateQuantity.Execute(ctx, UpdateQuantityInput{BuyerID: "b", CartID: cart.ID, ItemID: "nope", Quantity: 2})
	assert.Equal(t, "Cart item not found", apperr.Message(err))
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	f := setup(t, product("p1", "shop-a", 100, 5), product("p2", "shop-a", 100, 5))
	f.add(t, "b", "p1", 1)
	cart := f.add(t, "b", "p2", 1)

	removed, err := f.uc.RemoveItem.Execute(ctx, "b", cart.ID, cart.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, removed.Items, 1)
	assert.Equal(t, "p2", removed.Items[0].ProductID)

	_, err = f.uc.RemoveItem.Execute(ctx, "b", cart.ID, cart.Items[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.uc.RemoveItem.Execute(ctx, "intruder", cart.ID, cart.Items[1].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
