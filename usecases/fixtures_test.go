package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"marketcart/catalog"
	"marketcart/cartlock"
	"marketcart/models"
	"marketcart/repository"
	"marketcart/services"
	"marketcart/shipping"
)

type fixture struct {
	uc       *UseCases
	carts    *services.CartService
	items    *services.CartItemService
	cartRepo *repository.MemoryCartRepository
	itemRepo *repository.MemoryCartItemRepository
	catalog  *catalog.MemoryCatalog
	profiles *shipping.MemoryProfiles
	logs     *test.Hook
}

func setup(t *testing.T, products ...models.Product) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()

	cartRepo := repository.NewMemoryCartRepository()
	itemRepo := repository.NewMemoryCartItemRepository()
	carts := services.NewCartService(cartRepo, itemRepo, logger)
	items := services.NewCartItemService(itemRepo, logger)
	cat := catalog.NewMemoryCatalog(products...)
	profiles := shipping.NewMemoryProfiles()

	return &fixture{
		uc: New(Deps{
			Carts:    carts,
			Items:    items,
			Catalog:  cat,
			Profiles: profiles,
			Locker:   cartlock.NewLocal(),
			Log:      logger,
		}),
		carts:    carts,
		items:    items,
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		catalog:  cat,
		profiles: profiles,
		logs:     hook,
	}
}

func product(id, shopID string, price int64, stock int) models.Product {
	return models.Product{
		ID:         id,
		ShopID:     shopID,
		Name:       "Product " + id,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		IsApproved: true,
		OnShelf:    true,
	}
}

func (f *fixture) add(t *testing.T, buyerID, productID string, qty int) models.Cart {
	t.Helper()
	cart, err := f.uc.AddItem.Execute(context.Background(), AddItemInput{
		BuyerID:   buyerID,
		ProductID: productID,
		Quantity:  qty,
	})
	require.NoError(t, err)
	return cart
}
