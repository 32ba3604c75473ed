package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcart/catalog"
	"marketcart/models"
	"marketcart/shipping"
)

func TestLoadSeed(t *testing.T) {
	products := catalog.NewMemoryCatalog()
	profiles := shipping.NewMemoryProfiles()
	require.NoError(t, LoadSeed("../config/seed.yaml", products, profiles))

	tote, ok, err := products.FindOneValidForDisplay(context.Background(), "p-tote")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "18", tote.Price.String())

	profile, ok, err := profiles.ProfileForShop(context.Background(), "shop-a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.FeePerLine, profile.FeeMode)
	assert.Equal(t, models.AggregateMax, profile.Aggregation)
	require.NotNil(t, profile.FreeShippingAmount)
	assert.Equal(t, "50", profile.FreeShippingAmount.String())
	assert.Equal(t, "6", profile.ProductFees["p-tote"].String())

	_, ok, err = profiles.ProfileForShop(context.Background(), "shop-b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadSeedRejectsBadAmounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - id: p1\n    price: twelve\n"), 0o600))

	err := LoadSeed(path, catalog.NewMemoryCatalog(), shipping.NewMemoryProfiles())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product p1: price")

	err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"), catalog.NewMemoryCatalog(), shipping.NewMemoryProfiles())
	assert.Error(t, err)
}
