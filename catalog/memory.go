package catalog

import (
	"context"
	"sync"

	"marketcart/models"
)

type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]models.Product
	// Err, when set, is returned by every lookup.
	Err   error
	calls int
}

func NewMemoryCatalog(products ...models.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[string]models.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) Put(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

func (c *MemoryCatalog) SetStock(productID string, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.products[productID]
	p.Stock = stock
	c.products[productID] = p
}

func (c *MemoryCatalog) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, productID)
}

// Calls reports how many batch lookups were served.
func (c *MemoryCatalog) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

func (c *MemoryCatalog) FindByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	if c.Err != nil {
		return nil, c.Err
	}
	out := []models.Product{}
	for _, id := range uniqueIDs(ids) {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) FindOneValidForDisplay(ctx context.Context, productID string) (models.Product, bool, error) {
	return findValidForDisplay(ctx, c, productID)
}
