package shipping

import (
	"context"
	"sync"

	"marketcart/models"
)

type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[string]models.ShippingProfile
}

func NewMemoryProfiles(profiles ...models.ShippingProfile) *MemoryProfiles {
	m := &MemoryProfiles{profiles: make(map[string]models.ShippingProfile)}
	for _, p := range profiles {
		m.profiles[p.ShopID] = p
	}
	return m
}

func (m *MemoryProfiles) Put(p models.ShippingProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ShopID] = p
}

func (m *MemoryProfiles) ProfileForShop(_ context.Context, shopID string) (models.ShippingProfile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[shopID]
	return p, ok, nil
}
