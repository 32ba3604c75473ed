package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"marketcart/models"
)

// MemoryCartRepository keeps carts in process memory. Used by the memory
// storage driver and by tests.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
	order []string
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string]models.Cart)}
}

func (r *MemoryCartRepository) Create(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	stored := *cart
	stored.Items = nil
	r.carts[cart.ID] = stored
	r.order = append(r.order, cart.ID)
	return nil
}

func (r *MemoryCartRepository) FindActiveByBuyer(_ context.Context, buyerID string) (models.Cart, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		cart := r.carts[id]
		if cart.BuyerID == buyerID && !cart.IsCheckout {
			return cart, true, nil
		}
	}
	return models.Cart{}, false, nil
}

func (r *MemoryCartRepository) FindOwned(_ context.Context, buyerID, cartID string) (models.Cart, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[cartID]
	if !ok || cart.BuyerID != buyerID {
		return models.Cart{}, false, nil
	}
	return cart, true, nil
}

func (r *MemoryCartRepository) Update(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.ID]; !ok {
		return ErrNoRowsAffected
	}
	stored := *cart
	stored.Items = nil
	r.carts[cart.ID] = stored
	return nil
}

// Count returns the number of stored carts.
func (r *MemoryCartRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

type MemoryCartItemRepository struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func NewMemoryCartItemRepository() *MemoryCartItemRepository {
	return &MemoryCartItemRepository{}
}

func (r *MemoryCartItemRepository) Create(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *MemoryCartItemRepository) FindByCartID(_ context.Context, cartID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.CartItem{}
	for _, item := range r.items {
		if item.CartID == cartID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MemoryCartItemRepository) FindInCart(_ context.Context, cartID, itemID string) (models.CartItem, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == itemID && item.CartID == cartID {
			return item, true, nil
		}
	}
	return models.CartItem{}, false, nil
}

func (r *MemoryCartItemRepository) Update(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID && r.items[i].CartID == item.CartID {
			r.items[i] = *item
			return nil
		}
	}
	return ErrNoRowsAffected
}

func (r *MemoryCartItemRepository) Delete(_ context.Context, item models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID && r.items[i].CartID == item.CartID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNoRowsAffected
}
