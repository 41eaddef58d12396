package cart

import (
	"context"
	"fmt"
	"sync"
)

// Store is the injected persistence capability for shopper state. A missing
// record is reported as a nil payload, not an error.
type Store interface {
	LoadCart(ctx context.Context, shopperID string) ([]byte, error)
	SaveCart(ctx context.Context, shopperID string, payload []byte) error
	LoadWishlist(ctx context.Context, shopperID string) ([]byte, error)
	SaveWishlist(ctx context.Context, shopperID string, payload []byte) error
}

// Manager owns all cart and wishlist mutations. Every mutating operation is
// a read-modify-write against the store, serialized per shopper so that
// concurrent adds cannot duplicate an entry.
type Manager struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) shopperLock(shopperID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[shopperID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[shopperID] = lock
	}
	return lock
}

// Cart returns the shopper's current cart; missing or corrupt stored state
// degrades to an empty cart.
func (m *Manager) Cart(ctx context.Context, shopperID string) (*Cart, error) {
	payload, err := m.store.LoadCart(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return DecodeCart(payload), nil
}

// AddToCart adds or increments an entry and persists the result.
func (m *Manager) AddToCart(ctx context.Context, shopperID, productID string, qty int, options map[string]string) (*Cart, error) {
	return m.mutateCart(ctx, shopperID, func(c *Cart) {
		c.Add(productID, qty, options)
	})
}

// AddToCartWithNote is AddToCart plus a freeform note on the entry.
func (m *Manager) AddToCartWithNote(ctx context.Context, shopperID, productID string, qty int, options map[string]string, note string) (*Cart, error) {
	return m.mutateCart(ctx, shopperID, func(c *Cart) {
		c.Add(productID, qty, options)
		if note != "" {
			c.SetNote(productID, note)
		}
	})
}

// RemoveFromCart drops an entry and persists the result.
func (m *Manager) RemoveFromCart(ctx context.Context, shopperID, productID string) (*Cart, error) {
	return m.mutateCart(ctx, shopperID, func(c *Cart) {
		c.Remove(productID)
	})
}

// ClearCart empties the shopper's cart.
func (m *Manager) ClearCart(ctx context.Context, shopperID string) (*Cart, error) {
	return m.mutateCart(ctx, shopperID, func(c *Cart) {
		c.Clear()
	})
}

func (m *Manager) mutateCart(ctx context.Context, shopperID string, mutate func(*Cart)) (*Cart, error) {
	lock := m.shopperLock(shopperID)
	lock.Lock()
	defer lock.Unlock()

	payload, err := m.store.LoadCart(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	c := DecodeCart(payload)

	mutate(c)

	encoded, err := EncodeCart(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := m.store.SaveCart(ctx, shopperID, encoded); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return c, nil
}

// Wishlist returns the shopper's wishlist, degraded to empty on corruption.
func (m *Manager) Wishlist(ctx context.Context, shopperID string) (*Wishlist, error) {
	payload, err := m.store.LoadWishlist(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return DecodeWishlist(payload), nil
}

// AddToWishlist inserts an id (idempotent) and persists the result.
func (m *Manager) AddToWishlist(ctx context.Context, shopperID, productID string) (*Wishlist, error) {
	return m.mutateWishlist(ctx, shopperID, func(w *Wishlist) {
		w.Add(productID)
	})
}

// RemoveFromWishlist drops an id and persists the result.
func (m *Manager) RemoveFromWishlist(ctx context.Context, shopperID, productID string) (*Wishlist, error) {
	return m.mutateWishlist(ctx, shopperID, func(w *Wishlist) {
		w.Remove(productID)
	})
}

func (m *Manager) mutateWishlist(ctx context.Context, shopperID string, mutate func(*Wishlist)) (*Wishlist, error) {
	lock := m.shopperLock(shopperID)
	lock.Lock()
	defer lock.Unlock()

	payload, err := m.store.LoadWishlist(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	w := DecodeWishlist(payload)

	mutate(w)

	encoded, err := EncodeWishlist(w)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := m.store.SaveWishlist(ctx, shopperID, encoded); err != nil {
		return nil, fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return w, nil
}
