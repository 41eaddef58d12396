package cart

import (
	"context"
	"sync"
	"testing"
)

// memoryStore is an in-process Store for tests.
type memoryStore struct {
	mu        sync.Mutex
	carts     map[string][]byte
	wishlists map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		carts:     make(map[string][]byte),
		wishlists: make(map[string][]byte),
	}
}

func (s *memoryStore) LoadCart(_ context.Context, shopperID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[shopperID], nil
}

func (s *memoryStore) SaveCart(_ context.Context, shopperID string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[shopperID] = payload
	return nil
}

func (s *memoryStore) LoadWishlist(_ context.Context, shopperID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlists[shopperID], nil
}

func (s *memoryStore) SaveWishlist(_ context.Context, shopperID string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlists[shopperID] = payload
	return nil
}

func TestManagerPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	m := NewManager(store)

	if _, err := m.AddToCart(ctx, "shopper", "c1", 1, nil); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if _, err := m.AddToCart(ctx, "shopper", "c1", 1, nil); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	// A fresh manager over the same store must see the persisted state.
	c, err := NewManager(store).Cart(ctx, "shopper")
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	entry, ok := c.Find("c1")
	if !ok || entry.Qty != 2 {
		t.Errorf("persisted entry = %+v, want qty 2", entry)
	}

	if _, err := m.ClearCart(ctx, "shopper"); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}
	c, _ = m.Cart(ctx, "shopper")
	if c.Len() != 0 {
		t.Errorf("Len() after clear = %d, want 0", c.Len())
	}
}

func TestManagerCorruptStateDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.carts["shopper"] = []byte("{not json")
	store.wishlists["shopper"] = []byte("{not json")

	m := NewManager(store)

	c, err := m.Cart(ctx, "shopper")
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("corrupt cart should degrade to empty, got %d entries", c.Len())
	}

	w, err := m.Wishlist(ctx, "shopper")
	if err != nil {
		t.Fatalf("Wishlist() error = %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("corrupt wishlist should degrade to empty, got %d ids", w.Len())
	}
}

func TestManagerConcurrentAddsKeepSingleEntry(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemoryStore())

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.AddToCart(ctx, "shopper", "c1", 1, nil); err != nil {
				t.Errorf("AddToCart() error = %v", err)
			}
		}()
	}
	wg.Wait()

	c, err := m.Cart(ctx, "shopper")
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want exactly one entry under concurrent adds", c.Len())
	}
	entry, _ := c.Find("c1")
	if entry.Qty != workers {
		t.Errorf("Qty = %d, want %d", entry.Qty, workers)
	}
}

func TestManagerWishlistIdempotence(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemoryStore())

	first, err := m.AddToWishlist(ctx, "shopper", "c1")
	if err != nil {
		t.Fatalf("AddToWishlist() error = %v", err)
	}
	second, err := m.AddToWishlist(ctx, "shopper", "c1")
	if err != nil {
		t.Fatalf("AddToWishlist() error = %v", err)
	}

	if first.Len() != 1 || second.Len() != 1 {
		t.Errorf("wishlist lengths = %d then %d, want 1 and 1", first.Len(), second.Len())
	}

	w, _ := m.RemoveFromWishlist(ctx, "shopper", "c1")
	if w.Contains("c1") {
		t.Error("c1 still present after RemoveFromWishlist")
	}
}
