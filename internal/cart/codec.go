package cart

import (
	"encoding/json"
	"log/slog"
)

// Persisted shapes match the legacy browser-storage documents: the cart is
// {"items":[...]}, the wishlist a bare array of ids. Corrupt or missing
// payloads always degrade to empty state, never to a surfaced parse error.

// EncodeCart serializes a cart for storage.
func EncodeCart(c *Cart) ([]byte, error) {
	if c == nil {
		c = &Cart{}
	}
	return json.Marshal(c)
}

// DecodeCart restores a cart from a stored payload. Nil, empty or corrupt
// payloads yield an empty cart.
func DecodeCart(data []byte) *Cart {
	c := &Cart{}
	if len(data) == 0 {
		return c
	}
	if err := json.Unmarshal(data, c); err != nil {
		slog.Warn("discarding corrupt stored cart", "error", err)
		return &Cart{}
	}
	// Normalize quantities that predate clamping.
	for i := range c.Items {
		if c.Items[i].Qty < 1 {
			c.Items[i].Qty = 1
		}
	}
	return c
}

// EncodeWishlist serializes a wishlist for storage.
func EncodeWishlist(w *Wishlist) ([]byte, error) {
	if w == nil {
		w = &Wishlist{}
	}
	ids := w.IDs()
	return json.Marshal(ids)
}

// DecodeWishlist restores a wishlist; corrupt payloads yield an empty set
// and duplicate ids collapse.
func DecodeWishlist(data []byte) *Wishlist {
	w := &Wishlist{}
	if len(data) == 0 {
		return w
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		slog.Warn("discarding corrupt stored wishlist", "error", err)
		return &Wishlist{}
	}
	for _, id := range ids {
		w.Add(id)
	}
	return w
}
