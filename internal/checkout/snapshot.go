// Package checkout turns a shopper's cart into a payment flow. The snapshot
// is built by joining cart entries against the catalogue index at checkout
// time, so prices always reflect the current catalogue load.
package checkout

import (
	"github.com/velvetcharms/storefront/internal/cart"
	"github.com/velvetcharms/storefront/internal/catalogue"
)

// Line is one priced, resolved cart entry.
type Line struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Snapshot is the checkout handoff. It never contains unresolved entries;
// ids that failed to resolve (or resolved to a contact-for-price product)
// are listed in Dropped so the caller can warn the shopper.
type Snapshot struct {
	Lines    []Line   `json:"lines"`
	Subtotal float64  `json:"subtotal"`
	Dropped  []string `json:"dropped,omitempty"`
}

// Empty reports whether nothing survived the join.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// BuildSnapshot joins cart entries against the index in cart order. Entries
// whose product is gone from the current catalogue, or has no price, are
// dropped and the subtotal recomputed over the remainder.
func BuildSnapshot(c *cart.Cart, idx *catalogue.Index) Snapshot {
	var snap Snapshot
	if c == nil {
		return snap
	}

	for _, entry := range c.Items {
		product, ok := idx.FindByID(entry.ID)
		if !ok || !product.HasPrice() {
			snap.Dropped = append(snap.Dropped, entry.ID)
			continue
		}

		qty := entry.Qty
		if qty < 1 {
			qty = 1
		}

		snap.Lines = append(snap.Lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.PriceValue(),
			Qty:       qty,
		})
		snap.Subtotal += product.PriceValue() * float64(qty)
	}

	return snap
}
