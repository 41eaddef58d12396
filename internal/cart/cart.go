// Package cart holds a shopper's in-progress selections. The state is kept
// independent of catalogue content: entries referencing products that no
// longer resolve stay in the cart but contribute nothing to totals.
package cart

import "github.com/velvetcharms/storefront/internal/catalogue"

// Entry is one selected product with quantity and optional customization.
type Entry struct {
	ID      string            `json:"id"`
	Qty     int               `json:"qty"`
	Options map[string]string `json:"options,omitempty"`
	Note    string            `json:"note,omitempty"`
}

// Cart is an ordered list of entries with at most one entry per product id.
type Cart struct {
	Items []Entry `json:"items"`
}

// Add inserts a product or bumps the quantity of an existing entry. It is a
// no-op for an empty id; quantities below 1 are clamped to 1. Callers are
// expected to validate the id against the index first, but bad input must
// never crash here.
func (c *Cart) Add(id string, qty int, options map[string]string) {
	if id == "" {
		return
	}
	if qty < 1 {
		qty = 1
	}

	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Qty += qty
			if len(options) > 0 {
				c.Items[i].Options = options
			}
			return
		}
	}

	c.Items = append(c.Items, Entry{ID: id, Qty: qty, Options: options})
}

// SetNote attaches a freeform note to an existing entry; absent ids are a
// no-op.
func (c *Cart) SetNote(id, note string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Note = note
			return
		}
	}
}

// Remove drops the entry for id; absent ids are a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// Find returns the entry for id, if present.
func (c *Cart) Find(id string) (Entry, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Entry{}, false
}

// Len returns the number of distinct entries.
func (c *Cart) Len() int {
	return len(c.Items)
}

// Subtotal sums current catalogue prices times quantities. Entries whose
// product no longer resolves, or that resolve to a contact-for-price
// product, contribute 0.
func (c *Cart) Subtotal(idx *catalogue.Index) float64 {
	var total float64
	for _, item := range c.Items {
		product, ok := idx.FindByID(item.ID)
		if !ok || !product.HasPrice() {
			continue
		}
		total += product.PriceValue() * float64(item.Qty)
	}
	return total
}
