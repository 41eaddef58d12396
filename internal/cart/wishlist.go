package cart

// Wishlist is a saved-for-later set of product identifiers. Insertion order
// is preserved for stable display.
type Wishlist struct {
	ids []string
}

// Add inserts an id; re-adding a present id is idempotent and an empty id is
// ignored.
func (w *Wishlist) Add(id string) {
	if id == "" || w.Contains(id) {
		return
	}
	w.ids = append(w.ids, id)
}

// Remove drops an id; absent ids are a no-op.
func (w *Wishlist) Remove(id string) {
	for i, existing := range w.ids {
		if existing == id {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			return
		}
	}
}

func (w *Wishlist) Contains(id string) bool {
	for _, existing := range w.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns the identifiers in insertion order. The slice is a copy.
func (w *Wishlist) IDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w *Wishlist) Len() int {
	return len(w.ids)
}
