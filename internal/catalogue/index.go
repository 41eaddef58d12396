package catalogue

import "log/slog"

// Index holds the derived lookup structures for one catalogue load. All
// other components query the Index; nothing outside this package re-walks
// the raw document tree.
type Index struct {
	byID       map[string]Product
	byCategory map[string][]Product
	categories []string
}

// BuildIndex flattens the category/subcategory/product tree into O(1)
// lookups. Products with a missing identifier are excluded from the id map;
// on a duplicate identifier the first product wins and the collision is
// logged, since it indicates a malformed catalogue. Scent tags are resolved
// into concrete choice lists here so downstream consumers only ever see
// choices.
func BuildIndex(cat *Catalogue) *Index {
	idx := &Index{
		byID:       make(map[string]Product),
		byCategory: make(map[string][]Product),
	}
	if cat == nil {
		return idx
	}

	for _, category := range cat.Categories {
		var listing []Product

		// Direct products first, then subcategory products in
		// subcategory order.
		for _, p := range category.Products {
			listing = append(listing, idx.admit(p))
		}
		for _, sub := range category.Subcategories {
			for _, p := range sub.Products {
				listing = append(listing, idx.admit(p))
			}
		}

		if _, seen := idx.byCategory[category.Name]; !seen {
			idx.categories = append(idx.categories, category.Name)
		}
		idx.byCategory[category.Name] = append(idx.byCategory[category.Name], listing...)
	}

	return idx
}

// admit normalizes one product and registers it in the id map.
func (idx *Index) admit(p Product) Product {
	p = resolveOptions(p)

	if p.ID == "" {
		return p
	}
	if _, exists := idx.byID[p.ID]; exists {
		slog.Warn("duplicate product identifier in catalogue, keeping first", "id", p.ID)
		return p
	}
	idx.byID[p.ID] = p
	return p
}

// resolveOptions replaces a scent tag with the matching choice table. An
// unresolvable tag drops the option entirely.
func resolveOptions(p Product) Product {
	scent, ok := p.Options["scent"]
	if !ok || scent.Tag == "" {
		return p
	}

	resolved := make(Options, len(p.Options))
	for name, values := range p.Options {
		if name != "scent" {
			resolved[name] = values
		}
	}
	if choices := resolveScentTag(scent.Tag); choices != nil {
		resolved["scent"] = OptionValues{Choices: choices}
	}
	p.Options = resolved
	return p
}

// FindByID returns the product with the given identifier. It never panics;
// an empty or unknown id reports false.
func (idx *Index) FindByID(id string) (Product, bool) {
	if idx == nil || id == "" {
		return Product{}, false
	}
	p, ok := idx.byID[id]
	return p, ok
}

// CategoryProducts returns the ordered product listing for a category name,
// or nil when the category does not exist.
func (idx *Index) CategoryProducts(name string) []Product {
	if idx == nil {
		return nil
	}
	return idx.byCategory[name]
}

// HasCategory reports whether the catalogue declared a category by this name.
func (idx *Index) HasCategory(name string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.byCategory[name]
	return ok
}

// Categories returns category names in declaration order.
func (idx *Index) Categories() []string {
	if idx == nil {
		return nil
	}
	return idx.categories
}

// Len reports how many products carry a usable identifier.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byID)
}
