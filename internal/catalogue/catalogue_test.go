package catalogue

import (
	"testing"
)

func TestParseToleratesMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantCats int
	}{
		{
			name:     "empty document",
			document: `{}`,
			wantCats: 0,
		},
		{
			name:     "category without products or subcategories",
			document: `{"categories":[{"name":"Candles"}]}`,
			wantCats: 1,
		},
		{
			name:     "product with only an id",
			document: `{"categories":[{"name":"Candles","products":[{"id":"c1"}]}]}`,
			wantCats: 1,
		},
		{
			name:     "subcategory without products",
			document: `{"categories":[{"name":"Candles","subcategories":[{"name":"Jar Candles"}]}]}`,
			wantCats: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Parse([]byte(tt.document))
			if err != nil {
				t.Fatalf("Parse() error = %v, want nil", err)
			}
			if len(cat.Categories) != tt.wantCats {
				t.Errorf("Parse() categories = %d, want %d", len(cat.Categories), tt.wantCats)
			}
		})
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("Parse() expected error for invalid JSON")
	}
}

func TestOptionValuesUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		wantTag     string
		wantChoices int
	}{
		{
			name:        "choice list",
			document:    `{"categories":[{"name":"c","products":[{"id":"p","options":{"size":["S","M","L"]}}]}]}`,
			wantChoices: 3,
		},
		{
			name:     "scent tag",
			document: `{"categories":[{"name":"c","products":[{"id":"p","options":{"scent":"spiritual"}}]}]}`,
			wantTag:  "spiritual",
		},
		{
			name:     "unexpected value shape decodes as absent",
			document: `{"categories":[{"name":"c","products":[{"id":"p","options":{"size":42}}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Parse([]byte(tt.document))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			product := cat.Categories[0].Products[0]
			var values OptionValues
			for _, v := range product.Options {
				values = v
			}
			if values.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", values.Tag, tt.wantTag)
			}
			if len(values.Choices) != tt.wantChoices {
				t.Errorf("Choices = %d, want %d", len(values.Choices), tt.wantChoices)
			}
		})
	}
}

func TestProductPriceHelpers(t *testing.T) {
	price := 12.5
	with := Product{ID: "c1", Price: &price}
	without := Product{ID: "c2"}

	if !with.HasPrice() {
		t.Error("HasPrice() = false for priced product")
	}
	if with.PriceValue() != 12.5 {
		t.Errorf("PriceValue() = %v, want 12.5", with.PriceValue())
	}
	if without.HasPrice() {
		t.Error("HasPrice() = true for contact-for-price product")
	}
	if without.PriceValue() != 0 {
		t.Errorf("PriceValue() = %v, want 0", without.PriceValue())
	}
}
