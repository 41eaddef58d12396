package catalogue

import (
	"encoding/json"
	"fmt"
)

// Catalogue is the full product listing document for one storefront. It is
// loaded fresh on every refresh and never mutated afterwards.
type Catalogue struct {
	Categories []Category `json:"categories"`
}

type Category struct {
	Name          string        `json:"name"`
	Banner        string        `json:"banner,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
	Products      []Product     `json:"products,omitempty"`
}

type Subcategory struct {
	Name     string    `json:"name"`
	Products []Product `json:"products,omitempty"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price,omitempty"` // nil means "contact for price"
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	PaymentLink string   `json:"paymentLink,omitempty"`
	Options     Options  `json:"options,omitempty"`
}

// HasPrice reports whether the product carries a displayable price.
func (p Product) HasPrice() bool {
	return p.Price != nil && *p.Price >= 0
}

// PriceValue returns the product price, or 0 when none is set.
func (p Product) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Options maps an option name to its choice list. In the source documents the
// "scent" option may hold a bare category tag ("spiritual" | "general")
// instead of a list; OptionValues accepts both forms.
type Options map[string]OptionValues

// OptionValues is either a concrete list of choices or an unresolved tag that
// the index resolves against the scent tables at build time.
type OptionValues struct {
	Choices []string
	Tag     string
}

func (v *OptionValues) UnmarshalJSON(data []byte) error {
	var choices []string
	if err := json.Unmarshal(data, &choices); err == nil {
		v.Choices = choices
		v.Tag = ""
		return nil
	}

	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		v.Choices = nil
		v.Tag = tag
		return nil
	}

	// Anything else (number, object, null) is treated as an absent option
	// rather than a malformed document.
	v.Choices = nil
	v.Tag = ""
	return nil
}

func (v OptionValues) MarshalJSON() ([]byte, error) {
	if v.Tag != "" {
		return json.Marshal(v.Tag)
	}
	return json.Marshal(v.Choices)
}

// Parse decodes a catalogue document. Missing optional fields (subcategories,
// products, images, options) decode as empty; only a document that is not
// valid JSON at all is an error.
func Parse(data []byte) (*Catalogue, error) {
	var cat Catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue document: %w", err)
	}
	return &cat, nil
}
