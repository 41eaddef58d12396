package catalogue

// Scent choice tables keyed by the tag a product may carry in its "scent"
// option. These are the canonical lists; earlier storefront variants shipped
// slightly different copies, this package is the single source now.

var spiritualScents = []string{
	"White Sage",
	"Palo Santo",
	"Frankincense",
	"Myrrh",
	"Sandalwood",
	"Dragon's Blood",
	"Nag Champa",
	"Patchouli",
	"Cedarwood",
	"Sweetgrass",
	"Copal",
	"Juniper",
	"Lotus Blossom",
	"Amber Resin",
	"Vetiver",
	"Rosemary Clearing",
	"Lavender Calm",
}

var generalScents = []string{
	"Vanilla Bean",
	"Warm Amber",
	"Fresh Linen",
	"Sea Salt & Driftwood",
	"Cinnamon Spice",
	"Apple Orchard",
	"Pumpkin Chai",
	"Lemon Verbena",
	"Coconut Milk",
	"Honeysuckle",
	"Gardenia",
	"Rose Petal",
	"Peony & Suede",
	"Black Cherry",
	"Espresso Bar",
	"Toasted Marshmallow",
	"Eucalyptus Mint",
	"Ocean Breeze",
	"Midnight Jasmine",
	"Cranberry Fir",
	"Birchwood Vanilla",
}

// resolveScentTag maps a scent category tag to its concrete choice list.
// Unknown tags resolve to nil so the option stays absent.
func resolveScentTag(tag string) []string {
	switch tag {
	case "spiritual":
		return spiritualScents
	case "general":
		return generalScents
	default:
		return nil
	}
}
