package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

const (
	// Configuration
	numCandleSubcategories = 3
	numProductsPerBucket   = 6
	numCharms              = 8
)

type product struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Price       *float64               `json:"price,omitempty"`
	Images      []string               `json:"images,omitempty"`
	Description string                 `json:"description,omitempty"`
	PaymentLink string                 `json:"paymentLink,omitempty"`
	Options     map[string]interface{} `json:"options,omitempty"`
}

type subcategory struct {
	Name     string    `json:"name"`
	Banner   string    `json:"banner,omitempty"`
	Products []product `json:"products"`
}

type category struct {
	Name          string        `json:"name"`
	Banner        string        `json:"banner,omitempty"`
	Subcategories []subcategory `json:"subcategories,omitempty"`
	Products      []product     `json:"products,omitempty"`
}

type catalogue struct {
	Categories []category `json:"categories"`
}

var candleLines = []string{"Jar Candles", "Pillar Candles", "Tealights", "Votives", "Wax Melts"}

var charmThemes = []string{"Moon", "Star", "Rose", "Feather", "Crystal", "Leaf", "Heart", "Sun"}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	outPath := os.Getenv("CATALOGUE_OUT")
	if outPath == "" {
		outPath = "./config/catalogue.json"
	}

	fmt.Println("🌱 Generating catalogue...")

	cat := catalogue{
		Categories: []category{
			buildCandles(),
			buildCharms(),
			buildGiftSets(),
		},
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal catalogue: %v", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}

	total := 0
	for _, c := range cat.Categories {
		total += len(c.Products)
		for _, s := range c.Subcategories {
			total += len(s.Products)
		}
	}

	fmt.Printf("✓ Wrote %d products across %d categories to %s\n", total, len(cat.Categories), outPath)
	fmt.Println("✅ Done!")
}

func buildCandles() category {
	lines := candleLines[:numCandleSubcategories]
	subs := make([]subcategory, 0, len(lines))
	for _, line := range lines {
		products := make([]product, 0, numProductsPerBucket)
		for i := 0; i < numProductsPerBucket; i++ {
			products = append(products, candleProduct(line))
		}
		subs = append(subs, subcategory{
			Name:     line,
			Banner:   fmt.Sprintf("/images/banners/%s.jpg", gofakeit.Word()),
			Products: products,
		})
	}
	return category{
		Name:          "Candles",
		Banner:        "/images/banners/candles.jpg",
		Subcategories: subs,
	}
}

func candleProduct(line string) product {
	scentTable := "general scents"
	if rand.Intn(3) == 0 {
		scentTable = "spiritual scents"
	}
	price := roundPrice(gofakeit.Float64Range(8, 45))
	name := fmt.Sprintf("%s %s Candle", gofakeit.AdjectiveDescriptive(), gofakeit.NounConcrete())
	return product{
		ID:          uuid.NewString(),
		Name:        name,
		Price:       &price,
		Images:      []string{fmt.Sprintf("/images/products/%s.jpg", uuid.NewString())},
		Description: gofakeit.Sentence(12),
		Options: map[string]interface{}{
			"scent": scentTable,
			"size":  []string{"4 oz", "8 oz", "16 oz"},
		},
	}
}

func buildCharms() category {
	products := make([]product, 0, numCharms)
	for i := 0; i < numCharms && i < len(charmThemes); i++ {
		price := roundPrice(gofakeit.Float64Range(4, 18))
		products = append(products, product{
			ID:          uuid.NewString(),
			Name:        fmt.Sprintf("%s Charm", charmThemes[i]),
			Price:       &price,
			Images:      []string{fmt.Sprintf("/images/products/%s.jpg", uuid.NewString())},
			Description: gofakeit.Sentence(10),
			PaymentLink: fmt.Sprintf("https://www.paypal.com/ncp/payment/%s", gofakeit.LetterN(13)),
		})
	}
	return category{
		Name:     "Charms",
		Banner:   "/images/banners/charms.jpg",
		Products: products,
	}
}

func buildGiftSets() category {
	// One priced set and one bespoke entry without a price, so the
	// storefront's contact-for-price path has real data to render.
	price := roundPrice(gofakeit.Float64Range(30, 80))
	return category{
		Name:   "Gift Sets",
		Banner: "/images/banners/gift-sets.jpg",
		Products: []product{
			{
				ID:          uuid.NewString(),
				Name:        "Candle & Charm Duo",
				Price:       &price,
				Description: gofakeit.Sentence(14),
				Options: map[string]interface{}{
					"scent": "general scents",
				},
			},
			{
				ID:          uuid.NewString(),
				Name:        "Bespoke Gift Box",
				Description: "Custom arrangements made to order.",
			},
		},
	}
}

func roundPrice(v float64) float64 {
	return float64(int(v)) + 0.5
}
