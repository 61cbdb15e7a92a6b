// Package main implements a standalone generator that writes a synthetic
// product catalog as JSON, suitable for the CATALOG_PATH setting. Output is
// deterministic for a given seed so re-runs produce the same catalog.
//
// Run: go run ./scripts/gencatalog -count 500 -out catalog.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/utafrali/storefront/internal/domain"
)

var adjectives = []string{
	"Aurora", "Nimbus", "Meridian", "Trailhead", "Hearthstone",
	"Lumen", "Sierra", "Orbit", "Windlass", "Voltix",
	"Cascade", "Juniper", "Atlas", "Harbor", "Solstice",
}

var nounsByCategory = map[string][]string{
	domain.CategoryElectronics: {"Headphones", "Charger", "Monitor", "Keyboard", "Webcam", "Speaker", "Router"},
	domain.CategoryBooks:       {"Novel", "Cookbook", "Field Guide", "Anthology", "Biography", "Atlas"},
	domain.CategoryClothing:    {"Sweater", "Jacket", "T-Shirt", "Scarf", "Raincoat", "Beanie"},
	domain.CategoryHome:        {"Dutch Oven", "Desk Lamp", "Throw Blanket", "Cutting Board", "Kettle", "Planter"},
	domain.CategoryToys:        {"Building Set", "Model Kit", "Puzzle", "Plush Bear", "Marble Run"},
}

var features = []string{
	"Machine washable", "USB-C fast charge", "Recycled materials",
	"Two-year warranty", "Compact design", "Illustrated instructions",
	"Dishwasher safe", "Travel friendly",
}

func generate(rng *rand.Rand, count int) []domain.Product {
	products := make([]domain.Product, 0, count)
	categories := domain.Categories()

	for i := 0; i < count; i++ {
		category := categories[i%len(categories)]
		nouns := nounsByCategory[category]
		title := fmt.Sprintf("%s %s", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))])

		price := float64(rng.Intn(39000)+500) / 100
		var original float64
		if rng.Intn(3) == 0 {
			original = price * (1.1 + rng.Float64()*0.5)
			original = float64(int(original*100)) / 100
		}

		id := fmt.Sprintf("gen-%04d", i+1)
		products = append(products, domain.Product{
			ID:            id,
			Title:         title,
			Price:         price,
			OriginalPrice: original,
			Rating:        float64(rng.Intn(21)+30) / 10,
			Reviews:       rng.Intn(15000),
			Images:        []string{fmt.Sprintf("/images/%s-1.jpg", id)},
			Category:      category,
			Prime:         rng.Intn(4) != 0,
			InStock:       rng.Intn(10) != 0,
			Description:   fmt.Sprintf("%s in the %s category.", title, category),
			Features:      []string{features[rng.Intn(len(features))], features[rng.Intn(len(features))]},
		})
	}

	return products
}

func main() {
	count := flag.Int("count", 500, "number of products to generate")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "catalog.json", "output file path")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	products := generate(rng, *count)

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatalf("marshal catalog: %v", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write catalog: %v", err)
	}

	log.Printf("wrote %d products to %s", len(products), *out)
}
