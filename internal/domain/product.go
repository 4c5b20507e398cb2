package domain

import "math"

// gramsPerUnit is the weight the base price is quoted for.
const gramsPerUnit = 5

// Product is a catalog entry. Products are immutable once the catalog is loaded.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Audience  string `json:"audience"`
	Type      string `json:"type"`
	Metal     string `json:"metal"`
	Grams     []int  `json:"grams"`
	BasePrice int64  `json:"base_price"`
	Image     string `json:"image,omitempty"`
}

// PriceFor returns the rupee price for the given weight.
func (p Product) PriceFor(grams int) int64 {
	return int64(math.Round(float64(p.BasePrice) * float64(grams) / gramsPerUnit))
}

// WeightRange returns the lightest and heaviest offered weights.
func (p Product) WeightRange() (minGrams, maxGrams int) {
	for i, g := range p.Grams {
		if i == 0 || g < minGrams {
			minGrams = g
		}
		if g > maxGrams {
			maxGrams = g
		}
	}
	return minGrams, maxGrams
}
