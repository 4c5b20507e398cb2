package dto

import "github.com/shri-jewellery/storefront/internal/domain"

// ProductResponse is a catalog entry with derived weight and price bounds.
type ProductResponse struct {
	domain.Product
	MinGrams int   `json:"min_grams"`
	MaxGrams int   `json:"max_grams"`
	MinPrice int64 `json:"min_price"`
	MaxPrice int64 `json:"max_price"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	lo, hi := p.WeightRange()
	return ProductResponse{
		Product:  p,
		MinGrams: lo,
		MaxGrams: hi,
		MinPrice: p.PriceFor(lo),
		MaxPrice: p.PriceFor(hi),
	}
}

// ImageResponse for GET /api/unsplash.
type ImageResponse struct {
	URL string `json:"url"`
}

// ChatRequest payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
