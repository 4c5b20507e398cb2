package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shri-jewellery/storefront/internal/api/dto"
	"github.com/shri-jewellery/storefront/internal/service"
)

// CatalogHandler serves the product catalog.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalog}
}

// ListProducts GET /api/products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products := h.service.ListProducts(c.UserContext())
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	return c.JSON(items)
}

// GetProduct GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*p))
}
