// Package service orchestrates the storefront use cases on top of the API
// client, the cart ledger and the session.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/entity"
	"github.com/qmexai/storefront-client/internal/pricing"
)

// CatalogService handles product browsing and the admin product operations.
type CatalogService struct {
	client *api.Client
}

func NewCatalogService(client *api.Client) *CatalogService {
	return &CatalogService{client: client}
}

// ListProducts returns the catalog, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, category entity.Category) ([]entity.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}

	filtered := products[:0]
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProduct fetches a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return s.client.GetProduct(ctx, id)
}

// CreateProduct validates and submits a new product. The discount percentage
// is clamped and the sale price resolved before the payload leaves the
// client, with the server's response staying authoritative.
func (s *CatalogService) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if err := prepareProduct(p); err != nil {
		return nil, err
	}

	slog.Info("Service: Creating product", "name", p.Name, "category", p.Category)
	return s.client.CreateProduct(ctx, p)
}

// UpdateProduct validates and submits a full replace of a product's editable
// fields. The pricing preparation is identical to CreateProduct; the two
// paths must never diverge.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, p *entity.Product) (*entity.Product, error) {
	if err := prepareProduct(p); err != nil {
		return nil, err
	}

	slog.Info("Service: Updating product", "id", id, "name", p.Name)
	return s.client.UpdateProduct(ctx, id, p)
}

// ApplyBulkDiscount sets the discount percentage on every product in the
// category. The server applies it as one operation: whole success or error.
func (s *CatalogService) ApplyBulkDiscount(ctx context.Context, category entity.Category, pct float64) error {
	if !category.Valid() {
		return &api.ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", category)}
	}

	pct = pricing.ClampPercentage(pct)
	slog.Info("Service: Applying bulk discount", "category", category, "pct", pct)

	return s.client.BulkDiscount(ctx, entity.BulkDiscountRequest{
		Category:           category,
		DiscountPercentage: pct,
	})
}

// SeedProducts asks the server to seed demo data.
func (s *CatalogService) SeedProducts(ctx context.Context) error {
	return s.client.SeedProducts(ctx)
}

// PreviewBulkDiscount computes the post-discount state of a product set
// without touching the server. Products in the category get the percentage
// and a sale price recomputed from it, overwriting any manual override;
// other categories are untouched. Applying the same preview twice yields the
// same prices as applying it once.
func PreviewBulkDiscount(products []entity.Product, category entity.Category, pct float64) []entity.Product {
	pct = pricing.ClampPercentage(pct)

	out := make([]entity.Product, len(products))
	copy(out, products)
	for i := range out {
		if out[i].Category != category {
			continue
		}
		out[i].DiscountPercentage = pct
		// Manual override loses: bulk discount always reprices from MRP.
		out[i].DiscountPrice = pricing.Resolve(out[i].MRP, pct, 0)
	}
	return out
}

// prepareProduct validates the editable fields and derives the sale price.
// Validation failures surface before any network call.
func prepareProduct(p *entity.Product) error {
	if p.Name == "" {
		return &api.ValidationError{Field: "name", Message: "required"}
	}
	if p.Description == "" {
		return &api.ValidationError{Field: "description", Message: "required"}
	}
	if !p.Category.Valid() {
		return &api.ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", p.Category)}
	}
	if p.MRP < 0 {
		return &api.ValidationError{Field: "mrp", Message: "must not be negative"}
	}
	if p.DiscountPrice < 0 {
		return &api.ValidationError{Field: "discount_price", Message: "must not be negative"}
	}
	if len(p.Photos) != entity.PhotoCount {
		return &api.ValidationError{
			Field:   "photos",
			Message: fmt.Sprintf("exactly %d photos required, got %d", entity.PhotoCount, len(p.Photos)),
		}
	}
	if p.Stock < 0 {
		return &api.ValidationError{Field: "stock", Message: "must not be negative"}
	}
	if p.Rating < 0 || p.Rating > 5 {
		return &api.ValidationError{Field: "rating", Message: "must be between 0.0 and 5.0"}
	}

	p.DiscountPercentage = pricing.ClampPercentage(p.DiscountPercentage)
	p.DiscountPrice = pricing.Resolve(p.MRP, p.DiscountPercentage, p.DiscountPrice)
	return nil
}
