package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/entity"
)

func fourPhotos() []string {
	return []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}
}

func validProduct() *entity.Product {
	return &entity.Product{
		Name:        "Bomber Jacket",
		Description: "Premium leather jacket",
		Category:    entity.CategoryMen,
		MRP:         2999,
		Photos:      fourPhotos(),
		Stock:       50,
		Rating:      4.5,
	}
}

// echoServer decodes the submitted product and sends it back, recording it.
func echoServer(t *testing.T, got *entity.Product) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		json.NewEncoder(w).Encode(got)
	}))
}

func TestCreateProductResolvesSalePrice(t *testing.T) {
	var got entity.Product
	srv := echoServer(t, &got)
	defer srv.Close()

	svc := NewCatalogService(api.NewClient(srv.URL, nil))

	p := validProduct()
	p.DiscountPercentage = 20
	_, err := svc.CreateProduct(context.Background(), p)
	require.NoError(t, err)

	assert.InDelta(t, 2399.2, got.DiscountPrice, 1e-9, "sale price resolved before submission")
}

func TestUpdateProductManualOverrideWins(t *testing.T) {
	var got entity.Product
	srv := echoServer(t, &got)
	defer srv.Close()

	svc := NewCatalogService(api.NewClient(srv.URL, nil))

	p := validProduct()
	p.DiscountPercentage = 20
	p.DiscountPrice = 1999 // manual override
	_, err := svc.UpdateProduct(context.Background(), 7, p)
	require.NoError(t, err)

	assert.Equal(t, 1999.0, got.DiscountPrice, "manual price passes through verbatim")
}

func TestCreateProductClampsPercentage(t *testing.T) {
	var got entity.Product
	srv := echoServer(t, &got)
	defer srv.Close()

	svc := NewCatalogService(api.NewClient(srv.URL, nil))

	p := validProduct()
	p.DiscountPercentage = 150
	_, err := svc.CreateProduct(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.DiscountPercentage)
	assert.InDelta(t, 0.0, got.DiscountPrice, 1e-9)
}

func TestProductValidation(t *testing.T) {
	// No server: validation must reject before any network call.
	svc := NewCatalogService(api.NewClient("http://127.0.0.1:0", nil))

	tests := []struct {
		name   string
		modify func(p *entity.Product)
		field  string
	}{
		{"missing name", func(p *entity.Product) { p.Name = "" }, "name"},
		{"missing description", func(p *entity.Product) { p.Description = "" }, "description"},
		{"bad category", func(p *entity.Product) { p.Category = "Pets" }, "category"},
		{"negative mrp", func(p *entity.Product) { p.MRP = -1 }, "mrp"},
		{"negative sale price", func(p *entity.Product) { p.DiscountPrice = -5 }, "discount_price"},
		{"three photos", func(p *entity.Product) { p.Photos = p.Photos[:3] }, "photos"},
		{"five photos", func(p *entity.Product) { p.Photos = append(p.Photos, "e.jpg") }, "photos"},
		{"negative stock", func(p *entity.Product) { p.Stock = -1 }, "stock"},
		{"rating above five", func(p *entity.Product) { p.Rating = 5.1 }, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.modify(p)

			_, err := svc.CreateProduct(context.Background(), p)

			var vErr *api.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestPreviewBulkDiscount(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Category: entity.CategoryMen, MRP: 1000, DiscountPercentage: 0, DiscountPrice: 1000},
		{ID: 2, Category: entity.CategoryMen, MRP: 2000, DiscountPercentage: 5, DiscountPrice: 1500}, // manual override
		{ID: 3, Category: entity.CategoryWomen, MRP: 3000, DiscountPercentage: 10, DiscountPrice: 2700},
	}

	out := PreviewBulkDiscount(products, entity.CategoryMen, 20)

	assert.InDelta(t, 800, out[0].DiscountPrice, 1e-9)
	assert.Equal(t, 20.0, out[0].DiscountPercentage)

	// Bulk discount wins over the previously manually-set price.
	assert.InDelta(t, 1600, out[1].DiscountPrice, 1e-9)

	// Non-matching category untouched.
	assert.Equal(t, products[2], out[2])

	// Input slice untouched.
	assert.Equal(t, 1500.0, products[1].DiscountPrice)
}

func TestPreviewBulkDiscountIsIdempotent(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Category: entity.CategoryKids, MRP: 999, DiscountPrice: 500},
	}

	once := PreviewBulkDiscount(products, entity.CategoryKids, 15)
	twice := PreviewBulkDiscount(once, entity.CategoryKids, 15)

	assert.Equal(t, once, twice)
}

func TestApplyBulkDiscountRejectsUnknownCategory(t *testing.T) {
	svc := NewCatalogService(api.NewClient("http://127.0.0.1:0", nil))

	err := svc.ApplyBulkDiscount(context.Background(), "Pets", 10)

	var vErr *api.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
}

func TestListProductsFiltersByCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]entity.Product{
			{ID: 1, Category: entity.CategoryMen},
			{ID: 2, Category: entity.CategoryWomen},
			{ID: 3, Category: entity.CategoryMen},
		})
	}))
	defer srv.Close()

	svc := NewCatalogService(api.NewClient(srv.URL, nil))

	all, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	men, err := svc.ListProducts(context.Background(), entity.CategoryMen)
	require.NoError(t, err)
	require.Len(t, men, 2)
	assert.Equal(t, int64(1), men[0].ID)
	assert.Equal(t, int64(3), men[1].ID)
}
