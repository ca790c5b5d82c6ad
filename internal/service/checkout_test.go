package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/cart"
	"github.com/qmexai/storefront-client/internal/entity"
)

// checkoutServer serves a catalog and accepts checkouts, counting requests.
type checkoutServer struct {
	*httptest.Server
	products  []entity.Product
	requests  atomic.Int64
	checkouts atomic.Int64
}

func newCheckoutServer(t *testing.T, products []entity.Product) *checkoutServer {
	t.Helper()
	cs := &checkoutServer{products: products}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.requests.Add(1)
		switch r.URL.Path {
		case "/products/":
			json.NewEncoder(w).Encode(cs.products)
		case "/orders/checkout":
			cs.checkouts.Add(1)
			var req entity.CheckoutRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			var total float64
			for _, item := range req.Items {
				for _, p := range cs.products {
					if p.ID == item.ProductID {
						total += p.DiscountPrice * float64(item.Quantity)
					}
				}
			}
			json.NewEncoder(w).Encode(entity.Order{
				ID:              1,
				Status:          entity.StatusPending,
				TotalAmount:     total,
				ShippingAddress: req.ShippingAddress,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(cs.Close)
	return cs
}

func testProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Jacket", Category: entity.CategoryMen, MRP: 250, DiscountPrice: 250},
		{ID: 2, Name: "Dress", Category: entity.CategoryWomen, MRP: 120, DiscountPrice: 99.99},
	}
}

func newCheckoutFixture(t *testing.T, products []entity.Product) (*CheckoutService, *cart.Ledger, *checkoutServer) {
	t.Helper()
	srv := newCheckoutServer(t, products)
	ledger := cart.NewLedger(cart.NewFileStore(t.TempDir()))
	svc := NewCheckoutService(api.NewClient(srv.URL, func() string { return "tok" }), ledger)
	return svc, ledger, srv
}

func TestSubmitHappyPath(t *testing.T) {
	products := testProducts()
	svc, ledger, srv := newCheckoutFixture(t, products)

	ledger.AddItem(products[0], 2)
	ledger.AddItem(products[1], 1)

	order, err := svc.Submit(context.Background(), "42 Main St")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, order.Status)
	assert.InDelta(t, 599.99, order.TotalAmount, 1e-9)
	assert.True(t, ledger.IsEmpty(), "cart cleared after accepted submission")
	assert.Equal(t, int64(1), srv.checkouts.Load())
}

func TestSubmitRejectsEmptyCartBeforeNetwork(t *testing.T) {
	svc, _, srv := newCheckoutFixture(t, testProducts())

	_, err := svc.Submit(context.Background(), "42 Main St")

	var vErr *api.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items", vErr.Field)
	assert.Zero(t, srv.requests.Load(), "no network call for an empty cart")
}

func TestSubmitRequiresShippingAddress(t *testing.T) {
	products := testProducts()
	svc, ledger, srv := newCheckoutFixture(t, products)
	ledger.AddItem(products[0], 1)

	_, err := svc.Submit(context.Background(), "   ")

	var vErr *api.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "shipping_address", vErr.Field)
	assert.Zero(t, srv.requests.Load())
}

func TestSubmitSurfacesPriceDrift(t *testing.T) {
	products := testProducts()
	svc, ledger, srv := newCheckoutFixture(t, products)

	ledger.AddItem(products[0], 1)

	// The server reprices the jacket after it went into the cart.
	srv.products[0].DiscountPrice = 199

	_, err := svc.Submit(context.Background(), "42 Main St")

	var drift *PriceDriftError
	require.ErrorAs(t, err, &drift)
	require.Len(t, drift.Drifts, 1)
	assert.Equal(t, int64(1), drift.Drifts[0].ProductID)
	assert.Equal(t, 250.0, drift.Drifts[0].CartPrice)
	assert.Equal(t, 199.0, drift.Drifts[0].CurrentPrice)

	assert.Zero(t, srv.checkouts.Load(), "drift blocks the submission")
	assert.False(t, ledger.IsEmpty(), "cart untouched on a blocked submission")
}

func TestRefreshPricesAcceptsDrift(t *testing.T) {
	products := testProducts()
	svc, ledger, srv := newCheckoutFixture(t, products)

	ledger.AddItem(products[0], 1)
	srv.products[0].DiscountPrice = 199

	require.NoError(t, svc.RefreshPrices(context.Background()))
	assert.Equal(t, 199.0, ledger.Lines()[0].UnitPrice)

	order, err := svc.Submit(context.Background(), "42 Main St")
	require.NoError(t, err)
	assert.InDelta(t, 199, order.TotalAmount, 1e-9)
}

func TestSubmitInFlightGuard(t *testing.T) {
	products := testProducts()
	svc, ledger, _ := newCheckoutFixture(t, products)
	ledger.AddItem(products[0], 1)

	// Simulate a submission that is still pending.
	svc.submitting = true
	_, err := svc.Submit(context.Background(), "42 Main St")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// Once the first attempt settles, submitting works again.
	svc.submitting = false
	_, err = svc.Submit(context.Background(), "42 Main St")
	assert.NoError(t, err)
}

func TestSubmitAbandonsOnNetworkError(t *testing.T) {
	products := testProducts()
	srv := newCheckoutServer(t, products)
	ledger := cart.NewLedger(cart.NewFileStore(t.TempDir()))
	svc := NewCheckoutService(api.NewClient(srv.URL, nil), ledger)

	ledger.AddItem(products[0], 1)
	srv.Close()

	_, err := svc.Submit(context.Background(), "42 Main St")

	var netErr *api.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, ledger.IsEmpty(), "no partial state committed on transport failure")
	assert.False(t, svc.submitting, "guard released after failure")
}
