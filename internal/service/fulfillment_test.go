package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/entity"
)

// fulfillmentServer mimics the collaborator: viewing a Pending order's
// detail flips it to Processing.
type fulfillmentServer struct {
	*httptest.Server
	orders map[int64]*entity.Order
}

func newFulfillmentServer(t *testing.T) *fulfillmentServer {
	t.Helper()
	fs := &fulfillmentServer{
		orders: map[int64]*entity.Order{
			1: {ID: 1, Status: entity.StatusPending, TotalAmount: 100},
			2: {ID: 2, Status: entity.StatusShipped, TotalAmount: 250},
		},
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/orders":
			var list []entity.Order
			for _, o := range fs.orders {
				list = append(list, *o)
			}
			json.NewEncoder(w).Encode(list)
		case "/admin/orders/1", "/admin/orders/2":
			var id int64
			fmt.Sscanf(r.URL.Path, "/admin/orders/%d", &id)
			order := fs.orders[id]
			if order.Status == entity.StatusPending {
				order.Status = entity.StatusProcessing
			}
			json.NewEncoder(w).Encode(order)
		case "/admin/stats":
			json.NewEncoder(w).Encode(entity.RevenueStats{
				TotalSales: 350, OrderCount: 2,
				StatusCounts: map[string]int{"Pending": 1, "Shipped": 1},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func TestViewOrderAdvancesPendingToProcessing(t *testing.T) {
	srv := newFulfillmentServer(t)
	svc := NewFulfillmentService(api.NewClient(srv.URL, func() string { return "tok" }))

	order, err := svc.ViewOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProcessing, order.Status)
}

func TestViewOrderIsMonotonic(t *testing.T) {
	srv := newFulfillmentServer(t)
	svc := NewFulfillmentService(api.NewClient(srv.URL, func() string { return "tok" }))

	first, err := svc.ViewOrder(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, entity.StatusProcessing, first.Status)

	// A buggy collaborator regresses the record; the client must not render it.
	srv.orders[1].Status = entity.StatusPending
	again, err := svc.ViewOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProcessing, again.Status, "status never regresses once reached")
}

func TestAdvanceToProcessingIsIdempotent(t *testing.T) {
	srv := newFulfillmentServer(t)
	svc := NewFulfillmentService(api.NewClient(srv.URL, func() string { return "tok" }))

	status, err := svc.AdvanceToProcessing(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProcessing, status)

	status, err = svc.AdvanceToProcessing(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProcessing, status)

	// An order beyond Processing is left where it is.
	status, err = svc.AdvanceToProcessing(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShipped, status)
}

func TestListOrdersMergesKnownStatuses(t *testing.T) {
	srv := newFulfillmentServer(t)
	svc := NewFulfillmentService(api.NewClient(srv.URL, func() string { return "tok" }))

	// Detail view advances order 1; a later stale list must still show it advanced.
	_, err := svc.ViewOrder(context.Background(), 1)
	require.NoError(t, err)
	srv.orders[1].Status = entity.StatusPending

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)

	byID := make(map[int64]entity.OrderStatus)
	for _, o := range orders {
		byID[o.ID] = o.Status
	}
	assert.Equal(t, entity.StatusProcessing, byID[1])
	assert.Equal(t, entity.StatusShipped, byID[2])
}

func TestStats(t *testing.T) {
	srv := newFulfillmentServer(t)
	svc := NewFulfillmentService(api.NewClient(srv.URL, func() string { return "tok" }))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 350.0, stats.TotalSales)
	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, 1, stats.StatusCounts["Shipped"])
}
