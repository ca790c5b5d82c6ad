package service

import (
	"context"
	"log/slog"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/entity"
)

// FulfillmentService is the admin view of orders. It remembers the furthest
// status seen per order so a stale server response can never render an order
// as having moved backwards through the lifecycle.
type FulfillmentService struct {
	client *api.Client
	seen   map[int64]entity.OrderStatus
}

func NewFulfillmentService(client *api.Client) *FulfillmentService {
	return &FulfillmentService{
		client: client,
		seen:   make(map[int64]entity.OrderStatus),
	}
}

// ListOrders returns all orders for the fulfillment dashboard.
func (s *FulfillmentService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.client.AdminOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Status = s.merge(orders[i].ID, orders[i].Status)
	}
	return orders, nil
}

// ViewOrder fetches an order's detail view. On the server, opening a Pending
// order advances it to Processing as a side effect of this read; callers who
// want the transition spelled out should use AdvanceToProcessing instead.
func (s *FulfillmentService) ViewOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := s.client.AdminOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = s.merge(order.ID, order.Status)
	return order, nil
}

// AdvanceToProcessing moves a Pending order to Processing and returns the
// resulting status. Re-running it on an order that is already Processing or
// later leaves the status where it is. The transition rides on the detail
// fetch because that is the operation the server couples it to.
func (s *FulfillmentService) AdvanceToProcessing(ctx context.Context, id int64) (entity.OrderStatus, error) {
	order, err := s.ViewOrder(ctx, id)
	if err != nil {
		return "", err
	}
	slog.Info("Service: Order status after advance", "order_id", id, "status", order.Status)
	return order.Status, nil
}

// Stats fetches the revenue aggregates for the dashboard.
func (s *FulfillmentService) Stats(ctx context.Context) (*entity.RevenueStats, error) {
	return s.client.Stats(ctx)
}

// merge reconciles a reported status with the furthest one already seen and
// records the winner.
func (s *FulfillmentService) merge(orderID int64, reported entity.OrderStatus) entity.OrderStatus {
	merged := entity.MergeStatus(s.seen[orderID], reported)
	s.seen[orderID] = merged
	return merged
}
