package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/cart"
	"github.com/qmexai/storefront-client/internal/entity"
	"github.com/qmexai/storefront-client/internal/pricing"
)

// ErrSubmissionInFlight is returned when a second checkout is attempted
// while one is still pending. There is no request deduplication downstream,
// so the double submit must be stopped here.
var ErrSubmissionInFlight = errors.New("checkout already in progress")

// PriceDrift records a cart line whose observed price no longer matches the
// server's current sale price.
type PriceDrift struct {
	ProductID    int64
	Name         string
	CartPrice    float64
	CurrentPrice float64
}

// PriceDriftError reports detected drift instead of guessing which price to
// trust. The caller refreshes the cart (or asks the user) and resubmits.
type PriceDriftError struct {
	Drifts []PriceDrift
}

func (e *PriceDriftError) Error() string {
	names := make([]string, 0, len(e.Drifts))
	for _, d := range e.Drifts {
		names = append(names, d.Name)
	}
	return fmt.Sprintf("prices changed since added to cart: %s", strings.Join(names, ", "))
}

// CheckoutService turns the cart into an order submission.
type CheckoutService struct {
	client *api.Client
	ledger *cart.Ledger

	// submitting guards against a double submit. The cart is single-owner
	// single-threaded state, so a plain bool suffices.
	submitting bool
}

func NewCheckoutService(client *api.Client, ledger *cart.Ledger) *CheckoutService {
	return &CheckoutService{client: client, ledger: ledger}
}

// Submit validates the cart, checks for price drift against the live
// catalog, and submits the order. On success the cart is cleared exactly
// once. The returned order starts in Pending.
func (s *CheckoutService) Submit(ctx context.Context, shippingAddress string) (*entity.Order, error) {
	if s.submitting {
		return nil, ErrSubmissionInFlight
	}
	s.submitting = true
	defer func() { s.submitting = false }()

	if s.ledger.IsEmpty() {
		return nil, &api.ValidationError{Field: "items", Message: "cart is empty"}
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, &api.ValidationError{Field: "shipping_address", Message: "required"}
	}

	drifts, err := s.detectDrift(ctx)
	if err != nil {
		return nil, err
	}
	if len(drifts) > 0 {
		return nil, &PriceDriftError{Drifts: drifts}
	}

	submissionID := uuid.NewString()
	slog.Info("Service: Submitting checkout",
		"submission_id", submissionID,
		"lines", len(s.ledger.Lines()),
		"total", s.ledger.Total())

	order, err := s.client.Checkout(ctx, entity.CheckoutRequest{
		Items:           s.ledger.Items(),
		ShippingAddress: shippingAddress,
	})
	if err != nil {
		return nil, err
	}

	s.ledger.Clear()
	slog.Info("Service: Checkout accepted", "submission_id", submissionID, "order_id", order.ID)
	return order, nil
}

// RefreshPrices overwrites each cart line's observed price with the server's
// current sale price, accepting any drift.
func (s *CheckoutService) RefreshPrices(ctx context.Context) error {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return err
	}

	current := make(map[int64]float64, len(products))
	for _, p := range products {
		current[p.ID] = pricing.Resolve(p.MRP, p.DiscountPercentage, p.DiscountPrice)
	}

	for _, line := range s.ledger.Lines() {
		if price, ok := current[line.ProductID]; ok {
			s.ledger.UpdateUnitPrice(line.ProductID, price)
		}
	}
	return nil
}

// detectDrift compares each cart line's observed price with the live
// catalog. Lines whose product has disappeared are left for the server to
// reject with its own message.
func (s *CheckoutService) detectDrift(ctx context.Context) ([]PriceDrift, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	current := make(map[int64]float64, len(products))
	for _, p := range products {
		current[p.ID] = pricing.Resolve(p.MRP, p.DiscountPercentage, p.DiscountPrice)
	}

	var drifts []PriceDrift
	for _, line := range s.ledger.Lines() {
		price, ok := current[line.ProductID]
		if !ok {
			continue
		}
		if price != line.UnitPrice {
			drifts = append(drifts, PriceDrift{
				ProductID:    line.ProductID,
				Name:         line.Name,
				CartPrice:    line.UnitPrice,
				CurrentPrice: price,
			})
		}
	}
	return drifts, nil
}
