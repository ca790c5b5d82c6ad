package entity

import "fmt"

// OrderStatus is a fulfillment state reported by the server. The lifecycle is
// linear: Pending → Processing → Packed → Shipped. The client originates only
// the Pending→Processing transition (admin detail view); Packed and Shipped
// come from the server alone.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusPacked     OrderStatus = "Packed"
	StatusShipped    OrderStatus = "Shipped"
)

// StatusCount is the number of steps in the fulfillment lifecycle.
const StatusCount = 4

// ParseOrderStatus maps a server-reported status label to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusPacked, StatusShipped:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Ordinal returns the 1-based position of the status in the lifecycle, or 0
// for an unknown status.
func (s OrderStatus) Ordinal() int {
	switch s {
	case StatusPending:
		return 1
	case StatusProcessing:
		return 2
	case StatusPacked:
		return 3
	case StatusShipped:
		return 4
	}
	return 0
}

// Valid reports whether the status is one of the four lifecycle states.
func (s OrderStatus) Valid() bool {
	return s.Ordinal() != 0
}

// StepReached reports whether progress step k (1-based) is complete for this
// status. Progress is cumulative: a Shipped order has reached every step.
func (s OrderStatus) StepReached(k int) bool {
	if k < 1 || k > StatusCount {
		return false
	}
	return s.Ordinal() >= k
}

// MergeStatus reconciles a locally known status with a freshly reported one
// without ever regressing: the later status in the lifecycle wins. Unknown
// statuses lose to known ones.
func MergeStatus(known, reported OrderStatus) OrderStatus {
	if reported.Ordinal() > known.Ordinal() {
		return reported
	}
	return known
}
