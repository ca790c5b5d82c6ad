// Package cart implements the client-side cart ledger: an insertion-ordered
// set of product lines keyed by product ID, persisted synchronously on every
// mutation.
package cart

import (
	"log/slog"

	"github.com/qmexai/storefront-client/internal/entity"
	"github.com/qmexai/storefront-client/internal/pricing"
)

// Line is one cart entry. UnitPrice is the sale price observed when the
// product was last added; the product itself may have been repriced on the
// server since, which checkout detects and surfaces.
type Line struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Ledger accumulates cart lines for a single profile. It is not safe for
// concurrent use: the cart has exactly one owner.
type Ledger struct {
	store Store
	lines []Line
	index map[int64]int

	// Open mirrors the storefront side-cart visibility: adding an item
	// flips it on. Display state only, never persisted.
	Open bool
}

// NewLedger creates an empty ledger backed by store.
func NewLedger(store Store) *Ledger {
	return &Ledger{
		store: store,
		index: make(map[int64]int),
	}
}

// Hydrate loads the persisted snapshot. A corrupt or unreadable snapshot is
// logged and discarded; a broken cart must never block browsing.
func (l *Ledger) Hydrate() {
	lines, err := l.store.Load()
	if err != nil {
		slog.Warn("Discarding unreadable cart snapshot", "err", err)
		l.reset()
		return
	}

	l.reset()
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, exists := l.index[line.ProductID]; exists {
			continue
		}
		l.index[line.ProductID] = len(l.lines)
		l.lines = append(l.lines, line)
	}
}

// AddItem adds qty units of the product. If the product is already in the
// cart its quantity is incremented rather than a second line appended. The
// line records the product's currently resolved sale price.
func (l *Ledger) AddItem(p entity.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	price := pricing.Resolve(p.MRP, p.DiscountPercentage, p.DiscountPrice)

	if i, exists := l.index[p.ID]; exists {
		l.lines[i].Quantity += qty
		l.lines[i].UnitPrice = price
		l.lines[i].Name = p.Name
	} else {
		l.index[p.ID] = len(l.lines)
		l.lines = append(l.lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: price,
			Quantity:  qty,
		})
	}

	l.Open = true
	l.persist()
}

// RemoveItem deletes the product's line. Removing an absent product is a no-op.
func (l *Ledger) RemoveItem(productID int64) {
	i, exists := l.index[productID]
	if !exists {
		return
	}

	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	delete(l.index, productID)
	for j := i; j < len(l.lines); j++ {
		l.index[l.lines[j].ProductID] = j
	}

	l.persist()
}

// SetQuantity overwrites the line's quantity. A quantity of zero or less
// removes the line: a line with quantity ≤ 0 must not exist.
func (l *Ledger) SetQuantity(productID int64, qty int) {
	if qty <= 0 {
		l.RemoveItem(productID)
		return
	}

	i, exists := l.index[productID]
	if !exists {
		return
	}
	l.lines[i].Quantity = qty
	l.persist()
}

// UpdateUnitPrice overwrites the observed unit price of a line, used when
// checkout re-fetches products and the caller accepts the current price.
func (l *Ledger) UpdateUnitPrice(productID int64, price float64) {
	i, exists := l.index[productID]
	if !exists {
		return
	}
	l.lines[i].UnitPrice = price
	l.persist()
}

// Clear empties the cart. Called once, after a checkout submission succeeds.
func (l *Ledger) Clear() {
	l.reset()
	l.persist()
}

// Total sums quantity × observed unit price over all lines. An empty cart
// totals zero.
func (l *Ledger) Total() float64 {
	var total float64
	for _, line := range l.lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

// Lines returns the cart lines in insertion order. The returned slice is a
// copy; mutating it does not touch the ledger.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// Items converts the cart into the normalized checkout item list.
func (l *Ledger) Items() []entity.CheckoutItem {
	items := make([]entity.CheckoutItem, 0, len(l.lines))
	for _, line := range l.lines {
		items = append(items, entity.CheckoutItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func (l *Ledger) reset() {
	l.lines = nil
	l.index = make(map[int64]int)
}

// persist synchronously writes the full line list. A failed write is logged
// and otherwise swallowed; the in-memory cart stays usable.
func (l *Ledger) persist() {
	if err := l.store.Save(l.lines); err != nil {
		slog.Warn("Failed to persist cart snapshot", "err", err)
	}
}
