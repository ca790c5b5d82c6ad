// Package pricing derives the authoritative sale price of a product from its
// MRP, discount percentage and optional manual override. Product creation,
// product edit and bulk discounting all price through this package so the
// three call sites can never drift apart.
package pricing

// Resolve returns the sale price for the given inputs. Rules, first match wins:
//
//  1. A non-zero manual price is used verbatim.
//  2. A positive discount percentage yields mrp − mrp×(pct/100).
//  3. Otherwise the sale price is the MRP.
//
// The caller clamps pct to [0,100] and rejects negative MRPs before calling;
// Resolve itself does not validate.
func Resolve(mrp, pct, manual float64) float64 {
	if manual != 0 {
		return manual
	}
	if pct > 0 {
		return mrp - mrp*(pct/100)
	}
	return mrp
}

// ClampPercentage bounds a discount percentage to [0,100]. Callers run this
// on user input before handing the value to Resolve.
func ClampPercentage(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
