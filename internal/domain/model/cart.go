package model

// CartLine is one purchasable unit inside a user's cart. Lines merge on
// (ProductID, SafeCurrency); two lines for the same product may coexist
// when they differ in sourcing tier.
type CartLine struct {
	ID                int64
	ProductID         int64
	Kind              ProductKind
	Name              string
	TierRP            int64
	Quantity          int
	UnitPrice         float64
	SafeCurrency      bool
	SelectedForCoupon int
}

// Subtotal returns the undiscounted line total.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// ClampSelection forces SelectedForCoupon into [0, Quantity].
func (l *CartLine) ClampSelection() {
	if l.SelectedForCoupon < 0 {
		l.SelectedForCoupon = 0
	}
	if l.SelectedForCoupon > l.Quantity {
		l.SelectedForCoupon = l.Quantity
	}
}

// Cart aggregates the user's lines in display order.
type Cart struct {
	UserID     int64
	CurrencyID int64
	Lines      []CartLine
}

// Subtotal sums undiscounted line totals.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// SelectedUnits sums coupon-selected units across all lines.
func (c Cart) SelectedUnits() int {
	var total int
	for _, l := range c.Lines {
		total += l.SelectedForCoupon
	}
	return total
}
