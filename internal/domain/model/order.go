package model

import "time"

// OrderLine is a snapshot of a cart line taken at purchase time.
type OrderLine struct {
	ID           int64
	ProductID    int64
	Kind         ProductKind
	Name         string
	Quantity     int
	UnitPrice    float64
	SafeCurrency bool
}

// Order is a finalized purchase. Status progression is server-authoritative;
// clients only observe it and trigger confirmations.
type Order struct {
	ID          int64
	PublicID    string
	UserID      int64
	StatusID    int64
	Status      *OrderStatus
	Confirmed   bool
	ConfirmedAt *time.Time
	TimerEndsAt *time.Time
	Lines       []OrderLine
	Total       float64
	CurrencyID  int64
	CouponID    *int64
	RiotName    string
	DiscordName string
	Region      string
	Payment     string
	ReceiptFile string
	Viewed      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimerRunning reports whether a confirmation countdown is still active.
func (o Order) TimerRunning(now time.Time) bool {
	return o.TimerEndsAt != nil && o.TimerEndsAt.After(now)
}

// Redeem is a loyalty-point redemption. It shares the order status
// lifecycle (confirmation, timers) but carries no payment data.
type Redeem struct {
	ID          int64
	PublicID    string
	UserID      int64
	CouponID    int64
	StatusID    int64
	Status      *OrderStatus
	Confirmed   bool
	ConfirmedAt *time.Time
	TimerEndsAt *time.Time
	PointsSpent float64
	Viewed      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
