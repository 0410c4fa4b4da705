package model

import "time"

// LoyaltySummary aggregates earned and spent loyalty points.
type LoyaltySummary struct {
	Current float64
	Spent   float64
}

// LoyaltyEntry is one movement in the loyalty points ledger.
type LoyaltyEntry struct {
	ID          int64
	UserID      int64
	OrderID     *int64
	Points      float64
	Description string
	CreatedAt   time.Time
}
