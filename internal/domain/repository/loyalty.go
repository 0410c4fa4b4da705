package repository

import (
	"context"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// LoyaltyRepository manages the loyalty points ledger.
type LoyaltyRepository interface {
	GetSummary(ctx context.Context, userID int64) (*model.LoyaltySummary, error)
	AddPoints(ctx context.Context, userID int64, orderID *int64, points float64, description string) error
	SpendPoints(ctx context.Context, userID int64, points float64, description string) error
	History(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error)
}
