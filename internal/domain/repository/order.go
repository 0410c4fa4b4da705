package repository

import (
	"context"
	"time"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// OrderUpdate carries the confirmable-state fields written on confirmation.
type OrderUpdate struct {
	StatusID    *int64
	Confirmed   *bool
	ConfirmedAt *time.Time
	TimerEndsAt *time.Time
	ClearTimer  bool
	Viewed      *bool
}

// OrderRepository describes persistence operations with purchase orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByPublicID(ctx context.Context, userID int64, publicID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	Update(ctx context.Context, orderID int64, update OrderUpdate) (*model.Order, error)
	MarkViewed(ctx context.Context, userID int64, publicID string) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
	SelectExpiredTimers(ctx context.Context, now time.Time, limit int) ([]model.Order, error)
}

// RedeemRepository describes persistence operations with reward redemptions.
type RedeemRepository interface {
	Create(ctx context.Context, redeem model.Redeem) (*model.Redeem, error)
	GetByPublicID(ctx context.Context, userID int64, publicID string) (*model.Redeem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Redeem, error)
	Update(ctx context.Context, redeemID int64, update OrderUpdate) (*model.Redeem, error)
}
