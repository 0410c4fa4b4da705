package usecase

import (
	"context"
	"time"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// StatusUseCase drives the order status confirmation workflow.
type StatusUseCase struct {
	statuses repository.StatusRepository
	orders   repository.OrderRepository
	redeems  repository.RedeemRepository
	now      func() time.Time
}

// NewStatusUseCase constructs StatusUseCase.
func NewStatusUseCase(statuses repository.StatusRepository, orders repository.OrderRepository, redeems repository.RedeemRepository) *StatusUseCase {
	return &StatusUseCase{statuses: statuses, orders: orders, redeems: redeems, now: time.Now}
}

// Catalog returns the admin-defined status list.
func (u *StatusUseCase) Catalog(ctx context.Context) ([]model.OrderStatus, error) {
	return u.statuses.List(ctx)
}

// ConfirmOrder applies the confirmation action of the order's status at
// confirmation time. Confirming twice is rejected, which also guards
// against double-submitted requests.
func (u *StatusUseCase) ConfirmOrder(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	order, err := u.orders.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	update, err := u.confirmationUpdate(ctx, order.StatusID, order.Confirmed)
	if err != nil {
		return nil, err
	}
	return u.orders.Update(ctx, order.ID, *update)
}

// ConfirmRedeem mirrors ConfirmOrder for loyalty redemptions.
func (u *StatusUseCase) ConfirmRedeem(ctx context.Context, userID int64, publicID string) (*model.Redeem, error) {
	redeem, err := u.redeems.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	update, err := u.confirmationUpdate(ctx, redeem.StatusID, redeem.Confirmed)
	if err != nil {
		return nil, err
	}
	return u.redeems.Update(ctx, redeem.ID, *update)
}

// confirmationUpdate computes the three-way state transition for a status.
func (u *StatusUseCase) confirmationUpdate(ctx context.Context, statusID int64, confirmed bool) (*repository.OrderUpdate, error) {
	status, err := u.statuses.GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if !status.RequiresConfirmation {
		return nil, domainErrors.ErrNotConfirmable
	}
	if confirmed {
		return nil, domainErrors.ErrAlreadyConfirmed
	}

	now := u.now()
	confirmedFlag := true

	switch status.Action.Kind {
	case model.ConfirmActionStartTimer:
		endsAt := now.Add(time.Duration(status.Action.DurationMinutes) * time.Minute)
		return &repository.OrderUpdate{Confirmed: &confirmedFlag, ConfirmedAt: &now, TimerEndsAt: &endsAt}, nil
	case model.ConfirmActionChangeStatus:
		// The target status starts a fresh confirmable state: confirmation
		// flags and any running timer are reset.
		notConfirmed := false
		return &repository.OrderUpdate{StatusID: &status.Action.TargetStatusID, Confirmed: &notConfirmed, ClearTimer: true}, nil
	default:
		return &repository.OrderUpdate{Confirmed: &confirmedFlag, ConfirmedAt: &now}, nil
	}
}

// MarkOrderViewed clears the unread flag on an order.
func (u *StatusUseCase) MarkOrderViewed(ctx context.Context, userID int64, publicID string) error {
	return u.orders.MarkViewed(ctx, userID, publicID)
}

// UnreadCount returns the number of orders with unseen status changes.
func (u *StatusUseCase) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return u.orders.UnreadCount(ctx, userID)
}
