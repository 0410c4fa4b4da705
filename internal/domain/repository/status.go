package repository

import (
	"context"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// StatusRepository provides the admin-defined order status catalog.
type StatusRepository interface {
	List(ctx context.Context) ([]model.OrderStatus, error)
	GetByID(ctx context.Context, id int64) (*model.OrderStatus, error)
	GetDefault(ctx context.Context) (*model.OrderStatus, error)
}
