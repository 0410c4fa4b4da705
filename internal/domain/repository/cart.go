package repository

import (
	"context"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// CartRepository persists per-user carts.
type CartRepository interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.Cart, error)
	SetQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error)
	SetSelections(ctx context.Context, userID int64, selections map[int64]int) error
	SetCurrency(ctx context.Context, userID, currencyID int64) error
	Clear(ctx context.Context, userID int64) error
}
