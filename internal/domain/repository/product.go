package repository

import (
	"context"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Kind     *model.ProductKind
	TierRP   *int64
	Search   string
	Page     int
	PageSize int
}

// ProductRepository describes read access to the product catalog.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// CurrencyRepository resolves display currencies.
type CurrencyRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Currency, error)
	List(ctx context.Context) ([]model.Currency, error)
}
