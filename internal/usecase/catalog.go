package usecase

import (
	"context"

	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// CatalogUseCase serves the public product catalog.
type CatalogUseCase struct {
	products   repository.ProductRepository
	currencies repository.CurrencyRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, currencies repository.CurrencyRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, currencies: currencies}
}

// List returns catalog entries matching the filter.
func (u *CatalogUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.Page < 0 {
		filter.Page = 0
	}
	return u.products.List(ctx, filter)
}

// Product fetches one catalog entry.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Currencies returns the available display currencies.
func (u *CatalogUseCase) Currencies(ctx context.Context) ([]model.Currency, error) {
	return u.currencies.List(ctx)
}
