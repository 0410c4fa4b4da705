package usecase

import (
	"context"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// CartUseCase owns the shopping cart lifecycle.
type CartUseCase struct {
	carts      repository.CartRepository
	products   repository.ProductRepository
	currencies repository.CurrencyRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository, currencies repository.CurrencyRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, currencies: currencies}
}

// Get returns the user's cart.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	return u.carts.Get(ctx, userID)
}

// Add puts quantity units of a product into the cart. An existing line with
// the same product and sourcing tier is merged, never duplicated.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64, quantity int, safeCurrency bool) (*model.Cart, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency, err := u.currencies.GetByID(ctx, cart.CurrencyID)
	if err != nil {
		return nil, err
	}

	line := model.CartLine{
		ProductID:    product.ID,
		Kind:         product.Kind,
		Name:         product.Name,
		TierRP:       product.TierRP,
		Quantity:     quantity,
		UnitPrice:    product.BasePrice(safeCurrency) * currency.Rate,
		SafeCurrency: safeCurrency,
	}
	return u.carts.AddLine(ctx, userID, line)
}

// SetQuantity updates a line's quantity. Dropping to zero or below removes
// the line entirely.
func (u *CartUseCase) SetQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error) {
	return u.carts.SetQuantity(ctx, userID, lineID, quantity)
}

// SwitchCurrency changes the display currency and reprices every line from
// the product catalog at the new rate.
func (u *CartUseCase) SwitchCurrency(ctx context.Context, userID, currencyID int64) (*model.Cart, error) {
	if _, err := u.currencies.GetByID(ctx, currencyID); err != nil {
		return nil, err
	}
	if err := u.carts.SetCurrency(ctx, userID, currencyID); err != nil {
		return nil, err
	}
	return u.carts.Get(ctx, userID)
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}
