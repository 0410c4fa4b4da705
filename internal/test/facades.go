package test

import (
	"context"

	"github.com/mkoval/rpmarket/internal/adapter/itemdata"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
	"github.com/mkoval/rpmarket/internal/server/http/handlers"
	"github.com/mkoval/rpmarket/internal/usecase"
)

// CatalogFacadeStub serves canned catalog data.
type CatalogFacadeStub struct {
	ProductsFn   func(context.Context, repository.ProductFilter) ([]model.Product, error)
	CurrenciesFn func(context.Context) ([]model.Currency, error)
	StatusesFn   func(context.Context) ([]model.OrderStatus, error)
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return nil, nil
}

func (s CatalogFacadeStub) Currencies(ctx context.Context) ([]model.Currency, error) {
	if s.CurrenciesFn != nil {
		return s.CurrenciesFn(ctx)
	}
	return nil, nil
}

func (s CatalogFacadeStub) Statuses(ctx context.Context) ([]model.OrderStatus, error) {
	if s.StatusesFn != nil {
		return s.StatusesFn(ctx)
	}
	return nil, nil
}

// CartFacadeStub simulates cart operations via overrides.
type CartFacadeStub struct {
	CartFn           func(context.Context, int64) (*model.Cart, error)
	AddToCartFn      func(context.Context, int64, int64, int, bool) (*model.Cart, error)
	SetQuantityFn    func(context.Context, int64, int64, int) (*model.Cart, error)
	SwitchCurrencyFn func(context.Context, int64, int64) (*model.Cart, error)
	ClearFn          func(context.Context, int64) error
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{UserID: userID, CurrencyID: 1}, nil
}

func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64, quantity int, safeCurrency bool) (*model.Cart, error) {
	if s.AddToCartFn != nil {
		return s.AddToCartFn(ctx, userID, productID, quantity, safeCurrency)
	}
	return &model.Cart{UserID: userID, CurrencyID: 1}, nil
}

func (s CartFacadeStub) SetCartQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, userID, lineID, quantity)
	}
	return &model.Cart{UserID: userID, CurrencyID: 1}, nil
}

func (s CartFacadeStub) SwitchCurrency(ctx context.Context, userID, currencyID int64) (*model.Cart, error) {
	if s.SwitchCurrencyFn != nil {
		return s.SwitchCurrencyFn(ctx, userID, currencyID)
	}
	return &model.Cart{UserID: userID, CurrencyID: currencyID}, nil
}

func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

// CouponFacadeStub simulates coupon validation outcomes.
type CouponFacadeStub struct {
	ApplyFn          func(context.Context, int64, string) (*usecase.ApplyResult, error)
	ApplySelectionFn func(context.Context, int64, string, map[int64]int) (*usecase.ApplyResult, error)
	RemoveFn         func(context.Context, int64) (*model.Cart, error)
}

func (s CouponFacadeStub) ApplyCoupon(ctx context.Context, userID int64, code string) (*usecase.ApplyResult, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, userID, code)
	}
	return &usecase.ApplyResult{Coupon: &model.Coupon{Code: code}, Cart: &model.Cart{UserID: userID, CurrencyID: 1}}, nil
}

func (s CouponFacadeStub) ApplySelection(ctx context.Context, userID int64, code string, selections map[int64]int) (*usecase.ApplyResult, error) {
	if s.ApplySelectionFn != nil {
		return s.ApplySelectionFn(ctx, userID, code, selections)
	}
	return &usecase.ApplyResult{Coupon: &model.Coupon{Code: code}, Cart: &model.Cart{UserID: userID, CurrencyID: 1}}, nil
}

func (s CouponFacadeStub) RemoveCoupon(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID)
	}
	return &model.Cart{UserID: userID, CurrencyID: 1}, nil
}

// CheckoutFacadeStub simulates checkout and history access.
type CheckoutFacadeStub struct {
	PurchaseFn    func(context.Context, int64, handlers.PurchaseInput) (*model.Order, error)
	OrdersFn      func(context.Context, int64) ([]model.Order, error)
	OrderFn       func(context.Context, int64, string) (*model.Order, error)
	RedeemsFn     func(context.Context, int64) ([]model.Redeem, error)
	ItemDetailsFn func(context.Context, []int64) []itemdata.Result
}

func (s CheckoutFacadeStub) Purchase(ctx context.Context, userID int64, input handlers.PurchaseInput) (*model.Order, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, userID, input)
	}
	return &model.Order{PublicID: "order", UserID: userID, StatusID: 1}, nil
}

func (s CheckoutFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s CheckoutFacadeStub) Order(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, publicID)
	}
	return &model.Order{PublicID: publicID, UserID: userID, StatusID: 1}, nil
}

func (s CheckoutFacadeStub) Redeems(ctx context.Context, userID int64) ([]model.Redeem, error) {
	if s.RedeemsFn != nil {
		return s.RedeemsFn(ctx, userID)
	}
	return nil, nil
}

func (s CheckoutFacadeStub) ItemDetails(ctx context.Context, productIDs []int64) []itemdata.Result {
	if s.ItemDetailsFn != nil {
		return s.ItemDetailsFn(ctx, productIDs)
	}
	return nil
}

// StatusFacadeStub simulates the confirmation workflow.
type StatusFacadeStub struct {
	ConfirmOrderFn  func(context.Context, int64, string) (*model.Order, error)
	ConfirmRedeemFn func(context.Context, int64, string) (*model.Redeem, error)
	MarkViewedFn    func(context.Context, int64, string) error
	UnreadFn        func(context.Context, int64) (int, error)
}

func (s StatusFacadeStub) ConfirmOrder(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	if s.ConfirmOrderFn != nil {
		return s.ConfirmOrderFn(ctx, userID, publicID)
	}
	return &model.Order{PublicID: publicID, UserID: userID, StatusID: 1, Confirmed: true}, nil
}

func (s StatusFacadeStub) ConfirmRedeem(ctx context.Context, userID int64, publicID string) (*model.Redeem, error) {
	if s.ConfirmRedeemFn != nil {
		return s.ConfirmRedeemFn(ctx, userID, publicID)
	}
	return &model.Redeem{PublicID: publicID, UserID: userID, StatusID: 1, Confirmed: true}, nil
}

func (s StatusFacadeStub) MarkOrderViewed(ctx context.Context, userID int64, publicID string) error {
	if s.MarkViewedFn != nil {
		return s.MarkViewedFn(ctx, userID, publicID)
	}
	return nil
}

func (s StatusFacadeStub) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if s.UnreadFn != nil {
		return s.UnreadFn(ctx, userID)
	}
	return 0, nil
}

// LoyaltyFacadeStub simulates the points balance and reward shop.
type LoyaltyFacadeStub struct {
	SummaryFn      func(context.Context, int64) (*model.LoyaltySummary, error)
	HistoryFn      func(context.Context, int64) ([]model.LoyaltyEntry, error)
	RewardOffersFn func() []model.RewardOffer
	RedeemRewardFn func(context.Context, int64, int64) (*model.Redeem, error)
}

func (s LoyaltyFacadeStub) LoyaltySummary(ctx context.Context, userID int64) (*model.LoyaltySummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	return &model.LoyaltySummary{}, nil
}

func (s LoyaltyFacadeStub) LoyaltyHistory(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return nil, nil
}

func (s LoyaltyFacadeStub) RewardOffers() []model.RewardOffer {
	if s.RewardOffersFn != nil {
		return s.RewardOffersFn()
	}
	return nil
}

func (s LoyaltyFacadeStub) RedeemReward(ctx context.Context, userID int64, tierRP int64) (*model.Redeem, error) {
	if s.RedeemRewardFn != nil {
		return s.RedeemRewardFn(ctx, userID, tierRP)
	}
	return &model.Redeem{UserID: userID, StatusID: 1}, nil
}

// StorefrontFacadeStub aggregates all facade stubs for router level tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CouponFacadeStub
	CheckoutFacadeStub
	StatusFacadeStub
	LoyaltyFacadeStub
}

var _ handlers.StorefrontFacade = StorefrontFacadeStub{}
