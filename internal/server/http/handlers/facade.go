package handlers

import (
	"context"

	"github.com/mkoval/rpmarket/internal/adapter/itemdata"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
	"github.com/mkoval/rpmarket/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade exposes read-only storefront catalogs.
type CatalogFacade interface {
	Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Currencies(ctx context.Context) ([]model.Currency, error)
	Statuses(ctx context.Context) ([]model.OrderStatus, error)
}

// CartFacade covers cart manipulation.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int, safeCurrency bool) (*model.Cart, error)
	SetCartQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error)
	SwitchCurrency(ctx context.Context, userID, currencyID int64) (*model.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

// CouponFacade validates and applies coupon codes against the cart.
type CouponFacade interface {
	ApplyCoupon(ctx context.Context, userID int64, code string) (*usecase.ApplyResult, error)
	ApplySelection(ctx context.Context, userID int64, code string, selections map[int64]int) (*usecase.ApplyResult, error)
	RemoveCoupon(ctx context.Context, userID int64) (*model.Cart, error)
}

// PurchaseInput carries the checkout form. ReceiptFile is the stored file
// name, already persisted by the handler.
type PurchaseInput struct {
	Payment     string
	RiotName    string
	DiscordName string
	Region      string
	CouponCode  string
	ReceiptFile string
}

// CheckoutFacade finalizes purchases and serves order history.
type CheckoutFacade interface {
	Purchase(ctx context.Context, userID int64, input PurchaseInput) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, publicID string) (*model.Order, error)
	Redeems(ctx context.Context, userID int64) ([]model.Redeem, error)
	ItemDetails(ctx context.Context, productIDs []int64) []itemdata.Result
}

// OrderFacade bundles checkout and confirmation operations used by the
// order endpoints.
type OrderFacade interface {
	CheckoutFacade
	StatusFacade
}

// StatusFacade drives the confirmation workflow and the unread badge.
type StatusFacade interface {
	ConfirmOrder(ctx context.Context, userID int64, publicID string) (*model.Order, error)
	ConfirmRedeem(ctx context.Context, userID int64, publicID string) (*model.Redeem, error)
	MarkOrderViewed(ctx context.Context, userID int64, publicID string) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// LoyaltyFacade serves the points balance and the reward shop.
type LoyaltyFacade interface {
	LoyaltySummary(ctx context.Context, userID int64) (*model.LoyaltySummary, error)
	LoyaltyHistory(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error)
	RewardOffers() []model.RewardOffer
	RedeemReward(ctx context.Context, userID int64, tierRP int64) (*model.Redeem, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CouponFacade
	CheckoutFacade
	StatusFacade
	LoyaltyFacade
}
