package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mkoval/rpmarket/internal/adapter/itemdata"
	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
	"github.com/mkoval/rpmarket/internal/server/http/handlers"
	"github.com/mkoval/rpmarket/internal/usecase"
)

// ItemDetailProvider fetches game data for a single product.
type ItemDetailProvider interface {
	Fetch(ctx context.Context, productID int64) (*itemdata.ItemDetail, error)
}

// rewardOffers is the reward-shop assortment. Each offer trades loyalty
// points for a full-discount coupon capped at MaxUnits items of the tier.
var rewardOffers = []model.RewardOffer{
	{TierRP: 975, MaxUnits: 3, Cost: 100},
	{TierRP: 1350, MaxUnits: 3, Cost: 140},
	{TierRP: 1820, MaxUnits: 2, Cost: 190},
}

// StorefrontFacade is the application service behind the HTTP layer. It
// composes use cases so handlers depend on a single surface.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	coupons  *usecase.CouponUseCase
	status   *usecase.StatusUseCase
	loyalty  *usecase.LoyaltyUseCase
	checkout *usecase.CheckoutUseCase
	items    ItemDetailProvider
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	coupons *usecase.CouponUseCase,
	status *usecase.StatusUseCase,
	loyalty *usecase.LoyaltyUseCase,
	checkout *usecase.CheckoutUseCase,
	items ItemDetailProvider,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		coupons:  coupons,
		status:   status,
		loyalty:  loyalty,
		checkout: checkout,
		items:    items,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) Currencies(ctx context.Context) ([]model.Currency, error) {
	return f.catalog.Currencies(ctx)
}

func (f *StorefrontFacade) Statuses(ctx context.Context) ([]model.OrderStatus, error) {
	return f.status.Catalog(ctx)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

func (f *StorefrontFacade) AddToCart(ctx context.Context, userID, productID int64, quantity int, safeCurrency bool) (*model.Cart, error) {
	return f.cart.Add(ctx, userID, productID, quantity, safeCurrency)
}

func (f *StorefrontFacade) SetCartQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error) {
	return f.cart.SetQuantity(ctx, userID, lineID, quantity)
}

func (f *StorefrontFacade) SwitchCurrency(ctx context.Context, userID, currencyID int64) (*model.Cart, error) {
	return f.cart.SwitchCurrency(ctx, userID, currencyID)
}

func (f *StorefrontFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.cart.Clear(ctx, userID)
}

func (f *StorefrontFacade) ApplyCoupon(ctx context.Context, userID int64, code string) (*usecase.ApplyResult, error) {
	cart, err := f.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.coupons.ValidateAndApply(ctx, userID, code, cart.CurrencyID)
}

func (f *StorefrontFacade) ApplySelection(ctx context.Context, userID int64, code string, selections map[int64]int) (*usecase.ApplyResult, error) {
	result, err := f.ApplyCoupon(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	cart, err := f.coupons.ApplySelection(ctx, userID, *result.Coupon, selections)
	if err != nil {
		return nil, err
	}
	return &usecase.ApplyResult{Coupon: result.Coupon, Cart: cart}, nil
}

func (f *StorefrontFacade) RemoveCoupon(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.coupons.RemoveCoupon(ctx, userID)
}

// Purchase revalidates the coupon code from the checkout form; the coupon
// is never trusted from an earlier request. A tier-capped coupon still
// waiting for its unit selection cannot check out.
func (f *StorefrontFacade) Purchase(ctx context.Context, userID int64, input handlers.PurchaseInput) (*model.Order, error) {
	var coupon *model.Coupon
	if input.CouponCode != "" {
		result, err := f.ApplyCoupon(ctx, userID, input.CouponCode)
		if err != nil {
			return nil, err
		}
		if result.NeedsSelection {
			return nil, domainErrors.ErrSelectionRequired
		}
		coupon = result.Coupon
	}

	return f.checkout.CreatePurchase(ctx, userID, usecase.PurchaseParams{
		Payment:     input.Payment,
		RiotName:    input.RiotName,
		DiscordName: input.DiscordName,
		Region:      input.Region,
		Coupon:      coupon,
		ReceiptFile: input.ReceiptFile,
	})
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.checkout.Orders(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	return f.checkout.Order(ctx, userID, publicID)
}

func (f *StorefrontFacade) Redeems(ctx context.Context, userID int64) ([]model.Redeem, error) {
	return f.checkout.Redeems(ctx, userID)
}

func (f *StorefrontFacade) ItemDetails(ctx context.Context, productIDs []int64) []itemdata.Result {
	return itemdata.FetchAll(ctx, f.items, productIDs)
}

func (f *StorefrontFacade) ConfirmOrder(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	return f.status.ConfirmOrder(ctx, userID, publicID)
}

func (f *StorefrontFacade) ConfirmRedeem(ctx context.Context, userID int64, publicID string) (*model.Redeem, error) {
	return f.status.ConfirmRedeem(ctx, userID, publicID)
}

func (f *StorefrontFacade) MarkOrderViewed(ctx context.Context, userID int64, publicID string) error {
	return f.status.MarkOrderViewed(ctx, userID, publicID)
}

func (f *StorefrontFacade) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return f.status.UnreadCount(ctx, userID)
}

func (f *StorefrontFacade) LoyaltySummary(ctx context.Context, userID int64) (*model.LoyaltySummary, error) {
	return f.loyalty.Summary(ctx, userID)
}

func (f *StorefrontFacade) LoyaltyHistory(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error) {
	return f.loyalty.History(ctx, userID)
}

func (f *StorefrontFacade) RewardOffers() []model.RewardOffer {
	offers := make([]model.RewardOffer, len(rewardOffers))
	copy(offers, rewardOffers)
	return offers
}

// RedeemReward spends loyalty points on a tier offer and mints the
// full-discount coupon it grants.
func (f *StorefrontFacade) RedeemReward(ctx context.Context, userID int64, tierRP int64) (*model.Redeem, error) {
	var offer *model.RewardOffer
	for i := range rewardOffers {
		if rewardOffers[i].TierRP == tierRP {
			offer = &rewardOffers[i]
			break
		}
	}
	if offer == nil {
		return nil, domainErrors.ErrNotFound
	}

	tier := offer.TierRP
	maxUnits := offer.MaxUnits
	coupon := model.Coupon{
		Code:      newRewardCode(),
		Kind:      model.CouponPercent,
		Value:     100,
		RPType:    model.RPFilterBoth,
		Category:  model.CategoryBoth,
		PriceTier: &tier,
		MaxUnits:  &maxUnits,
	}
	return f.checkout.RedeemPoints(ctx, userID, coupon, offer.Cost)
}

func newRewardCode() string {
	return "RW-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

var _ handlers.StorefrontFacade = (*StorefrontFacade)(nil)
