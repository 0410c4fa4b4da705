package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// PurchaseParams collects checkout form data. Coupon is the already
// validated coupon for this session, nil when none was applied.
type PurchaseParams struct {
	Payment     string
	RiotName    string
	DiscordName string
	Region      string
	Coupon      *model.Coupon
	ReceiptFile string
}

// CheckoutUseCase finalizes purchases and loyalty redemptions.
type CheckoutUseCase struct {
	carts      repository.CartRepository
	orders     repository.OrderRepository
	redeems    repository.RedeemRepository
	coupons    repository.CouponRepository
	statuses   repository.StatusRepository
	loyalty    repository.LoyaltyRepository
	pointsRate float64
	now        func() time.Time
}

// NewCheckoutUseCase constructs CheckoutUseCase. pointsRate is the share of
// the order total awarded as loyalty points.
func NewCheckoutUseCase(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	redeems repository.RedeemRepository,
	coupons repository.CouponRepository,
	statuses repository.StatusRepository,
	loyalty repository.LoyaltyRepository,
	pointsRate float64,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:      carts,
		orders:     orders,
		redeems:    redeems,
		coupons:    coupons,
		statuses:   statuses,
		loyalty:    loyalty,
		pointsRate: pointsRate,
		now:        time.Now,
	}
}

// CreatePurchase snapshots the cart into an order with the default status,
// prices it through the coupon engine, awards loyalty points, marks reward
// coupons as spent and clears the cart.
func (u *CheckoutUseCase) CreatePurchase(ctx context.Context, userID int64, params PurchaseParams) (*model.Order, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	status, err := u.statuses.GetDefault(ctx)
	if err != nil {
		return nil, err
	}

	total := ComputeTotal(*cart, params.Coupon)

	order := model.Order{
		PublicID:    uuid.NewString(),
		UserID:      userID,
		StatusID:    status.ID,
		Total:       total,
		CurrencyID:  cart.CurrencyID,
		RiotName:    params.RiotName,
		DiscordName: params.DiscordName,
		Region:      params.Region,
		Payment:     params.Payment,
		ReceiptFile: params.ReceiptFile,
	}
	if params.Coupon != nil {
		order.CouponID = &params.Coupon.ID
	}
	for _, line := range cart.Lines {
		order.Lines = append(order.Lines, model.OrderLine{
			ProductID:    line.ProductID,
			Kind:         line.Kind,
			Name:         line.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			SafeCurrency: line.SafeCurrency,
		})
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if params.Coupon != nil && params.Coupon.RewardCoupon {
		if err := u.coupons.MarkRedeemed(ctx, params.Coupon.ID); err != nil {
			return nil, err
		}
	}

	if u.pointsRate > 0 && total > 0 {
		points := total * u.pointsRate
		if err := u.loyalty.AddPoints(ctx, userID, &created.ID, points, "purchase reward"); err != nil {
			return nil, err
		}
	}

	if err := u.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return created, nil
}

// RedeemPoints spends loyalty points on a reward coupon and opens a redeem
// that follows the same status confirmation lifecycle as orders.
func (u *CheckoutUseCase) RedeemPoints(ctx context.Context, userID int64, coupon model.Coupon, cost float64) (*model.Redeem, error) {
	if cost <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	if err := u.loyalty.SpendPoints(ctx, userID, cost, "reward coupon redemption"); err != nil {
		return nil, err
	}

	coupon.RewardCoupon = true
	coupon.OwnerUserID = &userID
	created, err := u.coupons.CreateRewardCoupon(ctx, coupon)
	if err != nil {
		return nil, err
	}

	status, err := u.statuses.GetDefault(ctx)
	if err != nil {
		return nil, err
	}

	return u.redeems.Create(ctx, model.Redeem{
		PublicID:    uuid.NewString(),
		UserID:      userID,
		CouponID:    created.ID,
		StatusID:    status.ID,
		PointsSpent: cost,
	})
}

// Orders lists the user's purchase history.
func (u *CheckoutUseCase) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Order fetches one purchase by its public identifier.
func (u *CheckoutUseCase) Order(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	return u.orders.GetByPublicID(ctx, userID, publicID)
}

// Redeems lists the user's redemptions.
func (u *CheckoutUseCase) Redeems(ctx context.Context, userID int64) ([]model.Redeem, error) {
	return u.redeems.ListByUser(ctx, userID)
}
