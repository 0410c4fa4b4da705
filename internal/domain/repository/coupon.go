package repository

import (
	"context"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// CouponRepository resolves coupon codes.
type CouponRepository interface {
	GetMerchantCoupon(ctx context.Context, code string, currencyID int64) (*model.Coupon, error)
	GetRewardCoupon(ctx context.Context, code string, userID int64) (*model.Coupon, error)
	MarkRedeemed(ctx context.Context, couponID int64) error
	CreateRewardCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error)
}
