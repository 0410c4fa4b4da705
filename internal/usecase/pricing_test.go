package usecase_test

import (
	"testing"

	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/usecase"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestComputeTotalNoCoupon(t *testing.T) {
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 250, Quantity: 4},
	}}
	if got := usecase.ComputeTotal(cart, nil); got != 3000 {
		t.Fatalf("expected 3000, got %f", got)
	}
}

func TestComputeTotalRewardPercentUnfiltered(t *testing.T) {
	// Worked example: 2 x 1000 safe units, 10% reward coupon on both tiers.
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 1000, Quantity: 2, SafeCurrency: true},
	}}
	coupon := &model.Coupon{Kind: model.CouponPercent, Value: 10, RewardCoupon: true, RPType: model.RPFilterBoth}

	if got := usecase.ComputeTotal(cart, coupon); got != 1800 {
		t.Fatalf("expected 1800, got %f", got)
	}
}

func TestComputeTotalRewardPercentFilterMismatch(t *testing.T) {
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 1000, Quantity: 2, SafeCurrency: false},
	}}
	coupon := &model.Coupon{Kind: model.CouponPercent, Value: 10, RewardCoupon: true, RPType: model.RPFilterSafe}

	if got := usecase.ComputeTotal(cart, coupon); got != 2000 {
		t.Fatalf("cheap lines must not be discounted by a safe-only coupon, got %f", got)
	}
}

func TestComputeTotalRewardTierCapped(t *testing.T) {
	// Only explicitly selected units are discounted.
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 1350, Quantity: 3, SelectedForCoupon: 2, SafeCurrency: true, TierRP: 1350},
		{UnitPrice: 975, Quantity: 1, SelectedForCoupon: 0, SafeCurrency: true, TierRP: 975},
	}}
	coupon := &model.Coupon{
		Kind: model.CouponPercent, Value: 50, RewardCoupon: true,
		RPType: model.RPFilterBoth, PriceTier: int64Ptr(1350), MaxUnits: intPtr(2),
	}

	// subtotal 5025, discount 1350*2*0.5 = 1350
	if got := usecase.ComputeTotal(cart, coupon); got != 3675 {
		t.Fatalf("expected 3675, got %f", got)
	}
}

func TestComputeTotalFixedProportionalDistribution(t *testing.T) {
	// Worked example: subtotals 3000 and 1000, fixed 400 splits 300/100.
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 1500, Quantity: 2, SafeCurrency: true},
		{UnitPrice: 1000, Quantity: 1, SafeCurrency: false},
	}}
	coupon := &model.Coupon{Kind: model.CouponFixed, Value: 400, RPType: model.RPFilterBoth}

	if got := usecase.ComputeTotal(cart, coupon); got != 3600 {
		t.Fatalf("expected 3600, got %f", got)
	}
}

func TestComputeTotalFixedCapPerLine(t *testing.T) {
	// Flat value larger than the cart never drives the total negative.
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 100, Quantity: 1, SafeCurrency: true},
	}}
	coupon := &model.Coupon{Kind: model.CouponFixed, Value: 5000, RPType: model.RPFilterBoth}

	if got := usecase.ComputeTotal(cart, coupon); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestComputeTotalStandardFilteredPercent(t *testing.T) {
	cart := model.Cart{Lines: []model.CartLine{
		{UnitPrice: 1000, Quantity: 1, SafeCurrency: true},
		{UnitPrice: 1000, Quantity: 1, SafeCurrency: false},
	}}
	coupon := &model.Coupon{Kind: model.CouponPercent, Value: 20, RPType: model.RPFilterCheap}

	// only the cheap line is discounted: 2000 - 200
	if got := usecase.ComputeTotal(cart, coupon); got != 1800 {
		t.Fatalf("expected 1800, got %f", got)
	}
}

func TestComputeTotalNeverNegativeNeverAboveSubtotal(t *testing.T) {
	carts := []model.Cart{
		{},
		{Lines: []model.CartLine{{UnitPrice: 10, Quantity: 1, SafeCurrency: true}}},
		{Lines: []model.CartLine{
			{UnitPrice: 999, Quantity: 3, SafeCurrency: true, SelectedForCoupon: 3, TierRP: 999},
			{UnitPrice: 4500, Quantity: 2, SafeCurrency: false},
		}},
	}
	coupons := []*model.Coupon{
		nil,
		{Kind: model.CouponPercent, Value: 150, RewardCoupon: true, RPType: model.RPFilterBoth},
		{Kind: model.CouponFixed, Value: 100000, RPType: model.RPFilterBoth},
		{Kind: model.CouponPercent, Value: 100, RewardCoupon: true, RPType: model.RPFilterBoth, PriceTier: int64Ptr(999), MaxUnits: intPtr(3)},
	}

	for _, cart := range carts {
		subtotal := cart.Subtotal()
		for _, coupon := range coupons {
			got := usecase.ComputeTotal(cart, coupon)
			if got < 0 || got > subtotal {
				t.Fatalf("total %f out of [0, %f] for coupon %+v", got, subtotal, coupon)
			}
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{950, "950"},
		{1800, "1,800"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}

	for _, tc := range cases {
		if got := usecase.FormatAmount(tc.amount); got != tc.want {
			t.Fatalf("amount %f: expected %q, got %q", tc.amount, tc.want, got)
		}
	}
}
