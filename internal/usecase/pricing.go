package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/mkoval/rpmarket/internal/domain/model"
)

// ComputeTotal calculates the discounted cart total for an optional coupon.
// The result is clamped to [0, subtotal] and rounded to whole display units.
func ComputeTotal(cart model.Cart, coupon *model.Coupon) float64 {
	subtotal := cart.Subtotal()
	discount := totalDiscount(cart, coupon)

	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	return math.Round(subtotal - discount)
}

func totalDiscount(cart model.Cart, coupon *model.Coupon) float64 {
	if coupon == nil {
		return 0
	}

	if coupon.RewardCoupon {
		return rewardDiscount(cart, coupon)
	}
	return merchantDiscount(cart, coupon)
}

// rewardDiscount covers loyalty coupons. Tier-capped coupons discount only
// the units explicitly selected per line; unfiltered ones discount every
// line whose sourcing tier passes the filter.
func rewardDiscount(cart model.Cart, coupon *model.Coupon) float64 {
	var discount float64
	for _, line := range cart.Lines {
		if coupon.TierCapped() {
			discount += line.UnitPrice * float64(line.SelectedForCoupon) * coupon.Value / 100
			continue
		}
		if coupon.MatchesRPType(line.SafeCurrency) {
			discount += line.Subtotal() * coupon.Value / 100
		}
	}
	return discount
}

// merchantDiscount covers standard coupons. Percent coupons discount each
// eligible line; fixed coupons distribute the flat value proportionally by
// each eligible line's share of the eligible subtotal, never exceeding a
// line's own subtotal.
func merchantDiscount(cart model.Cart, coupon *model.Coupon) float64 {
	var eligibleSubtotal float64
	for _, line := range cart.Lines {
		if coupon.MatchesRPType(line.SafeCurrency) {
			eligibleSubtotal += line.Subtotal()
		}
	}
	if eligibleSubtotal == 0 {
		return 0
	}

	var discount float64
	for _, line := range cart.Lines {
		if !coupon.MatchesRPType(line.SafeCurrency) {
			continue
		}
		switch coupon.Kind {
		case model.CouponPercent:
			discount += line.Subtotal() * coupon.Value / 100
		case model.CouponFixed:
			share := coupon.Value * line.Subtotal() / eligibleSubtotal
			if share > line.Subtotal() {
				share = line.Subtotal()
			}
			discount += share
		}
	}
	return discount
}

// FormatAmount renders a total as whole units with thousands separators.
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + strings.Join(groups, ",")
}
