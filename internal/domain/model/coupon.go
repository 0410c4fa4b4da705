package model

// CouponKind distinguishes percentage and flat-value discounts.
type CouponKind string

const (
	CouponPercent CouponKind = "PERCENT"
	CouponFixed   CouponKind = "FIXED"
)

// RPTypeFilter restricts a coupon to a sourcing tier.
type RPTypeFilter string

const (
	RPFilterSafe  RPTypeFilter = "SAFE"
	RPFilterCheap RPTypeFilter = "CHEAP"
	RPFilterBoth  RPTypeFilter = "BOTH"
)

// Coupon is a discount descriptor resolved from a code. Reward coupons are
// redeemed with loyalty points rather than issued by the merchant.
type Coupon struct {
	ID           int64
	Code         string
	Kind         CouponKind
	Value        float64
	RewardCoupon bool
	RPType       RPTypeFilter
	PriceTier    *int64
	MaxUnits     *int
	Category     ProductCategory
	CurrencyID   *int64
	OwnerUserID  *int64
	Redeemed     bool
}

// RewardOffer is a reward-shop listing: a full-discount coupon for up to
// MaxUnits items of tier TierRP, bought with loyalty points.
type RewardOffer struct {
	TierRP   int64
	MaxUnits int
	Cost     float64
}

// MatchesRPType reports whether a line's sourcing tier passes the filter.
func (c Coupon) MatchesRPType(safeCurrency bool) bool {
	switch c.RPType {
	case RPFilterBoth:
		return true
	case RPFilterSafe:
		return safeCurrency
	case RPFilterCheap:
		return !safeCurrency
	}
	return false
}

// MatchesCategory reports whether a product kind passes the category scope.
func (c Coupon) MatchesCategory(kind ProductKind) bool {
	switch c.Category {
	case CategoryBoth:
		return true
	case CategorySkins:
		return kind == KindSkin
	case CategoryItems:
		return kind != KindSkin
	}
	return false
}

// TierCapped reports whether the coupon limits discounted units by price tier.
// Only meaningful for reward coupons carrying both filters.
func (c Coupon) TierCapped() bool {
	return c.RewardCoupon && c.PriceTier != nil && c.MaxUnits != nil
}
