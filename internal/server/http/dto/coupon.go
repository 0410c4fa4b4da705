package dto

// ApplyCouponRequest validates a coupon code against the cart.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,couponcode"`
}

// LineSelection assigns coupon units to a cart line.
type LineSelection struct {
	LineID int64 `json:"line_id" binding:"required,gt=0"`
	Units  int   `json:"units" binding:"gte=0"`
}

// SelectionRequest submits a manual unit selection for a capped coupon.
type SelectionRequest struct {
	Code       string          `json:"code" binding:"required,couponcode"`
	Selections []LineSelection `json:"selections" binding:"required,dive"`
}

// CouponResponse describes the applied coupon and the repriced cart.
type CouponResponse struct {
	Code            string       `json:"code"`
	Kind            string       `json:"kind"`
	Value           float64      `json:"value"`
	RewardCoupon    bool         `json:"reward_coupon"`
	MaxUnits        int          `json:"max_units,omitempty"`
	NeedsSelection  bool         `json:"needs_selection"`
	EligibleLineIDs []int64      `json:"eligible_line_ids,omitempty"`
	Cart            CartResponse `json:"cart"`
}
