package dto

import "time"

// LoyaltyResponse summarizes the points balance.
type LoyaltyResponse struct {
	Current float64 `json:"current"`
	Spent   float64 `json:"spent"`
}

// LoyaltyEntryResponse is one ledger movement.
type LoyaltyEntryResponse struct {
	Points      float64   `json:"points"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RewardOfferResponse is a reward-shop listing.
type RewardOfferResponse struct {
	TierRP   int64   `json:"tier_rp"`
	MaxUnits int     `json:"max_units"`
	Cost     float64 `json:"cost"`
}

// RedeemRewardRequest spends points on a reward coupon offer.
type RedeemRewardRequest struct {
	TierRP int64 `json:"tier_rp" binding:"required,gt=0"`
}
