package dto

import "time"

// PurchaseForm is the multipart checkout payload. The receipt image is
// read from the "receipt" file part.
type PurchaseForm struct {
	Payment     string `form:"payment" binding:"required"`
	RiotName    string `form:"riot_name" binding:"required"`
	DiscordName string `form:"discord_name" binding:"required"`
	Region      string `form:"region" binding:"required"`
	Coupon      string `form:"coupon"`
}

// OrderLineResponse is a snapshot line inside an order.
type OrderLineResponse struct {
	ProductID    int64   `json:"product_id"`
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	SafeCurrency bool    `json:"safe_currency"`
}

// OrderResponse is an order list entry.
type OrderResponse struct {
	ID             string     `json:"id"`
	StatusID       int64      `json:"status_id"`
	Confirmed      bool       `json:"confirmed"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	TimerEndsAt    *time.Time `json:"timer_ends_at,omitempty"`
	Remaining      string     `json:"remaining,omitempty"`
	Total          float64    `json:"total"`
	FormattedTotal string     `json:"formatted_total"`
	Viewed         bool       `json:"viewed"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ItemDetailResponse enriches an order line with game data. Failed lookups
// keep the line with Error set instead of dropping the order view.
type ItemDetailResponse struct {
	ProductID   int64  `json:"product_id"`
	Title       string `json:"title,omitempty"`
	SplashURL   string `json:"splash_url,omitempty"`
	Rarity      string `json:"rarity,omitempty"`
	Description string `json:"description,omitempty"`
	Error       bool   `json:"error,omitempty"`
}

// OrderDetailResponse is the full order view.
type OrderDetailResponse struct {
	OrderResponse
	Lines []OrderLineResponse  `json:"lines"`
	Items []ItemDetailResponse `json:"items,omitempty"`
}

// RedeemResponse is a loyalty redemption entry.
type RedeemResponse struct {
	ID          string     `json:"id"`
	StatusID    int64      `json:"status_id"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	TimerEndsAt *time.Time `json:"timer_ends_at,omitempty"`
	Remaining   string     `json:"remaining,omitempty"`
	PointsSpent float64    `json:"points_spent"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UnreadResponse is the notification badge counter.
type UnreadResponse struct {
	Unread int `json:"unread"`
}
