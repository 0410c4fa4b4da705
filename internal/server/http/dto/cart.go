package dto

// AddLineRequest adds a product to the cart.
type AddLineRequest struct {
	ProductID    int64 `json:"product_id" binding:"required,gt=0"`
	Quantity     int   `json:"quantity" binding:"required,gt=0"`
	SafeCurrency bool  `json:"safe_currency"`
}

// QuantityRequest changes a cart line quantity. Zero removes the line.
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// CurrencyRequest switches the cart display currency.
type CurrencyRequest struct {
	CurrencyID int64 `json:"currency_id" binding:"required,gt=0"`
}

// CartLineResponse is one cart line.
type CartLineResponse struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Kind              string  `json:"kind"`
	Name              string  `json:"name"`
	TierRP            int64   `json:"tier_rp"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	SafeCurrency      bool    `json:"safe_currency"`
	SelectedForCoupon int     `json:"selected_for_coupon,omitempty"`
}

// CartResponse is the full cart with pricing.
type CartResponse struct {
	CurrencyID     int64              `json:"currency_id"`
	Lines          []CartLineResponse `json:"lines"`
	Subtotal       float64            `json:"subtotal"`
	Total          float64            `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
}
