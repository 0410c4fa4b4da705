package dto

// ProductResponse is a catalog entry.
type ProductResponse struct {
	ID           int64                 `json:"id"`
	Kind         string                `json:"kind"`
	Name         string                `json:"name"`
	TierRP       int64                 `json:"tier_rp"`
	PriceSafeRP  float64               `json:"price_safe_rp"`
	PriceCheapRP float64               `json:"price_cheap_rp"`
	ImageURL     string                `json:"image_url"`
	Unranked     *UnrankedMetaResponse `json:"unranked,omitempty"`
}

// UnrankedMetaResponse carries account metadata for unranked listings.
type UnrankedMetaResponse struct {
	Region      string `json:"region"`
	Level       int    `json:"level"`
	BlueEssence int64  `json:"blue_essence"`
}

// CurrencyResponse is a display currency entry.
type CurrencyResponse struct {
	ID     int64   `json:"id"`
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// StatusResponse is an order status catalog entry.
type StatusResponse struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Color                string `json:"color"`
	Description          string `json:"description"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
	ConfirmButtonText    string `json:"confirm_button_text,omitempty"`
}
