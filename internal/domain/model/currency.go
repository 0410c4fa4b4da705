package model

// Currency is a display currency with its conversion rate from RP prices.
type Currency struct {
	ID     int64
	Code   string
	Symbol string
	Rate   float64
}
