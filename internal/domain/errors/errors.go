package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidCoupon       = errors.New("invalid coupon")
	ErrNoEligibleItems     = errors.New("no eligible items for coupon constraints")
	ErrSelectionExceedsCap = errors.New("selection exceeds coupon unit cap")
	ErrSelectionRequired   = errors.New("coupon requires a unit selection")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInsufficientPoints  = errors.New("insufficient loyalty points")
	ErrNotConfirmable      = errors.New("status does not require confirmation")
	ErrAlreadyConfirmed    = errors.New("status already confirmed")
)
