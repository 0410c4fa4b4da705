package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"invalid coupon", ErrInvalidCoupon},
		{"no eligible items", ErrNoEligibleItems},
		{"selection exceeds cap", ErrSelectionExceedsCap},
		{"empty cart", ErrEmptyCart},
		{"invalid quantity", ErrInvalidQuantity},
		{"insufficient points", ErrInsufficientPoints},
		{"not confirmable", ErrNotConfirmable},
		{"already confirmed", ErrAlreadyConfirmed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}
