package test

import (
	"context"

	"github.com/mkoval/rpmarket/internal/adapter/itemdata"
)

// ItemClientStub serves canned game-data lookups.
type ItemClientStub struct {
	FetchFn func(context.Context, int64) (*itemdata.ItemDetail, error)
}

// Fetch returns the configured detail or an empty one.
func (s *ItemClientStub) Fetch(ctx context.Context, productID int64) (*itemdata.ItemDetail, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, productID)
	}
	return &itemdata.ItemDetail{ProductID: productID}, nil
}

var _ itemdata.Client = (*ItemClientStub)(nil)
