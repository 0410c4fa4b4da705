package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// LoyaltyUseCase exposes the loyalty points ledger.
type LoyaltyUseCase struct {
	loyalty repository.LoyaltyRepository
}

// NewLoyaltyUseCase constructs LoyaltyUseCase.
func NewLoyaltyUseCase(loyalty repository.LoyaltyRepository) *LoyaltyUseCase {
	return &LoyaltyUseCase{loyalty: loyalty}
}

// Summary returns current and spent points. Users without ledger entries
// get a zero summary.
func (u *LoyaltyUseCase) Summary(ctx context.Context, userID int64) (*model.LoyaltySummary, error) {
	summary, err := u.loyalty.GetSummary(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.LoyaltySummary{}, nil
		}
		return nil, err
	}
	return summary, nil
}

// History returns ledger movements sorted by time.
func (u *LoyaltyUseCase) History(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error) {
	return u.loyalty.History(ctx, userID)
}
