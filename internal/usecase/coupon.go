package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// CouponUseCase resolves coupon codes and applies their unit selections to
// the cart.
type CouponUseCase struct {
	coupons repository.CouponRepository
	carts   repository.CartRepository
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(coupons repository.CouponRepository, carts repository.CartRepository) *CouponUseCase {
	return &CouponUseCase{coupons: coupons, carts: carts}
}

// ApplyResult is the outcome of validating a coupon against the cart. When
// NeedsSelection is set the eligible lines exceed the coupon's unit cap and
// the caller must submit a manual selection via ApplySelection.
type ApplyResult struct {
	Coupon         *model.Coupon
	Cart           *model.Cart
	NeedsSelection bool
	Eligible       []model.CartLine
	MaxUnits       int
}

// ValidateAndApply resolves a code as a merchant coupon first and as a
// reward coupon second, then applies tier-capped selection rules.
func (u *CouponUseCase) ValidateAndApply(ctx context.Context, userID int64, code string, currencyID int64) (*ApplyResult, error) {
	coupon, err := u.resolve(ctx, userID, code, currencyID)
	if err != nil {
		return nil, err
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !coupon.TierCapped() {
		// No per-line selection step; the discount is computed globally
		// at total-calculation time.
		if err := u.clearSelections(ctx, userID, cart); err != nil {
			return nil, err
		}
		return &ApplyResult{Coupon: coupon, Cart: cart}, nil
	}

	eligible := EligibleLines(*cart, *coupon)
	if len(eligible) == 0 {
		return nil, domainErrors.ErrNoEligibleItems
	}

	maxUnits := *coupon.MaxUnits
	var eligibleQty int
	for _, line := range eligible {
		eligibleQty += line.Quantity
	}

	if eligibleQty > maxUnits {
		// A selection already stored on the cart counts only if it is
		// valid for this coupon. Anything else was persisted for another
		// coupon and must not carry over; the user picks again under this
		// coupon's cap.
		if selectionSatisfies(cart.Lines, eligible, maxUnits) {
			return &ApplyResult{Coupon: coupon, Cart: cart}, nil
		}
		if err := u.clearSelections(ctx, userID, cart); err != nil {
			return nil, err
		}
		cart, err = u.carts.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ApplyResult{Coupon: coupon, Cart: cart, NeedsSelection: true, Eligible: eligible, MaxUnits: maxUnits}, nil
	}

	// Auto-apply: each eligible line independently gets min(quantity, cap)
	// selected units. This mirrors the production behavior, which does not
	// distribute a single global cap across lines.
	selections := make(map[int64]int, len(cart.Lines))
	eligibleIDs := make(map[int64]bool, len(eligible))
	for _, line := range eligible {
		eligibleIDs[line.ID] = true
	}
	for _, line := range cart.Lines {
		if !eligibleIDs[line.ID] {
			selections[line.ID] = 0
			continue
		}
		selected := line.Quantity
		if selected > maxUnits {
			selected = maxUnits
		}
		selections[line.ID] = selected
	}

	if err := u.carts.SetSelections(ctx, userID, selections); err != nil {
		return nil, err
	}

	cart, err = u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Coupon: coupon, Cart: cart}, nil
}

// ApplySelection persists a manual unit selection for a tier-capped coupon.
// The selected units must not exceed line quantities or the coupon cap.
func (u *CouponUseCase) ApplySelection(ctx context.Context, userID int64, coupon model.Coupon, selections map[int64]int) (*model.Cart, error) {
	if !coupon.TierCapped() {
		return nil, domainErrors.ErrInvalidCoupon
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	eligible := EligibleLines(*cart, coupon)
	eligibleByID := make(map[int64]model.CartLine, len(eligible))
	for _, line := range eligible {
		eligibleByID[line.ID] = line
	}

	var total int
	normalized := make(map[int64]int, len(cart.Lines))
	for _, line := range cart.Lines {
		normalized[line.ID] = 0
	}
	for lineID, selected := range selections {
		if selected == 0 {
			continue
		}
		line, ok := eligibleByID[lineID]
		if !ok || selected < 0 || selected > line.Quantity {
			return nil, domainErrors.ErrSelectionExceedsCap
		}
		normalized[lineID] = selected
		total += selected
	}
	if total > *coupon.MaxUnits {
		return nil, domainErrors.ErrSelectionExceedsCap
	}

	if err := u.carts.SetSelections(ctx, userID, normalized); err != nil {
		return nil, err
	}
	return u.carts.Get(ctx, userID)
}

// RemoveCoupon clears any coupon selection state from the cart.
func (u *CouponUseCase) RemoveCoupon(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.clearSelections(ctx, userID, cart); err != nil {
		return nil, err
	}
	return u.carts.Get(ctx, userID)
}

func (u *CouponUseCase) resolve(ctx context.Context, userID int64, code string, currencyID int64) (*model.Coupon, error) {
	coupon, err := u.coupons.GetMerchantCoupon(ctx, code, currencyID)
	if err == nil {
		return coupon, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	coupon, err = u.coupons.GetRewardCoupon(ctx, code, userID)
	if err == nil {
		return coupon, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	return nil, domainErrors.ErrInvalidCoupon
}

// selectionSatisfies reports whether the selections stored on the cart form
// a usable selection for a coupon with the given eligible lines and cap:
// every selected line eligible, per-line quantity respected, at least one
// unit selected, and the sum within the cap.
func selectionSatisfies(lines []model.CartLine, eligible []model.CartLine, maxUnits int) bool {
	quantities := make(map[int64]int, len(eligible))
	for _, line := range eligible {
		quantities[line.ID] = line.Quantity
	}

	var total int
	for _, line := range lines {
		if line.SelectedForCoupon == 0 {
			continue
		}
		quantity, ok := quantities[line.ID]
		if !ok || line.SelectedForCoupon > quantity {
			return false
		}
		total += line.SelectedForCoupon
	}
	return total > 0 && total <= maxUnits
}

func (u *CouponUseCase) clearSelections(ctx context.Context, userID int64, cart *model.Cart) error {
	selections := make(map[int64]int, len(cart.Lines))
	for _, line := range cart.Lines {
		selections[line.ID] = 0
	}
	return u.carts.SetSelections(ctx, userID, selections)
}

// EligibleLines returns the cart lines a tier-capped coupon may discount:
// sourcing tier, price tier, and category must all match.
func EligibleLines(cart model.Cart, coupon model.Coupon) []model.CartLine {
	if coupon.PriceTier == nil {
		return nil
	}
	var eligible []model.CartLine
	for _, line := range cart.Lines {
		if !coupon.MatchesRPType(line.SafeCurrency) {
			continue
		}
		if line.TierRP != *coupon.PriceTier {
			continue
		}
		if !coupon.MatchesCategory(line.Kind) {
			continue
		}
		eligible = append(eligible, line)
	}
	return eligible
}
