package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	testhelpers "github.com/mkoval/rpmarket/internal/test"
	"github.com/mkoval/rpmarket/internal/usecase"
)

func tierCappedCoupon(tier int64, maxUnits int) *model.Coupon {
	return &model.Coupon{
		ID: 7, Code: "REWARD-1350", Kind: model.CouponPercent, Value: 50,
		RewardCoupon: true, RPType: model.RPFilterSafe,
		PriceTier: int64Ptr(tier), MaxUnits: intPtr(maxUnits),
		Category: model.CategorySkins,
	}
}

func cartWithLines(lines ...model.CartLine) *testhelpers.CartRepositoryStub {
	carts := testhelpers.NewCartRepositoryStub(1, 1)
	carts.Cart.Lines = lines
	carts.NextID = int64(len(lines)) + 1
	return carts
}

func TestValidateAndApplyUnknownCode(t *testing.T) {
	uc := usecase.NewCouponUseCase(&testhelpers.CouponRepositoryStub{}, testhelpers.NewCartRepositoryStub(1, 1))

	if _, err := uc.ValidateAndApply(context.Background(), 1, "NOPE-CODE", 1); !errors.Is(err, domainErrors.ErrInvalidCoupon) {
		t.Fatalf("expected ErrInvalidCoupon, got %v", err)
	}
}

func TestValidateAndApplyMerchantWins(t *testing.T) {
	merchant := &model.Coupon{ID: 1, Code: "DOUBLE", Kind: model.CouponPercent, Value: 10, RPType: model.RPFilterBoth}
	reward := &model.Coupon{ID: 2, Code: "DOUBLE", Kind: model.CouponPercent, Value: 20, RewardCoupon: true, RPType: model.RPFilterBoth}
	coupons := &testhelpers.CouponRepositoryStub{
		Merchant: map[string]*model.Coupon{"DOUBLE": merchant},
		Reward:   map[string]*model.Coupon{"DOUBLE": reward},
	}
	uc := usecase.NewCouponUseCase(coupons, cartWithLines(model.CartLine{ID: 1, ProductID: 5, Quantity: 1, UnitPrice: 100}))

	result, err := uc.ValidateAndApply(context.Background(), 1, "DOUBLE", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Coupon.ID != merchant.ID {
		t.Fatalf("merchant coupon must win over reward coupon, got %d", result.Coupon.ID)
	}
	if result.NeedsSelection {
		t.Fatal("unfiltered coupon must not require selection")
	}
}

func TestValidateAndApplyRewardFallback(t *testing.T) {
	reward := &model.Coupon{ID: 2, Code: "LOYAL", Kind: model.CouponPercent, Value: 20, RewardCoupon: true, RPType: model.RPFilterBoth}
	coupons := &testhelpers.CouponRepositoryStub{Reward: map[string]*model.Coupon{"LOYAL": reward}}
	uc := usecase.NewCouponUseCase(coupons, cartWithLines(model.CartLine{ID: 1, ProductID: 5, Quantity: 1, UnitPrice: 100}))

	result, err := uc.ValidateAndApply(context.Background(), 1, "LOYAL", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Coupon.RewardCoupon {
		t.Fatal("expected reward coupon resolution")
	}
}

func TestValidateAndApplyNoEligibleItems(t *testing.T) {
	coupons := &testhelpers.CouponRepositoryStub{Reward: map[string]*model.Coupon{"REWARD-1350": tierCappedCoupon(1350, 2)}}
	// cheap sourcing and wrong tier: nothing is eligible
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 975, Quantity: 1, UnitPrice: 975, SafeCurrency: true},
		model.CartLine{ID: 2, ProductID: 6, Kind: model.KindSkin, TierRP: 1350, Quantity: 1, UnitPrice: 1350, SafeCurrency: false},
	)
	uc := usecase.NewCouponUseCase(coupons, carts)

	if _, err := uc.ValidateAndApply(context.Background(), 1, "REWARD-1350", 1); !errors.Is(err, domainErrors.ErrNoEligibleItems) {
		t.Fatalf("expected ErrNoEligibleItems, got %v", err)
	}
}

func TestValidateAndApplyAutoAppliesPerLine(t *testing.T) {
	coupons := &testhelpers.CouponRepositoryStub{Reward: map[string]*model.Coupon{"REWARD-1350": tierCappedCoupon(1350, 5)}}
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 2, UnitPrice: 1350, SafeCurrency: true},
		model.CartLine{ID: 2, ProductID: 6, Kind: model.KindSkin, TierRP: 1350, Quantity: 1, UnitPrice: 1350, SafeCurrency: true},
		model.CartLine{ID: 3, ProductID: 7, Kind: model.KindItem, TierRP: 1350, Quantity: 4, UnitPrice: 500, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(coupons, carts)

	result, err := uc.ValidateAndApply(context.Background(), 1, "REWARD-1350", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NeedsSelection {
		t.Fatal("eligible quantity under the cap must auto-apply")
	}

	selected := map[int64]int{}
	for _, line := range result.Cart.Lines {
		selected[line.ID] = line.SelectedForCoupon
	}
	// each eligible line independently gets min(quantity, cap)
	if selected[1] != 2 || selected[2] != 1 {
		t.Fatalf("unexpected selections for eligible lines: %v", selected)
	}
	if selected[3] != 0 {
		t.Fatalf("category-excluded line must not be selected: %v", selected)
	}
}

func TestValidateAndApplyRequiresSelectionOverCap(t *testing.T) {
	coupons := &testhelpers.CouponRepositoryStub{Reward: map[string]*model.Coupon{"REWARD-1350": tierCappedCoupon(1350, 2)}}
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 3, UnitPrice: 1350, SafeCurrency: true},
		model.CartLine{ID: 2, ProductID: 6, Kind: model.KindSkin, TierRP: 1350, Quantity: 2, UnitPrice: 1350, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(coupons, carts)

	result, err := uc.ValidateAndApply(context.Background(), 1, "REWARD-1350", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NeedsSelection {
		t.Fatal("eligible quantity above the cap must demand manual selection")
	}
	if len(result.Eligible) != 2 {
		t.Fatalf("expected two eligible lines, got %d", len(result.Eligible))
	}
	if result.MaxUnits != 2 {
		t.Fatalf("expected cap 2, got %d", result.MaxUnits)
	}
}

func TestApplySelectionEnforcesCap(t *testing.T) {
	coupon := tierCappedCoupon(1350, 2)
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 3, UnitPrice: 1350, SafeCurrency: true},
		model.CartLine{ID: 2, ProductID: 6, Kind: model.KindSkin, TierRP: 1350, Quantity: 2, UnitPrice: 1350, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(&testhelpers.CouponRepositoryStub{}, carts)

	if _, err := uc.ApplySelection(context.Background(), 1, *coupon, map[int64]int{1: 2, 2: 1}); !errors.Is(err, domainErrors.ErrSelectionExceedsCap) {
		t.Fatalf("expected ErrSelectionExceedsCap, got %v", err)
	}

	cart, err := uc.ApplySelection(context.Background(), 1, *coupon, map[int64]int{1: 1, 2: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.SelectedUnits() != 2 {
		t.Fatalf("expected exactly 2 selected units, got %d", cart.SelectedUnits())
	}
}

func TestApplySelectionRejectsIneligibleLine(t *testing.T) {
	coupon := tierCappedCoupon(1350, 5)
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 3, UnitPrice: 1350, SafeCurrency: true},
		model.CartLine{ID: 2, ProductID: 6, Kind: model.KindItem, TierRP: 1350, Quantity: 2, UnitPrice: 500, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(&testhelpers.CouponRepositoryStub{}, carts)

	if _, err := uc.ApplySelection(context.Background(), 1, *coupon, map[int64]int{2: 1}); !errors.Is(err, domainErrors.ErrSelectionExceedsCap) {
		t.Fatalf("expected rejection of ineligible line, got %v", err)
	}
}

func TestRemoveCouponClearsSelections(t *testing.T) {
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 3, SelectedForCoupon: 2, UnitPrice: 1350, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(&testhelpers.CouponRepositoryStub{}, carts)

	cart, err := uc.RemoveCoupon(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.SelectedUnits() != 0 {
		t.Fatalf("expected selections cleared, got %d", cart.SelectedUnits())
	}
}

func TestValidateAndApplyClearsStaleSelections(t *testing.T) {
	// Units selected while a wider coupon was applied must not survive a
	// switch to a coupon with a smaller cap.
	wide := &model.Coupon{
		ID: 8, Code: "WIDE", Kind: model.CouponPercent, Value: 100,
		RewardCoupon: true, RPType: model.RPFilterSafe,
		PriceTier: int64Ptr(1350), MaxUnits: intPtr(3), Category: model.CategorySkins,
	}
	narrow := &model.Coupon{
		ID: 9, Code: "NARROW", Kind: model.CouponPercent, Value: 100,
		RewardCoupon: true, RPType: model.RPFilterSafe,
		PriceTier: int64Ptr(1350), MaxUnits: intPtr(1), Category: model.CategorySkins,
	}
	coupons := &testhelpers.CouponRepositoryStub{Reward: map[string]*model.Coupon{"WIDE": wide, "NARROW": narrow}}
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 2, UnitPrice: 1800, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(coupons, carts)

	result, err := uc.ValidateAndApply(context.Background(), 1, "WIDE", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NeedsSelection || result.Cart.SelectedUnits() != 2 {
		t.Fatalf("expected auto-applied selection of 2 units, got needsSelection=%v units=%d",
			result.NeedsSelection, result.Cart.SelectedUnits())
	}

	result, err = uc.ValidateAndApply(context.Background(), 1, "NARROW", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NeedsSelection {
		t.Fatal("narrower cap must demand a fresh selection")
	}
	if result.Cart.SelectedUnits() != 0 {
		t.Fatalf("stale selections must be cleared, got %d selected units", result.Cart.SelectedUnits())
	}
}

func TestValidateAndApplyKeepsOwnManualSelection(t *testing.T) {
	coupon := tierCappedCoupon(1350, 2)
	coupons := &testhelpers.CouponRepositoryStub{Reward: map[string]*model.Coupon{"REWARD-1350": coupon}}
	carts := cartWithLines(
		model.CartLine{ID: 1, ProductID: 5, Kind: model.KindSkin, TierRP: 1350, Quantity: 3, UnitPrice: 1350, SafeCurrency: true},
	)
	uc := usecase.NewCouponUseCase(coupons, carts)

	result, err := uc.ValidateAndApply(context.Background(), 1, "REWARD-1350", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NeedsSelection {
		t.Fatal("expected manual selection prompt")
	}

	if _, err := uc.ApplySelection(context.Background(), 1, *coupon, map[int64]int{1: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-validating the same code, as checkout does, honors the selection
	// the user just made.
	result, err = uc.ValidateAndApply(context.Background(), 1, "REWARD-1350", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NeedsSelection {
		t.Fatal("a valid stored selection must not be asked for again")
	}
	if result.Cart.SelectedUnits() != 2 {
		t.Fatalf("expected the manual selection kept, got %d units", result.Cart.SelectedUnits())
	}
}
