package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/server/http/dto"
	"github.com/mkoval/rpmarket/internal/usecase"
)

// CouponHandler validates coupon codes and applies unit selections.
type CouponHandler struct {
	facade CouponFacade
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(facade CouponFacade) *CouponHandler {
	return &CouponHandler{facade: facade}
}

// Apply handles POST /api/user/coupon.
func (h *CouponHandler) Apply(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.ApplyCoupon(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(result))
}

// ApplySelection handles POST /api/user/coupon/selection.
func (h *CouponHandler) ApplySelection(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	selections := make(map[int64]int, len(req.Selections))
	for _, s := range req.Selections {
		selections[s.LineID] = s.Units
	}

	result, err := h.facade.ApplySelection(c.Request.Context(), userID, req.Code, selections)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(result))
}

// Remove handles DELETE /api/user/coupon.
func (h *CouponHandler) Remove(c *gin.Context) {
	userID := CurrentUserID(c)
	cart, err := h.facade.RemoveCoupon(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart, nil))
}

func respondCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidCoupon):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNoEligibleItems),
		errors.Is(err, domainErrors.ErrSelectionExceedsCap):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toCouponResponse(result *usecase.ApplyResult) dto.CouponResponse {
	resp := dto.CouponResponse{
		Code:           result.Coupon.Code,
		Kind:           string(result.Coupon.Kind),
		Value:          result.Coupon.Value,
		RewardCoupon:   result.Coupon.RewardCoupon,
		MaxUnits:       result.MaxUnits,
		NeedsSelection: result.NeedsSelection,
	}
	for _, l := range result.Eligible {
		resp.EligibleLineIDs = append(resp.EligibleLineIDs, l.ID)
	}
	if result.Cart != nil {
		coupon := result.Coupon
		if result.NeedsSelection {
			// Pricing waits for the manual selection.
			coupon = nil
		}
		resp.Cart = toCartResponse(*result.Cart, coupon)
	}
	return resp
}
