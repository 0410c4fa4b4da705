package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/server/http/dto"
)

// LoyaltyHandler serves the points balance and the reward shop.
type LoyaltyHandler struct {
	facade LoyaltyFacade
}

// NewLoyaltyHandler constructs LoyaltyHandler.
func NewLoyaltyHandler(facade LoyaltyFacade) *LoyaltyHandler {
	return &LoyaltyHandler{facade: facade}
}

// Summary handles GET /api/user/loyalty.
func (h *LoyaltyHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	summary, err := h.facade.LoyaltySummary(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.LoyaltyResponse{Current: summary.Current, Spent: summary.Spent})
}

// History handles GET /api/user/loyalty/history.
func (h *LoyaltyHandler) History(c *gin.Context) {
	userID := CurrentUserID(c)
	entries, err := h.facade.LoyaltyHistory(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.LoyaltyEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.LoyaltyEntryResponse{
			Points:      e.Points,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Rewards handles GET /api/user/loyalty/rewards.
func (h *LoyaltyHandler) Rewards(c *gin.Context) {
	offers := h.facade.RewardOffers()
	response := make([]dto.RewardOfferResponse, 0, len(offers))
	for _, o := range offers {
		response = append(response, dto.RewardOfferResponse{TierRP: o.TierRP, MaxUnits: o.MaxUnits, Cost: o.Cost})
	}
	c.JSON(http.StatusOK, response)
}

// Redeem handles POST /api/user/loyalty/redeem.
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.RedeemRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	redeem, err := h.facade.RedeemReward(c.Request.Context(), userID, req.TierRP)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInsufficientPoints):
			c.Status(http.StatusPaymentRequired)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toRedeemResponse(*redeem))
}
