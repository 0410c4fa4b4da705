package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkoval/rpmarket/internal/countdown"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/server/http/dto"
	"github.com/mkoval/rpmarket/internal/server/http/middleware"
	"github.com/mkoval/rpmarket/internal/usecase"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toCartResponse(cart model.Cart, coupon *model.Coupon) dto.CartResponse {
	lines := make([]dto.CartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, dto.CartLineResponse{
			ID:                l.ID,
			ProductID:         l.ProductID,
			Kind:              string(l.Kind),
			Name:              l.Name,
			TierRP:            l.TierRP,
			Quantity:          l.Quantity,
			UnitPrice:         l.UnitPrice,
			SafeCurrency:      l.SafeCurrency,
			SelectedForCoupon: l.SelectedForCoupon,
		})
	}
	total := usecase.ComputeTotal(cart, coupon)
	return dto.CartResponse{
		CurrencyID:     cart.CurrencyID,
		Lines:          lines,
		Subtotal:       cart.Subtotal(),
		Total:          total,
		FormattedTotal: usecase.FormatAmount(total),
	}
}

func remaining(timerEndsAt *time.Time) string {
	if timerEndsAt == nil {
		return ""
	}
	return countdown.FormatRemaining(time.Until(*timerEndsAt))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:             order.PublicID,
		StatusID:       order.StatusID,
		Confirmed:      order.Confirmed,
		ConfirmedAt:    order.ConfirmedAt,
		TimerEndsAt:    order.TimerEndsAt,
		Remaining:      remaining(order.TimerEndsAt),
		Total:          order.Total,
		FormattedTotal: usecase.FormatAmount(order.Total),
		Viewed:         order.Viewed,
		CreatedAt:      order.CreatedAt,
	}
}

func toRedeemResponse(redeem model.Redeem) dto.RedeemResponse {
	return dto.RedeemResponse{
		ID:          redeem.PublicID,
		StatusID:    redeem.StatusID,
		Confirmed:   redeem.Confirmed,
		ConfirmedAt: redeem.ConfirmedAt,
		TimerEndsAt: redeem.TimerEndsAt,
		Remaining:   remaining(redeem.TimerEndsAt),
		PointsSpent: redeem.PointsSpent,
		CreatedAt:   redeem.CreatedAt,
	}
}
