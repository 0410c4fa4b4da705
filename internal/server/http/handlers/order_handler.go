package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkoval/rpmarket/internal/countdown"
	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/server/http/dto"
)

// OrderHandler manages checkout and order history endpoints.
type OrderHandler struct {
	facade      OrderFacade
	receiptsDir string
}

// NewOrderHandler constructs OrderHandler. Uploaded receipts are stored
// under receiptsDir.
func NewOrderHandler(facade OrderFacade, receiptsDir string) *OrderHandler {
	return &OrderHandler{facade: facade, receiptsDir: receiptsDir}
}

// Create handles POST /api/user/orders (multipart checkout form).
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var form dto.PurchaseForm
	if err := c.ShouldBind(&form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	receiptFile := ""
	if file, err := c.FormFile("receipt"); err == nil {
		receiptFile = uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.receiptsDir, receiptFile)); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	order, err := h.facade.Purchase(c.Request.Context(), userID, PurchaseInput{
		Payment:     form.Payment,
		RiotName:    form.RiotName,
		DiscordName: form.DiscordName,
		Region:      form.Region,
		CouponCode:  form.Coupon,
		ReceiptFile: receiptFile,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInvalidCoupon), errors.Is(err, domainErrors.ErrSelectionRequired):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/user/orders/:orderID. Order lines are enriched
// with game data fetched concurrently; a failed lookup marks the single
// item instead of failing the whole view.
func (h *OrderHandler) Detail(c *gin.Context) {
	userID := CurrentUserID(c)
	order, err := h.facade.Order(c.Request.Context(), userID, c.Param("orderID"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.OrderDetailResponse{OrderResponse: toOrderResponse(*order)}
	productIDs := make([]int64, 0, len(order.Lines))
	for _, l := range order.Lines {
		response.Lines = append(response.Lines, dto.OrderLineResponse{
			ProductID:    l.ProductID,
			Kind:         string(l.Kind),
			Name:         l.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			SafeCurrency: l.SafeCurrency,
		})
		productIDs = append(productIDs, l.ProductID)
	}

	for _, r := range h.facade.ItemDetails(c.Request.Context(), productIDs) {
		item := dto.ItemDetailResponse{ProductID: r.ProductID}
		if r.Err != nil || r.Detail == nil {
			item.Error = true
		} else {
			item.Title = r.Detail.Title
			item.SplashURL = r.Detail.SplashURL
			item.Rarity = r.Detail.Rarity
			item.Description = r.Detail.Description
		}
		response.Items = append(response.Items, item)
	}

	c.JSON(http.StatusOK, response)
}

// Confirm handles POST /api/user/orders/:orderID/confirm.
func (h *OrderHandler) Confirm(c *gin.Context) {
	userID := CurrentUserID(c)
	order, err := h.facade.ConfirmOrder(c.Request.Context(), userID, c.Param("orderID"))
	if err != nil {
		respondConfirmError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Countdown handles GET /api/user/orders/:orderID/countdown. It streams the
// remaining confirmation time as server-sent events, one tick per second,
// and closes the stream once the timer expires. The worker finalizes the
// order server-side; this stream only keeps the displayed countdown fresh.
func (h *OrderHandler) Countdown(c *gin.Context) {
	userID := CurrentUserID(c)
	order, err := h.facade.Order(c.Request.Context(), userID, c.Param("orderID"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if order.TimerEndsAt == nil {
		c.Status(http.StatusNoContent)
		return
	}

	ticks := make(chan string, 1)
	expired := make(chan struct{})

	ticker := countdown.NewTicker(time.Second)
	defer ticker.Stop()
	ticker.Watch(c.Request.Context(), *order.TimerEndsAt, func(remaining string) {
		select {
		case ticks <- remaining:
		default:
		}
	}, func() {
		close(expired)
	})

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case remaining := <-ticks:
			c.SSEvent("tick", remaining)
			return true
		case <-expired:
			c.SSEvent(countdown.Expired, countdown.Expired)
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// MarkViewed handles POST /api/user/orders/:orderID/viewed.
func (h *OrderHandler) MarkViewed(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.MarkOrderViewed(c.Request.Context(), userID, c.Param("orderID")); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// Unread handles GET /api/user/orders/unread.
func (h *OrderHandler) Unread(c *gin.Context) {
	userID := CurrentUserID(c)
	count, err := h.facade.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadResponse{Unread: count})
}

// Redeems handles GET /api/user/redeems.
func (h *OrderHandler) Redeems(c *gin.Context) {
	userID := CurrentUserID(c)
	redeems, err := h.facade.Redeems(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(redeems) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.RedeemResponse, 0, len(redeems))
	for _, r := range redeems {
		response = append(response, toRedeemResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// ConfirmRedeem handles POST /api/user/redeems/:redeemID/confirm.
func (h *OrderHandler) ConfirmRedeem(c *gin.Context) {
	userID := CurrentUserID(c)
	redeem, err := h.facade.ConfirmRedeem(c.Request.Context(), userID, c.Param("redeemID"))
	if err != nil {
		respondConfirmError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRedeemResponse(*redeem))
}

func respondConfirmError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNotConfirmable):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrAlreadyConfirmed):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
