package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/server/http/dto"
)

// CartHandler manages the authenticated user's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/user/cart.
func (h *CartHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	cart, err := h.facade.Cart(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart, nil))
}

// Add handles POST /api/user/cart.
func (h *CartHandler) Add(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity, req.SafeCurrency)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart, nil))
}

// SetQuantity handles PATCH /api/user/cart/:lineID.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	userID := CurrentUserID(c)
	lineID, err := strconv.ParseInt(c.Param("lineID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.SetCartQuantity(c.Request.Context(), userID, lineID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart, nil))
}

// SwitchCurrency handles PUT /api/user/cart/currency.
func (h *CartHandler) SwitchCurrency(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.SwitchCurrency(c.Request.Context(), userID, req.CurrencyID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart, nil))
}

// Clear handles DELETE /api/user/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.ClearCart(c.Request.Context(), userID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}
