package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
	"github.com/mkoval/rpmarket/internal/server/http/dto"
)

const defaultPageSize = 24

// CatalogHandler serves public product, currency and status catalogs.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Products handles GET /api/catalog/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	filter := repository.ProductFilter{
		Search:   c.Query("search"),
		PageSize: defaultPageSize,
	}

	if kind := c.Query("kind"); kind != "" {
		k := model.ProductKind(kind)
		filter.Kind = &k
	}
	if tier := c.Query("tier"); tier != "" {
		v, err := strconv.ParseInt(tier, 10, 64)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		filter.TierRP = &v
	}
	if page := c.Query("page"); page != "" {
		v, err := strconv.Atoi(page)
		if err != nil || v < 0 {
			c.Status(http.StatusBadRequest)
			return
		}
		filter.Page = v
	}

	products, err := h.facade.Products(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Currencies handles GET /api/catalog/currencies.
func (h *CatalogHandler) Currencies(c *gin.Context) {
	currencies, err := h.facade.Currencies(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CurrencyResponse, 0, len(currencies))
	for _, cur := range currencies {
		response = append(response, dto.CurrencyResponse{ID: cur.ID, Code: cur.Code, Symbol: cur.Symbol, Rate: cur.Rate})
	}
	c.JSON(http.StatusOK, response)
}

// Statuses handles GET /api/catalog/statuses.
func (h *CatalogHandler) Statuses(c *gin.Context) {
	statuses, err := h.facade.Statuses(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.StatusResponse, 0, len(statuses))
	for _, s := range statuses {
		response = append(response, dto.StatusResponse{
			ID:                   s.ID,
			Name:                 s.Name,
			Color:                s.Color,
			Description:          s.Description,
			RequiresConfirmation: s.RequiresConfirmation,
			ConfirmButtonText:    s.ConfirmButtonText,
		})
	}
	c.JSON(http.StatusOK, response)
}

func toProductResponse(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:           p.ID,
		Kind:         string(p.Kind),
		Name:         p.Name,
		TierRP:       p.TierRP,
		PriceSafeRP:  p.PriceSafeRP,
		PriceCheapRP: p.PriceCheapRP,
		ImageURL:     p.ImageURL,
	}
	if p.Unranked != nil {
		resp.Unranked = &dto.UnrankedMetaResponse{
			Region:      p.Unranked.Region,
			Level:       p.Unranked.Level,
			BlueEssence: p.Unranked.BlueEssence,
		}
	}
	return resp
}
