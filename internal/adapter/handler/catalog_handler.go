package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/core/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Register(r *gin.Engine) {
	r.GET("/health", healthHandler("catalog-service"))
	r.GET("/items", h.list)
	r.GET("/items/:id", h.get)
	r.POST("/items", h.create)
	r.PUT("/items/:id/reserve", h.reserve)
	r.PUT("/items/:id/release", h.release)
}

type createItemRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type adjustStockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CatalogHandler) create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.InvalidRequest("invalid request body"))
		return
	}

	item, err := h.svc.Create(c.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.ErrItemNotFound)
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// reserve answers 409 on insufficient stock rather than the taxonomy's
// default 400, so callers can distinguish the conflict from bad input.
func (h *CatalogHandler) reserve(c *gin.Context) {
	id, quantity, ok := h.bindAdjust(c)
	if !ok {
		return
	}

	item, err := h.svc.Reserve(c.Request.Context(), id, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) release(c *gin.Context) {
	id, quantity, ok := h.bindAdjust(c)
	if !ok {
		return
	}

	item, err := h.svc.Release(c.Request.Context(), id, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) bindAdjust(c *gin.Context) (int64, int, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.ErrItemNotFound)
		return 0, 0, false
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.InvalidRequest("invalid request body"))
		return 0, 0, false
	}
	return id, req.Quantity, true
}
