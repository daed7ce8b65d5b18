package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/core/service"
)

type OrderHandler struct {
	svc      *service.OrderService
	validate *validatorv10.Validate
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc, validate: validatorv10.New()}
}

func (h *OrderHandler) Register(r *gin.Engine) {
	r.GET("/health", healthHandler("order-service"))
	r.GET("/orders", h.list)
	r.GET("/orders/:id", h.get)
	r.POST("/orders", h.place)
}

type placeOrderRequest struct {
	AccountID int64 `json:"accountId" validate:"required,gt=0"`
	ItemID    int64 `json:"itemId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

func (h *OrderHandler) place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.InvalidRequest("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(c, domain.InvalidRequest("accountId, itemId and quantity are required and must be positive"))
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), req.AccountID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.ErrOrderNotFound)
		return
	}

	order, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) list(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
