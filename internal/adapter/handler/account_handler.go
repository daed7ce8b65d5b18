package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/core/service"
)

type AccountHandler struct {
	svc *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) Register(r *gin.Engine) {
	r.GET("/health", healthHandler("account-service"))
	r.GET("/accounts", h.list)
	r.GET("/accounts/:id", h.get)
	r.POST("/accounts", h.create)
}

type createAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AccountHandler) create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.InvalidRequest("invalid request body"))
		return
	}

	account, err := h.svc.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.ErrAccountNotFound)
		return
	}

	account, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) list(c *gin.Context) {
	accounts, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func healthHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": name, "status": "healthy"})
	}
}
