package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/pkg/format"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "malformed request body")
		return
	}
	sub, ok := req.Submission()
	if !ok {
		abortBadRequest(c, "malformed order date")
		return
	}

	placement, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), sub)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPlacementResponse(placement))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// ListByOwner handles GET /api/orders/user/:userId.
func (h *OrderHandler) ListByOwner(c *gin.Context) {
	ownerID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := h.facade.OwnerOrders(c.Request.Context(), CurrentUserID(c), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(orders))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	page := model.PageRequest{Page: queryInt(c, "page"), Limit: queryInt(c, "limit")}
	result, err := h.facade.AllOrders(c.Request.Context(), CurrentUserID(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderPageResponse(result))
}

// Summary handles GET /api/orders/summary.
func (h *OrderHandler) Summary(c *gin.Context) {
	summary, err := h.facade.OrderSummary(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}

// Document handles GET /api/orders/:id/document.
func (h *OrderHandler) Document(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	order, document, err := h.facade.OrderDocument(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+format.DocumentFileName(order.ID)+`"`)
	c.Data(http.StatusOK, "application/pdf", document)
}

// Resend handles POST /api/orders/:id/document.
func (h *OrderHandler) Resend(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	receipt, err := h.facade.ResendDocument(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResendResponse{
		Message: "delivery note sent",
		Email:   receipt.Recipient,
		OrderID: receipt.OrderID,
	})
}
