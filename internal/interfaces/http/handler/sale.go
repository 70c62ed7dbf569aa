package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/storefront/backend/internal/application/sales"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader carries the client-chosen key that makes a sale
// submission safely retryable.
const IdempotencyKeyHeader = "Idempotency-Key"

// SaleHandler handles sale API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// CreateFromOrder handles POST /sales/from-order/:orderID. The referenced
// customer order must be delivered and not previously converted.
func (h *SaleHandler) CreateFromOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	sale, err := h.saleService.CreateSaleFromOrder(c.Request.Context(), orderID, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	if status := c.Query("payment_status"); status != "" {
		filter.Filters["payment_status"] = status
	}

	result, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID handles GET /sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// UpdatePaymentStatus handles PUT /sales/:id/payment-status.
// Payment changes are header metadata only; inventory is never touched.
func (h *SaleHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req salesapp.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.UpdatePaymentStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// UpdatePaymentMethod handles PUT /sales/:id/payment-method
func (h *SaleHandler) UpdatePaymentMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req salesapp.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.UpdatePaymentMethod(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
