package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// defaultMovementLimit bounds the movement history page when no limit is given
const defaultMovementLimit = 50

// InventoryHandler handles inventory and stock ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
	ledgerService    *inventoryapp.LedgerService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService, ledgerService *inventoryapp.LedgerService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		ledgerService:    ledgerService,
	}
}

// RecordMovementRequest is a request to append one ledger entry
type RecordMovementRequest struct {
	ProductID     uuid.UUID  `json:"product_id" binding:"required"`
	MovementType  string     `json:"movement_type" binding:"required,movementtype"`
	Quantity      int64      `json:"quantity" binding:"required,min=1"`
	ReferenceType string     `json:"reference_type" binding:"required,referencetype"`
	ReferenceID   *uuid.UUID `json:"reference_id"`
	Notes         string     `json:"notes" binding:"max=500"`
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListLowStock handles GET /inventory/low-stock
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, err := h.inventoryService.ListLowStock(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// Get handles GET /inventory/:productID
func (h *InventoryHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	record, err := h.inventoryService.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Adjust handles POST /inventory/:productID/adjust. It sets the absolute
// stock level by writing the delta through the ledger.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.AdjustAbsolute(c.Request.Context(), productID, req, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// SetReorderPolicy handles PUT /inventory/:productID/reorder-policy
func (h *InventoryHandler) SetReorderPolicy(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req inventoryapp.SetReorderPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.SetReorderPolicy(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Movements handles GET /inventory/:productID/movements. Results are
// reverse-chronological; limit defaults to 50.
func (h *InventoryHandler) Movements(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	limit := defaultMovementLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	movements, err := h.ledgerService.MovementsFor(c.Request.Context(), productID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// RecordMovement handles POST /inventory/movements
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.Record(c.Request.Context(), inventoryapp.RecordMovementInput{
		ProductID:     req.ProductID,
		MovementType:  inventory.MovementType(req.MovementType),
		Quantity:      req.Quantity,
		ReferenceType: inventory.ReferenceType(req.ReferenceType),
		ReferenceID:   req.ReferenceID,
		Notes:         req.Notes,
		ActorID:       getActorID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}
