package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
)

// RecordMovementInput carries everything needed to append one ledger entry
type RecordMovementInput struct {
	ProductID     uuid.UUID
	MovementType  inventory.MovementType
	Quantity      int64
	ReferenceType inventory.ReferenceType
	ReferenceID   *uuid.UUID
	Notes         string
	ActorID       *uuid.UUID
}

// AdjustStockRequest sets the absolute stock level for a product
type AdjustStockRequest struct {
	NewQuantity int64  `json:"new_quantity" binding:"min=0"`
	Notes       string `json:"notes" binding:"max=500"`
}

// SetReorderPolicyRequest updates reorder thresholds
type SetReorderPolicyRequest struct {
	ReorderLevel    int64 `json:"reorder_level" binding:"min=0"`
	ReorderQuantity int64 `json:"reorder_quantity" binding:"min=0"`
}

// InventoryResponse represents an inventory record in API responses
type InventoryResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	QuantityOnHand   int64     `json:"quantity_on_hand"`
	ReservedQuantity int64     `json:"reserved_quantity"`
	ReorderLevel     int64     `json:"reorder_level"`
	ReorderQuantity  int64     `json:"reorder_quantity"`
	LowStock         bool      `json:"low_stock"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToInventoryResponse converts a domain record to a response DTO
func ToInventoryResponse(record *inventory.InventoryRecord) InventoryResponse {
	return InventoryResponse{
		ID:               record.ID,
		ProductID:        record.ProductID,
		QuantityOnHand:   record.QuantityOnHand,
		ReservedQuantity: record.ReservedQuantity,
		ReorderLevel:     record.ReorderLevel,
		ReorderQuantity:  record.ReorderQuantity,
		LowStock:         record.IsLowStock(),
		UpdatedAt:        record.UpdatedAt,
	}
}

// ToInventoryResponses converts a slice of domain records to response DTOs
func ToInventoryResponses(records []inventory.InventoryRecord) []InventoryResponse {
	responses := make([]InventoryResponse, len(records))
	for i := range records {
		responses[i] = ToInventoryResponse(&records[i])
	}
	return responses
}

// MovementResponse represents a ledger entry in API responses
type MovementResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	MovementType  string     `json:"movement_type"`
	Quantity      int64      `json:"quantity"`
	BalanceBefore int64      `json:"balance_before"`
	BalanceAfter  int64      `json:"balance_after"`
	ReferenceType string     `json:"reference_type"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	ActorID       *uuid.UUID `json:"actor_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// ToMovementResponse converts a domain movement to a response DTO
func ToMovementResponse(mvt *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            mvt.ID,
		ProductID:     mvt.ProductID,
		MovementType:  mvt.MovementType.String(),
		Quantity:      mvt.Quantity,
		BalanceBefore: mvt.BalanceBefore,
		BalanceAfter:  mvt.BalanceAfter,
		ReferenceType: mvt.ReferenceType.String(),
		ReferenceID:   mvt.ReferenceID,
		Notes:         mvt.Notes,
		ActorID:       mvt.ActorID,
		OccurredAt:    mvt.OccurredAt,
	}
}

// ToMovementResponses converts a slice of domain movements to response DTOs
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
