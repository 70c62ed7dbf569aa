package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/purchasing"
)

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   *uuid.UUID                      `json:"supplier_id"`
	SupplierName string                          `json:"supplier_name" binding:"max=200"`
	ExpectedDate *time.Time                      `json:"expected_date"`
	Notes        string                          `json:"notes" binding:"max=500"`
	Items        []CreatePurchaseOrderItemInput  `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseOrderItemInput represents one line in the create request
type CreatePurchaseOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// UpdateStatusRequest performs an administrative status transition
type UpdateStatusRequest struct {
	Status       string     `json:"status" binding:"required,oneof=pending ordered received cancelled"`
	ReceivedDate *time.Time `json:"received_date"`
}

// ReceiveItemsRequest records one receiving batch against an order
type ReceiveItemsRequest struct {
	Lines []ReceiveLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ReceiveLineInput is one received line in a batch
type ReceiveLineInput struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int64     `json:"quantity" binding:"required,min=1"`
}

// PurchaseOrderItemResponse represents an order line in API responses
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int64           `json:"quantity"`
	ReceivedQuantity int64           `json:"received_quantity"`
	RemainingQuantity int64          `json:"remaining_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   *uuid.UUID                  `json:"supplier_id,omitempty"`
	SupplierName string                      `json:"supplier_name,omitempty"`
	Status       string                      `json:"status"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	ReceivedDate *time.Time                  `json:"received_date,omitempty"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Notes        string                      `json:"notes,omitempty"`
	Items        []PurchaseOrderItemResponse `json:"items"`
}

// StatusSummaryResponse counts purchase orders per status
type StatusSummaryResponse struct {
	Pending   int64 `json:"pending"`
	Ordered   int64 `json:"ordered"`
	Received  int64 `json:"received"`
	Cancelled int64 `json:"cancelled"`
}

// ToPurchaseOrderResponse converts a domain order to a response DTO
func ToPurchaseOrderResponse(order *purchasing.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			UnitCost:          item.UnitCost,
			TotalCost:         item.TotalCost,
		}
	}

	return PurchaseOrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		SupplierID:   order.SupplierID,
		SupplierName: order.SupplierName,
		Status:       order.Status.String(),
		OrderDate:    order.OrderDate,
		ExpectedDate: order.ExpectedDate,
		ReceivedDate: order.ReceivedDate,
		TotalAmount:  order.TotalAmount,
		Notes:        order.Notes,
		Items:        items,
	}
}

// ToPurchaseOrderResponses converts a slice of domain orders to response DTOs
func ToPurchaseOrderResponses(orders []purchasing.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses
}
