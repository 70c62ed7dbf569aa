package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inventoryHandlerFixture struct {
	router        *gin.Engine
	inventoryRepo *MockInventoryRepository
	movementRepo  *MockStockMovementRepository
}

func newInventoryHandlerFixture(t *testing.T) *inventoryHandlerFixture {
	t.Helper()
	f := &inventoryHandlerFixture{
		inventoryRepo: new(MockInventoryRepository),
		movementRepo:  new(MockStockMovementRepository),
	}

	scope := inventoryapp.NewNoOpTransactionScope(f.inventoryRepo, f.movementRepo, nil, nil)
	ledger := inventoryapp.NewLedgerService(scope, f.movementRepo)
	service := inventoryapp.NewInventoryService(scope, f.inventoryRepo, ledger)
	h := NewInventoryHandler(service, ledger)

	f.router = gin.New()
	f.router.GET("/inventory/:productID", h.Get)
	f.router.POST("/inventory/:productID/adjust", h.Adjust)
	f.router.GET("/inventory/:productID/movements", h.Movements)
	f.router.POST("/inventory/movements", h.RecordMovement)
	return f
}

func recordWithStock(t *testing.T, productID uuid.UUID, onHand int64) *inventory.InventoryRecord {
	t.Helper()
	record, err := inventory.NewInventoryRecord(productID)
	require.NoError(t, err)
	record.QuantityOnHand = onHand
	return record
}

func TestInventoryHandler_Get(t *testing.T) {
	f := newInventoryHandlerFixture(t)
	productID := uuid.New()

	f.inventoryRepo.On("FindByProductID", mock.Anything, productID).
		Return(recordWithStock(t, productID, 12), nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/"+productID.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), data["quantity_on_hand"])
}

func TestInventoryHandler_Get_InvalidID(t *testing.T) {
	f := newInventoryHandlerFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/nope", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventoryHandler_Movements_DefaultLimit(t *testing.T) {
	f := newInventoryHandlerFixture(t)
	productID := uuid.New()

	f.movementRepo.On("FindByProductID", mock.Anything, productID, defaultMovementLimit).
		Return([]inventory.StockMovement{}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/"+productID.String()+"/movements", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	f.movementRepo.AssertExpectations(t)
}

func TestInventoryHandler_Movements_RejectsBadLimit(t *testing.T) {
	f := newInventoryHandlerFixture(t)
	productID := uuid.New()

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/"+productID.String()+"/movements?limit=zero", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.movementRepo.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryHandler_RecordMovement_InvalidType(t *testing.T) {
	f := newInventoryHandlerFixture(t)

	body, _ := json.Marshal(gin.H{
		"product_id":     uuid.New().String(),
		"movement_type":  "sideways",
		"quantity":       5,
		"reference_type": "adjustment",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inventory/movements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.movementRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestInventoryHandler_RecordMovement_InsufficientStock(t *testing.T) {
	f := newInventoryHandlerFixture(t)
	productID := uuid.New()

	f.inventoryRepo.On("FindByProductIDForUpdate", mock.Anything, productID).
		Return(recordWithStock(t, productID, 1), nil)

	body, _ := json.Marshal(gin.H{
		"product_id":     productID.String(),
		"movement_type":  "out",
		"quantity":       5,
		"reference_type": "adjustment",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inventory/movements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeInsufficientStock, resp.Error.Code)
	f.movementRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestInventoryHandler_RecordMovement_UnknownProduct(t *testing.T) {
	f := newInventoryHandlerFixture(t)
	productID := uuid.New()

	f.inventoryRepo.On("FindByProductIDForUpdate", mock.Anything, productID).
		Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(gin.H{
		"product_id":     productID.String(),
		"movement_type":  "in",
		"quantity":       5,
		"reference_type": "purchase",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inventory/movements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeUnknownProduct, resp.Error.Code)
}

func TestInventoryHandler_Adjust(t *testing.T) {
	f := newInventoryHandlerFixture(t)
	productID := uuid.New()

	f.inventoryRepo.On("FindByProductIDForUpdate", mock.Anything, productID).
		Return(recordWithStock(t, productID, 10), nil)
	f.movementRepo.On("Append", mock.Anything, mock.MatchedBy(func(mvt *inventory.StockMovement) bool {
		return mvt.MovementType == inventory.MovementTypeOut &&
			mvt.Quantity == 4 &&
			mvt.ReferenceType == inventory.ReferenceTypeAdjustment
	})).Return(nil)
	f.inventoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.InventoryRecord")).Return(nil)

	body, _ := json.Marshal(gin.H{"new_quantity": 6, "notes": "cycle count"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inventory/"+productID.String()+"/adjust", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), data["quantity_on_hand"])
	f.movementRepo.AssertExpectations(t)
}
