package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type productHandlerFixture struct {
	router        *gin.Engine
	productRepo   *MockProductRepository
	inventoryRepo *MockInventoryRepository
}

func newProductHandlerFixture(t *testing.T) *productHandlerFixture {
	t.Helper()
	f := &productHandlerFixture{
		productRepo:   new(MockProductRepository),
		inventoryRepo: new(MockInventoryRepository),
	}

	service := catalogapp.NewProductService(f.productRepo, f.inventoryRepo)
	h := NewProductHandler(service)

	f.router = gin.New()
	f.router.POST("/products", h.Create)
	f.router.GET("/products", h.List)
	f.router.GET("/products/:id", h.GetByID)
	f.router.POST("/products/:id/deactivate", h.Deactivate)
	return f
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_Create(t *testing.T) {
	f := newProductHandlerFixture(t)

	f.productRepo.On("FindBySKU", mock.Anything, "SKU-WIDGET").Return(nil, shared.ErrNotFound)
	f.productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	f.inventoryRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(newEmptyRecord(t), nil)

	body, _ := json.Marshal(gin.H{
		"sku":        "sku-widget",
		"name":       "Widget",
		"unit_price": "9.99",
		"unit_cost":  "4.50",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SKU-WIDGET", data["sku"])
	assert.Equal(t, "active", data["status"])
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	f := newProductHandlerFixture(t)

	body, _ := json.Marshal(gin.H{"sku": "SKU-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	f := newProductHandlerFixture(t)
	id := uuid.New()

	f.productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeNotFound, resp.Error.Code)
}

func TestProductHandler_GetByID_InvalidID(t *testing.T) {
	f := newProductHandlerFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_WithMeta(t *testing.T) {
	f := newProductHandlerFixture(t)

	product, err := catalog.NewProduct("SKU-WIDGET", "Widget", decimal.NewFromInt(9), decimal.NewFromInt(4))
	require.NoError(t, err)

	f.productRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*product}, nil)
	f.productRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?page=1&page_size=10", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.PageSize)
}
