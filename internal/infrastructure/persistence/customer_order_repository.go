package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/sales"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerOrderRepository implements CustomerOrderRepository using GORM
type GormCustomerOrderRepository struct {
	db *gorm.DB
}

// NewGormCustomerOrderRepository creates a new GormCustomerOrderRepository
func NewGormCustomerOrderRepository(db *gorm.DB) *GormCustomerOrderRepository {
	return &GormCustomerOrderRepository{db: db}
}

// FindByID finds a customer order by its ID, items included
func (r *GormCustomerOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.CustomerOrder, error) {
	var order sales.CustomerOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds customer orders matching the filter
func (r *GormCustomerOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.CustomerOrder, error) {
	var orders []sales.CustomerOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.CustomerOrder{}).Preload("Items"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a customer order together with its items
func (r *GormCustomerOrderRepository) Save(ctx context.Context, order *sales.CustomerOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// Count counts customer orders matching the filter
func (r *GormCustomerOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sales.CustomerOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCustomerOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}

	return query
}

// Ensure GormCustomerOrderRepository implements CustomerOrderRepository
var _ sales.CustomerOrderRepository = (*GormCustomerOrderRepository)(nil)
