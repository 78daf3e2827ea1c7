package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements billing.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (billing.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Customer{}, billing.ErrCustomerNotFound
		}
		return billing.Customer{}, err
	}
	return model.ToDomain()
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Customer, error) {
	var customerModels []models.CustomerModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter, CustomerSortFields)
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]billing.Customer, len(customerModels))
	for i := range customerModels {
		c, err := customerModels[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", customerModels[i].ID, err)
		}
		customers[i] = c
	}
	return customers, nil
}

// Count returns the total number of customers
func (r *GormCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Count(&count).Error
	return count, err
}

// Create stores a new customer. A zero ID is assigned by the database.
func (r *GormCustomerRepository) Create(ctx context.Context, customer billing.Customer) (billing.Customer, error) {
	model := models.CustomerModelFromDomain(customer)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return billing.Customer{}, err
	}
	return model.ToDomain()
}

var _ billing.CustomerRepository = (*GormCustomerRepository)(nil)
