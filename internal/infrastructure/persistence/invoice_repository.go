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

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FetchPageByStatus returns up to limit invoices with the given status ordered by id
func (r *GormInvoiceRepository) FetchPageByStatus(ctx context.Context, status billing.InvoiceStatus, limit, offset int) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels)
}

// Update persists every field of the invoice
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]any{
			"customer_id": model.CustomerID,
			"amount":      model.Amount,
			"currency":    model.Currency,
			"status":      model.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return billing.ErrInvoiceNotFound
	}
	return nil
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Invoice{}, billing.ErrInvoiceNotFound
		}
		return billing.Invoice{}, err
	}
	return model.ToDomain()
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter, InvoiceSortFields)
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels)
}

// Count returns the total number of invoices
func (r *GormInvoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Count(&count).Error
	return count, err
}

// Create stores a new invoice. A zero ID is assigned by the database.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice billing.Invoice) (billing.Invoice, error) {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return billing.Invoice{}, err
	}
	return model.ToDomain()
}

func toDomainInvoices(invoiceModels []models.InvoiceModel) ([]billing.Invoice, error) {
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		inv, err := invoiceModels[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", invoiceModels[i].ID, err)
		}
		invoices[i] = inv
	}
	return invoices, nil
}

// applyFilter applies ordering and pagination from filter
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "id")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	return query
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
