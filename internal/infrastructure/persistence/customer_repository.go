package persistence

import (
	"context"
	"fmt"

	"github.com/bookstore/backend/internal/domain/party"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint64) (*party.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a customer by its unique email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*party.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Exists reports whether a customer with the given ID exists
func (r *GormCustomerRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a customer and assigns its ID
func (r *GormCustomerRepository) Save(ctx context.Context, customer *party.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewConflictError("EMAIL_EXISTS", fmt.Sprintf("Customer with email %s already exists", customer.Email))
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	customer.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ party.CustomerRepository = (*GormCustomerRepository)(nil)
