package repositories

import (
	"errors"
	"fmt"

	"dealspot/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMerchantRepository is a GORM implementation of MerchantRepository.
type GORMMerchantRepository struct {
	db *gorm.DB
}

// NewGORMMerchantRepository creates a new instance of GORMMerchantRepository.
func NewGORMMerchantRepository(db *gorm.DB) *GORMMerchantRepository {
	return &GORMMerchantRepository{
		db: db,
	}
}

// Create creates a new merchant in the database.
func (r *GORMMerchantRepository) Create(merchant *models.Merchant) error {
	if merchant.ID == "" {
		merchant.ID = uuid.New().String()
	}
	if err := r.db.Create(merchant).Error; err != nil {
		return fmt.Errorf("failed to create merchant: %w", err)
	}
	return nil
}

// GetByID retrieves a merchant by its ID from the database.
func (r *GORMMerchantRepository) GetByID(id string) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.First(&merchant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("failed to get merchant by ID %s: %w", id, err)
	}
	return &merchant, nil
}

// GetByName retrieves a merchant by its name from the database.
func (r *GORMMerchantRepository) GetByName(name string) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.First(&merchant, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("failed to get merchant by name %s: %w", name, err)
	}
	return &merchant, nil
}
