package repositories

import (
	"errors"

	"dealspot/internal/models"
)

// ErrMerchantNotFound is returned when no merchant matches the lookup.
var ErrMerchantNotFound = errors.New("merchant not found")

// MerchantRepository defines the interface for merchant data access.
// Merchants are created by seeding or admin action, never via the public API.
type MerchantRepository interface {
	Create(merchant *models.Merchant) error
	GetByID(id string) (*models.Merchant, error)
	GetByName(name string) (*models.Merchant, error)
}
