package repositories

import (
	"sync"
	"time"

	"dealspot/internal/models"

	"github.com/google/uuid"
)

// MockMerchantRepository is an in-memory implementation of MerchantRepository.
type MockMerchantRepository struct {
	merchants map[string]models.Merchant
	mu        sync.RWMutex
}

// NewMockMerchantRepository creates a new instance of MockMerchantRepository.
func NewMockMerchantRepository() *MockMerchantRepository {
	return &MockMerchantRepository{
		merchants: make(map[string]models.Merchant),
	}
}

// Create adds a new merchant.
func (r *MockMerchantRepository) Create(merchant *models.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if merchant.ID == "" {
		merchant.ID = uuid.New().String()
	}
	now := time.Now()
	merchant.CreatedAt = now
	merchant.UpdatedAt = now
	r.merchants[merchant.ID] = *merchant
	return nil
}

// GetByID returns the merchant with the given ID.
func (r *MockMerchantRepository) GetByID(id string) (*models.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	merchant, ok := r.merchants[id]
	if !ok {
		return nil, ErrMerchantNotFound
	}
	return &merchant, nil
}

// GetByName returns the first merchant with the given name.
func (r *MockMerchantRepository) GetByName(name string) (*models.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, merchant := range r.merchants {
		if merchant.Name == name {
			return &merchant, nil
		}
	}
	return nil, ErrMerchantNotFound
}
