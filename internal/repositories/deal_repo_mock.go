package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"dealspot/internal/models"

	"github.com/google/uuid"
)

// MockDealRepository is an in-memory implementation of DealRepository.
// It mirrors the GORM repository's filtering, ordering, and tenant scoping
// so the server can run without a database.
type MockDealRepository struct {
	deals map[string]models.Deal
	mu    sync.RWMutex
}

// NewMockDealRepository creates a new instance of MockDealRepository.
func NewMockDealRepository() *MockDealRepository {
	return &MockDealRepository{
		deals: make(map[string]models.Deal),
	}
}

func dealMatches(deal models.Deal, merchantID string, filter DealFilter) bool {
	if deal.MerchantID != merchantID {
		return false
	}
	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(deal.Title), term) &&
			!strings.Contains(strings.ToLower(deal.Description), term) {
			return false
		}
	}
	if filter.Active != nil && deal.Active != *filter.Active {
		return false
	}
	return true
}

// ListByMerchant returns a page of the merchant's deals, newest first.
func (r *MockDealRepository) ListByMerchant(merchantID string, filter DealFilter) ([]models.Deal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Deal, 0)
	for _, deal := range r.deals {
		if dealMatches(deal, merchantID, filter) {
			matched = append(matched, deal)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByMerchant returns the merchant's deal, or ErrDealNotFound when it is
// missing or owned by someone else.
func (r *MockDealRepository) GetByMerchant(merchantID, dealID string) (*models.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deal, ok := r.deals[dealID]
	if !ok || deal.MerchantID != merchantID {
		return nil, ErrDealNotFound
	}
	return &deal, nil
}

// Create adds a new deal.
func (r *MockDealRepository) Create(deal *models.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	// Preset timestamps are kept, matching GORM's create behavior.
	now := time.Now()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = now
	}
	if deal.UpdatedAt.IsZero() {
		deal.UpdatedAt = now
	}
	r.deals[deal.ID] = *deal
	return nil
}

// Update replaces the mutable fields of an existing deal.
func (r *MockDealRepository) Update(deal *models.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.deals[deal.ID]
	if !ok || stored.MerchantID != deal.MerchantID {
		return ErrDealNotFound
	}
	stored.Title = deal.Title
	stored.Description = deal.Description
	stored.Active = deal.Active
	stored.UpdatedAt = time.Now()
	r.deals[deal.ID] = stored
	deal.CreatedAt = stored.CreatedAt
	deal.UpdatedAt = stored.UpdatedAt
	return nil
}

// DeleteByMerchant removes the merchant's deal.
func (r *MockDealRepository) DeleteByMerchant(merchantID, dealID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deal, ok := r.deals[dealID]
	if !ok || deal.MerchantID != merchantID {
		return ErrDealNotFound
	}
	delete(r.deals, dealID)
	return nil
}
