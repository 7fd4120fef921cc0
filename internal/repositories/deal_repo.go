package repositories

import (
	"errors"

	"dealspot/internal/models"
)

// ErrDealNotFound is returned when a deal does not exist for the given
// merchant. A deal owned by another merchant reports the same error so the
// two cases cannot be told apart by a caller.
var ErrDealNotFound = errors.New("deal not found")

// DealFilter narrows a merchant-scoped deal listing.
// Search matches title or description case-insensitively by substring.
// Active filters on the active flag when non-nil.
type DealFilter struct {
	Search string
	Active *bool
	Offset int
	Limit  int
}

// DealRepository defines the interface for deal data access. Every method
// takes the owning merchant id so tenant scoping happens inside the query,
// not in the callers.
type DealRepository interface {
	ListByMerchant(merchantID string, filter DealFilter) ([]models.Deal, int64, error)
	GetByMerchant(merchantID, dealID string) (*models.Deal, error)
	Create(deal *models.Deal) error
	Update(deal *models.Deal) error
	DeleteByMerchant(merchantID, dealID string) error
}
