package repositories

import (
	"errors"
	"fmt"
	"strings"

	"dealspot/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDealRepository is a GORM implementation of DealRepository.
type GORMDealRepository struct {
	db *gorm.DB
}

// NewGORMDealRepository creates a new instance of GORMDealRepository.
func NewGORMDealRepository(db *gorm.DB) *GORMDealRepository {
	return &GORMDealRepository{
		db: db,
	}
}

// ListByMerchant retrieves a page of the merchant's deals plus the total
// number of matches before pagination. The merchant filter is part of the
// query itself so no caller can widen it.
func (r *GORMDealRepository) ListByMerchant(merchantID string, filter DealFilter) ([]models.Deal, int64, error) {
	query := r.db.Model(&models.Deal{}).Where("merchant_id = ?", merchantID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	deals := []models.Deal{}
	err := query.
		Order("created_at DESC, id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&deals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, total, nil
}

// GetByMerchant retrieves a single deal owned by the merchant. A deal owned
// by a different merchant yields ErrDealNotFound, same as a missing one.
func (r *GORMDealRepository) GetByMerchant(merchantID, dealID string) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.First(&deal, "id = ? AND merchant_id = ?", dealID, merchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal %s: %w", dealID, err)
	}
	return &deal, nil
}

// Create creates a new deal in the database.
func (r *GORMDealRepository) Create(deal *models.Deal) error {
	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	if err := r.db.Create(deal).Error; err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

// Update persists the mutable fields of a deal in a single UPDATE scoped to
// the owning merchant. Zero values are written too, so cleared descriptions
// and active=false stick.
func (r *GORMDealRepository) Update(deal *models.Deal) error {
	res := r.db.Model(&models.Deal{}).
		Where("id = ? AND merchant_id = ?", deal.ID, deal.MerchantID).
		Select("Title", "Description", "Active", "UpdatedAt").
		Updates(deal)
	if res.Error != nil {
		return fmt.Errorf("failed to update deal %s: %w", deal.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDealNotFound
	}
	return nil
}

// DeleteByMerchant physically deletes the merchant's deal. Repeating the
// delete yields ErrDealNotFound.
func (r *GORMDealRepository) DeleteByMerchant(merchantID, dealID string) error {
	res := r.db.Delete(&models.Deal{}, "id = ? AND merchant_id = ?", dealID, merchantID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete deal %s: %w", dealID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDealNotFound
	}
	return nil
}
