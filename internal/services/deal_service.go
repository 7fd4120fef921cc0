package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"dealspot/internal/models"
	"dealspot/internal/repositories"
)

const (
	// DefaultPerPage is the page size when the caller does not ask for one.
	DefaultPerPage = 20
	// MaxPerPage caps the page size regardless of what the caller requests.
	MaxPerPage = 50
)

// ErrTitleRequired is returned when a create or update supplies an empty title.
var ErrTitleRequired = errors.New("title is required")

// EventPublisher publishes deal lifecycle events. A nil publisher disables
// event publication without affecting the request.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// ListParams are the caller-supplied listing options after HTTP parsing.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Active  *bool
}

// DealPage is one page of a merchant's deals plus pagination metadata.
type DealPage struct {
	Items   []models.Deal `json:"items"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int64         `json:"total"`
	HasNext bool          `json:"has_next"`
	HasPrev bool          `json:"has_prev"`
}

// DealUpdate carries the fields of a partial update. Nil means "leave as is".
type DealUpdate struct {
	Title       *string
	Description *string
	Active      *bool
}

// DealService handles business logic for merchant-scoped deals.
type DealService struct {
	dealRepo  repositories.DealRepository
	publisher EventPublisher
}

// NewDealService creates a new DealService. publisher may be nil.
func NewDealService(dealRepo repositories.DealRepository, publisher EventPublisher) *DealService {
	return &DealService{
		dealRepo:  dealRepo,
		publisher: publisher,
	}
}

// List returns a page of the merchant's deals, newest first. The page size
// is clamped to MaxPerPage. Out-of-range pages return an empty items list.
func (s *DealService) List(merchantID string, params ListParams) (*DealPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	filter := repositories.DealFilter{
		Search: strings.TrimSpace(params.Search),
		Active: params.Active,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	}

	items, total, err := s.dealRepo.ListByMerchant(merchantID, filter)
	if err != nil {
		return nil, err
	}

	return &DealPage{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasNext: int64(page)*int64(perPage) < total,
		HasPrev: page > 1 && total > 0,
	}, nil
}

// Get retrieves a single deal owned by the merchant.
func (s *DealService) Get(merchantID, dealID string) (*models.Deal, error) {
	return s.dealRepo.GetByMerchant(merchantID, dealID)
}

// Create creates a deal for the merchant. The merchant id always comes from
// the authenticated tenant, never from client input. Active defaults to true.
func (s *DealService) Create(merchantID, title, description string, active *bool) (*models.Deal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	deal := &models.Deal{
		Title:       title,
		Description: description,
		Active:      true,
		MerchantID:  merchantID,
	}
	if active != nil {
		deal.Active = *active
	}

	if err := s.dealRepo.Create(deal); err != nil {
		return nil, err
	}

	s.publishEvent("deal.created", map[string]interface{}{
		"deal_id":     deal.ID,
		"merchant_id": deal.MerchantID,
		"title":       deal.Title,
	})
	return deal, nil
}

// Update applies a partial update to the merchant's deal. Only supplied
// fields change; updated_at is refreshed.
func (s *DealService) Update(merchantID, dealID string, update DealUpdate) (*models.Deal, error) {
	deal, err := s.dealRepo.GetByMerchant(merchantID, dealID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		deal.Title = title
	}
	if update.Description != nil {
		deal.Description = *update.Description
	}
	if update.Active != nil {
		deal.Active = *update.Active
	}
	deal.UpdatedAt = time.Now()

	if err := s.dealRepo.Update(deal); err != nil {
		return nil, err
	}

	s.publishEvent("deal.updated", map[string]interface{}{
		"deal_id":     deal.ID,
		"merchant_id": deal.MerchantID,
		"title":       deal.Title,
	})
	return deal, nil
}

// Delete physically deletes the merchant's deal. Deleting the same id twice
// reports ErrDealNotFound the second time.
func (s *DealService) Delete(merchantID, dealID string) error {
	if err := s.dealRepo.DeleteByMerchant(merchantID, dealID); err != nil {
		return err
	}

	s.publishEvent("deal.deleted", map[string]interface{}{
		"deal_id":     dealID,
		"merchant_id": merchantID,
	})
	return nil
}

// publishEvent publishes a deal event. Failures are logged, never surfaced:
// the mutation already succeeded and the response must reflect that.
func (s *DealService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
