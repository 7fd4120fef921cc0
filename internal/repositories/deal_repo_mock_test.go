package repositories_test

import (
	"testing"
	"time"

	"dealspot/internal/models"
	"dealspot/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func seedDeals(t *testing.T, repo *repositories.MockDealRepository) {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	deals := []models.Deal{
		{ID: "a1", Title: "Deal A", Description: "First", Active: true, MerchantID: "m1", CreatedAt: base.Add(1 * time.Hour)},
		{ID: "b1", Title: "Deal B", Description: "Second", Active: true, MerchantID: "m1", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c1", Title: "Quiet deal", Description: "Hidden from listings", Active: false, MerchantID: "m1", CreatedAt: base.Add(3 * time.Hour)},
		{ID: "x1", Title: "Deal A", Description: "Other merchant's", Active: true, MerchantID: "m2", CreatedAt: base.Add(4 * time.Hour)},
	}
	for i := range deals {
		assert.NoError(t, repo.Create(&deals[i]))
	}
}

func TestMockDealRepository_TenantIsolation(t *testing.T) {
	repo := repositories.NewMockDealRepository()
	seedDeals(t, repo)

	items, total, err := repo.ListByMerchant("m1", repositories.DealFilter{Limit: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, deal := range items {
		assert.Equal(t, "m1", deal.MerchantID)
	}

	// Another merchant's deal is reported as missing on every operation.
	_, err = repo.GetByMerchant("m2", "a1")
	assert.ErrorIs(t, err, repositories.ErrDealNotFound)

	err = repo.Update(&models.Deal{ID: "a1", Title: "Hijacked", MerchantID: "m2"})
	assert.ErrorIs(t, err, repositories.ErrDealNotFound)

	err = repo.DeleteByMerchant("m2", "a1")
	assert.ErrorIs(t, err, repositories.ErrDealNotFound)

	// The owner still sees the untouched deal.
	deal, err := repo.GetByMerchant("m1", "a1")
	assert.NoError(t, err)
	assert.Equal(t, "Deal A", deal.Title)
}

func TestMockDealRepository_SearchFilter(t *testing.T) {
	repo := repositories.NewMockDealRepository()
	seedDeals(t, repo)

	// Case-insensitive substring on title.
	items, total, err := repo.ListByMerchant("m1", repositories.DealFilter{Search: "deal a", Limit: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Deal A", items[0].Title)

	// Substring on description also matches.
	items, total, err = repo.ListByMerchant("m1", repositories.DealFilter{Search: "HIDDEN", Limit: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Quiet deal", items[0].Title)

	// No match.
	_, total, err = repo.ListByMerchant("m1", repositories.DealFilter{Search: "nope", Limit: 50})
	assert.NoError(t, err)
	assert.Zero(t, total)
}

func TestMockDealRepository_ActiveFilter(t *testing.T) {
	repo := repositories.NewMockDealRepository()
	seedDeals(t, repo)

	inactive := false
	items, total, err := repo.ListByMerchant("m1", repositories.DealFilter{Active: &inactive, Limit: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Quiet deal", items[0].Title)

	active := true
	_, total, err = repo.ListByMerchant("m1", repositories.DealFilter{Active: &active, Limit: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMockDealRepository_OrderingAndPagination(t *testing.T) {
	repo := repositories.NewMockDealRepository()
	seedDeals(t, repo)

	// Newest first.
	items, total, err := repo.ListByMerchant("m1", repositories.DealFilter{Limit: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"c1", "b1", "a1"}, []string{items[0].ID, items[1].ID, items[2].ID})

	// Offset/limit slice the ordered result; total stays the full count.
	items, total, err = repo.ListByMerchant("m1", repositories.DealFilter{Offset: 1, Limit: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)
	assert.Equal(t, "b1", items[0].ID)

	// Past the end is empty, not an error.
	items, total, err = repo.ListByMerchant("m1", repositories.DealFilter{Offset: 10, Limit: 5})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, items)
}

func TestMockDealRepository_DeleteIsPhysical(t *testing.T) {
	repo := repositories.NewMockDealRepository()
	seedDeals(t, repo)

	assert.NoError(t, repo.DeleteByMerchant("m1", "a1"))

	_, err := repo.GetByMerchant("m1", "a1")
	assert.ErrorIs(t, err, repositories.ErrDealNotFound)

	// Deleting again is a not-found, not a silent success.
	err = repo.DeleteByMerchant("m1", "a1")
	assert.ErrorIs(t, err, repositories.ErrDealNotFound)
}
