package models

import "time"

// Deal is a promotional offer owned by exactly one merchant.
// Deletion is physical, so there is no soft-delete column.
type Deal struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(120)" validate:"required,min=1,max=120"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	MerchantID  string    `json:"merchant_id" gorm:"index;type:varchar(36)" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
