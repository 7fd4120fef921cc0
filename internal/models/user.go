package models

import "time"

// User represents an account that can authenticate against the API.
// MerchantID is nullable: a freshly registered user belongs to no merchant
// and is denied access to every deal route until one is assigned.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	MerchantID   *string   `json:"merchant_id" gorm:"index;type:varchar(36)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
