package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a local snapshot of identity data owned by the identity service.
// Populated via the user sync worker; wallet balance is credited locally
// when a submission is approved.
type User struct {
	ID             string  `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"`
	FullName       string  `gorm:"index" json:"full_name"`
	Email          string  `json:"email,omitempty"`
	Role           string  `gorm:"default:'user'" json:"role"`
	WalletBalance  float64 `gorm:"default:0" json:"wallet_balance"`
	IsBanned       bool    `gorm:"default:false" json:"is_banned"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RemoteProfile mirrors the JSON shape of the identity service's public
// profile feed (read-only, consumed by the sync worker).
type RemoteProfile struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"external_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	AccountStatus string    `json:"account_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
