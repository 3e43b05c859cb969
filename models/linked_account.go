package models

import (
	"time"
)

// LinkedAccount binds an external social profile to a user. Claims are never
// hard-deleted: Active=false keeps the row around so the relink cooldown can
// be evaluated against UnlinkedAt.
//
// Global uniqueness of an *active* claim on (platform, profile_url) and
// (platform, username) is enforced by partial unique indexes created in
// MigrateClaimIndexes — AutoMigrate alone cannot express the WHERE clause.
type LinkedAccount struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string     `gorm:"index;not null" json:"user_id"`
	Platform   string     `gorm:"not null;index" json:"platform"`
	ProfileURL string     `gorm:"not null" json:"profile_url"`
	Username   string     `json:"username,omitempty"`
	Active     bool       `gorm:"default:true;index" json:"active"`
	LinkedAt   time.Time  `json:"linked_at"`
	UnlinkedAt *time.Time `json:"unlinked_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ClaimIndexStatements are the partial unique indexes backing active-claim
// uniqueness. Run after AutoMigrate; the syntax works on both postgres and
// sqlite (the test database).
var ClaimIndexStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_claim_profile
	    ON linked_accounts (platform, profile_url) WHERE active`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_claim_username
	    ON linked_accounts (platform, username) WHERE active AND username <> ''`,
}
