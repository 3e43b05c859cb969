package models

import "time"

// VerificationChallenge is the single live ownership-proof code for a user.
// The unique index on UserID makes "at most one outstanding challenge" a
// storage-level guarantee; issuing a new code upserts over the old one and a
// successful claim deletes the row (consume-exactly-once).
type VerificationChallenge struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Code      string    `gorm:"not null" json:"code"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Expired reports whether the challenge is past its TTL at instant t.
func (c *VerificationChallenge) Expired(t time.Time) bool {
	return t.After(c.ExpiresAt)
}
