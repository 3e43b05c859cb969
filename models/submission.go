package models

import (
	"time"
)

// SubmissionStatus is the review state of a submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "Pending"
	SubmissionApproved SubmissionStatus = "Approved"
	SubmissionRejected SubmissionStatus = "Rejected"
)

// AutoCheck values annotate what the automated authorship check concluded at
// submit time. They are advisory for reviewers; only OwnershipMismatch and
// dead links hard-reject, everything else stays Pending for a human.
const (
	AutoCheckMatched    = "matched"    // proof author equals the registered handle
	AutoCheckUnresolved = "unresolved" // could not confirm either way (blocked, parse miss)
	AutoCheckMismatch   = "mismatch"   // recheck worker saw a different author
	AutoCheckLinkDead   = "link_dead"  // recheck worker got a 404
)

// Submission is one proof-of-posting claim against a task. Two unique
// indexes carry the integrity invariants under concurrency:
//
//   - idx_task_account:  one submission identity per (task, account);
//     resubmission after Rejected rewrites this row instead of inserting.
//   - idx_user_proof:    a proof URL is single-use per user across tasks.
type Submission struct {
	ID              string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string           `gorm:"index;not null;uniqueIndex:idx_user_proof" json:"user_id"`
	TaskID          string           `gorm:"not null;uniqueIndex:idx_task_account" json:"task_id"`
	LinkedAccountID string           `gorm:"not null;uniqueIndex:idx_task_account" json:"linked_account_id"`
	Platform        string           `gorm:"not null" json:"platform"`
	ProofLink       string           `gorm:"not null;uniqueIndex:idx_user_proof" json:"proof_link"`
	Status          SubmissionStatus `gorm:"not null;default:'Pending'" json:"status"`
	AdminComment    *string          `json:"admin_comment,omitempty"`
	AutoCheck       string           `gorm:"index" json:"auto_check,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
