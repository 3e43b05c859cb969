package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"social-reward-system/models"
	"social-reward-system/social"
	"social-reward-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionService is the gatekeeper for proof-of-posting submissions. It
// runs the ordered fraud checks, cross-checks authorship against the
// ownership ledger, and owns the Pending/Rejected resubmission path. Moving
// a submission to Approved/Rejected belongs to ReviewService.
type SubmissionService struct {
	DB       *gorm.DB
	Resolver social.Resolver

	Now func() time.Time
}

func NewSubmissionService(db *gorm.DB, resolver social.Resolver) *SubmissionService {
	return &SubmissionService{DB: db, Resolver: resolver, Now: time.Now}
}

// Submit runs a single submission attempt. Checks short-circuit in order:
// input presence, proof reuse across tasks, the daily window, account
// ownership, then authorship. The pre-check reads exist for good error
// messages; the unique indexes on submissions are what actually hold the
// invariants when attempts race.
func (s *SubmissionService) Submit(ctx context.Context, userID, taskID, accountID, proofLink string) (*models.Submission, error) {
	if proofLink == "" || accountID == "" || taskID == "" {
		return nil, domainErr(KindInvalidInput, "task, account and proof link are required")
	}

	now := s.Now()

	// A proof artifact is single-use per user: the same link may never back
	// a different task.
	var reused models.Submission
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND proof_link = ? AND task_id <> ?", userID, proofLink, taskID).
		First(&reused).Error
	if err == nil {
		return nil, domainErr(KindDuplicateProof, "this proof link was already used for another task")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check proof reuse: %w", err)
	}

	// One submission identity per (user, task, account). A Rejected row is
	// superseded in place rather than duplicated.
	var existing models.Submission
	var resubmit *models.Submission
	err = s.DB.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND linked_account_id = ?", userID, taskID, accountID).
		First(&existing).Error
	switch {
	case err == nil && existing.Status != models.SubmissionRejected:
		if utils.SameTaskDay(existing.CreatedAt, now) {
			return nil, domainErr(KindAlreadySubmittedToday, "you already submitted this task on this account today")
		}
		return nil, domainErr(KindAlreadySubmittedToday, "you already completed this task on this account")
	case err == nil:
		resubmit = &existing
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("check existing submission: %w", err)
	}

	var account models.LinkedAccount
	err = s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND active = ?", accountID, userID, true).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErr(KindInvalidAccount, "invalid account selected")
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	platform := social.Platform(account.Platform)

	autoCheck, err := s.crossCheckAuthorship(ctx, &account, platform, proofLink)
	if err != nil {
		return nil, err
	}

	var saved *models.Submission
	if resubmit != nil {
		resubmit.ProofLink = proofLink
		resubmit.Status = models.SubmissionPending
		resubmit.AdminComment = nil
		resubmit.AutoCheck = autoCheck
		err = s.DB.WithContext(ctx).Model(resubmit).
			Select("proof_link", "status", "admin_comment", "auto_check").
			Updates(resubmit).Error
		saved = resubmit
	} else {
		saved = &models.Submission{
			ID:              uuid.NewString(),
			UserID:          userID,
			TaskID:          taskID,
			LinkedAccountID: accountID,
			Platform:        account.Platform,
			ProofLink:       proofLink,
			Status:          models.SubmissionPending,
			AutoCheck:       autoCheck,
		}
		err = s.DB.WithContext(ctx).Create(saved).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyWriteConflict(ctx, userID, taskID, proofLink)
		}
		return nil, fmt.Errorf("store submission: %w", err)
	}

	log.Printf("[GATEKEEPER] user %s submitted task %s (account %s, check=%s)", userID, taskID, accountID, autoCheck)
	return saved, nil
}

// crossCheckAuthorship compares the registered handle with the proof's
// resolved author. Only two outcomes hard-reject: a dead link and a
// confirmed mismatch. Anything unresolvable stays permissive and is left
// for manual review — scraping limits must not auto-reject legitimate work.
func (s *SubmissionService) crossCheckAuthorship(ctx context.Context, account *models.LinkedAccount, platform social.Platform, proofLink string) (string, error) {
	registered := account.Username
	if registered == "" {
		registered, _ = social.ExtractHandle(account.ProfileURL, platform)
	}

	res := s.Resolver.ResolveAuthorship(ctx, proofLink, platform)
	if res.Signal == social.SignalNotFound {
		return "", domainErr(KindInvalidLink, "the submitted link does not exist or was removed")
	}
	if res.Handle != "" && registered != "" {
		if !social.HandlesEqual(res.Handle, registered) {
			return "", domainErr(KindOwnershipMismatch, "this content belongs to @%s, not your linked account", res.Handle)
		}
		return models.AutoCheckMatched, nil
	}
	return models.AutoCheckUnresolved, nil
}

// classifyWriteConflict maps a unique-index violation raised by a racing
// attempt back onto the kind the pre-check would have reported.
func (s *SubmissionService) classifyWriteConflict(ctx context.Context, userID, taskID, proofLink string) error {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND proof_link = ? AND task_id <> ?", userID, proofLink, taskID).
		Count(&count).Error
	if err == nil && count > 0 {
		return domainErr(KindDuplicateProof, "this proof link was already used for another task")
	}
	return domainErr(KindAlreadySubmittedToday, "you already submitted this task on this account today")
}

// History returns the user's submissions, newest first.
func (s *SubmissionService) History(ctx context.Context, userID string) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return subs, nil
}
