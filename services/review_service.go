package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"social-reward-system/models"

	"gorm.io/gorm"
)

// ReviewService is the only actor allowed to move a submission out of
// Pending. Approving credits the owner's wallet in the same transaction so a
// crash can never pay without approving or approve without paying.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Decide applies a reviewer decision. Approved is terminal; Rejected can
// only be left again by the owner resubmitting fresh evidence through the
// gatekeeper.
func (s *ReviewService) Decide(ctx context.Context, submissionID string, decision models.SubmissionStatus, comment string) (*models.Submission, error) {
	if decision != models.SubmissionApproved && decision != models.SubmissionRejected {
		return nil, domainErr(KindInvalidDecision, "decision must be Approved or Rejected")
	}

	var submission models.Submission
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErr(KindNotFound, "submission not found")
			}
			return fmt.Errorf("load submission: %w", err)
		}
		if submission.Status != models.SubmissionPending {
			return domainErr(KindInvalidDecision, "submission is already %s", submission.Status)
		}

		if decision == models.SubmissionApproved {
			submission.Status = models.SubmissionApproved
			submission.AdminComment = nil
			if err := tx.Model(&submission).
				Select("status", "admin_comment").
				Updates(&submission).Error; err != nil {
				return fmt.Errorf("approve submission: %w", err)
			}

			var task models.Task
			if err := tx.First(&task, "id = ?", submission.TaskID).Error; err != nil {
				return fmt.Errorf("load task for payout: %w", err)
			}
			res := tx.Model(&models.User{}).
				Where("external_user_id = ?", submission.UserID).
				UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", task.RewardAmount))
			if res.Error != nil {
				return fmt.Errorf("credit wallet: %w", res.Error)
			}
			return nil
		}

		submission.Status = models.SubmissionRejected
		submission.AdminComment = &comment
		if err := tx.Model(&submission).
			Select("status", "admin_comment").
			Updates(&submission).Error; err != nil {
			return fmt.Errorf("reject submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[REVIEW] submission %s -> %s", submissionID, decision)
	return &submission, nil
}

// ListByStatus returns submissions awaiting (or past) review, most recently
// touched first.
func (s *ReviewService) ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	if status == "" {
		status = models.SubmissionPending
	}
	var subs []models.Submission
	err := s.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("updated_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
