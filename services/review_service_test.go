package services

import (
	"context"
	"testing"

	"social-reward-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPendingSubmission(t *testing.T, db *gorm.DB, id, userID, taskID string) *models.Submission {
	t.Helper()
	sub := models.Submission{
		ID:              id,
		UserID:          userID,
		TaskID:          taskID,
		LinkedAccountID: userID + "-acc",
		Platform:        "Moj",
		ProofLink:       "https://mojapp.in/@x/video/" + id,
		Status:          models.SubmissionPending,
	}
	require.NoError(t, db.Create(&sub).Error)
	return &sub
}

func TestDecideApproveCreditsWallet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := models.User{ID: "u-row", ExternalUserID: "user-a", FullName: "Alice", WalletBalance: 10}
	require.NoError(t, db.Create(&user).Error)
	task := seedTask(t, db, "task-1", "2026-04-01", 3.5)
	sub := seedPendingSubmission(t, db, "sub-1", "user-a", task.ID)

	decided, err := svc.Decide(context.Background(), sub.ID, models.SubmissionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, decided.Status)

	var credited models.User
	require.NoError(t, db.First(&credited, "external_user_id = ?", "user-a").Error)
	assert.InDelta(t, 13.5, credited.WalletBalance, 0.001)
}

func TestDecideRejectStoresComment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	seedTask(t, db, "task-1", "2026-04-01", 2.5)
	sub := seedPendingSubmission(t, db, "sub-1", "user-a", "task-1")

	decided, err := svc.Decide(context.Background(), sub.ID, models.SubmissionRejected, "wrong video")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, decided.Status)
	require.NotNil(t, decided.AdminComment)
	assert.Equal(t, "wrong video", *decided.AdminComment)

	var stored models.Submission
	require.NoError(t, db.First(&stored, "id = ?", sub.ID).Error)
	assert.Equal(t, models.SubmissionRejected, stored.Status)
}

func TestDecideRefusesSettledSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	seedTask(t, db, "task-1", "2026-04-01", 2.5)
	sub := seedPendingSubmission(t, db, "sub-1", "user-a", "task-1")
	require.NoError(t, db.Model(sub).Update("status", models.SubmissionApproved).Error)

	_, err := svc.Decide(context.Background(), sub.ID, models.SubmissionRejected, "too late")
	assert.Equal(t, KindInvalidDecision, KindOf(err))
}

func TestDecideValidatesDecision(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	_, err := svc.Decide(context.Background(), "sub-1", models.SubmissionPending, "")
	assert.Equal(t, KindInvalidDecision, KindOf(err))
	_, err = svc.Decide(context.Background(), "sub-1", "Maybe", "")
	assert.Equal(t, KindInvalidDecision, KindOf(err))
}

func TestDecideUnknownSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	_, err := svc.Decide(context.Background(), "nope", models.SubmissionApproved, "")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListByStatusDefaultsToPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	seedPendingSubmission(t, db, "sub-1", "user-a", "task-1")
	approved := seedPendingSubmission(t, db, "sub-2", "user-b", "task-1")
	require.NoError(t, db.Model(approved).Update("status", models.SubmissionApproved).Error)

	pending, err := svc.ListByStatus(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sub-1", pending[0].ID)

	done, err := svc.ListByStatus(context.Background(), models.SubmissionApproved)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "sub-2", done[0].ID)
}
