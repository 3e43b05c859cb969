package services

import (
	"context"
	"testing"

	"social-reward-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	svc.Now = fixedNow(noonIST)
	return svc, db
}

func TestCreateDailyBatch(t *testing.T) {
	svc, _ := newTaskService(t)

	tasks, err := svc.CreateDailyBatch(context.Background(), []TaskSpec{
		{Title: "Dance clip", VideoURL: "https://cdn.example.com/v/1.mp4", Caption: "try this #trend"},
		{Title: "Duet", VideoURL: "https://cdn.example.com/v/2.mp4", Caption: "duet with me"},
	})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, "2026-04-01", task.BatchDate)
		assert.True(t, task.Active)
		assert.InDelta(t, 2.5, task.RewardAmount, 0.001)
		assert.NotEmpty(t, task.ID)
	}
}

func TestCreateDailyBatchUsesRewardSetting(t *testing.T) {
	svc, _ := newTaskService(t)
	require.NoError(t, svc.UpsertSetting(context.Background(), models.SettingRewardPerTask, "4.25"))

	tasks, err := svc.CreateDailyBatch(context.Background(), []TaskSpec{
		{Title: "Clip", VideoURL: "https://cdn.example.com/v/1.mp4", Caption: "c"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 4.25, tasks[0].RewardAmount, 0.001)
}

func TestCreateDailyBatchIgnoresBrokenRewardSetting(t *testing.T) {
	svc, _ := newTaskService(t)
	require.NoError(t, svc.UpsertSetting(context.Background(), models.SettingRewardPerTask, "not-a-number"))

	tasks, err := svc.CreateDailyBatch(context.Background(), []TaskSpec{
		{Title: "Clip", VideoURL: "https://cdn.example.com/v/1.mp4", Caption: "c"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, tasks[0].RewardAmount, 0.001)
}

func TestCreateDailyBatchEmpty(t *testing.T) {
	svc, _ := newTaskService(t)
	_, err := svc.CreateDailyBatch(context.Background(), nil)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestDailyTasksCompletionFlags(t *testing.T) {
	svc, db := newTaskService(t)
	account := seedAccount(t, db, "user-a", "Moj", "https://mojapp.in/@alice", "alice", true)
	done := seedTask(t, db, "task-done", "2026-04-01", 2.5)
	seedTask(t, db, "task-open", "2026-04-01", 2.5)
	seedTask(t, db, "task-old", "2026-03-31", 2.5)
	rejected := seedTask(t, db, "task-rejected", "2026-04-01", 2.5)

	require.NoError(t, db.Create(&models.Submission{
		ID: "s1", UserID: "user-a", TaskID: done.ID, LinkedAccountID: account.ID,
		Platform: "Moj", ProofLink: "p1", Status: models.SubmissionPending,
	}).Error)
	require.NoError(t, db.Create(&models.Submission{
		ID: "s2", UserID: "user-a", TaskID: rejected.ID, LinkedAccountID: account.ID,
		Platform: "Moj", ProofLink: "p2", Status: models.SubmissionRejected,
	}).Error)

	listed, err := svc.DailyTasks(context.Background(), "user-a", account.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	byID := map[string]bool{}
	for _, item := range listed {
		byID[item.ID] = item.IsCompleted
	}
	assert.True(t, byID["task-done"])
	assert.False(t, byID["task-open"])
	// Rejected submissions leave the task open for a resubmission.
	assert.False(t, byID["task-rejected"])
	assert.NotContains(t, byID, "task-old")
}

func TestDailyTasksForeignAccount(t *testing.T) {
	svc, db := newTaskService(t)
	theirs := seedAccount(t, db, "user-b", "Moj", "https://mojapp.in/@bob", "bob", true)
	seedTask(t, db, "task-1", "2026-04-01", 2.5)

	_, err := svc.DailyTasks(context.Background(), "user-a", theirs.ID)
	assert.Equal(t, KindInvalidAccount, KindOf(err))
}

func TestDailyTasksWithoutAccount(t *testing.T) {
	svc, db := newTaskService(t)
	seedTask(t, db, "task-1", "2026-04-01", 2.5)

	listed, err := svc.DailyTasks(context.Background(), "user-a", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].IsCompleted)
}

func TestUpdateTask(t *testing.T) {
	svc, _ := newTaskService(t)
	task := seedTask(t, svc.DB, "task-1", "2026-04-01", 2.5)

	updated, err := svc.UpdateTask(context.Background(), task.ID, map[string]interface{}{
		"title":  "Renamed",
		"active": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.Active)

	_, err = svc.UpdateTask(context.Background(), "missing", map[string]interface{}{"active": false})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestTasksByDate(t *testing.T) {
	svc, db := newTaskService(t)
	seedTask(t, db, "task-1", "2026-04-01", 2.5)
	old := seedTask(t, db, "task-2", "2026-03-30", 2.5)
	require.NoError(t, db.Model(old).Update("active", false).Error)

	dated, err := svc.TasksByDate(context.Background(), "2026-03-30")
	require.NoError(t, err)
	require.Len(t, dated, 1)
	assert.Equal(t, "task-2", dated[0].ID)

	active, err := svc.TasksByDate(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "task-1", active[0].ID)
}

func TestUpsertSetting(t *testing.T) {
	svc, db := newTaskService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpsertSetting(ctx, "reward_per_task", "3.0"))
	require.NoError(t, svc.UpsertSetting(ctx, "reward_per_task", "5.0"))

	var settings []models.SystemSetting
	require.NoError(t, db.Find(&settings).Error)
	require.Len(t, settings, 1)
	assert.Equal(t, "5.0", settings[0].Value)

	assert.Equal(t, KindInvalidInput, KindOf(svc.UpsertSetting(ctx, "", "x")))
	assert.Equal(t, KindInvalidInput, KindOf(svc.UpsertSetting(ctx, "x", "")))
}
