package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"social-reward-system/models"
	"social-reward-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultRewardPerTask = 2.5

// TaskService manages daily task batches and the user-facing daily listing.
type TaskService struct {
	DB *gorm.DB

	Now func() time.Time
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db, Now: time.Now}
}

// TaskSpec is one task in an admin batch upload.
type TaskSpec struct {
	Title    string `json:"title" validate:"required"`
	VideoURL string `json:"video_url" validate:"required,url"`
	Caption  string `json:"caption" validate:"required"`
}

// CreateDailyBatch inserts a batch of active tasks stamped with today's
// task-day key. The reward comes from the reward_per_task system setting.
func (s *TaskService) CreateDailyBatch(ctx context.Context, specs []TaskSpec) ([]models.Task, error) {
	if len(specs) == 0 {
		return nil, domainErr(KindInvalidInput, "no tasks in batch")
	}

	reward := s.rewardPerTask(ctx)
	batchDate := utils.TaskDayKey(s.Now())

	tasks := make([]models.Task, 0, len(specs))
	for _, spec := range specs {
		tasks = append(tasks, models.Task{
			ID:           uuid.NewString(),
			Title:        spec.Title,
			VideoURL:     spec.VideoURL,
			Caption:      spec.Caption,
			RewardAmount: reward,
			BatchDate:    batchDate,
			Active:       true,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	log.Printf("[TASKS] created %d tasks for %s (reward %.2f)", len(tasks), batchDate, reward)
	return tasks, nil
}

func (s *TaskService) rewardPerTask(ctx context.Context) float64 {
	var setting models.SystemSetting
	err := s.DB.WithContext(ctx).
		Where("key = ?", models.SettingRewardPerTask).
		First(&setting).Error
	if err != nil {
		return defaultRewardPerTask
	}
	v, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil || v <= 0 {
		return defaultRewardPerTask
	}
	return v
}

// TaskWithStatus decorates a task with the caller's completion state.
type TaskWithStatus struct {
	models.Task
	IsCompleted bool `json:"is_completed"`
}

// DailyTasks lists today's active tasks. When accountID is given it must be
// one of the caller's linked accounts — client-supplied identifiers are
// never trusted outright — and each task is flagged completed when a
// non-rejected submission exists for it on that account.
func (s *TaskService) DailyTasks(ctx context.Context, userID, accountID string) ([]TaskWithStatus, error) {
	today := utils.TaskDayKey(s.Now())

	var tasks []models.Task
	err := s.DB.WithContext(ctx).
		Where("batch_date = ? AND active = ?", today, true).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	completed := map[string]bool{}
	if accountID != "" {
		var account models.LinkedAccount
		err := s.DB.WithContext(ctx).
			Where("id = ? AND user_id = ?", accountID, userID).
			First(&account).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domainErr(KindInvalidAccount, "not your account")
			}
			return nil, fmt.Errorf("load account: %w", err)
		}

		var subs []models.Submission
		err = s.DB.WithContext(ctx).
			Select("task_id").
			Where("user_id = ? AND linked_account_id = ? AND status IN ?",
				userID, accountID,
				[]models.SubmissionStatus{models.SubmissionPending, models.SubmissionApproved}).
			Find(&subs).Error
		if err != nil {
			return nil, fmt.Errorf("load submissions: %w", err)
		}
		for _, sub := range subs {
			completed[sub.TaskID] = true
		}
	}

	out := make([]TaskWithStatus, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskWithStatus{Task: t, IsCompleted: completed[t.ID]})
	}
	return out, nil
}

// UpdateTask edits a task in place (admin).
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, updates map[string]interface{}) (*models.Task, error) {
	var task models.Task
	if err := s.DB.WithContext(ctx).First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErr(KindNotFound, "task not found")
		}
		return nil, fmt.Errorf("load task: %w", err)
	}
	if err := s.DB.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

// TasksByDate lists tasks for an admin view; empty date means active tasks.
func (s *TaskService) TasksByDate(ctx context.Context, date string) ([]models.Task, error) {
	q := s.DB.WithContext(ctx)
	if date != "" {
		q = q.Where("batch_date = ?", date)
	} else {
		q = q.Where("active = ?", true)
	}
	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// UpsertSetting stores an operator knob (admin).
func (s *TaskService) UpsertSetting(ctx context.Context, key, value string) error {
	if key == "" || value == "" {
		return domainErr(KindInvalidInput, "key and value are required")
	}
	setting := models.SystemSetting{ID: uuid.NewString(), Key: key, Value: value}
	err := s.DB.WithContext(ctx).
		Where("key = ?", key).
		Assign(map[string]interface{}{"value": value}).
		FirstOrCreate(&setting).Error
	if err != nil {
		return fmt.Errorf("store setting: %w", err)
	}
	return nil
}
