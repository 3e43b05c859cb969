package models

import "time"

// SystemSetting is a small key/value table for operator-tunable knobs
// (currently just the per-task reward used when building daily batches).
type SystemSetting struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

const SettingRewardPerTask = "reward_per_task"
