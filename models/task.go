package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is one reward task in a daily batch. BatchDate is the task-day key
// ("2006-01-02" in the fixed task timezone) the task belongs to; the
// maintenance scheduler deactivates tasks once their day has passed.
type Task struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	Title        string  `gorm:"not null" json:"title"`
	VideoURL     string  `gorm:"not null" json:"video_url"`
	Caption      string  `gorm:"not null" json:"caption"`
	RewardAmount float64 `gorm:"default:2.5" json:"reward_amount"`
	BatchDate    string  `gorm:"not null;index" json:"batch_date"`
	Active       bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
