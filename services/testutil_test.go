package services

import (
	"context"
	"testing"
	"time"

	"social-reward-system/models"
	"social-reward-system/social"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.LinkedAccount{},
		&models.VerificationChallenge{},
		&models.Task{},
		&models.Submission{},
		&models.SystemSetting{},
	))
	for _, stmt := range models.ClaimIndexStatements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

// stubResolver lets tests script the outcome of network verification.
type stubResolver struct {
	authorship social.Authorship
	phrase     social.PhraseCheck
}

func (r *stubResolver) ResolveAuthorship(_ context.Context, _ string, p social.Platform) social.Authorship {
	return r.authorship
}

func (r *stubResolver) FindPhrase(_ context.Context, _ string, _ string) social.PhraseCheck {
	return r.phrase
}

func foundAuthor(handle string) *stubResolver {
	return &stubResolver{
		authorship: social.Authorship{Handle: handle, Signal: social.SignalFound},
		phrase:     social.PhraseCheck{Present: true, Signal: social.SignalFound},
	}
}

// noonIST is a fixed instant comfortably inside a task day.
var noonIST = time.Date(2026, 4, 1, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedAccount(t *testing.T, db *gorm.DB, userID, platform, profileURL, username string, active bool) *models.LinkedAccount {
	t.Helper()
	acc := &models.LinkedAccount{
		ID:         userID + "-" + platform + "-" + username,
		UserID:     userID,
		Platform:   platform,
		ProfileURL: profileURL,
		Username:   username,
		Active:     active,
		LinkedAt:   noonIST.Add(-24 * time.Hour),
	}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

func seedTask(t *testing.T, db *gorm.DB, id, batchDate string, reward float64) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:           id,
		Title:        "Post the daily clip",
		VideoURL:     "https://cdn.example.com/" + id + ".mp4",
		Caption:      "share this",
		RewardAmount: reward,
		BatchDate:    batchDate,
		Active:       true,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
