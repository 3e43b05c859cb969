package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"social-reward-system/models"
	"social-reward-system/social"
	"social-reward-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const challengeTTL = 30 * time.Minute

// AccountService is the ownership ledger: it issues verification challenges,
// turns verified profile URLs into exclusive claims, and handles soft unlink
// with the relink cooldown.
type AccountService struct {
	DB       *gorm.DB
	Resolver social.Resolver

	// Now is swappable for tests that need to sit on a day boundary.
	Now func() time.Time
}

func NewAccountService(db *gorm.DB, resolver social.Resolver) *AccountService {
	return &AccountService{DB: db, Resolver: resolver, Now: time.Now}
}

// IssueChallenge generates a fresh single-use code for the user, replacing
// any prior live challenge. The unique index on user_id keeps "at most one
// outstanding challenge" true even when two tabs race.
func (s *AccountService) IssueChallenge(ctx context.Context, userID string) (*models.VerificationChallenge, error) {
	if userID == "" {
		return nil, domainErr(KindInvalidInput, "user is required")
	}

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate challenge code: %w", err)
	}

	ch := &models.VerificationChallenge{
		ID:        uuid.NewString(),
		UserID:    userID,
		Code:      "SW-" + strings.ToUpper(hex.EncodeToString(buf)),
		ExpiresAt: s.Now().Add(challengeTTL),
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "updated_at"}),
	}).Create(ch).Error
	if err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}
	return ch, nil
}

// Claim verifies that the user controls profileURL and binds it to them.
//
// Ordering matters: the global uniqueness check runs before any "is this
// mine" logic so a second account can never squat a handle that someone else
// actively owns, and the network verification runs last so a blocked fetch
// never burns a claimable slot.
func (s *AccountService) Claim(ctx context.Context, userID, platformName, profileURL string) (*models.LinkedAccount, error) {
	platform, ok := social.ParsePlatform(platformName)
	if !ok {
		return nil, domainErr(KindInvalidInput, "unsupported platform %q", platformName)
	}
	profileURL = strings.TrimSpace(profileURL)
	if profileURL == "" {
		return nil, domainErr(KindInvalidInput, "profile URL is required")
	}

	now := s.Now()

	var ch models.VerificationChallenge
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&ch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErr(KindInvalidInput, "generate a verification code first")
		}
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if ch.Expired(now) {
		return nil, domainErr(KindInvalidInput, "verification code expired, generate a new one")
	}

	handle, _ := social.ExtractHandle(profileURL, platform)

	reactivate, err := s.checkExistingClaims(ctx, userID, platform, profileURL, handle, now)
	if err != nil {
		return nil, err
	}

	switch check := s.Resolver.FindPhrase(ctx, profileURL, ch.Code); {
	case check.Signal == social.SignalNotFound:
		return nil, domainErr(KindInvalidLink, "profile does not exist")
	case check.Signal == social.SignalAmbiguous:
		return nil, domainErr(KindVerificationUnavailable, "could not reach your profile, try again shortly")
	case !check.Present:
		return nil, domainErr(KindVerificationFailed, "verification code not found — make sure your profile is public and the code is in your bio")
	}

	account := reactivate
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if account != nil {
			account.Active = true
			account.LinkedAt = now
			account.UnlinkedAt = nil
			if handle != "" {
				account.Username = handle
			}
			if err := tx.Model(account).Select("active", "linked_at", "unlinked_at", "username").
				Updates(account).Error; err != nil {
				return err
			}
		} else {
			account = &models.LinkedAccount{
				ID:         uuid.NewString(),
				UserID:     userID,
				Platform:   string(platform),
				ProfileURL: profileURL,
				Username:   handle,
				Active:     true,
				LinkedAt:   now,
			}
			if err := tx.Create(account).Error; err != nil {
				return err
			}
		}
		// Consume exactly once: the row is gone after a successful claim.
		return tx.Where("user_id = ?", userID).Delete(&models.VerificationChallenge{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with another claimant between check and write.
			return nil, domainErr(KindAlreadyClaimedByOther, "this account is already linked to another user")
		}
		return nil, fmt.Errorf("store claim: %w", err)
	}

	log.Printf("[LEDGER] user %s claimed %s %s", userID, platform, profileURL)
	return account, nil
}

// checkExistingClaims performs the global lookup across all users for any
// record matching the profile URL or the handle. It returns the caller's own
// inactive record when the claim should reactivate it in place.
func (s *AccountService) checkExistingClaims(ctx context.Context, userID string, platform social.Platform, profileURL, handle string, now time.Time) (*models.LinkedAccount, error) {
	q := s.DB.WithContext(ctx).Where("platform = ?", string(platform))
	if handle != "" {
		q = q.Where("profile_url = ? OR LOWER(username) = LOWER(?)", profileURL, handle)
	} else {
		q = q.Where("profile_url = ?", profileURL)
	}

	var existing []models.LinkedAccount
	if err := q.Order("active DESC").Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("lookup claims: %w", err)
	}

	var mineInactive *models.LinkedAccount
	for i := range existing {
		acc := &existing[i]
		switch {
		case acc.Active && acc.UserID != userID:
			return nil, domainErr(KindAlreadyClaimedByOther, "this account is already linked to another user")
		case acc.Active:
			return nil, domainErr(KindAlreadyLinked, "this account is already linked")
		case acc.UserID == userID && mineInactive == nil:
			mineInactive = acc
		}
		// Inactive records of other users never block a claim.
	}

	if mineInactive != nil && mineInactive.UnlinkedAt != nil && utils.SameTaskDay(*mineInactive.UnlinkedAt, now) {
		return nil, domainErr(KindCooldownActive, "you unlinked this account today, relink is available tomorrow")
	}
	return mineInactive, nil
}

// Unlink soft-deactivates a claim. The record survives so the cooldown rule
// has history to work with; historical submissions keep referencing it.
func (s *AccountService) Unlink(ctx context.Context, userID, accountID string) error {
	var account models.LinkedAccount
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainErr(KindInvalidAccount, "account not found or not yours")
		}
		return fmt.Errorf("load account: %w", err)
	}
	if !account.Active {
		return domainErr(KindInvalidAccount, "account is already unlinked")
	}

	now := s.Now()
	err = s.DB.WithContext(ctx).Model(&account).
		Updates(map[string]interface{}{"active": false, "unlinked_at": now}).Error
	if err != nil {
		return fmt.Errorf("unlink account: %w", err)
	}

	log.Printf("[LEDGER] user %s unlinked account %s", userID, accountID)
	return nil
}

// ListAccounts returns the user's claims, newest first, active ones leading.
func (s *AccountService) ListAccounts(ctx context.Context, userID string) ([]models.LinkedAccount, error) {
	var accounts []models.LinkedAccount
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("active DESC, linked_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
