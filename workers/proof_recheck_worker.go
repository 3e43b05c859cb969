package workers

import (
	"context"
	"log"
	"time"

	"social-reward-system/models"
	"social-reward-system/social"

	"gorm.io/gorm"
)

// ProofRecheckClient re-resolves authorship for pending submissions whose
// first check came back unresolved (blocked fetch, parse miss). It only ever
// updates the advisory annotation: a recheck must never move a submission
// out of Pending — that decision belongs to a human reviewer.
type ProofRecheckClient struct {
	DB       *gorm.DB
	Resolver social.Resolver
}

func NewProofRecheckClient(db *gorm.DB, resolver social.Resolver) *ProofRecheckClient {
	return &ProofRecheckClient{DB: db, Resolver: resolver}
}

// PollPendingProofs periodically retries unresolved authorship checks.
func PollPendingProofs(ctx context.Context, client *ProofRecheckClient, pollInterval time.Duration) {
	log.Println("Starting proof recheck polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("proof recheck polling stopped")
			return
		case <-ticker.C:
			if err := client.recheckBatch(ctx); err != nil {
				log.Printf("[RECHECK] batch failed: %v", err)
			}
		}
	}
}

func (c *ProofRecheckClient) recheckBatch(ctx context.Context) error {
	var pending []models.Submission
	err := c.DB.WithContext(ctx).
		Where("status = ? AND auto_check = ?", models.SubmissionPending, models.AutoCheckUnresolved).
		Limit(50).
		Find(&pending).Error
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	log.Printf("[RECHECK] retrying %d unresolved submission(s)", len(pending))
	for i := range pending {
		sub := &pending[i]

		var account models.LinkedAccount
		if err := c.DB.WithContext(ctx).First(&account, "id = ?", sub.LinkedAccountID).Error; err != nil {
			continue
		}
		registered := account.Username
		if registered == "" {
			registered, _ = social.ExtractHandle(account.ProfileURL, social.Platform(account.Platform))
		}

		res := c.Resolver.ResolveAuthorship(ctx, sub.ProofLink, social.Platform(sub.Platform))

		annotation := ""
		switch {
		case res.Signal == social.SignalNotFound:
			annotation = models.AutoCheckLinkDead
		case res.Signal == social.SignalAmbiguous || res.Handle == "" || registered == "":
			continue // still unresolved, retry next tick
		case social.HandlesEqual(res.Handle, registered):
			annotation = models.AutoCheckMatched
		default:
			annotation = models.AutoCheckMismatch
		}

		err := c.DB.WithContext(ctx).Model(sub).
			Update("auto_check", annotation).Error
		if err != nil {
			log.Printf("[RECHECK] failed to annotate submission %s: %v", sub.ID, err)
			continue
		}
		log.Printf("[RECHECK] submission %s annotated %s", sub.ID, annotation)
	}
	return nil
}
