package services

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable classification of a fraud/ownership outcome.
// These are recoverable, user-facing results — never system faults. Only
// storage/network unavailability escalates to a plain error.
type Kind string

const (
	KindInvalidInput            Kind = "INVALID_INPUT"
	KindInvalidAccount          Kind = "INVALID_ACCOUNT"
	KindInvalidLink             Kind = "INVALID_LINK"
	KindAlreadyLinked           Kind = "ALREADY_LINKED"
	KindAlreadyClaimedByOther   Kind = "ALREADY_CLAIMED_BY_OTHER"
	KindCooldownActive          Kind = "COOLDOWN_ACTIVE"
	KindDuplicateProof          Kind = "DUPLICATE_PROOF"
	KindAlreadySubmittedToday   Kind = "ALREADY_SUBMITTED_TODAY"
	KindOwnershipMismatch       Kind = "OWNERSHIP_MISMATCH"
	KindVerificationFailed      Kind = "VERIFICATION_FAILED"
	KindVerificationUnavailable Kind = "VERIFICATION_UNAVAILABLE"
	KindInvalidDecision         Kind = "INVALID_DECISION"
	KindNotFound                Kind = "NOT_FOUND"
)

// DomainError carries a Kind plus a human-readable detail. Every exposed
// operation reports failures through one of these rather than a bare bool.
type DomainError struct {
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func domainErr(kind Kind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error, or "" for system faults.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
