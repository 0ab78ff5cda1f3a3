package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure; no infrastructure dependency.

var (
	// ErrInvalidAction marks an action type unknown for the requested
	// channel. Permanent; never retried.
	ErrInvalidAction = errors.New("unknown action for this channel")

	// ErrPetNotFound marks a pet id that does not resolve. Permanent.
	ErrPetNotFound = errors.New("pet not found")

	// ErrWriteConflict marks a lost compare-and-set race. Transient:
	// safe to retry once against a fresh snapshot.
	ErrWriteConflict = errors.New("pet record changed concurrently")

	// ErrSharingDisabled marks a visitor request against a pet whose
	// owner has not enabled sharing.
	ErrSharingDisabled = errors.New("pet is not shared")

	// Shop errors
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrUnknownItem       = errors.New("item not in catalog")
	ErrItemNotOwned      = errors.New("item not owned")
	ErrNotAccessory      = errors.New("item is not an accessory")
)

// CooldownError reports a rejected action with the whole seconds left
// before the actor may act again. Transient and expected; not logged as
// an error.
type CooldownError struct {
	Remaining int64
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for %ds", e.Remaining)
}

// IsCooldown extracts a CooldownError from an error chain.
func IsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
