package app

import (
	"errors"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/encoding"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/setup"
	"github.com/louisbranch/manaforge/internal/services/rules/storage"
)

var invalidInput = []error{
	ErrGameIDRequired,
	ErrPlayerIDRequired,
	action.ErrTypeRequired,
	action.ErrPayloadInvalid,
	setup.ErrNoSeats,
	setup.ErrTooManySeats,
	setup.ErrPlayerIDRequired,
	setup.ErrDuplicateSeat,
	setup.ErrUnknownHero,
}

// classify attaches a domain code to a service error. Errors that already
// carry one, and errors with no matching code, pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	var code apperrors.Code
	switch {
	case errors.Is(err, storage.ErrNotFound):
		code = apperrors.CodeNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		code = apperrors.CodeAlreadyExists
	case errors.Is(err, storage.ErrSequenceConflict):
		code = apperrors.CodeJournalConflict
	case errors.Is(err, replay.ErrDiverged),
		errors.Is(err, replay.ErrRejected),
		errors.Is(err, encoding.ErrSnapshotVersion):
		code = apperrors.CodeSnapshotMismatch
	default:
		for _, target := range invalidInput {
			if errors.Is(err, target) {
				code = apperrors.CodeInvalidArgument
				break
			}
		}
	}
	if code == "" {
		return err
	}
	return apperrors.Wrap(code, err.Error(), err)
}
