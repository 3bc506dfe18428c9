package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/setup"
	"github.com/louisbranch/manaforge/internal/services/rules/storage"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{"not found", fmt.Errorf("get game g: %w", storage.ErrNotFound), apperrors.CodeNotFound},
		{"exists", fmt.Errorf("create game g: %w", storage.ErrAlreadyExists), apperrors.CodeAlreadyExists},
		{"conflict", fmt.Errorf("append entry 3: %w", storage.ErrSequenceConflict), apperrors.CodeJournalConflict},
		{"diverged", fmt.Errorf("seq 2: %w", replay.ErrDiverged), apperrors.CodeSnapshotMismatch},
		{"game id", ErrGameIDRequired, apperrors.CodeInvalidArgument},
		{"payload", fmt.Errorf("decode action: %w", action.ErrPayloadInvalid), apperrors.CodeInvalidArgument},
		{"hero", setup.ErrUnknownHero, apperrors.CodeInvalidArgument},
		{"coded", apperrors.New(apperrors.CodeNotYourTurn, "turn"), apperrors.CodeNotYourTurn},
		{"other", errors.New("disk full"), apperrors.CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			if got := apperrors.CodeOf(err); got != tt.want {
				t.Fatalf("code = %s, want %s", got, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("classified error lost its cause: %v", err)
			}
		})
	}
	if classify(nil) != nil {
		t.Fatal("classify(nil) should be nil")
	}
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	svc := newService(t, Deps{})
	startGame(t, svc)
	ctx := context.Background()

	_, err := svc.NewGame(ctx, setup.Config{GameID: "game-1", Seats: seats()})
	if got := apperrors.Status(err).Code(); got != codes.AlreadyExists {
		t.Fatalf("duplicate game status = %v, want %v", got, codes.AlreadyExists)
	}
	_, err = svc.Load(ctx, "missing")
	if got := apperrors.Status(err).Code(); got != codes.NotFound {
		t.Fatalf("missing game status = %v, want %v", got, codes.NotFound)
	}
	_, err = svc.Act(ctx, "game-1", "", selectTactic(t, "early_bird"))
	if got := apperrors.Status(err).Code(); got != codes.InvalidArgument {
		t.Fatalf("missing player status = %v, want %v", got, codes.InvalidArgument)
	}
}
