// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Admission errors
	CodeUnknownAction         Code = "UNKNOWN_ACTION"
	CodeGameOver              Code = "GAME_OVER"
	CodeWrongPhase            Code = "WRONG_PHASE"
	CodeNotYourTurn           Code = "NOT_YOUR_TURN"
	CodePendingChoice         Code = "PENDING_CHOICE"
	CodePendingTacticDecision Code = "PENDING_TACTIC_DECISION"
	CodeInCombat              Code = "IN_COMBAT"
	CodeActionAlreadyTaken    Code = "ACTION_ALREADY_TAKEN"

	// Movement errors
	CodeHexNotAdjacent   Code = "HEX_NOT_ADJACENT"
	CodeHexNotRevealed   Code = "HEX_NOT_REVEALED"
	CodeHexImpassable    Code = "HEX_IMPASSABLE"
	CodeHexOccupied      Code = "HEX_OCCUPIED"
	CodeInsufficientMove Code = "INSUFFICIENT_MOVE"
	CodeTileDeckEmpty    Code = "TILE_DECK_EMPTY"
	CodeHexRevealed      Code = "HEX_ALREADY_REVEALED"
	CodeTileOverlap      Code = "TILE_OVERLAP"
	CodeNoEnemiesAtHex   Code = "NO_ENEMIES_AT_HEX"

	// Card and mana errors
	CodeCardNotInHand       Code = "CARD_NOT_IN_HAND"
	CodeCardNotPlayable     Code = "CARD_NOT_PLAYABLE"
	CodeManaRequired        Code = "MANA_REQUIRED"
	CodeManaUnavailable     Code = "MANA_UNAVAILABLE"
	CodeManaColorMismatch   Code = "MANA_COLOR_MISMATCH"
	CodeInvalidManaColor    Code = "INVALID_MANA_COLOR"
	CodeEffectNotResolvable Code = "EFFECT_NOT_RESOLVABLE"
	CodeInvalidResource     Code = "INVALID_RESOURCE"
	CodeDieNotFound         Code = "DIE_NOT_FOUND"
	CodeDieTaken            Code = "DIE_TAKEN"
	CodeDieDepleted         Code = "DIE_DEPLETED"
	CodeDiceLimitReached    Code = "DICE_LIMIT_REACHED"
	CodeNoCrystal           Code = "NO_CRYSTAL"

	// Combat errors
	CodeNotInCombat         Code = "NOT_IN_COMBAT"
	CodeWrongCombatPhase    Code = "WRONG_COMBAT_PHASE"
	CodeEnemyNotFound       Code = "ENEMY_NOT_FOUND"
	CodeEnemyNotTargetable  Code = "ENEMY_NOT_TARGETABLE"
	CodeInsufficientPool    Code = "INSUFFICIENT_POOL"
	CodeEmptyDeclaration    Code = "EMPTY_DECLARATION"
	CodeAttackKindForbidden Code = "ATTACK_KIND_NOT_ALLOWED"
	CodeFortifiedEnemy      Code = "FORTIFIED_ENEMY"
	CodeDamageNotAssignable Code = "DAMAGE_NOT_ASSIGNABLE"
	CodeUnassignedDamage    Code = "UNASSIGNED_DAMAGE"

	// Unit and skill errors
	CodeUnitNotFound          Code = "UNIT_NOT_FOUND"
	CodeUnitNotReady          Code = "UNIT_NOT_READY"
	CodeUnitAbilityInvalid    Code = "UNIT_ABILITY_INVALID"
	CodeUnitNotOffered        Code = "UNIT_NOT_OFFERED"
	CodeRecruitSiteRequired   Code = "RECRUIT_SITE_REQUIRED"
	CodeInsufficientInfluence Code = "INSUFFICIENT_INFLUENCE"
	CodeCommandLimit          Code = "COMMAND_LIMIT"
	CodeSkillNotOwned         Code = "SKILL_NOT_OWNED"
	CodeSkillAlreadyUsed      Code = "SKILL_ALREADY_USED"

	// Choice and tactic errors
	CodeNoPendingChoice         Code = "NO_PENDING_CHOICE"
	CodeInvalidChoiceIndex      Code = "INVALID_CHOICE_INDEX"
	CodeNoPendingTacticDecision Code = "NO_PENDING_TACTIC_DECISION"
	CodeInvalidTacticDecision   Code = "INVALID_TACTIC_DECISION"
	CodeTacticUnavailable       Code = "TACTIC_UNAVAILABLE"

	// Round errors
	CodeRoundAlreadyAnnounced Code = "ROUND_ALREADY_ANNOUNCED"
	CodeDeckNotEmpty          Code = "DECK_NOT_EMPTY"

	// Undo errors
	CodeNothingToUndo     Code = "NOTHING_TO_UNDO"
	CodeCheckpointReached Code = "CHECKPOINT_REACHED"

	// Engine and storage errors
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
	CodeNotFound           Code = "NOT_FOUND"
	CodeSnapshotMismatch   Code = "SNAPSHOT_MISMATCH"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeJournalConflict    Code = "JOURNAL_CONFLICT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed action payloads
	case CodeUnknownAction,
		CodeInvalidArgument,
		CodeInvalidManaColor,
		CodeInvalidResource,
		CodeInvalidChoiceIndex,
		CodeInvalidTacticDecision,
		CodeUnitAbilityInvalid,
		CodeEmptyDeclaration:
		return codes.InvalidArgument

	// PermissionDenied - acting out of turn
	case CodeNotYourTurn:
		return codes.PermissionDenied

	// NotFound - referenced entity doesn't exist
	case CodeNotFound,
		CodeEnemyNotFound,
		CodeUnitNotFound,
		CodeDieNotFound,
		CodeCardNotInHand:
		return codes.NotFound

	case CodeAlreadyExists:
		return codes.AlreadyExists

	// Aborted - another writer advanced the journal first
	case CodeJournalConflict:
		return codes.Aborted

	// Internal - invariant violations and corrupt data
	case CodeUnknown,
		CodeInvariantViolation,
		CodeSnapshotMismatch:
		return codes.Internal

	// FailedPrecondition - state doesn't allow the action
	default:
		return codes.FailedPrecondition
	}
}
