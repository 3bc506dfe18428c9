package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                 = "UNKNOWN"
	CodeUnknownAction           = "UNKNOWN_ACTION"
	CodeGameOver                = "GAME_OVER"
	CodeWrongPhase              = "WRONG_PHASE"
	CodeNotYourTurn             = "NOT_YOUR_TURN"
	CodePendingChoice           = "PENDING_CHOICE"
	CodePendingTacticDecision   = "PENDING_TACTIC_DECISION"
	CodeInCombat                = "IN_COMBAT"
	CodeActionAlreadyTaken      = "ACTION_ALREADY_TAKEN"
	CodeHexNotAdjacent          = "HEX_NOT_ADJACENT"
	CodeHexNotRevealed          = "HEX_NOT_REVEALED"
	CodeHexImpassable           = "HEX_IMPASSABLE"
	CodeHexOccupied             = "HEX_OCCUPIED"
	CodeInsufficientMove        = "INSUFFICIENT_MOVE"
	CodeTileDeckEmpty           = "TILE_DECK_EMPTY"
	CodeHexRevealed             = "HEX_ALREADY_REVEALED"
	CodeTileOverlap             = "TILE_OVERLAP"
	CodeNoEnemiesAtHex          = "NO_ENEMIES_AT_HEX"
	CodeCardNotInHand           = "CARD_NOT_IN_HAND"
	CodeCardNotPlayable         = "CARD_NOT_PLAYABLE"
	CodeManaRequired            = "MANA_REQUIRED"
	CodeManaUnavailable         = "MANA_UNAVAILABLE"
	CodeManaColorMismatch       = "MANA_COLOR_MISMATCH"
	CodeInvalidManaColor        = "INVALID_MANA_COLOR"
	CodeEffectNotResolvable     = "EFFECT_NOT_RESOLVABLE"
	CodeInvalidResource         = "INVALID_RESOURCE"
	CodeDieNotFound             = "DIE_NOT_FOUND"
	CodeDieTaken                = "DIE_TAKEN"
	CodeDieDepleted             = "DIE_DEPLETED"
	CodeDiceLimitReached        = "DICE_LIMIT_REACHED"
	CodeNoCrystal               = "NO_CRYSTAL"
	CodeNotInCombat             = "NOT_IN_COMBAT"
	CodeWrongCombatPhase        = "WRONG_COMBAT_PHASE"
	CodeEnemyNotFound           = "ENEMY_NOT_FOUND"
	CodeEnemyNotTargetable      = "ENEMY_NOT_TARGETABLE"
	CodeInsufficientPool        = "INSUFFICIENT_POOL"
	CodeEmptyDeclaration        = "EMPTY_DECLARATION"
	CodeAttackKindForbidden     = "ATTACK_KIND_NOT_ALLOWED"
	CodeFortifiedEnemy          = "FORTIFIED_ENEMY"
	CodeDamageNotAssignable     = "DAMAGE_NOT_ASSIGNABLE"
	CodeUnassignedDamage        = "UNASSIGNED_DAMAGE"
	CodeUnitNotFound            = "UNIT_NOT_FOUND"
	CodeUnitNotReady            = "UNIT_NOT_READY"
	CodeUnitAbilityInvalid      = "UNIT_ABILITY_INVALID"
	CodeUnitNotOffered          = "UNIT_NOT_OFFERED"
	CodeRecruitSiteRequired     = "RECRUIT_SITE_REQUIRED"
	CodeInsufficientInfluence   = "INSUFFICIENT_INFLUENCE"
	CodeCommandLimit            = "COMMAND_LIMIT"
	CodeSkillNotOwned           = "SKILL_NOT_OWNED"
	CodeSkillAlreadyUsed        = "SKILL_ALREADY_USED"
	CodeNoPendingChoice         = "NO_PENDING_CHOICE"
	CodeInvalidChoiceIndex      = "INVALID_CHOICE_INDEX"
	CodeNoPendingTacticDecision = "NO_PENDING_TACTIC_DECISION"
	CodeInvalidTacticDecision   = "INVALID_TACTIC_DECISION"
	CodeTacticUnavailable       = "TACTIC_UNAVAILABLE"
	CodeRoundAlreadyAnnounced   = "ROUND_ALREADY_ANNOUNCED"
	CodeDeckNotEmpty            = "DECK_NOT_EMPTY"
	CodeNothingToUndo           = "NOTHING_TO_UNDO"
	CodeCheckpointReached       = "CHECKPOINT_REACHED"
	CodeInvariantViolation      = "INVARIANT_VIOLATION"
	CodeNotFound                = "NOT_FOUND"
	CodeSnapshotMismatch        = "SNAPSHOT_MISMATCH"
	CodeInvalidArgument         = "INVALID_ARGUMENT"
	CodeAlreadyExists           = "ALREADY_EXISTS"
	CodeJournalConflict         = "JOURNAL_CONFLICT"
)

var enUSCatalog = &Catalog{
	locale: BaseLocale,
	messages: map[Code]string{
		CodeUnknown:                 "An unknown error occurred",
		CodeUnknownAction:           "Unknown action type {{.ActionType}}",
		CodeGameOver:                "The game is over",
		CodeWrongPhase:              "Action {{.ActionType}} is not allowed during the {{.Phase}} phase",
		CodeNotYourTurn:             "It is not your turn",
		CodePendingChoice:           "A pending choice must be resolved first",
		CodePendingTacticDecision:   "A pending tactic decision must be resolved first",
		CodeInCombat:                "Action {{.ActionType}} is not allowed during combat",
		CodeActionAlreadyTaken:      "An action was already taken this turn",
		CodeHexNotAdjacent:          "Hex {{.Hex}} is not adjacent to your position",
		CodeHexNotRevealed:          "Hex {{.Hex}} has not been revealed",
		CodeHexImpassable:           "Hex {{.Hex}} cannot be entered",
		CodeHexOccupied:             "Hex {{.Hex}} is occupied by enemies",
		CodeInsufficientMove:        "Moving costs {{.Cost}} but only {{.Available}} move points are available",
		CodeTileDeckEmpty:           "No map tiles remain",
		CodeHexRevealed:             "Hex {{.Hex}} is already revealed",
		CodeTileOverlap:             "A tile centered at {{.Hex}} would overlap the map",
		CodeNoEnemiesAtHex:          "No rampaging enemies at hex {{.Hex}}",
		CodeCardNotInHand:           "Card {{.CardID}} is not in your hand",
		CodeCardNotPlayable:         "Card {{.CardID}} cannot be played this way",
		CodeManaRequired:            "Playing {{.CardID}} powered requires mana",
		CodeManaUnavailable:         "No {{.Color}} mana is available",
		CodeManaColorMismatch:       "{{.Color}} mana cannot power {{.CardID}}",
		CodeInvalidManaColor:        "Mana color {{.Color}} is not valid here",
		CodeEffectNotResolvable:     "The effect of {{.SourceID}} cannot be resolved now",
		CodeInvalidResource:         "Resource {{.Resource}} cannot be gained now",
		CodeDieNotFound:             "Source die {{.DieID}} does not exist",
		CodeDieTaken:                "Source die {{.DieID}} was already taken",
		CodeDieDepleted:             "Source die {{.DieID}} is depleted",
		CodeDiceLimitReached:        "No more source dice can be used this turn",
		CodeNoCrystal:               "No {{.Color}} crystal is available",
		CodeNotInCombat:             "No combat is active",
		CodeWrongCombatPhase:        "Action {{.ActionType}} is not allowed in the {{.Phase}} combat phase",
		CodeEnemyNotFound:           "Enemy {{.EnemyID}} is not in this combat",
		CodeEnemyNotTargetable:      "Enemy {{.EnemyID}} cannot be targeted",
		CodeInsufficientPool:        "Not enough accumulated points for this declaration",
		CodeEmptyDeclaration:        "A declaration must commit at least one point",
		CodeAttackKindForbidden:     "{{.AttackKind}} attacks are not allowed in this phase",
		CodeFortifiedEnemy:          "Enemy {{.EnemyID}} is fortified and only takes siege attacks",
		CodeDamageNotAssignable:     "Enemy {{.EnemyID}} has no damage to assign",
		CodeUnassignedDamage:        "Damage from unblocked enemies must be assigned first",
		CodeUnitNotFound:            "Unit {{.UnitID}} is not under your command",
		CodeUnitNotReady:            "Unit {{.UnitID}} is not ready",
		CodeUnitAbilityInvalid:      "Unit {{.UnitID}} has no ability {{.Index}}",
		CodeUnitNotOffered:          "Unit {{.UnitID}} is not in the offer",
		CodeRecruitSiteRequired:     "Units can only be recruited at a village or monastery",
		CodeInsufficientInfluence:   "Recruiting costs {{.Cost}} but only {{.Available}} influence is available",
		CodeCommandLimit:            "No free command tokens",
		CodeSkillNotOwned:           "Skill {{.SkillID}} is not yours",
		CodeSkillAlreadyUsed:        "Skill {{.SkillID}} was already used",
		CodeNoPendingChoice:         "There is no pending choice",
		CodeInvalidChoiceIndex:      "Choice {{.Index}} is out of range",
		CodeNoPendingTacticDecision: "There is no pending tactic decision",
		CodeInvalidTacticDecision:   "The tactic decision input is invalid",
		CodeTacticUnavailable:       "Tactic {{.TacticID}} is not available",
		CodeRoundAlreadyAnnounced:   "The end of the round was already announced",
		CodeDeckNotEmpty:            "The end of the round can only be announced with an empty deck",
		CodeNothingToUndo:           "There is nothing to undo",
		CodeCheckpointReached:       "Cannot undo past {{.Checkpoint}}",
		CodeInvariantViolation:      "The game state is inconsistent",
		CodeNotFound:                "The requested resource was not found",
		CodeSnapshotMismatch:        "The stored snapshot does not match its hash",
		CodeInvalidArgument:         "The request is invalid",
		CodeAlreadyExists:           "The resource already exists",
		CodeJournalConflict:         "The game changed concurrently, retry the action",
	},
}
