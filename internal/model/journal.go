package model

import "time"

// JournalKind classifies a combat journal entry.
type JournalKind string

const (
	JournalImprovementsApplied JournalKind = "improvements_applied"
	JournalImprovementsRemoved JournalKind = "improvements_removed"
	JournalBowBonusApplied     JournalKind = "bow_bonus_applied"
	JournalBowBonusRemoved     JournalKind = "bow_bonus_removed"
	JournalSpecialBowApplied   JournalKind = "special_bow_applied"
	JournalSpecialBowRemoved   JournalKind = "special_bow_removed"
	JournalKnockbackStarted    JournalKind = "knockback_started"
	JournalKnockbackStopped    JournalKind = "knockback_stopped"
	JournalKnockbackPerformed  JournalKind = "knockback_performed"
	JournalStateCleared        JournalKind = "state_cleared"
)

// JournalEntry records one bonus transition of a tracked character.
type JournalEntry struct {
	Time     time.Time
	ActorID  FormID
	Actor    string
	Kind     JournalKind
	WeaponID FormID // zero when not weapon-related
	TargetID FormID // knockback target, zero otherwise
	Detail   string
}
