package combatclass

import (
	"time"

	"github.com/udisondev/combatclasses/internal/model"
)

// Baseline is the pre-overlay snapshot of the five overlay attributes.
type Baseline struct {
	Marksman        float64
	AttackAngleMult float64
	AimOffsetV      float64
	AimSightedDelay float64
	HealthRegenMult float64
}

// Get returns the captured value of av.
func (b Baseline) Get(av model.ActorValue) float64 {
	switch av {
	case model.AVMarksman:
		return b.Marksman
	case model.AVAttackAngleMult:
		return b.AttackAngleMult
	case model.AVAimOffsetV:
		return b.AimOffsetV
	case model.AVAimSightedDelay:
		return b.AimSightedDelay
	case model.AVCombatHealthRegenMult:
		return b.HealthRegenMult
	default:
		return 0
	}
}

func (b *Baseline) set(av model.ActorValue, v float64) {
	switch av {
	case model.AVMarksman:
		b.Marksman = v
	case model.AVAttackAngleMult:
		b.AttackAngleMult = v
	case model.AVAimOffsetV:
		b.AimOffsetV = v
	case model.AVAimSightedDelay:
		b.AimSightedDelay = v
	case model.AVCombatHealthRegenMult:
		b.HealthRegenMult = v
	}
}

// BonusState is the per-character bookkeeping of active bonuses.
//
// Invariants:
//   - Baseline is captured once per apply cycle and never overwritten while
//     ImprovementsApplied is true. It never contains a bow tier delta.
//   - BowBonus != 0 only while EquippedBowID is set.
//   - HasSpecialBowBonus only while EquippedBowID is set.
//   - SwordKnockbackActive only while EquippedSwordID is set.
type BonusState struct {
	ImprovementsApplied bool
	Baseline            Baseline

	EquippedBowID      model.FormID
	BowBonus           float64 // marksman delta of the plain bow bonus
	PreBowAngleMult    float64 // attack angle before a bow was drawn without the overlay
	HasSpecialBowBonus bool
	SpecialBowBonus    float64 // marksman delta of the special-bow bonus

	SwordKnockbackActive bool
	EquippedSwordID      model.FormID
	LastKnockbackTime    time.Time
}

// HasBowBonus reports whether the plain bow bonus is applied.
func (s *BonusState) HasBowBonus() bool {
	return !s.EquippedBowID.IsZero()
}

// StateTable maps tracked characters to their bonus state.
// Not thread-safe: owned by Manager and accessed under its lock.
type StateTable struct {
	states map[model.FormID]*BonusState
}

// NewStateTable creates an empty table.
func NewStateTable() *StateTable {
	return &StateTable{states: make(map[model.FormID]*BonusState)}
}

// Get returns the entry for id, or nil.
func (t *StateTable) Get(id model.FormID) *BonusState {
	return t.states[id]
}

// GetOrCreate returns the entry for id, creating an empty one if needed.
func (t *StateTable) GetOrCreate(id model.FormID) *BonusState {
	st, ok := t.states[id]
	if !ok {
		st = &BonusState{}
		t.states[id] = st
	}
	return st
}

// Delete erases the entry for id. Missing entries are ignored.
func (t *StateTable) Delete(id model.FormID) {
	delete(t.states, id)
}

// Len returns the number of tracked characters.
func (t *StateTable) Len() int {
	return len(t.states)
}

// IDs returns the tracked character identifiers in no particular order.
func (t *StateTable) IDs() []model.FormID {
	ids := make([]model.FormID, 0, len(t.states))
	for id := range t.states {
		ids = append(ids, id)
	}
	return ids
}
