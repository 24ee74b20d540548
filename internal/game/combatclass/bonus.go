package combatclass

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/combatclasses/internal/model"
)

// HealthRegenMult is the combat health regeneration multiplier set by the overlay.
const HealthRegenMult = 2.0

// Attack-angle multiplier factors of the bow tiers, relative to the configured value.
const (
	bowAngleFactor        = 0.8
	specialBowAngleFactor = 0.6
)

// applyImprovements captures the baseline and writes the overlay.
// No-op if already applied, so a prior baseline is never clobbered.
// Bow tiers already active are taken out of the snapshot and layered back
// on top of the overlay. Returns true if the overlay was applied by this call.
func (m *Manager) applyImprovements(actor Actor, st *BonusState, tuning model.Tuning) bool {
	if st.ImprovementsApplied {
		return false
	}

	for _, av := range model.OverlayValues {
		st.Baseline.set(av, actor.ActorValue(av))
	}
	bowDelta := st.BowBonus + st.SpecialBowBonus
	st.Baseline.Marksman -= bowDelta
	if st.HasBowBonus() {
		st.Baseline.AttackAngleMult = st.PreBowAngleMult
	}

	// Raise marksman toward the bonus floor, never lower it.
	marksman := max(st.Baseline.Marksman, st.Baseline.Marksman+tuning.BaseAccuracyBonus)
	actor.SetActorValue(model.AVMarksman, marksman+bowDelta)
	actor.SetActorValue(model.AVAttackAngleMult, tierAngle(st, tuning))
	actor.SetActorValue(model.AVAimOffsetV, tuning.AimOffsetV)
	actor.SetActorValue(model.AVAimSightedDelay, tuning.AimSightedDelay)
	actor.SetActorValue(model.AVCombatHealthRegenMult, HealthRegenMult)

	st.ImprovementsApplied = true

	m.notify(actor, actor.Name()+"'s Accuracy Improvements Applied")
	m.record(actor, model.JournalImprovementsApplied, model.NoForm, model.NoForm,
		fmt.Sprintf("marksman %.2f -> %.2f", st.Baseline.Marksman, actor.ActorValue(model.AVMarksman)))
	slog.Info("applied accuracy improvements", "actor", actor.Name(), "formID", actor.ID())
	return true
}

// removeImprovements writes the baseline back verbatim.
// Changes made by other systems while the overlay was active are not merged.
func (m *Manager) removeImprovements(actor Actor, st *BonusState) {
	if !st.ImprovementsApplied {
		return
	}

	for _, av := range model.OverlayValues {
		actor.SetActorValue(av, st.Baseline.Get(av))
	}
	st.ImprovementsApplied = false

	m.record(actor, model.JournalImprovementsRemoved, model.NoForm, model.NoForm, "")
	slog.Info("removed accuracy improvements", "actor", actor.Name(), "formID", actor.ID())
}

// applyBowBonus layers the plain bow delta on top of whatever is set.
// Without the overlay the current angle is kept so removal can restore it.
func (m *Manager) applyBowBonus(actor Actor, st *BonusState, bow model.Item, tuning model.Tuning) {
	if !st.ImprovementsApplied {
		st.PreBowAngleMult = actor.ActorValue(model.AVAttackAngleMult)
	}
	actor.ModActorValue(model.AVMarksman, tuning.BowAccuracyBonus)
	actor.SetActorValue(model.AVAttackAngleMult, tuning.AttackAngleMult*bowAngleFactor)
	st.EquippedBowID = bow.ID
	st.BowBonus = tuning.BowAccuracyBonus

	m.record(actor, model.JournalBowBonusApplied, bow.ID, model.NoForm, "")
	slog.Info("applied bow bonus", "actor", actor.Name(), "bow", bow.Name)
}

// removeBowBonus subtracts exactly the delta that was applied. The angle
// multiplier goes back to the overlay value, or to the pre-bow value when
// the overlay is off.
func (m *Manager) removeBowBonus(actor Actor, st *BonusState, tuning model.Tuning) {
	if !st.HasBowBonus() {
		return
	}

	actor.ModActorValue(model.AVMarksman, -st.BowBonus)
	if st.ImprovementsApplied {
		actor.SetActorValue(model.AVAttackAngleMult, tuning.AttackAngleMult)
	} else {
		actor.SetActorValue(model.AVAttackAngleMult, st.PreBowAngleMult)
	}
	st.BowBonus = 0
	st.PreBowAngleMult = 0

	m.record(actor, model.JournalBowBonusRemoved, st.EquippedBowID, model.NoForm, "")
	slog.Info("removed bow bonus", "actor", actor.Name(), "formID", actor.ID())
}

// applySpecialBowBonus adds the special-bow delta in addition to the bow bonus.
// Returns true if the bonus was applied by this call.
func (m *Manager) applySpecialBowBonus(actor Actor, st *BonusState, bow model.Item, tuning model.Tuning) bool {
	if st.HasSpecialBowBonus {
		return false
	}

	actor.ModActorValue(model.AVMarksman, tuning.SpecialBowBonus)
	actor.SetActorValue(model.AVAttackAngleMult, tuning.AttackAngleMult*specialBowAngleFactor)
	st.HasSpecialBowBonus = true
	st.SpecialBowBonus = tuning.SpecialBowBonus

	m.record(actor, model.JournalSpecialBowApplied, bow.ID, model.NoForm, "")
	slog.Info("applied special bow bonus", "actor", actor.Name(), "bow", bow.Name)
	return true
}

// removeSpecialBowBonus drops the special tier. The angle multiplier is
// last-write-wins, so it is re-set to the plain bow value rather than
// derived from the current one.
func (m *Manager) removeSpecialBowBonus(actor Actor, st *BonusState, tuning model.Tuning) {
	if !st.HasSpecialBowBonus {
		return
	}

	actor.ModActorValue(model.AVMarksman, -st.SpecialBowBonus)
	actor.SetActorValue(model.AVAttackAngleMult, tuning.AttackAngleMult*bowAngleFactor)
	st.HasSpecialBowBonus = false
	st.SpecialBowBonus = 0

	m.record(actor, model.JournalSpecialBowRemoved, st.EquippedBowID, model.NoForm, "")
	slog.Info("removed special bow bonus", "actor", actor.Name(), "formID", actor.ID())
}

// tierAngle is the attack angle multiplier of the highest active bow tier.
func tierAngle(st *BonusState, tuning model.Tuning) float64 {
	switch {
	case st.HasSpecialBowBonus:
		return tuning.AttackAngleMult * specialBowAngleFactor
	case st.HasBowBonus():
		return tuning.AttackAngleMult * bowAngleFactor
	default:
		return tuning.AttackAngleMult
	}
}
