package combatclass

import (
	"log/slog"

	"github.com/udisondev/combatclasses/internal/model"
)

// startKnockback arms the knockback timer. The first knockback fires one
// full interval after the sword is equipped.
// Returns true if the timer was started by this call.
func (m *Manager) startKnockback(actor Actor, st *BonusState, sword model.Item) bool {
	if st.SwordKnockbackActive {
		return false
	}

	st.SwordKnockbackActive = true
	st.LastKnockbackTime = m.clock.Now()

	m.record(actor, model.JournalKnockbackStarted, sword.ID, model.NoForm, "")
	slog.Info("started sword knockback", "actor", actor.Name(), "sword", sword.Name)
	return true
}

func (m *Manager) stopKnockback(actor Actor, st *BonusState) {
	if !st.SwordKnockbackActive {
		return
	}

	st.SwordKnockbackActive = false

	m.record(actor, model.JournalKnockbackStopped, st.EquippedSwordID, model.NoForm, "")
	slog.Info("stopped sword knockback", "actor", actor.Name(), "formID", actor.ID())
}

// performKnockback pushes the nearest live hostile combat target away from actor.
// Returns false when there was no valid target.
func (m *Manager) performKnockback(actor Actor, st *BonusState, tuning model.Tuning) bool {
	target, ok := m.nearestEnemy(actor)
	if !ok || target.IsDead() || !target.IsHostileTo(actor) {
		slog.Debug("knockback attempt without target", "actor", actor.Name())
		return false
	}

	m.host.PushActorAway(target, actor, tuning.KnockbackMagnitude)

	if weapon, ok := actor.EquippedWeapon(); ok {
		m.notify(actor, weapon.Name+" unleashes a powerful knockback!")
	}

	m.record(actor, model.JournalKnockbackPerformed, st.EquippedSwordID, target.ID(), "")
	slog.Info("performed knockback",
		"actor", actor.Name(),
		"target", target.Name(),
		"magnitude", tuning.KnockbackMagnitude)
	return true
}

// nearestEnemy picks the closest of at most two candidates: the player's
// combat target (when alive and hostile to actor) and actor's own combat
// target (when alive). Ties go to the first candidate, the player's target.
func (m *Manager) nearestEnemy(actor Actor) (Actor, bool) {
	candidates := make([]Actor, 0, 2)

	if player, ok := m.host.Player(); ok {
		if t, ok := player.CombatTarget(); ok && !t.IsDead() && t.IsHostileTo(actor) {
			candidates = append(candidates, t)
		}
	}

	if t, ok := actor.CombatTarget(); ok && !t.IsDead() {
		dup := false
		for _, c := range candidates {
			if c.ID() == t.ID() {
				dup = true
				break
			}
		}
		if !dup {
			candidates = append(candidates, t)
		}
	}

	var (
		nearest     Actor
		nearestDist float64
	)
	origin := actor.Position()
	for _, c := range candidates {
		d := origin.DistanceSquared(c.Position())
		if nearest == nil || d < nearestDist {
			nearest = c
			nearestDist = d
		}
	}

	return nearest, nearest != nil
}
