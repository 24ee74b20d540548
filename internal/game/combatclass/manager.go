package combatclass

import (
	"log/slog"
	"sync"

	"github.com/udisondev/combatclasses/internal/clock"
	"github.com/udisondev/combatclasses/internal/model"
)

// Manager applies and reverts combat bonuses for roster members.
// It owns the bonus state table and is driven by lifecycle callbacks
// from the event adapter and by the periodic scheduler.
//
// Thread-safety: one mutex guards the whole table for the duration of each
// callback. Per-character locking is never needed by the access pattern.
type Manager struct {
	mu     sync.Mutex
	states *StateTable

	host     Host
	roster   RosterSource
	clock    clock.Clock
	recorder Recorder
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used by the knockback timer.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithRecorder sets the journal sink.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// NewManager creates a Manager bound to host and roster.
func NewManager(host Host, roster RosterSource, opts ...Option) *Manager {
	m := &Manager{
		states:   NewStateTable(),
		host:     host,
		roster:   roster,
		clock:    clock.Real{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnLoad handles a roster member's live representation becoming available.
// Applies the baseline overlay when auto-apply is configured.
func (m *Manager) OnLoad(actor Actor) {
	if actor == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	if !r.IsFollowerEnabled(actor.ID()) {
		return
	}

	slog.Info("follower loaded", "actor", actor.Name(), "formID", actor.ID())

	st := m.states.GetOrCreate(actor.ID())
	if r.Tuning.AutoApplyImprovements {
		m.applyImprovements(actor, st, r.Tuning)
	}
}

// OnUnload reverts every active bonus of a roster member and erases its state.
// Safe to call when no state exists.
func (m *Manager) OnUnload(actor Actor) {
	if actor == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	if !r.IsFollower(actor.ID()) {
		return
	}

	slog.Info("follower unloaded", "actor", actor.Name(), "formID", actor.ID())
	m.revertAll(actor, r.Tuning)
}

// revertAll removes bonuses in reverse layering order so the final baseline
// write is not offset by a later delta subtraction.
func (m *Manager) revertAll(actor Actor, tuning model.Tuning) {
	st := m.states.Get(actor.ID())
	if st == nil {
		return
	}

	m.removeSpecialBowBonus(actor, st, tuning)
	m.removeBowBonus(actor, st, tuning)
	st.EquippedBowID = model.NoForm
	m.stopKnockback(actor, st)
	st.EquippedSwordID = model.NoForm
	m.removeImprovements(actor, st)

	m.states.Delete(actor.ID())
	m.record(actor, model.JournalStateCleared, model.NoForm, model.NoForm, "")
}

// OnEquip handles an equip event for any character; non-roster actors are ignored.
func (m *Manager) OnEquip(actor Actor, item model.Item) {
	if actor == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	if !r.IsFollower(actor.ID()) {
		return
	}
	m.weaponEquipped(actor, item, r)
}

func (m *Manager) weaponEquipped(actor Actor, item model.Item, r model.Roster) {
	if !item.IsWeapon() {
		return
	}

	switch {
	case item.IsBow():
		st := m.states.GetOrCreate(actor.ID())
		if st.EquippedBowID != item.ID {
			if st.HasBowBonus() {
				// Swapped bows without an unequip in between.
				m.removeSpecialBowBonus(actor, st, r.Tuning)
				m.removeBowBonus(actor, st, r.Tuning)
			}
			m.applyBowBonus(actor, st, item, r.Tuning)
			m.notify(actor, item.Name+"'s Bow Bonus Activated")
		}

		if r.IsSpecialBow(item.ID) && m.applySpecialBowBonus(actor, st, item, r.Tuning) {
			m.notify(actor, item.Name+"'s Improved Aim Activated")
		}

	case r.IsSpecialSword(item.ID):
		st := m.states.GetOrCreate(actor.ID())
		if st.EquippedSwordID != item.ID && st.SwordKnockbackActive {
			m.stopKnockback(actor, st)
		}
		st.EquippedSwordID = item.ID
		if m.startKnockback(actor, st, item) {
			m.notify(actor, item.Name+"'s Knockback Power Activated")
		}
	}
}

// OnUnequip mirrors OnEquip. Which bonus is removed is decided by the
// identifiers recorded in the state, not by the item's type alone.
func (m *Manager) OnUnequip(actor Actor, item model.Item) {
	if actor == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	if !r.IsFollower(actor.ID()) {
		return
	}

	st := m.states.Get(actor.ID())
	if st == nil || item.ID.IsZero() {
		return
	}

	switch item.ID {
	case st.EquippedBowID:
		m.removeSpecialBowBonus(actor, st, r.Tuning)
		m.removeBowBonus(actor, st, r.Tuning)
		st.EquippedBowID = model.NoForm
	case st.EquippedSwordID:
		m.stopKnockback(actor, st)
		st.EquippedSwordID = model.NoForm
	}
}

// OnTick runs the knockback timer of one character.
// A knockback is attempted once the configured interval has elapsed since
// the last attempt; the timer restarts whether or not a target was found.
func (m *Manager) OnTick(actor Actor) {
	if actor == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	if !r.IsFollowerEnabled(actor.ID()) {
		return
	}

	st := m.states.Get(actor.ID())
	if st == nil || !st.SwordKnockbackActive || st.EquippedSwordID.IsZero() {
		return
	}

	now := m.clock.Now()
	if now.Sub(st.LastKnockbackTime) >= r.Tuning.KnockbackInterval {
		m.performKnockback(actor, st, r.Tuning)
		st.LastKnockbackTime = now
	}
}

// Initialize resynchronises every loaded, enabled follower: applies the
// baseline overlay and processes the weapon already in hand.
// Called after settings are (re)loaded.
func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	slog.Info("initializing combat classes", "followers", len(r.Followers()))

	for _, f := range r.Followers() {
		if !f.Enabled {
			continue
		}
		actor, ok := m.host.Actor(f.ID)
		if !ok || !actor.Is3DLoaded() {
			continue
		}

		slog.Info("initializing follower", "name", f.Name, "formID", f.ID)
		st := m.states.GetOrCreate(f.ID)
		m.applyImprovements(actor, st, r.Tuning)

		if weapon, ok := actor.EquippedWeapon(); ok {
			m.weaponEquipped(actor, weapon, r)
		}
	}
}

// Reconcile drops the state of characters that left the roster on reload,
// reverting their bonuses when they are still resolvable.
func (m *Manager) Reconcile() {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.roster.Roster()
	for _, id := range m.states.IDs() {
		if r.IsFollower(id) {
			continue
		}
		actor, ok := m.host.Actor(id)
		if !ok {
			slog.Warn("dropping state of unresolvable former follower", "formID", id)
			m.states.Delete(id)
			continue
		}
		slog.Info("follower removed from roster", "actor", actor.Name(), "formID", id)
		m.revertAll(actor, r.Tuning)
	}
}

// Forget erases the state of id without touching attribute values.
// Used when the character can no longer be resolved to revert against, so a
// later load of the same form starts from a fresh baseline.
func (m *Manager) Forget(id model.FormID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states.Get(id) == nil {
		return
	}
	m.states.Delete(id)
	slog.Warn("dropped state of unresolvable character", "formID", id)
}

// State returns a copy of the bonus state of id.
func (m *Manager) State(id model.FormID) (BonusState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.states.Get(id)
	if st == nil {
		return BonusState{}, false
	}
	return *st, true
}

// TrackedCount returns the number of characters with a state entry.
func (m *Manager) TrackedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states.Len()
}

// notify shows msg only for characters the host considers player-aligned.
func (m *Manager) notify(actor Actor, msg string) {
	if actor.IsPlayerTeammate() {
		m.host.Notify(msg)
	}
}

func (m *Manager) record(actor Actor, kind model.JournalKind, weapon, target model.FormID, detail string) {
	m.recorder.Record(model.JournalEntry{
		Time:     m.clock.Now(),
		ActorID:  actor.ID(),
		Actor:    actor.Name(),
		Kind:     kind,
		WeaponID: weapon,
		TargetID: target,
		Detail:   detail,
	})
}
