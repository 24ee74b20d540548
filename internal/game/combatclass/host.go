package combatclass

import "github.com/udisondev/combatclasses/internal/model"

// Host is the narrow capability set the overlay needs from the game engine.
// Implementations must be safe to call while Manager holds its lock.
type Host interface {
	// Actor resolves the live representation of a character.
	// Returns false when the character is not currently resolvable.
	Actor(id model.FormID) (Actor, bool)

	// Player returns the player character, if one exists.
	Player() (Actor, bool)

	// PushActorAway pushes target away from source. Fire-and-forget.
	PushActorAway(target, source Actor, magnitude float64)

	// Notify shows a transient, non-blocking message on screen.
	Notify(msg string)
}

// Actor is a live character as exposed by the host.
type Actor interface {
	ID() model.FormID
	Name() string

	ActorValue(av model.ActorValue) float64
	SetActorValue(av model.ActorValue, value float64)
	ModActorValue(av model.ActorValue, delta float64)

	// EquippedWeapon returns the right-hand object, if it is a weapon.
	EquippedWeapon() (model.Item, bool)

	Position() model.Position
	CombatTarget() (Actor, bool)
	IsDead() bool
	IsHostileTo(other Actor) bool
	IsPlayerTeammate() bool
	Is3DLoaded() bool
}

// RosterSource supplies the current roster. config.Store implements it.
type RosterSource interface {
	Roster() model.Roster
}

// Recorder receives journal entries for every bonus transition.
// Record must not block.
type Recorder interface {
	Record(entry model.JournalEntry)
}

type nopRecorder struct{}

func (nopRecorder) Record(model.JournalEntry) {}
