package world

import (
	"sync"

	"github.com/udisondev/combatclasses/internal/game/combatclass"
	"github.com/udisondev/combatclasses/internal/model"
)

// Actor is a simulated character.
// Implements combatclass.Actor.
type Actor struct {
	id   model.FormID
	name string

	mu        sync.RWMutex
	values    map[model.ActorValue]float64
	position  model.Position
	faction   string
	teammate  bool
	dead      bool
	loaded    bool
	rightHand model.FormID
	targetID  model.FormID

	world *World
}

var _ combatclass.Actor = (*Actor)(nil)

// NewActor creates an actor. It is not 3D-loaded until SetLoaded(true).
// Actors of different non-empty factions are hostile to each other.
func NewActor(id model.FormID, name, faction string) *Actor {
	return &Actor{
		id:      id,
		name:    name,
		faction: faction,
		values:  make(map[model.ActorValue]float64),
	}
}

// ID returns the FormID (immutable after creation).
func (a *Actor) ID() model.FormID {
	return a.id
}

// Name returns the display name.
func (a *Actor) Name() string {
	return a.name
}

// ActorValue returns the current value of av (0 when never set).
func (a *Actor) ActorValue(av model.ActorValue) float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.values[av]
}

// SetActorValue overwrites av.
func (a *Actor) SetActorValue(av model.ActorValue, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[av] = value
}

// ModActorValue adds delta to av.
func (a *Actor) ModActorValue(av model.ActorValue, delta float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[av] += delta
}

// Equip puts item in the right hand.
func (a *Actor) Equip(id model.FormID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rightHand = id
}

// Unequip empties the right hand if it holds id.
func (a *Actor) Unequip(id model.FormID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rightHand == id {
		a.rightHand = model.NoForm
	}
}

// EquippedWeapon returns the right-hand object if it is a weapon.
func (a *Actor) EquippedWeapon() (model.Item, bool) {
	a.mu.RLock()
	id := a.rightHand
	a.mu.RUnlock()

	if id.IsZero() || a.world == nil {
		return model.Item{}, false
	}
	item, ok := a.world.Item(id)
	if !ok || !item.IsWeapon() {
		return model.Item{}, false
	}
	return item, true
}

// Position returns a copy of the actor's coordinates.
func (a *Actor) Position() model.Position {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

// SetPosition moves the actor.
func (a *Actor) SetPosition(p model.Position) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = p
}

// SetCombatTarget sets the current combat target (NoForm clears it).
func (a *Actor) SetCombatTarget(id model.FormID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.targetID = id
}

// CombatTarget returns the current combat target if it is resolvable.
func (a *Actor) CombatTarget() (combatclass.Actor, bool) {
	a.mu.RLock()
	id := a.targetID
	a.mu.RUnlock()

	if id.IsZero() || a.world == nil {
		return nil, false
	}
	return a.world.Actor(id)
}

// IsDead reports whether the actor is dead.
func (a *Actor) IsDead() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dead
}

// SetDead kills or resurrects the actor.
func (a *Actor) SetDead(dead bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dead = dead
}

// Faction returns the faction name.
func (a *Actor) Faction() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.faction
}

// IsHostileTo reports whether a and other belong to different factions.
func (a *Actor) IsHostileTo(other combatclass.Actor) bool {
	o, ok := other.(*Actor)
	if !ok || o == a {
		return false
	}
	mine, theirs := a.Faction(), o.Faction()
	return mine != "" && theirs != "" && mine != theirs
}

// IsPlayerTeammate reports whether the actor is in the player's party.
func (a *Actor) IsPlayerTeammate() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.teammate
}

// SetTeammate adds or removes the actor from the player's party.
func (a *Actor) SetTeammate(teammate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.teammate = teammate
}

// Is3DLoaded reports whether the actor's live representation is attached.
func (a *Actor) Is3DLoaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded
}

// SetLoaded attaches or detaches the live representation.
func (a *Actor) SetLoaded(loaded bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loaded = loaded
}

// pushFrom displaces the actor away from origin by distance units.
// An actor standing exactly on origin is pushed along +X.
func (a *Actor) pushFrom(origin model.Position, distance float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	dx := a.position.X - origin.X
	dy := a.position.Y - origin.Y
	dz := a.position.Z - origin.Z
	length := origin.Distance(a.position)
	if length == 0 {
		a.position.X += distance
		return
	}
	scale := distance / length
	a.position.X += dx * scale
	a.position.Y += dy * scale
	a.position.Z += dz * scale
}
