package world

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/combatclasses/internal/game/combatclass"
	"github.com/udisondev/combatclasses/internal/model"
)

// Knockback is one PushActorAway call observed by the world.
type Knockback struct {
	Target    model.FormID
	Source    model.FormID
	Magnitude float64
}

// World is an in-memory stand-in for the host engine: a registry of
// actors and items keyed by FormID plus a plugin load order.
// Implements combatclass.Host and config.FormResolver.
//
// Thread-safety: RWMutex guards the registries; actors lock themselves.
type World struct {
	mu       sync.RWMutex
	plugins  []string
	actors   map[model.FormID]*Actor
	items    map[model.FormID]model.Item
	playerID model.FormID

	notifications []string
	knockbacks    []Knockback
}

var _ combatclass.Host = (*World)(nil)

// New creates an empty world with the base game master file at index 0.
func New() *World {
	return &World{
		plugins: []string{"Skyrim.esm"},
		actors:  make(map[model.FormID]*Actor),
		items:   make(map[model.FormID]model.Item),
	}
}

// AddPlugin appends a plugin to the load order and returns its index.
// Adding a known plugin returns its existing index.
func (w *World) AddPlugin(name string) (uint8, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, p := range w.plugins {
		if p == name {
			return uint8(i), nil
		}
	}
	if len(w.plugins) >= 0xFF {
		return 0, fmt.Errorf("load order full, cannot add %s", name)
	}
	w.plugins = append(w.plugins, name)
	return uint8(len(w.plugins) - 1), nil
}

// FormID composes the runtime identifier of localID in plugin.
func (w *World) FormID(plugin string, localID uint32) (model.FormID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for i, p := range w.plugins {
		if p == plugin {
			return model.NewFormID(uint8(i), localID), true
		}
	}
	return model.NoForm, false
}

// LookupForm resolves a plugin-relative identifier to an existing form.
func (w *World) LookupForm(localID uint32, plugin string) (model.FormID, bool) {
	id, ok := w.FormID(plugin, localID)
	if !ok {
		return model.NoForm, false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if _, ok := w.actors[id]; ok {
		return id, true
	}
	if _, ok := w.items[id]; ok {
		return id, true
	}
	return model.NoForm, false
}

// AddActor registers an actor. Replaces any actor with the same ID.
func (w *World) AddActor(a *Actor) {
	a.world = w

	w.mu.Lock()
	w.actors[a.id] = a
	w.mu.Unlock()
}

// RemoveActor deletes an actor from the world.
func (w *World) RemoveActor(id model.FormID) {
	w.mu.Lock()
	delete(w.actors, id)
	w.mu.Unlock()
}

// AddItem registers an item form.
func (w *World) AddItem(item model.Item) {
	w.mu.Lock()
	w.items[item.ID] = item
	w.mu.Unlock()
}

// Item returns the item form with the given id.
func (w *World) Item(id model.FormID) (model.Item, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	item, ok := w.items[id]
	return item, ok
}

// SetPlayer marks id as the player character.
func (w *World) SetPlayer(id model.FormID) {
	w.mu.Lock()
	w.playerID = id
	w.mu.Unlock()
}

// GetActor returns the concrete actor with the given id.
func (w *World) GetActor(id model.FormID) (*Actor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.actors[id]
	return a, ok
}

// Actor implements combatclass.Host.
func (w *World) Actor(id model.FormID) (combatclass.Actor, bool) {
	a, ok := w.GetActor(id)
	if !ok {
		return nil, false
	}
	return a, true
}

// Player implements combatclass.Host.
func (w *World) Player() (combatclass.Actor, bool) {
	w.mu.RLock()
	id := w.playerID
	w.mu.RUnlock()

	if id.IsZero() {
		return nil, false
	}
	return w.Actor(id)
}

// PushActorAway records the knockback and displaces the target along the
// source→target direction by magnitude world units.
func (w *World) PushActorAway(target, source combatclass.Actor, magnitude float64) {
	w.mu.Lock()
	w.knockbacks = append(w.knockbacks, Knockback{
		Target:    target.ID(),
		Source:    source.ID(),
		Magnitude: magnitude,
	})
	w.mu.Unlock()

	if t, ok := w.GetActor(target.ID()); ok {
		t.pushFrom(source.Position(), magnitude)
	}

	slog.Debug("actor pushed away",
		"target", target.Name(),
		"source", source.Name(),
		"magnitude", magnitude)
}

// Notify records the message and logs it.
func (w *World) Notify(msg string) {
	w.mu.Lock()
	w.notifications = append(w.notifications, msg)
	w.mu.Unlock()

	slog.Info("notification", "message", msg)
}

// Notifications returns a copy of all messages shown so far.
func (w *World) Notifications() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.notifications))
	copy(out, w.notifications)
	return out
}

// Knockbacks returns a copy of all knockbacks performed so far.
func (w *World) Knockbacks() []Knockback {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Knockback, len(w.knockbacks))
	copy(out, w.knockbacks)
	return out
}

// ActorCount returns number of registered actors.
func (w *World) ActorCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.actors)
}
