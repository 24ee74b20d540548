// Package events translates host engine notifications into combat bonus
// lifecycle callbacks and keeps the periodic scheduler's registration set
// in step with actor load state.
package events

import "github.com/udisondev/combatclasses/internal/model"

// Event is a host notification delivered to the Adapter.
type Event interface {
	Name() string
}

// Equip reports an equip-state change for any character.
type Equip struct {
	Actor    model.FormID
	Item     model.FormID
	Equipped bool // false for unequip
}

// ActorLoaded reports that a character's live representation was attached.
type ActorLoaded struct {
	Actor model.FormID
}

// ActorUnloaded reports that a character's live representation was detached.
type ActorUnloaded struct {
	Actor model.FormID
}

// FormDeleted reports that a form is about to be destroyed.
type FormDeleted struct {
	Form model.FormID
}

// CellFullyLoaded lists the characters present in a cell that finished loading.
type CellFullyLoaded struct {
	Actors []model.FormID
}

// GameLoaded is sent after a save game finished loading.
type GameLoaded struct{}

// DataLoaded is sent once all game data files are loaded at startup.
type DataLoaded struct{}

// NewGame is sent when a new game starts.
type NewGame struct{}

func (e Equip) Name() string {
	if e.Equipped {
		return "equip"
	}
	return "unequip"
}

func (ActorLoaded) Name() string     { return "actor_loaded" }
func (ActorUnloaded) Name() string   { return "actor_unloaded" }
func (FormDeleted) Name() string     { return "form_deleted" }
func (CellFullyLoaded) Name() string { return "cell_fully_loaded" }
func (GameLoaded) Name() string      { return "game_loaded" }
func (DataLoaded) Name() string      { return "data_loaded" }
func (NewGame) Name() string         { return "new_game" }
