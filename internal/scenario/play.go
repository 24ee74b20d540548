package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/combatclasses/internal/events"
	"github.com/udisondev/combatclasses/internal/model"
	"github.com/udisondev/combatclasses/internal/world"
)

// WaitFunc blocks for d of scenario time.
type WaitFunc func(ctx context.Context, d time.Duration) error

// RealtimeWait sleeps on the wall clock.
func RealtimeWait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Player applies scenario steps to a world and emits the resulting host events.
type Player struct {
	scenario *Scenario
	world    *world.World
	refs     Refs
	emit     func(events.Event)
	wait     WaitFunc
}

// NewPlayer creates a timeline player.
func NewPlayer(s *Scenario, w *world.World, refs Refs, emit func(events.Event), wait WaitFunc) *Player {
	if wait == nil {
		wait = RealtimeWait
	}
	return &Player{scenario: s, world: w, refs: refs, emit: emit, wait: wait}
}

// Play runs every step at its offset, then holds for Scenario.Hold.
func (p *Player) Play(ctx context.Context) error {
	var elapsed time.Duration

	for i, step := range p.scenario.Steps {
		if err := p.wait(ctx, step.At-elapsed); err != nil {
			return err
		}
		if step.At > elapsed {
			elapsed = step.At
		}
		if err := p.apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}

	if err := p.wait(ctx, p.scenario.Hold); err != nil {
		return err
	}
	slog.Info("scenario finished", "steps", len(p.scenario.Steps))
	return nil
}

func (p *Player) actor(name string) (*world.Actor, error) {
	id, ok := p.refs.Actors[name]
	if !ok {
		return nil, fmt.Errorf("unknown actor %q", name)
	}
	a, ok := p.world.GetActor(id)
	if !ok {
		return nil, fmt.Errorf("actor %q not in world", name)
	}
	return a, nil
}

func (p *Player) apply(step Step) error {
	slog.Debug("scenario step", "at", step.At, "action", step.Action, "actor", step.Actor)

	switch step.Action {
	case "game_loaded":
		p.emit(events.GameLoaded{})
		return nil
	case "data_loaded":
		p.emit(events.DataLoaded{})
		return nil
	case "new_game":
		p.emit(events.NewGame{})
		return nil
	case "cell_loaded":
		ids := make([]model.FormID, 0, len(step.Actors))
		for _, name := range step.Actors {
			a, err := p.actor(name)
			if err != nil {
				return err
			}
			a.SetLoaded(true)
			ids = append(ids, a.ID())
		}
		p.emit(events.CellFullyLoaded{Actors: ids})
		return nil
	}

	a, err := p.actor(step.Actor)
	if err != nil {
		return err
	}

	switch step.Action {
	case "load":
		a.SetLoaded(true)
		p.emit(events.ActorLoaded{Actor: a.ID()})
	case "unload":
		a.SetLoaded(false)
		p.emit(events.ActorUnloaded{Actor: a.ID()})
	case "delete":
		a.SetLoaded(false)
		p.emit(events.FormDeleted{Form: a.ID()})
	case "equip", "unequip":
		itemID, ok := p.refs.Items[step.Item]
		if !ok {
			return fmt.Errorf("unknown item %q", step.Item)
		}
		equipped := step.Action == "equip"
		if equipped {
			a.Equip(itemID)
		} else {
			a.Unequip(itemID)
		}
		p.emit(events.Equip{Actor: a.ID(), Item: itemID, Equipped: equipped})
	case "set_target":
		target := model.NoForm
		if step.Target != "" {
			t, err := p.actor(step.Target)
			if err != nil {
				return err
			}
			target = t.ID()
		}
		a.SetCombatTarget(target)
	case "kill":
		a.SetDead(true)
	case "move":
		a.SetPosition(model.NewPosition(step.Position[0], step.Position[1], step.Position[2]))
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}
