package events

import (
	"context"
	"log/slog"

	"github.com/udisondev/combatclasses/internal/game/combatclass"
	"github.com/udisondev/combatclasses/internal/model"
)

// Host is the part of the engine the adapter needs: the manager's host
// capabilities plus item form lookup.
type Host interface {
	combatclass.Host
	Item(id model.FormID) (model.Item, bool)
}

// Settings reloads and exposes the roster. config.Store implements it.
type Settings interface {
	Load() error
	Roster() model.Roster
}

// Scheduler is the periodic tick registration set. tick.TickManager implements it.
type Scheduler interface {
	Register(id model.FormID)
	Unregister(id model.FormID)
}

// Adapter forwards host notifications to the combat bonus manager.
type Adapter struct {
	host      Host
	manager   *combatclass.Manager
	settings  Settings
	scheduler Scheduler
}

// NewAdapter creates an adapter. The scheduler may be set later with
// SetScheduler when it needs the adapter's TickFunc at construction.
func NewAdapter(host Host, manager *combatclass.Manager, settings Settings, scheduler Scheduler) *Adapter {
	return &Adapter{
		host:      host,
		manager:   manager,
		settings:  settings,
		scheduler: scheduler,
	}
}

// SetScheduler sets the periodic scheduler.
func (a *Adapter) SetScheduler(s Scheduler) {
	a.scheduler = s
}

// Run pumps events until ctx is canceled or the channel is closed.
func (a *Adapter) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				slog.Info("event stream closed")
				return nil
			}
			a.Handle(ev)
		}
	}
}

// Handle dispatches one event.
func (a *Adapter) Handle(ev Event) {
	slog.Debug("host event", "event", ev.Name())

	switch e := ev.(type) {
	case Equip:
		a.handleEquip(e)
	case ActorLoaded:
		a.actorLoaded(e.Actor)
	case ActorUnloaded:
		a.actorUnloaded(e.Actor)
	case FormDeleted:
		a.actorUnloaded(e.Form)
	case CellFullyLoaded:
		for _, id := range e.Actors {
			a.actorLoaded(id)
		}
	case GameLoaded, DataLoaded:
		a.resync()
	case NewGame:
		a.reloadSettings()
	default:
		slog.Warn("unhandled host event", "event", ev.Name())
	}
}

// TickFunc is the scheduler callback: ticks characters whose live
// representation is currently attached.
func (a *Adapter) TickFunc(id model.FormID) {
	actor, ok := a.host.Actor(id)
	if !ok || !actor.Is3DLoaded() {
		return
	}
	a.manager.OnTick(actor)
}

func (a *Adapter) handleEquip(e Equip) {
	actor, ok := a.host.Actor(e.Actor)
	if !ok {
		return
	}
	item, ok := a.host.Item(e.Item)
	if !ok {
		return
	}

	if e.Equipped {
		a.manager.OnEquip(actor, item)
	} else {
		a.manager.OnUnequip(actor, item)
	}
}

func (a *Adapter) actorLoaded(id model.FormID) {
	actor, ok := a.host.Actor(id)
	if !ok {
		return
	}
	a.manager.OnLoad(actor)

	if a.settings.Roster().IsFollower(id) && a.scheduler != nil {
		a.scheduler.Register(id)
	}
}

func (a *Adapter) actorUnloaded(id model.FormID) {
	if actor, ok := a.host.Actor(id); ok {
		a.manager.OnUnload(actor)
	} else {
		a.manager.Forget(id)
	}
	if a.scheduler != nil {
		a.scheduler.Unregister(id)
	}
}

// reloadSettings keeps the previous roster when the file cannot be read.
func (a *Adapter) reloadSettings() {
	if err := a.settings.Load(); err != nil {
		slog.Error("reloading settings, keeping previous roster", "error", err)
	}
}

// resync reloads settings and re-initializes every loaded, enabled follower.
func (a *Adapter) resync() {
	a.reloadSettings()
	a.manager.Reconcile()
	a.manager.Initialize()

	if a.scheduler == nil {
		return
	}
	for _, f := range a.settings.Roster().Followers() {
		if f.Enabled {
			a.scheduler.Register(f.ID)
		} else {
			a.scheduler.Unregister(f.ID)
		}
	}
}
