// Package scenario replays a scripted host timeline against the in-memory
// world: it builds actors and items from YAML, then emits host events at
// their scheduled offsets.
package scenario

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/combatclasses/internal/config"
	"github.com/udisondev/combatclasses/internal/model"
	"github.com/udisondev/combatclasses/internal/world"
)

// Scenario is the YAML document.
type Scenario struct {
	Plugins []string    `yaml:"plugins"`
	Player  string      `yaml:"player"` // actor name
	Actors  []ActorSpec `yaml:"actors"`
	Items   []ItemSpec  `yaml:"items"`
	Steps   []Step      `yaml:"steps"`

	// Hold keeps the timeline running after the last step so the
	// scheduler can keep ticking.
	Hold time.Duration `yaml:"hold"`
}

// ActorSpec describes one simulated character.
type ActorSpec struct {
	Name     string             `yaml:"name"`
	FormID   string             `yaml:"form_id"`
	Plugin   string             `yaml:"plugin"`
	Faction  string             `yaml:"faction"`
	Teammate bool               `yaml:"teammate"`
	Loaded   bool               `yaml:"loaded"`
	Position [3]float64         `yaml:"position"`
	Values   map[string]float64 `yaml:"values"`   // keyed by actor value name
	Equipped string             `yaml:"equipped"` // item name
}

// ItemSpec describes one item form.
type ItemSpec struct {
	Name       string `yaml:"name"`
	FormID     string `yaml:"form_id"`
	Plugin     string `yaml:"plugin"`
	Kind       string `yaml:"kind"`        // Weapon, Armor, Ammo, Misc
	WeaponType string `yaml:"weapon_type"` // Bow, OneHandSword, ...
}

// Step is one scheduled action.
type Step struct {
	At       time.Duration `yaml:"at"`
	Action   string        `yaml:"action"`
	Actor    string        `yaml:"actor"`
	Actors   []string      `yaml:"actors"` // cell_loaded
	Item     string        `yaml:"item"`
	Target   string        `yaml:"target"`
	Position [3]float64    `yaml:"position"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document and orders its steps by offset.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return &s, nil
}

// Refs maps scenario names to runtime identifiers.
type Refs struct {
	Actors map[string]model.FormID
	Items  map[string]model.FormID
}

// Build creates the world described by the scenario.
func (s *Scenario) Build() (*world.World, Refs, error) {
	w := world.New()
	refs := Refs{
		Actors: make(map[string]model.FormID, len(s.Actors)),
		Items:  make(map[string]model.FormID, len(s.Items)),
	}

	for _, p := range s.Plugins {
		if _, err := w.AddPlugin(p); err != nil {
			return nil, refs, err
		}
	}

	for _, is := range s.Items {
		id, err := formID(w, is.Plugin, is.FormID)
		if err != nil {
			return nil, refs, fmt.Errorf("item %q: %w", is.Name, err)
		}
		item := model.Item{ID: id, Name: is.Name, Kind: parseKind(is.Kind)}
		if item.IsWeapon() {
			wt, ok := model.ParseWeaponType(is.WeaponType)
			if !ok {
				return nil, refs, fmt.Errorf("item %q: unknown weapon type %q", is.Name, is.WeaponType)
			}
			item.WeaponType = wt
		}
		w.AddItem(item)
		refs.Items[is.Name] = id
	}

	for _, as := range s.Actors {
		id, err := formID(w, as.Plugin, as.FormID)
		if err != nil {
			return nil, refs, fmt.Errorf("actor %q: %w", as.Name, err)
		}
		a := world.NewActor(id, as.Name, as.Faction)
		a.SetTeammate(as.Teammate)
		a.SetLoaded(as.Loaded)
		a.SetPosition(model.NewPosition(as.Position[0], as.Position[1], as.Position[2]))
		for name, v := range as.Values {
			av, ok := model.ParseActorValue(name)
			if !ok {
				return nil, refs, fmt.Errorf("actor %q: unknown actor value %q", as.Name, name)
			}
			a.SetActorValue(av, v)
		}
		if as.Equipped != "" {
			itemID, ok := refs.Items[as.Equipped]
			if !ok {
				return nil, refs, fmt.Errorf("actor %q: unknown item %q", as.Name, as.Equipped)
			}
			a.Equip(itemID)
		}
		w.AddActor(a)
		refs.Actors[as.Name] = id
	}

	if s.Player != "" {
		id, ok := refs.Actors[s.Player]
		if !ok {
			return nil, refs, fmt.Errorf("unknown player actor %q", s.Player)
		}
		w.SetPlayer(id)
	}

	return w, refs, nil
}

func formID(w *world.World, plugin, hex string) (model.FormID, error) {
	if plugin == "" {
		plugin = config.DefaultPlugin
	}
	local, err := config.ParseFormID(hex)
	if err != nil {
		return model.NoForm, err
	}
	id, ok := w.FormID(plugin, local)
	if !ok {
		return model.NoForm, fmt.Errorf("plugin %s not in load order", plugin)
	}
	return id, nil
}

func parseKind(s string) model.ItemKind {
	switch s {
	case "Weapon", "":
		return model.ItemKindWeapon
	case "Armor":
		return model.ItemKindArmor
	case "Ammo":
		return model.ItemKindAmmo
	default:
		return model.ItemKindMisc
	}
}
