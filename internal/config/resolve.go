package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/udisondev/combatclasses/internal/model"
)

var (
	// ErrInvalidFormID is returned for entries whose form_id is not a hex number
	// that fits in 32 bits.
	ErrInvalidFormID = errors.New("invalid form id")
	// ErrUnresolvedForm is returned when the host has no form for the entry.
	ErrUnresolvedForm = errors.New("unresolved form")
)

// FormResolver maps a plugin-relative identifier to a runtime FormID.
// Implemented by the host's data handler.
type FormResolver interface {
	LookupForm(localID uint32, plugin string) (model.FormID, bool)
}

// ParseFormID parses a hexadecimal plugin-relative identifier ("14000", "0x14000").
// A full 32-bit identifier is accepted and its load-order byte discarded, so
// "FE001234" yields 0x001234.
func ParseFormID(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidFormID)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormID, s)
	}
	return uint32(v) & 0x00FFFFFF, nil
}

func resolveEntry(r FormResolver, section, name, formID, plugin string) (model.FormID, error) {
	local, err := ParseFormID(formID)
	if err != nil {
		return model.NoForm, fmt.Errorf("%s %q: %w", section, name, err)
	}
	if plugin == "" {
		plugin = DefaultPlugin
	}
	id, ok := r.LookupForm(local, plugin)
	if !ok {
		return model.NoForm, fmt.Errorf("%s %q: %w: %06X in %s", section, name, ErrUnresolvedForm, local, plugin)
	}
	return id, nil
}

// Resolve turns the settings document into a model.Roster.
// Entries that fail to parse or resolve are logged and omitted; the
// returned errors describe each skipped entry.
func (s Settings) Resolve(r FormResolver) (model.Roster, []error) {
	var (
		errs      []error
		followers []model.TrackedCharacter
		weapons   []model.SpecialWeapon
	)

	for _, f := range s.Followers {
		id, err := resolveEntry(r, "follower", f.Name, f.FormID, f.Plugin)
		if err != nil {
			slog.Error("skipping follower entry", "error", err)
			errs = append(errs, err)
			continue
		}
		followers = append(followers, model.TrackedCharacter{Name: f.Name, ID: id, Enabled: f.IsEnabled()})
	}

	addWeapons := func(section string, entries []WeaponEntry, cat model.WeaponCategory) {
		for _, w := range entries {
			id, err := resolveEntry(r, section, w.Name, w.FormID, w.Plugin)
			if err != nil {
				slog.Error("skipping weapon entry", "error", err)
				errs = append(errs, err)
				continue
			}
			weapons = append(weapons, model.SpecialWeapon{Name: w.Name, ID: id, Category: cat})
		}
	}
	addWeapons("special bow", s.SpecialBows, model.CategoryBow)
	addWeapons("special sword", s.SpecialSwords, model.CategorySword)

	return model.NewRoster(s.General.Tuning(), followers, weapons), errs
}
