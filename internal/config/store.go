package config

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/combatclasses/internal/model"
)

// Store owns the settings path and the currently resolved roster.
// Loaded at startup and again on every game load.
// Thread-safe: RWMutex guards the roster swap.
type Store struct {
	path     string
	resolver FormResolver

	mu     sync.RWMutex
	roster model.Roster
}

// NewStore creates a Store. The roster is empty until Load succeeds.
func NewStore(path string, resolver FormResolver) *Store {
	return &Store{
		path:     path,
		resolver: resolver,
		roster:   model.NewRoster(DefaultGeneral().Tuning(), nil, nil),
	}
}

// Load reads and resolves the settings file, replacing the current roster.
// On a read or parse error the previous roster stays in effect.
func (s *Store) Load() error {
	settings, err := LoadSettings(s.path)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	roster, errs := settings.Resolve(s.resolver)

	s.mu.Lock()
	s.roster = roster
	s.mu.Unlock()

	bows, swords := roster.SpecialWeapons()
	slog.Info("settings loaded",
		"followers", len(roster.Followers()),
		"special_bows", bows,
		"special_swords", swords,
		"skipped", len(errs))
	return nil
}

// Roster returns the current resolved roster.
func (s *Store) Roster() model.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}
