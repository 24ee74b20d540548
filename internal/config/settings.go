package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/combatclasses/internal/model"
)

// DefaultPlugin is assumed when an entry names no plugin file.
const DefaultPlugin = "Skyrim.esm"

// General holds the tunable overlay parameters.
type General struct {
	BaseAccuracyBonus     float64 `yaml:"base_accuracy_bonus"`
	AttackAngleMult       float64 `yaml:"attack_angle_mult"`
	AimOffsetV            float64 `yaml:"aim_offset_v"`
	AimSightedDelay       float64 `yaml:"aim_sighted_delay"`
	AutoApplyImprovements bool    `yaml:"auto_apply_improvements"`
	BowAccuracyBonus      float64 `yaml:"bow_accuracy_bonus"`
	SpecialBowBonus       float64 `yaml:"special_bow_bonus"`
	KnockbackMagnitude    float64 `yaml:"knockback_magnitude"`
	KnockbackInterval     float64 `yaml:"knockback_interval"` // seconds
}

// FollowerEntry is one roster member as written in the settings file.
type FollowerEntry struct {
	Name    string `yaml:"name"`
	FormID  string `yaml:"form_id"` // hexadecimal, plugin-relative
	Plugin  string `yaml:"plugin,omitempty"`
	Enabled *bool  `yaml:"enabled,omitempty"` // nil means enabled
}

// IsEnabled returns the enabled flag, defaulting to true.
func (f FollowerEntry) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// WeaponEntry is one special weapon as written in the settings file.
type WeaponEntry struct {
	Name   string `yaml:"name"`
	FormID string `yaml:"form_id"`
	Plugin string `yaml:"plugin,omitempty"`
}

// Settings is the on-disk roster and tuning document.
type Settings struct {
	General       General         `yaml:"general"`
	Followers     []FollowerEntry `yaml:"followers"`
	SpecialBows   []WeaponEntry   `yaml:"special_bows"`
	SpecialSwords []WeaponEntry   `yaml:"special_swords"`
}

// DefaultGeneral returns the stock tuning values.
func DefaultGeneral() General {
	return General{
		BaseAccuracyBonus:     30.0,
		AttackAngleMult:       0.5,
		AimOffsetV:            0.85,
		AimSightedDelay:       0.1,
		AutoApplyImprovements: true,
		BowAccuracyBonus:      20.0,
		SpecialBowBonus:       15.0,
		KnockbackMagnitude:    1000.0,
		KnockbackInterval:     10.0,
	}
}

// DefaultSettings returns the first-run document: stock tuning plus one
// example follower and one example weapon of each special category.
func DefaultSettings() Settings {
	return Settings{
		General: DefaultGeneral(),
		Followers: []FollowerEntry{
			{Name: "Samandriel", FormID: "14000", Plugin: "YourMod.esp"},
		},
		SpecialBows: []WeaponEntry{
			{Name: "Truthseeker", FormID: "14001", Plugin: "YourMod.esp"},
		},
		SpecialSwords: []WeaponEntry{
			{Name: "Sevenfold", FormID: "14002", Plugin: "YourMod.esp"},
		},
	}
}

// Tuning converts the general section into model values.
func (g General) Tuning() model.Tuning {
	return model.Tuning{
		BaseAccuracyBonus:     g.BaseAccuracyBonus,
		AttackAngleMult:       g.AttackAngleMult,
		AimOffsetV:            g.AimOffsetV,
		AimSightedDelay:       g.AimSightedDelay,
		AutoApplyImprovements: g.AutoApplyImprovements,
		BowAccuracyBonus:      g.BowAccuracyBonus,
		SpecialBowBonus:       g.SpecialBowBonus,
		KnockbackMagnitude:    g.KnockbackMagnitude,
		KnockbackInterval:     time.Duration(g.KnockbackInterval * float64(time.Second)),
	}
}

// LoadSettings reads the settings file at path.
// A missing file is a first run: defaults are persisted and returned.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("settings file not found, creating with defaults", "path", path)
			s := DefaultSettings()
			if err := SaveSettings(path, s); err != nil {
				return s, err
			}
			return s, nil
		}
		return Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
	}

	// Missing keys keep their stock values.
	s := Settings{General: DefaultGeneral()}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s.General = s.General.sanitized()

	return s, nil
}

// sanitized replaces values the overlay cannot run with by their stock values.
func (g General) sanitized() General {
	if g.KnockbackInterval <= 0 {
		def := DefaultGeneral().KnockbackInterval
		slog.Error("invalid knockback_interval, using default",
			"value", g.KnockbackInterval,
			"default", def)
		g.KnockbackInterval = def
	}
	return g
}

// SaveSettings writes s to path, creating parent directories.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir for %s: %w", path, err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}

	slog.Info("settings saved", "path", path)
	return nil
}
