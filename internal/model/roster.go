package model

import "time"

// TrackedCharacter is a roster member resolved from settings.
// Immutable after load.
type TrackedCharacter struct {
	Name    string
	ID      FormID
	Enabled bool
}

// WeaponCategory separates the two special weapon sets.
type WeaponCategory int32

const (
	CategoryBow WeaponCategory = iota
	CategorySword
)

// String returns human-readable category name.
func (c WeaponCategory) String() string {
	switch c {
	case CategoryBow:
		return "Bow"
	case CategorySword:
		return "Sword"
	default:
		return "Unknown"
	}
}

// SpecialWeapon is a weapon enumerated in settings as triggering an extra effect.
type SpecialWeapon struct {
	Name     string
	ID       FormID
	Category WeaponCategory
}

// Tuning holds the numeric parameters of the combat overlay.
type Tuning struct {
	BaseAccuracyBonus     float64
	AttackAngleMult       float64
	AimOffsetV            float64
	AimSightedDelay       float64
	AutoApplyImprovements bool
	BowAccuracyBonus      float64
	SpecialBowBonus       float64
	KnockbackMagnitude    float64
	KnockbackInterval     time.Duration
}

// Roster is the resolved, read-only view of the settings store.
// A new Roster is built on every reload; callers never mutate one in place.
type Roster struct {
	Tuning Tuning

	followers []TrackedCharacter
	byID      map[FormID]int
	bows      map[FormID]SpecialWeapon
	swords    map[FormID]SpecialWeapon
}

// NewRoster indexes followers and special weapons.
// Duplicate identifiers keep the first entry. Zero identifiers are ignored.
func NewRoster(tuning Tuning, followers []TrackedCharacter, weapons []SpecialWeapon) Roster {
	r := Roster{
		Tuning: tuning,
		byID:   make(map[FormID]int, len(followers)),
		bows:   make(map[FormID]SpecialWeapon),
		swords: make(map[FormID]SpecialWeapon),
	}

	for _, f := range followers {
		if f.ID.IsZero() {
			continue
		}
		if _, dup := r.byID[f.ID]; dup {
			continue
		}
		r.byID[f.ID] = len(r.followers)
		r.followers = append(r.followers, f)
	}

	for _, w := range weapons {
		if w.ID.IsZero() {
			continue
		}
		set := r.bows
		if w.Category == CategorySword {
			set = r.swords
		}
		if _, dup := set[w.ID]; !dup {
			set[w.ID] = w
		}
	}

	return r
}

// Followers returns a copy of the roster in settings order.
func (r Roster) Followers() []TrackedCharacter {
	out := make([]TrackedCharacter, len(r.followers))
	copy(out, r.followers)
	return out
}

// Follower returns the roster entry for id.
func (r Roster) Follower(id FormID) (TrackedCharacter, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return TrackedCharacter{}, false
	}
	return r.followers[idx], true
}

// IsFollower reports roster membership regardless of the enabled flag.
func (r Roster) IsFollower(id FormID) bool {
	_, ok := r.byID[id]
	return ok
}

// IsFollowerEnabled reports whether id is a roster member with bonuses enabled.
func (r Roster) IsFollowerEnabled(id FormID) bool {
	f, ok := r.Follower(id)
	return ok && f.Enabled
}

// IsSpecialBow reports membership in the special-bow set.
func (r Roster) IsSpecialBow(id FormID) bool {
	_, ok := r.bows[id]
	return ok
}

// IsSpecialSword reports membership in the special-sword set.
func (r Roster) IsSpecialSword(id FormID) bool {
	_, ok := r.swords[id]
	return ok
}

// SpecialWeapons returns the number of special bows and swords.
func (r Roster) SpecialWeapons() (bows, swords int) {
	return len(r.bows), len(r.swords)
}
