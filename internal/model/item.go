package model

// ItemKind is the coarse category of an inventory object.
type ItemKind int32

const (
	ItemKindWeapon ItemKind = iota
	ItemKindArmor
	ItemKindAmmo
	ItemKindMisc
)

// String returns human-readable item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemKindWeapon:
		return "Weapon"
	case ItemKindArmor:
		return "Armor"
	case ItemKindAmmo:
		return "Ammo"
	case ItemKindMisc:
		return "Misc"
	default:
		return "Unknown"
	}
}

// WeaponType mirrors the engine's animation type of a weapon.
type WeaponType int32

const (
	WeaponHandToHand WeaponType = iota
	WeaponOneHandSword
	WeaponOneHandDagger
	WeaponOneHandAxe
	WeaponOneHandMace
	WeaponTwoHandSword
	WeaponTwoHandAxe
	WeaponBow
	WeaponStaff
	WeaponCrossbow
)

var weaponTypeNames = map[WeaponType]string{
	WeaponHandToHand:    "HandToHand",
	WeaponOneHandSword:  "OneHandSword",
	WeaponOneHandDagger: "OneHandDagger",
	WeaponOneHandAxe:    "OneHandAxe",
	WeaponOneHandMace:   "OneHandMace",
	WeaponTwoHandSword:  "TwoHandSword",
	WeaponTwoHandAxe:    "TwoHandAxe",
	WeaponBow:           "Bow",
	WeaponStaff:         "Staff",
	WeaponCrossbow:      "Crossbow",
}

// String returns human-readable weapon type name.
func (t WeaponType) String() string {
	if name, ok := weaponTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseWeaponType resolves a weapon type by its String() name.
func ParseWeaponType(name string) (WeaponType, bool) {
	for t, n := range weaponTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Item is a bound object as seen through equip events.
// Value type, passed by value.
type Item struct {
	ID         FormID
	Name       string
	Kind       ItemKind
	WeaponType WeaponType // meaningful only when Kind == ItemKindWeapon
}

// IsWeapon returns true if the item is a weapon.
func (i Item) IsWeapon() bool {
	return i.Kind == ItemKindWeapon
}

// IsBow returns true for bows. Crossbows do not count.
func (i Item) IsBow() bool {
	return i.IsWeapon() && i.WeaponType == WeaponBow
}
