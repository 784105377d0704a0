package model

// WeaponStats is the offensive stat-set contributed by one weapon slot.
type WeaponStats struct {
	MinDamage  int32
	MaxDamage  int32
	HitRate    int32
	CritChance int32 // percent
	CritPower  int32 // percent bonus on a critical hit
	Upgrade    int8
}

// SpecialistBonus is added on top of the selected stat-set while a
// specialist card is worn.
type SpecialistBonus struct {
	MinDamage  int32
	MaxDamage  int32
	HitRate    int32
	CritChance int32
	CritPower  int32
}

// CombatStats is the equipment-derived part of a character's offence.
type CombatStats struct {
	Main       WeaponStats
	Secondary  WeaponStats
	Specialist *SpecialistBonus
}

// CombatantSnapshot is a transient, read-only view of an attacker computed at
// resolution time. Never persisted.
type CombatantSnapshot struct {
	CharacterID int64
	Name        string
	Class       Class
	Level       int16
	MapID       int32
	Position    Position

	Main       WeaponStats
	Secondary  WeaponStats
	Specialist *SpecialistBonus

	Element     Element
	ElementRate int32 // percent bonus to elemental damage

	HP    int32
	MaxHP int32
	MP    int32
	MaxMP int32
}
