package model

import "fmt"

// DamageType selects which defence a skill is resolved against.
type DamageType uint8

const (
	DamageMelee DamageType = iota
	DamageRanged
	DamageMagic
)

func (t DamageType) String() string {
	switch t {
	case DamageMelee:
		return "melee"
	case DamageRanged:
		return "ranged"
	case DamageMagic:
		return "magic"
	default:
		return fmt.Sprintf("damage_type(%d)", uint8(t))
	}
}

// ParseDamageType converts a data-file name into a DamageType.
func ParseDamageType(s string) (DamageType, error) {
	switch s {
	case "", "melee":
		return DamageMelee, nil
	case "ranged":
		return DamageRanged, nil
	case "magic":
		return DamageMagic, nil
	}
	return DamageMelee, fmt.Errorf("unknown damage type %q", s)
}

// TargetType describes what a skill is aimed at.
type TargetType uint8

const (
	TargetMonster TargetType = iota
	TargetSelf
	TargetGround
)

// ParseTargetType converts a data-file name into a TargetType.
func ParseTargetType(s string) (TargetType, error) {
	switch s {
	case "", "monster":
		return TargetMonster, nil
	case "self":
		return TargetSelf, nil
	case "ground":
		return TargetGround, nil
	}
	return TargetMonster, fmt.Errorf("unknown target type %q", s)
}

// HitType distinguishes single-target skills from area skills.
type HitType uint8

const (
	HitSingle HitType = iota
	HitArea
)

// WeaponSlot is the equipment slot a skill needs loaded before it can be cast.
type WeaponSlot uint8

const (
	WeaponNone WeaponSlot = iota
	WeaponMain
	WeaponSecondary
)

// ParseWeaponSlot converts a data-file name into a WeaponSlot.
func ParseWeaponSlot(s string) (WeaponSlot, error) {
	switch s {
	case "", "none":
		return WeaponNone, nil
	case "main":
		return WeaponMain, nil
	case "secondary":
		return WeaponSecondary, nil
	}
	return WeaponNone, fmt.Errorf("unknown weapon slot %q", s)
}

// HitMode is the outcome code shown by the client for a single hit.
type HitMode int8

const (
	HitModeSelf     HitMode = -2
	HitModeNormal   HitMode = 0
	HitModeMiss     HitMode = 1
	HitModeCritical HitMode = 3
	HitModeArea     HitMode = 5
)

// ComboStep replaces a skill's animation once the hit streak reaches Hit.
type ComboStep struct {
	Hit       uint8
	Animation int16
	Effect    int16
}

// SkillDefinition is the immutable template of a skill.
// Cooldown and CastTime are measured in server time units (see config.Combat.TimeUnit).
type SkillDefinition struct {
	VNum   int16
	CastID int16
	Name   string

	Cooldown int16
	CastTime int16
	MPCost   int16

	Type       DamageType
	TargetType TargetType
	HitType    HitType
	Weapon     WeaponSlot

	Damage          int16
	ElementalDamage int16

	Range       uint8
	TargetRange uint8

	CastAnimation   int16
	CastEffect      int16
	AttackAnimation int16
	Effect          int16

	// Combos отсортированы по возрастанию Hit.
	Combos []ComboStep
}

// ComboFor returns the combo step whose threshold equals hit.
func (s *SkillDefinition) ComboFor(hit uint8) (ComboStep, bool) {
	for _, c := range s.Combos {
		if c.Hit == hit {
			return c, true
		}
	}
	return ComboStep{}, false
}

// MaxComboHit returns the highest defined combo threshold (0 if none).
func (s *SkillDefinition) MaxComboHit() uint8 {
	var max uint8
	for _, c := range s.Combos {
		if c.Hit > max {
			max = c.Hit
		}
	}
	return max
}

// IsZone reports whether the skill hits more than its primary target.
func (s *SkillDefinition) IsZone() bool {
	return s.TargetRange > 0
}
