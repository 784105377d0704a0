package model

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Class is the character's combat class.
type Class uint8

const (
	ClassAdventurer Class = iota
	ClassSwordsman
	ClassArcher
	ClassMage
)

// ParseClass converts a data-file class name into a Class.
func ParseClass(s string) (Class, error) {
	switch s {
	case "", "adventurer":
		return ClassAdventurer, nil
	case "swordsman":
		return ClassSwordsman, nil
	case "archer":
		return ClassArcher, nil
	case "mage":
		return ClassMage, nil
	}
	return ClassAdventurer, fmt.Errorf("unknown class %q", s)
}

// Gender selects gendered message variants.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
)

// ParseGender converts a data-file gender name into a Gender.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "", "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}
	return GenderMale, fmt.Errorf("unknown gender %q", s)
}

const (
	// MaxDignity is the ceiling of the dignity reputation stat.
	MaxDignity = 100
	// MinDignity is the floor of the dignity reputation stat.
	MinDignity = -1000
)

// Gift is an item delivered straight into a character's inventory.
type Gift struct {
	ItemVNum int16
	Amount   int32
}

// Character — сессионное состояние персонажа, участвующего в бою.
// Thread-safe: числовые поля под mu, флаги atomic.
type Character struct {
	id     int64
	name   string
	gender Gender
	class  Class

	mu         sync.RWMutex
	level      int16
	mapID      int32
	pos        Position
	currentHP  int32
	maxHP      int32
	currentMP  int32
	maxMP      int32
	gold       int64
	experience int64
	jobXP      int64
	dignity    int32
	mutedUntil time.Time
	transform  time.Time
	element    Element
	elemRate   int32
	stats      CombatStats
	gifts      []Gift

	// Флаги читаются в горячем пути валидации каста — atomic без блокировок.
	vehicled        atomic.Bool
	mainLoaded      atomic.Bool
	secondaryLoaded atomic.Bool
	unlimited       atomic.Bool

	skillsMu sync.RWMutex
	skills   map[int16]*SkillCastState // castID -> state
}

// NewCharacter создаёт персонажа с полными HP/MP и заряженным оружием.
func NewCharacter(id int64, name string, gender Gender, class Class, level int16, maxHP, maxMP int32) *Character {
	c := &Character{
		id:        id,
		name:      name,
		gender:    gender,
		class:     class,
		level:     level,
		currentHP: maxHP,
		maxHP:     maxHP,
		currentMP: maxMP,
		maxMP:     maxMP,
		skills:    make(map[int16]*SkillCastState),
	}
	c.mainLoaded.Store(true)
	c.secondaryLoaded.Store(true)
	return c
}

// ID returns the immutable character id.
func (c *Character) ID() int64 { return c.id }

// Name returns the character name.
func (c *Character) Name() string { return c.name }

// Gender returns the character gender.
func (c *Character) Gender() Gender { return c.gender }

// Class returns the character class.
func (c *Character) Class() Class { return c.class }

// Level returns the character level.
func (c *Character) Level() int16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

// SetLevel sets the character level.
func (c *Character) SetLevel(level int16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// MapID returns the id of the map the character is on.
func (c *Character) MapID() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mapID
}

// Position returns the character's current cell.
func (c *Character) Position() Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos
}

// Place moves the character to a map and cell.
func (c *Character) Place(mapID int32, pos Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mapID = mapID
	c.pos = pos
}

// MoveTo updates the cell on the current map.
func (c *Character) MoveTo(pos Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = pos
}

// CurrentHP возвращает текущее HP.
func (c *Character) CurrentHP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentHP
}

// MaxHP возвращает максимальное HP.
func (c *Character) MaxHP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHP
}

// SetCurrentHP устанавливает текущее HP с валидацией (clamp 0..maxHP).
func (c *Character) SetCurrentHP(hp int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentHP = max(0, min(hp, c.maxHP))
}

// IsDead reports whether the character is incapacitated.
func (c *Character) IsDead() bool {
	return c.CurrentHP() <= 0
}

// CurrentMP возвращает текущее MP.
func (c *Character) CurrentMP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentMP
}

// MaxMP возвращает максимальное MP.
func (c *Character) MaxMP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxMP
}

// SetCurrentMP устанавливает текущее MP с валидацией (clamp 0..maxMP).
func (c *Character) SetCurrentMP(mp int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentMP = max(0, min(mp, c.maxMP))
}

// ConsumeMP atomically deducts cost if enough MP is available.
func (c *Character) ConsumeMP(cost int32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentMP < cost {
		return false
	}
	c.currentMP -= cost
	return true
}

// RestoreMP gives back MP, clamped to maxMP.
func (c *Character) RestoreMP(amount int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentMP = min(c.currentMP+amount, c.maxMP)
}

// Gold returns the character's currency.
func (c *Character) Gold() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gold
}

// SetGold overwrites the character's currency (used on load).
func (c *Character) SetGold(gold int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gold = gold
}

// AddGold adds amount, capping the total at limit.
// Returns the new total and whether the cap was hit.
func (c *Character) AddGold(amount, limit int64) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.gold + amount
	if total > limit {
		c.gold = limit
		return c.gold, true
	}
	c.gold = total
	return c.gold, false
}

// Experience returns base and job experience.
func (c *Character) Experience() (xp, jobXP int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.experience, c.jobXP
}

// SetExperience overwrites experience counters (used on load).
func (c *Character) SetExperience(xp, jobXP int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experience = xp
	c.jobXP = jobXP
}

// AddExperience adds base and job experience.
func (c *Character) AddExperience(xp, jobXP int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experience += xp
	c.jobXP += jobXP
}

// Dignity returns the dignity reputation stat.
func (c *Character) Dignity() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dignity
}

// AddDignity adjusts dignity, clamped to [MinDignity, MaxDignity].
func (c *Character) AddDignity(delta int32) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dignity = max(MinDignity, min(c.dignity+delta, MaxDignity))
	return c.dignity
}

// SetDignity overwrites dignity (used on load).
func (c *Character) SetDignity(d int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dignity = d
}

// MutedUntil returns the end of the active mute penalty (zero if none).
func (c *Character) MutedUntil() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mutedUntil
}

// SetMutedUntil sets the mute penalty end time.
func (c *Character) SetMutedUntil(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mutedUntil = t
}

// LastTransform returns when the character last transformed.
func (c *Character) LastTransform() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transform
}

// SetLastTransform stamps a transformation.
func (c *Character) SetLastTransform(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = t
}

// IsVehicled reports whether the character is mounted.
func (c *Character) IsVehicled() bool { return c.vehicled.Load() }

// SetVehicled sets the mounted flag.
func (c *Character) SetVehicled(v bool) { c.vehicled.Store(v) }

// WeaponLoaded reports whether the weapon in slot can be used.
func (c *Character) WeaponLoaded(slot WeaponSlot) bool {
	switch slot {
	case WeaponMain:
		return c.mainLoaded.Load()
	case WeaponSecondary:
		return c.secondaryLoaded.Load()
	default:
		return true
	}
}

// SetWeaponLoaded sets the loaded state of a weapon slot.
func (c *Character) SetWeaponLoaded(slot WeaponSlot, loaded bool) {
	switch slot {
	case WeaponMain:
		c.mainLoaded.Store(loaded)
	case WeaponSecondary:
		c.secondaryLoaded.Store(loaded)
	}
}

// HasUnlimitedResources reports whether skills cost no MP (god mode).
func (c *Character) HasUnlimitedResources() bool { return c.unlimited.Load() }

// SetUnlimitedResources toggles god mode.
func (c *Character) SetUnlimitedResources(v bool) { c.unlimited.Store(v) }

// Element returns the character's elemental affinity and its rate.
func (c *Character) Element() (Element, int32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.element, c.elemRate
}

// SetElement sets the elemental affinity.
func (c *Character) SetElement(e Element, rate int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.element = e
	c.elemRate = rate
}

// CombatStats returns the equipment-derived offence.
func (c *Character) CombatStats() CombatStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// SetCombatStats replaces the equipment-derived offence.
func (c *Character) SetCombatStats(s CombatStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = s
}

// GiftAdd delivers an item directly to the character.
func (c *Character) GiftAdd(itemVNum int16, amount int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gifts = append(c.gifts, Gift{ItemVNum: itemVNum, Amount: amount})
}

// Gifts returns a copy of the items delivered directly.
func (c *Character) Gifts() []Gift {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Gift, len(c.gifts))
	copy(out, c.gifts)
	return out
}

// LearnSkill adds a skill to the character's skill set.
func (c *Character) LearnSkill(def *SkillDefinition) *SkillCastState {
	c.skillsMu.Lock()
	defer c.skillsMu.Unlock()
	if s, ok := c.skills[def.CastID]; ok {
		return s
	}
	s := NewSkillCastState(def)
	c.skills[def.CastID] = s
	return s
}

// Skill returns the cast state of the skill with the given cast id.
func (c *Character) Skill(castID int16) (*SkillCastState, bool) {
	c.skillsMu.RLock()
	defer c.skillsMu.RUnlock()
	s, ok := c.skills[castID]
	return s, ok
}

// Skills returns a snapshot of all learned skills.
func (c *Character) Skills() []*SkillCastState {
	c.skillsMu.RLock()
	defer c.skillsMu.RUnlock()
	out := make([]*SkillCastState, 0, len(c.skills))
	for _, s := range c.skills {
		out = append(out, s)
	}
	return out
}
