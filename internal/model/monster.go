package model

import (
	"fmt"
	"sync"
	"time"
)

// MonsterCategory controls how kill rewards are delivered.
type MonsterCategory uint8

const (
	// MonsterNormal drops rewards into the world.
	MonsterNormal MonsterCategory = iota
	// MonsterElite rewards the killer directly.
	MonsterElite
	// MonsterEvent rewards the killer directly.
	MonsterEvent
	// MonsterSpecial gives no rewards at all.
	MonsterSpecial
)

func (c MonsterCategory) String() string {
	switch c {
	case MonsterNormal:
		return "normal"
	case MonsterElite:
		return "elite"
	case MonsterEvent:
		return "event"
	case MonsterSpecial:
		return "special"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseMonsterCategory converts a data-file name into a MonsterCategory.
func ParseMonsterCategory(s string) (MonsterCategory, error) {
	switch s {
	case "", "normal":
		return MonsterNormal, nil
	case "elite":
		return MonsterElite, nil
	case "event":
		return MonsterEvent, nil
	case "special":
		return MonsterSpecial, nil
	}
	return MonsterNormal, fmt.Errorf("unknown monster category %q", s)
}

// MonsterTemplate is the static definition of a monster.
type MonsterTemplate struct {
	VNum     int16
	Name     string
	Level    int16
	MaxHP    int32
	MaxMP    int32
	Category MonsterCategory
	Speed    uint8

	CloseDefence    int16
	DistanceDefence int16
	MagicDefence    int16
	DefenceUpgrade  int8

	Element         Element
	FireResistance  int16
	WaterResistance int16
	LightResistance int16
	DarkResistance  int16

	XP    int32
	JobXP int32

	Drops []DropEntry
}

// Defence returns the defence used against the given damage type.
func (t *MonsterTemplate) Defence(dt DamageType) int32 {
	switch dt {
	case DamageRanged:
		return int32(t.DistanceDefence)
	case DamageMagic:
		return int32(t.MagicDefence)
	default:
		return int32(t.CloseDefence)
	}
}

// Resistance returns the resistance against attacks of element e.
func (t *MonsterTemplate) Resistance(e Element) int32 {
	switch e {
	case ElementFire:
		return int32(t.FireResistance)
	case ElementWater:
		return int32(t.WaterResistance)
	case ElementLight:
		return int32(t.LightResistance)
	case ElementDark:
		return int32(t.DarkResistance)
	default:
		return 0
	}
}

// HitResult describes the state of a monster right after a hit was applied.
type HitResult struct {
	Applied   bool // false when the monster was already dead
	Killed    bool // this hit caused the alive → dead transition
	HP        int32
	HPPercent int32
}

// Monster is the mutable encounter state of a spawned monster.
// HP, alive flag and damage ledger меняются только под mu.
type Monster struct {
	id       int32
	mapID    int32
	template *MonsterTemplate

	mu        sync.Mutex
	hp        int32
	mp        int32
	alive     bool
	deathTime time.Time
	pos       Position
	lastMove  time.Time
	ledger    DamageLedger
	target    int64 // id персонажа, на которого агрится монстр; 0 — нет цели
}

// NewMonster spawns a monster at full health.
func NewMonster(id, mapID int32, tpl *MonsterTemplate, pos Position) *Monster {
	return &Monster{
		id:       id,
		mapID:    mapID,
		template: tpl,
		hp:       tpl.MaxHP,
		mp:       tpl.MaxMP,
		alive:    true,
		pos:      pos,
		ledger:   newDamageLedger(),
	}
}

// ID returns the map-scoped monster id.
func (m *Monster) ID() int32 { return m.id }

// MapID returns the id of the map the monster lives on.
func (m *Monster) MapID() int32 { return m.mapID }

// Template returns the static monster definition.
func (m *Monster) Template() *MonsterTemplate { return m.template }

// ApplyDamage records damage in the ledger and lowers HP.
// The alive → dead transition happens at most once; hits on a dead monster
// are ignored.
func (m *Monster) ApplyDamage(attackerID int64, damage int32, now time.Time) HitResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.alive {
		return HitResult{HP: 0, HPPercent: 0}
	}

	m.ledger.add(attackerID, int64(damage))

	res := HitResult{Applied: true}
	if m.hp <= damage {
		m.hp = 0
		m.mp = 0
		m.alive = false
		m.deathTime = now
		res.Killed = true
	} else {
		m.hp -= damage
	}
	res.HP = m.hp
	res.HPPercent = m.hpPercentLocked()
	return res
}

// IsAlive reports whether the monster is alive.
func (m *Monster) IsAlive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alive
}

// CurrentHP returns the current HP.
func (m *Monster) CurrentHP() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hp
}

// CurrentMP returns the current MP.
func (m *Monster) CurrentMP() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mp
}

// HPPercent returns HP as a percentage of max HP.
func (m *Monster) HPPercent() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hpPercentLocked()
}

func (m *Monster) hpPercentLocked() int32 {
	if m.template.MaxHP <= 0 {
		return 0
	}
	return int32(int64(m.hp) * 100 / int64(m.template.MaxHP))
}

// DeathTime returns when the monster died (zero while alive).
func (m *Monster) DeathTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deathTime
}

// Position returns the monster's current cell.
func (m *Monster) Position() Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// MoveTo updates the monster position and movement stamp.
func (m *Monster) MoveTo(pos Position, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = pos
	m.lastMove = now
}

// LastMove returns when the monster last moved.
func (m *Monster) LastMove() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMove
}

// SetTarget makes the monster chase the character with the given id.
func (m *Monster) SetTarget(charID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = charID
}

// Target returns the id of the character the monster is chasing.
func (m *Monster) Target() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target, m.target != 0
}

// FirstHitter returns the attacker recorded first in the damage ledger.
func (m *Monster) FirstHitter() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.first()
}

// Ledger returns the damage ledger in first-hit order.
func (m *Monster) Ledger() []LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.entries()
}

// Respawn restores the monster to full health at pos and clears the ledger.
func (m *Monster) Respawn(pos Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hp = m.template.MaxHP
	m.mp = m.template.MaxMP
	m.alive = true
	m.deathTime = time.Time{}
	m.pos = pos
	m.target = 0
	m.ledger.reset()
}
