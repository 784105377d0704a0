package combat

import (
	"math"
	"time"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/model"
)

// MinDamageFloor is the total below which damage is re-rolled in [1, MinDamageFloor].
const MinDamageFloor = 5

// MaxUpgradeGap bounds the attacker/defender upgrade difference.
const MaxUpgradeGap = 10

// UpgradeBonus is indexed by |upgrade gap| - 1. Positive gaps raise base
// damage by this fraction, negative gaps lower monster defence by it.
var UpgradeBonus = [MaxUpgradeGap]float64{0.10, 0.15, 0.22, 0.32, 0.43, 0.54, 0.65, 0.90, 1.20, 2.00}

// ElementBoost[attacker][defender] scales elemental damage.
// Rows and columns follow model.Element order: none, fire, water, light, dark.
var ElementBoost = [5][5]float64{
	model.ElementNone:  {1.0, 1.0, 1.0, 1.0, 1.0},
	model.ElementFire:  {1.3, 1.0, 2.0, 0.5, 1.5},
	model.ElementWater: {1.3, 2.0, 1.0, 1.5, 0.5},
	model.ElementLight: {1.3, 1.5, 0.5, 1.0, 2.0},
	model.ElementDark:  {1.3, 0.5, 1.5, 2.0, 1.0},
}

// Hit is the outcome of one damage roll.
type Hit struct {
	Raw      int32  // total applied to HP and the damage ledger
	Damage   uint16 // Raw fitted into the outcome field
	Critical bool
	Mode     model.HitMode
}

// Engine computes skill damage against monsters.
// Safe for concurrent use if the random source is.
type Engine struct {
	rng      Rand
	overflow config.OverflowMode
}

// NewEngine creates a damage engine. A nil rng uses DefaultRand.
func NewEngine(rng Rand, overflow config.OverflowMode) *Engine {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Engine{rng: rng, overflow: overflow}
}

// SelectStats picks the weapon stat-set used for dt and adds the specialist
// bonus. Archers hit in melee with their secondary weapon, adventurers and
// swordsmen shoot with theirs.
func SelectStats(att *model.CombatantSnapshot, dt model.DamageType) model.WeaponStats {
	ws := att.Main
	switch dt {
	case model.DamageMelee:
		if att.Class == model.ClassArcher {
			ws = att.Secondary
		}
	case model.DamageRanged:
		if att.Class == model.ClassAdventurer || att.Class == model.ClassSwordsman {
			ws = att.Secondary
		}
	}

	if sp := att.Specialist; sp != nil {
		ws.MinDamage += sp.MinDamage
		ws.MaxDamage += sp.MaxDamage
		ws.HitRate += sp.HitRate
		ws.CritChance += sp.CritChance
		ws.CritPower += sp.CritPower
	}
	return ws
}

// UpgradeGap returns attacker minus defender upgrade, clamped to ±MaxUpgradeGap.
func UpgradeGap(attacker, defender int8) int {
	return max(-MaxUpgradeGap, min(int(attacker)-int(defender), MaxUpgradeGap))
}

// ApplyUpgrade adjusts base damage and defence for an upgrade gap.
func ApplyUpgrade(gap int, base, defence int32) (int32, int32) {
	switch {
	case gap > 0:
		base += int32(float64(base) * UpgradeBonus[gap-1])
	case gap < 0:
		defence -= int32(float64(defence) * UpgradeBonus[-gap-1])
		defence = max(defence, 0)
	}
	return base, defence
}

// Elemental returns the elemental component of a hit.
func Elemental(skillElemental int16, att model.Element, rate int32, def model.Element, resistance int32) int32 {
	if int(att) >= len(ElementBoost) || int(def) >= len(ElementBoost) {
		return 0
	}
	v := float64(skillElemental / 4)
	v *= 1 + float64(rate)/100
	v *= ElementBoost[att][def]
	v *= float64(100-max(resistance, 0)) / 100
	return int32(v)
}

// Fit maps a damage total into the outcome field.
func (e *Engine) Fit(total int32) uint16 {
	if total <= 0 {
		return 0
	}
	if e.overflow == config.OverflowWrap {
		for total > math.MaxUint16 {
			total -= math.MaxUint16
		}
		return uint16(total)
	}
	return uint16(min(total, math.MaxUint16))
}

// Calculate rolls the damage of skill used by att against a monster of tpl.
// It has no side effects apart from consuming the random source.
func (e *Engine) Calculate(att *model.CombatantSnapshot, skill *model.SkillDefinition, tpl *model.MonsterTemplate) Hit {
	ws := SelectStats(att, skill.Type)

	base := rollInclusive(e.rng, ws.MinDamage, ws.MaxDamage)
	base += int32(skill.Damage / 4)

	defence := tpl.Defence(skill.Type)
	base, defence = ApplyUpgrade(UpgradeGap(ws.Upgrade, tpl.DefenceUpgrade), base, defence)

	hit := Hit{Mode: model.HitModeNormal}
	// магия не критует
	if skill.Type != model.DamageMagic && e.rng.IntN(100) < int(ws.CritChance) {
		base = int32(float64(base) * (float64(ws.CritPower)/100 + 1))
		hit.Critical = true
		hit.Mode = model.HitModeCritical
	}

	elem := Elemental(skill.ElementalDamage, att.Element, att.ElementRate, tpl.Element, tpl.Resistance(att.Element))

	total := base + elem - defence
	if total < MinDamageFloor {
		total = rollInclusive(e.rng, 1, MinDamageFloor)
	}

	hit.Raw = total
	hit.Damage = e.Fit(total)
	return hit
}

// Resolve calculates a hit and applies it to mon: the damage ledger and HP
// are updated atomically and the monster turns on the attacker.
func (e *Engine) Resolve(att *model.CombatantSnapshot, skill *model.SkillDefinition, mon *model.Monster, now time.Time) (Hit, model.HitResult) {
	hit := e.Calculate(att, skill, mon.Template())
	res := mon.ApplyDamage(att.CharacterID, hit.Raw, now)
	if res.Applied && !res.Killed {
		mon.SetTarget(att.CharacterID)
	}
	return hit, res
}
