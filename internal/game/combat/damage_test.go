package combat

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func swordsman() *model.CombatantSnapshot {
	return &model.CombatantSnapshot{
		CharacterID: 1,
		Class:       model.ClassSwordsman,
		Main:        model.WeaponStats{MinDamage: 10, MaxDamage: 20},
		Secondary:   model.WeaponStats{MinDamage: 100, MaxDamage: 200},
	}
}

func meleeSkill() *model.SkillDefinition {
	return &model.SkillDefinition{VNum: 240, CastID: 1, Type: model.DamageMelee, Damage: 8}
}

func TestEngine_Calculate_Basic(t *testing.T) {
	rng := testutil.NewScriptedRand(5, 99) // base roll +5, no crit
	e := NewEngine(rng, config.OverflowClamp)

	hit := e.Calculate(swordsman(), meleeSkill(), testutil.MonsterTemplate(1, 100))

	assert.Equal(t, int32(17), hit.Raw, "10+5 rolled, +8/4 skill base")
	assert.Equal(t, uint16(17), hit.Damage)
	assert.False(t, hit.Critical)
	assert.Equal(t, model.HitModeNormal, hit.Mode)
	assert.Zero(t, rng.Remaining())
}

func TestEngine_Calculate_Critical(t *testing.T) {
	att := swordsman()
	att.Main.CritChance = 50
	att.Main.CritPower = 100

	e := NewEngine(testutil.NewScriptedRand(0, 49), config.OverflowClamp)
	hit := e.Calculate(att, meleeSkill(), testutil.MonsterTemplate(1, 100))

	assert.True(t, hit.Critical)
	assert.Equal(t, model.HitModeCritical, hit.Mode)
	assert.Equal(t, int32(24), hit.Raw, "(10+2) × (100/100 + 1)")
}

func TestEngine_Calculate_CritRollBoundary(t *testing.T) {
	att := swordsman()
	att.Main.CritChance = 50
	att.Main.CritPower = 100

	// 50 не меньше 50 — крита нет
	e := NewEngine(testutil.NewScriptedRand(0, 50), config.OverflowClamp)
	hit := e.Calculate(att, meleeSkill(), testutil.MonsterTemplate(1, 100))
	assert.False(t, hit.Critical)
	assert.Equal(t, int32(12), hit.Raw)
}

func TestEngine_Calculate_MagicNeverCrits(t *testing.T) {
	att := swordsman()
	att.Main.CritChance = 100
	att.Main.CritPower = 500
	skill := meleeSkill()
	skill.Type = model.DamageMagic
	tpl := testutil.MonsterTemplate(1, 100)
	tpl.CloseDefence = 1000

	rng := testutil.NewScriptedRand(0)
	hit := NewEngine(rng, config.OverflowClamp).Calculate(att, skill, tpl)

	assert.False(t, hit.Critical)
	assert.Equal(t, int32(12), hit.Raw, "magic uses magic defence, not close defence")
	assert.Zero(t, rng.Remaining())
}

func TestEngine_Calculate_FloorReroll(t *testing.T) {
	tpl := testutil.MonsterTemplate(1, 100)
	tpl.CloseDefence = 100

	e := NewEngine(testutil.NewScriptedRand(0, 99, 2), config.OverflowClamp)
	hit := e.Calculate(swordsman(), meleeSkill(), tpl)

	assert.Equal(t, int32(3), hit.Raw, "total below 5 replaced by 1+2")
}

func TestEngine_Calculate_NeverBelowOne(t *testing.T) {
	att := swordsman()
	att.Main = model.WeaponStats{MinDamage: 0, MaxDamage: 3, CritChance: 30, CritPower: 50}
	tpl := testutil.MonsterTemplate(1, 100)
	tpl.CloseDefence = 50

	e := NewEngine(NewRand(42), config.OverflowClamp)
	for range 1000 {
		hit := e.Calculate(att, &model.SkillDefinition{Type: model.DamageMelee}, tpl)
		require.GreaterOrEqual(t, hit.Raw, int32(1))
		require.LessOrEqual(t, hit.Raw, int32(MinDamageFloor))
	}
}

func TestEngine_Calculate_BaseRange(t *testing.T) {
	e := NewEngine(NewRand(7), config.OverflowClamp)
	att := swordsman()
	skill := meleeSkill()
	tpl := testutil.MonsterTemplate(1, 100)

	for range 1000 {
		hit := e.Calculate(att, skill, tpl)
		require.GreaterOrEqual(t, hit.Raw, int32(12))
		require.LessOrEqual(t, hit.Raw, int32(22))
	}
}

func TestEngine_Calculate_UpgradeAndElement(t *testing.T) {
	att := swordsman()
	att.Main.Upgrade = 3
	att.Element = model.ElementFire
	att.ElementRate = 50

	skill := meleeSkill()
	skill.ElementalDamage = 40

	tpl := testutil.MonsterTemplate(1, 100)
	tpl.DefenceUpgrade = 2
	tpl.CloseDefence = 5
	tpl.Element = model.ElementWater
	tpl.FireResistance = 20

	e := NewEngine(testutil.NewScriptedRand(0, 99), config.OverflowClamp)
	hit := e.Calculate(att, skill, tpl)

	// base 12, gap +1 → 12+1=13; elem 10×1.5×2×0.8=24; 13+24-5
	assert.Equal(t, int32(32), hit.Raw)
}

func TestSelectStats(t *testing.T) {
	tests := []struct {
		name  string
		class model.Class
		dt    model.DamageType
		want  int32
	}{
		{"swordsman melee", model.ClassSwordsman, model.DamageMelee, 10},
		{"swordsman ranged", model.ClassSwordsman, model.DamageRanged, 100},
		{"adventurer ranged", model.ClassAdventurer, model.DamageRanged, 100},
		{"archer melee", model.ClassArcher, model.DamageMelee, 100},
		{"archer ranged", model.ClassArcher, model.DamageRanged, 10},
		{"mage ranged", model.ClassMage, model.DamageRanged, 10},
		{"archer magic", model.ClassArcher, model.DamageMagic, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := swordsman()
			att.Class = tt.class
			assert.Equal(t, tt.want, SelectStats(att, tt.dt).MinDamage)
		})
	}
}

func TestSelectStats_Specialist(t *testing.T) {
	att := swordsman()
	att.Specialist = &model.SpecialistBonus{MinDamage: 5, MaxDamage: 7, HitRate: 1, CritChance: 2, CritPower: 3}

	ws := SelectStats(att, model.DamageMelee)
	assert.Equal(t, model.WeaponStats{MinDamage: 15, MaxDamage: 27, HitRate: 1, CritChance: 2, CritPower: 3}, ws)
}

func TestUpgradeGap(t *testing.T) {
	assert.Equal(t, 2, UpgradeGap(3, 1))
	assert.Equal(t, 10, UpgradeGap(12, 0))
	assert.Equal(t, -10, UpgradeGap(0, 15))
	assert.Equal(t, 0, UpgradeGap(4, 4))
}

func TestApplyUpgrade_Table(t *testing.T) {
	wantBase := []int32{110, 115, 122, 132, 143, 154, 165, 190, 220, 300}
	wantDef := []int32{90, 85, 78, 68, 57, 46, 35, 10, 0, 0}

	for i := range MaxUpgradeGap {
		gap := i + 1
		base, def := ApplyUpgrade(gap, 100, 100)
		assert.Equal(t, wantBase[i], base, "+%d", gap)
		assert.Equal(t, int32(100), def, "+%d leaves defence", gap)

		base, def = ApplyUpgrade(-gap, 100, 100)
		assert.Equal(t, int32(100), base, "-%d leaves base", gap)
		assert.Equal(t, wantDef[i], def, "-%d", gap)
	}

	base, def := ApplyUpgrade(0, 100, 100)
	assert.Equal(t, int32(100), base)
	assert.Equal(t, int32(100), def)
}

func TestUpgradeBonus_Monotonic(t *testing.T) {
	for i := 1; i < len(UpgradeBonus); i++ {
		assert.Greater(t, UpgradeBonus[i], UpgradeBonus[i-1])
	}
	assert.Equal(t, 0.10, UpgradeBonus[0])
	assert.Equal(t, 2.00, UpgradeBonus[MaxUpgradeGap-1])
}

func TestElementBoost_Matrix(t *testing.T) {
	elements := []model.Element{model.ElementNone, model.ElementFire, model.ElementWater, model.ElementLight, model.ElementDark}
	for _, e := range elements {
		assert.Equal(t, 1.0, ElementBoost[e][e], "%s vs itself is neutral", e)
	}

	assert.Equal(t, 2.0, ElementBoost[model.ElementFire][model.ElementWater])
	assert.Equal(t, 0.5, ElementBoost[model.ElementFire][model.ElementLight])
	assert.Equal(t, 1.5, ElementBoost[model.ElementFire][model.ElementDark])
	assert.Equal(t, 1.3, ElementBoost[model.ElementDark][model.ElementNone])
	assert.Equal(t, 2.0, ElementBoost[model.ElementLight][model.ElementDark])
	assert.Equal(t, 0.5, ElementBoost[model.ElementWater][model.ElementDark])
}

func TestElemental(t *testing.T) {
	assert.Equal(t, int32(20), Elemental(40, model.ElementFire, 0, model.ElementWater, 0))
	assert.Equal(t, int32(15), Elemental(40, model.ElementFire, 50, model.ElementNone, 20))
	assert.Equal(t, int32(20), Elemental(40, model.ElementWater, 0, model.ElementFire, -30), "negative resistance counts as zero")
	assert.Equal(t, int32(0), Elemental(0, model.ElementFire, 100, model.ElementWater, 0))
	assert.Equal(t, int32(0), Elemental(40, model.Element(9), 0, model.ElementNone, 0))
}

func TestEngine_Fit(t *testing.T) {
	clamp := NewEngine(nil, config.OverflowClamp)
	assert.Equal(t, uint16(65535), clamp.Fit(70000))
	assert.Equal(t, uint16(65535), clamp.Fit(65535))
	assert.Equal(t, uint16(12), clamp.Fit(12))

	wrap := NewEngine(nil, config.OverflowWrap)
	assert.Equal(t, uint16(4465), wrap.Fit(70000))
	assert.Equal(t, uint16(65535), wrap.Fit(65535))
	assert.Equal(t, uint16(1), wrap.Fit(131071))
}

func TestEngine_Resolve_AppliesLedgerAndAggro(t *testing.T) {
	e := NewEngine(testutil.NewScriptedRand(5, 99), config.OverflowClamp)
	mon := model.NewMonster(1, 1, testutil.MonsterTemplate(1, 100), model.NewPosition(0, 0))

	hit, res := e.Resolve(swordsman(), meleeSkill(), mon, time.Now())

	assert.Equal(t, int32(17), hit.Raw)
	assert.True(t, res.Applied)
	assert.Equal(t, int32(83), res.HP)
	assert.Equal(t, []model.LedgerEntry{{AttackerID: 1, Damage: 17}}, mon.Ledger())
	target, ok := mon.Target()
	require.True(t, ok)
	assert.Equal(t, int64(1), target)
}

func TestEngine_Resolve_LedgerKeepsFullDamage(t *testing.T) {
	att := swordsman()
	att.Main = model.WeaponStats{MinDamage: 100000, MaxDamage: 100000}
	e := NewEngine(testutil.NewScriptedRand(), config.OverflowClamp)
	mon := model.NewMonster(1, 1, testutil.MonsterTemplate(1, 500000), model.NewPosition(0, 0))

	hit, res := e.Resolve(att, meleeSkill(), mon, time.Now())

	assert.Equal(t, uint16(65535), hit.Damage)
	assert.Equal(t, int32(100002), hit.Raw)
	assert.Equal(t, int32(500000-100002), res.HP)
}

func TestEngine_Resolve_TwoAttackersConcurrently(t *testing.T) {
	e := NewEngine(testutil.NewScriptedRand(), config.OverflowClamp)
	mon := model.NewMonster(1, 1, testutil.MonsterTemplate(1, 100), model.NewPosition(0, 0))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		kills int
	)
	for id := range int64(2) {
		wg.Go(func() {
			att := swordsman()
			att.CharacterID = id + 1
			att.Main = model.WeaponStats{MinDamage: 48, MaxDamage: 48}
			if _, res := e.Resolve(att, meleeSkill(), mon, time.Now()); res.Killed {
				mu.Lock()
				kills++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 1, kills)
	assert.False(t, mon.IsAlive())

	ledger := mon.Ledger()
	require.Len(t, ledger, 2)
	assert.Equal(t, int64(100), ledger[0].Damage+ledger[1].Damage)

	owner, ok := mon.FirstHitter()
	require.True(t, ok)
	assert.Equal(t, ledger[0].AttackerID, owner)
}
