package testutil

import (
	"testing"

	"github.com/udisondev/battlecore/internal/i18n"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/world"
)

// TestMapID — карта, на которой по умолчанию стоят тестовые персонажи.
const TestMapID int32 = 1

// NewSwordsman создаёт мечника 30 уровня (1000 HP, 50 MP) на TestMapID в клетке (10, 10).
// Основное оружие: 10..20 урона, без критов.
func NewSwordsman(id int64, name string) *model.Character {
	c := model.NewCharacter(id, name, model.GenderMale, model.ClassSwordsman, 30, 1000, 50)
	c.Place(TestMapID, model.NewPosition(10, 10))
	c.SetCombatStats(model.CombatStats{
		Main:      model.WeaponStats{MinDamage: 10, MaxDamage: 20},
		Secondary: model.WeaponStats{MinDamage: 5, MaxDamage: 8},
	})
	return c
}

// SkillDef возвращает одиночный ближний скилл: 30 MP, откат 20, каст 5 единиц.
func SkillDef(castID int16) *model.SkillDefinition {
	return &model.SkillDefinition{
		VNum:            200 + castID,
		CastID:          castID,
		Name:            "Slash",
		Cooldown:        20,
		CastTime:        5,
		MPCost:          30,
		Type:            model.DamageMelee,
		TargetType:      model.TargetMonster,
		HitType:         model.HitSingle,
		Weapon:          model.WeaponMain,
		Damage:          8,
		Range:           3,
		CastAnimation:   11,
		CastEffect:      12,
		AttackAnimation: 13,
		Effect:          14,
	}
}

// MonsterTemplate возвращает обычного монстра 5 уровня без защиты и дропа.
func MonsterTemplate(vnum int16, hp int32) *model.MonsterTemplate {
	return &model.MonsterTemplate{
		VNum:  vnum,
		Name:  "Kenko",
		Level: 5,
		MaxHP: hp,
		MaxMP: 10,
		Speed: 1,
		XP:    100,
		JobXP: 10,
	}
}

// SpawnMonster создаёт монстра и кладёт его на карту.
func SpawnMonster(m *world.Map, id int32, tpl *model.MonsterTemplate, x, y int16) *model.Monster {
	mon := model.NewMonster(id, m.ID(), tpl, model.NewPosition(x, y))
	m.AddMonster(mon)
	return mon
}

// NewTestWorld создаёт мир с одной картой TestMapID и добавляет персонажей.
func NewTestWorld(tags []string, chars ...*model.Character) (*world.World, *world.Map) {
	w := world.New()
	m := world.NewMap(TestMapID, "test", tags...)
	w.AddMap(m)
	for _, c := range chars {
		w.AddCharacter(c)
	}
	return w, m
}

// Messages возвращает английский каталог сообщений.
func Messages(tb testing.TB) *i18n.Messages {
	tb.Helper()
	msgs, err := i18n.New("en")
	if err != nil {
		tb.Fatalf("building message catalog: %v", err)
	}
	return msgs
}

// ItemNames — простой каталог имён предметов.
type ItemNames map[int16]string

// ItemName возвращает имя предмета или пустую строку.
func (n ItemNames) ItemName(vnum int16) string {
	return n[vnum]
}
