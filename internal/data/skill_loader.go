package data

import (
	"fmt"
	"io"

	"github.com/udisondev/battlecore/internal/model"
)

// SkillTable maps skill vnum to its definition.
type SkillTable map[int16]*model.SkillDefinition

type skillFile struct {
	Skills []skillDef `yaml:"skills"`
}

type skillDef struct {
	VNum     int16  `yaml:"vnum"`
	CastID   int16  `yaml:"cast_id"`
	Name     string `yaml:"name"`
	Cooldown int16  `yaml:"cooldown"`
	CastTime int16  `yaml:"cast_time"`
	MPCost   int16  `yaml:"mp_cost"`

	Type       string `yaml:"type"`
	Target     string `yaml:"target"`
	Area       bool   `yaml:"area"`
	Weapon     string `yaml:"weapon"`
	Damage     int16  `yaml:"damage"`
	Elemental  int16  `yaml:"elemental_damage"`
	Range      uint8  `yaml:"range"`
	TargetArea uint8  `yaml:"target_range"`

	CastAnimation   int16 `yaml:"cast_animation"`
	CastEffect      int16 `yaml:"cast_effect"`
	AttackAnimation int16 `yaml:"attack_animation"`
	Effect          int16 `yaml:"effect"`

	Combos []comboDef `yaml:"combos"`
}

type comboDef struct {
	Hit       uint8 `yaml:"hit"`
	Animation int16 `yaml:"animation"`
	Effect    int16 `yaml:"effect"`
}

// LoadSkills parses a skills document.
func LoadSkills(r io.Reader) (SkillTable, error) {
	f, err := decode[skillFile](r, "skills")
	if err != nil {
		return nil, err
	}

	table := make(SkillTable, len(f.Skills))
	castIDs := make(map[int16]int16, len(f.Skills))
	for i := range f.Skills {
		def, err := f.Skills[i].build()
		if err != nil {
			return nil, fmt.Errorf("skill #%d (vnum %d): %w", i, f.Skills[i].VNum, err)
		}
		if _, dup := table[def.VNum]; dup {
			return nil, fmt.Errorf("duplicate skill vnum %d", def.VNum)
		}
		if other, dup := castIDs[def.CastID]; dup {
			return nil, fmt.Errorf("skills %d and %d share cast id %d", other, def.VNum, def.CastID)
		}
		castIDs[def.CastID] = def.VNum
		table[def.VNum] = def
	}
	return table, nil
}

func (d *skillDef) build() (*model.SkillDefinition, error) {
	dt, err := model.ParseDamageType(d.Type)
	if err != nil {
		return nil, err
	}
	tt, err := model.ParseTargetType(d.Target)
	if err != nil {
		return nil, err
	}
	ws, err := model.ParseWeaponSlot(d.Weapon)
	if err != nil {
		return nil, err
	}
	if d.Cooldown < 0 || d.CastTime < 0 || d.MPCost < 0 {
		return nil, fmt.Errorf("negative cooldown, cast time or mp cost")
	}
	// зона по земле без радиуса никого не заденет
	if tt == model.TargetGround && d.TargetArea == 0 {
		return nil, fmt.Errorf("ground skill needs target_range")
	}

	hit := model.HitSingle
	if d.Area || tt != model.TargetMonster {
		hit = model.HitArea
	}

	def := &model.SkillDefinition{
		VNum:            d.VNum,
		CastID:          d.CastID,
		Name:            d.Name,
		Cooldown:        d.Cooldown,
		CastTime:        d.CastTime,
		MPCost:          d.MPCost,
		Type:            dt,
		TargetType:      tt,
		HitType:         hit,
		Weapon:          ws,
		Damage:          d.Damage,
		ElementalDamage: d.Elemental,
		Range:           d.Range,
		TargetRange:     d.TargetArea,
		CastAnimation:   d.CastAnimation,
		CastEffect:      d.CastEffect,
		AttackAnimation: d.AttackAnimation,
		Effect:          d.Effect,
	}
	for _, c := range d.Combos {
		def.Combos = append(def.Combos, model.ComboStep{Hit: c.Hit, Animation: c.Animation, Effect: c.Effect})
	}
	for i := 1; i < len(def.Combos); i++ {
		if def.Combos[i].Hit <= def.Combos[i-1].Hit {
			return nil, fmt.Errorf("combos must be sorted by hit")
		}
	}
	return def, nil
}
