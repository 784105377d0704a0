package data

import (
	"fmt"
	"io"

	"github.com/udisondev/battlecore/internal/model"
)

// CharacterDef is a starter character. Persistent counters (gold,
// experience, dignity, mute) are overlaid from the database when it is
// enabled.
type CharacterDef struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Gender      string `yaml:"gender"`
	Class       string `yaml:"class"`
	Level       int16  `yaml:"level"`
	HP          int32  `yaml:"hp"`
	MP          int32  `yaml:"mp"`
	Map         int32  `yaml:"map"`
	X           int16  `yaml:"x"`
	Y           int16  `yaml:"y"`
	Element     string `yaml:"element"`
	ElementRate int32  `yaml:"element_rate"` // percent bonus to elemental damage

	Main       weaponDef  `yaml:"main"`
	Secondary  weaponDef  `yaml:"secondary"`
	Specialist *weaponDef `yaml:"specialist"`
	Skills     []int16    `yaml:"skills"`
	GodMode    bool       `yaml:"god_mode"`
}

type weaponDef struct {
	Min        int32 `yaml:"min"`
	Max        int32 `yaml:"max"`
	HitRate    int32 `yaml:"hit_rate"`
	CritChance int32 `yaml:"crit_chance"`
	CritPower  int32 `yaml:"crit_power"`
	Upgrade    int8  `yaml:"upgrade"`
}

func (w weaponDef) stats() model.WeaponStats {
	return model.WeaponStats{
		MinDamage:  w.Min,
		MaxDamage:  w.Max,
		HitRate:    w.HitRate,
		CritChance: w.CritChance,
		CritPower:  w.CritPower,
		Upgrade:    w.Upgrade,
	}
}

type characterFile struct {
	Characters []CharacterDef `yaml:"characters"`
}

// LoadCharacters parses a characters document.
func LoadCharacters(r io.Reader) ([]CharacterDef, error) {
	f, err := decode[characterFile](r, "characters")
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool, len(f.Characters))
	for _, c := range f.Characters {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate character id %d", c.ID)
		}
		seen[c.ID] = true
		if c.Main.Min > c.Main.Max || c.Secondary.Min > c.Secondary.Max {
			return nil, fmt.Errorf("character %d: min damage above max", c.ID)
		}
	}
	return f.Characters, nil
}

// Build creates the in-session character with its skills learned.
func (d *CharacterDef) Build(skills SkillTable) (*model.Character, error) {
	gender, err := model.ParseGender(d.Gender)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", d.ID, err)
	}
	class, err := model.ParseClass(d.Class)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", d.ID, err)
	}
	elem, err := model.ParseElement(d.Element)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", d.ID, err)
	}

	c := model.NewCharacter(d.ID, d.Name, gender, class, d.Level, d.HP, d.MP)
	c.Place(d.Map, model.NewPosition(d.X, d.Y))
	c.SetElement(elem, d.ElementRate)
	c.SetUnlimitedResources(d.GodMode)

	stats := model.CombatStats{Main: d.Main.stats(), Secondary: d.Secondary.stats()}
	if d.Specialist != nil {
		s := d.Specialist.stats()
		stats.Specialist = &model.SpecialistBonus{
			MinDamage:  s.MinDamage,
			MaxDamage:  s.MaxDamage,
			HitRate:    s.HitRate,
			CritChance: s.CritChance,
			CritPower:  s.CritPower,
		}
	}
	c.SetCombatStats(stats)

	for _, vnum := range d.Skills {
		def, ok := skills[vnum]
		if !ok {
			return nil, fmt.Errorf("character %d: unknown skill %d", d.ID, vnum)
		}
		c.LearnSkill(def)
	}
	return c, nil
}
