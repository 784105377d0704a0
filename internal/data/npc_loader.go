package data

import (
	"fmt"
	"io"

	"github.com/udisondev/battlecore/internal/model"
)

// MonsterTable maps monster vnum to its template.
type MonsterTable map[int16]*model.MonsterTemplate

type monsterFile struct {
	Monsters []monsterDef `yaml:"monsters"`
}

type monsterDef struct {
	VNum     int16  `yaml:"vnum"`
	Name     string `yaml:"name"`
	Level    int16  `yaml:"level"`
	HP       int32  `yaml:"hp"`
	MP       int32  `yaml:"mp"`
	Category string `yaml:"category"`
	Speed    uint8  `yaml:"speed"`

	Defence struct {
		Close    int16 `yaml:"close"`
		Distance int16 `yaml:"distance"`
		Magic    int16 `yaml:"magic"`
		Upgrade  int8  `yaml:"upgrade"`
	} `yaml:"defence"`

	Element    string `yaml:"element"`
	Resistance struct {
		Fire  int16 `yaml:"fire"`
		Water int16 `yaml:"water"`
		Light int16 `yaml:"light"`
		Dark  int16 `yaml:"dark"`
	} `yaml:"resistance"`

	XP    int32 `yaml:"xp"`
	JobXP int32 `yaml:"job_xp"`

	Drops []dropDef `yaml:"drops"`
}

type dropDef struct {
	Item    int16  `yaml:"item"`
	Amount  int32  `yaml:"amount"`
	Chance  int32  `yaml:"chance"`
	MapType string `yaml:"map_type"`
}

// LoadMonsters parses a monsters document.
func LoadMonsters(r io.Reader) (MonsterTable, error) {
	f, err := decode[monsterFile](r, "monsters")
	if err != nil {
		return nil, err
	}

	table := make(MonsterTable, len(f.Monsters))
	for i := range f.Monsters {
		tpl, err := f.Monsters[i].build()
		if err != nil {
			return nil, fmt.Errorf("monster #%d (vnum %d): %w", i, f.Monsters[i].VNum, err)
		}
		if _, dup := table[tpl.VNum]; dup {
			return nil, fmt.Errorf("duplicate monster vnum %d", tpl.VNum)
		}
		table[tpl.VNum] = tpl
	}
	return table, nil
}

func (d *monsterDef) build() (*model.MonsterTemplate, error) {
	cat, err := model.ParseMonsterCategory(d.Category)
	if err != nil {
		return nil, err
	}
	elem, err := model.ParseElement(d.Element)
	if err != nil {
		return nil, err
	}
	if d.HP <= 0 {
		return nil, fmt.Errorf("hp must be positive, got %d", d.HP)
	}
	if d.Level <= 0 {
		return nil, fmt.Errorf("level must be positive, got %d", d.Level)
	}

	tpl := &model.MonsterTemplate{
		VNum:            d.VNum,
		Name:            d.Name,
		Level:           d.Level,
		MaxHP:           d.HP,
		MaxMP:           d.MP,
		Category:        cat,
		Speed:           d.Speed,
		CloseDefence:    d.Defence.Close,
		DistanceDefence: d.Defence.Distance,
		MagicDefence:    d.Defence.Magic,
		DefenceUpgrade:  d.Defence.Upgrade,
		Element:         elem,
		FireResistance:  d.Resistance.Fire,
		WaterResistance: d.Resistance.Water,
		LightResistance: d.Resistance.Light,
		DarkResistance:  d.Resistance.Dark,
		XP:              d.XP,
		JobXP:           d.JobXP,
	}
	for _, dr := range d.Drops {
		if dr.Amount <= 0 {
			return nil, fmt.Errorf("drop of item %d: amount must be positive", dr.Item)
		}
		tpl.Drops = append(tpl.Drops, model.DropEntry{
			ItemVNum: dr.Item,
			Amount:   dr.Amount,
			Chance:   dr.Chance,
			MapType:  dr.MapType,
		})
	}
	return tpl, nil
}
