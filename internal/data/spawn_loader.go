package data

import (
	"fmt"
	"io"

	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/world"
)

// MapDef describes one map and the monsters spawned on it at startup.
type MapDef struct {
	ID     int32      `yaml:"id"`
	Name   string     `yaml:"name"`
	Tags   []string   `yaml:"tags"`
	Spawns []SpawnDef `yaml:"spawns"`
}

// SpawnDef places one monster.
type SpawnDef struct {
	ID      int32 `yaml:"id"`
	Monster int16 `yaml:"monster"`
	X       int16 `yaml:"x"`
	Y       int16 `yaml:"y"`
}

type mapFile struct {
	Maps []MapDef `yaml:"maps"`
}

// LoadMaps parses a maps document.
func LoadMaps(r io.Reader) ([]MapDef, error) {
	f, err := decode[mapFile](r, "maps")
	if err != nil {
		return nil, err
	}

	seen := make(map[int32]bool, len(f.Maps))
	for _, m := range f.Maps {
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate map id %d", m.ID)
		}
		seen[m.ID] = true

		ids := make(map[int32]bool, len(m.Spawns))
		for _, s := range m.Spawns {
			if ids[s.ID] {
				return nil, fmt.Errorf("map %d: duplicate monster id %d", m.ID, s.ID)
			}
			ids[s.ID] = true
		}
	}
	return f.Maps, nil
}

// Populate adds the maps to w and spawns their monsters.
func Populate(w *world.World, maps []MapDef, monsters MonsterTable) error {
	for _, md := range maps {
		m := world.NewMap(md.ID, md.Name, md.Tags...)
		for _, s := range md.Spawns {
			tpl, ok := monsters[s.Monster]
			if !ok {
				return fmt.Errorf("map %d spawn %d: unknown monster %d", md.ID, s.ID, s.Monster)
			}
			m.AddMonster(model.NewMonster(s.ID, md.ID, tpl, model.NewPosition(s.X, s.Y)))
		}
		w.AddMap(m)
	}
	return nil
}
