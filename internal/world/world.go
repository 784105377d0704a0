package world

import (
	"sync"

	"github.com/udisondev/battlecore/internal/model"
)

// World owns every map and every character in session.
// Lookups go through ids; monsters and characters never hold references to
// each other or to their map.
type World struct {
	maps       sync.Map // map[int32]*Map — mapID → map
	characters sync.Map // map[int64]*model.Character — characterID → character
}

// New creates an empty world.
func New() *World {
	return &World{}
}

// AddMap registers a map.
func (w *World) AddMap(m *Map) {
	w.maps.Store(m.ID(), m)
}

// Map returns the map with the given id.
func (w *World) Map(id int32) (*Map, bool) {
	v, ok := w.maps.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Map), true
}

// MapCount returns the number of registered maps.
func (w *World) MapCount() int {
	n := 0
	w.maps.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// AddCharacter registers a character entering the world.
func (w *World) AddCharacter(c *model.Character) {
	w.characters.Store(c.ID(), c)
}

// RemoveCharacter unregisters a character leaving the world.
func (w *World) RemoveCharacter(id int64) {
	w.characters.Delete(id)
}

// Character returns the in-session character with the given id.
func (w *World) Character(id int64) (*model.Character, bool) {
	v, ok := w.characters.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*model.Character), true
}

// CharactersInMap returns every in-session character currently on mapID.
func (w *World) CharactersInMap(mapID int32) []*model.Character {
	var out []*model.Character
	w.characters.Range(func(_, v any) bool {
		c := v.(*model.Character)
		if c.MapID() == mapID {
			out = append(out, c)
		}
		return true
	})
	return out
}

// SnapshotOf computes the combat snapshot of an in-session character.
func (w *World) SnapshotOf(id int64) (model.CombatantSnapshot, bool) {
	c, ok := w.Character(id)
	if !ok {
		return model.CombatantSnapshot{}, false
	}
	return Snapshot(c), true
}
