package world

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/battlecore/internal/model"
)

// Map category tags used by reward rules.
const (
	// TagAct4 maps deliver kill rewards straight to the killer.
	TagAct4 = "act4"
	// TagAct52 maps multiply dropped gold by ten.
	TagAct52 = "act52"
)

// groundItemID is shared by all maps so ground item ids stay unique.
var groundItemID atomic.Int64

// Map is one map instance: its monsters and the items lying on it.
// Serves as the target store for combat.
type Map struct {
	id   int32
	name string
	tags []string

	monsters sync.Map // map[int32]*model.Monster — monsterID → monster

	itemsMu sync.Mutex
	items   map[int64]model.GroundItem
	timers  map[int64]*time.Timer
}

// NewMap creates an empty map with the given category tags.
func NewMap(id int32, name string, tags ...string) *Map {
	return &Map{
		id:     id,
		name:   name,
		tags:   slices.Clone(tags),
		items:  make(map[int64]model.GroundItem),
		timers: make(map[int64]*time.Timer),
	}
}

// ID returns the map id.
func (m *Map) ID() int32 { return m.id }

// Name returns the map name.
func (m *Map) Name() string { return m.name }

// Tags returns the map's category tags.
func (m *Map) Tags() []string { return slices.Clone(m.tags) }

// HasTag reports whether the map carries the category tag.
func (m *Map) HasTag(tag string) bool {
	return slices.Contains(m.tags, tag)
}

// AddMonster places a spawned monster on the map.
func (m *Map) AddMonster(mon *model.Monster) {
	m.monsters.Store(mon.ID(), mon)
}

// RemoveMonster despawns a monster.
func (m *Map) RemoveMonster(id int32) {
	m.monsters.Delete(id)
}

// GetMonster returns the monster with the given id.
func (m *Map) GetMonster(id int32) (*model.Monster, bool) {
	v, ok := m.monsters.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*model.Monster), true
}

// Monsters returns every monster on the map, dead or alive.
func (m *Map) Monsters() []*model.Monster {
	var out []*model.Monster
	m.monsters.Range(func(_, v any) bool {
		out = append(out, v.(*model.Monster))
		return true
	})
	return out
}

// InRange returns living monsters within radius cells of (x, y), ordered by id.
func (m *Map) InRange(x, y int16, radius int) []*model.Monster {
	origin := model.NewPosition(x, y)
	var out []*model.Monster
	m.monsters.Range(func(_, v any) bool {
		mon := v.(*model.Monster)
		if mon.IsAlive() && mon.CurrentHP() > 0 && origin.InRange(mon.Position(), radius) {
			out = append(out, mon)
		}
		return true
	})
	slices.SortFunc(out, func(a, b *model.Monster) int { return int(a.ID()) - int(b.ID()) })
	return out
}

// DropItem places an item on the ground. When ttl > 0 the item disappears
// after ttl unless picked up first.
func (m *Map) DropItem(item model.GroundItem, ttl time.Duration) model.GroundItem {
	item.ID = groundItemID.Add(1)
	item.MapID = m.id

	m.itemsMu.Lock()
	defer m.itemsMu.Unlock()

	m.items[item.ID] = item
	if ttl > 0 {
		id := item.ID
		m.timers[id] = time.AfterFunc(ttl, func() {
			if _, ok := m.removeItem(id); ok {
				slog.Debug("ground item expired", "map", m.id, "item", id)
			}
		})
	}
	return item
}

// PickUp removes a ground item and returns it.
func (m *Map) PickUp(id int64) (model.GroundItem, bool) {
	return m.removeItem(id)
}

func (m *Map) removeItem(id int64) (model.GroundItem, bool) {
	m.itemsMu.Lock()
	defer m.itemsMu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return model.GroundItem{}, false
	}
	delete(m.items, id)
	if t, ok := m.timers[id]; ok {
		t.Stop()
		delete(m.timers, id)
	}
	return item, true
}

// GroundItems returns a snapshot of items lying on the map, ordered by id.
func (m *Map) GroundItems() []model.GroundItem {
	m.itemsMu.Lock()
	defer m.itemsMu.Unlock()

	out := make([]model.GroundItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b model.GroundItem) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
