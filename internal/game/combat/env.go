// Package combat resolves skill damage against monsters and distributes
// kill rewards.
package combat

import (
	"time"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/game/broadcast"
	"github.com/udisondev/battlecore/internal/i18n"
	"github.com/udisondev/battlecore/internal/model"
)

// CharacterStore resolves in-session characters by id.
type CharacterStore interface {
	Character(id int64) (*model.Character, bool)
	SnapshotOf(id int64) (model.CombatantSnapshot, bool)
}

// GroupService answers group membership questions.
type GroupService interface {
	GroupOf(charID int64) (*model.Group, bool)
}

// ItemCatalog names items for notices.
type ItemCatalog interface {
	ItemName(vnum int16) string
}

// Area is the map a kill happened on.
type Area interface {
	TargetStore
	ID() int32
	HasTag(tag string) bool
	Tags() []string
	DropItem(item model.GroundItem, ttl time.Duration) model.GroundItem
}

// RewardHooks lets scripts adjust reward rules. Each hook receives the
// built-in value and returns the one to use.
type RewardHooks interface {
	AreaGoldMultiplier(mapID int32, tags []string, def float64) float64
	IsRewardExempt(tpl *model.MonsterTemplate, def bool) bool
}

// Env is everything combat needs from the rest of the server.
// Passed explicitly into every entry point; no package-level state.
type Env struct {
	Characters CharacterStore
	Groups     GroupService
	Items      ItemCatalog
	Rates      config.Rates
	Combat     config.Combat
	Rand       Rand
	Engine     *Engine
	Out        *broadcast.Broadcaster
	Messages   *i18n.Messages
	Hooks      RewardHooks // nil = built-in rules only
}

// ItemAutoDestroy returns how long world drops stay on the ground.
func (e *Env) ItemAutoDestroy() time.Duration {
	return time.Duration(e.Rates.ItemAutoDestroyTime) * time.Second
}

func (e *Env) itemName(vnum int16) string {
	if e.Items == nil {
		return ""
	}
	return e.Items.ItemName(vnum)
}

func (e *Env) characterName(id int64) string {
	if c, ok := e.Characters.Character(id); ok {
		return c.Name()
	}
	return ""
}
