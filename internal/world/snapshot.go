package world

import "github.com/udisondev/battlecore/internal/model"

// Base critical stats every character has before equipment.
const (
	BaseCritChance = 4
	BaseCritPower  = 70
)

// Snapshot builds a CombatantSnapshot from the character's current state.
// Base critical stats apply to the main weapon only.
func Snapshot(c *model.Character) model.CombatantSnapshot {
	stats := c.CombatStats()
	stats.Main.CritChance += BaseCritChance
	stats.Main.CritPower += BaseCritPower

	elem, rate := c.Element()

	var spec *model.SpecialistBonus
	if stats.Specialist != nil {
		b := *stats.Specialist
		spec = &b
	}

	return model.CombatantSnapshot{
		CharacterID: c.ID(),
		Name:        c.Name(),
		Class:       c.Class(),
		Level:       c.Level(),
		MapID:       c.MapID(),
		Position:    c.Position(),
		Main:        stats.Main,
		Secondary:   stats.Secondary,
		Specialist:  spec,
		Element:     elem,
		ElementRate: rate,
		HP:          c.CurrentHP(),
		MaxHP:       c.MaxHP(),
		MP:          c.CurrentMP(),
		MaxMP:       c.MaxMP(),
	}
}
