package combat

import (
	"log/slog"

	"github.com/udisondev/battlecore/internal/model"
)

// DignityMinLevel is the level from which kills restore dignity.
const DignityMinLevel = 20

// XPFor returns base and job experience granted for killing tpl.
func XPFor(tpl *model.MonsterTemplate, rate float64) (int64, int64) {
	return int64(float64(tpl.XP) * rate), int64(float64(tpl.JobXP) * rate)
}

// DignityFor returns the dignity a character of level lvl regains for
// killing a monster of monsterLevel.
func DignityFor(lvl, monsterLevel int16, current int32) int32 {
	if lvl > DignityMinLevel && lvl < monsterLevel && current < model.MaxDignity {
		return 1
	}
	return 0
}

// RewardExperience grants experience and dignity for a kill to every group
// member on the killer's map, or to the killer alone. Nothing is granted
// when the killer is dead. Returns the ids that were rewarded.
func RewardExperience(env *Env, killer *model.Character, tpl *model.MonsterTemplate) []int64 {
	if killer.IsDead() {
		return nil
	}

	recipients := []*model.Character{killer}
	if g, ok := env.Groups.GroupOf(killer.ID()); ok {
		recipients = recipients[:0]
		for _, id := range g.Members() {
			c, ok := env.Characters.Character(id)
			if !ok || c.MapID() != killer.MapID() {
				continue
			}
			recipients = append(recipients, c)
		}
	}

	xp, jobXP := XPFor(tpl, env.Rates.XPRate)
	ids := make([]int64, 0, len(recipients))
	for _, c := range recipients {
		c.AddExperience(xp, jobXP)
		if d := DignityFor(c.Level(), tpl.Level, c.Dignity()); d > 0 {
			c.AddDignity(d)
		}
		ids = append(ids, c.ID())
	}

	slog.Debug("experience granted", "monster", tpl.VNum, "xp", xp, "job_xp", jobXP, "recipients", ids)
	return ids
}
