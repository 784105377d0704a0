package skill

import (
	"time"

	"github.com/udisondev/battlecore/internal/model"
)

// comboVisuals records a hit on a surviving target and returns the
// animation and effect to show. Reaching the highest combo step restarts
// the streak.
func comboVisuals(st *model.SkillCastState, now time.Time, idle time.Duration) (anim, effect int16) {
	def := st.Definition()
	anim, effect = def.AttackAnimation, def.Effect

	hit := st.RecordHit(now, idle)
	if step, ok := def.ComboFor(hit); ok {
		anim, effect = step.Animation, step.Effect
	}
	if hit >= def.MaxComboHit() {
		st.ResetCombo()
	}
	return anim, effect
}

// resetOtherCombos breaks the streak of every skill except used.
func resetOtherCombos(c *model.Character, used *model.SkillCastState) {
	for _, st := range c.Skills() {
		if st != used {
			st.ResetCombo()
		}
	}
}
