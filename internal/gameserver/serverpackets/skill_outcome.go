package serverpackets

import (
	"github.com/udisondev/battlecore/internal/gameserver/packet"
	"github.com/udisondev/battlecore/internal/model"
)

// HeaderSkillOutcome shows the result of one hit.
const HeaderSkillOutcome = "su"

// SkillOutcome is broadcast once per affected target.
type SkillOutcome struct {
	CasterID        int64
	TargetKind      int8
	TargetID        int64
	SkillVNum       int16
	Cooldown        int16
	AttackAnim      int16
	AttackEffect    int16
	CasterX         int16
	CasterY         int16
	TargetAlive     bool
	TargetHPPercent int32
	Damage          uint16
	HitMode         model.HitMode
	SkillTypeCode   int8
}

// Write serializes the SkillOutcome packet.
func (p *SkillOutcome) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderSkillOutcome)
	w.WriteShort(1)
	w.WriteLong(p.CasterID)
	w.WriteShort(int16(p.TargetKind))
	w.WriteLong(p.TargetID)
	w.WriteShort(p.SkillVNum)
	w.WriteShort(p.Cooldown)
	w.WriteShort(p.AttackAnim)
	w.WriteShort(p.AttackEffect)
	w.WriteShort(p.CasterX)
	w.WriteShort(p.CasterY)
	w.WriteBool(p.TargetAlive)
	w.WriteInt(p.TargetHPPercent)
	w.WriteInt(int32(p.Damage))
	w.WriteShort(int16(p.HitMode))
	w.WriteShort(int16(p.SkillTypeCode))
	return w.Bytes(), nil
}
