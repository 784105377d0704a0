package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderCastBegin starts the cast animation on every observer of the map.
const HeaderCastBegin = "ct"

// CastBegin is broadcast when a validated cast starts.
type CastBegin struct {
	CasterID   int64
	TargetKind int8 // 0 = monster, 1 = character
	TargetID   int64
	CastID     int16
	Cooldown   int16
	CastAnim   int16
	CastEffect int16
	SkillVNum  int16
}

// Write serializes the CastBegin packet.
func (p *CastBegin) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderCastBegin)
	w.WriteShort(1) // caster kind: character
	w.WriteLong(p.CasterID)
	w.WriteShort(int16(p.TargetKind))
	w.WriteLong(p.TargetID)
	w.WriteShort(p.CastAnim)
	w.WriteShort(p.CastEffect)
	w.WriteShort(p.SkillVNum)
	w.WriteShort(p.CastID)
	w.WriteShort(p.Cooldown)
	return w.Bytes(), nil
}
