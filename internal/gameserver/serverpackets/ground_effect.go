package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderGroundEffect plays a zone skill's effect at a map cell.
const HeaderGroundEffect = "bs"

// GroundEffect is broadcast when a zone skill resolves.
type GroundEffect struct {
	CasterID     int64
	X            int16
	Y            int16
	SkillVNum    int16
	Cooldown     int16
	AttackAnim   int16
	AttackEffect int16
}

// Write serializes the GroundEffect packet.
func (p *GroundEffect) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderGroundEffect)
	w.WriteShort(1)
	w.WriteLong(p.CasterID)
	w.WriteShort(p.X)
	w.WriteShort(p.Y)
	w.WriteShort(p.SkillVNum)
	w.WriteShort(p.Cooldown)
	w.WriteShort(p.AttackAnim)
	w.WriteShort(p.AttackEffect)
	return w.Bytes(), nil
}
