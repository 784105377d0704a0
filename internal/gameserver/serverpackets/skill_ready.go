package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderSkillReady tells the caster a skill may be used again.
const HeaderSkillReady = "sr"

// SkillReady is sent privately once the full cooldown has elapsed.
type SkillReady struct {
	CastID int16
}

// Write serializes the SkillReady packet.
func (p *SkillReady) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderSkillReady)
	w.WriteShort(p.CastID)
	return w.Bytes(), nil
}
