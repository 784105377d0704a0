package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderStatUpdate refreshes the caster's HP/MP bars.
const HeaderStatUpdate = "stat"

// StatUpdate is sent privately after MP is spent.
type StatUpdate struct {
	HP    int32
	MaxHP int32
	MP    int32
	MaxMP int32
}

// Write serializes the StatUpdate packet.
func (p *StatUpdate) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderStatUpdate)
	w.WriteInt(p.HP)
	w.WriteInt(p.MaxHP)
	w.WriteInt(p.MP)
	w.WriteInt(p.MaxMP)
	return w.Bytes(), nil
}
