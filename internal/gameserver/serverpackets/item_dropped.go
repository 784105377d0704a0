package serverpackets

import (
	"github.com/udisondev/battlecore/internal/gameserver/packet"
	"github.com/udisondev/battlecore/internal/model"
)

// HeaderItemDropped shows a ground item on the map.
const HeaderItemDropped = "drop"

// ItemDropped is broadcast when loot lands on the ground.
type ItemDropped struct {
	Item model.GroundItem
}

// Write serializes the ItemDropped packet.
func (p *ItemDropped) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderItemDropped)
	w.WriteShort(p.Item.ItemVNum)
	w.WriteLong(p.Item.ID)
	w.WriteShort(p.Item.Position.X)
	w.WriteShort(p.Item.Position.Y)
	w.WriteInt(p.Item.Amount)
	w.WriteLong(p.Item.OwnerID)
	return w.Bytes(), nil
}
