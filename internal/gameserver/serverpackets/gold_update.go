package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderGoldUpdate refreshes the recipient's currency.
const HeaderGoldUpdate = "gold"

// GoldUpdate is sent privately after a direct currency grant.
type GoldUpdate struct {
	Gold int64
}

// Write serializes the GoldUpdate packet.
func (p *GoldUpdate) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderGoldUpdate)
	w.WriteLong(p.Gold)
	return w.Bytes(), nil
}
