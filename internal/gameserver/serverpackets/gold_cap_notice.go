package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderGoldCapNotice tells the recipient their currency hit the cap.
const HeaderGoldCapNotice = "gcap"

// GoldCapNotice has no payload.
type GoldCapNotice struct{}

// Write serializes the GoldCapNotice packet.
func (p *GoldCapNotice) Write() ([]byte, error) {
	return packet.NewWriter(HeaderGoldCapNotice).Bytes(), nil
}
