package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderMsg is a centred on-screen system message.
const HeaderMsg = "msg"

// Msg types.
const (
	MsgCentre int8 = 0
	MsgNotice int8 = 4
)

// Msg is a localized on-screen message.
type Msg struct {
	Type int8
	Text string
}

// Write serializes the Msg packet.
func (p *Msg) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderMsg)
	w.WriteShort(int16(p.Type))
	w.WriteText(p.Text)
	return w.Bytes(), nil
}
