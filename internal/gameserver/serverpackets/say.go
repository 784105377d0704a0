package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderSay is a chat line shown above a character.
const HeaderSay = "say"

// Chat colours used by combat messages.
const (
	SayNormal  int8 = 0
	SayInfo    int8 = 10
	SayWarning int8 = 11
)

// Say is a localized chat line.
type Say struct {
	CharacterID int64
	Type        int8
	Text        string
}

// Write serializes the Say packet.
func (p *Say) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderSay)
	w.WriteShort(1)
	w.WriteLong(p.CharacterID)
	w.WriteShort(int16(p.Type))
	w.WriteText(p.Text)
	return w.Bytes(), nil
}
