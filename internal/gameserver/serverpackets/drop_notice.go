package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderDropNotice announces loot to a group or to map observers.
const HeaderDropNotice = "dn"

// DropNotice announces a drop. Recipient is empty when nobody in particular
// owns the drop. Text is the already-localized line shown in chat.
type DropNotice struct {
	ItemName  string
	Amount    int32
	Recipient string
	Text      string
}

// Write serializes the DropNotice packet.
func (p *DropNotice) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderDropNotice)
	w.WriteString(p.ItemName)
	w.WriteInt(p.Amount)
	if p.Recipient == "" {
		w.WriteString("-")
	} else {
		w.WriteString(p.Recipient)
	}
	w.WriteText(p.Text)
	return w.Bytes(), nil
}
