package serverpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// HeaderCancel aborts a pending client-side cast.
const HeaderCancel = "cancel"

// Cancel reasons.
const (
	// CancelGeneric is used for mute, transform lock and vehicle rejections.
	CancelGeneric int8 = 0
	// CancelTarget is used for rejections tied to a specific target.
	CancelTarget int8 = 2
)

// Cancel is sent privately when a cast is rejected.
type Cancel struct {
	Reason   int8
	TargetID int64
}

// Write serializes the Cancel packet.
func (p *Cancel) Write() ([]byte, error) {
	w := packet.NewWriter(HeaderCancel)
	w.WriteShort(int16(p.Reason))
	w.WriteLong(p.TargetID)
	return w.Bytes(), nil
}
