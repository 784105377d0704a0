package clientpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// UseZoneSkill is an area cast centred on a ground point.
//
// Fields: [2] castID, [3] originX, [4] originY.
type UseZoneSkill struct {
	CastID int16
	X, Y   int16
}

// ParseUseZoneSkill parses a u_as command.
func ParseUseZoneSkill(data []byte) (*UseZoneSkill, error) {
	r := packet.NewReader(data)
	if err := r.Skip(2); err != nil {
		return nil, err
	}

	castID, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	x, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	y, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	return &UseZoneSkill{CastID: castID, X: x, Y: y}, nil
}
