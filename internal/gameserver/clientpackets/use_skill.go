// Package clientpackets parses inbound text commands.
//
// Every command is one line of space-delimited tokens. Token 0 is the
// client's sequence number and token 1 the command keyword; the handler
// strips neither, so field indexes below count from the start of the line.
package clientpackets

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/gameserver/packet"
)

// Command keywords.
const (
	KeywordUseSkill        = "u_s"
	KeywordUseZoneSkill    = "u_as"
	KeywordMultiTargetList = "mtlist"
)

// Target kinds of a UseSkill command.
const (
	TargetMonster   int8 = 0
	TargetCharacter int8 = 1
)

// UseSkill is a single-target skill cast.
//
// Fields:
//   - [2] castID (int16)
//   - [3] targetKind (0 = monster, 1 = character)
//   - [4] targetID (int64)
//   - [5] [6] optional caster position, parsed but not trusted
type UseSkill struct {
	CastID      int16
	TargetKind  int8
	TargetID    int64
	HasPosition bool
	X, Y        int16
}

// ParseUseSkill parses a u_s command.
func ParseUseSkill(data []byte) (*UseSkill, error) {
	r := packet.NewReader(data)
	if err := r.Skip(2); err != nil {
		return nil, err
	}

	castID, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	kind, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	if kind != int16(TargetMonster) && kind != int16(TargetCharacter) {
		return nil, fmt.Errorf("target kind %d: %w", kind, packet.ErrMalformed)
	}
	targetID, err := r.ReadLong()
	if err != nil {
		return nil, err
	}

	p := &UseSkill{CastID: castID, TargetKind: int8(kind), TargetID: targetID}
	if r.Remaining() >= 2 {
		if p.X, err = r.ReadShort(); err != nil {
			return nil, err
		}
		if p.Y, err = r.ReadShort(); err != nil {
			return nil, err
		}
		p.HasPosition = true
	}
	return p, nil
}
