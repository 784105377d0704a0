package clientpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// MultiTargetPair is one (skill, monster) entry of a multi-target list.
type MultiTargetPair struct {
	CastID    int16
	MonsterID int32
}

// MultiTargetList resolves one hit per pair.
//
// Fields: [2] declared count (ignored), then (castID, monsterID) pairs from
// [3] on. A trailing unpaired token is dropped.
type MultiTargetList struct {
	Pairs []MultiTargetPair
}

// ParseMultiTargetList parses an mtlist command. An empty list is valid.
func ParseMultiTargetList(data []byte) (*MultiTargetList, error) {
	r := packet.NewReader(data)
	// номер, ключевое слово и счётчик пар
	if err := r.Skip(3); err != nil {
		return nil, err
	}

	p := &MultiTargetList{Pairs: make([]MultiTargetPair, 0, r.Remaining()/2)}
	for r.Remaining() >= 2 {
		castID, err := r.ReadShort()
		if err != nil {
			return nil, err
		}
		monID, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		p.Pairs = append(p.Pairs, MultiTargetPair{CastID: castID, MonsterID: monID})
	}
	return p, nil
}
