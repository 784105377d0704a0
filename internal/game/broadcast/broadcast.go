// Package broadcast turns combat events into outbound notifications.
//
// It carries no decision logic: every field is computed by the caller. The
// broadcaster only encodes the packet once and hands the bytes to a Sink,
// which knows how to reach a single character or every observer of a map.
package broadcast

import (
	"log/slog"

	"github.com/udisondev/battlecore/internal/gameserver/serverpackets"
)

// Sink delivers encoded packets.
type Sink interface {
	// SendTo delivers data privately. Returns false if the character is offline.
	SendTo(charID int64, data []byte) bool
	// SendToMap delivers data to every observer of a map. Returns receivers count.
	SendToMap(mapID int32, data []byte) int
}

// Broadcaster encodes notifications and routes them to a Sink.
type Broadcaster struct {
	sink Sink
}

// New creates a Broadcaster over sink.
func New(sink Sink) *Broadcaster {
	return &Broadcaster{sink: sink}
}

func encode(p serverpackets.Packet) ([]byte, bool) {
	data, err := p.Write()
	if err != nil {
		slog.Error("encoding notification", "packet", p, "error", err)
		return nil, false
	}
	return data, true
}

// Private sends p to one character.
func (b *Broadcaster) Private(charID int64, p serverpackets.Packet) {
	data, ok := encode(p)
	if !ok {
		return
	}
	if !b.sink.SendTo(charID, data) {
		slog.Debug("notification dropped, character offline", "character", charID)
	}
}

// Map sends p to every observer of mapID.
func (b *Broadcaster) Map(mapID int32, p serverpackets.Packet) {
	data, ok := encode(p)
	if !ok {
		return
	}
	b.sink.SendToMap(mapID, data)
}

// Members sends p privately to each of ids. The packet is encoded once.
func (b *Broadcaster) Members(ids []int64, p serverpackets.Packet) {
	data, ok := encode(p)
	if !ok {
		return
	}
	for _, id := range ids {
		b.sink.SendTo(id, data)
	}
}

// CastBegin shows the cast animation to the map.
func (b *Broadcaster) CastBegin(mapID int32, p *serverpackets.CastBegin) {
	b.Map(mapID, p)
}

// Outcome shows one hit to the map.
func (b *Broadcaster) Outcome(mapID int32, p *serverpackets.SkillOutcome) {
	b.Map(mapID, p)
}

// GroundEffect plays a zone skill effect on the map.
func (b *Broadcaster) GroundEffect(mapID int32, p *serverpackets.GroundEffect) {
	b.Map(mapID, p)
}

// Ready tells the caster the skill can be used again.
func (b *Broadcaster) Ready(charID int64, castID int16) {
	b.Private(charID, &serverpackets.SkillReady{CastID: castID})
}

// Cancel tells the caster the cast was rejected.
func (b *Broadcaster) Cancel(charID int64, reason int8, targetID int64) {
	b.Private(charID, &serverpackets.Cancel{Reason: reason, TargetID: targetID})
}

// Say sends a chat line to one character.
func (b *Broadcaster) Say(charID int64, sayType int8, text string) {
	b.Private(charID, &serverpackets.Say{CharacterID: charID, Type: sayType, Text: text})
}

// Msg sends an on-screen message to one character.
func (b *Broadcaster) Msg(charID int64, msgType int8, text string) {
	b.Private(charID, &serverpackets.Msg{Type: msgType, Text: text})
}

// Stat refreshes the character's HP/MP bars.
func (b *Broadcaster) Stat(charID int64, hp, maxHP, mp, maxMP int32) {
	b.Private(charID, &serverpackets.StatUpdate{HP: hp, MaxHP: maxHP, MP: mp, MaxMP: maxMP})
}

// Gold refreshes the character's currency.
func (b *Broadcaster) Gold(charID int64, gold int64) {
	b.Private(charID, &serverpackets.GoldUpdate{Gold: gold})
}

// GoldCap tells the character their currency hit the cap.
func (b *Broadcaster) GoldCap(charID int64) {
	b.Private(charID, &serverpackets.GoldCapNotice{})
}
