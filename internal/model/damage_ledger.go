package model

// LedgerEntry is one attacker's cumulative damage against a monster.
type LedgerEntry struct {
	AttackerID int64
	Damage     int64
}

// DamageLedger tracks damage per attacker, preserving first-hit order.
// Не потокобезопасен сам по себе: защищается мьютексом Monster.
type DamageLedger struct {
	order  []int64
	damage map[int64]int64
}

func newDamageLedger() DamageLedger {
	return DamageLedger{damage: make(map[int64]int64, 4)}
}

// add accumulates damage for an attacker, appending new attackers at the end.
func (l *DamageLedger) add(attackerID, damage int64) {
	if _, ok := l.damage[attackerID]; !ok {
		l.order = append(l.order, attackerID)
	}
	l.damage[attackerID] += damage
}

// first returns the attacker that hit first.
func (l *DamageLedger) first() (int64, bool) {
	if len(l.order) == 0 {
		return 0, false
	}
	return l.order[0], true
}

// entries returns a copy in first-hit order.
func (l *DamageLedger) entries() []LedgerEntry {
	out := make([]LedgerEntry, len(l.order))
	for i, id := range l.order {
		out[i] = LedgerEntry{AttackerID: id, Damage: l.damage[id]}
	}
	return out
}

func (l *DamageLedger) reset() {
	l.order = l.order[:0]
	clear(l.damage)
}
