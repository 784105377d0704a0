package combat

import "github.com/udisondev/battlecore/internal/model"

// TargetStore holds the monsters of one map.
type TargetStore interface {
	GetMonster(id int32) (*model.Monster, bool)
	// InRange returns living monsters within radius cells of (x, y).
	InRange(x, y int16, radius int) []*model.Monster
}

// SelectTargets returns living monsters around origin, skipping excludeID
// (pass a negative id to keep everyone).
func SelectTargets(store TargetStore, origin model.Position, radius uint8, excludeID int32) []*model.Monster {
	if radius == 0 {
		return nil
	}
	found := store.InRange(origin.X, origin.Y, int(radius))
	out := found[:0]
	for _, m := range found {
		if m.ID() != excludeID {
			out = append(out, m)
		}
	}
	return out
}

// Pass walks a snapshot of targets once. Targets killed earlier in the same
// pass (or concurrently by someone else) are skipped.
func Pass(targets []*model.Monster, hit func(*model.Monster)) int {
	n := 0
	for _, m := range targets {
		if !m.IsAlive() {
			continue
		}
		hit(m)
		n++
	}
	return n
}
