package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/world"
)

// ErrAlreadyOnline is returned when a character logs in twice.
var ErrAlreadyOnline = errors.New("character already online")

// saveTimeout bounds the progress save on logout.
const saveTimeout = 3 * time.Second

// CharacterSource builds a fresh character for a login.
type CharacterSource interface {
	NewCharacter(id int64) (*model.Character, error)
}

// ProgressStore restores and saves persisted character counters.
type ProgressStore interface {
	Restore(ctx context.Context, c *model.Character, now time.Time) error
	Save(ctx context.Context, c *model.Character) error
}

// CastCanceller cancels every pending cast of a character.
type CastCanceller interface {
	CancelAll(charID int64) int
}

// Sessions moves characters into and out of the world.
type Sessions struct {
	world    *world.World
	source   CharacterSource
	progress ProgressStore // nil = без БД
	casts    CastCanceller
}

// NewSessions creates a session service. progress may be nil.
func NewSessions(w *world.World, source CharacterSource, progress ProgressStore, casts CastCanceller) *Sessions {
	return &Sessions{world: w, source: source, progress: progress, casts: casts}
}

// Enter builds the character, overlays saved progress and places it in
// the world.
func (s *Sessions) Enter(ctx context.Context, charID int64) (*model.Character, error) {
	if _, ok := s.world.Character(charID); ok {
		return nil, fmt.Errorf("character %d: %w", charID, ErrAlreadyOnline)
	}

	c, err := s.source.NewCharacter(charID)
	if err != nil {
		return nil, err
	}
	if _, ok := s.world.Map(c.MapID()); !ok {
		return nil, fmt.Errorf("character %d on unknown map %d", charID, c.MapID())
	}
	if s.progress != nil {
		if err := s.progress.Restore(ctx, c, time.Now()); err != nil {
			return nil, fmt.Errorf("restoring character %d: %w", charID, err)
		}
	}

	s.world.AddCharacter(c)
	slog.Info("character entered world", "character", c.Name(), "id", c.ID(), "map", c.MapID())
	return c, nil
}

// Leave cancels pending casts, saves progress and removes the character.
// ctx may already be cancelled; the save uses its own deadline.
func (s *Sessions) Leave(ctx context.Context, c *model.Character) {
	n := s.casts.CancelAll(c.ID())
	s.world.RemoveCharacter(c.ID())

	if s.progress != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		defer cancel()
		if err := s.progress.Save(saveCtx, c); err != nil {
			slog.Error("save character on logout", "character", c.Name(), "error", err)
		}
	}
	slog.Info("character left world", "character", c.Name(), "id", c.ID(), "cancelled_casts", n)
}
