package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/battlecore/internal/model"
)

// PersistenceService загружает и сохраняет сессионные счётчики персонажей.
type PersistenceService struct {
	chars     *CharacterRepository
	penalties *PenaltyRepository
}

// NewPersistenceService создаёт новый сервис.
func NewPersistenceService(chars *CharacterRepository, penalties *PenaltyRepository) *PersistenceService {
	return &PersistenceService{chars: chars, penalties: penalties}
}

// Restore overlays saved progress and an active mute onto a freshly built
// character. A character without saved progress keeps its starter values.
func (s *PersistenceService) Restore(ctx context.Context, c *model.Character, now time.Time) error {
	p, ok, err := s.chars.Load(ctx, c.ID())
	if err != nil {
		return err
	}
	if ok {
		p.ApplyTo(c)
	}

	until, err := s.penalties.ActiveMute(ctx, c.ID(), now)
	if err != nil {
		return err
	}
	c.SetMutedUntil(until)
	return nil
}

// Save persists one character.
func (s *PersistenceService) Save(ctx context.Context, c *model.Character) error {
	return s.chars.Save(ctx, ProgressOf(c))
}

// Flush persists every character returned by online.
func (s *PersistenceService) Flush(ctx context.Context, online []*model.Character) error {
	ps := make([]Progress, 0, len(online))
	for _, c := range online {
		ps = append(ps, ProgressOf(c))
	}
	if err := s.chars.SaveAll(ctx, ps); err != nil {
		return fmt.Errorf("flushing %d characters: %w", len(ps), err)
	}
	return nil
}

// Run flushes online characters every interval until ctx is done, then
// performs a final flush with a fresh context.
func (s *PersistenceService) Run(ctx context.Context, interval time.Duration, online func() []*model.Character) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Flush(final, online()); err != nil {
				slog.Error("final progress flush failed", "error", err)
				return err
			}
			return nil
		case <-ticker.C:
			if err := s.Flush(ctx, online()); err != nil {
				slog.Error("progress flush failed", "error", err)
			}
		}
	}
}
