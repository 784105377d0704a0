package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PenaltyMute is the penalty kind that blocks casting.
const PenaltyMute = "mute"

// PenaltyRepository reads and records sanctions.
type PenaltyRepository struct {
	db *pgxpool.Pool
}

// NewPenaltyRepository создаёт новый PenaltyRepository.
func NewPenaltyRepository(db *pgxpool.Pool) *PenaltyRepository {
	return &PenaltyRepository{db: db}
}

// ActiveMute returns the latest expiry of a mute still in force at now.
// Returns a zero time when the character is not muted.
func (r *PenaltyRepository) ActiveMute(ctx context.Context, characterID int64, now time.Time) (time.Time, error) {
	var until *time.Time
	err := r.db.QueryRow(ctx, `
		SELECT MAX(expires_at)
		FROM penalties
		WHERE character_id = $1 AND kind = $2 AND starts_at <= $3 AND expires_at > $3
	`, characterID, PenaltyMute, now).Scan(&until)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying mute of character %d: %w", characterID, err)
	}
	if until == nil {
		return time.Time{}, nil
	}
	return *until, nil
}

// Mute records a mute from now for d.
func (r *PenaltyRepository) Mute(ctx context.Context, characterID int64, now time.Time, d time.Duration, reason string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO penalties (character_id, kind, reason, starts_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, characterID, PenaltyMute, reason, now, now.Add(d))
	if err != nil {
		return fmt.Errorf("muting character %d: %w", characterID, err)
	}
	return nil
}
